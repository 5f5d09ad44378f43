package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/wizard"
)

// WizardState is the response of GET /api/wizard.
type WizardState struct {
	Pending  wizard.Pending  `json:"pending"`
	Document resume.Document `json:"document"`
}

// PendingResponse is returned when a record is queued.
type PendingResponse struct {
	ID      string         `json:"id"`
	Pending wizard.Pending `json:"pending"`
}

func (s *Server) handleGetWizard(w http.ResponseWriter, r *http.Request) {
	ws := s.workspace(r)
	s.jsonResponse(w, http.StatusOK, WizardState{Pending: ws.Wizard.Pending(), Document: ws.Store.Document()})
}

func (s *Server) handleWizardPersonalInfo(w http.ResponseWriter, r *http.Request) {
	var info resume.PersonalInfo
	if err := decodeJSON(r, &info); err != nil {
		s.writeError(w, err)
		return
	}
	ws := s.workspace(r)
	if err := ws.Wizard.SavePersonalInfo(info); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ws.Store.Document())
}

func (s *Server) handleAddPending(w http.ResponseWriter, r *http.Request) {
	section, err := wizard.ParseSection(r.PathValue("section"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	wz := s.workspace(r).Wizard

	var id string
	switch section {
	case wizard.SectionExperience:
		var e resume.Experience
		if err = decodeJSON(r, &e); err == nil {
			id, err = wz.AddExperience(e)
		}
	case wizard.SectionEducation:
		var e resume.Education
		if err = decodeJSON(r, &e); err == nil {
			id, err = wz.AddEducation(e)
		}
	case wizard.SectionSkills:
		var sk resume.Skill
		if err = decodeJSON(r, &sk); err == nil {
			id, err = wz.AddSkill(sk)
		}
	default:
		err = &wizard.ErrUnknownSection{Value: string(section)}
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, PendingResponse{ID: id, Pending: wz.Pending()})
}

func (s *Server) handleRemovePending(w http.ResponseWriter, r *http.Request) {
	section, err := wizard.ParseSection(r.PathValue("section"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	wz := s.workspace(r).Wizard
	if err := wz.Remove(section, r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, wz.Pending())
}

func (s *Server) handleSaveSection(w http.ResponseWriter, r *http.Request) {
	section, err := wizard.ParseSection(r.PathValue("section"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	ws := s.workspace(r)
	if err := ws.Wizard.Save(section); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, WizardState{Pending: ws.Wizard.Pending(), Document: ws.Store.Document()})
}
