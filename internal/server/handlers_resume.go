package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/resume"
)

// AddedResponse is returned when a record is added to the document.
type AddedResponse struct {
	ID       string          `json:"id"`
	Document resume.Document `json:"document"`
}

// FresherRequest is the body of PUT /api/resume/fresher.
type FresherRequest struct {
	IsFresher bool `json:"isFresher"`
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.workspace(r).Store.Document())
}

func (s *Server) handleUpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var patch resume.PersonalInfoPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, err)
		return
	}
	store := s.workspace(r).Store
	store.UpdatePersonalInfo(patch)
	s.jsonResponse(w, http.StatusOK, store.Document())
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var e resume.Experience
	if err := decodeJSON(r, &e); err != nil {
		s.writeError(w, err)
		return
	}
	store := s.workspace(r).Store
	id := store.AddExperience(e)
	s.jsonResponse(w, http.StatusCreated, AddedResponse{ID: id, Document: store.Document()})
}

// handleUpdateExperience, like every update and delete handler, answers 200
// with the current document even when the id is unknown.
func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	var patch resume.ExperiencePatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, err)
		return
	}
	store := s.workspace(r).Store
	store.UpdateExperience(r.PathValue("id"), patch)
	s.jsonResponse(w, http.StatusOK, store.Document())
}

func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	store := s.workspace(r).Store
	store.DeleteExperience(r.PathValue("id"))
	s.jsonResponse(w, http.StatusOK, store.Document())
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	var e resume.Education
	if err := decodeJSON(r, &e); err != nil {
		s.writeError(w, err)
		return
	}
	store := s.workspace(r).Store
	id := store.AddEducation(e)
	s.jsonResponse(w, http.StatusCreated, AddedResponse{ID: id, Document: store.Document()})
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	var patch resume.EducationPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, err)
		return
	}
	store := s.workspace(r).Store
	store.UpdateEducation(r.PathValue("id"), patch)
	s.jsonResponse(w, http.StatusOK, store.Document())
}

func (s *Server) handleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	store := s.workspace(r).Store
	store.DeleteEducation(r.PathValue("id"))
	s.jsonResponse(w, http.StatusOK, store.Document())
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var sk resume.Skill
	if err := decodeJSON(r, &sk); err != nil {
		s.writeError(w, err)
		return
	}
	store := s.workspace(r).Store
	id := store.AddSkill(sk)
	s.jsonResponse(w, http.StatusCreated, AddedResponse{ID: id, Document: store.Document()})
}

func (s *Server) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	var patch resume.SkillPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, err)
		return
	}
	store := s.workspace(r).Store
	store.UpdateSkill(r.PathValue("id"), patch)
	s.jsonResponse(w, http.StatusOK, store.Document())
}

func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	store := s.workspace(r).Store
	store.DeleteSkill(r.PathValue("id"))
	s.jsonResponse(w, http.StatusOK, store.Document())
}

// handleSetFresher goes through the wizard so queued experience is dropped
// along with the flag.
func (s *Server) handleSetFresher(w http.ResponseWriter, r *http.Request) {
	var req FresherRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	ws := s.workspace(r)
	ws.Wizard.SetFresher(req.IsFresher)
	s.jsonResponse(w, http.StatusOK, ws.Store.Document())
}

func (s *Server) handleResetResume(w http.ResponseWriter, r *http.Request) {
	store := s.workspace(r).Store
	store.ResetData()
	s.jsonResponse(w, http.StatusOK, store.Document())
}
