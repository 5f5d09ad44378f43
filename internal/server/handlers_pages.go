package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/wizard"
)

type stepLink struct {
	Section wizard.Section
	Current bool
}

type wizardPageData struct {
	Section  wizard.Section
	Previous wizard.Section
	Next     wizard.Section
	Steps    []stepLink
	Saves    bool
	Template rendering.TemplateInfo
	Document resume.Document
	Pending  wizard.Pending
	Levels   []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/templates", http.StatusFound)
}

// handleResumePage renders the wizard step named by ?section= next to a
// live preview of ?template=.
func (s *Server) handleResumePage(w http.ResponseWriter, r *http.Request) {
	section, err := wizard.ParseSection(r.URL.Query().Get("section"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ws := s.workspace(r)

	data := wizardPageData{
		Section:  section,
		Previous: section.Previous(),
		Next:     section.Next(),
		Saves:    section == wizard.SectionExperience || section == wizard.SectionEducation || section == wizard.SectionSkills,
		Template: rendering.Lookup(r.URL.Query().Get("template")),
		Document: ws.Store.Document(),
		Pending:  ws.Wizard.Pending(),
		Levels:   resume.Levels,
	}
	for _, sec := range wizard.Sections {
		data.Steps = append(data.Steps, stepLink{Section: sec, Current: sec == section})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := wizardPage.Execute(w, data); err != nil {
		s.logger.WithError(err).Error("Failed to render wizard page")
	}
}

func (s *Server) handleTemplatesPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templatesPage.Execute(w, rendering.Templates()); err != nil {
		s.logger.WithError(err).Error("Failed to render templates page")
	}
}

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, rendering.Templates())
}

// handlePreviewPage renders the document alone. ?mode=sample shows the sample
// document; ?print=1 disables editing.
func (s *Server) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	editable := q.Get("print") == ""
	mode := rendering.ModeByName(q.Get("mode"), editable)

	renderer, err := rendering.New(q.Get("template"), mode)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load template")
		http.Error(w, "failed to load template", http.StatusInternalServerError)
		return
	}

	ws := s.workspace(r)
	state := editing.State{}
	if editable {
		state = ws.Session(mode).State()
	}

	page, err := renderer.RenderString(ws.Store.Document(), state)
	if err != nil {
		s.logger.WithError(err).Error("Failed to render preview")
		http.Error(w, "failed to render preview", http.StatusInternalServerError)
		return
	}
	if editable {
		page = strings.Replace(page, "</body>", editScript+"</body>", 1)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}
