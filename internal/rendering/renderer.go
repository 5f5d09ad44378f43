package rendering

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/resume"
)

// DefaultTemplateID is the only layout shipped today.
const DefaultTemplateID = "template-3"

// TemplateInfo describes a layout offered on the template gallery.
type TemplateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var registry = map[string]struct {
	info   TemplateInfo
	source string
}{
	DefaultTemplateID: {
		info: TemplateInfo{
			ID:          DefaultTemplateID,
			Name:        "Modern Two Column",
			Description: "Bold name header with skills split into two columns",
		},
		source: template3,
	},
}

// Templates lists the available layouts.
func Templates() []TemplateInfo {
	return []TemplateInfo{registry[DefaultTemplateID].info}
}

// Lookup returns the layout with the given id, falling back to the default
// for empty or unknown ids.
func Lookup(id string) TemplateInfo {
	if entry, ok := registry[id]; ok {
		return entry.info
	}
	return registry[DefaultTemplateID].info
}

// Renderer renders documents with one layout in one mode.
type Renderer struct {
	templateID string
	mode       Mode
	tmpl       *template.Template
}

// New parses the layout for templateID and binds it to mode.
func New(templateID string, mode Mode) (*Renderer, error) {
	info := Lookup(templateID)
	tmpl, err := template.New(info.ID).Parse(registry[info.ID].source)
	if err != nil {
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to parse template %s", info.ID),
			Cause:   err,
		}
	}
	return &Renderer{templateID: info.ID, mode: mode, tmpl: tmpl}, nil
}

// Mode returns the mode the renderer was built with.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// TemplateID returns the resolved layout id.
func (r *Renderer) TemplateID() string {
	return r.templateID
}

// View builds the template input without executing it.
func (r *Renderer) View(user resume.Document, state editing.State) PageView {
	return buildView(r.templateID, r.mode, r.mode.Display(user), state)
}

// Render writes the full page for the user's document. state marks the
// field being edited, if any.
func (r *Renderer) Render(w io.Writer, user resume.Document, state editing.State) error {
	if err := r.tmpl.Execute(w, r.View(user, state)); err != nil {
		return &RenderError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return nil
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(user resume.Document, state editing.State) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, user, state); err != nil {
		return "", err
	}
	return buf.String(), nil
}
