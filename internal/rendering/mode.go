package rendering

import "github.com/jonathan/resume-builder/internal/resume"

// Mode decides which document a renderer shows and what the viewer may do
// with it. It is fixed when the renderer is built.
type Mode interface {
	Name() string
	// Display picks the document to show given the user's document.
	Display(user resume.Document) resume.Document
	// Editable reports whether fields accept clicks.
	Editable() bool
	// Commits reports whether committed edits reach the store.
	Commits() bool
}

// SampleMode shows the fixed sample document. Edits, if enabled, are never dispatched.
type SampleMode struct {
	AllowEditing bool
}

func (SampleMode) Name() string { return "sample" }

func (SampleMode) Display(resume.Document) resume.Document { return SampleDocument() }

func (m SampleMode) Editable() bool { return m.AllowEditing }

func (SampleMode) Commits() bool { return false }

// LiveMode shows the user's document. A document without user data renders
// as the empty document so only placeholders appear.
type LiveMode struct {
	AllowEditing bool
}

func (LiveMode) Name() string { return "live" }

func (LiveMode) Display(user resume.Document) resume.Document {
	if user.HasUserData() {
		return user
	}
	return resume.Empty()
}

func (m LiveMode) Editable() bool { return m.AllowEditing }

func (LiveMode) Commits() bool { return true }

// ModeByName returns the mode for "sample" or "live". Anything else is live.
func ModeByName(name string, editable bool) Mode {
	if name == "sample" {
		return SampleMode{AllowEditing: editable}
	}
	return LiveMode{AllowEditing: editable}
}
