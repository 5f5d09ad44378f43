package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// EditRequest is the body of the /api/edit endpoints. Mode selects the live
// or sample session; the other fields are read by the endpoints that need them.
type EditRequest struct {
	Mode   string         `json:"mode"`
	Target editing.Target `json:"target"`
	Value  *string        `json:"value,omitempty"`
	Key    string         `json:"key"`
	Kind   string         `json:"kind"`
}

// EditState is the response of every /api/edit endpoint.
type EditState struct {
	Mode      string         `json:"mode"`
	Active    bool           `json:"active"`
	Committed bool           `json:"committed"`
	Target    editing.Target `json:"target"`
	Draft     string         `json:"draft"`
}

func (s *Server) editSession(r *http.Request, mode string) (*editing.Session, rendering.Mode) {
	m := rendering.ModeByName(mode, true)
	return s.workspace(r).Session(m), m
}

func (s *Server) writeEditState(w http.ResponseWriter, sess *editing.Session, mode rendering.Mode) {
	st := sess.State()
	s.jsonResponse(w, http.StatusOK, EditState{
		Mode:      mode.Name(),
		Active:    st.Active(),
		Committed: st.Committed,
		Target:    st.Target,
		Draft:     st.Draft,
	})
}

// editAction decodes the body, runs fn on the selected session and answers
// with the session state.
func (s *Server) editAction(w http.ResponseWriter, r *http.Request, fn func(*editing.Session, EditRequest) error) {
	var req EditRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sess, mode := s.editSession(r, req.Mode)
	if err := fn(sess, req); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeEditState(w, sess, mode)
}

func (s *Server) handleEditState(w http.ResponseWriter, r *http.Request) {
	sess, mode := s.editSession(r, r.URL.Query().Get("mode"))
	s.writeEditState(w, sess, mode)
}

func (s *Server) handleEditBegin(w http.ResponseWriter, r *http.Request) {
	s.editAction(w, r, func(sess *editing.Session, req EditRequest) error {
		return sess.Begin(req.Target)
	})
}

func (s *Server) handleEditDraft(w http.ResponseWriter, r *http.Request) {
	s.editAction(w, r, func(sess *editing.Session, req EditRequest) error {
		if req.Value == nil {
			return &ErrValidation{Field: "value", Message: "is required"}
		}
		return sess.SetDraft(*req.Value)
	})
}

// handleEditCommit sets the draft to value, when present, before committing.
func (s *Server) handleEditCommit(w http.ResponseWriter, r *http.Request) {
	s.editAction(w, r, func(sess *editing.Session, req EditRequest) error {
		if req.Value != nil {
			if err := sess.SetDraft(*req.Value); err != nil {
				return err
			}
		}
		return sess.Commit()
	})
}

func (s *Server) handleEditCancel(w http.ResponseWriter, r *http.Request) {
	s.editAction(w, r, func(sess *editing.Session, _ EditRequest) error {
		sess.Cancel()
		return nil
	})
}

func (s *Server) handleEditKey(w http.ResponseWriter, r *http.Request) {
	s.editAction(w, r, func(sess *editing.Session, req EditRequest) error {
		return sess.Key(req.Key)
	})
}

func (s *Server) handleEditPlaceholder(w http.ResponseWriter, r *http.Request) {
	s.editAction(w, r, func(sess *editing.Session, req EditRequest) error {
		kind, err := editing.ParseKind(req.Kind)
		if err != nil {
			return &ErrValidation{Field: "kind", Message: err.Error()}
		}
		_, err = sess.BeginPlaceholder(kind)
		return err
	})
}
