package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/workspace"
)

// SessionCookie names the cookie holding the browser's workspace id.
const SessionCookie = "resume_session"

const sessionMaxAge = 365 * 24 * 60 * 60

type sessionKey struct{}

// withSession makes sure every request carries a session id, issuing a new
// cookie when the browser has none or sends a malformed one.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   sessionMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

// workspace returns the workspace of the request's session.
func (s *Server) workspace(r *http.Request) *workspace.Workspace {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return s.workspaces.Get(r.Context(), id)
}
