package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testIdentity struct {
	userID   uuid.UUID
	username string
}

func (i *testIdentity) GetUserID() uuid.UUID { return i.userID }
func (i *testIdentity) GetUsername() string { return i.username }

type testTokenValidator struct {
	valid map[string]*testIdentity
}

func (v *testTokenValidator) ValidateToken(token string) (Identity, error) {
	id, ok := v.valid[token]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return id, nil
}

func newValidator(t *testing.T) (*testTokenValidator, *testIdentity) {
	t.Helper()
	id := &testIdentity{userID: uuid.New(), username: "ann_lee"}
	return &testTokenValidator{valid: map[string]*testIdentity{"good": id}}, id
}

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		_, _ = w.Write([]byte("anonymous"))
		return
	}
	_, _ = w.Write([]byte(id.GetUsername()))
}

func TestAuthMiddleware(t *testing.T) {
	validator, _ := newValidator(t)
	handler := AuthMiddleware(validator)(http.HandlerFunc(echoIdentity))

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"valid token", "Bearer good", http.StatusOK, "ann_lee"},
		{"lower case scheme", "bearer good", http.StatusOK, "ann_lee"},
		{"missing header", "", http.StatusUnauthorized, "Unauthorized\n"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "Unauthorized\n"},
		{"extra parts", "Bearer good extra", http.StatusUnauthorized, "Unauthorized\n"},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, "Unauthorized\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	validator, want := newValidator(t)
	handler := OptionalAuth(validator)(http.HandlerFunc(echoIdentity))

	for header, body := range map[string]string{
		"":            "anonymous",
		"Bearer bad":  "anonymous",
		"Bearer good": want.username,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, header)
		assert.Equal(t, body, w.Body.String(), header)
	}
}
