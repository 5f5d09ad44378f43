//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request RegisterRequest
		wantErr string
	}{
		{
			name:    "valid request",
			request: RegisterRequest{Username: "ann_lee", Email: "ann@example.com", Password: "password123"},
		},
		{
			name:    "username too short",
			request: RegisterRequest{Username: "an", Email: "ann@example.com", Password: "password123"},
			wantErr: "username",
		},
		{
			name:    "username with dash",
			request: RegisterRequest{Username: "ann-lee", Email: "ann@example.com", Password: "password123"},
			wantErr: "username",
		},
		{
			name:    "email without domain dot",
			request: RegisterRequest{Username: "ann_lee", Email: "ann@example", Password: "password123"},
			wantErr: "simple_email",
		},
		{
			name:    "password without digit",
			request: RegisterRequest{Username: "ann_lee", Email: "ann@example.com", Password: "password"},
			wantErr: "password_policy",
		},
		{
			name:    "missing password",
			request: RegisterRequest{Username: "ann_lee", Email: "ann@example.com"},
			wantErr: "required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegisterRequest_Normalize(t *testing.T) {
	req := RegisterRequest{Username: "  <ann_lee> ", Email: " Ann@Example.COM ", Password: " pass word1 "}
	req.Normalize()

	assert.Equal(t, "ann_lee", req.Username)
	assert.Equal(t, "ann@example.com", req.Email)
	assert.Equal(t, " pass word1 ", req.Password)
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "ann@example.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "ann@example.com"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "not-an-email", Password: "x"}).Validate())
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "script", Sanitize("  <script> "))
	assert.Equal(t, "", Sanitize("<>"))
}

func TestAuthResponse_OmitsEmptyData(t *testing.T) {
	body, err := json.Marshal(AuthResponse{Success: false, Message: "Invalid email or password"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Invalid email or password"}`, string(body))
}
