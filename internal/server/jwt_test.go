package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(secret, issuer string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 24, Issuer: issuer})
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := newTestJWTService(testJWTSecret, config.DefaultJWTIssuer)
	id := uuid.New()

	token, err := svc.GenerateToken(id, "ann_lee")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.GetUserID())
	assert.Equal(t, "ann_lee", claims.GetUsername())
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, config.DefaultJWTIssuer, claims.Issuer)

	identity, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, identity.GetUserID())
}

func TestJWT_Expired(t *testing.T) {
	svc := newTestJWTService(testJWTSecret, config.DefaultJWTIssuer)
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken(uuid.New(), "ann_lee")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWT_Rejects(t *testing.T) {
	svc := newTestJWTService(testJWTSecret, config.DefaultJWTIssuer)
	token, err := svc.GenerateToken(uuid.New(), "ann_lee")
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   *JWTService
		token string
	}{
		{"empty", svc, ""},
		{"malformed", svc, "not.a.token"},
		{"wrong secret", newTestJWTService("another-secret-key-that-is-long-enough", config.DefaultJWTIssuer), token},
		{"wrong issuer", newTestJWTService(testJWTSecret, "someone-else"), token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}
