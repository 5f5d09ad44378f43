// Package types holds the request and response shapes of the HTTP API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the auth tags registered:
// username, password_policy and simple_email.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
			return config.CheckPasswordPolicy(fl.Field().String()) == nil
		})
		_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Sanitize trims s and strips angle brackets.
func Sanitize(s string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(s))
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,simple_email"`
	Password string `json:"password" validate:"required,password_policy"`
}

// Normalize sanitizes the username and email and lower-cases the email.
// The password is left as typed.
func (r *RegisterRequest) Normalize() {
	r.Username = Sanitize(r.Username)
	r.Email = strings.ToLower(Sanitize(r.Email))
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	return Validator().Struct(r)
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,simple_email"`
	Password string `json:"password" validate:"required"`
}

// Normalize sanitizes and lower-cases the email.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(Sanitize(r.Email))
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return Validator().Struct(r)
}

// User is an account as returned by the API. It never carries the password hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthData is the data of a successful register or login.
type AuthData struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

// AuthResponse is the envelope of every auth endpoint.
type AuthResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *AuthData `json:"data,omitempty"`
}

// SessionInfo is the response of GET /api/session.
type SessionInfo struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}
