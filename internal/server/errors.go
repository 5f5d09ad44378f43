package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/tailoring"
	"github.com/jonathan/resume-builder/internal/wizard"
)

// ErrUsernameTaken indicates the username is already registered.
type ErrUsernameTaken struct {
	Username string
}

func (e *ErrUsernameTaken) Error() string {
	return "Username already taken"
}

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return "Email already registered"
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "Invalid email or password"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// HTTPStatus returns the HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		usernameTaken *ErrUsernameTaken
		emailTaken    *ErrEmailAlreadyExists
		invalidCreds  *ErrInvalidCredentials
		validation    *ErrValidation
		fieldErrs     resume.FieldErrors
		unknownSect   *wizard.ErrUnknownSection
		pendingGone   *wizard.ErrPendingNotFound
		exportErr     *export.ExportError
		genErr        *tailoring.GenerationError
	)
	switch {
	case errors.As(err, &usernameTaken), errors.As(err, &emailTaken), db.IsDuplicate(err):
		return http.StatusConflict
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &validation), errors.As(err, &fieldErrs), errors.As(err, &unknownSect):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrNoExperience), errors.Is(err, wizard.ErrNoEducation), errors.Is(err, wizard.ErrNoSkills):
		return http.StatusBadRequest
	case errors.Is(err, tailoring.ErrEmptyJobDescription), errors.Is(err, tailoring.ErrNothingSelected):
		return http.StatusBadRequest
	case errors.Is(err, editing.ErrNotRecordKind):
		return http.StatusBadRequest
	case errors.Is(err, editing.ErrNotEditable):
		return http.StatusForbidden
	case errors.As(err, &pendingGone), errors.Is(err, editing.ErrRecordMissing):
		return http.StatusNotFound
	case errors.Is(err, editing.ErrNotEditing):
		return http.StatusConflict
	case errors.Is(err, export.ErrContentNotFound):
		return http.StatusUnprocessableEntity
	case errors.As(err, &exportErr), errors.As(err, &genErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
