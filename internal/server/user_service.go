package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// UserService registers and authenticates accounts.
type UserService struct {
	store          db.UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a UserService over store.
func NewUserService(store db.UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// toAPIUser converts db.User to types.User, dropping the password hash.
func toAPIUser(u *db.User) *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Register creates an account. req must already be normalized and validated.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	if err := s.passwordConfig.CheckLength(req.Password); err != nil {
		return nil, &ErrValidation{Field: "password", Message: err.Error()}
	}

	taken, err := s.store.CheckUsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if taken {
		return nil, &ErrUsernameTaken{Username: req.Username}
	}

	taken, err = s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if taken {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	hash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &db.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := s.store.CreateUser(ctx, u); err != nil {
		// Lost a race with a concurrent registration.
		var dup *db.ErrDuplicate
		if errors.As(err, &dup) {
			if dup.Field == "username" {
				return nil, &ErrUsernameTaken{Username: req.Username}
			}
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return toAPIUser(u), nil
}

// Login authenticates by email and password.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	u, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	// Unknown email and wrong password look the same to the caller.
	if u == nil || !s.passwordConfig.VerifyPassword(req.Password, u.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return toAPIUser(u), nil
}

// Get returns the account with id, or nil when there is none.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*types.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toAPIUser(u), nil
}
