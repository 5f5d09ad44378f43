package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is an account record.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ErrDuplicate is returned by CreateUser when a unique field is taken.
type ErrDuplicate struct {
	Field string
}

func (e *ErrDuplicate) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// IsDuplicate reports whether err is an *ErrDuplicate.
func IsDuplicate(err error) bool {
	var dup *ErrDuplicate
	return errors.As(err, &dup)
}

// UserStore persists accounts. Lookups return (nil, nil) when no user matches.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CheckUsernameExists(ctx context.Context, username string) (bool, error)
	Close(ctx context.Context) error
}

// prepare fills the id and timestamps of a new user.
func prepare(u *User) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}
