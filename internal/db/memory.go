package db

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryUserStore keeps accounts in process memory.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

// NewMemoryUserStore returns an empty store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uuid.UUID]User)}
}

// CreateUser inserts u, assigning its id and timestamps.
func (s *MemoryUserStore) CreateUser(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return &ErrDuplicate{Field: "username"}
		}
		if existing.Email == u.Email {
			return &ErrDuplicate{Field: "email"}
		}
	}
	prepare(u)
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) find(match func(User) bool) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}

// GetUser retrieves a user by id
func (s *MemoryUserStore) GetUser(_ context.Context, id uuid.UUID) (*User, error) {
	return s.find(func(u User) bool { return u.ID == id }), nil
}

// GetUserByEmail retrieves a user by email
func (s *MemoryUserStore) GetUserByEmail(_ context.Context, email string) (*User, error) {
	return s.find(func(u User) bool { return u.Email == email }), nil
}

// GetUserByUsername retrieves a user by username
func (s *MemoryUserStore) GetUserByUsername(_ context.Context, username string) (*User, error) {
	return s.find(func(u User) bool { return u.Username == username }), nil
}

// CheckEmailExists reports whether an account uses email
func (s *MemoryUserStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := s.GetUserByEmail(ctx, email)
	return u != nil, nil
}

// CheckUsernameExists reports whether an account uses username
func (s *MemoryUserStore) CheckUsernameExists(ctx context.Context, username string) (bool, error) {
	u, _ := s.GetUserByUsername(ctx, username)
	return u != nil, nil
}

// Close is a no-op.
func (s *MemoryUserStore) Close(context.Context) error { return nil }
