// Package db provides account storage backed by PostgreSQL, MongoDB or memory.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	username      VARCHAR(50) NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Migrate creates the users table if it does not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, createUsersTable); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close(context.Context) error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

// CreateUser inserts u, assigning its id and timestamps.
func (db *DB) CreateUser(ctx context.Context, u *User) error {
	prepare(u)
	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return &ErrDuplicate{Field: duplicateField(pgErr.ConstraintName)}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func duplicateField(constraint string) string {
	if strings.Contains(constraint, "username") {
		return "username"
	}
	return "email"
}

const selectUser = `SELECT id, username, email, password_hash, created_at, updated_at FROM users`

func (db *DB) getUser(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx, selectUser+" WHERE "+where, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUser retrieves a user by id
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return db.getUser(ctx, "id = $1", id)
}

// GetUserByEmail retrieves a user by email
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return db.getUser(ctx, "email = $1", email)
}

// GetUserByUsername retrieves a user by username
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return db.getUser(ctx, "username = $1", username)
}

func (db *DB) exists(ctx context.Context, where string, arg any) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE "+where+")", arg).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// CheckEmailExists reports whether an account uses email
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	return db.exists(ctx, "email = $1", email)
}

// CheckUsernameExists reports whether an account uses username
func (db *DB) CheckUsernameExists(ctx context.Context, username string) (bool, error) {
	return db.exists(ctx, "username = $1", username)
}
