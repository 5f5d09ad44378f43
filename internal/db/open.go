package db

import (
	"context"
	"fmt"
	"strings"
)

// Backends accepted by Open.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

// Options selects and configures a user store.
type Options struct {
	Backend       string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
}

// ResolveBackend picks the backend when none is named: postgres when a
// database URL is set, otherwise memory.
func (o Options) ResolveBackend() string {
	if b := strings.ToLower(strings.TrimSpace(o.Backend)); b != "" {
		return b
	}
	if o.DatabaseURL != "" {
		return BackendPostgres
	}
	return BackendMemory
}

// Open connects the configured user store.
func Open(ctx context.Context, opts Options) (UserStore, error) {
	switch backend := opts.ResolveBackend(); backend {
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres user store")
		}
		database, err := Connect(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			_ = database.Close(ctx)
			return nil, err
		}
		return database, nil
	case BackendMongo:
		if opts.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required for the mongo user store")
		}
		store, err := ConnectMongo(ctx, opts.MongoURI, opts.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendMemory:
		return NewMemoryUserStore(), nil
	default:
		return nil, fmt.Errorf("unknown user store %q: must be postgres, mongo or memory", backend)
	}
}
