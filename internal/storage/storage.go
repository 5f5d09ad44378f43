// Package storage persists resume documents in a key/value backend.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// DocumentKey is the key the resume document is stored under.
const DocumentKey = "resumeData"

// Storage is a string key/value store.
type Storage interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Dir      string // file backend
	RedisURL string // redis backend
}

// Open constructs the backend named in opts. Empty Backend selects the file backend.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		fs, err := NewFileStorage(opts.Dir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case BackendRedis:
		rs, err := NewRedisStorage(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return rs, nil
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", opts.Backend)
	}
}

// namespaced prefixes every key so several sessions can share one backend.
type namespaced struct {
	inner  Storage
	prefix string
}

// WithNamespace returns a view of s where every key is prefixed by ns.
func WithNamespace(s Storage, ns string) Storage {
	if ns == "" {
		return s
	}
	return &namespaced{inner: s, prefix: ns + ":"}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}
