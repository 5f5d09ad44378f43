package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseBackend(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, DocumentKey, `{"a":1}`))
	v, ok, err := s.Get(ctx, DocumentKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, v)

	require.NoError(t, s.Set(ctx, DocumentKey, `{"a":2}`))
	v, _, err = s.Get(ctx, DocumentKey)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, v)

	require.NoError(t, s.Delete(ctx, DocumentKey))
	_, ok, err = s.Get(ctx, DocumentKey)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Delete(ctx, "never-set"))
}

func TestMemoryStorage(t *testing.T) {
	exerciseBackend(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	exerciseBackend(t, fs)
}

func TestFileStorage_KeysWithSeparators(t *testing.T) {
	fs, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	s := WithNamespace(fs, "session/../abc")
	require.NoError(t, s.Set(context.Background(), DocumentKey, "x"))
	v, ok, err := s.Get(context.Background(), DocumentKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rs := NewRedisStorageFromClient(client)
	defer rs.Close()

	exerciseBackend(t, rs)
}

func TestRedisStorage_PrefixAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rs, err := NewRedisStorage(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer rs.Close()

	rs.WithTTL(time.Minute)
	require.NoError(t, rs.Set(context.Background(), "k", "v"))

	assert.True(t, mr.Exists(redisKeyPrefix+"k"))
	assert.Greater(t, mr.TTL(redisKeyPrefix+"k").Seconds(), float64(0))
}

func TestNewRedisStorage_Unreachable(t *testing.T) {
	_, err := NewRedisStorage(context.Background(), "redis://127.0.0.1:1/0")
	assert.Error(t, err)
}

func TestWithNamespace_IsolatesKeys(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryStorage()
	a := WithNamespace(base, "a")
	b := WithNamespace(base, "b")

	require.NoError(t, a.Set(ctx, DocumentKey, "one"))
	_, ok, err := b.Get(ctx, DocumentKey)
	require.NoError(t, err)
	assert.False(t, ok)

	raw, ok, err := base.Get(ctx, "a:"+DocumentKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one", raw)

	assert.Same(t, base, WithNamespace(base, "").(*MemoryStorage))
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), Options{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	s, err = Open(context.Background(), Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)

	_, err = Open(context.Background(), Options{Backend: "s3"})
	assert.Error(t, err)
}
