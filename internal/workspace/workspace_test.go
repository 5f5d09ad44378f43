package workspace

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetReusesWorkspace(t *testing.T) {
	m := NewManager(storage.NewMemoryStorage(), logging.Discard())
	ctx := context.Background()

	a := m.Get(ctx, "session-a")
	assert.Same(t, a, m.Get(ctx, "session-a"))
	assert.NotSame(t, a, m.Get(ctx, "session-b"))
	assert.Equal(t, 2, m.Len())
	assert.False(t, a.Restored)
}

func TestManager_PersistsPerSession(t *testing.T) {
	backing := storage.NewMemoryStorage()
	ctx := context.Background()

	first := NewManager(backing, logging.Discard())
	first.Get(ctx, "a").Store.AddSkill(resume.Skill{Name: "Go", Level: resume.LevelExpert})

	raw, ok, err := backing.Get(ctx, "a:"+storage.DocumentKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"Go"`)

	second := NewManager(backing, logging.Discard())
	ws := second.Get(ctx, "a")
	assert.True(t, ws.Restored)
	require.Len(t, ws.Store.Document().Skills, 1)
	assert.Equal(t, 201, ws.Store.NextID())

	other := second.Get(ctx, "b")
	assert.Empty(t, other.Store.Document().Skills)
}

func TestWorkspace_SampleSessionNeverCommits(t *testing.T) {
	m := NewManager(storage.NewMemoryStorage(), logging.Discard(), WithExitDelay(0))
	ws := m.Get(context.Background(), "s")

	sess := ws.Session(rendering.SampleMode{AllowEditing: true})
	require.NoError(t, sess.Begin(editing.Record(editing.KindSkill, "sample-4")))
	require.NoError(t, sess.SetDraft("Changed"))
	require.NoError(t, sess.Commit())

	assert.False(t, sess.State().Active())
	assert.Empty(t, ws.Store.Document().Skills)
	assert.Same(t, ws.Live, ws.Session(rendering.LiveMode{}))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func withClock(c *fakeClock) Option {
	return func(m *Manager) { m.now = c.Now }
}

func TestManager_EvictsIdleWorkspaces(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewManager(storage.NewMemoryStorage(), logging.Discard(), WithIdleTTL(time.Hour), withClock(clock))
	ctx := context.Background()

	a := m.Get(ctx, "a")
	a.Store.AddSkill(resume.Skill{Name: "Go"})
	for i := range 50 {
		m.Get(ctx, "crawler-"+strconv.Itoa(i))
	}
	assert.Equal(t, 51, m.Len())

	clock.Advance(90 * time.Minute)
	reopened := m.Get(ctx, "a")

	assert.Equal(t, 1, m.Len())
	assert.NotSame(t, a, reopened)
	assert.True(t, reopened.Restored)
	require.Len(t, reopened.Store.Document().Skills, 1)
}

func TestManager_RecentUseKeepsWorkspace(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewManager(storage.NewMemoryStorage(), logging.Discard(), WithIdleTTL(time.Hour), withClock(clock))
	ctx := context.Background()

	a := m.Get(ctx, "a")
	clock.Advance(40 * time.Minute)
	assert.Same(t, a, m.Get(ctx, "a"))
	clock.Advance(40 * time.Minute)
	assert.Same(t, a, m.Get(ctx, "a"))
}

func TestManager_MaxWorkspacesEvictsLeastRecentlyUsed(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewManager(storage.NewMemoryStorage(), logging.Discard(), WithMaxWorkspaces(2), withClock(clock))
	ctx := context.Background()

	a := m.Get(ctx, "a")
	clock.Advance(time.Second)
	b := m.Get(ctx, "b")
	clock.Advance(time.Second)
	m.Get(ctx, "a")
	clock.Advance(time.Second)
	m.Get(ctx, "c")

	assert.Equal(t, 2, m.Len())
	assert.Same(t, a, m.Get(ctx, "a"))
	assert.NotSame(t, b, m.Get(ctx, "b"))
}

// gatedStorage blocks reads of keys under the "slow:" namespace until released.
type gatedStorage struct {
	*storage.MemoryStorage
	release chan struct{}
}

func (g *gatedStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.HasPrefix(key, "slow:") {
		<-g.release
	}
	return g.MemoryStorage.Get(ctx, key)
}

func TestManager_SlowRestoreDoesNotBlockOtherSessions(t *testing.T) {
	backing := &gatedStorage{MemoryStorage: storage.NewMemoryStorage(), release: make(chan struct{})}
	m := NewManager(backing, logging.Discard())
	ctx := context.Background()

	results := make(chan *Workspace, 2)
	for range 2 {
		go func() { results <- m.Get(ctx, "slow") }()
	}

	fast := make(chan *Workspace, 1)
	go func() { fast <- m.Get(ctx, "fast") }()
	select {
	case ws := <-fast:
		assert.Equal(t, "fast", ws.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("restore of another session blocked Get")
	}

	close(backing.release)
	first, second := <-results, <-results
	assert.Same(t, first, second)
	assert.Equal(t, 2, m.Len())
}
