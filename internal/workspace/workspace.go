// Package workspace keeps one resume state per browser session: the store,
// its wizard, its edit sessions and the persister mirroring it to storage.
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/editing"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/wizard"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Workspace is the state behind one session id.
type Workspace struct {
	ID     string
	Store  *resume.Store
	Wizard *wizard.Wizard

	// Live edits the user's document; Sample edits a throwaway copy of the
	// sample document and never commits.
	Live   *editing.Session
	Sample *editing.Session

	Restored bool
}

// Session returns the edit session for mode.
func (w *Workspace) Session(mode rendering.Mode) *editing.Session {
	if _, ok := mode.(rendering.SampleMode); ok {
		return w.Sample
	}
	return w.Live
}

// Defaults for Manager eviction.
const (
	DefaultIdleTTL       = 30 * time.Minute
	DefaultMaxWorkspaces = 1000
)

// Manager creates workspaces on first use and evicts them once idle. An
// evicted workspace is restored from storage on its next use; pending wizard
// records and open edits are lost.
type Manager struct {
	storage       storage.Storage
	logger        *logrus.Logger
	exitDelay     time.Duration
	idleTTL       time.Duration
	maxWorkspaces int
	now           func() time.Time

	opening singleflight.Group

	mu         sync.Mutex
	workspaces map[string]*entry
	lastSweep  time.Time
}

type entry struct {
	ws       *Workspace
	lastUsed time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithExitDelay sets the edit session exit delay for new workspaces.
func WithExitDelay(d time.Duration) Option {
	return func(m *Manager) { m.exitDelay = d }
}

// WithIdleTTL sets how long an unused workspace is kept in memory.
func WithIdleTTL(d time.Duration) Option {
	return func(m *Manager) { m.idleTTL = d }
}

// WithMaxWorkspaces caps the workspaces held at once. The least recently
// used one is evicted to make room.
func WithMaxWorkspaces(n int) Option {
	return func(m *Manager) { m.maxWorkspaces = n }
}

// NewManager returns a manager persisting each workspace under its own
// namespace of s.
func NewManager(s storage.Storage, logger *logrus.Logger, opts ...Option) *Manager {
	m := &Manager{
		storage:       s,
		logger:        logging.OrStandard(logger),
		exitDelay:     editing.DefaultExitDelay,
		idleTTL:       DefaultIdleTTL,
		maxWorkspaces: DefaultMaxWorkspaces,
		now:           time.Now,
		workspaces:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the workspace for id, restoring it from storage the first time.
// Concurrent first uses of one id share a single restore, and the restore
// does not block other sessions.
func (m *Manager) Get(ctx context.Context, id string) *Workspace {
	if ws := m.lookup(id); ws != nil {
		return ws
	}

	v, _, _ := m.opening.Do(id, func() (any, error) {
		if ws := m.lookup(id); ws != nil {
			return ws, nil
		}
		ws := m.open(ctx, id)
		m.insert(ws)
		return ws, nil
	})
	return v.(*Workspace)
}

func (m *Manager) lookup(id string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)
	e, ok := m.workspaces[id]
	if !ok {
		return nil
	}
	e.lastUsed = now
	return e.ws
}

func (m *Manager) open(ctx context.Context, id string) *Workspace {
	store := resume.NewStore()
	persister := storage.NewPersister(storage.WithNamespace(m.storage, id), m.logger)
	restored := persister.Open(ctx, store)

	sampleStore := resume.NewStore()
	sampleStore.Load(rendering.SampleDocument())

	m.logger.WithFields(logrus.Fields{
		"session":  id,
		"restored": restored,
	}).Debug("Opened workspace")

	return &Workspace{
		ID:       id,
		Store:    store,
		Wizard:   wizard.New(store),
		Live:     editing.NewSession(store, rendering.LiveMode{AllowEditing: true}, editing.WithExitDelay(m.exitDelay)),
		Sample:   editing.NewSession(sampleStore, rendering.SampleMode{AllowEditing: true}, editing.WithExitDelay(m.exitDelay)),
		Restored: restored,
	}
}

func (m *Manager) insert(ws *Workspace) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxWorkspaces > 0 && len(m.workspaces) >= m.maxWorkspaces {
		m.evictOldestLocked()
	}
	m.workspaces[ws.ID] = &entry{ws: ws, lastUsed: m.now()}
}

// sweepLocked drops idle workspaces, at most once per half TTL.
func (m *Manager) sweepLocked(now time.Time) {
	if m.idleTTL <= 0 || now.Sub(m.lastSweep) < m.idleTTL/2 {
		return
	}
	m.lastSweep = now
	for id, e := range m.workspaces {
		if now.Sub(e.lastUsed) >= m.idleTTL {
			delete(m.workspaces, id)
			m.logger.WithField("session", id).Debug("Evicted idle workspace")
		}
	}
}

func (m *Manager) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range m.workspaces {
		if oldestID == "" || e.lastUsed.Before(oldest) {
			oldestID, oldest = id, e.lastUsed
		}
	}
	delete(m.workspaces, oldestID)
	m.logger.WithField("session", oldestID).Debug("Evicted least recently used workspace")
}

// Len returns the number of open workspaces.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workspaces)
}
