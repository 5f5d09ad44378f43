package editing

import (
	"errors"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/resume"
)

// DefaultExitDelay is how long a committed target stays open before the
// session returns to idle.
const DefaultExitDelay = 50 * time.Millisecond

// Keys understood by Session.Key.
const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

// Errors returned by Session.
var (
	ErrNotEditable   = errors.New("document is not editable")
	ErrNotEditing    = errors.New("no field is being edited")
	ErrRecordMissing = errors.New("edit target record not found")
	ErrNotRecordKind = errors.New("placeholder editing needs an experience or education field")
)

// Policy is the display mode's say over editing: whether targets may be
// opened, and whether commits reach the store.
type Policy interface {
	Editable() bool
	Commits() bool
}

// State is a snapshot of the session. A committed target stays set until the
// exit delay passes but no longer takes input.
type State struct {
	Target    Target `json:"target"`
	Draft     string `json:"draft"`
	Committed bool   `json:"committed"`
}

// Active reports whether a field is open.
func (s State) Active() bool { return !s.Target.IsZero() }

// Editing reports whether t is open and still taking input.
func (s State) Editing(t Target) bool { return s.Target == t && !s.Committed }

// Session tracks the one field being edited over a store.
type Session struct {
	store     *resume.Store
	policy    Policy
	exitDelay time.Duration

	mu        sync.Mutex
	target    Target
	draft     string
	dirty     bool
	committed bool
	gen       uint64
}

// Option configures a Session.
type Option func(*Session)

// WithExitDelay overrides DefaultExitDelay.
func WithExitDelay(d time.Duration) Option {
	return func(s *Session) { s.exitDelay = d }
}

// NewSession returns an idle session over store.
func NewSession(store *resume.Store, policy Policy, opts ...Option) *Session {
	s := &Session{store: store, policy: policy, exitDelay: DefaultExitDelay}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current target and draft.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Target: s.target, Draft: s.draft, Committed: s.committed}
}

// Begin opens t with the draft seeded from the current document. A changed
// draft still open on another field is committed first.
func (s *Session) Begin(t Target) error {
	if !s.policy.Editable() {
		return ErrNotEditable
	}
	if err := t.validate(); err != nil {
		return err
	}
	if t.IsZero() {
		s.Cancel()
		return nil
	}
	s.commitOpenDraft()
	seed, ok := t.Seed(s.store.Document())
	if !ok {
		return ErrRecordMissing
	}
	s.open(t, seed)
	return nil
}

func (s *Session) open(t Target, draft string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.target = t
	s.draft = draft
	s.dirty = false
	s.committed = false
}

// commitOpenDraft writes a changed, uncommitted draft before another field
// takes over.
func (s *Session) commitOpenDraft() {
	s.mu.Lock()
	if s.target.IsZero() || s.committed || !s.dirty {
		s.mu.Unlock()
		return
	}
	s.committed = true
	t, draft, gen := s.target, s.draft, s.gen
	s.mu.Unlock()

	if s.policy.Commits() {
		t.apply(s.store, draft)
	}
	s.scheduleExit(gen)
}

// SetDraft replaces the draft. The store is not touched.
func (s *Session) SetDraft(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target.IsZero() || s.committed {
		return ErrNotEditing
	}
	s.draft = v
	s.dirty = true
	return nil
}

// Commit applies the draft to the store, unless the policy discards
// commits, and closes the target after the exit delay. A second commit of
// the same target within the delay is ignored.
func (s *Session) Commit() error {
	s.mu.Lock()
	if s.target.IsZero() {
		s.mu.Unlock()
		return ErrNotEditing
	}
	if s.committed {
		s.mu.Unlock()
		return nil
	}
	s.committed = true
	t, draft, gen := s.target, s.draft, s.gen
	s.mu.Unlock()

	if s.policy.Commits() {
		t.apply(s.store, draft)
	}
	s.scheduleExit(gen)
	return nil
}

func (s *Session) scheduleExit(gen uint64) {
	exit := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.target = Target{}
			s.draft = ""
			s.dirty = false
			s.committed = false
		}
	}
	if s.exitDelay <= 0 {
		exit()
		return
	}
	time.AfterFunc(s.exitDelay, exit)
}

// Cancel closes the open target without writing.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.target = Target{}
	s.draft = ""
	s.dirty = false
	s.committed = false
}

// Key handles a key press in the open field: Enter commits, Escape cancels,
// anything else is ignored.
func (s *Session) Key(key string) error {
	switch key {
	case KeyEnter:
		return s.Commit()
	case KeyEscape:
		s.Cancel()
	}
	return nil
}

// BeginPlaceholder handles a click on an empty-section placeholder for the
// given experience or education field. With no records in the section an
// empty one is created first; otherwise the first record is edited.
func (s *Session) BeginPlaceholder(k Kind) (Target, error) {
	if !k.experience() && !k.education() {
		return Target{}, ErrNotRecordKind
	}
	if !s.policy.Editable() {
		return Target{}, ErrNotEditable
	}
	s.commitOpenDraft()

	doc := s.store.Document()
	var id string
	switch {
	case k.experience() && len(doc.Experience) > 0:
		id = doc.Experience[0].ID
	case k.education() && len(doc.Education) > 0:
		id = doc.Education[0].ID
	case !s.policy.Commits():
		return Target{}, ErrNotEditable
	case k.experience():
		id = s.store.AddExperience(resume.Experience{})
		t := Record(k, id)
		s.open(t, "")
		return t, nil
	default:
		id = s.store.AddEducation(resume.Education{})
		t := Record(k, id)
		s.open(t, "")
		return t, nil
	}

	t := Record(k, id)
	if err := s.Begin(t); err != nil {
		return Target{}, err
	}
	return t, nil
}
