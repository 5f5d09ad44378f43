package resume

import (
	"strconv"
	"sync"
)

// IDFloor is the lowest id the store hands out.
const IDFloor = 200

// Listener receives a snapshot of the document after every mutation.
type Listener func(Document)

// Store is the single owner of a resume document. All mutations go through
// its methods; reads return deep copies.
type Store struct {
	mu        sync.Mutex
	doc       Document
	nextID    int
	version   uint64
	listeners []Listener

	// notifyMu orders deliveries; it is never taken while mu is held.
	notifyMu sync.Mutex
	notified uint64
}

// NewStore returns a store holding the empty document.
func NewStore() *Store {
	return &Store{doc: Empty(), nextID: IDFloor}
}

// Subscribe registers fn to be called after every mutation, in registration
// order. Listeners see snapshots in mutation order: a snapshot overtaken by a
// newer one before it could be delivered is skipped. Listeners must not
// mutate the store.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Document returns a copy of the current document.
func (s *Store) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.clone()
}

// NextID returns the id the next Add call will assign.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// mutate applies fn under the lock, then notifies listeners outside it.
func (s *Store) mutate(fn func(d *Document)) {
	s.mu.Lock()
	fn(&s.doc)
	s.version++
	version := s.version
	snapshot := s.doc.clone()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if version < s.notified {
		return
	}
	s.notified = version
	for _, l := range listeners {
		l(snapshot)
	}
}

// allocID must be called with the lock held.
func (s *Store) allocID() string {
	id := strconv.Itoa(s.nextID)
	s.nextID++
	return id
}

// UpdatePersonalInfo merges the non-nil patch fields into PersonalInfo.
func (s *Store) UpdatePersonalInfo(p PersonalInfoPatch) {
	s.mutate(func(d *Document) { p.apply(&d.PersonalInfo) })
}

// AddExperience appends e with a freshly assigned id and returns that id.
// Any id on e is ignored.
func (s *Store) AddExperience(e Experience) string {
	var id string
	s.mutate(func(d *Document) {
		id = s.allocID()
		e.ID = id
		d.Experience = append(d.Experience, e)
	})
	return id
}

// UpdateExperience merges p into the experience with the given id. Unknown ids are ignored.
func (s *Store) UpdateExperience(id string, p ExperiencePatch) {
	s.mutate(func(d *Document) {
		for i := range d.Experience {
			if d.Experience[i].ID == id {
				p.apply(&d.Experience[i])
			}
		}
	})
}

// DeleteExperience removes the experience with the given id, if any.
func (s *Store) DeleteExperience(id string) {
	s.mutate(func(d *Document) {
		d.Experience = removeWhere(d.Experience, func(e Experience) bool { return e.ID == id })
	})
}

// AddEducation appends e with a freshly assigned id and returns that id.
func (s *Store) AddEducation(e Education) string {
	var id string
	s.mutate(func(d *Document) {
		id = s.allocID()
		e.ID = id
		d.Education = append(d.Education, e)
	})
	return id
}

// UpdateEducation merges p into the education entry with the given id.
func (s *Store) UpdateEducation(id string, p EducationPatch) {
	s.mutate(func(d *Document) {
		for i := range d.Education {
			if d.Education[i].ID == id {
				p.apply(&d.Education[i])
			}
		}
	})
}

// DeleteEducation removes the education entry with the given id, if any.
func (s *Store) DeleteEducation(id string) {
	s.mutate(func(d *Document) {
		d.Education = removeWhere(d.Education, func(e Education) bool { return e.ID == id })
	})
}

// AddSkill appends sk with a freshly assigned id and returns that id.
func (s *Store) AddSkill(sk Skill) string {
	var id string
	s.mutate(func(d *Document) {
		id = s.allocID()
		sk.ID = id
		d.Skills = append(d.Skills, sk)
	})
	return id
}

// UpdateSkill merges p into the skill with the given id.
func (s *Store) UpdateSkill(id string, p SkillPatch) {
	s.mutate(func(d *Document) {
		for i := range d.Skills {
			if d.Skills[i].ID == id {
				p.apply(&d.Skills[i])
			}
		}
	})
}

// DeleteSkill removes the skill with the given id, if any.
func (s *Store) DeleteSkill(id string) {
	s.mutate(func(d *Document) {
		d.Skills = removeWhere(d.Skills, func(sk Skill) bool { return sk.ID == id })
	})
}

// SetFresher sets the fresher flag. Existing experience records are kept.
func (s *Store) SetFresher(fresher bool) {
	s.mutate(func(d *Document) { d.IsFresher = fresher })
}

// ResetData replaces the document with the empty one and rewinds the id counter.
func (s *Store) ResetData() {
	s.mutate(func(d *Document) {
		*d = Empty()
		s.nextID = IDFloor
	})
}

// Load replaces the document wholesale and moves the counter past every
// numeric id it contains.
func (s *Store) Load(doc Document) {
	doc = doc.clone()
	doc.normalize()
	s.mutate(func(d *Document) {
		*d = doc
		s.nextID = RestoredCounter(doc)
	})
}

// RestoredCounter returns max(numeric ids, IDFloor) + 1. Ids whose leading
// characters are not digits count as zero.
func RestoredCounter(doc Document) int {
	maxID := IDFloor
	consider := func(id string) {
		if n := leadingInt(id); n > maxID {
			maxID = n
		}
	}
	for _, e := range doc.Experience {
		consider(e.ID)
	}
	for _, e := range doc.Education {
		consider(e.ID)
	}
	for _, sk := range doc.Skills {
		consider(sk.ID)
	}
	return maxID + 1
}

// leadingInt parses the decimal prefix of s, returning 0 when there is none.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func removeWhere[T any](items []T, match func(T) bool) []T {
	out := items[:0:0]
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	if out == nil {
		out = []T{}
	}
	return out
}
