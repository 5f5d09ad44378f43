// Package wizard implements the multi-step resume form: draft records that
// are validated and held locally until the step is saved into the store.
package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/jonathan/resume-builder/internal/resume"
)

// Errors returned by Save* when a step has nothing to save.
var (
	ErrNoExperience = errors.New("please add at least one work experience before continuing")
	ErrNoEducation  = errors.New("please add at least one education entry before continuing")
	ErrNoSkills     = errors.New("please add at least one skill before continuing")
)

// ErrPendingNotFound is returned when removing an unknown pending record.
type ErrPendingNotFound struct {
	Section Section
	ID      string
}

func (e *ErrPendingNotFound) Error() string {
	return fmt.Sprintf("pending %s entry not found: %s", e.Section, e.ID)
}

// Wizard holds pending records per section on top of a store.
type Wizard struct {
	store *resume.Store

	mu         sync.Mutex
	seq        int
	experience []resume.Experience
	education  []resume.Education
	skills     []resume.Skill
}

// New returns a wizard writing into store.
func New(store *resume.Store) *Wizard {
	return &Wizard{store: store}
}

func (w *Wizard) pendingID() string {
	w.seq++
	return "pending-" + strconv.Itoa(w.seq)
}

// SavePersonalInfo validates the form and overwrites PersonalInfo on success.
func (w *Wizard) SavePersonalInfo(info resume.PersonalInfo) error {
	if err := resume.ValidatePersonalInfo(info); err != nil {
		return err
	}
	w.store.UpdatePersonalInfo(resume.FullPatch(info))
	return nil
}

// AddExperience validates e and queues it. The returned id is local to the wizard.
func (w *Wizard) AddExperience(e resume.Experience) (string, error) {
	if err := resume.ValidateExperience(e); err != nil {
		return "", err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	e.ID = w.pendingID()
	w.experience = append(w.experience, e)
	return e.ID, nil
}

// AddEducation validates e and queues it.
func (w *Wizard) AddEducation(e resume.Education) (string, error) {
	if err := resume.ValidateEducation(e); err != nil {
		return "", err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	e.ID = w.pendingID()
	w.education = append(w.education, e)
	return e.ID, nil
}

// AddSkill validates sk and queues it.
func (w *Wizard) AddSkill(sk resume.Skill) (string, error) {
	if err := resume.ValidateSkill(sk); err != nil {
		return "", err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	sk.ID = w.pendingID()
	w.skills = append(w.skills, sk)
	return sk.ID, nil
}

// Remove drops a pending record from section.
func (w *Wizard) Remove(section Section, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	removed := false
	switch section {
	case SectionExperience:
		w.experience, removed = without(w.experience, func(e resume.Experience) bool { return e.ID == id })
	case SectionEducation:
		w.education, removed = without(w.education, func(e resume.Education) bool { return e.ID == id })
	case SectionSkills:
		w.skills, removed = without(w.skills, func(s resume.Skill) bool { return s.ID == id })
	default:
		return &ErrUnknownSection{Value: string(section)}
	}
	if !removed {
		return &ErrPendingNotFound{Section: section, ID: id}
	}
	return nil
}

// Pending is the set of queued records for every section.
type Pending struct {
	Experience []resume.Experience `json:"experience"`
	Education  []resume.Education  `json:"education"`
	Skills     []resume.Skill      `json:"skills"`
}

// Pending returns a copy of every queued record.
func (w *Wizard) Pending() Pending {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Pending{
		Experience: append([]resume.Experience{}, w.experience...),
		Education:  append([]resume.Education{}, w.education...),
		Skills:     append([]resume.Skill{}, w.skills...),
	}
}

// SetFresher records the fresher flag. Turning it on discards queued experience.
func (w *Wizard) SetFresher(fresher bool) {
	if fresher {
		w.mu.Lock()
		w.experience = nil
		w.mu.Unlock()
	}
	w.store.SetFresher(fresher)
}

// SaveExperience flushes queued experience into the store. A fresher has
// nothing to save; everyone else needs at least one saved or queued entry.
func (w *Wizard) SaveExperience() error {
	doc := w.store.Document()
	if doc.IsFresher {
		return nil
	}
	w.mu.Lock()
	queued := w.experience
	w.experience = nil
	w.mu.Unlock()

	if len(queued) == 0 && len(doc.Experience) == 0 {
		return ErrNoExperience
	}
	for _, e := range queued {
		w.store.AddExperience(e)
	}
	return nil
}

// SaveEducation flushes queued education into the store.
func (w *Wizard) SaveEducation() error {
	w.mu.Lock()
	queued := w.education
	w.education = nil
	w.mu.Unlock()

	if len(queued) == 0 && len(w.store.Document().Education) == 0 {
		return ErrNoEducation
	}
	for _, e := range queued {
		w.store.AddEducation(e)
	}
	return nil
}

// SaveSkills flushes queued skills into the store.
func (w *Wizard) SaveSkills() error {
	w.mu.Lock()
	queued := w.skills
	w.skills = nil
	w.mu.Unlock()

	if len(queued) == 0 && len(w.store.Document().Skills) == 0 {
		return ErrNoSkills
	}
	for _, sk := range queued {
		w.store.AddSkill(sk)
	}
	return nil
}

// Save dispatches to the Save method for section.
func (w *Wizard) Save(section Section) error {
	switch section {
	case SectionExperience:
		return w.SaveExperience()
	case SectionEducation:
		return w.SaveEducation()
	case SectionSkills:
		return w.SaveSkills()
	default:
		return &ErrUnknownSection{Value: string(section)}
	}
}

func without[T any](items []T, match func(T) bool) ([]T, bool) {
	for i, it := range items {
		if match(it) {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}
