package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// Persister mirrors a resume.Store into a Storage under DocumentKey.
// Storage failures are logged and never surface to the store's callers.
type Persister struct {
	storage Storage
	logger  *logrus.Logger
}

// NewPersister returns a persister writing to s. A nil logger uses the logrus standard logger.
func NewPersister(s Storage, logger *logrus.Logger) *Persister {
	return &Persister{storage: s, logger: logging.OrStandard(logger)}
}

// Open restores any saved document into store and then keeps the saved
// copy current after every mutation. It reports whether a document was restored.
func (p *Persister) Open(ctx context.Context, store *resume.Store) bool {
	restored := p.Restore(ctx, store)
	p.Attach(store)
	return restored
}

// Restore loads the saved document into store. A missing, unreadable or
// corrupt entry leaves store untouched.
func (p *Persister) Restore(ctx context.Context, store *resume.Store) bool {
	raw, ok, err := p.storage.Get(ctx, DocumentKey)
	if err != nil {
		p.logger.WithError(err).WithField("key", DocumentKey).Error("Error loading resume data")
		return false
	}
	if !ok {
		return false
	}

	doc, err := Decode([]byte(raw))
	if err != nil {
		p.logger.WithError(err).WithField("key", DocumentKey).Error("Error loading resume data")
		return false
	}

	if err := schemas.ValidateDocument([]byte(raw)); err != nil {
		p.logger.WithField("key", DocumentKey).Warnf("Saved resume data does not match schema: %v", err)
	}

	store.Load(doc)
	return true
}

// Attach subscribes the persister to store.
func (p *Persister) Attach(store *resume.Store) {
	store.Subscribe(p.save)
}

func (p *Persister) save(doc resume.Document) {
	data, err := json.Marshal(doc)
	if err != nil {
		p.logger.WithError(err).Error("Error encoding resume data")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := p.storage.Set(ctx, DocumentKey, string(data)); err != nil {
		p.logger.WithError(err).WithField("key", DocumentKey).Error("Error saving resume data")
	}
}

// Decode parses a persisted document. Missing lists come back empty.
func Decode(data []byte) (resume.Document, error) {
	doc := resume.Empty()
	if err := json.Unmarshal(data, &doc); err != nil {
		return resume.Document{}, err
	}
	if doc.Experience == nil {
		doc.Experience = []resume.Experience{}
	}
	if doc.Education == nil {
		doc.Education = []resume.Education{}
	}
	if doc.Skills == nil {
		doc.Skills = []resume.Skill{}
	}
	return doc, nil
}
