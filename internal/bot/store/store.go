// Package store is the persistence façade of the bot core. It owns
// normalization (question case-folding), id and timestamp assignment, and the
// transactional scan-then-mark used by the notifier. Callers treat any
// returned error as "the operation did not happen".
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/dmitrijs2005/teambot/internal/bot/models"
	"github.com/dmitrijs2005/teambot/internal/bot/repositories/repomanager"
	"github.com/dmitrijs2005/teambot/internal/clockx"
	"github.com/dmitrijs2005/teambot/internal/dbx"
	"github.com/google/uuid"
)

// Store exposes the record collections (Q&A pairs, contacts, events, digests)
// to the dialog engine, dispatcher and notifier.
type Store struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	clock clockx.Clock
}

// New builds a Store over the given connection and repository manager.
func New(db *sql.DB, repos repomanager.RepositoryManager, clock clockx.Clock) *Store {
	return &Store{db: db, repos: repos, clock: clock}
}

// newID is a seam for tests that need deterministic ids.
var newID = uuid.NewString

// UpsertQA stores the answer under the case-folded question, replacing any
// existing answer for that question.
func (s *Store) UpsertQA(ctx context.Context, question, answer string) error {
	entry := &models.QAEntry{
		ID:        newID(),
		Question:  strings.ToLower(question),
		Answer:    answer,
		CreatedAt: s.clock.Now(),
	}
	return s.repos.QA(s.db).Upsert(ctx, entry)
}

// LookupQA returns the stored answer for the question, case-folding before
// lookup. A miss surfaces as common.ErrorNotFound.
func (s *Store) LookupQA(ctx context.Context, question string) (string, error) {
	entry, err := s.repos.QA(s.db).GetByQuestion(ctx, strings.ToLower(question))
	if err != nil {
		return "", err
	}
	return entry.Answer, nil
}

// AddContact appends a contact. Duplicate names are allowed.
func (s *Store) AddContact(ctx context.Context, name, info string) error {
	contact := &models.Contact{
		ID:        newID(),
		Name:      name,
		Info:      info,
		CreatedAt: s.clock.Now(),
	}
	return s.repos.Contacts(s.db).Create(ctx, contact)
}

// ListContacts returns all contacts sorted by name ascending.
func (s *Store) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return s.repos.Contacts(s.db).GetAll(ctx)
}

// FindContact returns the first contact whose name contains substr, or
// common.ErrorNotFound. Ambiguous substrings silently pick one match.
func (s *Store) FindContact(ctx context.Context, substr string) (*models.Contact, error) {
	return s.repos.Contacts(s.db).FindFirst(ctx, substr)
}

// AddEvent appends an event with a generated id.
func (s *Store) AddEvent(ctx context.Context, name string, date time.Time, description string) error {
	event := &models.Event{
		ID:          newID(),
		Name:        name,
		Date:        date,
		Description: description,
		CreatedAt:   s.clock.Now(),
	}
	return s.repos.Events(s.db).Create(ctx, event)
}

// DueEvents lists un-notified events with date >= now, ascending by date.
// A non-nil windowEnd bounds the range from above; nil means unbounded.
func (s *Store) DueEvents(ctx context.Context, windowEnd *time.Time) ([]models.Event, error) {
	return s.repos.Events(s.db).Due(ctx, s.clock.Now(), windowEnd)
}

// MarkNotified flips the notified flag for the event with the given id.
func (s *Store) MarkNotified(ctx context.Context, id string) error {
	return s.repos.Events(s.db).MarkNotified(ctx, id)
}

// MarkNotifiedByNameDate flips the notified flag for the event matching both
// name and date exactly. Kept for legacy compatibility; matching zero rows is
// not an error.
func (s *Store) MarkNotifiedByNameDate(ctx context.Context, name string, date time.Time) error {
	return s.repos.Events(s.db).MarkNotifiedByNameDate(ctx, name, date)
}

// ClaimDueEvents selects the events due between now and windowEnd and marks
// them notified in the same transaction, so a concurrent run cannot pick up
// the same events and double-notify.
func (s *Store) ClaimDueEvents(ctx context.Context, windowEnd time.Time) ([]models.Event, error) {
	var claimed []models.Event
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Events(tx)
		due, err := repo.Due(ctx, s.clock.Now(), &windowEnd)
		if err != nil {
			return err
		}
		for _, e := range due {
			if err := repo.MarkNotified(ctx, e.ID); err != nil {
				return err
			}
		}
		claimed = due
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// AddDigest appends a digest to the broadcast log.
func (s *Store) AddDigest(ctx context.Context, content string) error {
	digest := &models.Digest{
		ID:        newID(),
		Content:   content,
		CreatedAt: s.clock.Now(),
	}
	return s.repos.Digests(s.db).Create(ctx, digest)
}

// RecentDigests returns up to limit digests, most recent first.
func (s *Store) RecentDigests(ctx context.Context, limit int) ([]models.Digest, error) {
	return s.repos.Digests(s.db).Recent(ctx, limit)
}
