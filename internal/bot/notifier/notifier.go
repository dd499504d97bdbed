// Package notifier implements the periodic digest/event broadcast. It only
// provides run-once semantics; the schedule belongs to the caller.
package notifier

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/teambot/internal/bot/models"
	"github.com/dmitrijs2005/teambot/internal/clockx"
	"github.com/dmitrijs2005/teambot/internal/logging"
)

// Store is the slice of the persistence façade the notifier reads from.
// ClaimDueEvents must mark the returned events notified transactionally.
type Store interface {
	RecentDigests(ctx context.Context, limit int) ([]models.Digest, error)
	ClaimDueEvents(ctx context.Context, windowEnd time.Time) ([]models.Event, error)
}

// Sink is the outgoing-message boundary shared with the dispatcher.
type Sink interface {
	SendMessage(ctx context.Context, userID, text string) error
}

// RecipientsFunc enumerates the identifiers to broadcast to. Recipient
// management is the caller's concern; a static list can be wrapped in a
// closure.
type RecipientsFunc func(ctx context.Context) ([]string, error)

// eventWindow approximates "today" as a literal 1-day forward window. It is
// not calendar-day-exact; the approximation is kept on purpose.
const eventWindow = 24 * time.Hour

const noDigestPlaceholder = "No new digests today."

// Notifier composes the daily broadcast from the latest digest and today's
// due events.
type Notifier struct {
	store      Store
	sink       Sink
	clock      clockx.Clock
	recipients RecipientsFunc
	logger     logging.Logger

	// running guards against overlapping invocations.
	running sync.Mutex
}

// New builds a Notifier.
func New(store Store, sink Sink, clock clockx.Clock, recipients RecipientsFunc, logger logging.Logger) *Notifier {
	return &Notifier{
		store:      store,
		sink:       sink,
		clock:      clock,
		recipients: recipients,
		logger:     logger.With("module", "notifier"),
	}
}

// RunOnce performs a single broadcast: latest digest plus the events due
// within the next day, sent to every recipient. At most one invocation runs
// at a time; an overlapping call returns immediately. Send failures are
// logged per recipient and do not abort the rest of the broadcast.
func (n *Notifier) RunOnce(ctx context.Context) error {
	if !n.running.TryLock() {
		n.logger.Warn(ctx, "previous run still in progress, skipping")
		return nil
	}
	defer n.running.Unlock()

	recipients, err := n.recipients(ctx)
	if err != nil {
		return err
	}

	// Resolve recipients before claiming events: a claim marks events
	// notified, so it must be the last step that can fail.
	message, err := n.compose(ctx)
	if err != nil {
		return err
	}

	for _, userID := range recipients {
		if err := n.sink.SendMessage(ctx, userID, message); err != nil {
			n.logger.Error(ctx, "broadcast send failed", "user_id", userID, "error", err.Error())
		}
	}

	n.logger.Info(ctx, "broadcast complete", "recipients", len(recipients))
	return nil
}

func (n *Notifier) compose(ctx context.Context) (string, error) {
	digests, err := n.store.RecentDigests(ctx, 1)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Daily digest:\n\n")
	if len(digests) > 0 {
		b.WriteString(digests[0].Content)
	} else {
		b.WriteString(noDigestPlaceholder)
	}

	windowEnd := n.clock.Now().Add(eventWindow)
	events, err := n.store.ClaimDueEvents(ctx, windowEnd)
	if err != nil {
		return "", err
	}
	if len(events) > 0 {
		b.WriteString("\n\nToday's events:\n")
		for _, e := range events {
			b.WriteString("• " + e.Name + "\n")
		}
	}

	return b.String(), nil
}
