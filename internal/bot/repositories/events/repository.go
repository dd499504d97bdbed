package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/teambot/internal/bot/models"
)

// Repository stores dated reminders.
//
// Events are identified by a generated id. The name+date variant of
// MarkNotified is kept only for compatibility with the legacy identification
// scheme: it may silently match zero rows when the stored date has lost
// precision relative to the query, which is exactly why ids are primary now.
type Repository interface {
	// Create appends an event.
	Create(ctx context.Context, e *models.Event) error

	// Due lists un-notified events with date >= now, ascending by date.
	// A non-nil windowEnd adds the upper bound date <= windowEnd.
	Due(ctx context.Context, now time.Time, windowEnd *time.Time) ([]models.Event, error)

	// MarkNotified flips notified to true for the event with the given id.
	MarkNotified(ctx context.Context, id string) error

	// MarkNotifiedByNameDate flips notified for the event matching both name
	// and date exactly. Matching zero rows is not an error.
	MarkNotifiedByNameDate(ctx context.Context, name string, date time.Time) error
}
