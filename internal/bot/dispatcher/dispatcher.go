// Package dispatcher routes an inbound message either to a stateless command
// handler or into the user's active dialog session. It is also the single
// error-mapping layer: a failed operation is reported to the user as one
// generic reply and never takes the process down.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/teambot/internal/bot/dialog"
	"github.com/dmitrijs2005/teambot/internal/bot/models"
	"github.com/dmitrijs2005/teambot/internal/common"
	"github.com/dmitrijs2005/teambot/internal/logging"
)

// Inbound is the transport-agnostic incoming message. Command carries the
// token (without the leading slash) when the transport recognized a command
// invocation; it is empty for plain text.
type Inbound struct {
	UserID  string
	Text    string
	Command string
}

// Sink is the outgoing-message boundary. Delivery is fire-and-forget from the
// core's perspective.
type Sink interface {
	SendMessage(ctx context.Context, userID, text string) error
}

// Store is the read slice of the persistence façade used by the stateless
// command handlers.
type Store interface {
	ListContacts(ctx context.Context) ([]models.Contact, error)
	FindContact(ctx context.Context, substr string) (*models.Contact, error)
	DueEvents(ctx context.Context, windowEnd *time.Time) ([]models.Event, error)
	RecentDigests(ctx context.Context, limit int) ([]models.Digest, error)
}

const (
	recentDigestLimit = 5

	replyStart = `Hi! I am the team assistant bot.

Available commands:
/help - Show this help
/question - Ask a question about the company/project
/answer - Add an answer to a question
/contacts - Show all contacts
/add_contact - Add a colleague's contact
/find_contact - Find a contact
/events - Show upcoming events
/add_event - Add an event/reminder
/digest - Show recent digests
/add_digest - Add a digest`

	replyHelp = `Command reference:

Company/project information:
/question - Ask a question
/answer - Add an answer to a question

Contacts:
/contacts - List all contacts
/add_contact - Add a new contact
/find_contact - Find a contact by name

Events:
/events - Upcoming events
/add_event - Add a new event

Digests:
/digest - Recent digests
/add_digest - Add a new digest`

	replyNoContacts       = "No contacts found. Use /add_contact to add one."
	replyNoEvents         = "No upcoming events found."
	replyNoDigests        = "No digests found. Use /add_digest to add one."
	replyFindContactUsage = "Usage: /find_contact <name>"
	replyGenericFailure   = "Something went wrong. Please try again later."
)

// Dispatcher glues the transport boundary to the dialog engine and the
// stateless handlers.
type Dispatcher struct {
	store  Store
	engine *dialog.Engine
	sink   Sink
	logger logging.Logger
}

// New builds a Dispatcher.
func New(store Store, engine *dialog.Engine, sink Sink, logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		engine: engine,
		sink:   sink,
		logger: logger.With("module", "dispatcher"),
	}
}

// Dispatch handles one inbound message to completion. Errors are logged and
// answered with a generic failure reply; they never propagate to the caller,
// so one failed message cannot affect unrelated users.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Inbound) {
	reply, err := d.handle(ctx, msg)
	if err != nil {
		d.logger.Error(ctx, "message handling failed", "user_id", msg.UserID, "command", msg.Command, "error", err.Error())
		reply = replyGenericFailure
	}
	if reply == "" {
		return
	}
	if err := d.sink.SendMessage(ctx, msg.UserID, reply); err != nil {
		d.logger.Error(ctx, "send failed", "user_id", msg.UserID, "error", err.Error())
	}
}

func (d *Dispatcher) handle(ctx context.Context, msg Inbound) (string, error) {
	switch msg.Command {
	case "":
		if !d.engine.Active(msg.UserID) {
			// Free text with no active dialog is ignored.
			return "", nil
		}
		return d.engine.HandleText(ctx, msg.UserID, msg.Text)

	case "start":
		return replyStart, nil
	case "help":
		return replyHelp, nil

	case "question":
		return d.engine.StartFlow(ctx, msg.UserID, dialog.FlowQuestion), nil
	case "answer":
		return d.engine.StartFlow(ctx, msg.UserID, dialog.FlowAnswer), nil
	case "add_contact":
		return d.engine.StartFlow(ctx, msg.UserID, dialog.FlowAddContact), nil
	case "add_event":
		return d.engine.StartFlow(ctx, msg.UserID, dialog.FlowAddEvent), nil
	case "add_digest":
		return d.engine.StartFlow(ctx, msg.UserID, dialog.FlowAddDigest), nil
	case "cancel":
		return d.engine.Cancel(ctx, msg.UserID), nil

	case "contacts":
		return d.showContacts(ctx)
	case "find_contact":
		return d.findContact(ctx, commandArgs(msg))
	case "events":
		return d.showEvents(ctx)
	case "digest":
		return d.showDigests(ctx)

	default:
		d.logger.Warn(ctx, "unknown command ignored", "user_id", msg.UserID, "command", msg.Command)
		return "", nil
	}
}

// commandArgs returns the text following the command token, e.g. "John Doe"
// for "/find_contact John Doe".
func commandArgs(msg Inbound) string {
	fields := strings.Fields(msg.Text)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}

func (d *Dispatcher) showContacts(ctx context.Context) (string, error) {
	list, err := d.store.ListContacts(ctx)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return replyNoContacts, nil
	}
	var b strings.Builder
	b.WriteString("Contacts:\n")
	for _, c := range list {
		fmt.Fprintf(&b, "\n%s\n", c.Name)
		if c.Info != "" {
			fmt.Fprintf(&b, "  %s\n", c.Info)
		}
	}
	return b.String(), nil
}

func (d *Dispatcher) findContact(ctx context.Context, name string) (string, error) {
	if name == "" {
		return replyFindContactUsage, nil
	}
	c, err := d.store.FindContact(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Sprintf("Contact %q not found.", name), nil
		}
		return "", err
	}
	if c.Info != "" {
		return c.Name + "\n" + c.Info, nil
	}
	return c.Name, nil
}

func (d *Dispatcher) showEvents(ctx context.Context) (string, error) {
	list, err := d.store.DueEvents(ctx, nil)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return replyNoEvents, nil
	}
	var b strings.Builder
	b.WriteString("Upcoming events:\n")
	for _, e := range list {
		fmt.Fprintf(&b, "\n%s\n  %s\n", e.Name, e.Date.Format(dialog.EventDateLayout))
		if e.Description != "" {
			fmt.Fprintf(&b, "  %s\n", e.Description)
		}
	}
	return b.String(), nil
}

func (d *Dispatcher) showDigests(ctx context.Context) (string, error) {
	list, err := d.store.RecentDigests(ctx, recentDigestLimit)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return replyNoDigests, nil
	}
	var b strings.Builder
	b.WriteString("Recent digests:\n")
	for i, digest := range list {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, digest.Content)
	}
	return b.String(), nil
}
