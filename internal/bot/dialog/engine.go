// Package dialog implements the multi-step conversation engine: a per-user
// finite-state machine that collects input one message at a time, validates
// it and writes to the store when a flow completes.
package dialog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/teambot/internal/common"
)

// Flow names a conversational flow started by its entry-point command.
type Flow string

const (
	FlowQuestion   Flow = "question"
	FlowAnswer     Flow = "answer"
	FlowAddContact Flow = "add_contact"
	FlowAddEvent   Flow = "add_event"
	FlowAddDigest  Flow = "add_digest"
)

// Store is the slice of the persistence façade the engine writes to on flow
// completion.
type Store interface {
	UpsertQA(ctx context.Context, question, answer string) error
	LookupQA(ctx context.Context, question string) (string, error)
	AddContact(ctx context.Context, name, info string) error
	AddEvent(ctx context.Context, name string, date time.Time, description string) error
	AddDigest(ctx context.Context, content string) error
}

// User-facing dialog replies. Wording follows the original assistant.
const (
	replyAskQuestion    = "Ask your question about the company/project/team:"
	replyAnswerFormat   = "Enter the question and answer in the format:\nQuestion: your question\nAnswer: your answer"
	replyQABadFormat    = "Invalid format. Use:\nQuestion: ...\nAnswer: ..."
	replyQAEmpty        = "Question and answer cannot be empty."
	replyQASaved        = "Answer saved successfully!"
	replyUnknownAnswer  = "Sorry, I don't know the answer to that question.\nUse /answer to add one."
	replyContactName    = "Enter the colleague's name:"
	replyContactInfo    = "Enter contact details (phone, email, role, etc.):"
	replyNameEmpty      = "Name cannot be empty."
	replyEventName      = "Enter the event name:"
	replyEventDate      = "Enter the event date and time in the format:\nDD.MM.YYYY HH:MM\nFor example: 25.12.2024 15:00"
	replyEventBadDate   = "Invalid date format. Use: DD.MM.YYYY HH:MM"
	replyEventDesc      = "Enter the event description (or send '-' to skip):"
	replyDigestContent  = "Enter the digest content:"
	replyDigestSaved    = "Digest added successfully!"
	replyCancelled      = "Operation cancelled."
	replyNothingActive  = "No active operation to cancel."
	replySkipDescMarker = "-"
)

// Engine runs one session per user. All handling for a user is serialized on
// the session mutex; different users proceed in parallel.
type Engine struct {
	store Store

	mu       sync.Mutex
	sessions map[string]*session
}

// NewEngine builds an Engine over the given store slice.
func NewEngine(store Store) *Engine {
	return &Engine{store: store, sessions: make(map[string]*session)}
}

func (e *Engine) get(userID string) *session {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[userID]
	if !ok {
		s = &session{}
		e.sessions[userID] = s
	}
	return s
}

func (e *Engine) lookup(userID string) *session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[userID]
}

// Active reports whether the user has a dialog in progress.
func (e *Engine) Active(userID string) bool {
	s := e.lookup(userID)
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != StateIdle
}

// StartFlow begins a flow for the user and returns the first prompt. An
// already active session for the same user is replaced: the prior partial
// input is discarded rather than stacked.
func (e *Engine) StartFlow(ctx context.Context, userID string, flow Flow) string {
	s := e.get(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	switch flow {
	case FlowQuestion:
		s.state = StateAwaitQuestion
		return replyAskQuestion
	case FlowAnswer:
		s.state = StateAwaitQAText
		return replyAnswerFormat
	case FlowAddContact:
		s.state = StateAwaitContactName
		return replyContactName
	case FlowAddEvent:
		s.state = StateAwaitEventName
		return replyEventName
	case FlowAddDigest:
		s.state = StateAwaitDigestContent
		return replyDigestContent
	default:
		return ""
	}
}

// Cancel unconditionally returns the user's session to idle, discarding any
// partial input.
func (e *Engine) Cancel(ctx context.Context, userID string) string {
	s := e.lookup(userID)
	if s == nil {
		return replyNothingActive
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		return replyNothingActive
	}
	s.reset()
	return replyCancelled
}

// HandleText advances the user's dialog with one free-text message and
// returns the reply. A non-nil error reports a persistence failure: the
// session has already been reset and the caller is expected to map the error
// to a generic failure reply. Text for an idle session yields an empty reply.
func (e *Engine) HandleText(ctx context.Context, userID, text string) (string, error) {
	s := e.lookup(userID)
	if s == nil {
		return "", nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateAwaitQuestion:
		s.reset()
		answer, err := e.store.LookupQA(ctx, text)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return replyUnknownAnswer, nil
			}
			return "", err
		}
		return "Answer:\n" + answer, nil

	case StateAwaitQAText:
		s.reset()
		question, answer, err := ParseQA(text)
		if err != nil {
			if errors.Is(err, ErrEmptyQA) {
				return replyQAEmpty, nil
			}
			return replyQABadFormat, nil
		}
		if err := e.store.UpsertQA(ctx, question, answer); err != nil {
			return "", err
		}
		return replyQASaved, nil

	case StateAwaitContactName:
		name := strings.TrimSpace(text)
		if name == "" {
			s.reset()
			return replyNameEmpty, nil
		}
		s.contactName = name
		s.state = StateAwaitContactInfo
		return replyContactInfo, nil

	case StateAwaitContactInfo:
		name := s.contactName
		s.reset()
		if err := e.store.AddContact(ctx, name, text); err != nil {
			return "", err
		}
		return "Contact " + name + " added successfully!", nil

	case StateAwaitEventName:
		name := strings.TrimSpace(text)
		if name == "" {
			s.reset()
			return replyNameEmpty, nil
		}
		s.eventName = name
		s.state = StateAwaitEventDate
		return replyEventDate, nil

	case StateAwaitEventDate:
		date, err := ParseEventDate(text)
		if err != nil {
			// The one retry loop: the session stays on the date step.
			return replyEventBadDate, nil
		}
		s.eventDate = date
		s.state = StateAwaitEventDescription
		return replyEventDesc, nil

	case StateAwaitEventDescription:
		description := text
		if description == replySkipDescMarker {
			description = ""
		}
		name, date := s.eventName, s.eventDate
		s.reset()
		if err := e.store.AddEvent(ctx, name, date, description); err != nil {
			return "", err
		}
		return "Event '" + name + "' added successfully!", nil

	case StateAwaitDigestContent:
		s.reset()
		if err := e.store.AddDigest(ctx, text); err != nil {
			return "", err
		}
		return replyDigestSaved, nil

	default:
		// Idle: free text is not routed to the engine.
		return "", nil
	}
}
