package dialog

import (
	"sync"
	"time"
)

// State names the step a user's dialog is waiting on. StateIdle means no
// dialog is active.
type State int

const (
	StateIdle State = iota
	StateAwaitQuestion
	StateAwaitQAText
	StateAwaitContactName
	StateAwaitContactInfo
	StateAwaitEventName
	StateAwaitEventDate
	StateAwaitEventDescription
	StateAwaitDigestContent
)

// session holds one user's in-flight dialog: the current state plus the
// partially collected fields. Sessions live in memory only; a restart drops
// all in-flight dialogs.
//
// mu serializes all handling for this user; cross-user work stays parallel.
type session struct {
	mu    sync.Mutex
	state State

	contactName string
	eventName   string
	eventDate   time.Time
}

// reset returns the session to idle and discards the scratch fields.
func (s *session) reset() {
	s.state = StateIdle
	s.contactName = ""
	s.eventName = ""
	s.eventDate = time.Time{}
}
