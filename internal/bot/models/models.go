// Package models defines the persisted records of the team assistant:
// Q&A pairs, colleague contacts, upcoming events and broadcast digests.
package models

import "time"

// QAEntry is a stored question/answer pair. Question is kept case-folded and
// is unique; inserting the same question again replaces the answer.
type QAEntry struct {
	ID        string
	Question  string
	Answer    string
	CreatedAt time.Time
}

// Contact is a colleague directory entry. Names are not unique; duplicates
// are allowed.
type Contact struct {
	ID        string
	Name      string
	Info      string
	CreatedAt time.Time
}

// Event is a dated reminder. Notified flips to true exactly once, when the
// event has been surfaced by the notifier. Events are never deleted here.
type Event struct {
	ID          string
	Name        string
	Date        time.Time
	Description string
	Notified    bool
	CreatedAt   time.Time
}

// Digest is an opaque content blob intended for periodic broadcast.
// The digest log is append-only.
type Digest struct {
	ID        string
	Content   string
	CreatedAt time.Time
}
