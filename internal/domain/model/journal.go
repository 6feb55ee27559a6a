package model

import "time"

// JournalKind distinguishes the two kinds of audit entries.
type JournalKind string

const (
	JournalKindDelivered JournalKind = "delivered" // A verdict reached the chat.
	JournalKindFailure   JournalKind = "failure"   // A new failure mode was observed.
)

// JournalEntry is one row of the append-only audit log.
type JournalEntry struct {
	ID         int64
	Kind       JournalKind
	Text       string
	RecordedAt time.Time
}
