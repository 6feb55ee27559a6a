package application

import "github.com/ericfisherdev/hwnotify/internal/domain/model"

// ChangeTracker remembers the last verdict that reached the chat and the last
// failure text seen, so unchanged statuses and repeated failures are not
// reported twice. It is owned by a single poll loop and is not safe for
// concurrent use.
type ChangeTracker struct {
	lastMessage   model.Verdict
	lastErrorText string
}

// NewChangeTracker returns a tracker with empty state.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{}
}

// ShouldNotify reports whether v differs from the last delivered verdict.
func (t *ChangeTracker) ShouldNotify(v model.Verdict) bool {
	return v != t.lastMessage
}

// RecordNotified marks v as delivered. Call only after a successful send.
func (t *ChangeTracker) RecordNotified(v model.Verdict) {
	t.lastMessage = v
}

// RecordError stores the text of err and reports whether it is a new failure
// mode, i.e. differs from the previously recorded text.
func (t *ChangeTracker) RecordError(err error) bool {
	if err == nil {
		return false
	}
	text := err.Error()
	if text == t.lastErrorText {
		return false
	}
	t.lastErrorText = text
	return true
}

// LastMessage returns the last delivered verdict.
func (t *ChangeTracker) LastMessage() model.Verdict {
	return t.lastMessage
}

// LastErrorText returns the last recorded failure text.
func (t *ChangeTracker) LastErrorText() string {
	return t.lastErrorText
}
