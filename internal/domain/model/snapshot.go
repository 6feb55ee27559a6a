package model

import "time"

// Snapshot is a point-in-time copy of the poll loop's state, published after
// every iteration for read-only observers.
type Snapshot struct {
	Cursor              Cursor
	LastMessage         Verdict
	LastError           string
	LastPollAt          time.Time
	LastSuccessAt       time.Time
	Iterations          int
	ConsecutiveFailures int
}
