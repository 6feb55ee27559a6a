package model

// HomeworkStatus represents the review state of a homework submission as
// reported by the status API.
type HomeworkStatus string

const (
	HomeworkStatusApproved  HomeworkStatus = "approved"
	HomeworkStatusReviewing HomeworkStatus = "reviewing"
	HomeworkStatusRejected  HomeworkStatus = "rejected"
)

// Homework is a validated work item: the name of the submission and its
// current review status.
type Homework struct {
	Name   string
	Status HomeworkStatus
}

// Verdict is the human-readable notification text derived from a Homework.
// Two verdicts describe the same change exactly when they are equal.
type Verdict string

// String returns the verdict text.
func (v Verdict) String() string {
	return string(v)
}

// Cursor is the opaque marker the status API hands back in current_date and
// expects as from_date on the next request.
type Cursor string

// String returns the cursor in its wire representation.
func (c Cursor) String() string {
	return string(c)
}

// Batch is a validated status API response.
//
// Items keeps the raw decoded work items; each one is still checked
// individually when it is interpreted.
type Batch struct {
	Items       []any
	CurrentDate Cursor
}
