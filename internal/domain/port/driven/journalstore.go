package driven

import (
	"context"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
)

// JournalStore defines the driven port for the append-only audit log.
// Entries are never read back into the poll loop's change state.
type JournalStore interface {
	// Append stores a new entry and returns it with ID and RecordedAt set.
	Append(ctx context.Context, kind model.JournalKind, text string) (model.JournalEntry, error)
	// ListRecent returns at most limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.JournalEntry, error)
}
