package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
	"github.com/ericfisherdev/hwnotify/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.JournalStore = (*JournalRepo)(nil)

// maxListLimit caps ListRecent regardless of the requested limit.
const maxListLimit = 500

// JournalRepo is the SQLite implementation of the JournalStore port interface.
type JournalRepo struct {
	db  *DB
	now func() time.Time
}

// NewJournalRepo creates a new JournalRepo backed by the given DB.
func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db, now: time.Now}
}

// Append inserts a new entry stamped with the current time.
func (r *JournalRepo) Append(ctx context.Context, kind model.JournalKind, text string) (model.JournalEntry, error) {
	recordedAt := r.now().UTC()

	const query = `INSERT INTO journal (kind, text, recorded_at) VALUES (?, ?, ?)`
	res, err := r.db.Writer.ExecContext(ctx, query, string(kind), text, recordedAt.UnixMilli())
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("append journal entry %q: %w", kind, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("read journal entry id: %w", err)
	}

	return model.JournalEntry{
		ID:         id,
		Kind:       kind,
		Text:       text,
		RecordedAt: time.UnixMilli(recordedAt.UnixMilli()).UTC(),
	}, nil
}

// ListRecent returns at most limit entries, newest first. A non-positive
// limit returns an empty slice.
func (r *JournalRepo) ListRecent(ctx context.Context, limit int) ([]model.JournalEntry, error) {
	if limit <= 0 {
		return []model.JournalEntry{}, nil
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	const query = `SELECT id, kind, text, recorded_at FROM journal ORDER BY recorded_at DESC, id DESC LIMIT ?`
	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	entries := []model.JournalEntry{}
	for rows.Next() {
		var (
			entry      model.JournalEntry
			kind       string
			recordedAt int64
		)
		if err := rows.Scan(&entry.ID, &kind, &entry.Text, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.Kind = model.JournalKind(kind)
		entry.RecordedAt = time.UnixMilli(recordedAt).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}

	return entries, nil
}
