// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
	"github.com/ericfisherdev/hwnotify/internal/domain/port/driven"
)

// PollService runs the fetch, validate, interpret, dedupe and notify cycle
// for the tracked homework, pausing a fixed interval after every iteration.
// Iteration errors are logged and swallowed; the loop only returns when its
// context is canceled.
type PollService struct {
	fetcher  driven.StatusFetcher
	notifier driven.Notifier
	journal  driven.JournalStore
	interval time.Duration
	logger   *slog.Logger

	// Owned by the goroutine running Start or RunOnce.
	cursor              model.Cursor
	tracker             *ChangeTracker
	iterations          int
	consecutiveFailures int
	lastPollAt          time.Time
	lastSuccessAt       time.Time

	mu       sync.RWMutex
	snapshot model.Snapshot
}

// NewPollService creates a PollService that starts polling from cursor.
// journal may be nil, in which case nothing is audited.
func NewPollService(
	fetcher driven.StatusFetcher,
	notifier driven.Notifier,
	journal driven.JournalStore,
	cursor model.Cursor,
	interval time.Duration,
	logger *slog.Logger,
) *PollService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &PollService{
		fetcher:  fetcher,
		notifier: notifier,
		journal:  journal,
		interval: interval,
		logger:   logger,
		cursor:   cursor,
		tracker:  NewChangeTracker(),
	}
	s.snapshot = model.Snapshot{Cursor: cursor}
	return s
}

// Start runs iterations back to back with a fixed pause after each one,
// whether it succeeded or not. Start blocks until the context is canceled.
func (s *PollService) Start(ctx context.Context) {
	s.logger.Info("poll service started", "interval", s.interval, "cursor", s.cursor)

	for {
		_ = s.RunOnce(ctx)

		timer := time.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("poll service stopped")
			return
		case <-timer.C:
		}
	}
}

// RunOnce performs a single iteration without the trailing pause. The
// returned error has already been logged and recorded; callers only need it
// to decide on an exit status.
func (s *PollService) RunOnce(ctx context.Context) error {
	err := s.safePoll(ctx)

	s.iterations++
	s.lastPollAt = time.Now()

	if err != nil {
		s.consecutiveFailures++
		s.handleIterationError(ctx, err)
	} else {
		s.consecutiveFailures = 0
		s.lastSuccessAt = s.lastPollAt
	}

	s.publish()
	return err
}

// Snapshot returns the state published after the most recent iteration.
// Safe for concurrent use.
func (s *PollService) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Interval returns the pause between iterations.
func (s *PollService) Interval() time.Duration {
	return s.interval
}

// poll is one pass through the state machine. It returns the first error
// from any stage; later stages are skipped.
func (s *PollService) poll(ctx context.Context) error {
	raw, err := s.fetcher.FetchStatuses(ctx, s.cursor)
	if err != nil {
		return fmt.Errorf("fetch statuses from %s: %w", s.cursor, err)
	}

	batch, err := ValidateResponse(raw)
	if err != nil {
		return err
	}

	// Advance before interpreting so a bad item does not pin the cursor.
	s.cursor = batch.CurrentDate

	if len(batch.Items) == 0 {
		s.logger.Info("no new homework status", "cursor", s.cursor)
		return nil
	}

	verdict, err := InterpretStatus(batch.Items[0])
	if err != nil {
		return err
	}

	if !s.tracker.ShouldNotify(verdict) {
		s.logger.Info("homework status unchanged", "cursor", s.cursor)
		return nil
	}

	if err := s.notifier.Send(ctx, verdict.String()); err != nil {
		return err
	}

	s.tracker.RecordNotified(verdict)
	s.logger.Info("notification sent", "message", verdict.String())
	s.appendJournal(ctx, model.JournalKindDelivered, verdict.String())

	return nil
}

// safePoll runs poll and converts a panic into an iteration error carrying a
// correlation ID that also appears next to the stack trace in the log.
func (s *PollService) safePoll(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			s.logger.Error("iteration panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("iteration panic (correlation_id: %s)", correlationID)
		}
	}()
	return s.poll(ctx)
}

// handleIterationError logs every failure and audits only new failure modes.
func (s *PollService) handleIterationError(ctx context.Context, err error) {
	isNew := s.tracker.RecordError(err)

	s.logger.Error("poll iteration failed",
		"error", err,
		"kind", errorKind(err),
		"new_failure", isNew,
		"consecutive_failures", s.consecutiveFailures,
	)

	if isNew {
		s.appendJournal(ctx, model.JournalKindFailure, err.Error())
	}
}

func (s *PollService) appendJournal(ctx context.Context, kind model.JournalKind, text string) {
	if s.journal == nil {
		return
	}
	if _, err := s.journal.Append(ctx, kind, text); err != nil {
		s.logger.Warn("journal append failed", "kind", kind, "error", err)
	}
}

func (s *PollService) publish() {
	snap := model.Snapshot{
		Cursor:              s.cursor,
		LastMessage:         s.tracker.LastMessage(),
		LastError:           s.tracker.LastErrorText(),
		LastPollAt:          s.lastPollAt,
		LastSuccessAt:       s.lastSuccessAt,
		Iterations:          s.iterations,
		ConsecutiveFailures: s.consecutiveFailures,
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

// errorKind names the taxonomy bucket of err for structured logs.
func errorKind(err error) string {
	var (
		upstream   *model.UpstreamError
		schema     *model.SchemaError
		missing    *model.MissingFieldError
		unexpected *model.UnexpectedStatusError
		delivery   *model.DeliveryError
	)

	switch {
	case errors.As(err, &upstream):
		return "upstream"
	case errors.As(err, &schema):
		return "schema"
	case errors.As(err, &missing):
		return "missing_field"
	case errors.As(err, &unexpected):
		return "unexpected_status"
	case errors.As(err, &delivery):
		return "delivery"
	default:
		return "internal"
	}
}
