// Package httphandler serves the read-only status API next to the poll loop.
package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
	"github.com/ericfisherdev/hwnotify/internal/domain/port/driven"
)

const (
	defaultJournalLimit = 20
	maxJournalLimit     = 500
)

// SnapshotSource exposes the state published by the poll loop.
// *application.PollService satisfies it.
type SnapshotSource interface {
	Snapshot() model.Snapshot
	Interval() time.Duration
}

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	source  SnapshotSource
	journal driven.JournalStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(source SnapshotSource, journal driven.JournalStore, logger *slog.Logger) *Handler {
	return &Handler{
		source:  source,
		journal: journal,
		logger:  logger,
		now:     time.Now,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/status", h.Status)
	mux.HandleFunc("GET /api/v1/journal", h.ListJournal)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health reports that the process is up. Poll failures do not make it
// unhealthy; they are visible through Status instead.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	snap := h.source.Snapshot()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:              "ok",
		Time:                h.now().UTC().Format(time.RFC3339),
		ConsecutiveFailures: snap.ConsecutiveFailures,
	})
}

// Status returns the snapshot published after the latest poll iteration.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toStatusResponse(h.source.Snapshot(), h.source.Interval(), h.now()))
}

// ListJournal returns the most recent journal entries, newest first.
func (h *Handler) ListJournal(w http.ResponseWriter, r *http.Request) {
	limit := defaultJournalLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxJournalLimit)
	}

	entries, err := h.journal.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list journal entries", "limit", limit, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]JournalEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toJournalEntryResponse(e, h.now()))
	}

	writeJSON(w, http.StatusOK, resp)
}
