package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status              string `json:"status"`
	Time                string `json:"time"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
}

// StatusResponse is the JSON representation of the poll loop snapshot.
// Timestamps are RFC3339 and empty until the corresponding event happened;
// the *_ago fields are the same instants in human-readable form.
type StatusResponse struct {
	Cursor              string `json:"cursor"`
	LastMessage         string `json:"last_message"`
	LastError           string `json:"last_error"`
	LastPollAt          string `json:"last_poll_at"`
	LastPollAgo         string `json:"last_poll_ago"`
	LastSuccessAt       string `json:"last_success_at"`
	LastSuccessAgo      string `json:"last_success_ago"`
	Iterations          int    `json:"iterations"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
	PollInterval        string `json:"poll_interval"`
}

// JournalEntryResponse is the JSON representation of a journal entry.
type JournalEntryResponse struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	Text        string `json:"text"`
	RecordedAt  string `json:"recorded_at"`
	RecordedAgo string `json:"recorded_ago"`
}

func toStatusResponse(s model.Snapshot, interval time.Duration, now time.Time) StatusResponse {
	return StatusResponse{
		Cursor:              s.Cursor.String(),
		LastMessage:         s.LastMessage.String(),
		LastError:           s.LastError,
		LastPollAt:          formatTime(s.LastPollAt),
		LastPollAgo:         relativeTime(s.LastPollAt, now),
		LastSuccessAt:       formatTime(s.LastSuccessAt),
		LastSuccessAgo:      relativeTime(s.LastSuccessAt, now),
		Iterations:          s.Iterations,
		ConsecutiveFailures: s.ConsecutiveFailures,
		PollInterval:        interval.String(),
	}
}

func toJournalEntryResponse(e model.JournalEntry, now time.Time) JournalEntryResponse {
	return JournalEntryResponse{
		ID:          e.ID,
		Kind:        string(e.Kind),
		Text:        e.Text,
		RecordedAt:  formatTime(e.RecordedAt),
		RecordedAgo: relativeTime(e.RecordedAt, now),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
