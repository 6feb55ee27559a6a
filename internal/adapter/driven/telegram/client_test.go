package telegram_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/hwnotify/internal/adapter/driven/telegram"
	"github.com/ericfisherdev/hwnotify/internal/domain/model"
)

type capturedRequest struct {
	Path string
	Body map[string]any
}

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *telegram.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := telegram.NewClientWithHTTPClient(
		server.Client(),
		server.URL,
		"123:secret",
		"42",
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)

	return client
}

func capture(t *testing.T, into *capturedRequest, status int, response string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		into.Path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&into.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	})
}

func TestSend_Success(t *testing.T) {
	var got capturedRequest
	client := newTestClient(t, capture(t, &got, http.StatusOK, `{"ok":true,"result":{"message_id":7}}`))

	err := client.Send(context.Background(), `Status of homework "hw1" changed to **approved**: done`)

	require.NoError(t, err)
	assert.Equal(t, "/bot123:secret/sendMessage", got.Path)
	assert.Equal(t, "42", got.Body["chat_id"])
	assert.Equal(t, "HTML", got.Body["parse_mode"])
	assert.Contains(t, got.Body["text"], "<strong>approved</strong>")
}

func TestSend_APIRejection(t *testing.T) {
	var got capturedRequest
	client := newTestClient(t, capture(t, &got, http.StatusBadRequest,
		`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))

	err := client.Send(context.Background(), "hello")

	var deliveryErr *model.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "hello", deliveryErr.Message)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSend_OKFalseWith200(t *testing.T) {
	var got capturedRequest
	client := newTestClient(t, capture(t, &got, http.StatusOK, `{"ok":false,"description":"flood"}`))

	err := client.Send(context.Background(), "hello")

	var deliveryErr *model.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
}

func TestSend_UndecodableResponse(t *testing.T) {
	var got capturedRequest
	client := newTestClient(t, capture(t, &got, http.StatusBadGateway, `<html>bad gateway</html>`))

	err := client.Send(context.Background(), "hello")

	var deliveryErr *model.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Contains(t, err.Error(), "502")
}

func TestSend_TransportErrorDoesNotLeakToken(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := telegram.NewClientWithHTTPClient(http.DefaultClient, baseURL, "123:secret", "42",
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	err = client.Send(context.Background(), "hello")

	var deliveryErr *model.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.NotContains(t, err.Error(), "secret")
}

func TestSend_NilLoggerFallsBackToDefault(t *testing.T) {
	var got capturedRequest
	server := httptest.NewServer(capture(t, &got, http.StatusOK, `{"ok":true,"result":{"message_id":1}}`))
	t.Cleanup(server.Close)

	client, err := telegram.NewClientWithHTTPClient(server.Client(), server.URL, "123:secret", "42", nil)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		require.NoError(t, client.Send(context.Background(), "hello"))
	})
	assert.Equal(t, "hello", got.Body["text"])
	assert.NotPanics(t, func() { _ = telegram.NewClient("t", "c", nil) })
}
