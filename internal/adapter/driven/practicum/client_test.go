package practicum_test

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

	"github.com/ericfisherdev/hwnotify/internal/adapter/driven/practicum"
	"github.com/ericfisherdev/hwnotify/internal/domain/model"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *practicum.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := practicum.NewClientWithHTTPClient(
		server.Client(),
		server.URL+"/api/user_api/homework_statuses/",
		"test-token",
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)

	return client
}

func TestFetchStatuses_SendsCursorAndToken(t *testing.T) {
	var gotAuth, gotFromDate, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFromDate = r.URL.Query().Get("from_date")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks":[],"current_date":1700000000}`))
	}))

	_, err := client.FetchStatuses(context.Background(), "1699990000")

	require.NoError(t, err)
	assert.Equal(t, "OAuth test-token", gotAuth)
	assert.Equal(t, "1699990000", gotFromDate)
	assert.Equal(t, "/api/user_api/homework_statuses/", gotPath)
}

func TestFetchStatuses_DecodesNumbersExactly(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"homeworks":[{"homework_name":"hw1","status":"approved"}],"current_date":1700000000}`))
	}))

	raw, err := client.FetchStatuses(context.Background(), "1")
	require.NoError(t, err)

	body, ok := raw.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1700000000"), body["current_date"])

	homeworks, ok := body["homeworks"].([]any)
	require.True(t, ok)
	require.Len(t, homeworks, 1)
	assert.Equal(t, map[string]any{"homework_name": "hw1", "status": "approved"}, homeworks[0])
}

func TestFetchStatuses_PassesThroughUnexpectedShapes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[1, 2, 3]`))
	}))

	raw, err := client.FetchStatuses(context.Background(), "1")

	require.NoError(t, err)
	assert.IsType(t, []any{}, raw)
}

func TestFetchStatuses_NonOKStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.FetchStatuses(context.Background(), "1")

	var upstream *model.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchStatuses_UnauthorizedIsUpstreamError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"not_authenticated"}`))
	}))

	_, err := client.FetchStatuses(context.Background(), "1")

	var upstream *model.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
}

func TestFetchStatuses_InvalidJSON(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))

	_, err := client.FetchStatuses(context.Background(), "1")

	var upstream *model.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Zero(t, upstream.StatusCode)
}

func TestFetchStatuses_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := practicum.NewClientWithHTTPClient(http.DefaultClient, url, "t", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = client.FetchStatuses(context.Background(), "1")

	var upstream *model.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Zero(t, upstream.StatusCode)
}

func TestFetchStatuses_CanceledContext(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"homeworks":[],"current_date":1}`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchStatuses(ctx, "1")

	var upstream *model.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_UsesProductionEndpoint(t *testing.T) {
	client := practicum.NewClient("token", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NotNil(t, client)
	assert.Equal(t, "https://practicum.yandex.ru/api/user_api/homework_statuses/", practicum.Endpoint)
}
