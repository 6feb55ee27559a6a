// Package practicum implements the StatusFetcher port against the Yandex
// Practicum homework status API.
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
	"github.com/ericfisherdev/hwnotify/internal/domain/port/driven"
)

// Endpoint is the production homework status URL.
const Endpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const (
	requestTimeout      = 30 * time.Second
	maxResponseBodySize = 1 << 20 // 1MB
	cursorParam         = "from_date"
)

// Compile-time interface satisfaction check.
var _ driven.StatusFetcher = (*Client)(nil)

// Client implements the driven.StatusFetcher port.
type Client struct {
	http     *http.Client
	endpoint string
	token    string
	logger   *slog.Logger
}

// NewClient creates a status API client. Every request carries a fresh
// from_date, so responses are never cached or revalidated.
func NewClient(token string, logger *slog.Logger) *Client {
	return &Client{
		http:     &http.Client{},
		endpoint: Endpoint,
		token:    token,
		logger:   loggerOrDefault(logger),
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and
// endpoint. This constructor is intended for testing, allowing injection of
// an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, endpoint, token string, logger *slog.Logger) (*Client, error) {
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}

	return &Client{
		http:     httpClient,
		endpoint: endpoint,
		token:    token,
		logger:   loggerOrDefault(logger),
	}, nil
}

// FetchStatuses requests the status changes recorded since cursor and
// returns the decoded JSON body. Numbers are decoded as json.Number so the
// cursor round-trips without float formatting.
func (c *Client) FetchStatuses(ctx context.Context, cursor model.Cursor) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &model.UpstreamError{Err: fmt.Errorf("parsing endpoint: %w", err)}
	}
	q := u.Query()
	q.Set(cursorParam, cursor.String())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &model.UpstreamError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &model.UpstreamError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("status api call",
		"cursor", cursor,
		"status_code", resp.StatusCode,
		"latency", time.Since(start).Round(time.Millisecond),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &model.UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, &model.UpstreamError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	return decodeBody(body)
}

func decodeBody(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, &model.UpstreamError{Err: fmt.Errorf("decoding response body: %w", err)}
	}
	return decoded, nil
}

// loggerOrDefault falls back to slog.Default so a nil logger never panics.
func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
