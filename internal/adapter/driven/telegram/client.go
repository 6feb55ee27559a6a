// Package telegram implements the Notifier port using the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
	"github.com/ericfisherdev/hwnotify/internal/domain/port/driven"
)

// APIBaseURL is the production Bot API root.
const APIBaseURL = "https://api.telegram.org"

const (
	requestTimeout      = 15 * time.Second
	maxResponseBodySize = 64 << 10
	parseModeHTML       = "HTML"
)

// Compile-time interface satisfaction check.
var _ driven.Notifier = (*Client)(nil)

// Client sends messages to a single chat through the Bot API.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	chatID  string
	logger  *slog.Logger
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

// NewClient creates a Bot API client for the given bot token and chat.
func NewClient(token, chatID string, logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{},
		baseURL: APIBaseURL,
		token:   token,
		chatID:  chatID,
		logger:  loggerOrDefault(logger),
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token, chatID string, logger *slog.Logger) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		token:   token,
		chatID:  chatID,
		logger:  loggerOrDefault(logger),
	}, nil
}

// Send renders text to Telegram HTML and posts it to the configured chat.
// Any failure is returned as *model.DeliveryError carrying the original text.
func (c *Client) Send(ctx context.Context, text string) error {
	messageID, err := c.sendMessage(ctx, text)
	if err != nil {
		return &model.DeliveryError{Message: text, Err: err}
	}

	c.logger.Debug("telegram message sent", "chat_id", c.chatID, "message_id", messageID)
	return nil
}

func (c *Client) sendMessage(ctx context.Context, text string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      RenderHTML(text),
		ParseMode: parseModeHTML,
	})
	if err != nil {
		return 0, fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, errors.New("creating request failed")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, redactToken(err, c.token)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return 0, fmt.Errorf("reading response body: %w", err)
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return 0, fmt.Errorf("bot api status %d: undecodable response", resp.StatusCode)
	}

	if resp.StatusCode >= 300 || !decoded.OK {
		return 0, fmt.Errorf("bot api status %d: %s", resp.StatusCode, decoded.Description)
	}

	return decoded.Result.MessageID, nil
}

// redactToken strips the bot token from transport errors, which embed the
// request URL.
func redactToken(err error, token string) error {
	var urlErr *url.Error
	if token != "" && errors.As(err, &urlErr) {
		return fmt.Errorf("%s bot api: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

// loggerOrDefault falls back to slog.Default so a nil logger never panics.
func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
