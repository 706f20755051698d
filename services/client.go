package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kendall-kelly/inventory-dashboard/session"
)

// Client issues authenticated JSON requests against the inventory API.
// It performs no retries; callers decide what to do with a failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	log        *slog.Logger
}

// NewClient creates a client for baseURL. timeout bounds every request so an
// unresponsive server cannot stall the polling cadence.
func NewClient(baseURL string, timeout time.Duration, sess *session.Session, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		session: sess,
		log:     log,
	}
}

// Session returns the session the client reads its credential from
func (c *Client) Session() *session.Session {
	return c.session
}

// Do sends an authenticated request. body, when non-nil, is sent as JSON;
// out, when non-nil, receives the decoded response. An empty success body
// leaves out untouched.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	token := c.session.Token()
	if token == "" {
		return ErrUnauthenticated
	}
	return c.send(ctx, method, path, token, body, out)
}

// DoPublic sends a request without a credential, for the auth endpoints
func (c *Client) DoPublic(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, "", body, out)
}

func (c *Client) send(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		c.log.Warn("Inventory API unreachable", "method", method, "path", path, "error", err)
		return &NetworkUnreachableError{Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.Debug("Failed to close response body", "error", closeErr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkUnreachableError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.log.Debug("Inventory API call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestFailedError{
			Status:  resp.StatusCode,
			Message: serverMessage(resp.StatusCode, data),
		}
	}

	// 204 and empty 2xx bodies acknowledge a mutation without echoing the record
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &MalformedResponseError{Err: err}
	}
	return nil
}
