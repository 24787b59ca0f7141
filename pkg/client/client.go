// Package client is the HTTP wrapper over the U-Health portal backend.
// Every outgoing call goes through a single choke point that attaches
// the bearer token and centralizes authentication-failure handling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/U-Health-Project-WS2026/U-Health-FE/internal/session"
)

// Client is the U-Health API client. The session store is injected: the
// token is read from it before every dispatch, never cached here.
type Client struct {
	baseURL    string
	session    *session.Store
	httpClient *http.Client
	log        *logrus.Logger
}

// New creates a new API client over the given session store.
// A nil logger silences client logging.
func New(baseURL string, store *session.Store, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL: baseURL,
		session: store,
		log:     log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetTimeout overrides the transport timeout (config-driven).
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// do is the single interception point for all backend calls. It reads
// the session token from the store, attaches it as a bearer credential
// when present (anonymous calls still go out without one), and on a 401
// invalidates the session before the error reaches the caller. No
// request is ever retried automatically.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		apiErr := readAPIError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			// Session ended server-side. Clear the token and fire the
			// invalidation signal before the caller observes the error.
			c.log.WithFields(logrus.Fields{"method": method, "path": path}).
				Warn("session rejected by backend, clearing token")
			c.session.Invalidate()
		}
		return apiErr
	}

	if out != nil {
		data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20)) // 4 MB max payload
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if err := unwrapJSON(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// readAPIError parses a non-2xx body into an APIError. The backend
// sends either {"message": ...} or, for 422, {"message": ..., "errors":
// {"field": ["msg", ...]}}.
func readAPIError(resp *http.Response) *APIError {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
	}
	var payload struct {
		Message string              `json:"message"`
		Error   string              `json:"error"`
		Errors  map[string][]string `json:"errors"`
	}
	if json.Unmarshal(body, &payload) == nil {
		msg := payload.Message
		if msg == "" {
			msg = payload.Error
		}
		if msg != "" || len(payload.Errors) > 0 {
			return &APIError{StatusCode: resp.StatusCode, Message: msg, Errors: payload.Errors}
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
}

// unwrapJSON decodes a success payload into out, accepting both bare
// payloads and the {"data": ...} envelope some endpoints use.
func unwrapJSON(data []byte, out any) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if json.Unmarshal(trimmed, &envelope) == nil && len(envelope.Data) > 0 {
			return json.Unmarshal(envelope.Data, out)
		}
	}
	return json.Unmarshal(data, out)
}
