// Package backend is the client SDK for the sprintdeck REST backend.
// All persistence, authentication and authorization live behind it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sprintdeck/sprintdeck/internal/domain"
)

// Doer executes HTTP requests. *http.Client satisfies it; tests swap
// in a mock.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the shared REST transport for all backend services
type Client struct {
	baseURL string
	token   string
	doer    Doer
	logger  *slog.Logger
}

// NewClient creates a new backend client with dependency injection
func NewClient(baseURL string, doer Doer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		logger:  logger,
	}
}

// SetToken installs the bearer token used on subsequent requests.
// An empty token clears the session.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token, empty when signed out.
func (c *Client) Token() string {
	return c.token
}

// do runs one JSON request/response round trip. A nil out discards the
// response body. Failures come back as *domain.APIError wrapping the
// matching sentinel where the status code has one.
func (c *Client) do(ctx context.Context, method, path string, body, out any, op string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &domain.APIError{Op: op, Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.APIError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return &domain.APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(op, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.APIError{Op: op, Message: "failed to parse response", Err: err}
		}
	}
	return nil
}

// statusError maps an HTTP failure status onto the error taxonomy
func (c *Client) statusError(op string, resp *http.Response) error {
	apiErr := &domain.APIError{Op: op, StatusCode: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Err = domain.ErrUnauthorized
	case http.StatusForbidden:
		apiErr.Err = domain.ErrForbidden
	case http.StatusNotFound:
		apiErr.Err = domain.ErrNotFound
	case http.StatusConflict:
		apiErr.Err = domain.ErrConflict
	default:
		apiErr.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	c.logger.Debug("backend request failed", "op", op, "status", resp.StatusCode)
	return apiErr
}
