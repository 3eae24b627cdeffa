package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sweetnest/storefront/internal/logger"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized   = errors.New("api: unauthorized")
	ErrRequestFailed  = errors.New("api: request failed")
	ErrInvalidPayload = errors.New("api: invalid payload")
)

// APIError a rejection carried in the response envelope's message field
type APIError struct {
	Status  int
	Message string
}

// Error implements error
func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return fmt.Sprintf("api: request rejected (status %d)", e.Status)
}

// envelope every SweetNest API response is wrapped in {success, message?, data}
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client the shared HTTP client for the SweetNest REST API. It attaches the
// bearer token from the token source on every request and fires the
// unauthorized hook on any 401, independent of which resource made the call.
type Client struct {
	baseURL        string
	http           *http.Client
	tokenSource    func() string
	onUnauthorized func()
}

// NewClient creates the shared client
func NewClient(baseURL string, timeoutSeconds int) *Client {
	timeout := 10 * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetTokenSource installs the bearer-token provider (the auth store)
func (c *Client) SetTokenSource(source func() string) {
	c.tokenSource = source
}

// SetUnauthorizedHook installs the global 401 handler
func (c *Client) SetUnauthorizedHook(hook func()) {
	c.onUnauthorized = hook
}

// Do performs a JSON request against path and decodes the envelope data into
// dest (which may be nil when the caller only needs success/failure).
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := strings.TrimSpace(c.tokenSource()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Warnw("api_unauthorized", "method", method, "path", path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: malformed response", ErrRequestFailed)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if dest == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("%w: decode data failed: %v", ErrRequestFailed, err)
	}
	return nil
}

// Get issues a GET request
func (c *Client) Get(ctx context.Context, path string, dest interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, dest)
}

// Post issues a POST request
func (c *Client) Post(ctx context.Context, path string, body, dest interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, dest)
}

// Put issues a PUT request
func (c *Client) Put(ctx context.Context, path string, body, dest interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, dest)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string, dest interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, dest)
}

// Message extracts a user-facing message from an action's error, falling back
// to a generic one. Stores use it to build their result objects.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}
