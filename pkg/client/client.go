package client

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

	"github.com/codtech/libraryd/pkg/api/types"
	"github.com/codtech/libraryd/pkg/library"
)

// DefaultURL is the address of a locally running server.
const DefaultURL = "http://localhost:4280"

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Hint       string
	Details    json.RawMessage
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConnectionError reports whether err means the server could not be reached.
func IsConnectionError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == "connection_error"
}

// Client talks to one libraryd server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout for the client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for the server at baseURL (e.g. "http://localhost:4280").
// An empty baseURL selects DefaultURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Books returns the book collection.
func (c *Client) Books() *Collection[library.Book] {
	return &Collection[library.Book]{c: c, kind: library.KindBooks}
}

// Authors returns the author collection.
func (c *Client) Authors() *Collection[library.Author] {
	return &Collection[library.Author]{c: c, kind: library.KindAuthors}
}

// Categories returns the category collection.
func (c *Client) Categories() *Collection[library.Category] {
	return &Collection[library.Category]{c: c, kind: library.KindCategories}
}

// Health checks if the server is running.
func (c *Client) Health(ctx context.Context) (*types.HealthResponse, error) {
	var out types.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reset restores every collection to its seed data.
func (c *Client) Reset(ctx context.Context) (*types.ResetResponse, error) {
	var out types.ResetResponse
	if err := c.do(ctx, http.MethodPost, "/api/reset", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns record counts and mutation counters.
func (c *Client) Stats(ctx context.Context) (*types.StatsResponse, error) {
	var out types.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Docs returns the server's OpenAPI document, as JSON or, when yaml is set, YAML.
func (c *Client) Docs(ctx context.Context, yaml bool) ([]byte, error) {
	path := "/api/docs"
	if yaml {
		path = "/api/docs.yaml"
	}
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

// do sends body as JSON and decodes a response with status want into out.
func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want {
		return parseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &APIError{
			ErrorCode: "connection_error",
			Message:   fmt.Sprintf("cannot connect to libraryd at %s: %v", c.baseURL, err),
		}
	}
	return resp, nil
}

// parseError parses an error response from the API.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		types.ErrorResponse
		Details json.RawMessage `json:"details,omitempty"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  errResp.Error,
			Message:    errResp.Message,
			Hint:       errResp.Hint,
			Details:    errResp.Details,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		ErrorCode:  "unknown_error",
		Message:    fmt.Sprintf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
	}
}
