// ABOUTME: HTTP gateway for the $READS learn-to-earn backend
// ABOUTME: Owns the bearer token lifecycle and every network call the app makes

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/readsmvp/reads-cli/internal/credstore"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// apiRoot is the backend's mount point
const apiRoot = "/api"

const defaultTimeout = 30 * time.Second

// Client is the single gateway to the backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      credstore.Store
	logger     *zap.Logger
	reads      singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenStore sets where the bearer token is kept
func WithTokenStore(s credstore.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithLogger sets the logger for request tracing and swallowed failures
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: normalizeBaseURL(baseURL),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		store:  credstore.NewMemoryStore(""),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend URL without the API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Logger returns the logger requests are traced to
func (c *Client) Logger() *zap.Logger {
	return c.logger
}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	return strings.TrimSuffix(raw, apiRoot)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + apiRoot + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// token reads the stored credential. Store failures read as signed out.
func (c *Client) token() string {
	token, err := c.store.Load()
	if err != nil {
		c.logger.Warn("token store unreadable", zap.Error(err))
		return ""
	}
	return token
}

// request describes one backend call
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	// public requests never carry the bearer token
	public bool
}

// do sends the request and decodes a successful body into out
func (c *Client) do(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path, r.query), r.body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if !r.public {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{
			Kind:    KindDecode,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("invalid response from backend: %v", err),
			Err:     err,
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path}, out)
}

func jsonBody(payload any) (io.Reader, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}
	return bytes.NewReader(body), nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	body, err := jsonBody(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, request{
		method:      method,
		path:        path,
		body:        body,
		contentType: "application/json",
	}, out)
}

// swallow logs a failure on a read path that falls back to a default
func (c *Client) swallow(op string, err error) {
	c.logger.Warn("read failed, using default",
		zap.String("op", op),
		zap.Error(err))
}

// HealthResponse is the backend root message
type HealthResponse struct {
	Message string `json:"message"`
}

// Health calls the backend root, which reports whether the service is up
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/", public: true}, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
