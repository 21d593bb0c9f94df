package client

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
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dollro/authclient/pkg/logger"
)

// AuthorizationHeader is the default header carrying the session credential.
const AuthorizationHeader = "Authorization"

// tokenScheme is the credential scheme used by the identity service.
const tokenScheme = "Token "

// maxErrorBodySize caps how much of an error response body is read for parsing.
const maxErrorBodySize = 1 << 20 // 1 MiB

// Config holds transport client configuration.
type Config struct {
	// BaseURL is the identity service root, e.g. "https://api.example.com/api".
	BaseURL string `env:"AUTH_API_BASE_URL,required"`

	// Timeout bounds each request unless a custom http.Client is supplied.
	Timeout time.Duration `env:"AUTH_API_TIMEOUT" envDefault:"30s"`

	// UserAgent is sent with every request.
	UserAgent string `env:"AUTH_API_USER_AGENT" envDefault:"authclient/1.0"`
}

// Client is an HTTP transport for the identity service. It injects a set of
// process-wide default headers into every outgoing request; the authorization
// header among them is mutated exclusively through SetAuthHeader and
// ClearAuthHeader so the session store remains the single writer.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	log        *slog.Logger

	mu       sync.RWMutex
	defaults map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Timeout configuration
// is then the caller's responsibility.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request tracing. Defaults to a discard
// handler.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a transport client for the identity service at cfg.BaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidBaseURL, u.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults:   make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetAuthHeader arms the default authorization header with the given
// credential. All subsequent requests carry "Authorization: Token <token>".
func (c *Client) SetAuthHeader(token string) {
	c.SetDefaultHeader(AuthorizationHeader, tokenScheme+token)
}

// ClearAuthHeader removes the default authorization header.
func (c *Client) ClearAuthHeader() {
	c.ClearDefaultHeader(AuthorizationHeader)
}

// SetDefaultHeader sets a header sent with every request.
func (c *Client) SetDefaultHeader(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaults[name] = value
}

// ClearDefaultHeader removes a default header.
func (c *Client) ClearDefaultHeader(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.defaults, name)
}

// AuthHeader returns the current value of the default authorization header,
// or the empty string when it is not armed.
func (c *Client) AuthHeader() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaults[AuthorizationHeader]
}

// Post sends a JSON POST request and returns the raw response body.
// Non-2xx responses are returned as *APIError.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodPost, path, body, "application/json")
	if err != nil {
		return nil, err
	}
	return readJSONBody(resp)
}

// Get sends a GET request and returns the raw response body.
// Non-2xx responses are returned as *APIError.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, "application/json")
	if err != nil {
		return nil, err
	}
	return readJSONBody(resp)
}

// do builds and executes a request. The returned response has a live body on
// 2xx; error responses are fully read, closed and converted to *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, accept string) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request body: %w", ErrRequestFailed, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(path), reqBody)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", accept)
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	for name, value := range c.defaults {
		req.Header.Set(name, value)
	}
	c.mu.RUnlock()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "request failed",
			logger.Method(method),
			logger.Path(path),
			logger.RequestID(requestID),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}

	c.log.DebugContext(ctx, "request completed",
		logger.Method(method),
		logger.Path(path),
		logger.StatusCode(resp.StatusCode),
		logger.RequestID(requestID),
		logger.Elapsed(start),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, parseAPIError(resp.StatusCode, errBody)
	}

	return resp, nil
}

// requestURL joins the base URL with a request path, normalizing the path to
// a single leading slash.
func (c *Client) requestURL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func readJSONBody(resp *http.Response) (json.RawMessage, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrDecodeResponse, err)
	}
	return json.RawMessage(raw), nil
}
