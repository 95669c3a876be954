// Package httpclient is the single request path to the backend: it resolves relative
// paths against one configured base URL, attaches the session token and classifies failures.
package httpclient

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

	"github.com/google/uuid"

	"taskflow/internal/config"
	"taskflow/internal/errors"
	"taskflow/internal/logging"
	"taskflow/internal/metrics"
)

// RequestIDHeader carries a per-request identifier for backend log correlation
const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token for each outgoing request.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func() string

// Token implements TokenSource
func (f TokenFunc) Token() string { return f() }

// Client sends JSON requests to the backend
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	logger    *logging.Logger
	metrics   *metrics.HTTPMetrics
	requestID func() string
	now       func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where the bearer token is read from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger used by the response interceptor
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records every request on m
func WithMetrics(m *metrics.HTTPMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRequestIDs overrides the request id generator
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) { c.requestID = gen }
}

// New creates a client bound to baseURL, which must be absolute (http or https with a host)
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		http:      http.DefaultClient,
		tokens:    TokenFunc(func() string { return "" }),
		logger:    logging.Discard(),
		requestID: uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := config.ValidateBaseURL(baseURL); err != nil {
		c.logger.Warn("API base URL is misconfigured; refusing to send relative requests", logging.Fields{
			"value": fmt.Sprintf("%q", baseURL),
		})
		return nil, errors.NewInvalidInputError("api base url", baseURL, err.Error())
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.NewInvalidInputError("api base url", baseURL, err.Error())
	}
	c.baseURL = u

	logging.Debugf("API URL: %s\n", c.BaseURL())
	return c, nil
}

// BaseURL returns the configured base URL without a trailing slash
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.baseURL.String(), "/")
}

// ResolveURL joins a base URL and a relative path with exactly one slash.
// Any path prefix on the base (such as /api) is kept once.
func ResolveURL(base *url.URL, path string) string {
	b := *base
	b.RawQuery = ""
	b.Fragment = ""
	return strings.TrimRight(b.String(), "/") + "/" + strings.TrimLeft(path, "/")
}

// Get sends a GET request and decodes the JSON response into out
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the JSON response into out
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the JSON response into out
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete sends a DELETE request and decodes the JSON response into out when out is non-nil
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do sends one request. It never retries: a failure is logged and returned to the caller.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	c.interceptRequest(req)

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.interceptTransportError(req, start, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.interceptTransportError(req, start, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.interceptStatusError(req, start, newHTTPError(req, resp.StatusCode, payload))
	}
	c.metrics.Observe(req.Method, metrics.OutcomeSuccess, c.now().Sub(start))

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.WrapError(err, errors.ErrorTypeServer, fmt.Sprintf("invalid JSON response from %s %s", req.Method, req.URL))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewInvalidInputError("request body", body, err.Error())
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, ResolveURL(c.baseURL, path), reader)
	if err != nil {
		return nil, errors.NewInvalidInputError("request", path, err.Error())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
