// Package client is a typed HTTP client for the indexify server API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Only connection setup and the wait for response headers are bounded.
// Bodies stream for as long as they flow; callers cancel through ctx.
const (
	dialTimeout          = 10 * time.Second
	defaultHeaderTimeout = 30 * time.Second
)

// Client talks to one indexify server. It is immutable once built and safe
// for concurrent use; WithNamespace returns a copy.
type Client struct {
	baseURL   *url.URL
	namespace string
	http      *http.Client
	userAgent string
	log       *zap.Logger

	headerTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithResponseHeaderTimeout bounds the wait for response headers of the
// default transport. It has no effect together with WithHTTPClient.
func WithResponseHeaderTimeout(d time.Duration) Option {
	return func(c *Client) { c.headerTimeout = d }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger used for request tracing. The process-wide zap
// logger is used otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the server at serviceURL.
func New(serviceURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api server URL %q: %w", serviceURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api server URL %q: scheme must be http or https", serviceURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api server URL %q: missing host", serviceURL)
	}

	c := &Client{
		baseURL:       u,
		headerTimeout: defaultHeaderTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = newHTTPClient(c.headerTimeout)
	}
	return c, nil
}

func newHTTPClient(headerTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: dialTimeout, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = dialTimeout
	transport.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: transport}
}

// WithNamespace returns a copy of c bound to namespace ns.
func (c *Client) WithNamespace(ns string) *Client {
	cp := *c
	cp.namespace = ns
	return &cp
}

// Namespace returns the namespace the client is bound to.
func (c *Client) Namespace() string { return c.namespace }

// BaseURL returns the server URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) logger() *zap.Logger {
	if c.log != nil {
		return c.log
	}
	return zap.L()
}

func (c *Client) url(query url.Values, elem ...string) *url.URL {
	u := c.baseURL.JoinPath(elem...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u
}

// namespaced returns the path elements of a resource under the bound
// namespace.
func (c *Client) namespaced(resource string, elem ...string) ([]string, error) {
	if c.namespace == "" {
		return nil, fmt.Errorf("namespace is required for %s", resource)
	}
	return append([]string{"namespaces", c.namespace}, elem...), nil
}

type request struct {
	method      string
	url         *url.URL
	body        io.Reader
	contentType string
}

// do sends req and returns the response when the status is 2xx. Any other
// status is turned into a *StatusError carrying the body.
func (c *Client) do(ctx context.Context, req request) (*http.Response, error) {
	target := req.url.String()
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", req.method, target, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	c.logger().Debug("api request", zap.String("method", req.method), zap.String("url", target))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", req.method, target, err)
	}

	c.logger().Debug("api response", zap.String("url", target), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{
			Method:     req.method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
	return resp, nil
}

// getJSON performs a GET request and decodes the response into v.
func (c *Client) getJSON(ctx context.Context, u *url.URL, v any) error {
	resp, err := c.do(ctx, request{method: http.MethodGet, url: u})
	if err != nil {
		return err
	}
	return decode(resp, v)
}

// sendJSON performs a request with a JSON body and decodes the response into
// out when out is non-nil.
func (c *Client) sendJSON(ctx context.Context, method string, u *url.URL, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	resp, err := c.do(ctx, request{
		method:      method,
		url:         u,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	})
	if err != nil {
		return err
	}
	if out == nil {
		resp.Body.Close()
		return nil
	}
	return decode(resp, out)
}

func decode(resp *http.Response, v any) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", resp.Request.URL, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{URL: resp.Request.URL.String(), Body: string(body), Err: err}
	}
	return nil
}
