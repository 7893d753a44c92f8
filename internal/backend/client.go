// Package backend is the single HTTP gateway to the inventory REST API.
//
// Every outbound call goes through Client.Do, which prefixes the configured
// base URL, attaches the bearer token, parses JSON payloads and converts
// non-2xx responses into *APIError values.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single backend call when no timeout is configured.
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 4 << 20
)

// Observer receives one observation per backend call. status is 0 when no
// response was received.
type Observer interface {
	ObserveBackend(method, route string, status int, d time.Duration)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL is trimmed and loses one trailing slash.
	BaseURL string
	// Timeout bounds each call; zero disables the per-call deadline.
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    Observer
	Logger     *slog.Logger
}

// Options describes a single call.
type Options struct {
	Method string
	// Body is JSON-encoded unless it is already []byte or json.RawMessage.
	Body           any
	Token          string
	SkipAuthHeader bool
	Headers        map[string]string
	// LenientJSON parses the body as JSON whatever the response content type.
	LenientJSON bool
}

// Client performs calls against the backend API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	metrics Observer
	logger  *slog.Logger
}

// NewClient builds a Client. A blank base URL is accepted; every call then
// fails with a *ConfigError.
func NewClient(opts ClientOptions) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout < 0 {
		timeout = 0
	}
	return &Client{
		baseURL: SanitizeBaseURL(opts.BaseURL),
		timeout: timeout,
		http:    hc,
		metrics: opts.Metrics,
		logger:  logger.With("component", "backend"),
	}
}

// SanitizeBaseURL trims whitespace and removes a single trailing slash.
func SanitizeBaseURL(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), "/")
}

// BaseURL returns the sanitized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool { return c.baseURL != "" }

// Do performs one request and decodes a successful JSON payload into out
// (when out is non-nil). Responses without a JSON content type, or whose
// body fails to parse, leave out untouched.
func (c *Client) Do(ctx context.Context, path string, opts Options, out any) error {
	if c.baseURL == "" {
		return &ConfigError{Message: ErrBaseURLMissing}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	target := path
	if !strings.HasPrefix(path, "http") {
		target = c.baseURL + path
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return fmt.Errorf("encode %s %s body: %w", method, path, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create backend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if !opts.SkipAuthHeader && opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	route := RouteLabel(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, route, 0, start)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("backend %s %s: %w", method, route, ctxErr)
		}
		return &TransportError{Method: method, Route: route, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	c.observe(method, route, resp.StatusCode, start)
	if readErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("backend %s %s: %w", method, route, ctxErr)
		}
		// An unreadable body is treated like an unparsable one.
		raw = nil
	}

	isJSON := opts.LenientJSON || hasJSONContentType(resp.Header.Get("Content-Type"))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload any
		if isJSON && len(raw) > 0 {
			if json.Unmarshal(raw, &payload) != nil {
				payload = nil
			}
		}
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(payload, reasonPhrase(resp)),
			Payload: payload,
		}
		c.logger.DebugContext(ctx, "backend call failed",
			"method", method, "route", route, "status", resp.StatusCode)
		return apiErr
	}

	if out == nil || !isJSON || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.WarnContext(ctx, "backend payload did not parse",
			"method", method, "route", route, "error", err)
	}
	return nil
}

func (c *Client) observe(method, route string, status int, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveBackend(method, route, status, time.Since(start))
	}
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(buf), nil
	}
}

func hasJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil && mt == "application/json" {
		return true
	}
	return strings.Contains(strings.ToLower(ct), "application/json")
}

// reasonPhrase returns the status text sent by the server, e.g. "Not Found".
func reasonPhrase(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}

// RouteLabel reduces a request path to a low-cardinality metric label:
// the query string is dropped and id-like segments become ":id".
func RouteLabel(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if strings.HasPrefix(path, "http") {
		if i := strings.Index(path, "://"); i >= 0 {
			rest := path[i+3:]
			if j := strings.IndexByte(rest, '/'); j >= 0 {
				path = rest[j:]
			} else {
				path = "/"
			}
		}
	}
	segs := strings.Split(path, "/")
	for i, s := range segs {
		if looksLikeID(s) {
			segs[i] = ":id"
		}
	}
	return strings.Join(segs, "/")
}

func looksLikeID(seg string) bool {
	if len(seg) < 8 {
		return false
	}
	for _, r := range seg {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
