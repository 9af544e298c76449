package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	appLog "eventhub/internal/log"
)

const (
	// maxErrorBody bounds how much of a failed response body we keep on the
	// classified error for caller inspection.
	maxErrorBody = 1024
)

// timeoutPattern matches transport error messages that indicate a timeout
// even when the underlying error does not implement net.Error.
var timeoutPattern = regexp.MustCompile(`(?i)timeout|deadline exceeded`)

// TokenSource supplies the current bearer token, if any. An empty token is
// not an error at this layer; authorization failures surface later as HTTP
// status errors.
type TokenSource interface {
	Token() string
}

// Gateway is the single outbound HTTP channel. Every API call goes through
// it: it injects the bearer credential, enforces one long timeout tuned for
// a cold-starting backend, and classifies every failure into a stable,
// user-presentable shape. It never retries; refresh is the caller's call.
type Gateway struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithTokenSource wires a credential source into the gateway.
func WithTokenSource(ts TokenSource) Option {
	return func(g *Gateway) { g.tokens = ts }
}

// WithHTTPClient replaces the underlying client, keeping its timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

// New builds a Gateway for the given base URL and request timeout. The
// config layer enforces the 60s production floor; the timeout here is taken
// as given so tests can use short ones. There is deliberately no per-call
// override.
func New(baseURL string, timeout time.Duration, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BaseURL returns the resolved API base address.
func (g *Gateway) BaseURL() string { return g.baseURL }

// Origin returns the base address with a trailing /api segment stripped,
// for building absolute asset URLs from backend-relative paths.
func (g *Gateway) Origin() string {
	origin := strings.TrimRight(g.baseURL, "/")
	origin = strings.TrimSuffix(origin, "/api")
	return origin
}

// GetJSON issues a GET and decodes the response body into out (unless nil).
func (g *Gateway) GetJSON(ctx context.Context, path string, out any) error {
	return g.doJSON(ctx, http.MethodGet, path, nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
func (g *Gateway) PostJSON(ctx context.Context, path string, in, out any) error {
	return g.doJSON(ctx, http.MethodPost, path, in, out)
}

// PutJSON issues a PUT with a JSON body and decodes the response into out.
func (g *Gateway) PutJSON(ctx context.Context, path string, in, out any) error {
	return g.doJSON(ctx, http.MethodPut, path, in, out)
}

// DeleteJSON issues a DELETE and decodes the response into out (unless nil).
func (g *Gateway) DeleteJSON(ctx context.Context, path string, out any) error {
	return g.doJSON(ctx, http.MethodDelete, path, nil, out)
}

func (g *Gateway) doJSON(ctx context.Context, method, path string, in, out any) error {
	start := time.Now()
	err := g.roundTrip(ctx, method, path, in, out)
	requestDuration.Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(method, outcomeLabel(err)).Inc()
	return err
}

func (g *Gateway) roundTrip(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return g.classify(path, false, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return g.classify(path, false, err)
	}

	// Request interception: credential + request id, then log.
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.tokens != nil {
		if tok := g.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	appLog.Debug("api request", "method", method, "path", path, "request_id", reqID)

	resp, err := g.client.Do(req)
	if err != nil {
		classified := g.classify(path, true, err)
		appLog.Error("api request failed", classified, "method", method, "path", path, "request_id", reqID)
		return classified
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		prefix, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		classified := g.statusError(method, path, resp.StatusCode, prefix)
		appLog.Error("api status error", classified, "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)
		return classified
	}

	appLog.Debug("api success", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return g.classify(path, false, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// classify turns a transport-level failure into a *Error. Priority order:
// timeout, then no-response (the request went out), then other. A received
// non-2xx response is handled separately in statusError.
func (g *Gateway) classify(path string, sent bool, err error) *Error {
	kind := KindOther
	msg := fmt.Sprintf("Request failed: %v", err)

	switch {
	case isTimeout(err):
		kind = KindTimeout
		msg = "Request timed out - the server may be waking up. Please wait a moment and try again."
	case sent:
		kind = KindNoResponse
		msg = "No response from server. Check your internet connection."
	}

	return &Error{
		Kind:        kind,
		Path:        path,
		UserMessage: msg,
		Err:         err,
	}
}

func (g *Gateway) statusError(method, path string, status int, body []byte) *Error {
	return &Error{
		Kind:        KindHTTPStatus,
		Status:      status,
		Path:        path,
		UserMessage: fmt.Sprintf("API error %d: %s", status, path),
		Body:        body,
		Err:         fmt.Errorf("%s %s: %s", method, path, http.StatusText(status)),
	}
}

// isTimeout reports whether err is a timeout, either by transport signal or
// by message pattern.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return timeoutPattern.MatchString(err.Error())
}
