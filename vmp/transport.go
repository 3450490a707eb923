package vmp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultRequestTimeout = 15 * time.Second
	maxResponseBytes      = 1 << 20
	idempotencyKeyHeader  = "x-idempotency-key"
)

// Doer issues one HTTP request. *http.Client satisfies it; tests substitute
// stubs to assert that validation failures never reach the wire.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// transport sends single JSON requests against one base URL. It holds no
// per-request state and is safe for concurrent use.
type transport struct {
	baseURL    string
	bearer     string
	httpClient Doer
	timeout    time.Duration
}

type call struct {
	method         string
	path           string
	query          url.Values
	body           any
	idempotencyKey string
	noAuth         bool
}

func newTransport(baseURL, bearer string, httpClient Doer, timeout time.Duration) (*transport, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, newValidationError("base_url", "must be a non-empty string")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, newValidationError("base_url", fmt.Sprintf("invalid url: %v", err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, newValidationError("base_url", "must use http or https")
	}
	if parsed.Host == "" {
		return nil, newValidationError("base_url", "host is required")
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &transport{
		baseURL:    trimmed,
		bearer:     bearer,
		httpClient: httpClient,
		timeout:    timeout,
	}, nil
}

// do sends one request and decodes the 2xx response body into out (ignored
// when out is nil). An empty 2xx body is treated as an empty object.
func (t *transport) do(ctx context.Context, c call, out any) error {
	endpoint := t.baseURL + c.path
	if len(c.query) > 0 {
		endpoint += "?" + c.query.Encode()
	}

	var bodyReader io.Reader
	if c.body != nil {
		encoded, err := json.Marshal(c.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	reqCtx, cancel := t.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, c.method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !c.noAuth {
		req.Header.Set("Authorization", "Bearer "+t.bearer)
	}
	if c.idempotencyKey != "" {
		req.Header.Set(idempotencyKeyHeader, c.idempotencyKey)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", c.method, c.path, ErrRequestTimeout)
		}
		return fmt.Errorf("%s %s: %w", c.method, c.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", c.method, c.path, ErrRequestTimeout)
		}
		return fmt.Errorf("read response body: %w", err)
	}

	text := string(raw)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newHTTPError(resp.StatusCode, text)
	}

	if out == nil || strings.TrimSpace(text) == "" {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}

	return nil
}

// requestContext attaches the transport timeout unless the caller already set
// a tighter deadline of their own.
func (t *transport) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, t.timeout)
}

// newHTTPError maps a non-2xx body to an HTTPError. A JSON body contributes
// its "error" string and "details" payload; anything else degrades to the raw
// text as the message.
func newHTTPError(status int, body string) error {
	message := strings.TrimSpace(body)
	if message == "" {
		message = "unknown error"
	}

	var details any
	var wire struct {
		Error   string `json:"error"`
		Details any    `json:"details"`
	}
	if err := json.Unmarshal([]byte(body), &wire); err == nil {
		if wire.Error != "" {
			message = wire.Error
		}
		details = wire.Details
	}

	return &HTTPError{
		Status:  status,
		Message: message,
		Details: details,
		RawBody: body,
	}
}
