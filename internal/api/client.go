// Package api provides the HTTP client for the platform backend.
//
// The backend authenticates with a custom "token" request header (not the
// standard Authorization scheme) and reports failures as either a JSON body
// {"detail": "..."} or plain text. Client hides both quirks: callers make
// typed JSON calls and get back apperror values.
//
// Requests are single-shot — no retries, no cancellation beyond the caller's
// context. Overlapping calls race benignly (last response wins), which is the
// accepted model for this client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/learnhub/internal/apperror"
)

// TokenSource supplies the bearer token for authenticated calls. The session
// store implements it; an empty token means the request goes out anonymous.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client is the backend HTTP client. Construct with New and share one
// instance — it is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

// New creates a Client for the backend at baseURL. tokens may be nil for a
// client that only makes anonymous calls.
func New(baseURL string, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		logger:  logger,
	}
}

// JSON performs an HTTP call with a JSON request and response body. body and
// out may each be nil. A 204 (or empty body) leaves out untouched. Non-2xx
// responses come back as apperror.Network carrying the backend's detail
// message.
func (c *Client) JSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("api: building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// Upload performs a multipart POST with a single file field. Used by the
// media endpoints.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("api: creating multipart field %q: %w", field, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("api: buffering upload %q: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("api: finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("api: building upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req, out)
}

// do attaches auth + tracing headers, executes the request, and decodes the
// response into out.
func (c *Client) do(req *http.Request, out any) error {
	op := req.Method + " " + req.URL.Path

	if c.tokens != nil {
		if token := c.tokens.Token(req.Context()); token != "" {
			// Backend contract: the raw token rides in a custom header.
			req.Header.Set("token", token)
		}
	}
	requestID := xid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			slog.String("op", op),
			slog.String("requestID", requestID),
			slog.String("error", err.Error()),
		)
		return apperror.Network(op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request completed",
		slog.String("op", op),
		slog.String("requestID", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperror.Network(op, fmt.Errorf("%s", errorDetail(resp)))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.Network(op, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// errorDetail extracts the backend's error message from a non-2xx response:
// the "detail" field when the body is JSON, the raw text otherwise, and the
// bare status when the body is empty.
func errorDetail(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
