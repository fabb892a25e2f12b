// Package httpclient talks to a running acrunner listener.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	appErr "acrunner/pkg/errors"
)

// ResponseInfo carries response details.
type ResponseInfo struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Envelope is the response body written by the listener.
type Envelope struct {
	Code    appErr.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data,omitempty"`
	TraceID string           `json:"trace_id,omitempty"`
}

// Client wraps HTTP requests to the listener.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL, e.g. http://127.0.0.1:10043.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Do sends one request and reads the whole body.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (ResponseInfo, error) {
	var info ResponseInfo

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return info, appErr.Wrapf(err, appErr.InvalidParams, "build request failed")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	info.Duration = time.Since(start)
	if err != nil {
		return info, appErr.Wrapf(err, appErr.ServiceUnavailable, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	info.StatusCode = resp.StatusCode
	info.Headers = resp.Header
	info.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		return info, appErr.Wrapf(err, appErr.ServiceUnavailable, "read response body failed")
	}
	return info, nil
}

// SendProblem posts a Competitive Companion payload, as the browser extension would.
func (c *Client) SendProblem(ctx context.Context, payload []byte) (Envelope, error) {
	return c.call(ctx, http.MethodPost, "/", payload)
}

// CurrentProblem fetches the listener's current problem.
func (c *Client) CurrentProblem(ctx context.Context) (Envelope, error) {
	return c.call(ctx, http.MethodGet, "/api/v1/problem", nil)
}

func (c *Client) call(ctx context.Context, method, path string, body []byte) (Envelope, error) {
	var env Envelope
	info, err := c.Do(ctx, method, path, body)
	if err != nil {
		return env, err
	}
	if err := json.Unmarshal(info.Body, &env); err != nil {
		return env, appErr.Wrapf(err, appErr.InvalidFormat, "decode response (HTTP %d)", info.StatusCode)
	}
	if env.Code != appErr.Success {
		return env, appErr.New(env.Code).WithMessage(env.Message)
	}
	return env, nil
}
