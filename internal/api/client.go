package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "enrolladmin/1.0"
	maxBodyBytes   = 8 << 20
)

// HTTPClient talks to the admin REST API
type HTTPClient struct {
	client  *http.Client
	baseURL string
	token   string
	maxBody int64
}

// NewHTTPClient creates a client for baseURL. A zero timeout uses the default.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		maxBody: maxBodyBytes,
	}
}

// BaseURL returns the API root without a trailing slash
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Get makes a GET request with params as the query string
func (c *HTTPClient) Get(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, params)
}

// Delete makes a DELETE request
func (c *HTTPClient) Delete(ctx context.Context, endpoint string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, params url.Values) (*Response, error) {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", target).
		Msg("making HTTP request")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Str("request_id", requestID).
			Str("url", target).
			Err(err).
			Msg("HTTP request failed")
		return nil, &Error{Code: CodeTransport, Message: "request failed", Err: err}
	}
	return c.handleResponse(resp, requestID, time.Since(start))
}

func (c *HTTPClient) handleResponse(resp *http.Response, requestID string, took time.Duration) (*Response, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &Error{Code: CodeTransport, Status: resp.StatusCode, Message: "failed to read response body", Err: err}
	}
	if int64(len(body)) > c.maxBody {
		log.Warn().
			Str("request_id", requestID).
			Int64("limit", c.maxBody).
			Msg("HTTP response too large")
		return nil, &Error{Code: CodeTransport, Status: resp.StatusCode, Message: fmt.Sprintf("response too large (over %d bytes)", c.maxBody)}
	}

	log.Debug().
		Str("request_id", requestID).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(body)).
		Dur("took", took).
		Msg("received HTTP response")

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		RequestID:  requestID,
	}, nil
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	RequestID  string
}

// IsSuccess checks for a 2xx status code
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err converts a non-2xx response into an *Error, nil otherwise
func (r *Response) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return errorFromResponse(r)
}
