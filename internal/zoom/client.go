package zoom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teemow/zoomchat/internal/logging"
)

// DefaultBaseURL is the Zoom REST API base path.
const DefaultBaseURL = "https://api.zoom.us/v2"

// DefaultRetries is the total HTTP attempt budget for one logical call.
const DefaultRetries = 3

// maxBackoff caps the exponential backoff between attempts.
const maxBackoff = 8 * time.Second

// retryableStatus is the set of HTTP statuses considered transient and safe
// to retry automatically.
var retryableStatus = map[int]bool{
	408: true,
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// MetricsRecorder receives observability events from the request layer.
// Implemented by instrumentation.Metrics; a nil recorder disables recording.
type MetricsRecorder interface {
	RecordAPIRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	RecordRetry(ctx context.Context, reason string)
	RecordTokenRefresh(ctx context.Context, result string)
}

// RequestOptions customizes a single Execute call.
type RequestOptions struct {
	// Query parameters; empty values are dropped from the URL.
	Query url.Values
	// Body is JSON-encoded for methods other than GET and DELETE.
	Body any
	// Retries is the total attempt budget (default DefaultRetries).
	Retries int
}

// Client executes Zoom API calls with bounded retry, exponential backoff and
// transparent re-authentication on a stale bearer token.
type Client struct {
	baseURL    string
	tokens     *TokenManager
	httpClient *http.Client
	logger     *slog.Logger
	metrics    MetricsRecorder

	// sleep is replaceable in tests to avoid real backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a client for the given base URL. An empty baseURL uses
// DefaultBaseURL. A nil logger falls back to slog.Default.
func NewClient(baseURL string, tokens *TokenManager, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		sleep:      sleepContext,
	}
}

// SetMetrics attaches a metrics recorder. Safe to leave unset.
func (c *Client) SetMetrics(m MetricsRecorder) {
	c.metrics = m
}

// Tokens returns the token manager the client authenticates with.
func (c *Client) Tokens() *TokenManager {
	return c.tokens
}

// Authorized reports whether a credential record exists, without touching
// the network. Tool handlers use it to short-circuit with onboarding
// instructions before any HTTP call is attempted.
func (c *Client) Authorized() bool {
	return c.tokens.Store().Exists()
}

// backoffDelay is the exponential backoff before retrying attempt+1:
// 1s, 2s, 4s, capped at maxBackoff.
func backoffDelay(attempt int) time.Duration {
	d := time.Second << (attempt - 1)
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// sleepContext waits for d or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Execute performs one logical API call and returns the decoded JSON body,
// or an empty map for a 204 response.
//
// The retry budget is shared across network failures, retryable HTTP
// statuses and the one-time reauth path: a single attempt counter governs
// all three, so a flaky endpoint cannot exceed the overall ceiling even when
// it fails for different reasons on different attempts. A 401 is only
// treated as a stale-token signal on the first attempt; later 401s fall
// through to the generic non-success path to prevent reauth loops.
func (c *Client) Execute(ctx context.Context, method, path string, opts *RequestOptions) (map[string]any, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	retries := opts.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}

	var lastNetErr error
	for attempt := 1; attempt <= retries; attempt++ {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return nil, err
		}

		req, err := c.buildRequest(ctx, method, path, opts, token)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastNetErr = err
			c.logger.Warn("Zoom API request failed",
				"method", method, "path", path, "attempt", attempt, logging.Err(err))
			if attempt < retries {
				c.recordRetry(ctx, "network")
				if serr := c.sleep(ctx, backoffDelay(attempt)); serr != nil {
					return nil, serr
				}
				continue
			}
			return nil, &NetworkError{Attempts: attempt, Err: lastNetErr}
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		c.recordRequest(ctx, method, path, resp.StatusCode, time.Since(start))
		if readErr != nil {
			lastNetErr = readErr
			if attempt < retries {
				c.recordRetry(ctx, "network")
				if serr := c.sleep(ctx, backoffDelay(attempt)); serr != nil {
					return nil, serr
				}
				continue
			}
			return nil, &NetworkError{Attempts: attempt, Err: lastNetErr}
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized && attempt == 1:
			// Stale-token signal: renew unconditionally and retry without a
			// backoff delay. The local expiry check already passed, so the
			// server's verdict wins.
			c.logger.Debug("access token rejected, forcing renewal", "path", path)
			renewed, err := c.tokens.ForceRefresh(ctx)
			if err != nil {
				c.recordTokenRefresh(ctx, "failure")
				return nil, err
			}
			c.recordTokenRefresh(ctx, "success")
			c.logger.Debug("access token renewed",
				"access_token", logging.SanitizeToken(renewed))
			continue

		case retryableStatus[resp.StatusCode] && attempt < retries:
			c.logger.Warn("retryable Zoom API response",
				"method", method, "path", path, "status", resp.StatusCode, "attempt", attempt)
			c.recordRetry(ctx, fmt.Sprintf("http_%d", resp.StatusCode))
			if serr := c.sleep(ctx, backoffDelay(attempt)); serr != nil {
				return nil, serr
			}
			continue

		case resp.StatusCode == http.StatusNoContent:
			return map[string]any{}, nil

		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if len(bytes.TrimSpace(body)) == 0 {
				return map[string]any{}, nil
			}
			var result map[string]any
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("failed to parse Zoom API response: %w", err)
			}
			return result, nil

		default:
			return nil, newAPIError(resp.StatusCode, body)
		}
	}

	// Unreachable: every loop exit returns. Kept for the compiler.
	return nil, &NetworkError{Attempts: retries, Err: lastNetErr}
}

// buildRequest assembles the target URL, bearer header and JSON body for one
// attempt. Query parameters with empty values are dropped.
func (c *Client) buildRequest(ctx context.Context, method, path string, opts *RequestOptions, token string) (*http.Request, error) {
	target := c.baseURL + path
	if len(opts.Query) > 0 {
		filtered := url.Values{}
		for key, values := range opts.Query {
			for _, v := range values {
				if v != "" {
					filtered.Add(key, v)
				}
			}
		}
		if encoded := filtered.Encode(); encoded != "" {
			target += "?" + encoded
		}
	}

	var reqBody io.Reader
	if opts.Body != nil && method != http.MethodGet && method != http.MethodDelete {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) recordRequest(ctx context.Context, method, path string, status int, d time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordAPIRequest(ctx, method, path, status, d)
	}
}

func (c *Client) recordRetry(ctx context.Context, reason string) {
	if c.metrics != nil {
		c.metrics.RecordRetry(ctx, reason)
	}
}

func (c *Client) recordTokenRefresh(ctx context.Context, result string) {
	if c.metrics != nil {
		c.metrics.RecordTokenRefresh(ctx, result)
	}
}
