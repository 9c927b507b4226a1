package zoom

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// remediation is appended to every error that requires the user to
// re-run the interactive authorization flow.
const remediation = `Run "zoomchat auth" to connect your Zoom account. ` +
	`You only need to authorize once; tokens are refreshed automatically afterwards.`

// UnauthorizedError indicates that no credential record exists on disk, or
// that a renewal attempt was rejected and the session is no longer usable.
// It is never retried; the user has to re-run the authorization flow.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	if e.Reason == "" {
		return "not authorized with Zoom. " + remediation
	}
	return fmt.Sprintf("not authorized with Zoom: %s. %s", e.Reason, remediation)
}

// ReauthRequiredError indicates that the authorization server rejected the
// refresh token during renewal. The refresh token may have been revoked or
// rotated; retrying the same renewal is presumed futile.
type ReauthRequiredError struct {
	StatusCode int
	Body       string
}

func (e *ReauthRequiredError) Error() string {
	return fmt.Sprintf("Zoom token refresh failed (HTTP %d): %s. %s",
		e.StatusCode, strings.TrimSpace(e.Body), remediation)
}

// NetworkError indicates a transport-level failure that survived the whole
// retry budget.
type NetworkError struct {
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Zoom API unreachable after %d attempts: %v. Check your network connection and try again.", e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-success HTTP response from the Zoom API, either
// immediately for a non-retryable status or after the retry budget was
// exhausted.
type APIError struct {
	StatusCode int
	// Code is Zoom's machine-readable error code parsed from the response
	// body, 0 when the body carried none.
	Code int
	// Message is the per-status human-readable classification.
	Message string
	// Detail is whatever the response body supplied: the parsed "message"
	// field, or the raw body text.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("Zoom API error (HTTP %d): %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("Zoom API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// statusMessage maps an HTTP status to an actionable classification.
func statusMessage(status int) string {
	switch status {
	case 400:
		return "bad request, check the tool arguments"
	case 401:
		return "authentication failed, the access token was rejected"
	case 403:
		return "forbidden, check that your Zoom app has the required chat scopes"
	case 404:
		return "not found, the channel, message or contact does not exist"
	case 429:
		return "rate limited by Zoom, slow down and retry later"
	case 500:
		return "Zoom internal server error"
	case 502:
		return "bad gateway from Zoom"
	case 503:
		return "Zoom service temporarily unavailable"
	default:
		return "unexpected response from Zoom"
	}
}

// zoomErrorBody is the error payload shape the Zoom API returns.
type zoomErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// newAPIError classifies a non-success response. It prefers the structured
// {code, message} payload and falls back to the raw body text.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    statusMessage(status),
	}

	var parsed zoomErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		apiErr.Code = parsed.Code
		apiErr.Detail = parsed.Message
		return apiErr
	}

	apiErr.Detail = strings.TrimSpace(string(body))
	return apiErr
}

// threadReplyErrorCode is the Zoom error code returned when a reply targets
// a message that is not a main (thread-starting) message.
const threadReplyErrorCode = 300

// IsThreadReplyTargetError reports whether err is Zoom rejecting a threaded
// reply because the target is not a main message. This is the single
// translation boundary for that upstream behavior: the structured error code
// is checked first, the "main message" text match is a last resort because
// Zoom's error payloads are not guaranteed stable.
func IsThreadReplyTargetError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == threadReplyErrorCode && strings.Contains(strings.ToLower(apiErr.Detail), "message") {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Detail), "main message")
}
