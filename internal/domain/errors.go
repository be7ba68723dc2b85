package domain

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a router-level failure for the uniform response
// contract.
type ErrorKind string

const (
	// KindInvalidInput covers malformed or missing request fields, unknown
	// models and unsupported providers.
	KindInvalidInput ErrorKind = "invalid_input"

	// KindMissingCredential is the user-key variant of invalid input: the
	// selected provider requires a caller-supplied API key and none was
	// given.
	KindMissingCredential ErrorKind = "missing_credential"

	// KindRateLimited means the per-client window is exhausted.
	KindRateLimited ErrorKind = "rate_limited"

	// KindUpstream covers classified provider failures.
	KindUpstream ErrorKind = "upstream"

	// KindInternal covers unexpected faults in the router's own logic.
	KindInternal ErrorKind = "internal"
)

// RouterError is the classified failure returned by the router. Message is
// always safe to show to end users; Detail carries the raw upstream text and
// is surfaced only in development mode.
type RouterError struct {
	Kind      ErrorKind
	Message   string
	Retriable bool
	Detail    string
}

func (e *RouterError) Error() string {
	return e.Message
}

// StatusCode maps the error kind onto its HTTP-equivalent status.
func (e *RouterError) StatusCode() int {
	switch e.Kind {
	case KindInvalidInput, KindMissingCredential:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// NewInvalidInput builds a non-retriable input validation error.
func NewInvalidInput(message string) *RouterError {
	return &RouterError{Kind: KindInvalidInput, Message: message}
}

// UpstreamKind is the closed set of typed failure categories an adapter may
// raise. The router classifies on kind, never on error text.
type UpstreamKind string

const (
	// UpstreamAuth covers rejected or missing provider credentials.
	UpstreamAuth UpstreamKind = "auth"

	// UpstreamQuota covers provider-side rate and quota exhaustion.
	UpstreamQuota UpstreamKind = "quota"

	// UpstreamModelUnavailable means the provider does not serve the
	// requested model right now.
	UpstreamModelUnavailable UpstreamKind = "model_unavailable"

	// UpstreamEmptyResponse means the provider replied 2xx but the
	// generated content field was absent or blank.
	UpstreamEmptyResponse UpstreamKind = "empty_response"

	// UpstreamBadResponse means the provider replied 2xx with a body that
	// could not be decoded.
	UpstreamBadResponse UpstreamKind = "bad_response"

	// UpstreamTimeout means the outbound call exceeded its deadline.
	UpstreamTimeout UpstreamKind = "timeout"

	// UpstreamConnection means the provider could not be reached at the
	// transport level.
	UpstreamConnection UpstreamKind = "connection"

	// UpstreamUnknown covers everything else, typically 5xx responses.
	UpstreamUnknown UpstreamKind = "unknown"
)

// UpstreamError is a typed provider failure. StatusCode is zero when the
// failure happened before an HTTP status was received.
type UpstreamError struct {
	Kind       UpstreamKind
	StatusCode int
	Message    string
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %s: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// ClassifyStatus maps a non-2xx HTTP status onto an upstream failure kind.
func ClassifyStatus(status int) UpstreamKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return UpstreamAuth
	case http.StatusTooManyRequests, http.StatusPaymentRequired:
		return UpstreamQuota
	case http.StatusNotFound:
		return UpstreamModelUnavailable
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return UpstreamTimeout
	default:
		return UpstreamUnknown
	}
}
