package elevenlabs

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// ErrorKind identifies the failure class of an *Error. Every error
// surfaced by this package carries exactly one kind.
type ErrorKind string

const (
	// ErrKindAPI is a non-2xx API response that is not auth or rate-limit.
	ErrKindAPI ErrorKind = "api"
	// ErrKindAuth is an authentication failure (missing or rejected key).
	ErrKindAuth ErrorKind = "auth"
	// ErrKindRateLimited is a 429 response that exhausted the retry budget.
	ErrKindRateLimited ErrorKind = "rate_limited"
	// ErrKindTimeout is a request that timed out after all retries.
	ErrKindTimeout ErrorKind = "timeout"
	// ErrKindTransport is a network-level failure below HTTP.
	ErrKindTransport ErrorKind = "transport"
	// ErrKindDeserialization is a response body that failed to decode.
	ErrKindDeserialization ErrorKind = "deserialization"
	// ErrKindValidation is a caller-provided input that failed validation.
	ErrKindValidation ErrorKind = "validation"
	// ErrKindInvalidURL is a URL that could not be built or parsed.
	ErrKindInvalidURL ErrorKind = "invalid_url"
	// ErrKindWebSocket is a WebSocket handshake or frame failure.
	ErrKindWebSocket ErrorKind = "websocket"
)

// Error is the error type returned by all SDK operations.
type Error struct {
	// Kind is the failure class.
	Kind ErrorKind

	// Status is the HTTP status code, when the failure came from a response.
	Status int

	// Message is a human-readable description.
	Message string

	// Body is the raw response body, when one was available.
	Body string

	// RetryAfter is the server-supplied wait hint on rate-limit errors.
	// Zero when the server sent none.
	RetryAfter time.Duration

	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrKindAPI:
		return fmt.Sprintf("elevenlabs: API error (HTTP %d): %s", e.Status, e.Message)
	case ErrKindRateLimited:
		if e.RetryAfter > 0 {
			return fmt.Sprintf("elevenlabs: rate limited (retry after %s)", e.RetryAfter)
		}
		return "elevenlabs: rate limited"
	case ErrKindTimeout:
		return "elevenlabs: request timeout"
	default:
		return fmt.Sprintf("elevenlabs: %s: %s", e.Kind, e.Message)
	}
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsAuth reports whether this is an authentication failure.
func (e *Error) IsAuth() bool {
	return e.Kind == ErrKindAuth
}

// IsRateLimit reports whether this is a rate-limit failure.
func (e *Error) IsRateLimit() bool {
	return e.Kind == ErrKindRateLimited
}

// IsTimeout reports whether the request timed out.
func (e *Error) IsTimeout() bool {
	return e.Kind == ErrKindTimeout
}

// Retryable reports whether the failure class is transient.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case ErrKindRateLimited, ErrKindTimeout:
		return true
	case ErrKindAPI:
		return shouldRetry(e.Status)
	default:
		return false
	}
}

// AsError extracts *Error from an error chain.
//
//	if e, ok := elevenlabs.AsError(err); ok && e.IsRateLimit() {
//	    // back off
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind ErrorKind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: err}
}

// extractErrorMessage pulls a human-readable message out of an API error
// body. The API returns either {"detail": "..."} or
// {"detail": {"message": "..."}}.
func extractErrorMessage(body []byte) string {
	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsObject():
		if msg := detail.Get("message"); msg.Exists() {
			return msg.String()
		}
	}
	return ""
}

// apiError builds the terminal error for a non-2xx response.
func apiError(status int, body []byte, retryAfter time.Duration) *Error {
	message := extractErrorMessage(body)

	switch status {
	case http.StatusUnauthorized:
		if message == "" {
			message = "invalid or missing API key"
		}
		return &Error{Kind: ErrKindAuth, Status: status, Message: message, Body: string(body)}
	case http.StatusTooManyRequests:
		return &Error{Kind: ErrKindRateLimited, Status: status, Message: message, Body: string(body), RetryAfter: retryAfter}
	}

	if message == "" {
		message = http.StatusText(status)
		if message == "" {
			message = "unknown error"
		}
	}
	return &Error{Kind: ErrKindAPI, Status: status, Message: message, Body: string(body)}
}
