package elevenlabs

import (
	"net/http"
	"strconv"
	"time"
)

// maxRetryDelay caps the wait between attempts.
const maxRetryDelay = 30 * time.Second

// shouldRetry reports whether an HTTP status is transient.
//
// Retryable statuses: 429, 500, 502, 503.
func shouldRetry(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return true
	}
	return false
}

// parseRetryAfter reads the Retry-After header as integer seconds.
// Returns 0 when the header is absent or not a valid integer.
func parseRetryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// computeDelay returns the wait before the next attempt.
//
// Exponential backoff base*2^attempt, lower-bounded by the server's
// Retry-After hint when present, capped at 30 seconds.
func computeDelay(attempt int, base time.Duration, retryAfter time.Duration) time.Duration {
	delay := maxRetryDelay
	if attempt < 32 {
		exp := base << uint(attempt)
		if exp > 0 && exp < maxRetryDelay {
			delay = exp
		}
	}
	if retryAfter > delay {
		delay = retryAfter
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}
