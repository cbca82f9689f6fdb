package executor

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/leofalp/livesearch/internal/utils"
)

var (
	// ErrRetriesExhausted wraps the last attempt's error when every attempt
	// failed with a retryable error.
	ErrRetriesExhausted = errors.New("livesearch: all attempts exhausted")

	// ErrCircuitOpen is returned without contacting the provider while the
	// circuit breaker is open.
	ErrCircuitOpen = errors.New("livesearch: provider circuit open")
)

// APIError is a non-2xx response from the provider.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider API error (status %d): %s", e.Status, utils.TruncateForLog(e.Body, 300))
}

// Retryable reports whether the status is worth another attempt.
func (e *APIError) Retryable() bool {
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// TimeoutError reports an attempt aborted by the request timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider request timed out after %s", e.Timeout)
}

// NetworkError is a transport-level failure with no HTTP status.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "provider network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsRetryable reports whether err should trigger another attempt.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}

	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// isClientError reports a 4xx rejection other than 429. Such errors say
// nothing about provider health and do not count against the breaker.
func isClientError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status >= 400 && apiErr.Status < 500 && apiErr.Status != http.StatusTooManyRequests
}
