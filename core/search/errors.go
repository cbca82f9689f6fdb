package search

import "errors"

// ErrAPIUnavailable means no API credential is configured. Searches fail
// fast with it instead of reaching the network.
var ErrAPIUnavailable = errors.New("search API unavailable: XAI_API_KEY is not configured")

// SearchError wraps a failure of the request, execution or extraction steps.
// Validation failures are returned as *validate.ValidationError instead.
type SearchError struct {
	Message string
	Err     error
}

func (e *SearchError) Error() string { return e.Message }

func (e *SearchError) Unwrap() error { return e.Err }

func wrapSearchError(err error) *SearchError {
	return &SearchError{Message: "search failed: " + err.Error(), Err: err}
}
