package livesearch

import (
	"context"

	"github.com/leofalp/livesearch/core/search"
)

// Searcher is the part of *search.Orchestrator the tools depend on.
type Searcher interface {
	Search(ctx context.Context, p search.Params) (search.Result, error)
	Health() search.HealthReport
	ClearCache() int
}

// SearchInput is the argument object of search_web, search_news and
// search_general.
type SearchInput struct {
	Query        string `json:"query" jsonschema:"the search query, at most 1000 characters"`
	MaxResults   int    `json:"max_results,omitempty" jsonschema:"number of results to return, 1 to 20, default 10"`
	AnalysisMode string `json:"analysis_mode,omitempty" jsonschema:"basic (default) or comprehensive for findings, timeline, quotes and perspectives"`
	FromDate     string `json:"from_date,omitempty" jsonschema:"only include content published on or after this date, YYYY-MM-DD"`
	ToDate       string `json:"to_date,omitempty" jsonschema:"only include content published on or before this date, YYYY-MM-DD"`
}

// SocialInput is the argument object of search_social.
type SocialInput struct {
	Query        string   `json:"query" jsonschema:"the search query, at most 1000 characters"`
	MaxResults   int      `json:"max_results,omitempty" jsonschema:"number of results to return, 1 to 20, default 10"`
	AnalysisMode string   `json:"analysis_mode,omitempty" jsonschema:"basic (default) or comprehensive for findings, timeline, quotes and perspectives"`
	FromDate     string   `json:"from_date,omitempty" jsonschema:"only include content published on or after this date, YYYY-MM-DD"`
	ToDate       string   `json:"to_date,omitempty" jsonschema:"only include content published on or before this date, YYYY-MM-DD"`
	Handles      []string `json:"handles,omitempty" jsonschema:"restrict results to these X handles, with or without the leading @"`
}

// HealthInput is the empty argument object of health_check.
type HealthInput struct{}

// ClearCacheInput is the empty argument object of clear_cache.
type ClearCacheInput struct{}

// ClearCacheOutput reports a cache flush.
type ClearCacheOutput struct {
	Status         string `json:"status"`
	ClearedEntries int    `json:"cleared_entries"`
	Timestamp      string `json:"timestamp"`
}

// Envelope is the failure payload returned to tool callers.
type Envelope struct {
	Error        string  `json:"error"`
	Status       string  `json:"status"`
	Query        string  `json:"query"`
	SearchType   string  `json:"search_type"`
	AnalysisMode string  `json:"analysis_mode"`
	FromDate     *string `json:"from_date"`
	ToDate       *string `json:"to_date"`
	Timestamp    string  `json:"timestamp"`
	RequestID    string  `json:"request_id"`
}

// EnvelopeError is a failed search together with its caller-facing
// envelope. Unwrap exposes the underlying validation or search error.
type EnvelopeError struct {
	Envelope Envelope
	Err      error
}

func (e *EnvelopeError) Error() string { return e.Envelope.Error }

func (e *EnvelopeError) Unwrap() error { return e.Err }
