package search

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/leofalp/livesearch/core/validate"
)

const (
	DefaultMaxResults = 10
	MinMaxResults     = 1
	MaxMaxResults     = 20
)

// Params is the raw, caller-supplied description of a search.
type Params struct {
	Query      string
	Kind       SourceKind
	MaxResults int
	Handles    []string
	FromDate   string
	ToDate     string
	Mode       AnalysisMode
}

// Query is a normalized search. Build it with NewQuery and treat it as a
// value: nothing mutates it after construction. Dates are kept as given and
// validated later in the pipeline.
type Query struct {
	Text       string
	Kind       SourceKind
	MaxResults int
	Mode       AnalysisMode
	Handles    []string
	FromDate   string
	ToDate     string
}

// NewQuery sanitizes and checks p. MaxResults of zero selects
// DefaultMaxResults; handles are kept only for social searches.
func NewQuery(p Params) (Query, error) {
	text, err := validate.Query(p.Query)
	if err != nil {
		return Query{}, err
	}

	kind := p.Kind
	switch kind {
	case "":
		kind = SourceWeb
	case SourceWeb, SourceNews, SourceSocial, SourceGeneral:
	default:
		return Query{}, validate.Errorf("search_type", "unsupported source kind %q", kind)
	}

	mode := p.Mode
	switch mode {
	case "":
		mode = ModeBasic
	case ModeBasic, ModeComprehensive:
	default:
		return Query{}, validate.Errorf("analysis_mode", "unsupported analysis mode %q", mode)
	}

	maxResults := p.MaxResults
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < MinMaxResults || maxResults > MaxMaxResults {
		return Query{}, validate.Errorf("max_results", "%d is outside [%d, %d]", maxResults, MinMaxResults, MaxMaxResults)
	}

	var handles []string
	if kind == SourceSocial {
		handles = normalizeHandles(p.Handles)
	}

	return Query{
		Text:       text,
		Kind:       kind,
		MaxResults: maxResults,
		Mode:       mode,
		Handles:    handles,
		FromDate:   strings.TrimSpace(p.FromDate),
		ToDate:     strings.TrimSpace(p.ToDate),
	}, nil
}

func normalizeHandles(raw []string) []string {
	var handles []string
	seen := make(map[string]bool, len(raw))
	for _, h := range raw {
		h = strings.TrimPrefix(strings.TrimSpace(h), "@")
		if h == "" || seen[strings.ToLower(h)] {
			continue
		}
		seen[strings.ToLower(h)] = true
		handles = append(handles, h)
	}
	return handles
}

// CacheKey identifies every parameter that affects a comprehensive result.
// Handles are compared as a case-insensitive set.
func (q Query) CacheKey() string {
	handles := make([]string, 0, len(q.Handles))
	for _, h := range q.Handles {
		handles = append(handles, strings.ToLower(h))
	}
	slices.Sort(handles)
	parts := []any{"comprehensive", q.Text, q.Kind, q.MaxResults, handles, q.FromDate, q.ToDate}
	// Marshalling strings, ints and string slices cannot fail.
	encoded, _ := json.Marshal(parts)
	return string(encoded)
}
