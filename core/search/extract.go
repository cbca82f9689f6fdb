package search

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leofalp/livesearch/core/citation"
	"github.com/leofalp/livesearch/core/executor"
	"github.com/leofalp/livesearch/core/parse"
	"github.com/leofalp/livesearch/core/validate"
	"github.com/leofalp/livesearch/internal/utils"
)

const (
	// MaxSnippetLength bounds ResultItem.Snippet, in characters.
	MaxSnippetLength = 500

	// DefaultItemSource is used when the provider omits an item's source.
	DefaultItemSource = "web-search"

	// StrategyFallback marks a result synthesised from unstructured text.
	StrategyFallback = "fallback"
)

var (
	htmlTagPattern = regexp.MustCompile(`<[A-Za-z/][^>]*>`)

	comprehensiveKeys = [][]string{
		{"comprehensive_analysis", "comprehensiveAnalysis"},
		{"key_findings", "keyFindings"},
		{"timeline"},
		{"direct_quotes", "directQuotes"},
		{"related_context", "relatedContext"},
		{"multiple_perspectives", "multiplePerspectives"},
		{"implications"},
		{"verification_status", "verificationStatus"},
	}
)

// Extract turns a raw provider answer into a Result for q. records must be
// the enrichment of raw.Citations; they are recomputed when they are not.
// Extract never fails: an answer without a usable structured object yields
// a single-item fallback result.
func Extract(raw executor.RawResponse, q Query, records []citation.Record, now time.Time) Result {
	if len(records) != len(raw.Citations) {
		records = citation.Enrich(raw.Citations)
	}

	extraction, ok := parse.Extract(raw.Content)
	if ok && consistent(extraction.Object, q.Mode) {
		return structured(extraction, raw, q, records, now)
	}
	return fallback(raw, q, records, now)
}

func consistent(object map[string]any, mode AnalysisMode) bool {
	if mode == ModeComprehensive {
		for _, keys := range comprehensiveKeys {
			if _, ok := lookup(object, keys...); ok {
				return true
			}
		}
		return false
	}

	results, ok := lookup(object, "results")
	if !ok {
		return false
	}
	_, isList := results.([]any)
	return isList
}

func structured(extraction parse.Extraction, raw executor.RawResponse, q Query, records []citation.Record, now time.Time) Result {
	object := extraction.Object

	rawItems := listValue(object, "results")
	items := make([]ResultItem, 0, min(len(rawItems), q.MaxResults))
	for i, rawItem := range rawItems {
		if i >= q.MaxResults {
			break
		}
		items = append(items, buildItem(i, rawItem, raw.Citations, records, now))
	}

	summary := stringValue(object, "summary")
	if summary == "" {
		summary = fmt.Sprintf("Found %d results for %q.", len(items), q.Text)
	}

	basic := newBasic(q, raw, records, now)
	basic.Results = items
	basic.TotalResults = len(items)
	basic.Summary = summary
	basic.Strategy = extraction.Strategy

	if q.Mode != ModeComprehensive {
		return &basic
	}

	analysis := stringValue(object, "comprehensive_analysis", "comprehensiveAnalysis", "analysis")
	if analysis == "" {
		analysis = summary
	}

	return &ComprehensiveResult{
		BasicResult:           basic,
		ComprehensiveAnalysis: analysis,
		KeyFindings:           listValue(object, "key_findings", "keyFindings"),
		Timeline:              listValue(object, "timeline"),
		DirectQuotes:          listValue(object, "direct_quotes", "directQuotes"),
		RelatedContext:        listValue(object, "related_context", "relatedContext"),
		MultiplePerspectives:  listValue(object, "multiple_perspectives", "multiplePerspectives"),
		Implications:          listValue(object, "implications"),
		VerificationStatus:    objectValue(object, "verification_status", "verificationStatus"),
		RawResults:            rawItems,
	}
}

func fallback(raw executor.RawResponse, q Query, records []citation.Record, now time.Time) Result {
	item := ResultItem{
		Title:         "Search results for: " + q.Text,
		Snippet:       utils.TruncateRunes(raw.Content, MaxSnippetLength),
		Source:        DefaultItemSource,
		PublishedDate: now.Format(validate.DateLayout),
	}
	if len(raw.Citations) > 0 {
		item.URL = raw.Citations[0]
		attachCitation(&item, 0, raw.Citations, records)
	}

	basic := newBasic(q, raw, records, now)
	basic.Results = []ResultItem{item}
	basic.TotalResults = 1
	basic.Summary = "The provider answer did not contain structured results; its raw text is returned as a single result."
	basic.Strategy = StrategyFallback
	basic.Fallback = true

	if q.Mode != ModeComprehensive {
		return &basic
	}

	return &ComprehensiveResult{
		BasicResult:           basic,
		ComprehensiveAnalysis: strings.TrimSpace(raw.Content),
		KeyFindings:           []any{},
		Timeline:              []any{},
		DirectQuotes:          []any{},
		RelatedContext:        []any{},
		MultiplePerspectives:  []any{},
		Implications:          []any{},
		VerificationStatus:    map[string]any{},
		RawResults:            []any{},
	}
}

func newBasic(q Query, raw executor.RawResponse, records []citation.Record, now time.Time) BasicResult {
	citations := raw.Citations
	if citations == nil {
		citations = []string{}
	}
	if records == nil {
		records = []citation.Record{}
	}
	return BasicResult{
		Query:            q.Text,
		AnalysisMode:     q.Mode,
		SourceKind:       q.Kind,
		Citations:        citations,
		CitationMetadata: records,
		SearchTime:       now.UTC().Format(time.RFC3339),
		Source:           ResultTag,
	}
}

// buildItem maps the i-th provider item. With citations present, the URL
// falls back to the citation at the same position, and the citation index is
// the exact URL match or else the position capped to the citation count.
// This can mis-attribute when results share a URL or when the counts differ.
func buildItem(i int, rawItem any, citations []string, records []citation.Record, now time.Time) ResultItem {
	fields, ok := rawItem.(map[string]any)
	if !ok {
		fields = map[string]any{"snippet": fmt.Sprint(rawItem)}
	}

	item := ResultItem{
		Title:         stringValue(fields, "title"),
		Snippet:       normalizeSnippet(stringValue(fields, "snippet", "content", "description", "text")),
		URL:           stringValue(fields, "url", "link"),
		Source:        stringValue(fields, "source"),
		PublishedDate: stringValue(fields, "published_date", "publishedDate", "date"),
	}
	if item.Title == "" {
		item.Title = fmt.Sprintf("Result %d", i+1)
	}
	if item.Source == "" {
		item.Source = DefaultItemSource
	}
	if item.PublishedDate == "" {
		item.PublishedDate = now.Format(validate.DateLayout)
	}
	if author := stringValue(fields, "author"); author != "" {
		item.Author = utils.Ptr(author)
	}

	if len(citations) == 0 {
		return item
	}

	if item.URL == "" && i < len(citations) {
		item.URL = citations[i]
	}

	index := -1
	for j, c := range citations {
		if c == item.URL {
			index = j
			break
		}
	}
	if index < 0 {
		index = min(i, len(citations)-1)
	}
	attachCitation(&item, index, citations, records)
	return item
}

func attachCitation(item *ResultItem, index int, citations []string, records []citation.Record) {
	if index < 0 || index >= len(citations) || index >= len(records) {
		return
	}
	record := records[index]
	item.CitationIndex = utils.Ptr(index + 1)
	item.CitationURL = utils.Ptr(citations[index])
	item.CitationMetadata = &record
}

// normalizeSnippet converts HTML fragments to markdown and caps the length.
func normalizeSnippet(snippet string) string {
	snippet = strings.TrimSpace(snippet)
	if htmlTagPattern.MatchString(snippet) {
		if markdown, err := htmltomarkdown.ConvertString(snippet); err == nil {
			snippet = strings.TrimSpace(markdown)
		}
	}
	return utils.TruncateRunes(snippet, MaxSnippetLength)
}

func lookup(object map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := object[key]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func stringValue(object map[string]any, keys ...string) string {
	value, ok := lookup(object, keys...)
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// listValue returns the list under the first present key. A scalar or object
// becomes a one-element list; absence yields an empty, non-nil list.
func listValue(object map[string]any, keys ...string) []any {
	value, ok := lookup(object, keys...)
	if !ok {
		return []any{}
	}
	if list, isList := value.([]any); isList {
		return list
	}
	return []any{value}
}

// objectValue returns the object under the first present key. A scalar is
// wrapped as {"status": value}; absence yields an empty, non-nil map.
func objectValue(object map[string]any, keys ...string) map[string]any {
	value, ok := lookup(object, keys...)
	if !ok {
		return map[string]any{}
	}
	if m, isMap := value.(map[string]any); isMap {
		return m
	}
	return map[string]any{"status": value}
}
