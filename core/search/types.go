package search

import (
	"github.com/leofalp/livesearch/core/citation"
)

// SourceKind selects which upstream content classes a search targets.
type SourceKind string

const (
	SourceWeb     SourceKind = "web"
	SourceNews    SourceKind = "news"
	SourceSocial  SourceKind = "social"
	SourceGeneral SourceKind = "general"
)

// AnalysisMode selects the result shape.
type AnalysisMode string

const (
	ModeBasic         AnalysisMode = "basic"
	ModeComprehensive AnalysisMode = "comprehensive"
)

// ResultTag identifies results produced by this pipeline.
const ResultTag = "xai-live-search"

// ResultItem is one search hit. The citation fields are either all set or
// all nil.
type ResultItem struct {
	Title            string           `json:"title"`
	Snippet          string           `json:"snippet"`
	URL              string           `json:"url"`
	Source           string           `json:"source"`
	PublishedDate    string           `json:"published_date"`
	Author           *string          `json:"author,omitempty"`
	CitationURL      *string          `json:"citation_url,omitempty"`
	CitationIndex    *int             `json:"citation_index,omitempty"`
	CitationMetadata *citation.Record `json:"citation_metadata,omitempty"`
}

// BasicResult is the lightweight result shape.
type BasicResult struct {
	Query            string            `json:"query"`
	AnalysisMode     AnalysisMode      `json:"analysis_mode"`
	SourceKind       SourceKind        `json:"search_type"`
	Results          []ResultItem      `json:"results"`
	Citations        []string          `json:"citations"`
	CitationMetadata []citation.Record `json:"citation_metadata"`
	Summary          string            `json:"summary"`
	TotalResults     int               `json:"total_results"`
	SearchTime       string            `json:"search_time"`
	Source           string            `json:"source"`
	// Strategy names the extraction strategy that produced the result, or
	// "fallback".
	Strategy string `json:"extraction_strategy"`
	Fallback bool   `json:"fallback"`
}

// ComprehensiveResult extends BasicResult with research-style analysis. Every
// collection is non-nil so consumers always see the same shape.
type ComprehensiveResult struct {
	BasicResult

	ComprehensiveAnalysis string         `json:"comprehensive_analysis"`
	KeyFindings           []any          `json:"key_findings"`
	Timeline              []any          `json:"timeline"`
	DirectQuotes          []any          `json:"direct_quotes"`
	RelatedContext        []any          `json:"related_context"`
	MultiplePerspectives  []any          `json:"multiple_perspectives"`
	Implications          []any          `json:"implications"`
	VerificationStatus    map[string]any `json:"verification_status"`
	RawResults            []any          `json:"raw_results"`
}

// Result is either a *BasicResult or a *ComprehensiveResult.
type Result interface {
	Mode() AnalysisMode
	Basic() *BasicResult
}

func (r *BasicResult) Mode() AnalysisMode  { return ModeBasic }
func (r *BasicResult) Basic() *BasicResult { return r }

func (r *ComprehensiveResult) Mode() AnalysisMode  { return ModeComprehensive }
func (r *ComprehensiveResult) Basic() *BasicResult { return &r.BasicResult }
