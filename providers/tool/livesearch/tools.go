package livesearch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/livesearch/core/search"
	"github.com/leofalp/livesearch/providers/tool"
)

// Tool names.
const (
	ToolSearchWeb     = "search_web"
	ToolSearchNews    = "search_news"
	ToolSearchSocial  = "search_social"
	ToolSearchGeneral = "search_general"
	ToolHealthCheck   = "health_check"
	ToolClearCache    = "clear_cache"
)

const statusFailed = "failed"

type toolsOptions struct {
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Option configures the tools built by this package.
type Option func(*toolsOptions)

// WithClock replaces the time source used for envelope timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *toolsOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRequestIDs replaces the request ID generator.
func WithRequestIDs(newID func() string) Option {
	return func(o *toolsOptions) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// WithLogger sets the logger passed to the underlying tools.
func WithLogger(logger *slog.Logger) Option {
	return func(o *toolsOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) toolsOptions {
	o := toolsOptions{
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewSearchTools returns the four search tools backed by s, in the order
// search_web, search_news, search_social, search_general.
func NewSearchTools(s Searcher, opts ...Option) []tool.GenericTool {
	o := buildOptions(opts)
	loggerOpt := tool.WithLogger(o.logger)

	return []tool.GenericTool{
		tool.NewTool(ToolSearchWeb, searchFunc(s, o, search.SourceWeb),
			tool.WithDescription("Search the web in real time. Returns results with titles, snippets, URLs and enriched citations. Use analysis_mode comprehensive for a research-style analysis."),
			loggerOpt,
		),
		tool.NewTool(ToolSearchNews, searchFunc(s, o, search.SourceNews),
			tool.WithDescription("Search recent news coverage, falling back to the web. Supports from_date and to_date to bound publication dates."),
			loggerOpt,
		),
		tool.NewTool(ToolSearchSocial, socialFunc(s, o),
			tool.WithDescription("Search posts on X. Optionally restrict to specific handles."),
			loggerOpt,
		),
		tool.NewTool(ToolSearchGeneral, searchFunc(s, o, search.SourceGeneral),
			tool.WithDescription("Search the web, news and X together and combine the findings."),
			loggerOpt,
		),
	}
}

// NewHealthTool returns the health_check tool.
func NewHealthTool(s Searcher, opts ...Option) tool.GenericTool {
	o := buildOptions(opts)
	return tool.NewTool(ToolHealthCheck,
		func(context.Context, HealthInput) (search.HealthReport, error) {
			return s.Health(), nil
		},
		tool.WithDescription("Report API availability, request and error counters, uptime and cache size."),
		tool.WithLogger(o.logger),
	)
}

// NewClearCacheTool returns the clear_cache tool, which drops every cached
// comprehensive result so the next comprehensive search reaches the provider.
func NewClearCacheTool(s Searcher, opts ...Option) tool.GenericTool {
	o := buildOptions(opts)
	return tool.NewTool(ToolClearCache,
		func(context.Context, ClearCacheInput) (ClearCacheOutput, error) {
			return ClearCacheOutput{
				Status:         "cleared",
				ClearedEntries: s.ClearCache(),
				Timestamp:      o.now().UTC().Format(time.RFC3339),
			}, nil
		},
		tool.WithDescription("Drop every cached comprehensive result so the next comprehensive search fetches fresh data."),
		tool.WithLogger(o.logger),
	)
}

func searchFunc(s Searcher, o toolsOptions, kind search.SourceKind) func(context.Context, SearchInput) (search.Result, error) {
	return func(ctx context.Context, in SearchInput) (search.Result, error) {
		return run(ctx, s, o, kind, in, nil)
	}
}

func socialFunc(s Searcher, o toolsOptions) func(context.Context, SocialInput) (search.Result, error) {
	return func(ctx context.Context, in SocialInput) (search.Result, error) {
		base := SearchInput{
			Query:        in.Query,
			MaxResults:   in.MaxResults,
			AnalysisMode: in.AnalysisMode,
			FromDate:     in.FromDate,
			ToDate:       in.ToDate,
		}
		return run(ctx, s, o, search.SourceSocial, base, in.Handles)
	}
}

func run(ctx context.Context, s Searcher, o toolsOptions, kind search.SourceKind, in SearchInput, handles []string) (search.Result, error) {
	result, err := s.Search(ctx, search.Params{
		Query:      in.Query,
		Kind:       kind,
		MaxResults: in.MaxResults,
		Handles:    handles,
		FromDate:   in.FromDate,
		ToDate:     in.ToDate,
		Mode:       search.AnalysisMode(in.AnalysisMode),
	})
	if err != nil {
		return nil, newEnvelopeError(err, kind, in, o)
	}
	return result, nil
}

func newEnvelopeError(err error, kind search.SourceKind, in SearchInput, o toolsOptions) *EnvelopeError {
	mode := in.AnalysisMode
	if mode == "" {
		mode = string(search.ModeBasic)
	}
	return &EnvelopeError{
		Envelope: Envelope{
			Error:        err.Error(),
			Status:       statusFailed,
			Query:        in.Query,
			SearchType:   string(kind),
			AnalysisMode: mode,
			FromDate:     optional(in.FromDate),
			ToDate:       optional(in.ToDate),
			Timestamp:    o.now().UTC().Format(time.RFC3339),
			RequestID:    o.newID(),
		},
		Err: err,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
