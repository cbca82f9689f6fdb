package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/leofalp/livesearch/core/cache"
	"github.com/leofalp/livesearch/core/citation"
	"github.com/leofalp/livesearch/core/diagnostics"
	"github.com/leofalp/livesearch/core/executor"
	"github.com/leofalp/livesearch/core/validate"
	"github.com/leofalp/livesearch/internal/utils"
)

// DefaultModel is the provider model used when none is configured.
const DefaultModel = "grok-3-latest"

// Provider executes provider requests. *executor.Executor implements it.
type Provider interface {
	Execute(ctx context.Context, req executor.ChatRequest, stats *diagnostics.Stats) (*executor.RawResponse, error)
	HasAPIKey() bool
}

// Orchestrator runs searches. It owns the comprehensive-result cache and the
// diagnostics counters and is safe for concurrent use.
type Orchestrator struct {
	provider Provider
	model    string
	cache    *cache.Cache[*ComprehensiveResult]
	stats    *diagnostics.Stats
	now      func() time.Time
	logger   *slog.Logger
}

type orchestratorOptions struct {
	model        string
	cacheOptions []cache.Option
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*orchestratorOptions)

// WithModel sets the provider model name.
func WithModel(model string) Option {
	return func(o *orchestratorOptions) {
		if model != "" {
			o.model = model
		}
	}
}

// WithCache sets the capacity and TTL of the comprehensive-result cache.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(o *orchestratorOptions) {
		o.cacheOptions = append(o.cacheOptions, cache.WithCapacity(capacity), cache.WithTTL(ttl))
	}
}

// WithClock replaces the time source used for timestamps, uptime and cache
// expiry.
func WithClock(now func() time.Time) Option {
	return func(o *orchestratorOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *orchestratorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator builds an Orchestrator around provider.
func NewOrchestrator(provider Provider, opts ...Option) *Orchestrator {
	o := orchestratorOptions{model: DefaultModel, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	cacheOptions := append([]cache.Option{cache.WithClock(o.now)}, o.cacheOptions...)
	return &Orchestrator{
		provider: provider,
		model:    o.model,
		cache:    cache.New[*ComprehensiveResult](cacheOptions...),
		stats:    diagnostics.New(o.now),
		now:      o.now,
		logger:   o.logger,
	}
}

// Search runs one search. It fails with *validate.ValidationError for bad
// input and with *SearchError when the provider call fails. Every call is
// counted, and every failure is recorded, on the orchestrator's diagnostics.
func (o *Orchestrator) Search(ctx context.Context, p Params) (Result, error) {
	o.stats.RecordRequest()
	timer := utils.NewTimer()

	result, err := o.search(ctx, p)
	elapsed := timer.Stop()
	if err != nil {
		o.stats.RecordError(err)
		o.logger.Warn("search failed",
			"search_type", p.Kind,
			"analysis_mode", p.Mode,
			"duration", elapsed,
			"error", err.Error(),
		)
		return nil, err
	}

	basic := result.Basic()
	o.logger.Info("search completed",
		"search_type", basic.SourceKind,
		"analysis_mode", basic.AnalysisMode,
		"results", basic.TotalResults,
		"strategy", basic.Strategy,
		"duration", elapsed,
	)
	return result, nil
}

func (o *Orchestrator) search(ctx context.Context, p Params) (Result, error) {
	q, err := NewQuery(p)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if q.Mode == ModeComprehensive {
		cacheKey = q.CacheKey()
		if hit, ok := o.cache.Get(cacheKey); ok {
			o.logger.Debug("comprehensive result served from cache", "query", q.Text)
			return hit, nil
		}
	}

	dates, err := validate.DateRange(q.FromDate, q.ToDate)
	if err != nil {
		return nil, err
	}

	if !o.provider.HasAPIKey() {
		return nil, &SearchError{Message: ErrAPIUnavailable.Error(), Err: ErrAPIUnavailable}
	}

	if !dates.IsZero() {
		o.logger.Debug("date-bounded search", "from_date", dates.From, "to_date", dates.To)
	}

	req := BuildRequest(q, dates, o.model)
	raw, err := o.provider.Execute(ctx, req, o.stats)
	if err != nil {
		return nil, wrapSearchError(err)
	}

	records := citation.Enrich(raw.Citations)
	result := Extract(*raw, q, records, o.now())

	// Degraded fallback answers are not worth pinning for a whole TTL.
	if comprehensive, ok := result.(*ComprehensiveResult); ok && !comprehensive.Fallback {
		o.cache.Set(cacheKey, comprehensive)
	}
	return result, nil
}

// HealthReport is the read-only diagnostics view served by the health tool.
type HealthReport struct {
	Status           string  `json:"status"`
	APIKeyConfigured bool    `json:"api_key_configured"`
	TotalRequests    int64   `json:"total_requests"`
	ErrorCount       int64   `json:"error_count"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	LastError        string  `json:"last_error,omitempty"`
	CacheSize        int     `json:"cache_size"`
	Timestamp        string  `json:"timestamp"`
}

// Health reports counters and API availability. A missing credential marks
// the API unhealthy.
func (o *Orchestrator) Health() HealthReport {
	snap := o.stats.Snapshot()
	hasKey := o.provider.HasAPIKey()

	status := "healthy"
	if !hasKey {
		status = "unhealthy"
	}

	return HealthReport{
		Status:           status,
		APIKeyConfigured: hasKey,
		TotalRequests:    snap.TotalRequests,
		ErrorCount:       snap.ErrorCount,
		UptimeSeconds:    snap.Uptime.Seconds(),
		LastError:        snap.LastError,
		CacheSize:        o.cache.Len(),
		Timestamp:        o.now().UTC().Format(time.RFC3339),
	}
}

// ClearCache drops every cached comprehensive result and reports how many
// entries were held.
func (o *Orchestrator) ClearCache() int {
	n := o.cache.Len()
	o.cache.Clear()
	o.logger.Info("comprehensive cache cleared", "entries", n)
	return n
}
