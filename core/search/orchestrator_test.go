package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/leofalp/livesearch/core/diagnostics"
	"github.com/leofalp/livesearch/core/executor"
	"github.com/leofalp/livesearch/core/validate"
)

type fakeProvider struct {
	mu       sync.Mutex
	noKey    bool
	response *executor.RawResponse
	err      error
	requests []executor.ChatRequest
}

func (f *fakeProvider) Execute(_ context.Context, req executor.ChatRequest, stats *diagnostics.Stats) (*executor.RawResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		stats.SetLastError(f.err)
		return nil, f.err
	}
	resp := *f.response
	return &resp, nil
}

func (f *fakeProvider) HasAPIKey() bool { return !f.noKey }

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

const comprehensiveAnswer = `{"results": [{"title": "a", "snippet": "b", "url": "https://a.com/x"}],
	"comprehensive_analysis": "analysis", "key_findings": ["k"]}`

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestOrchestrator(provider Provider, opts ...Option) (*Orchestrator, *testClock) {
	clock := &testClock{now: time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]Option{WithClock(clock.Now), WithLogger(logger)}, opts...)
	return NewOrchestrator(provider, opts...), clock
}

func TestOrchestrator_ComprehensiveIsCached(t *testing.T) {
	provider := &fakeProvider{response: &executor.RawResponse{Content: comprehensiveAnswer, Citations: []string{"https://a.com/x"}}}
	o, clock := newTestOrchestrator(provider)
	params := Params{Query: "go generics", Mode: ModeComprehensive}

	first, err := o.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := o.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.calls() != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls())
	}
	if first != second {
		t.Error("second call should return the cached result")
	}
	if o.Health().CacheSize != 1 {
		t.Errorf("expected one cached entry, got %d", o.Health().CacheSize)
	}

	clock.Advance(31 * time.Minute)
	if _, err := o.Search(context.Background(), params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls() != 2 {
		t.Errorf("expired entry should trigger a new call, got %d calls", provider.calls())
	}

	if cleared := o.ClearCache(); cleared != 1 {
		t.Errorf("expected one cleared entry, got %d", cleared)
	}
	if o.Health().CacheSize != 0 {
		t.Error("ClearCache should empty the cache")
	}
}

func TestOrchestrator_BasicIsNotCached(t *testing.T) {
	provider := &fakeProvider{response: &executor.RawResponse{Content: `{"results": []}`}}
	o, _ := newTestOrchestrator(provider)

	for range 2 {
		if _, err := o.Search(context.Background(), Params{Query: "go"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if provider.calls() != 2 {
		t.Errorf("basic searches must not be cached, got %d calls", provider.calls())
	}
}

func TestOrchestrator_FallbackIsNotCached(t *testing.T) {
	provider := &fakeProvider{response: &executor.RawResponse{Content: "no json here"}}
	o, _ := newTestOrchestrator(provider)
	params := Params{Query: "go", Mode: ModeComprehensive}

	for range 2 {
		result, err := o.Search(context.Background(), params)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Basic().Fallback {
			t.Fatal("expected a fallback result")
		}
	}
	if provider.calls() != 2 {
		t.Errorf("fallback results must not be cached, got %d calls", provider.calls())
	}
}

func TestOrchestrator_ValidationFailsBeforeNetwork(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		wantParam string
	}{
		{name: "from after to", params: Params{Query: "go", FromDate: "2024-02-01", ToDate: "2024-01-01"}, wantParam: "date_range"},
		{name: "impossible date", params: Params{Query: "go", FromDate: "2024-02-30"}, wantParam: "from_date"},
		{name: "bad format", params: Params{Query: "go", ToDate: "01/02/2024"}, wantParam: "to_date"},
		{name: "empty query", params: Params{Query: "\x07 "}, wantParam: "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{response: &executor.RawResponse{Content: "{}"}}
			o, _ := newTestOrchestrator(provider)

			_, err := o.Search(context.Background(), tt.params)

			var vErr *validate.ValidationError
			if !errors.As(err, &vErr) || vErr.Param != tt.wantParam {
				t.Fatalf("expected ValidationError for %q, got %v", tt.wantParam, err)
			}
			if provider.calls() != 0 {
				t.Errorf("validation failure must not reach the provider")
			}
			if h := o.Health(); h.TotalRequests != 1 || h.ErrorCount != 1 || h.LastError == "" {
				t.Errorf("failure not recorded: %+v", h)
			}
		})
	}
}

func TestOrchestrator_MissingAPIKey(t *testing.T) {
	provider := &fakeProvider{noKey: true}
	o, _ := newTestOrchestrator(provider)

	_, err := o.Search(context.Background(), Params{Query: "go"})

	var sErr *SearchError
	if !errors.As(err, &sErr) || !errors.Is(err, ErrAPIUnavailable) {
		t.Fatalf("expected SearchError wrapping ErrAPIUnavailable, got %v", err)
	}
	if provider.calls() != 0 {
		t.Error("missing key must fail before the network")
	}
	if h := o.Health(); h.Status != "unhealthy" || h.APIKeyConfigured {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestOrchestrator_ProviderError(t *testing.T) {
	apiErr := &executor.APIError{Status: http.StatusInternalServerError, Body: "boom"}
	provider := &fakeProvider{err: apiErr}
	o, _ := newTestOrchestrator(provider)

	_, err := o.Search(context.Background(), Params{Query: "go", Kind: SourceNews})

	var sErr *SearchError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected SearchError, got %T", err)
	}
	var got *executor.APIError
	if !errors.As(err, &got) || got.Status != http.StatusInternalServerError {
		t.Errorf("provider error should stay inspectable, got %v", err)
	}

	h := o.Health()
	if h.TotalRequests != 1 || h.ErrorCount != 1 || h.LastError != sErr.Error() {
		t.Errorf("unexpected health %+v", h)
	}
}

func TestOrchestrator_RequestShape(t *testing.T) {
	provider := &fakeProvider{response: &executor.RawResponse{Content: `{"results": []}`}}
	o, _ := newTestOrchestrator(provider, WithModel("grok-test"))

	_, err := o.Search(context.Background(), Params{
		Query:    "launch",
		Kind:     SourceSocial,
		Handles:  []string{"@spacex"},
		FromDate: "2024-01-01",
		ToDate:   "2024-01-31",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := provider.requests[0]
	if req.Model != "grok-test" || req.MaxTokens != BasicMaxTokens {
		t.Errorf("unexpected request %+v", req)
	}
	sources := req.SearchParameters.Sources
	if len(sources) != 1 || sources[0].Type != "x" || len(sources[0].XHandles) != 1 || sources[0].XHandles[0] != "spacex" {
		t.Errorf("unexpected sources %+v", sources)
	}
	if req.SearchParameters.FromDate != "2024-01-01" || req.SearchParameters.ToDate != "2024-01-31" {
		t.Errorf("dates not forwarded: %+v", req.SearchParameters)
	}
}

func TestOrchestrator_Health(t *testing.T) {
	provider := &fakeProvider{response: &executor.RawResponse{Content: `{"results": []}`}}
	o, clock := newTestOrchestrator(provider)

	clock.Advance(90 * time.Second)
	if _, err := o.Search(context.Background(), Params{Query: "go"}); err != nil {
		t.Fatal(err)
	}

	h := o.Health()
	if h.Status != "healthy" || !h.APIKeyConfigured {
		t.Errorf("unexpected status %+v", h)
	}
	if h.TotalRequests != 1 || h.ErrorCount != 0 || h.LastError != "" {
		t.Errorf("unexpected counters %+v", h)
	}
	if h.UptimeSeconds != 90 {
		t.Errorf("expected 90s uptime, got %v", h.UptimeSeconds)
	}
	if h.Timestamp != "2024-05-17T12:01:30Z" {
		t.Errorf("unexpected timestamp %q", h.Timestamp)
	}
}
