package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/leofalp/livesearch/core/diagnostics"
	"github.com/leofalp/livesearch/internal/utils"
)

const (
	DefaultBaseURL     = "https://api.x.ai/v1"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAttempts = 3

	// Backoff before retry n (0-based) is min(BaseBackoff * 2^n, MaxBackoff).
	BaseBackoff = time.Second
	MaxBackoff  = 10 * time.Second

	defaultBreakerFailures uint32 = 5
	defaultBreakerCooldown        = 30 * time.Second
)

// Config holds the already-validated runtime settings of an Executor. Zero
// values select the defaults above.
type Config struct {
	BaseURL string
	APIKey  string
	// Timeout bounds each individual attempt.
	Timeout time.Duration
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// RateLimit is the sustained attempts per second; zero disables pacing.
	RateLimit float64
	RateBurst int
	// BreakerFailures is the number of consecutive failed executions that
	// opens the circuit.
	BreakerFailures uint32
	// BreakerCooldown is how long the circuit stays open before a probe.
	BreakerCooldown time.Duration
}

// Executor sends ChatRequests to the provider. It is safe for concurrent use.
type Executor struct {
	endpoint    string
	apiKey      string
	timeout     time.Duration
	maxAttempts int
	client      *http.Client
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[*RawResponse]
	logger      *slog.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option customises an Executor.
type Option func(*Executor)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Executor) {
		if client != nil {
			e.client = client
		}
	}
}

// WithLogger sets the logger for retry and breaker events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSleep replaces the backoff wait, mainly so tests can record delays
// instead of waiting them out.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Executor) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// New builds an Executor from cfg.
func New(cfg Config, opts ...Option) *Executor {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	e := &Executor{
		endpoint:    baseURL + "/chat/completions",
		apiKey:      cfg.APIKey,
		timeout:     timeout,
		maxAttempts: maxAttempts,
		client:      &http.Client{},
		limiter:     limiter,
		logger:      slog.Default(),
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.breaker = newBreaker(cfg, e.logger)
	return e
}

func newBreaker(cfg Config, logger *slog.Logger) *gobreaker.CircuitBreaker[*RawResponse] {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = defaultBreakerFailures
	}
	cooldown := cfg.BreakerCooldown
	if cooldown <= 0 {
		cooldown = defaultBreakerCooldown
	}

	return gobreaker.NewCircuitBreaker[*RawResponse](gobreaker.Settings{
		Name:        "livesearch-provider",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isClientError(err) || errors.Is(err, context.Canceled)
		},
	})
}

// HasAPIKey reports whether a credential is configured.
func (e *Executor) HasAPIKey() bool {
	return e.apiKey != ""
}

// Backoff returns the wait before retry n, counting retries from 0.
func Backoff(retry int) time.Duration {
	if retry < 0 {
		retry = 0
	}
	if retry >= 4 {
		return MaxBackoff
	}
	return min(BaseBackoff<<retry, MaxBackoff)
}

// Execute sends req, retrying transient failures. Every failed attempt is
// recorded as the last error on stats, which may be nil.
func (e *Executor) Execute(ctx context.Context, req ChatRequest, stats *diagnostics.Stats) (*RawResponse, error) {
	resp, err := e.breaker.Execute(func() (*RawResponse, error) {
		return e.executeWithRetry(ctx, req, stats)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		stats.SetLastError(err)
		return nil, err
	}
	return resp, err
}

func (e *Executor) executeWithRetry(ctx context.Context, req ChatRequest, stats *diagnostics.Stats) (*RawResponse, error) {
	// Every attempt reuses the same encoded body.
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := Backoff(attempt - 1)
			e.logger.Debug("retrying provider request",
				"attempt", attempt+1,
				"max_attempts", e.maxAttempts,
				"backoff", delay,
			)
			if err := e.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := e.attempt(ctx, body)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		stats.SetLastError(err)

		if ctx.Err() != nil {
			return nil, err
		}
		if !IsRetryable(err) {
			return nil, err
		}

		e.logger.Warn("provider attempt failed",
			"attempt", attempt+1,
			"max_attempts", e.maxAttempts,
			"error", err.Error(),
		)
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, e.maxAttempts, lastErr)
}

func (e *Executor) attempt(ctx context.Context, body []byte) (*RawResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	status, respBody, err := utils.PostJSON(attemptCtx, e.client, e.endpoint, e.apiKey, body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{Timeout: e.timeout}
		}
		return nil, &NetworkError{Err: err}
	}

	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Body: string(respBody)}
	}

	var decoded chatCompletionResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("error decoding provider response (status %d): %w; body: %s",
			status, err, utils.TruncateForLog(string(respBody), 200))
	}
	if len(decoded.Choices) == 0 {
		return nil, errors.New("provider response contains no choices")
	}

	return &RawResponse{
		Content:   decoded.Choices[0].Message.Content,
		Citations: decoded.Citations,
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
