// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIKey       = "XAI_API_KEY"
	EnvBaseURL      = "XAI_BASE_URL"
	EnvModel        = "XAI_MODEL"
	EnvTimeoutMS    = "XAI_TIMEOUT_MS"
	EnvMaxRetries   = "XAI_MAX_RETRIES"
	EnvRateLimitRPS = "XAI_RATE_LIMIT_RPS"
	EnvCacheSize    = "LIVESEARCH_CACHE_SIZE"
	EnvCacheTTLMin  = "LIVESEARCH_CACHE_TTL_MINUTES"
	EnvLogLevel     = "LIVESEARCH_LOG_LEVEL"
	EnvLogFormat    = "LIVESEARCH_LOG_FORMAT"
)

const (
	defaultBaseURL   = "https://api.x.ai/v1"
	defaultModel     = "grok-3-latest"
	defaultTimeout   = 30 * time.Second
	defaultRetries   = 3
	defaultCacheSize = 100
	defaultCacheTTL  = 30 * time.Minute
)

// Config is the resolved runtime configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// MaxRetries is the total number of attempts per provider call.
	MaxRetries int
	// RateLimit is the outbound request rate per second; 0 means unlimited.
	RateLimit float64
	CacheSize int
	CacheTTL  time.Duration
	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file from the working directory and then
// resolves the configuration from the process environment. Variables that
// are already set take precedence over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup resolves the configuration through lookup. A missing API key
// is not an error; every malformed number is, and all of them are reported.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(name string) string {
		value, _ := lookup(name)
		return strings.TrimSpace(value)
	}

	cfg := Config{
		APIKey:    get(EnvAPIKey),
		BaseURL:   strings.TrimRight(get(EnvBaseURL), "/"),
		Model:     get(EnvModel),
		LogLevel:  get(EnvLogLevel),
		LogFormat: get(EnvLogFormat),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	var errs []error
	intVar := func(name string, def int, minimum int) int {
		raw := get(name)
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < minimum {
			errs = append(errs, fmt.Errorf("%s: expected an integer >= %d, got %q", name, minimum, raw))
			return def
		}
		return n
	}

	cfg.Timeout = time.Duration(intVar(EnvTimeoutMS, int(defaultTimeout/time.Millisecond), 1)) * time.Millisecond
	cfg.MaxRetries = intVar(EnvMaxRetries, defaultRetries, 1)
	cfg.CacheSize = intVar(EnvCacheSize, defaultCacheSize, 1)
	cfg.CacheTTL = time.Duration(intVar(EnvCacheTTLMin, int(defaultCacheTTL/time.Minute), 1)) * time.Minute

	if raw := get(EnvRateLimitRPS); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			errs = append(errs, fmt.Errorf("%s: expected a non-negative number, got %q", EnvRateLimitRPS, raw))
		} else {
			cfg.RateLimit = rps
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
