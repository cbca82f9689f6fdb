package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Config{
		BaseURL:    "https://api.x.ai/v1",
		Model:      "grok-3-latest",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		CacheSize:  100,
		CacheTTL:   30 * time.Minute,
	}
	if cfg != want {
		t.Errorf("FromLookup() = %+v, want %+v", cfg, want)
	}
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		EnvAPIKey:       " secret ",
		EnvBaseURL:      "http://localhost:8080/v1/",
		EnvModel:        "grok-test",
		EnvTimeoutMS:    "1500",
		EnvMaxRetries:   "5",
		EnvRateLimitRPS: "2.5",
		EnvCacheSize:    "10",
		EnvCacheTTLMin:  "1",
		EnvLogLevel:     "debug",
		EnvLogFormat:    "json",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Config{
		APIKey:     "secret",
		BaseURL:    "http://localhost:8080/v1",
		Model:      "grok-test",
		Timeout:    1500 * time.Millisecond,
		MaxRetries: 5,
		RateLimit:  2.5,
		CacheSize:  10,
		CacheTTL:   time.Minute,
		LogLevel:   "debug",
		LogFormat:  "json",
	}
	if cfg != want {
		t.Errorf("FromLookup() = %+v, want %+v", cfg, want)
	}
}

func TestFromLookup_Invalid(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{
		EnvTimeoutMS:    "soon",
		EnvMaxRetries:   "0",
		EnvRateLimitRPS: "-1",
	}))
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, name := range []string{EnvTimeoutMS, EnvMaxRetries, EnvRateLimitRPS} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should mention %s: %v", name, err)
		}
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dotenv := EnvModel + "=grok-from-file\n" + EnvCacheSize + "=7\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvCacheSize, "9")
	t.Cleanup(func() { os.Unsetenv(EnvModel) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != "grok-from-file" {
		t.Errorf("expected model from .env, got %q", cfg.Model)
	}
	if cfg.CacheSize != 9 {
		t.Errorf("process environment should win over .env, got %d", cfg.CacheSize)
	}
}
