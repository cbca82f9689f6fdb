package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"json":    FormatJSON,
		" JSON ":  FormatJSON,
		"compact": FormatCompact,
		"pretty":  FormatCompact,
		"":        FormatCompact,
	}
	for input, want := range tests {
		if got := ParseFormat(input); got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", "json", &buf).With("component", "executor")

	logger.WithGroup("http").Debug("attempt failed",
		"status", 503,
		"delay", 2*time.Second,
		"error", errors.New("boom"),
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	want := map[string]any{
		"level":       "DEBUG",
		"msg":         "attempt failed",
		"component":   "executor",
		"http.status": float64(503),
		"http.delay":  "2s",
		"http.error":  "boom",
	}
	for key, value := range want {
		if record[key] != value {
			t.Errorf("%s = %v, want %v", key, record[key], value)
		}
	}
	if _, ok := record["time"]; !ok {
		t.Error("missing time")
	}
}

func TestHandler_Compact(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "compact", &buf)

	logger.Info("search completed", "results", 3)
	logger.Debug("hidden")

	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", out)
	}
	if !strings.Contains(out, " INFO search completed → {\"results\":3}") {
		t.Errorf("unexpected line %q", out)
	}
}

func TestHandler_NestedGroupAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "json", &buf)

	logger.Info("health", slog.Group("cache", slog.Int("size", 2)))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatal(err)
	}
	if record["cache.size"] != float64(2) {
		t.Errorf("expected flattened group key, got %v", record)
	}
}
