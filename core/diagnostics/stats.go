// Package diagnostics holds the request and error counters reported by the
// health tool. A Stats value is owned by one orchestrator and passed
// explicitly to the components that update it.
package diagnostics

import (
	"sync"
	"time"
)

// Stats is a set of best-effort counters. It is safe for concurrent use and
// a nil *Stats ignores every update.
type Stats struct {
	mu            sync.Mutex
	startedAt     time.Time
	totalRequests int64
	errorCount    int64
	lastError     string
	lastErrorAt   time.Time
	now           func() time.Time
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	StartedAt     time.Time
	Uptime        time.Duration
	TotalRequests int64
	ErrorCount    int64
	LastError     string
	LastErrorAt   time.Time
}

// New returns Stats whose uptime starts now. A nil clock means time.Now.
func New(now func() time.Time) *Stats {
	if now == nil {
		now = time.Now
	}
	return &Stats{startedAt: now(), now: now}
}

// RecordRequest counts one incoming search.
func (s *Stats) RecordRequest() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalRequests++
}

// RecordError counts one failed search and remembers err as the last error.
func (s *Stats) RecordError(err error) {
	if s == nil || err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorCount++
	s.lastError = err.Error()
	s.lastErrorAt = s.now()
}

// SetLastError remembers err without counting a failed search. Used for
// attempts that may still be retried.
func (s *Stats) SetLastError(err error) {
	if s == nil || err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
	s.lastErrorAt = s.now()
}

// Snapshot copies the current counters.
func (s *Stats) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		StartedAt:     s.startedAt,
		Uptime:        s.now().Sub(s.startedAt),
		TotalRequests: s.totalRequests,
		ErrorCount:    s.errorCount,
		LastError:     s.lastError,
		LastErrorAt:   s.lastErrorAt,
	}
}
