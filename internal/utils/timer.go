package utils

import "time"

// Timer measures the wall-clock time of one operation. NewTimer starts it;
// Stop freezes the elapsed duration.
type Timer struct {
	startTime time.Time
	duration  time.Duration
	stopped   bool
}

// NewTimer returns a running Timer.
func NewTimer() *Timer {
	return &Timer{startTime: time.Now()}
}

// Stop records the elapsed time and returns it. Later calls return the first
// recorded value.
func (t *Timer) Stop() time.Duration {
	if !t.stopped {
		t.duration = time.Since(t.startTime)
		t.stopped = true
	}
	return t.duration
}

