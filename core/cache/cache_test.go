package cache

import (
	"fmt"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(clock *fakeClock, opts ...Option) *Cache[string] {
	return New[string](append([]Option{WithClock(clock.Now)}, opts...)...)
}

func TestCache_SetGet(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(clock)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("a", "alpha")
	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Fatalf("Get(a) = %q, %v; want alpha, true", got, ok)
	}

	c.Set("a", "alpha-2")
	if got, _ := c.Get("a"); got != "alpha-2" {
		t.Errorf("expected overwritten value, got %q", got)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(clock, WithTTL(time.Minute))

	c.Set("k", "v")

	clock.Advance(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry should still be fresh before the TTL")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry at the TTL must be treated as absent")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed on read, len = %d", c.Len())
	}
}

func TestCache_EvictsOldestInsertion(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(clock)

	for i := 0; i < DefaultCapacity; i++ {
		c.Set(fmt.Sprintf("key-%d", i), "v")
		clock.Advance(time.Millisecond)
	}

	// Reading the oldest entry must not protect it from eviction.
	if _, ok := c.Get("key-0"); !ok {
		t.Fatal("key-0 should be present before overflow")
	}

	c.Set("key-100", "v")

	if c.Len() != DefaultCapacity {
		t.Fatalf("expected %d entries, got %d", DefaultCapacity, c.Len())
	}
	if _, ok := c.Get("key-0"); ok {
		t.Error("earliest inserted entry should have been evicted")
	}
	for _, key := range []string{"key-1", "key-99", "key-100"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s should still be cached", key)
		}
	}
}

func TestCache_ReinsertMovesToNewest(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := newTestCache(clock, WithCapacity(2))

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("a", "3")
	c.Set("c", "4")

	if _, ok := c.Get("b"); ok {
		t.Error("b was the oldest insertion and should be evicted")
	}
	if got, ok := c.Get("a"); !ok || got != "3" {
		t.Errorf("a should survive with its new value, got %q %v", got, ok)
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[int]()
	c.Set("x", 1)
	c.Set("y", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
	if _, ok := c.Get("x"); ok {
		t.Error("x should be gone after Clear")
	}
}

func TestCache_InvalidOptionsKeepDefaults(t *testing.T) {
	c := New[int](WithCapacity(0), WithTTL(-time.Second), WithClock(nil))
	if c.ttl != DefaultTTL {
		t.Errorf("expected default TTL, got %v", c.ttl)
	}
	if c.now == nil {
		t.Error("clock must not be nil")
	}
}
