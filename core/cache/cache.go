// Package cache provides a small bounded, TTL-based cache that evicts in
// insertion order. It backs the comprehensive search path, whose results are
// expensive to produce and stable over short windows.
package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

const (
	// DefaultCapacity is the maximum number of entries kept when no
	// capacity option is given.
	DefaultCapacity = 100

	// DefaultTTL is how long an entry stays readable after insertion.
	DefaultTTL = 30 * time.Minute
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a fixed-capacity map whose entries expire a fixed duration after
// insertion. Reads never refresh an entry's position, so overflow always
// evicts the oldest insertion rather than the least recently read entry.
// It is safe for concurrent use.
type Cache[V any] struct {
	mu    sync.Mutex
	items *simplelru.LRU[string, entry[V]]
	ttl   time.Duration
	now   func() time.Time
}

type options struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Cache.
type Option func(*options)

// WithCapacity sets the maximum number of entries. Non-positive values keep
// the default.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}

// WithTTL sets the entry lifetime. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock replaces the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an empty cache.
func New[V any](opts ...Option) *Cache[V] {
	o := options{capacity: DefaultCapacity, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// NewLRU only fails on a non-positive size, which the options rule out.
	items, err := simplelru.NewLRU[string, entry[V]](o.capacity, nil)
	if err != nil {
		panic(err)
	}

	return &Cache[V]{items: items, ttl: o.ttl, now: o.now}
}

// Get returns the value stored under key. An entry older than the TTL is
// removed and reported as absent.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items.Peek(key)
	if !ok {
		return zero, false
	}

	if c.now().Sub(e.insertedAt) >= c.ttl {
		c.items.Remove(key)
		return zero, false
	}

	return e.value, true
}

// Set stores value under key. When the cache is full the oldest inserted
// entry is evicted first. Setting an existing key re-inserts it as the newest
// entry.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Remove(key)
	c.items.Add(key, entry[V]{value: value, insertedAt: c.now()})
}

// Clear drops every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Purge()
}

// Len returns the number of stored entries, including expired ones that have
// not been read since they expired.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}
