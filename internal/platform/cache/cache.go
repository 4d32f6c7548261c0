// Package cache provides a process-local TTL cache for upstream responses
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    any
	storedAt time.Time
}

// TTL is a concurrency-safe map with a fixed time-to-live per entry.
// Expired entries are evicted lazily on read
type TTL struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]entry
	now func() time.Time // seam for tests
}

// New returns a TTL cache with the given time-to-live
func New(ttl time.Duration) *TTL {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock returns a TTL cache using the given clock
func NewWithClock(ttl time.Duration, now func() time.Time) *TTL {
	return &TTL{
		ttl: ttl,
		m:   make(map[string]entry),
		now: now,
	}
}

// Get returns the cached value if present and fresh
func (c *TTL) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.m, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, resetting its TTL
func (c *TTL) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{value: value, storedAt: c.now()}
}

// Delete removes key if present
func (c *TTL) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}

// Len returns the number of entries currently stored, including any not yet evicted
func (c *TTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
