// Package ratelimit shields the store from redundant reads with a
// sliding-window request limiter and a TTL cache. Both are keyed by a
// caller-chosen operation name and hold state in memory only.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter counts requests per key inside a sliding window. It is not a token
// bucket: bursts exactly at the window boundary are undercounted, which is
// acceptable for this non-adversarial use.
type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	now      func() time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// NewLimiterWithClock allows tests to control time.
func NewLimiterWithClock(now func() time.Time) *Limiter {
	l := NewLimiter()
	l.now = now
	return l
}

// Allow prunes entries older than window, refuses without recording when the
// key is at or over maxRequests, and otherwise records now and permits.
func (l *Limiter) Allow(key string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.requests[key][:0]
	for _, at := range l.requests[key] {
		if now.Sub(at) < window {
			recent = append(recent, at)
		}
	}

	if len(recent) >= maxRequests {
		l.requests[key] = recent
		return false
	}

	l.requests[key] = append(recent, now)
	return true
}

type cacheEntry struct {
	value  interface{}
	expiry time.Time
}

// Cache is a TTL cache with lazy eviction. There is no size bound: keys are a
// small fixed set of query names, not user-controlled input.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// NewCacheWithClock allows tests to control time.
func NewCacheWithClock(now func() time.Time) *Cache {
	c := NewCache()
	c.now = now
	return c
}

// Get returns the stored value while it is fresh; an expired entry is evicted
// and reported as absent.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiry) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:  value,
		expiry: c.now().Add(ttl),
	}
}

// Clear evicts everything. Write paths call this instead of tracking which
// cached queries a mutation invalidates.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}
