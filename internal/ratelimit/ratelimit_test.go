package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests advance time manually.
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func TestLimiter_Allow(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiterWithClock(clock.Now)

	// Three allowed, fourth refused inside the window
	assert.True(t, limiter.Allow("load_public_lists", 3, time.Second))
	assert.True(t, limiter.Allow("load_public_lists", 3, time.Second))
	assert.True(t, limiter.Allow("load_public_lists", 3, time.Second))
	assert.False(t, limiter.Allow("load_public_lists", 3, time.Second))

	// Past the window the key is fresh again
	clock.Advance(1100 * time.Millisecond)
	assert.True(t, limiter.Allow("load_public_lists", 3, time.Second))
}

func TestLimiter_RefusedRequestNotRecorded(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiterWithClock(clock.Now)

	assert.True(t, limiter.Allow("op", 1, time.Minute))

	// Refused attempts must not extend the window
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		assert.False(t, limiter.Allow("op", 1, time.Minute))
	}

	clock.Advance(51 * time.Second)
	assert.True(t, limiter.Allow("op", 1, time.Minute))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewLimiter()

	assert.True(t, limiter.Allow("a", 1, time.Minute))
	assert.False(t, limiter.Allow("a", 1, time.Minute))
	assert.True(t, limiter.Allow("b", 1, time.Minute))
}

func TestCache_TTL(t *testing.T) {
	clock := newFakeClock()
	cache := NewCacheWithClock(clock.Now)

	cache.Set("public_lists", "payload", 100*time.Millisecond)

	value, ok := cache.Get("public_lists")
	assert.True(t, ok)
	assert.Equal(t, "payload", value)

	clock.Advance(150 * time.Millisecond)
	_, ok = cache.Get("public_lists")
	assert.False(t, ok)

	// Expired entry was evicted, not just hidden
	_, ok = cache.Get("public_lists")
	assert.False(t, ok)
}

func TestCache_MissingKey(t *testing.T) {
	cache := NewCache()

	_, ok := cache.Get("nope")
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache()

	cache.Set("a", 1, time.Minute)
	cache.Set("b", 2, time.Minute)
	cache.Clear()

	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.False(t, ok)
}

func TestCache_OverwriteRefreshesExpiry(t *testing.T) {
	clock := newFakeClock()
	cache := NewCacheWithClock(clock.Now)

	cache.Set("k", "old", 100*time.Millisecond)
	clock.Advance(90 * time.Millisecond)
	cache.Set("k", "new", 100*time.Millisecond)
	clock.Advance(90 * time.Millisecond)

	value, ok := cache.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "new", value)
}
