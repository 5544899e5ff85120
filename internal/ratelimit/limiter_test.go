package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_FixedWindow(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	l := NewLimiterWithClock(3, time.Minute, 100, clock)

	// First N requests are admitted.
	for i := 0; i < 3; i++ {
		res := l.Allow("client-a")
		assert.True(t, res.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 3-(i+1), res.Remaining)
	}

	// The (N+1)th is rejected with a retry hint.
	res := l.Allow("client-a")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, res.RetryAfter, time.Minute)

	// After the window rolls over, requests succeed again.
	now = now.Add(time.Minute)
	res = l.Allow("client-a")
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
}

func TestLimiter_RejectionDoesNotConsume(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	l := NewLimiterWithClock(1, time.Minute, 100, clock)

	assert.True(t, l.Allow("c").Allowed)
	for i := 0; i < 5; i++ {
		assert.False(t, l.Allow("c").Allowed)
	}

	// Repeated rejections above must not have inflated the next window.
	now = now.Add(time.Minute)
	assert.True(t, l.Allow("c").Allowed)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(1, time.Minute, 100)

	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
}

func TestLimiter_RetryAfterShrinksWithinWindow(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	l := NewLimiterWithClock(1, time.Minute, 100, clock)

	l.Allow("c")
	first := l.Allow("c").RetryAfter

	now = now.Add(20 * time.Second)
	second := l.Allow("c").RetryAfter

	assert.Equal(t, first-20*time.Second, second)
}

func TestLimiter_EvictsExpiredWindowsAtCap(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	l := NewLimiterWithClock(5, time.Minute, 3, clock)

	l.Allow("a")
	l.Allow("b")
	l.Allow("c")
	assert.Len(t, l.windows, 3)

	now = now.Add(2 * time.Minute)
	l.Allow("d")

	// The stale a/b/c windows were evicted rather than accumulating.
	assert.Len(t, l.windows, 1)
	assert.Contains(t, l.windows, "d")
}

func TestLimiter_AtomicUnderConcurrency(t *testing.T) {
	l := NewLimiter(50, time.Minute, 100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestLimiter_ManyDistinctClients(t *testing.T) {
	l := NewLimiter(1, time.Minute, 10)

	for i := 0; i < 100; i++ {
		l.Allow(fmt.Sprintf("client-%d", i))
	}

	// Bounded even when every window is still live.
	assert.LessOrEqual(t, len(l.windows), 11)
}
