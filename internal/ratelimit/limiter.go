package ratelimit

import (
	"sync"
	"time"
)

// Result describes the outcome of an admission check.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration // set only when rejected
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window request counter keyed by client identity.
// Check-and-increment is atomic per call; rejected requests are not counted,
// so retries do not inflate the next window. Stale windows are overwritten on
// the next access, and the total number of tracked clients is capped.
type Limiter struct {
	mu         sync.Mutex
	windows    map[string]*window
	limit      int
	windowSize time.Duration
	maxClients int
	now        func() time.Time
}

// NewLimiter creates a limiter admitting up to limit requests per windowSize
// for each client key, tracking at most maxClients distinct keys.
func NewLimiter(limit int, windowSize time.Duration, maxClients int) *Limiter {
	return &Limiter{
		windows:    make(map[string]*window),
		limit:      limit,
		windowSize: windowSize,
		maxClients: maxClients,
		now:        time.Now,
	}
}

// NewLimiterWithClock is like NewLimiter but with an injectable clock for tests.
func NewLimiterWithClock(limit int, windowSize time.Duration, maxClients int, now func() time.Time) *Limiter {
	l := NewLimiter(limit, windowSize, maxClients)
	l.now = now
	return l
}

// Allow performs an atomic check-and-consume for the given client key.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		if !ok && len(l.windows) >= l.maxClients {
			l.evictExpired(now)
		}
		w = &window{resetAt: now.Add(l.windowSize)}
		l.windows[key] = w
	}

	if w.count >= l.limit {
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: w.resetAt.Sub(now),
		}
	}

	w.count++
	return Result{
		Allowed:   true,
		Remaining: l.limit - w.count,
	}
}

// evictExpired drops all windows that have already rolled over. If none have,
// the whole map is reset rather than letting distinct-client churn grow it
// without bound. Must be called with l.mu held.
func (l *Limiter) evictExpired(now time.Time) {
	for k, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
		}
	}
	if len(l.windows) >= l.maxClients {
		l.windows = make(map[string]*window)
	}
}
