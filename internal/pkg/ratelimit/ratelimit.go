// Package ratelimit provides a fixed-window request counter keyed by
// (user, endpoint). Counters are guarded by a single mutex, so concurrent
// increments from racing requests for the same user are safe.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	windowStart time.Time
	count       int
}

type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	buckets map[string]*bucket
}

// New creates a limiter allowing limit requests per window for each
// (user, endpoint) key.
func New(limit int, window time.Duration) *Limiter {
	return NewWithClock(limit, window, time.Now)
}

// NewWithClock is New with an injectable clock.
func NewWithClock(limit int, window time.Duration, now func() time.Time) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		now:     now,
		buckets: make(map[string]*bucket),
	}
}

// Allow records one request for the key and reports whether it is within
// the limit for the current window.
func (l *Limiter) Allow(userID, endpoint string) bool {
	key := userID + "|" + endpoint
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) >= l.window {
		l.buckets[key] = &bucket{windowStart: now, count: 1}
		return true
	}

	b.count++
	return b.count <= l.limit
}

// Remaining reports how many requests are left in the current window.
func (l *Limiter) Remaining(userID, endpoint string) int {
	key := userID + "|" + endpoint
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) >= l.window {
		return l.limit
	}
	remaining := l.limit - b.count
	if remaining < 0 {
		return 0
	}
	return remaining
}
