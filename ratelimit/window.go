package ratelimit

import (
	"context"
	"sync"
	"time"
)

// FixedWindow limits requests to a fixed count per time window.
//
// Unlike a token bucket, a fixed window counter never smooths requests: the
// first limit requests in a window pass immediately and the rest wait until
// the window resets. This matches embedding services that quota by
// requests-per-minute.
type FixedWindow struct {
	mu    sync.Mutex
	limit int
	width time.Duration
	start time.Time
	count int

	// now is swappable for tests.
	now func() time.Time
}

// NewFixedWindow creates a limiter allowing limit requests per width.
// A limit below 1 is raised to 1.
func NewFixedWindow(limit int, width time.Duration) *FixedWindow {
	if limit < 1 {
		limit = 1
	}
	if width <= 0 {
		width = time.Minute
	}
	return &FixedWindow{
		limit: limit,
		width: width,
		now:   time.Now,
	}
}

// PerMinute creates a limiter allowing rpm requests per minute.
func PerMinute(rpm int) *FixedWindow {
	return NewFixedWindow(rpm, time.Minute)
}

// Wait blocks until a request can be made without exceeding the window limit.
// When the current window is exhausted it waits for the window to reset
// rather than failing. Returns the context error if ctx is done first.
func (w *FixedWindow) Wait(ctx context.Context) error {
	for {
		w.mu.Lock()
		now := w.now()
		if w.start.IsZero() || now.Sub(w.start) >= w.width {
			w.start = now
			w.count = 0
		}
		if w.count < w.limit {
			w.count++
			w.mu.Unlock()
			return nil
		}
		resetAt := w.start.Add(w.width)
		w.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetAt)):
		}
	}
}

// Allow reports whether a request can be made immediately, consuming a slot
// if so. It never blocks.
func (w *FixedWindow) Allow() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if w.start.IsZero() || now.Sub(w.start) >= w.width {
		w.start = now
		w.count = 0
	}
	if w.count < w.limit {
		w.count++
		return true
	}
	return false
}
