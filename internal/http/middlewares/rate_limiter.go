package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "task-tracker.com/task-tracker/internal/errors"
)

type bucket struct {
	count int
	start time.Time
}

// fixedWindow counts hits per key in fixed windows. Buckets whose window has
// passed are dropped at most once per window.
type fixedWindow struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newFixedWindow(limit int, window time.Duration) *fixedWindow {
	return &fixedWindow{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

// allow records a hit for key and reports whether it fits in the current
// window. When it does not, wait is the time until the window resets.
func (w *fixedWindow) allow(key string, now time.Time) (ok bool, wait time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(w.lastSweep) >= w.window {
		w.sweep(now)
	}

	b, found := w.buckets[key]
	if !found || now.Sub(b.start) >= w.window {
		b = &bucket{start: now}
		w.buckets[key] = b
	}

	if b.count >= w.limit {
		return false, b.start.Add(w.window).Sub(now)
	}

	b.count++
	return true, 0
}

func (w *fixedWindow) sweep(now time.Time) {
	for key, b := range w.buckets {
		if now.Sub(b.start) >= w.window {
			delete(w.buckets, key)
		}
	}
	w.lastSweep = now
}

func (w *fixedWindow) size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.buckets)
}

// RateLimiter allows limit requests per client IP in each fixed window.
// A non-positive limit disables it. The client IP comes from c.RealIP, so
// the echo instance's IPExtractor decides which headers are trusted.
func RateLimiter(limit int, window time.Duration, now func() time.Time) echo.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limit <= 0 {
			return next
		}

		counter := newFixedWindow(limit, window)

		return func(c echo.Context) error {
			ok, wait := counter.allow(c.RealIP(), now())
			if !ok {
				c.Response().Header().Set("Retry-After", retryAfter(wait))
				return apperrors.ErrTooManyRequests
			}

			return next(c)
		}
	}
}

func retryAfter(d time.Duration) string {
	seconds := int(d.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
