package strava

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Strava rate limits:
// - 100 requests per 15 minutes
// - 1000 requests per day

const (
	defaultShortLimit = 100
	defaultDailyLimit = 1000

	// Minimum spacing between requests, well under either quota.
	minRequestInterval = 150 * time.Millisecond
)

// window is one rolling rate-limit bucket.
type window struct {
	limit    int
	used     int
	resetsAt time.Time
}

// rollover clears the bucket once its reset time has passed.
func (w *window) rollover(now, nextReset time.Time) {
	if now.After(w.resetsAt) {
		w.used = 0
		w.resetsAt = nextReset
	}
}

func shortReset(now time.Time) time.Time {
	return now.Add(15 * time.Minute)
}

func dailyReset(now time.Time) time.Time {
	return now.Truncate(24 * time.Hour).Add(24 * time.Hour)
}

// RateLimiter paces requests to stay inside Strava's two quota windows.
type RateLimiter struct {
	mu sync.Mutex

	short window // 15 minutes
	daily window

	minInterval time.Duration
	lastRequest time.Time
}

// NewRateLimiter creates a rate limiter preloaded with Strava's published
// limits; UpdateFromHeaders corrects them from live responses.
func NewRateLimiter() *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		short:       window{limit: defaultShortLimit, resetsAt: shortReset(now)},
		daily:       window{limit: defaultDailyLimit, resetsAt: dailyReset(now)},
		minInterval: minRequestInterval,
	}
}

// Wait blocks until a request can be made without exceeding rate limits
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := time.Now()
		r.short.rollover(now, shortReset(now))
		r.daily.rollover(now, dailyReset(now))

		delay := r.delay(now)
		if delay <= 0 {
			r.short.used++
			r.daily.used++
			r.lastRequest = now
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// delay reports how long the next request must wait. Callers hold mu.
func (r *RateLimiter) delay(now time.Time) time.Duration {
	if r.short.used >= r.short.limit {
		return r.short.resetsAt.Sub(now)
	}
	if r.daily.used >= r.daily.limit {
		return r.daily.resetsAt.Sub(now)
	}
	if since := now.Sub(r.lastRequest); since < r.minInterval {
		return r.minInterval - since
	}
	return 0
}

// UpdateFromHeaders updates rate limit state from Strava response headers.
// Strava returns X-RateLimit-Limit: "100,1000" and X-RateLimit-Usage: "34,512".
func (r *RateLimiter) UpdateFromHeaders(h http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if short, daily, ok := parsePair(h.Get("X-RateLimit-Usage")); ok {
		r.short.used = short
		r.daily.used = daily
	}
	if short, daily, ok := parsePair(h.Get("X-RateLimit-Limit")); ok {
		r.short.limit = short
		r.daily.limit = daily
	}
}

// parsePair splits a "short,daily" header value.
func parsePair(s string) (short, daily int, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	short, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	daily, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return short, daily, true
}

// Status returns the remaining allowance in each window.
func (r *RateLimiter) Status() (shortRemaining, dailyRemaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.short.limit - r.short.used, r.daily.limit - r.daily.used
}
