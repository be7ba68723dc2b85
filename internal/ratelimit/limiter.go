// Package ratelimit implements a fixed-window request counter keyed by an
// opaque client identifier. Counting is per non-overlapping window, so a
// client can burst up to twice the capacity across a window boundary; that
// is the documented tradeoff of the policy, not a bug.
package ratelimit

import (
	"sync"
	"time"
)

// Config contains rate limiter settings. The exact numbers are policy, not
// contract, so they stay configurable.
type Config struct {
	Capacity      int `env:"RATE_LIMIT_CAPACITY"       envDefault:"20"`
	WindowSeconds int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
}

// Window returns the configured window as a duration.
func (c Config) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// record tracks one client's count inside the current window.
type record struct {
	count         int
	windowResetAt time.Time
}

// Limiter is a fixed-window rate limiter. The increment-and-compare on a
// given key happens under one lock, so concurrent requests cannot overrun
// the limit.
type Limiter struct {
	mu       sync.Mutex
	records  map[string]*record
	capacity int
	window   time.Duration

	now  func() time.Time
	done chan struct{}
	once sync.Once
}

// NewLimiter creates a limiter from config. Call Close to stop the
// background eviction of stale records.
func NewLimiter(cfg Config) *Limiter {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 20
	}
	window := cfg.Window()
	if window <= 0 {
		window = time.Minute
	}

	l := &Limiter{
		records:  make(map[string]*record),
		capacity: capacity,
		window:   window,
		now:      time.Now,
		done:     make(chan struct{}),
	}

	go l.janitor()

	return l
}

// Allow reports whether a request from clientID may proceed. The first
// request in a window resets the record to count=1; a denied request does
// not increment the counter.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	rec, exists := l.records[clientID]
	if !exists || now.After(rec.windowResetAt) {
		l.records[clientID] = &record{
			count:         1,
			windowResetAt: now.Add(l.window),
		}
		return true
	}

	if rec.count >= l.capacity {
		return false
	}

	rec.count++
	return true
}

// Close stops the background eviction goroutine.
func (l *Limiter) Close() {
	l.once.Do(func() {
		close(l.done)
	})
}

// janitor periodically evicts records whose window has elapsed. Eviction is
// resource hygiene for long-running processes; correctness does not depend
// on it because Allow resets expired records on touch.
func (l *Limiter) janitor() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.evictStale()
		}
	}
}

func (l *Limiter) evictStale() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for clientID, rec := range l.records {
		if now.After(rec.windowResetAt) {
			delete(l.records, clientID)
		}
	}
}
