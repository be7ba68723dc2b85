package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, capacity int, window time.Duration) (*Limiter, *fakeClock) {
	t.Helper()

	clock := newFakeClock()
	l := NewLimiter(Config{Capacity: capacity, WindowSeconds: int(window.Seconds())})
	l.now = clock.Now
	t.Cleanup(l.Close)

	return l, clock
}

func TestAllow_UnderCapacity(t *testing.T) {
	l, _ := newTestLimiter(t, 20, time.Minute)

	for i := 0; i < 20; i++ {
		require.True(t, l.Allow("client-a"), "request %d should be allowed", i+1)
	}
}

func TestAllow_DeniesOverCapacity(t *testing.T) {
	l, _ := newTestLimiter(t, 20, time.Minute)

	for i := 0; i < 20; i++ {
		require.True(t, l.Allow("client-a"))
	}

	require.False(t, l.Allow("client-a"), "21st request in the window should be denied")
	require.False(t, l.Allow("client-a"), "denied requests must not increment the counter")
}

func TestAllow_WindowElapses(t *testing.T) {
	l, clock := newTestLimiter(t, 20, time.Minute)

	for i := 0; i < 20; i++ {
		require.True(t, l.Allow("client-a"))
	}
	require.False(t, l.Allow("client-a"))

	clock.Advance(61 * time.Second)

	require.True(t, l.Allow("client-a"), "request after the window elapsed should reset the record")
	require.Equal(t, 1, l.records["client-a"].count)
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, 2, time.Minute)

	require.True(t, l.Allow("client-a"))
	require.True(t, l.Allow("client-a"))
	require.False(t, l.Allow("client-a"))

	require.True(t, l.Allow("client-b"))
}

func TestAllow_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, 50, time.Minute)

	var wg sync.WaitGroup
	allowed := make(chan bool, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Allow("client-a")
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}

	require.Equal(t, 50, count, "exactly capacity requests should pass under contention")
}

func TestEvictStale(t *testing.T) {
	l, clock := newTestLimiter(t, 20, time.Minute)

	require.True(t, l.Allow("client-a"))
	require.True(t, l.Allow("client-b"))

	clock.Advance(2 * time.Minute)
	l.evictStale()

	l.mu.Lock()
	defer l.mu.Unlock()
	require.Empty(t, l.records)
}
