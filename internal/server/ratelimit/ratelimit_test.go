package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, config *Config) (*Limiter, *fakeClock) {
	t.Helper()
	config.CleanupInterval = 0
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(config)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: 10 * time.Second})

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("client1", "/other", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 10-i-1, info.Remaining)
	}

	allowed, info := l.Allow("client1", "/other", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
	assert.True(t, info.ResetTime.After(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	// Other clients have their own bucket
	allowed, _ = l.Allow("client2", "/other", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: 10 * time.Second})

	for i := 0; i < 10; i++ {
		l.Allow("client1", "/other", "GET")
	}
	allowed, _ := l.Allow("client1", "/other", "GET")
	require.False(t, allowed)

	clock.Advance(time.Second)
	allowed, _ = l.Allow("client1", "/other", "GET")
	assert.True(t, allowed, "one token refilled")

	allowed, _ = l.Allow("client1", "/other", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Lists(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     ParseIPList([]string{"10.0.0.1"}),
		Blacklist:     ParseIPList([]string{"10.0.0.2, 10.0.0.3"}),
	}
	l, _ := newTestLimiter(t, config)

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/parse-cv", "POST")
		assert.True(t, allowed, "whitelisted request %d", i+1)
	}

	allowed, _ := l.Allow("10.0.0.3", "/health", "GET")
	assert.False(t, allowed, "blacklist applies everywhere")
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("client1", "/quick-review", "POST")
		assert.True(t, allowed)
	}
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	config := DefaultConfig()
	l, _ := newTestLimiter(t, config)

	// quick-review bursts 5
	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("client1", "/quick-review", "POST")
		require.True(t, allowed)
		assert.Equal(t, 20, info.Limit)
	}
	allowed, _ := l.Allow("client1", "/quick-review", "POST")
	assert.False(t, allowed)

	// Separate budget for another endpoint
	allowed, info := l.Allow("client1", "/parse-cv", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 60, info.Limit)

	// Health is unlimited
	for i := 0; i < 1000; i++ {
		allowed, _ := l.Allow("client1", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("client1", "/other", "GET"); allowed {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, granted)
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTimeout: time.Hour})

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client%d", i), "/other", "GET")
	}
	require.Equal(t, 3, l.Len())

	clock.Advance(30 * time.Minute)
	l.Allow("client0", "/other", "GET")

	clock.Advance(45 * time.Minute)
	l.cleanupBuckets()
	assert.Equal(t, 1, l.Len(), "only the recently used bucket survives")
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, _ := l.Allow("client1", "/", "GET")
	assert.True(t, allowed)
	l.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/parse-cv", Method: "POST", Limit: 1},
		{Path: "/sessions/", Method: "POST", Limit: 2},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"exact", "/parse-cv", "POST", 1, false},
		{"prefix", "/sessions/42", "POST", 2, false},
		{"method mismatch", "/parse-cv", "GET", 0, true},
		{"health unlimited", "/health", "GET", 0, false},
		{"root unlimited", "/", "GET", 0, false},
		{"unknown", "/nope", "POST", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestParseIPList(t *testing.T) {
	got := ParseIPList([]string{" 1.1.1.1 ,2.2.2.2", "", "3.3.3.3"})
	assert.Equal(t, map[string]bool{"1.1.1.1": true, "2.2.2.2": true, "3.3.3.3": true}, got)
}
