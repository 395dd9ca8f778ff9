package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	l := NewLimiter(cfg)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestTokenBucket(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bucket := newTokenBucket(10, 1.0, start)

	for i := 0; i < 10; i++ {
		allowed, remaining, _ := bucket.take(start)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 9-i, remaining)
	}
	allowed, _, reset := bucket.take(start)
	assert.False(t, allowed)
	assert.Equal(t, start.Add(10*time.Second), reset)
	assert.Equal(t, time.Second, bucket.nextToken(start))

	later := start.Add(1100 * time.Millisecond)
	allowed, _, _ = bucket.take(later)
	assert.True(t, allowed, "one token refilled")
	allowed, _, _ = bucket.take(later)
	assert.False(t, allowed)
}

func TestTokenBucket_NeverExceedsCapacity(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bucket := newTokenBucket(3, 1.0, start)

	_, remaining, reset := bucket.take(start.Add(time.Hour))
	assert.Equal(t, 2, remaining)
	assert.True(t, reset.After(start.Add(time.Hour)))
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/templates", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/templates", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, 6.0, info.RetryAfter.Seconds(), 0.001)

	clock.Advance(7 * time.Second)
	allowed, _ = l.Allow("127.0.0.1", "/templates", "GET")
	assert.True(t, allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})

	allowed, _ := l.Allow("10.0.0.1", "/templates", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/templates", "GET")
	assert.False(t, allowed)
	allowed, _ = l.Allow("10.0.0.2", "/templates", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("127.0.0.1", "/render", "POST")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}

	allowed, _ := l.Allow("192.168.1.1", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false})

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("127.0.0.1", "/render", "POST")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_ExemptProbes(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/health", "GET")
		require.True(t, allowed)
		allowed, _ = l.Allow("127.0.0.1", "/metrics", "GET")
		require.True(t, allowed)
	}
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_EndpointRule(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(12),
	})

	// Burst is renderLimit/6.
	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("127.0.0.1", "/render", "POST")
		require.True(t, allowed)
		assert.Equal(t, 12, info.Limit)
	}
	allowed, _ := l.Allow("127.0.0.1", "/render", "POST")
	assert.False(t, allowed)

	allowed, info := l.Allow("127.0.0.1", "/templates", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_PrefixRuleSharesBucket(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/resumes/", Method: "DELETE", Limit: 2, Window: time.Minute},
		},
	})

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("127.0.0.1", fmt.Sprintf("/resumes/%d", i), "DELETE")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("127.0.0.1", "/resumes/other", "DELETE")
	assert.False(t, allowed)
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})

	var wg sync.WaitGroup
	var allowedCount atomic.Int32
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("127.0.0.1", "/templates", "GET"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowedCount.Load())
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/templates", "GET")
	}
	clock.Advance(30 * time.Minute)
	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/templates", "GET")
	}
	clock.Advance(40 * time.Minute)

	l.evictIdle(time.Hour)
	assert.Equal(t, 5, l.Len())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l, _ := newTestLimiter(t, nil)

	allowed, info := l.Allow("127.0.0.1", "/templates", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 600, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs(30)

	tests := []struct {
		path, method string
		wantPath     string
		wantNil      bool
	}{
		{path: "/render", method: "POST", wantPath: "/render"},
		{path: "/resumes", method: "POST", wantPath: "/resumes"},
		{path: "/resumes/abc/download", method: "GET", wantPath: "/resumes/"},
		{path: "/users/abc/subscription", method: "PUT", wantPath: "/users/"},
		{path: "/health", method: "GET", wantPath: "/health"},
		{path: "/templates", method: "GET", wantNil: true},
		{path: "/render", method: "GET", wantNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2,")
	t.Setenv("RATE_LIMIT_RENDER_LIMIT", "60")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	rule := MatchEndpoint("/render", "POST", cfg.EndpointConfigs)
	require.NotNil(t, rule)
	assert.Equal(t, 60, rule.Limit)
	assert.Equal(t, 10, rule.Burst)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
