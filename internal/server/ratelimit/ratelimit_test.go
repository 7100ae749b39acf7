package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(rules ...Rule) *Config {
	cfg := DefaultConfig()
	cfg.CleanupInterval = 0
	cfg.DefaultLimit = 5
	cfg.DefaultWindow = time.Minute
	if rules != nil {
		cfg.Rules = rules
	}
	return cfg
}

// fixedClock returns a limiter whose clock only moves when advance is called.
func fixedClock(l *Limiter) (advance func(time.Duration)) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return func(d time.Duration) { now = now.Add(d) }
}

func TestRule_Matches(t *testing.T) {
	exact := Rule{Path: "/get-candidate", Method: "POST"}
	prefix := Rule{Path: "/runs/", Method: "GET"}

	assert.True(t, exact.Matches("/get-candidate", "POST"))
	assert.False(t, exact.Matches("/get-candidate", "GET"))
	assert.False(t, exact.Matches("/get-candidate/x", "POST"))
	assert.True(t, prefix.Matches("/runs/123", "GET"))
	assert.False(t, prefix.Matches("/runs", "GET"))
}

func TestLimiter_Allow_DefaultLimit(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()
	fixedClock(l)

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("10.0.0.1", "/unknown", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/unknown", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, float64(12*time.Second), float64(info.RetryAfter), float64(time.Millisecond))
}

func TestLimiter_Refill(t *testing.T) {
	l := NewLimiter(testConfig(Rule{Path: "/get-candidate", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3}))
	defer l.Stop()
	advance := fixedClock(l)

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/get-candidate", "POST")
		require.True(t, allowed)
	}
	allowed, info := l.Allow("10.0.0.1", "/get-candidate", "POST")
	require.False(t, allowed)
	assert.InDelta(t, float64(2*time.Minute), float64(info.RetryAfter), float64(time.Millisecond))

	advance(3 * time.Minute)
	allowed, _ = l.Allow("10.0.0.1", "/get-candidate", "POST")
	assert.True(t, allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig(Rule{Path: "/get-candidate", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1}))
	defer l.Stop()
	fixedClock(l)

	allowed, _ := l.Allow("10.0.0.1", "/get-candidate", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/get-candidate", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/get-candidate", "POST")
	assert.True(t, allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("10.0.0.1", "/health", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig(Rule{Path: "/get-candidate", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1})
	cfg.Whitelist = map[string]bool{"10.0.0.9": true}
	cfg.Blacklist = map[string]bool{"10.0.0.6": true}
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.9", "/get-candidate", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.6", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/get-candidate", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l := NewLimiter(testConfig(Rule{Path: "/get-candidate", Method: "POST", Limit: 50, Window: time.Hour, Burst: 50}))
	defer l.Stop()
	fixedClock(l)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("10.0.0.1", "/get-candidate", "POST"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()
	advance := fixedClock(l)

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i), "/unknown", "GET")
	}
	advance(30 * time.Minute)
	l.Allow("10.0.0.1", "/unknown", "GET")
	advance(31 * time.Minute)

	l.cleanupBuckets()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "10.0.0.1:GET:/unknown")
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()
	l.Stop()

	allowed, info := l.Allow("10.0.0.1", "/get-candidate", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 30, info.Limit)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_SEARCH_LIMIT", "5")
	t.Setenv("RATE_LIMIT_SEARCH_WINDOW", "10m")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.True(t, cfg.Whitelist["10.0.0.2"])
	for _, rule := range cfg.Rules {
		if rule.Path == "/get-candidate" {
			assert.Equal(t, 5, rule.Limit)
			assert.Equal(t, 10*time.Minute, rule.Window)
		}
	}
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	assert.False(t, LoadConfig().Enabled)
}
