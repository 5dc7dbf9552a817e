package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tierConfig(limit, burst int) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Name: TierAnalysis, Path: "/v1/job-descriptions/", Method: "POST", Limit: limit, Window: time.Hour, Burst: burst},
			{Name: TierUpload, Path: "/v1/resumes/analyze-file", Method: "POST", Limit: limit, Window: time.Hour, Burst: burst},
		},
	}
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	limiter := NewLimiter(tierConfig(3, 3))
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/v1/resumes/analyze-file", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := limiter.Allow("10.0.0.1", "/v1/resumes/analyze-file", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.True(t, info.ResetTime.After(time.Now()))
}

func TestLimiter_TierSharesBucket(t *testing.T) {
	limiter := NewLimiter(tierConfig(2, 2))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("10.0.0.1", "/v1/job-descriptions/analyze", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1", "/v1/job-descriptions/match", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1", "/v1/job-descriptions/analyze", "POST")
	assert.False(t, allowed, "third request in the tier should be denied")

	// Other clients and other tiers have their own buckets
	allowed, _ = limiter.Allow("10.0.0.2", "/v1/job-descriptions/match", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1", "/v1/resumes/analyze-file", "POST")
	assert.True(t, allowed)
}

func TestLimiter_UntieredPathsUseDefault(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer limiter.Stop()

	allowed, info := limiter.Allow("10.0.0.1", "/v1/lexicon", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1, info.Limit)
	allowed, _ = limiter.Allow("10.0.0.1", "/v1/lexicon", "GET")
	assert.False(t, allowed)

	// A different path is a different bucket
	allowed, _ = limiter.Allow("10.0.0.1", "/v1/other", "GET")
	assert.True(t, allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/health", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
	assert.Zero(t, limiter.Len())
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	config := tierConfig(1, 1)
	config.Whitelist = map[string]bool{"10.0.0.9": true}
	config.Blacklist = map[string]bool{"10.0.0.66": true}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("10.0.0.9", "/v1/job-descriptions/analyze", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow("10.0.0.66", "/v1/job-descriptions/analyze", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/v1/resumes/analyze", "POST")
		require.True(t, allowed)
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("10.0.0.1", "/v1/resumes/analyze", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(tierConfig(50, 50))
	defer limiter.Stop()

	var mu sync.Mutex
	allowedCount := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("10.0.0.1", "/v1/job-descriptions/analyze", "POST"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("10.0.0.%d", i), "/v1/resumes/analyze", "POST")
	}
	require.Equal(t, 3, limiter.Len())

	limiter.evictIdle(time.Now().Add(-time.Minute))
	assert.Equal(t, 3, limiter.Len(), "recently used buckets survive")

	limiter.evictIdle(time.Now().Add(time.Second))
	assert.Zero(t, limiter.Len())
}

func TestLimiter_StopIdempotent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path   string
		method string
		want   string // "" means no match
	}{
		{"/v1/resumes/analyze", "POST", TierAnalysis},
		{"/v1/resumes/analyze-file", "POST", TierUpload},
		{"/v1/job-descriptions/analyze", "POST", TierAnalysis},
		{"/v1/job-descriptions/match", "POST", TierAnalysis},
		{"/v1/analyses/550e8400-e29b-41d4-a716-446655440000", "GET", TierLookup},
		{"/v1/resumes/analyze", "GET", ""},
		{"/v1/lexicon", "GET", ""},
		{"/health", "GET", "unlimited"},
	}

	for _, tt := range tests {
		got := MatchEndpoint(tt.path, tt.method, configs)
		switch {
		case tt.want == "" && got != nil:
			t.Errorf("MatchEndpoint(%s %s) = %q, want no match", tt.method, tt.path, got.Name)
		case tt.want != "" && got == nil:
			t.Errorf("MatchEndpoint(%s %s) = nil, want %q", tt.method, tt.path, tt.want)
		case got != nil && got.Name != tt.want:
			t.Errorf("MatchEndpoint(%s %s) = %q, want %q", tt.method, tt.path, got.Name, tt.want)
		}
	}
}

func TestMatchEndpoint_LongestPrefixWins(t *testing.T) {
	configs := []EndpointConfig{
		{Name: "short", Path: "/v1/", Method: "POST", Limit: 1},
		{Name: "long", Path: "/v1/job-descriptions/", Method: "POST", Limit: 1},
	}
	if got := MatchEndpoint("/v1/job-descriptions/match", "POST", configs); got == nil || got.Name != "long" {
		t.Errorf("expected longest prefix match, got %+v", got)
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_ANALYSIS_LIMIT", "12")
	t.Setenv("RATE_LIMIT_UPLOAD_LIMIT", "3")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2,")

	config := LoadConfig()
	if !config.Enabled {
		t.Fatal("Expected rate limiting to be enabled")
	}
	if len(config.Whitelist) != 2 || !config.Whitelist["10.0.0.2"] {
		t.Errorf("unexpected whitelist: %v", config.Whitelist)
	}

	analysis := MatchEndpoint("/v1/resumes/analyze", "POST", config.EndpointConfigs)
	if analysis == nil || analysis.Limit != 12 || analysis.Burst != 2 {
		t.Errorf("unexpected analysis tier: %+v", analysis)
	}
	upload := MatchEndpoint("/v1/resumes/analyze-file", "POST", config.EndpointConfigs)
	if upload == nil || upload.Limit != 3 || upload.Burst != 1 {
		t.Errorf("unexpected upload tier: %+v", upload)
	}
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	if LoadConfig().Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
}
