package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Tier names shared by endpoints that draw from one bucket
const (
	TierAnalysis = "analysis"
	TierUpload   = "upload"
	TierLookup   = "lookup"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Name   string        // Bucket tier; endpoints with the same name share a bucket
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// bucketName returns the name used in bucket keys.
func (c *EndpointConfig) bucketName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Path
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	defaultLimit := getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000)
	defaultWindow := getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute)
	cleanupInterval := getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute)

	whitelist := parseIPList(getEnvString("RATE_LIMIT_WHITELIST", ""))
	blacklist := parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", ""))

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: cleanupInterval,
		Whitelist:       whitelist,
		Blacklist:       blacklist,
		EndpointConfigs: EndpointConfigs(
			getEnvInt("RATE_LIMIT_ANALYSIS_LIMIT", 120),
			getEnvInt("RATE_LIMIT_UPLOAD_LIMIT", 30),
		),
	}
}

// DefaultEndpointConfigs returns the endpoint tiers with their default limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return EndpointConfigs(120, 30)
}

// EndpointConfigs returns the endpoint tiers with the given per-minute limits
// for text analysis and file uploads.
func EndpointConfigs(analysisLimit, uploadLimit int) []EndpointConfig {
	analysisBurst := max(1, analysisLimit/6)
	uploadBurst := max(1, uploadLimit/6)
	return []EndpointConfig{
		// Tier 1: File uploads run PDF and DOCX extraction (strictest limits)
		{Name: TierUpload, Path: "/v1/resumes/analyze-file", Method: "POST", Limit: uploadLimit, Window: time.Minute, Burst: uploadBurst},

		// Tier 2: Text analysis (moderate limits)
		{Name: TierAnalysis, Path: "/v1/resumes/analyze", Method: "POST", Limit: analysisLimit, Window: time.Minute, Burst: analysisBurst},
		{Name: TierAnalysis, Path: "/v1/job-descriptions/", Method: "POST", Limit: analysisLimit, Window: time.Minute, Burst: analysisBurst},

		// Tier 3: Stored analysis lookups share one bucket per client
		{Name: TierLookup, Path: "/v1/analyses/", Method: "GET", Limit: 600, Window: time.Minute, Burst: 60},

		// Tier 4: Everything else uses the default limit; health is unlimited (see matcher)
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
