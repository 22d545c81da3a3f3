package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig is the rate limit applied to one route.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" makes it a prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // buckets unused for this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns limits suited to the CV endpoints. AI-backed routes get
// the strictest budget since every call costs a model request.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// AI-backed
		{Path: "/mock-interview", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/quick-review", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// Uploads and extraction
		{Path: "/parse-cv", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Health and metrics are unlimited, see MatchEndpoint
	}
}

// ParseIPList turns a list of addresses, each possibly comma-separated, into a set.
func ParseIPList(items []string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range items {
		for _, ip := range strings.Split(item, ",") {
			if ip = strings.TrimSpace(ip); ip != "" {
				result[ip] = true
			}
		}
	}
	return result
}
