package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is a per-route rule. A Path ending in "/" matches every
// path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int           // bucket capacity, Limit when 0
}

// key identifies the bucket family a rule feeds. All IDs under a prefix
// rule share one bucket per client.
func (e *EndpointConfig) key() string {
	return e.Method + " " + e.Path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig reads RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(getEnvInt("RATE_LIMIT_RENDER_LIMIT", 30)),
	}
}

// DefaultEndpointConfigs returns the built-in rules. PDF projection is the
// most expensive call, so every route that produces a PDF shares
// renderLimit per minute.
func DefaultEndpointConfigs(renderLimit int) []EndpointConfig {
	renderBurst := max(renderLimit/6, 1)
	return []EndpointConfig{
		// Rendering
		{Path: "/render", Method: "POST", Limit: renderLimit, Window: time.Minute, Burst: renderBurst},
		{Path: "/resumes/", Method: "GET", Limit: renderLimit * 4, Window: time.Minute, Burst: renderBurst * 4},
		{Path: "/preview", Method: "POST", Limit: renderLimit * 4, Window: time.Minute, Burst: renderBurst * 4},

		// Writes
		{Path: "/users", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/users/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/resumes", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/resumes/", Method: "PUT", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/resumes/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
