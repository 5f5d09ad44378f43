package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one method on one path, or on every path
// under it when Path ends in "/".
// Burst is the bucket capacity and defaults to Limit.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig reads RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT,
// RATE_LIMIT_DEFAULT_WINDOW, RATE_LIMIT_CLEANUP_INTERVAL, RATE_LIMIT_WHITELIST
// and RATE_LIMIT_BLACKLIST.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. Everything else
// falls under the default limit; /health is never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Browser rendering and LLM calls
		{Path: "/api/generate-pdf", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/export", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/tailor", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},

		// Credential checks
		{Path: "/api/register", Method: "POST", Limit: 10, Window: time.Hour, Burst: 5},
		{Path: "/api/login", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},

		// Inline edits fire on every keystroke commit
		{Path: "/api/edit/", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
	}
}

func getEnvInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

// parseIPList splits a comma separated list into a set.
func parseIPList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
