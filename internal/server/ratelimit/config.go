package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// Rule limits one method on a path. A Path ending in "/" matches by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int           // Maximum requests per window; 0 is unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	CleanupInterval time.Duration
	// Rules are checked in order; the first match wins.
	Rules []Rule
	// Default applies to requests matching no rule.
	Default Rule
}

// DefaultConfig limits page mutations to writesPerMinute per client, with a
// tighter budget for imports. Reads are unlimited.
func DefaultConfig(writesPerMinute int) *Config {
	burst := max(writesPerMinute/4, 1)
	return &Config{
		Enabled:         writesPerMinute > 0,
		CleanupInterval: 5 * time.Minute,
		Rules: []Rule{
			{Path: "/import", Method: http.MethodPost, Limit: 10, Window: time.Minute, Burst: 3},
			{Path: "/api/profile", Method: http.MethodPut, Limit: 10, Window: time.Minute, Burst: 3},
			{Path: "/", Method: http.MethodPost, Limit: writesPerMinute, Window: time.Minute, Burst: burst},
		},
	}
}

// Match returns the first rule for method and path, or nil.
func Match(path, method string, rules []Rule) *Rule {
	for i := range rules {
		rule := &rules[i]
		if rule.Method != method {
			continue
		}
		if rule.Path == path || (strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path)) {
			return rule
		}
	}
	return nil
}
