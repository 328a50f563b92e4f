// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the bio configuration. Values are layered: defaults, then
// an optional JSON or YAML file, then BIO_* environment variables, then CLI flags.
type Config struct {
	// Server
	Addr               string `json:"addr,omitempty" yaml:"addr,omitempty" env:"BIO_ADDR"`                                                    // Listen address for serve
	RateLimitPerMinute int    `json:"rate_limit_per_minute,omitempty" yaml:"rate_limit_per_minute,omitempty" env:"BIO_RATE_LIMIT_PER_MINUTE"` // Page mutations per client; negative disables

	// Resolution chain
	ProfileURL          string `json:"profile_url,omitempty" yaml:"profile_url,omitempty" env:"BIO_PROFILE_URL"`                               // Remote profile resource; empty skips the remote tier
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds,omitempty" yaml:"fetch_timeout_seconds,omitempty" env:"BIO_FETCH_TIMEOUT_SECONDS"` // Remote fetch timeout
	SnapshotURL         string `json:"snapshot_url,omitempty" yaml:"snapshot_url,omitempty" env:"BIO_SNAPSHOT_URL"`                            // memory://, sqlite://, postgres://, redis://
	SnapshotKey         string `json:"snapshot_key,omitempty" yaml:"snapshot_key,omitempty" env:"BIO_SNAPSHOT_KEY"`                            // Key holding the snapshot

	// Logging
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" env:"BIO_LOG_LEVEL"` // debug, info, warn, error
	LogFile  string `json:"log_file,omitempty" yaml:"log_file,omitempty" env:"BIO_LOG_FILE"`    // Optional log file in addition to stdout
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:                ":8080",
		RateLimitPerMinute:  120,
		FetchTimeoutSeconds: 5,
		SnapshotURL:         "sqlite://data/bio.db",
		SnapshotKey:         "gm_bio_profile_v1",
		LogLevel:            "info",
	}
}

// Load builds the effective configuration from an optional file and the
// environment, filling anything still unset from Defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	return &merged, nil
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}

	if c.ProfileURL != "" {
		u, err := url.Parse(c.ProfileURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'profile_url' must be an absolute http(s) URL: %s", c.ProfileURL)
		}
	}

	if c.SnapshotURL != "" && !strings.Contains(c.SnapshotURL, "://") {
		return fmt.Errorf("config error: 'snapshot_url' must include a scheme: %s", c.SnapshotURL)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.ProfileURL == "" {
		result.ProfileURL = defaults.ProfileURL
	}
	if result.SnapshotURL == "" {
		result.SnapshotURL = defaults.SnapshotURL
	}
	if result.SnapshotKey == "" {
		result.SnapshotKey = defaults.SnapshotKey
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}

	// Int fields: use default if zero
	if result.FetchTimeoutSeconds == 0 {
		result.FetchTimeoutSeconds = defaults.FetchTimeoutSeconds
	}
	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = defaults.RateLimitPerMinute
	}

	return result
}

// FetchTimeout returns the remote fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
