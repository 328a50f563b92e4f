package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "bio.json", `{
		"addr": ":9090",
		"profile_url": "https://example.com/data/site.json",
		"fetch_timeout_seconds": 3,
		"snapshot_url": "memory://",
		"log_level": "debug"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "https://example.com/data/site.json", cfg.ProfileURL)
	assert.Equal(t, 3, cfg.FetchTimeoutSeconds)
	assert.Equal(t, "memory://", cfg.SnapshotURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "bio.yaml", `
addr: ":7070"
snapshot_url: "redis://localhost:6379/0"
snapshot_key: custom_key
log_file: /tmp/bio.log
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "redis://localhost:6379/0", cfg.SnapshotURL)
	assert.Equal(t, "custom_key", cfg.SnapshotKey)
	assert.Equal(t, "/tmp/bio.log", cfg.LogFile)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeFile(t, "bio.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bio.yml", "addr: [unterminated")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/bio.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoad_Layering(t *testing.T) {
	path := writeFile(t, "bio.json", `{"addr": ":9090", "log_level": "warn"}`)
	t.Setenv("BIO_LOG_LEVEL", "debug")
	t.Setenv("BIO_FETCH_TIMEOUT_SECONDS", "2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr, "file value")
	assert.Equal(t, "debug", cfg.LogLevel, "env overrides file")
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout())
	assert.Equal(t, "sqlite://data/bio.db", cfg.SnapshotURL, "default fills the rest")
	assert.Equal(t, "gm_bio_profile_v1", cfg.SnapshotKey)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Addr, cfg.Addr)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout())
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("BIO_FETCH_TIMEOUT_SECONDS", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "negative timeout", cfg: Config{FetchTimeoutSeconds: -1}, wantErr: "non-negative"},
		{name: "unknown log level", cfg: Config{LogLevel: "loud"}, wantErr: "unknown log level"},
		{name: "relative profile url", cfg: Config{ProfileURL: "data/site.json"}, wantErr: "profile_url"},
		{name: "ftp profile url", cfg: Config{ProfileURL: "ftp://example.com/x"}, wantErr: "profile_url"},
		{name: "https profile url", cfg: Config{ProfileURL: "https://example.com/data/site.json"}},
		{name: "snapshot without scheme", cfg: Config{SnapshotURL: "data/bio.db"}, wantErr: "snapshot_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Addr: ":1234", FetchTimeoutSeconds: 9}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, ":1234", merged.Addr)
	assert.Equal(t, 9, merged.FetchTimeoutSeconds)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, "sqlite://data/bio.db", merged.SnapshotURL)
	assert.Equal(t, ":1234", cfg.Addr, "receiver is not modified")
	assert.Empty(t, cfg.LogLevel)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("BIO_ADDR", ":5555")
	t.Setenv("BIO_PROFILE_URL", "https://example.com/p.json")

	cfg := Config{Addr: ":1"}
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, ":5555", cfg.Addr)
	assert.Equal(t, "https://example.com/p.json", cfg.ProfileURL)
}
