package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func createTestConfigFile(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp("", "content_cache_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}

	if err := tmpFile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	return tmpFile.Name()
}

// clearEnv blanks every variable LoadConfig reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "CONTENT_REALTIME", "CONTENT_AUTO_CLEAR", "SANITY_PROJECT_ID",
		"SANITY_DATASET", "SANITY_API_VERSION", "SANITY_API_TOKEN", "CONTENT_LISTEN_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	logger := zaptest.NewLogger(t)

	validConfig := `
environment:
  mode: development
  auto_clear: true

content_source:
  project_id: abc123
  dataset: production
  api_version: "2023-05-03"
  use_cdn: true
  timeout: 5s

cache:
  backend: bigcache
  development_ttl: 15s
  production_ttl: 2m
  bigcache:
    size: 128
  keydb:
    enabled: true
    connection:
      connect_timeout: 2s
    keepalive:
      pool_size: 20

auto_clear:
  interval: 45s
  markers: ["cake-cache"]
`

	configFile := createTestConfigFile(t, validConfig)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !config.Environment.IsDevelopment() {
		t.Errorf("LoadConfig() Environment.Mode = %v, want development", config.Environment.Mode)
	}
	if !config.Environment.AutoClear {
		t.Errorf("LoadConfig() Environment.AutoClear = false, want true")
	}
	if config.ContentSource.ProjectID != "abc123" {
		t.Errorf("LoadConfig() ContentSource.ProjectID = %v, want abc123", config.ContentSource.ProjectID)
	}
	if config.ContentSource.APIVersion != "2023-05-03" {
		t.Errorf("LoadConfig() ContentSource.APIVersion = %v, want 2023-05-03", config.ContentSource.APIVersion)
	}
	if config.ContentSource.Timeout != 5*time.Second {
		t.Errorf("LoadConfig() ContentSource.Timeout = %v, want 5s", config.ContentSource.Timeout)
	}
	if config.Cache.Backend != BackendBigCache {
		t.Errorf("LoadConfig() Cache.Backend = %v, want bigcache", config.Cache.Backend)
	}
	if config.Cache.DevelopmentTTL != 15*time.Second {
		t.Errorf("LoadConfig() Cache.DevelopmentTTL = %v, want 15s", config.Cache.DevelopmentTTL)
	}
	if config.Cache.BigCache.Size != 128 {
		t.Errorf("LoadConfig() Cache.BigCache.Size = %v, want 128", config.Cache.BigCache.Size)
	}
	if config.Cache.KeyDB.Connection.ConnectTimeout != 2*time.Second {
		t.Errorf("LoadConfig() KeyDB.Connection.ConnectTimeout = %v, want 2s", config.Cache.KeyDB.Connection.ConnectTimeout)
	}
	if config.Cache.KeyDB.Keepalive.PoolSize != 20 {
		t.Errorf("LoadConfig() KeyDB.Keepalive.PoolSize = %v, want 20", config.Cache.KeyDB.Keepalive.PoolSize)
	}
	if config.AutoClear.Interval != 45*time.Second {
		t.Errorf("LoadConfig() AutoClear.Interval = %v, want 45s", config.AutoClear.Interval)
	}
	if len(config.AutoClear.Markers) != 1 || config.AutoClear.Markers[0] != "cake-cache" {
		t.Errorf("LoadConfig() AutoClear.Markers = %v, want [cake-cache]", config.AutoClear.Markers)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	logger := zaptest.NewLogger(t)

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Environment.Mode != ModeProduction {
		t.Errorf("default Mode = %v, want production", config.Environment.Mode)
	}
	if config.Cache.Backend != BackendMemory {
		t.Errorf("default Backend = %v, want memory", config.Cache.Backend)
	}
	if config.Cache.ProductionTTL != 60*time.Second {
		t.Errorf("default ProductionTTL = %v, want 60s", config.Cache.ProductionTTL)
	}
	if config.AutoClear.Interval != 30*time.Second {
		t.Errorf("default AutoClear.Interval = %v, want 30s", config.AutoClear.Interval)
	}
	if config.Cache.KeyDB.KeyPrefix != "content:" {
		t.Errorf("default KeyDB.KeyPrefix = %v, want content:", config.Cache.KeyDB.KeyPrefix)
	}
	if config.Server.ListenAddr != ":8080" {
		t.Errorf("default ListenAddr = %v, want :8080", config.Server.ListenAddr)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "Development")
	t.Setenv("CONTENT_REALTIME", "true")
	t.Setenv("CONTENT_AUTO_CLEAR", "1")
	t.Setenv("SANITY_PROJECT_ID", "env-project")
	t.Setenv("SANITY_DATASET", "staging")
	t.Setenv("SANITY_API_TOKEN", "secret")
	t.Setenv("CONTENT_LISTEN_ADDR", "127.0.0.1:9000")

	configFile := createTestConfigFile(t, `
content_source:
  project_id: file-project
  dataset: production
`)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Environment.Mode != ModeDevelopment {
		t.Errorf("Mode = %v, want development", config.Environment.Mode)
	}
	if !config.Environment.Realtime {
		t.Errorf("Realtime = false, want true")
	}
	if !config.Environment.AutoClear {
		t.Errorf("AutoClear = false, want true")
	}
	if config.ContentSource.ProjectID != "env-project" {
		t.Errorf("ProjectID = %v, want env-project", config.ContentSource.ProjectID)
	}
	if config.ContentSource.Dataset != "staging" {
		t.Errorf("Dataset = %v, want staging", config.ContentSource.Dataset)
	}
	if config.ContentSource.Token != "secret" {
		t.Errorf("Token = %v, want secret", config.ContentSource.Token)
	}
	if config.Server.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("ListenAddr = %v, want 127.0.0.1:9000", config.Server.ListenAddr)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	clearEnv(t)
	logger := zaptest.NewLogger(t)

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown mode",
			content: "environment:\n  mode: staging\n",
		},
		{
			name:    "unknown backend",
			content: "cache:\n  backend: memcached\n",
		},
		{
			name:    "negative auto clear interval",
			content: "auto_clear:\n  interval: -5s\n",
		},
		{
			name:    "malformed yaml",
			content: "cache: [unterminated\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := createTestConfigFile(t, tt.content)
			defer os.Remove(configFile)

			if _, err := LoadConfig(configFile, logger); err == nil {
				t.Errorf("LoadConfig() expected error, got nil")
			}
		})
	}
}

func TestCachePolicy(t *testing.T) {
	base := Config{}
	base.ApplyDefaults()

	tests := []struct {
		name           string
		mode           string
		realtime       bool
		wantTTL        time.Duration
		wantRevalidate time.Duration
	}{
		{"production", ModeProduction, false, 60 * time.Second, 60 * time.Second},
		{"development", ModeDevelopment, false, 10 * time.Second, 10 * time.Second},
		{"realtime production", ModeProduction, true, 0, 0},
		{"realtime development", ModeDevelopment, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Environment.Mode = tt.mode
			cfg.Environment.Realtime = tt.realtime

			policy := cfg.CachePolicy()
			if policy.TTL != tt.wantTTL {
				t.Errorf("CachePolicy().TTL = %v, want %v", policy.TTL, tt.wantTTL)
			}
			if policy.Revalidate != tt.wantRevalidate {
				t.Errorf("CachePolicy().Revalidate = %v, want %v", policy.Revalidate, tt.wantRevalidate)
			}
		})
	}
}

func TestAutoClearAllowed(t *testing.T) {
	tests := []struct {
		mode      string
		autoClear bool
		want      bool
	}{
		{ModeDevelopment, true, true},
		{ModeDevelopment, false, false},
		{ModeProduction, true, false},
		{ModeProduction, false, false},
	}

	for _, tt := range tests {
		cfg := Config{Environment: EnvironmentConfig{Mode: tt.mode, AutoClear: tt.autoClear}}
		if got := cfg.AutoClearAllowed(); got != tt.want {
			t.Errorf("AutoClearAllowed(mode=%s, autoClear=%v) = %v, want %v", tt.mode, tt.autoClear, got, tt.want)
		}
	}
}

func TestContentSourceConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		source      ContentSourceConfig
		wantMissing []string
	}{
		{
			name:   "complete",
			source: ContentSourceConfig{ProjectID: "abc", Dataset: "production"},
		},
		{
			name:        "missing project id",
			source:      ContentSourceConfig{Dataset: "production"},
			wantMissing: []string{"SANITY_PROJECT_ID"},
		},
		{
			name:        "missing dataset",
			source:      ContentSourceConfig{ProjectID: "abc"},
			wantMissing: []string{"SANITY_DATASET"},
		},
		{
			name:        "missing both",
			source:      ContentSourceConfig{},
			wantMissing: []string{"SANITY_PROJECT_ID", "SANITY_DATASET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()

			if tt.wantMissing == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			var missingErr *MissingSettingsError
			if !errors.As(err, &missingErr) {
				t.Fatalf("Validate() error = %v, want *MissingSettingsError", err)
			}
			if len(missingErr.Names) != len(tt.wantMissing) {
				t.Fatalf("Validate() missing = %v, want %v", missingErr.Names, tt.wantMissing)
			}
			for i, name := range tt.wantMissing {
				if missingErr.Names[i] != name {
					t.Errorf("Validate() missing[%d] = %v, want %v", i, missingErr.Names[i], name)
				}
			}
		})
	}
}

func TestMissingSettingsError_Message(t *testing.T) {
	err := &MissingSettingsError{Names: []string{"SANITY_PROJECT_ID", "SANITY_DATASET"}}

	want := "missing required content source configuration: SANITY_PROJECT_ID, SANITY_DATASET"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestContentSourceConfig_Validate_Concurrent(t *testing.T) {
	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			source := ContentSourceConfig{ProjectID: "abc"}
			if i%2 == 0 {
				source.Dataset = "production"
			}
			done <- source.Validate()
		}(i)
	}

	failures := 0
	for i := 0; i < 20; i++ {
		if err := <-done; err != nil {
			var missingErr *MissingSettingsError
			if !errors.As(err, &missingErr) || missingErr.Names[0] != "SANITY_DATASET" {
				t.Errorf("Validate() error = %v, want SANITY_DATASET missing", err)
			}
			failures++
		}
	}
	if failures != 10 {
		t.Errorf("Validate() failures = %d, want 10", failures)
	}
}
