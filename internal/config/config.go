package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"

	BackendMemory   = "memory"
	BackendBigCache = "bigcache"
)

var validate = newValidator()

// newValidator reports fields by their env name when they have one
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("env"); name != "" {
			return name
		}
		return field.Name
	})
	return v
}

// Config represents the main configuration structure
type Config struct {
	Environment      EnvironmentConfig      `yaml:"environment"`
	ContentSource    ContentSourceConfig    `yaml:"content_source"`
	Cache            CacheConfig            `yaml:"cache"`
	AutoClear        AutoClearConfig        `yaml:"auto_clear"`
	AuxiliaryStorage AuxiliaryStorageConfig `yaml:"auxiliary_storage"`
	Server           ServerConfig           `yaml:"server"`
}

// EnvironmentConfig selects the runtime mode that drives cache policy
type EnvironmentConfig struct {
	Mode      string `yaml:"mode" validate:"oneof=development production"`
	Realtime  bool   `yaml:"realtime"`
	AutoClear bool   `yaml:"auto_clear"` // opt-in for the development sweeper
}

// IsDevelopment reports whether the service runs in development mode
func (e EnvironmentConfig) IsDevelopment() bool {
	return e.Mode == ModeDevelopment
}

// ContentSourceConfig describes how to reach the headless CMS
type ContentSourceConfig struct {
	ProjectID  string        `yaml:"project_id" env:"SANITY_PROJECT_ID" validate:"required"`
	Dataset    string        `yaml:"dataset" env:"SANITY_DATASET" validate:"required"`
	APIVersion string        `yaml:"api_version" env:"SANITY_API_VERSION"`
	Token      string        `yaml:"token" env:"SANITY_API_TOKEN"` // used by the preview client only
	UseCDN     bool          `yaml:"use_cdn"`
	BaseURL    string        `yaml:"base_url"` // overrides the project host, mostly for tests
	Timeout    time.Duration `yaml:"timeout"`
}

// CacheConfig holds the TTL policy and store backends
type CacheConfig struct {
	Backend               string         `yaml:"backend" validate:"oneof=memory bigcache"`
	DevelopmentTTL        time.Duration  `yaml:"development_ttl"`
	ProductionTTL         time.Duration  `yaml:"production_ttl"`
	DevelopmentRevalidate time.Duration  `yaml:"development_revalidate"`
	ProductionRevalidate  time.Duration  `yaml:"production_revalidate"`
	BigCache              BigCacheConfig `yaml:"bigcache"`
	KeyDB                 KeyDBConfig    `yaml:"keydb"`
}

// BigCacheConfig configures the in-process BigCache store
type BigCacheConfig struct {
	Size int `yaml:"size"` // MB
}

// KeyDBConfig configures the shared KeyDB/Redis tier
type KeyDBConfig struct {
	Enabled    bool             `yaml:"enabled"`
	KeyPrefix  string           `yaml:"key_prefix"`
	Connection ConnectionConfig `yaml:"connection"`
	Keepalive  KeepaliveConfig  `yaml:"keepalive"`
}

// ConnectionConfig holds KeyDB connection timeouts
type ConnectionConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	SendTimeout    time.Duration `yaml:"send_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
}

// KeepaliveConfig holds KeyDB pool settings
type KeepaliveConfig struct {
	PoolSize       int           `yaml:"pool_size"`
	MaxIdleTimeout time.Duration `yaml:"max_idle_timeout"`
}

// AutoClearConfig configures the development sweeper
type AutoClearConfig struct {
	Interval time.Duration `yaml:"interval" validate:"gt=0"`
	Markers  []string      `yaml:"markers"` // auxiliary storage keys containing any marker are removed by ClearAll
}

// AuxiliaryStorageConfig points at the KeyDB namespace holding render artifacts
type AuxiliaryStorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// CachePolicy is the effective caching behaviour for the current environment
type CachePolicy struct {
	TTL        time.Duration
	Revalidate time.Duration
}

// MissingSettingsError reports every required content source setting that is absent
type MissingSettingsError struct {
	Names []string
}

func (e *MissingSettingsError) Error() string {
	return fmt.Sprintf("missing required content source configuration: %s", strings.Join(e.Names, ", "))
}

// LoadConfig loads configuration from file path. A missing file yields defaults.
// Environment variables override file values.
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	var config Config

	file, err := os.Open(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("Configuration file not found, using defaults", zap.String("path", configPath))
	case err != nil:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	default:
		defer func() { _ = file.Close() }()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML config: %w", err)
		}
	}

	config.applyEnv(os.Getenv)
	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := config.ContentSource.Validate(); err != nil {
		logger.Warn("Content source is not fully configured", zap.Error(err))
	}

	return &config, nil
}

// applyEnv overlays environment variables on top of file values
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("APP_ENV"); v != "" {
		c.Environment.Mode = strings.ToLower(v)
	}
	if v, ok := envBool(getenv, "CONTENT_REALTIME"); ok {
		c.Environment.Realtime = v
	}
	if v, ok := envBool(getenv, "CONTENT_AUTO_CLEAR"); ok {
		c.Environment.AutoClear = v
	}
	if v := getenv("SANITY_PROJECT_ID"); v != "" {
		c.ContentSource.ProjectID = v
	}
	if v := getenv("SANITY_DATASET"); v != "" {
		c.ContentSource.Dataset = v
	}
	if v := getenv("SANITY_API_VERSION"); v != "" {
		c.ContentSource.APIVersion = v
	}
	if v := getenv("SANITY_API_TOKEN"); v != "" {
		c.ContentSource.Token = v
	}
	if v := getenv("CONTENT_LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
}

// ApplyDefaults sets default values for missing configuration
func (c *Config) ApplyDefaults() {
	if c.Environment.Mode == "" {
		c.Environment.Mode = ModeProduction
	}

	if c.ContentSource.APIVersion == "" {
		c.ContentSource.APIVersion = "2024-01-01"
	}
	if c.ContentSource.Timeout == 0 {
		c.ContentSource.Timeout = 10 * time.Second
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendMemory
	}
	if c.Cache.DevelopmentTTL == 0 {
		c.Cache.DevelopmentTTL = 10 * time.Second
	}
	if c.Cache.ProductionTTL == 0 {
		c.Cache.ProductionTTL = 60 * time.Second
	}
	if c.Cache.DevelopmentRevalidate == 0 {
		c.Cache.DevelopmentRevalidate = 10 * time.Second
	}
	if c.Cache.ProductionRevalidate == 0 {
		c.Cache.ProductionRevalidate = 60 * time.Second
	}
	if c.Cache.BigCache.Size == 0 {
		c.Cache.BigCache.Size = 64
	}

	keydb := &c.Cache.KeyDB
	if keydb.KeyPrefix == "" {
		keydb.KeyPrefix = "content:"
	}
	if keydb.Connection.ConnectTimeout == 0 {
		keydb.Connection.ConnectTimeout = time.Second
	}
	if keydb.Connection.SendTimeout == 0 {
		keydb.Connection.SendTimeout = time.Second
	}
	if keydb.Connection.ReadTimeout == 0 {
		keydb.Connection.ReadTimeout = time.Second
	}
	if keydb.Keepalive.PoolSize == 0 {
		keydb.Keepalive.PoolSize = 10
	}
	if keydb.Keepalive.MaxIdleTimeout == 0 {
		keydb.Keepalive.MaxIdleTimeout = 10 * time.Second
	}

	if c.AutoClear.Interval == 0 {
		c.AutoClear.Interval = 30 * time.Second
	}
	if len(c.AutoClear.Markers) == 0 {
		c.AutoClear.Markers = []string{"cache", "sanity"}
	}

	if c.AuxiliaryStorage.KeyPrefix == "" {
		c.AuxiliaryStorage.KeyPrefix = "render:"
	}

	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
}

// Validate checks the structural settings. Content source identifiers are
// checked separately at fetch time.
func (c *Config) Validate() error {
	if err := validate.Struct(c.Environment); err != nil {
		return fmt.Errorf("invalid environment config: %w", err)
	}
	if err := validate.Struct(c.Cache); err != nil {
		return fmt.Errorf("invalid cache config: %w", err)
	}
	if err := validate.Struct(c.AutoClear); err != nil {
		return fmt.Errorf("invalid auto clear config: %w", err)
	}
	return nil
}

// CachePolicy derives TTL and revalidation hints from the environment
func (c *Config) CachePolicy() CachePolicy {
	if c.Environment.Realtime {
		return CachePolicy{}
	}
	if c.Environment.IsDevelopment() {
		return CachePolicy{TTL: c.Cache.DevelopmentTTL, Revalidate: c.Cache.DevelopmentRevalidate}
	}
	return CachePolicy{TTL: c.Cache.ProductionTTL, Revalidate: c.Cache.ProductionRevalidate}
}

// AutoClearAllowed reports whether both sweeper gates are open
func (c *Config) AutoClearAllowed() bool {
	return c.Environment.IsDevelopment() && c.Environment.AutoClear
}

// Validate returns a MissingSettingsError naming every absent required setting
func (s *ContentSourceConfig) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid content source config: %w", err)
	}

	missing := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		missing = append(missing, fieldErr.Field())
	}
	return &MissingSettingsError{Names: missing}
}

func envBool(getenv func(string) string, key string) (bool, bool) {
	v := getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
