package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-content-cache/internal/cache"
	"go-content-cache/internal/cache/l1"
	"go-content-cache/internal/cache/l2"
	"go-content-cache/internal/cache/memory"
	"go-content-cache/internal/cache/multi"
	"go-content-cache/internal/cache/noop"
	"go-content-cache/internal/config"
	"go-content-cache/internal/content"
	"go-content-cache/internal/httpserver"
	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/sanity"
	"go-content-cache/internal/storage"
	"go-content-cache/internal/sweeper"
)

// CompositionRoot holds all application dependencies and is the single owner
// of the process-wide cache and sweeper.
type CompositionRoot struct {
	// Configuration
	Config *config.Config
	Logger *zap.Logger
	Clock  clock.Clock

	loggerMode string

	// Cache components
	Cache       interfaces.Cache
	L1Cache     interfaces.Cache
	L2Cache     *l2.KeyDBCache
	KeyDBClient *l2.RedisKeyDbClient
	KeyBuilder  interfaces.KeyBuilder
	Storage     interfaces.StorageArea

	// Services
	Clients        *sanity.Clients
	ContentService *content.Service
	AutoClear      *sweeper.AutoClear
	HTTPServer     *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration (cache policy, content source, sweeper gates)
// 3. Cache components (primary store, optional KeyDB tier, auxiliary storage)
// 4. Services (content source clients, content service, sweeper)
// 5. HTTP Server (uses all above components)
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{Clock: clock.New()}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	root.initServices()
	root.initHTTPServer()

	return root, nil
}

// initLogger initializes the bootstrap logger from APP_ENV; loadConfig
// replaces it once the configured mode is known
func (r *CompositionRoot) initLogger() error {
	mode := config.ModeProduction
	if strings.EqualFold(os.Getenv("APP_ENV"), config.ModeDevelopment) {
		mode = config.ModeDevelopment
	}
	return r.useLogger(mode)
}

// useLogger switches to the logger for mode; development mode logs human-readable output
func (r *CompositionRoot) useLogger(mode string) error {
	if r.Logger != nil && r.loggerMode == mode {
		return nil
	}

	logger, err := newLogger(mode)
	if err != nil {
		return err
	}

	if r.Logger != nil {
		_ = r.Logger.Sync()
	}
	r.Logger = logger
	r.loggerMode = mode
	return nil
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == config.ModeDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig loads the application configuration and aligns the logger with its mode
func (r *CompositionRoot) loadConfig() error {
	cfg, err := config.LoadConfig(GetConfigPath(), r.Logger)
	if err != nil {
		return err
	}

	r.Config = cfg
	return r.useLogger(cfg.Environment.Mode)
}

// initCacheComponents initializes all cache-related components
func (r *CompositionRoot) initCacheComponents() error {
	r.KeyBuilder = cache.NewKeyBuilder()

	if err := r.initL1Cache(); err != nil {
		return fmt.Errorf("failed to initialize L1 cache: %w", err)
	}

	r.initKeyDB()

	if r.L2Cache != nil {
		r.Cache = multi.NewMultiCache([]interfaces.Cache{r.L1Cache, r.L2Cache}, r.Logger)
	} else {
		r.Cache = r.L1Cache
	}
	return nil
}

// initL1Cache initializes the in-process store selected by the cache policy
func (r *CompositionRoot) initL1Cache() error {
	policy := r.Config.CachePolicy()

	switch {
	case policy.TTL <= 0:
		r.L1Cache = noop.NewNoOpCache()
		r.Logger.Info("Caching disabled (real-time mode)")
	case r.Config.Cache.Backend == config.BackendBigCache:
		bigCache, err := l1.NewBigCache(&r.Config.Cache.BigCache, policy.TTL, r.Clock, r.Logger)
		if err != nil {
			return err
		}
		r.L1Cache = bigCache
		r.Logger.Info("BigCache (L1) initialized",
			zap.Int("size_mb", r.Config.Cache.BigCache.Size),
			zap.Duration("ttl", policy.TTL))
	default:
		store := memory.NewCacheWithClock(policy.TTL, r.Clock, r.Logger)
		store.StartPurge(policy.TTL)
		r.L1Cache = store
		r.Logger.Info("Memory cache (L1) initialized", zap.Duration("ttl", policy.TTL))
	}
	return nil
}

// initKeyDB connects the shared KeyDB tier and the auxiliary storage area.
// Connection failures degrade to an in-process only setup.
func (r *CompositionRoot) initKeyDB() {
	keydbCfg := &r.Config.Cache.KeyDB
	if !keydbCfg.Enabled {
		r.Logger.Info("KeyDB (L2) disabled")
		return
	}

	keydbURL := GetKeyDBURL(r.Logger)
	client, err := l2.NewRedisKeyDbClient(keydbCfg, keydbURL, r.Logger)
	if err != nil {
		r.Logger.Warn("Failed to connect to KeyDB, continuing without L2 cache and auxiliary storage",
			zap.Error(err))
		return
	}

	r.KeyDBClient = client
	r.Storage = storage.NewKeyDBArea(client, r.Config.AuxiliaryStorage.KeyPrefix)

	policy := r.Config.CachePolicy()
	if policy.TTL > 0 {
		r.L2Cache = l2.NewKeyDBCache(keydbCfg, client, policy.TTL, r.Clock, r.Logger)
		r.Logger.Info("KeyDB (L2) initialized", zap.String("key_prefix", keydbCfg.KeyPrefix))
	}
}

// initServices initializes application services
func (r *CompositionRoot) initServices() {
	source := &r.Config.ContentSource
	httpClient := &http.Client{Timeout: source.Timeout}

	r.Clients = &sanity.Clients{
		Published: sanity.NewPublishedClient(source, httpClient, r.Logger),
		Preview:   sanity.NewPreviewClient(source, httpClient, r.Logger),
	}

	r.ContentService = content.NewService(source, r.Cache, r.KeyBuilder, r.Clients, r.Logger)

	r.AutoClear = sweeper.New(sweeper.Options{
		Development: r.Config.Environment.IsDevelopment(),
		OptIn:       r.Config.Environment.AutoClear,
		Interval:    r.Config.AutoClear.Interval,
		Markers:     r.Config.AutoClear.Markers,
	}, r.Cache, r.Storage, r.Clock, r.Logger)

	if r.Config.AutoClearAllowed() {
		r.AutoClear.Start()
	}
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() {
	r.HTTPServer = httpserver.NewServer(r.ContentService, r.AutoClear, r.Config.CachePolicy(), r.Logger)
}

// Cleanup stops background work and releases cache resources
func (r *CompositionRoot) Cleanup() error {
	var errs []error

	if r.AutoClear != nil {
		r.AutoClear.Stop()
	}

	if closer, ok := r.L1Cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L1 cache: %w", err))
		}
	}

	// The L2 cache and auxiliary storage share this client
	if r.KeyDBClient != nil {
		if err := r.KeyDBClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close KeyDB client: %w", err))
		}
	}

	if r.Logger != nil {
		// Sync on console sinks returns EINVAL on Linux
		_ = r.Logger.Sync()
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
