package sweeper

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/metrics"
	"go-content-cache/internal/periodictask"
)

const storageCleanupTimeout = 5 * time.Second

// Options gate and tune the auto-clear sweeper
type Options struct {
	Development bool
	OptIn       bool
	Interval    time.Duration
	Markers     []string
}

// Status is the observable sweeper state
type Status struct {
	Running        bool   `json:"running"`
	IntervalMillis *int64 `json:"intervalMillis"`
}

// AutoClear periodically empties the content cache during development
type AutoClear struct {
	mu      sync.Mutex
	opts    Options
	cache   interfaces.Cache
	storage interfaces.StorageArea
	clock   clock.Clock
	task    *periodictask.PeriodicTask
	logger  *zap.Logger
}

// New creates a sweeper. storage may be nil when no auxiliary storage exists.
func New(opts Options, cache interfaces.Cache, storage interfaces.StorageArea, clk clock.Clock, logger *zap.Logger) *AutoClear {
	return &AutoClear{
		opts:    opts,
		cache:   cache,
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// Start begins the periodic clear when both the development and opt-in flags
// are set. It reports whether the sweeper is running afterwards.
func (a *AutoClear) Start() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.task != nil {
		return true
	}

	if !a.opts.Development || !a.opts.OptIn {
		a.logger.Debug("Auto cache clear not started",
			zap.Bool("development", a.opts.Development),
			zap.Bool("opt_in", a.opts.OptIn))
		return false
	}

	if a.opts.Interval <= 0 {
		a.logger.Error("Auto cache clear not started, interval must be positive",
			zap.Duration("interval", a.opts.Interval))
		return false
	}

	a.task = periodictask.NewWithClock(a.opts.Interval, a.sweep, a.clock)
	a.task.Start()
	metrics.SetAutoClearRunning(true)

	a.logger.Info("Auto cache clear started", zap.Duration("interval", a.opts.Interval))
	return true
}

// Stop cancels the periodic clear; it is safe to call when idle
func (a *AutoClear) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.task == nil {
		return
	}

	a.task.Stop()
	a.task = nil
	metrics.SetAutoClearRunning(false)

	a.logger.Info("Auto cache clear stopped")
}

// Status returns whether the sweeper runs and its interval when it does
func (a *AutoClear) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.task == nil {
		return Status{}
	}

	interval := a.task.Interval().Milliseconds()
	return Status{Running: true, IntervalMillis: &interval}
}

// ClearAll empties the cache and removes auxiliary storage keys containing a
// cache marker. Storage failures are logged and never returned.
func (a *AutoClear) ClearAll() {
	a.cache.Clear()
	metrics.RecordInvalidation("clear")
	a.logger.Info("Cache cleared")

	if a.storage == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageCleanupTimeout)
	defer cancel()

	keys, err := a.storage.Keys(ctx)
	if err != nil {
		a.logger.Warn("Failed to list auxiliary storage keys", zap.Error(err))
		return
	}

	removed := 0
	for _, key := range keys {
		if !a.hasMarker(key) {
			continue
		}
		if err := a.storage.Remove(ctx, key); err != nil {
			a.logger.Warn("Failed to remove auxiliary storage key", zap.String("key", key), zap.Error(err))
			continue
		}
		removed++
	}

	a.logger.Debug("Auxiliary storage cleaned", zap.Int("removed", removed))
}

// ClearPattern removes cache keys containing pattern
func (a *AutoClear) ClearPattern(pattern string) {
	a.cache.Invalidate(pattern)
	metrics.RecordInvalidation("pattern")
	a.logger.Info("Cache invalidated", zap.String("pattern", pattern))
}

func (a *AutoClear) sweep() {
	a.cache.Clear()
	metrics.RecordInvalidation("auto")
	a.logger.Debug("Auto cache clear tick")
}

func (a *AutoClear) hasMarker(key string) bool {
	for _, marker := range a.opts.Markers {
		if marker != "" && strings.Contains(key, marker) {
			return true
		}
	}
	return false
}
