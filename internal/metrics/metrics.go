package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Content requests by resource and how they were served (HIT, MISS, BYPASS)
	ContentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_requests_total",
			Help: "Total number of content requests",
		},
		[]string{"resource", "cache_status"},
	)

	ContentFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_errors_total",
			Help: "Total number of failed content source fetches",
		},
		[]string{"resource"},
	)

	ContentFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Duration of content source fetches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "mode"},
	)

	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Total number of cache invalidations",
		},
		[]string{"kind"}, // clear, pattern, auto
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of cache backend errors",
		},
		[]string{"level", "kind"},
	)

	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_keys",
			Help: "Number of keys held by a cache level",
		},
		[]string{"level"},
	)

	// L1 capacity metrics only (BigCache)
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity_bytes",
			Help: "L1 cache capacity in bytes",
		},
		[]string{"level"},
	)

	AutoClearRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_auto_clear_running",
			Help: "1 while the auto-clear sweeper is running",
		},
	)
)

// RecordContentRequest records how a content request was served
func RecordContentRequest(resource, cacheStatus string) {
	ContentRequests.WithLabelValues(resource, cacheStatus).Inc()
}

// RecordFetchError records a failed content source fetch
func RecordFetchError(resource string) {
	ContentFetchErrors.WithLabelValues(resource).Inc()
}

// TimeContentFetch returns a timer function for measuring content source fetches
func TimeContentFetch(resource, mode string) func() {
	timer := prometheus.NewTimer(ContentFetchDuration.WithLabelValues(resource, mode))
	return func() {
		timer.ObserveDuration()
	}
}

// RecordInvalidation records a cache invalidation of the given kind
func RecordInvalidation(kind string) {
	CacheInvalidations.WithLabelValues(kind).Inc()
}

// RecordCacheError records a cache backend error with level and kind
func RecordCacheError(level, kind string) {
	CacheErrors.WithLabelValues(level, kind).Inc()
}

// UpdateCacheKeys updates the number of keys in a cache level
func UpdateCacheKeys(level string, count int64) {
	CacheKeys.WithLabelValues(level).Set(float64(count))
}

// UpdateL1CacheCapacity updates L1 cache capacity metrics
func UpdateL1CacheCapacity(capacity int64) {
	CacheCapacity.WithLabelValues("l1").Set(float64(capacity))
}

// SetAutoClearRunning flips the sweeper state gauge
func SetAutoClearRunning(running bool) {
	if running {
		AutoClearRunning.Set(1)
		return
	}
	AutoClearRunning.Set(0)
}

