package content

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"go-content-cache/internal/cache"
	"go-content-cache/internal/config"
	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/metrics"
	"go-content-cache/internal/models"
)

// Service serves catalog content through the shared cache
type Service struct {
	source  *config.ContentSourceConfig
	cache   interfaces.Cache
	keys    interfaces.KeyBuilder
	clients interfaces.ClientSelector
	logger  *zap.Logger
}

// NewService creates a content service
func NewService(
	source *config.ContentSourceConfig,
	store interfaces.Cache,
	keys interfaces.KeyBuilder,
	clients interfaces.ClientSelector,
	logger *zap.Logger,
) *Service {
	return &Service{
		source:  source,
		cache:   store,
		keys:    keys,
		clients: clients,
		logger:  logger,
	}
}

// request describes one logical content read
type request struct {
	resource   string
	identifier string
	query      string
	params     map[string]interface{}
}

// AllCakes returns every cake, newest first
func (s *Service) AllCakes(ctx context.Context, preview bool) ([]models.Cake, error) {
	return fetchList(ctx, s, request{
		resource: ResourceAllCakes,
		query:    allCakesQuery,
	}, preview)
}

// FeaturedCakes returns up to six featured cakes, newest first
func (s *Service) FeaturedCakes(ctx context.Context, preview bool) ([]models.Cake, error) {
	return fetchList(ctx, s, request{
		resource: ResourceFeaturedCakes,
		query:    featuredCakesQuery,
	}, preview)
}

// CakesByCategory returns the cakes in category, newest first
func (s *Service) CakesByCategory(ctx context.Context, category string, preview bool) ([]models.Cake, error) {
	return fetchList(ctx, s, request{
		resource:   ResourceCakesByCategory,
		identifier: category,
		query:      cakesByCategoryQuery,
		params:     map[string]interface{}{"category": category},
	}, preview)
}

// CakeBySlug returns the cake with slug, or nil when there is none
func (s *Service) CakeBySlug(ctx context.Context, slug string, preview bool) (*models.Cake, error) {
	return readThrough(ctx, s, request{
		resource:   ResourceCakeBySlug,
		identifier: slug,
		query:      cakeBySlugQuery,
		params:     map[string]interface{}{"slug": slug},
	}, preview, func(c *models.Cake) bool { return c != nil })
}

// fetchList reads a list resource; the result is never nil
func fetchList(ctx context.Context, s *Service, req request, preview bool) ([]models.Cake, error) {
	cakes, err := readThrough(ctx, s, req, preview, func([]models.Cake) bool { return true })
	if cakes == nil {
		cakes = []models.Cake{}
	}
	return cakes, err
}

// readThrough serves req from the cache or the content source. Only a
// configuration error is returned; fetch failures yield the zero value.
func readThrough[T any](ctx context.Context, s *Service, req request, preview bool, cacheable func(T) bool) (T, error) {
	var zero T

	if err := s.source.Validate(); err != nil {
		return zero, err
	}

	key := s.keys.Build(req.resource, preview, req.identifier)

	if !preview {
		if entry, found := s.cache.Get(key); found {
			var cached T
			err := json.Unmarshal(entry.Data, &cached)
			if err == nil {
				metrics.RecordContentRequest(req.resource, string(models.CacheStatusHit))
				return cached, nil
			}
			s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		}
	}

	status, mode := models.CacheStatusMiss, cache.ModePublished
	if preview {
		status, mode = models.CacheStatusBypass, cache.ModePreview
	}
	metrics.RecordContentRequest(req.resource, string(status))

	var result T
	done := metrics.TimeContentFetch(req.resource, mode)
	err := s.clients.Client(preview).Fetch(ctx, req.query, req.params, &result)
	done()

	if err != nil {
		s.logger.Error("Content fetch failed",
			zap.String("resource", req.resource),
			zap.String("key", key),
			zap.Bool("preview", preview),
			zap.Error(err))
		metrics.RecordFetchError(req.resource)
		return zero, nil
	}

	if !preview && cacheable(result) {
		data, err := json.Marshal(result)
		if err != nil {
			s.logger.Error("Failed to encode content for cache", zap.String("key", key), zap.Error(err))
			return result, nil
		}
		s.cache.Set(key, data)
	}

	return result, nil
}
