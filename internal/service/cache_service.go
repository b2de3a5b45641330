package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

const (
	// DefaultTopLimit is the size of a ranked listing when none is requested.
	DefaultTopLimit = 6
	// MaxTopLimit bounds ranked listings and the number of distinct cache keys.
	MaxTopLimit = 100
)

const classCachePattern = "classes:*"

// rankLimit resolves a requested top-N size: non-positive means fallback,
// anything above MaxTopLimit is clamped.
func rankLimit(n, fallback int) int {
	if n <= 0 {
		n = fallback
	}
	if n > MaxTopLimit {
		n = MaxTopLimit
	}
	return n
}

func rankingKey(resource string, limit int) string {
	return fmt.Sprintf("%s:top:%d", resource, limit)
}

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService fronts the ranked listings with a TTL cache and records
// hit/miss metrics. A nil or disabled service always misses.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get attempts to retrieve a cached entry. It returns true when the cache was hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordCacheOperation(false, duration)
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	s.metrics.RecordCacheOperation(true, duration)
	return true, nil
}

// Set stores the value in cache.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Invalidate removes cached values for the provided pattern. Failures are
// logged and counted in cache_invalidation_failures_total.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.metrics.RecordCacheInvalidationFailure()
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}

// loadRanked serves a top-N listing from cache and falls back to load on a
// miss, populating the cache afterwards. Cache faults never fail the read.
func loadRanked[T any](ctx context.Context, cache *CacheService, key string, load func() ([]T, error)) ([]T, error) {
	var cached []T
	if hit, err := cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	items, err := load()
	if err != nil {
		return nil, err
	}
	_ = cache.Set(ctx, key, items, 0)
	return items, nil
}
