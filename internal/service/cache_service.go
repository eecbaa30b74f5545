package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
}

// CalendarCacheKey is the key of one person's month view.
func CalendarCacheKey(personID, month string) string {
	return fmt.Sprintf("calendar:%s:%s", personID, month)
}

// CalendarCachePattern matches every cached month of a person.
func CalendarCachePattern(personID string) string {
	return fmt.Sprintf("calendar:%s:*", personID)
}

// BranchDashboardKey is the key of a branch summary.
func BranchDashboardKey(branchID string) string {
	return "dashboard:branch:" + branchID
}

// PersonDashboardKey is the key of one person's monthly summary.
func PersonDashboardKey(personID, month string) string {
	return fmt.Sprintf("dashboard:person:%s:%s", personID, month)
}

// PersonDashboardPattern matches every cached summary of a person.
func PersonDashboardPattern(personID string) string {
	return fmt.Sprintf("dashboard:person:%s:*", personID)
}

// CacheService wraps the cache repository with metrics and logging.
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
		defaultTTL = 10 * time.Minute
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

// Get reads key into dest and reports whether the cache was hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return true, nil
}

// Set stores value under key. A zero ttl uses the default.
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

// Invalidate removes every key matching pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	n, err := s.repo.DeleteByPattern(ctx, pattern)
	s.metrics.RecordInvalidation(err)
	if err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	s.logger.Debug("cache invalidated", zap.String("pattern", pattern), zap.Int("keys", n))
	return nil
}

// cached serves key from the cache or calls load and stores its result.
// Cache failures never fail the read.
func cached[T any](ctx context.Context, cache *CacheService, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, bool, error) {
	var value T
	if cache.Enabled() {
		if hit, err := cache.Get(ctx, key, &value); err == nil && hit {
			return value, true, nil
		}
	}
	value, err := load(ctx)
	if err != nil {
		return value, false, err
	}
	if cache.Enabled() {
		_ = cache.Set(ctx, key, value, ttl)
	}
	return value, false, nil
}
