package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"refurb-tracker/internal/repositories"
	apperrors "refurb-tracker/pkg/errors"
	"refurb-tracker/pkg/types"
)

// DashboardCacheKey сбрасывается при любом изменении таблиц.
const DashboardCacheKey = "dashboard:stats"

type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*types.DashboardStats, error)
}

type DashboardService struct {
	repo   repositories.DashboardRepositoryInterface
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger

	// растёт при каждом сбросе кэша; расчёт, переживший сброс, в кэш не пишется
	generation atomic.Uint64
}

func NewDashboardService(repo repositories.DashboardRepositoryInterface, cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// GetStats отдаёт агрегаты из кэша; кэш недоступен - считаем из базы.
func (s *DashboardService) GetStats(ctx context.Context) (*types.DashboardStats, error) {
	cached, err := s.cache.Get(ctx, DashboardCacheKey)
	if err == nil {
		var stats types.DashboardStats
		if jsonErr := json.Unmarshal([]byte(cached), &stats); jsonErr == nil {
			return &stats, nil
		}
		s.logger.Warn("повреждённая запись в кэше", zap.String("key", DashboardCacheKey))
	} else if !errors.Is(err, apperrors.ErrCacheMiss) {
		s.logger.Warn("кэш недоступен", zap.Error(err))
	}

	generation := s.generation.Load()
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Error("Ошибка при расчёте статистики", zap.Error(err))
		return nil, err
	}

	s.store(ctx, generation, stats)
	return stats, nil
}

// Invalidate вызывается перед удалением ключа из кэша при изменении данных.
func (s *DashboardService) Invalidate() {
	s.generation.Add(1)
}

func (s *DashboardService) store(ctx context.Context, generation uint64, stats *types.DashboardStats) {
	if s.generation.Load() != generation {
		s.logger.Debug("данные изменились во время расчёта, статистика не кэшируется")
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, DashboardCacheKey, payload, s.ttl); err != nil {
		s.logger.Warn("не удалось записать статистику в кэш", zap.Error(err))
		return
	}
	// сброс между проверкой и записью
	if s.generation.Load() != generation {
		if err := s.cache.Del(ctx, DashboardCacheKey); err != nil {
			s.logger.Warn("не удалось сбросить устаревшую статистику", zap.Error(err))
		}
	}
}
