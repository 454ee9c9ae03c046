package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-api/internal/core/cache"
	"storefront-api/internal/core/logger"
	"storefront-api/internal/features/stats/domain"
	"storefront-api/internal/features/stats/ports"

	"go.uber.org/zap"
)

// statsCacheKey is where the serialized dashboard aggregate lives in Redis.
const statsCacheKey = "stats:dashboard"

// statsCacheTTL keeps the dashboard fresh without hammering the database.
const statsCacheTTL = 60 * time.Second

// statsWindow is how far back the dashboard looks.
const statsWindow = 30 * 24 * time.Hour

// StatsService serves the dashboard aggregate through a cache-aside layer.
type StatsService struct {
	repo  ports.StatsRepository
	cache cache.Cache
	now   func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo ports.StatsRepository, cache cache.Cache) *StatsService {
	return &StatsService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

// GetStats returns the dashboard aggregate, preferring the cached copy.
// Cache failures are logged and fall through to the database.
func (s *StatsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	cached, err := s.cache.Get(ctx, statsCacheKey)
	if err == nil {
		var stats domain.Stats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
		logger.Get().Warn("Discarding unreadable cached stats", zap.Error(err))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Get().Warn("Stats cache read failed", zap.Error(err))
	}

	stats, err := s.buildStats(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL); err != nil {
			logger.Get().Warn("Stats cache write failed", zap.Error(err))
		}
	}

	return stats, nil
}

func (s *StatsService) buildStats(ctx context.Context) (*domain.Stats, error) {
	since := s.now().Add(-statsWindow)

	counts, err := s.repo.StatusCounts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	totalOrders := 0
	for _, n := range counts {
		totalOrders += n
	}

	totalSales, salesOrders, err := s.repo.SalesTotals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to total sales: %w", err)
	}

	totalProducts, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	categories, err := s.repo.CategoryProductCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products per category: %w", err)
	}

	return &domain.Stats{
		Orders: domain.OrderStats{
			TotalOrders:      totalOrders,
			PendingOrder:     counts["Pending"],
			ProcessingOrders: counts["Processing"],
			CancelledOrders:  counts["Cancelled"],
			ConfirmedOrders:  counts["Confirmed"],
			DispatchedOrders: counts["Dispatched"],
			DeliveredOrders:  counts["Delivered"],
		},
		Sales: domain.SalesStats{
			TotalSales:  totalSales,
			TotalOrders: salesOrders,
		},
		Products: domain.ProductStats{
			TotalProducts: totalProducts,
		},
		Categories: categories,
	}, nil
}
