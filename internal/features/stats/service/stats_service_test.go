package service

import (
	"context"
	"testing"
	"time"

	"storefront-api/internal/core/cache"
	"storefront-api/internal/features/stats/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStatsRepository is a mock implementation of ports.StatsRepository.
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) StatusCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockStatsRepository) SalesTotals(ctx context.Context, since time.Time) (float64, int, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *MockStatsRepository) CountProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CategoryProductCounts(ctx context.Context) ([]domain.CategoryStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryStats), args.Error(1)
}

func newTestCache(t *testing.T) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

func stubAggregates(repo *MockStatsRepository) {
	repo.On("StatusCounts", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(map[string]int{
			"Processing": 3,
			"Delivered":  2,
			"Cancelled":  1,
		}, nil)
	repo.On("SalesTotals", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(2495.0, 5, nil)
	repo.On("CountProducts", mock.Anything).Return(12, nil)
	repo.On("CategoryProductCounts", mock.Anything).
		Return([]domain.CategoryStats{
			{DisplayName: "Tees", Href: "tees", ProductCount: 8},
			{DisplayName: "Hoodies", Href: "hoodies", ProductCount: 4},
		}, nil)
}

func TestGetStats(t *testing.T) {
	t.Run("BuildsAggregate", func(t *testing.T) {
		repo := new(MockStatsRepository)
		cacheAdapter, _ := newTestCache(t)
		svc := NewStatsService(repo, cacheAdapter)
		stubAggregates(repo)

		stats, err := svc.GetStats(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 6, stats.Orders.TotalOrders)
		assert.Equal(t, 3, stats.Orders.ProcessingOrders)
		assert.Equal(t, 1, stats.Orders.CancelledOrders)
		assert.Equal(t, 2495.0, stats.Sales.TotalSales)
		assert.Equal(t, 5, stats.Sales.TotalOrders)
		assert.Equal(t, 12, stats.Products.TotalProducts)
		require.Len(t, stats.Categories, 2)
		assert.Equal(t, 8, stats.Categories[0].ProductCount)
	})

	t.Run("ServesSecondCallFromCache", func(t *testing.T) {
		repo := new(MockStatsRepository)
		cacheAdapter, _ := newTestCache(t)
		svc := NewStatsService(repo, cacheAdapter)
		stubAggregates(repo)

		_, err := svc.GetStats(context.Background())
		require.NoError(t, err)

		second, err := svc.GetStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 6, second.Orders.TotalOrders)

		// Only the first call should have hit the repository.
		repo.AssertNumberOfCalls(t, "StatusCounts", 1)
		repo.AssertNumberOfCalls(t, "SalesTotals", 1)
	})

	t.Run("RebuildsAfterTTL", func(t *testing.T) {
		repo := new(MockStatsRepository)
		cacheAdapter, mr := newTestCache(t)
		svc := NewStatsService(repo, cacheAdapter)
		stubAggregates(repo)

		_, err := svc.GetStats(context.Background())
		require.NoError(t, err)

		mr.FastForward(61 * time.Second)

		_, err = svc.GetStats(context.Background())
		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "StatusCounts", 2)
	})

	t.Run("WindowIsThirtyDays", func(t *testing.T) {
		repo := new(MockStatsRepository)
		cacheAdapter, _ := newTestCache(t)
		svc := NewStatsService(repo, cacheAdapter)

		frozen := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return frozen }

		repo.On("StatusCounts", mock.Anything, frozen.AddDate(0, 0, -30)).
			Return(map[string]int{}, nil)
		repo.On("SalesTotals", mock.Anything, frozen.AddDate(0, 0, -30)).
			Return(0.0, 0, nil)
		repo.On("CountProducts", mock.Anything).Return(0, nil)
		repo.On("CategoryProductCounts", mock.Anything).
			Return([]domain.CategoryStats{}, nil)

		_, err := svc.GetStats(context.Background())
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
