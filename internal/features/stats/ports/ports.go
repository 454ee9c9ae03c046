package ports

import (
	"context"
	"time"

	"storefront-api/internal/features/stats/domain"
)

// StatsService serves the dashboard aggregate.
type StatsService interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}

// StatsRepository runs the aggregation queries backing the dashboard.
type StatsRepository interface {
	// StatusCounts returns the number of orders per status created at or
	// after since.
	StatusCounts(ctx context.Context, since time.Time) (map[string]int, error)
	// SalesTotals returns the revenue and order count of non-cancelled
	// orders created at or after since.
	SalesTotals(ctx context.Context, since time.Time) (float64, int, error)
	CountProducts(ctx context.Context) (int, error)
	// CategoryProductCounts returns every category with the number of
	// products under its href.
	CategoryProductCounts(ctx context.Context) ([]domain.CategoryStats, error)
}
