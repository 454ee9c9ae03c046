package adapters

import (
	"context"
	"fmt"
	"time"

	"storefront-api/internal/features/stats/domain"

	"github.com/jmoiron/sqlx"
)

// PostgresStatsRepository runs the dashboard aggregation queries.
type PostgresStatsRepository struct {
	db *sqlx.DB
}

// NewPostgresStatsRepository creates a new PostgresStatsRepository.
func NewPostgresStatsRepository(db *sqlx.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

// StatusCounts returns per-status order counts for orders created at or
// after since.
func (r *PostgresStatsRepository) StatusCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT status, COUNT(*) AS count
		FROM orders
		WHERE created_at >= $1
		GROUP BY status`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// SalesTotals returns the revenue and count of non-cancelled orders created
// at or after since.
func (r *PostgresStatsRepository) SalesTotals(ctx context.Context, since time.Time) (float64, int, error) {
	var row struct {
		TotalSales  float64 `db:"total_sales"`
		TotalOrders int     `db:"total_orders"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT COALESCE(SUM(total), 0) AS total_sales, COUNT(*) AS total_orders
		FROM orders
		WHERE created_at >= $1 AND status <> 'Cancelled'`, since)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to total sales: %w", err)
	}
	return row.TotalSales, row.TotalOrders, nil
}

// CountProducts returns the size of the catalog.
func (r *PostgresStatsRepository) CountProducts(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CategoryProductCounts returns every category annotated with its product
// count.
func (r *PostgresStatsRepository) CategoryProductCounts(ctx context.Context) ([]domain.CategoryStats, error) {
	var rows []struct {
		ID           string `db:"id"`
		DisplayName  string `db:"display_name"`
		Href         string `db:"href"`
		Page         bool   `db:"page"`
		ProductCount int    `db:"product_count"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT c.id, c.display_name, c.href, c.page,
			COUNT(p.id) AS product_count
		FROM categories c
		LEFT JOIN products p ON p.category = c.href
		GROUP BY c.id, c.display_name, c.href, c.page
		ORDER BY c.display_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to count products per category: %w", err)
	}

	categories := make([]domain.CategoryStats, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.CategoryStats{
			ID:           row.ID,
			DisplayName:  row.DisplayName,
			Href:         row.Href,
			Page:         row.Page,
			ProductCount: row.ProductCount,
		})
	}
	return categories, nil
}
