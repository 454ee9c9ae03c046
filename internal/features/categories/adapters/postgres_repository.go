package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-api/internal/features/categories/domain"

	"github.com/jmoiron/sqlx"
)

type categoryRow struct {
	ID          string `db:"id"`
	DisplayName string `db:"display_name"`
	Href        string `db:"href"`
	Page        bool   `db:"page"`
}

func (r categoryRow) toDomain() domain.Category {
	return domain.Category{
		ID:          r.ID,
		DisplayName: r.DisplayName,
		Href:        r.Href,
		Page:        r.Page,
	}
}

// PostgresCategoryRepository persists categories in Postgres.
type PostgresCategoryRepository struct {
	db *sqlx.DB
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository.
func NewPostgresCategoryRepository(db *sqlx.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// List returns all categories.
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, display_name, href, page FROM categories ORDER BY display_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.toDomain())
	}
	return categories, nil
}

// GetByID returns the category with the given id, or nil.
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var row categoryRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, display_name, href, page FROM categories WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	category := row.toDomain()
	return &category, nil
}

// ConflictExists reports whether another category uses the name or href.
func (r *PostgresCategoryRepository) ConflictExists(ctx context.Context, displayName, href, excludeID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE (display_name = $1 OR href = $2) AND id <> $3
		)`, displayName, href, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check category conflict: %w", err)
	}
	return exists, nil
}

// Create inserts a new category.
func (r *PostgresCategoryRepository) Create(ctx context.Context, category domain.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, display_name, href, page)
		VALUES ($1, $2, $3, $4)`,
		category.ID, category.DisplayName, category.Href, category.Page)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// Update rewrites the category and re-homes its products under the new href.
func (r *PostgresCategoryRepository) Update(ctx context.Context, category domain.Category, oldHref string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE categories SET display_name = $1, href = $2, page = $3
		WHERE id = $4`,
		category.DisplayName, category.Href, category.Page, category.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET category = $1 WHERE category = $2`,
		category.Href, oldHref); err != nil {
		return fmt.Errorf("failed to re-home products: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category update: %w", err)
	}
	return nil
}

// Delete removes the category and cascades over its products and their
// variants in one transaction.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id, href string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM product_variants
		WHERE product_id IN (SELECT id FROM products WHERE category = $1)`,
		href); err != nil {
		return fmt.Errorf("failed to delete category variants: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM products WHERE category = $1`, href); err != nil {
		return fmt.Errorf("failed to delete category products: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return domain.ErrCategoryNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category deletion: %w", err)
	}
	return nil
}
