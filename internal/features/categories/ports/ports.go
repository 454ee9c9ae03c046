package ports

import (
	"context"

	"storefront-api/internal/features/categories/domain"
)

// CategoryService exposes category management to the HTTP layer.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	AddCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, category domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// CategoryRepository is the storage contract for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	// GetByID returns (nil, nil) when no category matches.
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	// ConflictExists reports whether a category other than excludeID
	// (which may be empty) uses the display name or href.
	ConflictExists(ctx context.Context, displayName, href, excludeID string) (bool, error)
	Create(ctx context.Context, category domain.Category) error
	// Update rewrites the category and moves products from oldHref to the
	// category's new href in the same transaction.
	Update(ctx context.Context, category domain.Category, oldHref string) error
	// Delete removes the category and every product (with variants) under
	// its href.
	Delete(ctx context.Context, id, href string) error
}
