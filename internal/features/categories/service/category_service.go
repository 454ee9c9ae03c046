package service

import (
	"context"
	"fmt"
	"regexp"

	"storefront-api/internal/features/categories/domain"
	"storefront-api/internal/features/categories/ports"

	"github.com/google/uuid"
)

// hrefSanitizer strips everything but alphanumerics from category slugs.
var hrefSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// CategoryService handles category management.
type CategoryService struct {
	repo ports.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo ports.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// ListCategories returns all categories.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

// AddCategory creates a new category with a sanitized href and returns it.
func (s *CategoryService) AddCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	taken, err := s.repo.ConflictExists(ctx, category.DisplayName, category.Href, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check category conflict: %w", err)
	}
	if taken {
		return nil, domain.ErrCategoryExists
	}

	category.ID = uuid.NewString()
	category.Href = hrefSanitizer.ReplaceAllString(category.Href, "")

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory rewrites the category and moves its products to the new
// href when the slug changes.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, category domain.Category) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrCategoryNotFound
	}

	taken, err := s.repo.ConflictExists(ctx, category.DisplayName, category.Href, id)
	if err != nil {
		return fmt.Errorf("failed to check category conflict: %w", err)
	}
	if taken {
		return domain.ErrCategoryExists
	}

	category.ID = id
	category.Href = hrefSanitizer.ReplaceAllString(category.Href, "")

	return s.repo.Update(ctx, category, existing.Href)
}

// DeleteCategory removes the category and all products under it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrCategoryNotFound
	}

	return s.repo.Delete(ctx, id, existing.Href)
}
