package service

import (
	"context"
	"fmt"
	"time"

	"storefront-api/internal/features/products/domain"
	"storefront-api/internal/features/products/ports"

	"github.com/google/uuid"
)

// ProductService handles catalog management.
type ProductService struct {
	repo ports.ProductRepository
	now  func() time.Time
}

// NewProductService creates a new ProductService.
func NewProductService(repo ports.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
		now:  time.Now,
	}
}

// ListProducts returns all products with their variants.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// GetByProductID returns the product with the given human-assigned product id.
func (s *ProductService) GetByProductID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// GetByDesignID returns the product with the given design id.
func (s *ProductService) GetByDesignID(ctx context.Context, designID string) (*domain.Product, error) {
	product, err := s.repo.GetByDesignID(ctx, designID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// GetByID returns the product with the given internal id.
func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// ListByCategory returns all products in the given category href.
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

// Search returns products whose product id, title or category contains the
// query, case-insensitively.
func (s *ProductService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return s.repo.Search(ctx, query)
}

// AddProduct creates a new product with its variants. The product's category
// must exist, and both the product id and the design id must be unused.
func (s *ProductService) AddProduct(ctx context.Context, product domain.Product) error {
	if err := s.checkCategory(ctx, product.Category); err != nil {
		return err
	}
	if err := s.checkConflicts(ctx, product, ""); err != nil {
		return err
	}

	now := s.now().UTC()
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now
	for i := range product.Variants {
		product.Variants[i].ID = uuid.NewString()
	}

	return s.repo.Create(ctx, product)
}

// UpdateProduct replaces the product and its variant set. Conflict checks
// exclude the product itself so an unchanged product id or design id is not
// reported as taken.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, product domain.Product) error {
	if err := s.checkConflicts(ctx, product, id); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, product.Category); err != nil {
		return err
	}

	product.ID = id
	product.UpdatedAt = s.now().UTC()
	for i := range product.Variants {
		product.Variants[i].ID = uuid.NewString()
	}

	return s.repo.Update(ctx, product)
}

// DeleteProduct removes the product and all of its variants.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) checkCategory(ctx context.Context, href string) error {
	exists, err := s.repo.CategoryExists(ctx, href)
	if err != nil {
		return fmt.Errorf("failed to check category %s: %w", href, err)
	}
	if !exists {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (s *ProductService) checkConflicts(ctx context.Context, product domain.Product, excludeID string) error {
	taken, err := s.repo.ProductIDTaken(ctx, product.ProductID, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check product id %s: %w", product.ProductID, err)
	}
	if taken {
		return &domain.ConflictError{Field: "product ID"}
	}

	taken, err = s.repo.DesignIDTaken(ctx, product.DesignID, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check design id %s: %w", product.DesignID, err)
	}
	if taken {
		return &domain.ConflictError{Field: "design ID"}
	}
	return nil
}
