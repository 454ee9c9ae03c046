package ports

import (
	"context"

	"storefront-api/internal/features/products/domain"
)

// ProductService exposes catalog operations to the HTTP layer.
type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetByProductID(ctx context.Context, productID string) (*domain.Product, error)
	GetByDesignID(ctx context.Context, designID string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	AddProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, id string, product domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// ProductRepository is the storage contract for products and their variants.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	// GetByProductID, GetByDesignID and GetByID return (nil, nil) when no
	// product matches.
	GetByProductID(ctx context.Context, productID string) (*domain.Product, error)
	GetByDesignID(ctx context.Context, designID string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)

	CategoryExists(ctx context.Context, href string) (bool, error)
	// ProductIDTaken and DesignIDTaken report whether another product
	// (excluding excludeID, which may be empty) already uses the identifier.
	ProductIDTaken(ctx context.Context, productID, excludeID string) (bool, error)
	DesignIDTaken(ctx context.Context, designID, excludeID string) (bool, error)

	Create(ctx context.Context, product domain.Product) error
	// Update replaces the product row and its whole variant set, and
	// rewrites the product identifier on order items that reference it.
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, id string) error
}
