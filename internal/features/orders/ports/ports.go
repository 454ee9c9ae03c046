package ports

import (
	"context"

	"storefront-api/internal/features/orders/domain"
)

// OrderService defines the primary port for order operations.
type OrderService interface {
	// PlaceOrder validates and persists a new order, consuming variant stock
	// atomically. Returns the assigned 8-digit order number.
	PlaceOrder(ctx context.Context, cart domain.Cart) (string, error)
	// GetOrder retrieves an order with its items by order number.
	GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error)
	// ListOrders retrieves every order with its items.
	ListOrders(ctx context.Context) ([]domain.Order, error)
	// ListOrdersByStatus retrieves orders in the given state.
	ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	// DeleteOrder removes an order together with its items.
	DeleteOrder(ctx context.Context, orderNumber string) error
	// UpdateStatus transitions an order to a new state.
	UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, cancelReason, trackingID string) error
	// GetOrderStatus returns the reduced status view of an order.
	GetOrderStatus(ctx context.Context, orderNumber string) (*domain.StatusSummary, error)
}

// OrderRepository defines the secondary port for order storage.
type OrderRepository interface {
	// ProductExists reports whether a product with the given business id exists.
	ProductExists(ctx context.Context, productID string) (bool, error)
	// OrderNumberExists reports whether an order already uses the given number.
	OrderNumberExists(ctx context.Context, orderNumber string) (bool, error)
	// CreateOrder persists the order and its items and decrements each
	// referenced variant's stock in a single transaction. It returns
	// domain.ErrInsufficientStock when any variant is unknown or short, and
	// domain.ErrOrderNumberTaken when the order number loses the uniqueness
	// race; in both cases nothing is persisted.
	CreateOrder(ctx context.Context, order *domain.Order) error
	// GetByNumber retrieves an order with its items, or nil if absent.
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	// List retrieves all orders with their items, newest first.
	List(ctx context.Context) ([]domain.Order, error)
	// ListByStatus retrieves orders in the given state, newest first.
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	// Delete removes an order and its items transactionally.
	// Returns domain.ErrOrderNotFound when the number is unknown.
	Delete(ctx context.Context, orderNumber string) error
	// UpdateStatus applies a status transition.
	// Returns domain.ErrOrderNotFound when the number is unknown.
	UpdateStatus(ctx context.Context, orderNumber string, update domain.StatusUpdate) error
}
