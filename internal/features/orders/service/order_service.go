package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront-api/internal/core/logger"
	"storefront-api/internal/features/orders/domain"
	"storefront-api/internal/features/orders/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxNumberAttempts bounds the allocator's collision retries. The timestamp
// slice collides only when two placements land in the same millisecond, so a
// handful of resamples is plenty before giving up.
const maxNumberAttempts = 10

// maxPlaceAttempts bounds whole-placement retries after losing the order
// number uniqueness race at insert time.
const maxPlaceAttempts = 3

// ErrOrderNumberExhausted is returned when no unused order number could be
// found within the attempt budget.
var ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")

// ErrInvalidStatus is returned when a status transition names an unknown state.
var ErrInvalidStatus = errors.New("invalid order status")

// OrderService handles order placement and the order lifecycle.
type OrderService struct {
	repo ports.OrderRepository
	// now samples the clock for order number candidates; injectable for tests.
	now func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(repo ports.OrderRepository) *OrderService {
	return &OrderService{
		repo: repo,
		now:  time.Now,
	}
}

// PlaceOrder validates the cart and persists the order atomically.
//
// Product existence is checked up front so an unknown product id aborts the
// placement naming the offending id before anything is written. Stock
// sufficiency is enforced inside the repository transaction via a conditional
// decrement, so two concurrent placements can never drive a variant negative.
func (s *OrderService) PlaceOrder(ctx context.Context, cart domain.Cart) (string, error) {
	for _, item := range cart.Items {
		exists, err := s.repo.ProductExists(ctx, item.ProductID)
		if err != nil {
			return "", fmt.Errorf("failed to check product %s: %w", item.ProductID, err)
		}
		if !exists {
			return "", &domain.ProductNotFoundError{ProductID: item.ProductID}
		}
	}

	for attempt := 0; attempt < maxPlaceAttempts; attempt++ {
		orderNumber, err := s.allocateOrderNumber(ctx)
		if err != nil {
			return "", err
		}

		order := s.buildOrder(orderNumber, cart)

		err = s.repo.CreateOrder(ctx, order)
		if errors.Is(err, domain.ErrOrderNumberTaken) {
			// Lost the uniqueness race against a concurrent placement that
			// sampled the same millisecond. Re-allocate and try again.
			logger.Get().Warn("Order number collision on insert",
				zap.String("order_number", orderNumber),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			return "", err
		}

		return orderNumber, nil
	}

	return "", ErrOrderNumberExhausted
}

// allocateOrderNumber mints an 8-digit numeric order number that is unused at
// the instant of the check. The candidate is the first two digits of the
// current Unix millisecond timestamp concatenated with its last six, so
// successive calls differ unless they land in the same millisecond.
//
// Uniqueness at check time is advisory only; the UNIQUE constraint on the
// orders table is the final backstop, handled by PlaceOrder's insert retry.
func (s *OrderService) allocateOrderNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		candidate := orderNumberFromTime(s.now())

		exists, err := s.repo.OrderNumberExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check order number %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrOrderNumberExhausted
}

// orderNumberFromTime derives the 8-digit candidate from a timestamp.
func orderNumberFromTime(t time.Time) string {
	ts := strconv.FormatInt(t.UnixMilli(), 10)
	return ts[:2] + ts[len(ts)-6:]
}

// buildOrder assembles the order record for a validated cart.
func (s *OrderService) buildOrder(orderNumber string, cart domain.Cart) *domain.Order {
	now := s.now()

	items := make([]domain.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		item.ID = uuid.New().String()
		items[i] = item
	}

	return &domain.Order{
		ID:           uuid.New().String(),
		OrderNumber:  orderNumber,
		Status:       domain.OrderStatusProcessing,
		ShippingInfo: cart.ShippingInfo,
		Total:        cart.Total,
		CreatedAt:    now,
		UpdatedAt:    now,
		Items:        items,
	}
}

// GetOrder retrieves an order with its items by order number.
func (s *OrderService) GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders retrieves every order with its items.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// ListOrdersByStatus retrieves orders in the given state.
func (s *OrderService) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByStatus(ctx, status)
}

// DeleteOrder removes an order together with its items.
func (s *OrderService) DeleteOrder(ctx context.Context, orderNumber string) error {
	return s.repo.Delete(ctx, orderNumber)
}

// UpdateStatus transitions an order to a new state, applying the
// field-clearing rules for cancellation and dispatch.
func (s *OrderService) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, cancelReason, trackingID string) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	empty := ""
	update := domain.StatusUpdate{Status: status}
	switch status {
	case domain.OrderStatusCancelled:
		update.CancelReason = &cancelReason
		update.TrackingID = &empty
	case domain.OrderStatusDispatched:
		update.TrackingID = &trackingID
	case domain.OrderStatusDelivered:
		// Keep the stored tracking id and cancel reason untouched.
	default:
		update.CancelReason = &empty
		update.TrackingID = &empty
	}

	return s.repo.UpdateStatus(ctx, orderNumber, update)
}

// GetOrderStatus returns the reduced status view of an order.
func (s *OrderService) GetOrderStatus(ctx context.Context, orderNumber string) (*domain.StatusSummary, error) {
	order, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	return &domain.StatusSummary{
		Status:       order.Status,
		CancelReason: order.CancelReason,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
		CustomerName: order.ShippingInfo.CustomerName(),
	}, nil
}
