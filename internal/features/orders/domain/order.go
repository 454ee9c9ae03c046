package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus represents the current state of an order.
type OrderStatus string

const (
	// OrderStatusPending indicates the order is awaiting payment confirmation.
	OrderStatusPending OrderStatus = "Pending"
	// OrderStatusProcessing is the state every newly placed order starts in.
	OrderStatusProcessing OrderStatus = "Processing"
	// OrderStatusConfirmed indicates the order has been accepted for fulfilment.
	OrderStatusConfirmed OrderStatus = "Confirmed"
	// OrderStatusDispatched indicates the order has been handed to a carrier.
	OrderStatusDispatched OrderStatus = "Dispatched"
	// OrderStatusDelivered indicates the order reached the customer.
	OrderStatusDelivered OrderStatus = "Delivered"
	// OrderStatusCancelled indicates the order was cancelled.
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusConfirmed,
		OrderStatusDispatched, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

var (
	// ErrInsufficientStock is returned when a cart references a variant that
	// does not exist or does not have the requested quantity on hand.
	ErrInsufficientStock = errors.New("variant not found or insufficient quantity")
	// ErrOrderNumberTaken is returned when an order insert loses the
	// uniqueness race on the order number.
	ErrOrderNumberTaken = errors.New("order number already taken")
	// ErrOrderNotFound is returned when no order exists with the given number.
	ErrOrderNotFound = errors.New("order not found")
)

// ProductNotFoundError names the offending business product id when a cart
// references a product that does not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %s does not exist", e.ProductID)
}

// Color is a variant color with its display hex code.
type Color struct {
	Name    string `json:"name"`
	HexCode string `json:"hexCode"`
}

// ItemVariant is the variant selection snapshot inside an order item.
type ItemVariant struct {
	// VariantID is the internal id of the purchased variant.
	VariantID string `json:"variantId"`
	// Size is the variant size at time of purchase.
	Size string `json:"size"`
	// Color is the variant color at time of purchase.
	Color Color `json:"color"`
	// Quantity is the number of units purchased.
	Quantity int `json:"quantity"`
}

// OrderItem is one line of an order: a snapshot of a variant purchased at a
// given quantity, price and discount, independent of later product edits.
type OrderItem struct {
	// ID is the internal id of the order item record.
	ID string `json:"id"`
	// ProductID is the business-facing id of the purchased product.
	ProductID string `json:"productId"`
	// ProductDBID is the internal id of the purchased product.
	ProductDBID string `json:"productDBId"`
	// ProductTitle is the product title, joined in when reading orders.
	ProductTitle string `json:"productTitle,omitempty"`
	// Variant is the purchased variant snapshot.
	Variant ItemVariant `json:"variant"`
	// Discount is the discount applied to this line.
	Discount float64 `json:"discount"`
	// Total is the line total at time of purchase.
	Total float64 `json:"total"`
}

// ShippingInfo is the delivery address and contact details for an order.
type ShippingInfo struct {
	Address     string `json:"address"`
	City        string `json:"city"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Zip         string `json:"zip"`
}

// CustomerName returns the customer's full name.
func (s ShippingInfo) CustomerName() string {
	return s.FirstName + " " + s.LastName
}

// Order represents a placed customer order.
type Order struct {
	// ID is the internal id of the order record.
	ID string `json:"id"`
	// OrderNumber is the externally visible 8-digit order number.
	OrderNumber string `json:"orderId"`
	// Status is the current order state.
	Status OrderStatus `json:"status"`
	// ShippingInfo holds the delivery details supplied at placement.
	ShippingInfo ShippingInfo `json:"shippingInfo"`
	// Total is the order total supplied at placement.
	Total float64 `json:"total"`
	// CancelReason is set when the order is cancelled.
	CancelReason string `json:"cancelReason,omitempty"`
	// TrackingID is set when the order is dispatched.
	TrackingID string `json:"trackingId,omitempty"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the order was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
	// Items are the order lines, in the sequence supplied at placement.
	Items []OrderItem `json:"orderItems"`
}

// Cart is a structurally pre-validated order placement request.
type Cart struct {
	// Items are the requested lines, processed in the order supplied.
	Items []OrderItem `json:"items"`
	// ShippingInfo is the delivery record for the new order.
	ShippingInfo ShippingInfo `json:"shippingInfo"`
	// Total is the order total.
	Total float64 `json:"total"`
}

// StatusSummary is the reduced order view served to storefront status checks.
type StatusSummary struct {
	Status       OrderStatus `json:"status"`
	CancelReason string      `json:"cancelReason,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	CustomerName string      `json:"customerName"`
}

// StatusUpdate carries a status transition applied to an existing order.
// A nil field leaves the stored value untouched; a non-nil empty string
// clears it. Cancelling sets the reason and clears the tracking id,
// dispatching sets the tracking id, delivering touches neither, and
// reverting to an earlier state clears both.
type StatusUpdate struct {
	Status       OrderStatus
	CancelReason *string
	TrackingID   *string
}
