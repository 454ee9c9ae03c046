package handler

import (
	"errors"
	"fmt"
	"net/http"

	"storefront-api/internal/core/logger"
	"storefront-api/internal/features/orders/domain"
	"storefront-api/internal/features/orders/ports"
	"storefront-api/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// orderNumberLength is the fixed length of externally visible order numbers.
const orderNumberLength = 8

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// PlaceOrder handles POST /api/order/placeOrder.
// @Summary Place a new order
// @Description Validates the cart, decrements stock and creates the order atomically.
// @Tags Orders
// @Accept json
// @Produce json
// @Param cart body domain.Cart true "Cart contents"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/order/placeOrder [post]
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var cart domain.Cart
	if err := c.BodyParser(&cart); err != nil {
		return incompleteData(c)
	}

	if !cartComplete(cart) {
		return incompleteData(c)
	}

	orderNumber, err := h.service.PlaceOrder(c.Context(), cart)
	if err != nil {
		var notFound *domain.ProductNotFoundError
		switch {
		case errors.As(err, &notFound):
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s does not exist", notFound.ProductID),
			})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Variant not found or insufficient quantity",
			})
		default:
			logger.Get().Error("Failed to place order", zap.Error(err))
			return internalError(c)
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":     "Order placed successfully",
		"orderNumber": orderNumber,
	})
}

// GetOrder handles GET /api/order/getOrder/:orderId.
// @Summary Get an order
// @Tags Orders
// @Produce json
// @Param orderId path string true "Order number"
// @Success 200 {object} map[string]domain.Order
// @Failure 404 {object} map[string]string
// @Router /api/order/getOrder/{orderId} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderNumber := c.Params("orderId")
	if len(orderNumber) != orderNumberLength {
		return orderNotFound(c)
	}

	order, err := h.service.GetOrder(c.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return orderNotFound(c)
		}
		logger.Get().Error("Failed to fetch order",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		return internalError(c)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"order": order})
}

// GetAllOrders handles GET /api/order/getAllOrders.
// @Summary List all orders
// @Tags Orders
// @Produce json
// @Success 200 {object} map[string][]domain.Order
// @Failure 500 {object} map[string]string
// @Router /api/order/getAllOrders [get]
func (h *OrderHandler) GetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.Context())
	if err != nil {
		logger.Get().Error("Failed to list orders", zap.Error(err))
		return internalError(c)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"orders": orders})
}

// GetOrdersByStatus handles GET /api/order/getOrdersByStatus?status=.
// @Summary List orders filtered by status
// @Tags Orders
// @Produce json
// @Param status query string true "Order status"
// @Success 200 {array} domain.Order
// @Failure 400 {object} map[string]string
// @Router /api/order/getOrdersByStatus [get]
func (h *OrderHandler) GetOrdersByStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return incompleteData(c)
	}

	orders, err := h.service.ListOrdersByStatus(c.Context(), domain.OrderStatus(status))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid order status",
			})
		}
		logger.Get().Error("Failed to list orders by status",
			zap.String("status", status),
			zap.Error(err),
		)
		return internalError(c)
	}

	return c.Status(http.StatusOK).JSON(orders)
}

// DeleteOrder handles DELETE /api/order/deleteOrder/:orderId.
// @Summary Delete an order
// @Tags Orders
// @Produce json
// @Param orderId path string true "Order number"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/order/deleteOrder/{orderId} [delete]
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	orderNumber := c.Params("orderId")
	if len(orderNumber) != orderNumberLength {
		return orderNotFound(c)
	}

	if err := h.service.DeleteOrder(c.Context(), orderNumber); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"message": "No order exists with this orderId",
			})
		}
		logger.Get().Error("Failed to delete order",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		return internalError(c)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Order has been deleted"})
}

// UpdateStatus handles PUT /api/order/updateStatus/:orderId?newStatus=.
// @Summary Update an order's status
// @Tags Orders
// @Accept json
// @Produce json
// @Param orderId path string true "Order number"
// @Param newStatus query string true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/order/updateStatus/{orderId} [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderNumber := c.Params("orderId")
	if len(orderNumber) != orderNumberLength {
		return orderNotFound(c)
	}

	newStatus := c.Query("newStatus")
	if newStatus == "" {
		return incompleteData(c)
	}

	var body struct {
		CancelReason string `json:"cancelReason"`
		TrackingID   string `json:"trackingId"`
	}
	// The body is optional for most transitions.
	c.BodyParser(&body)

	err := h.service.UpdateStatus(c.Context(), orderNumber,
		domain.OrderStatus(newStatus), body.CancelReason, body.TrackingID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid order status",
			})
		case errors.Is(err, domain.ErrOrderNotFound):
			return orderNotFound(c)
		default:
			logger.Get().Error("Failed to update order status",
				zap.String("order_number", orderNumber),
				zap.String("new_status", newStatus),
				zap.Error(err),
			)
			return internalError(c)
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Order#%s has been marked as %s", orderNumber, newStatus),
	})
}

// GetOrderStatus handles GET /api/order/getOrderStatus/:orderId.
// @Summary Get an order's status summary
// @Tags Orders
// @Produce json
// @Param orderId path string true "Order number"
// @Success 200 {object} map[string]domain.StatusSummary
// @Failure 404 {object} map[string]string
// @Router /api/order/getOrderStatus/{orderId} [get]
func (h *OrderHandler) GetOrderStatus(c *fiber.Ctx) error {
	orderNumber := c.Params("orderId")
	if len(orderNumber) != orderNumberLength {
		return orderNotFound(c)
	}

	summary, err := h.service.GetOrderStatus(c.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return orderNotFound(c)
		}
		logger.Get().Error("Failed to fetch order status",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		return internalError(c)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"order": summary})
}

// cartComplete checks the request shape: non-empty items with complete
// variants, and a fully populated shipping record.
func cartComplete(cart domain.Cart) bool {
	if len(cart.Items) == 0 {
		return false
	}

	s := cart.ShippingInfo
	if s.Address == "" || s.City == "" || s.Email == "" || s.FirstName == "" ||
		s.LastName == "" || s.PhoneNumber == "" || s.Zip == "" {
		return false
	}

	for _, item := range cart.Items {
		if item.ProductID == "" || item.ProductDBID == "" {
			return false
		}
		v := item.Variant
		if v.VariantID == "" || v.Size == "" || v.Quantity <= 0 ||
			v.Color.Name == "" || v.Color.HexCode == "" {
			return false
		}
	}
	return true
}

func incompleteData(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Incomplete data"})
}

func orderNotFound(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "No order found with provided order#"})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
}
