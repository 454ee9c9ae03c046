package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-api/internal/features/orders/domain"
	"storefront-api/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of ports.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, cart domain.Cart) (string, error) {
	args := m.Called(ctx, cart)
	return args.String(0), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderService) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, orderNumber string) error {
	args := m.Called(ctx, orderNumber)
	return args.Error(0)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, cancelReason, trackingID string) error {
	args := m.Called(ctx, orderNumber, status, cancelReason, trackingID)
	return args.Error(0)
}

func (m *MockOrderService) GetOrderStatus(ctx context.Context, orderNumber string) (*domain.StatusSummary, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusSummary), args.Error(1)
}

func setupApp(svc *MockOrderService) *fiber.App {
	app := fiber.New()
	h := NewOrderHandler(svc)
	app.Post("/api/order/placeOrder", h.PlaceOrder)
	app.Get("/api/order/getOrder/:orderId", h.GetOrder)
	app.Get("/api/order/getAllOrders", h.GetAllOrders)
	app.Get("/api/order/getOrdersByStatus", h.GetOrdersByStatus)
	app.Delete("/api/order/deleteOrder/:orderId", h.DeleteOrder)
	app.Put("/api/order/updateStatus/:orderId", h.UpdateStatus)
	app.Get("/api/order/getOrderStatus/:orderId", h.GetOrderStatus)
	return app
}

func validCartBody() map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{
			{
				"productId":   "TS-001",
				"productDBId": "p-1",
				"variant": map[string]interface{}{
					"variantId": "v-1",
					"size":      "M",
					"color":     map[string]string{"name": "Black", "hexCode": "#000000"},
					"quantity":  2,
				},
				"discount": 0,
				"total":    998,
			},
		},
		"shippingInfo": map[string]string{
			"address":     "123 Main St",
			"city":        "Mumbai",
			"email":       "jane@example.com",
			"firstName":   "Jane",
			"lastName":    "Doe",
			"phoneNumber": "5550001111",
			"zip":         "400001",
		},
		"total": 998,
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("PlaceOrder", mock.Anything, mock.AnythingOfType("domain.Cart")).
			Return("17600123", nil).Once()

		resp := postJSON(t, app, "/api/order/placeOrder", validCartBody())
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		payload, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(payload), `"orderNumber":"17600123"`)
		svc.AssertExpectations(t)
	})

	t.Run("IncompleteCart", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		body := validCartBody()
		body["items"] = []map[string]interface{}{}

		resp := postJSON(t, app, "/api/order/placeOrder", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})

	t.Run("MissingShippingField", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		body := validCartBody()
		body["shippingInfo"] = map[string]string{"address": "123 Main St"}

		resp := postJSON(t, app, "/api/order/placeOrder", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return("", &domain.ProductNotFoundError{ProductID: "TS-404"}).Once()

		resp := postJSON(t, app, "/api/order/placeOrder", validCartBody())
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		payload, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(payload), "TS-404")
		svc.AssertExpectations(t)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return("", domain.ErrInsufficientStock).Once()

		resp := postJSON(t, app, "/api/order/placeOrder", validCartBody())
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		payload, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(payload), "Variant not found or insufficient quantity")
		svc.AssertExpectations(t)
	})

	t.Run("InternalError", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return("", errors.New("db down")).Once()

		resp := postJSON(t, app, "/api/order/placeOrder", validCartBody())
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("GetOrder", mock.Anything, "17600123").
			Return(&domain.Order{OrderNumber: "17600123"}, nil).Once()

		req := httptest.NewRequest("GET", "/api/order/getOrder/17600123", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("BadLength", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		req := httptest.NewRequest("GET", "/api/order/getOrder/123", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		svc.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("GetOrder", mock.Anything, "00000000").
			Return(nil, domain.ErrOrderNotFound).Once()

		req := httptest.NewRequest("GET", "/api/order/getOrder/00000000", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetOrdersByStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("ListOrdersByStatus", mock.Anything, domain.OrderStatusProcessing).
			Return([]domain.Order{{OrderNumber: "17600123"}}, nil).Once()

		req := httptest.NewRequest("GET", "/api/order/getOrdersByStatus?status=Processing", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("MissingStatus", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		req := httptest.NewRequest("GET", "/api/order/getOrdersByStatus", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("ListOrdersByStatus", mock.Anything, domain.OrderStatus("Shipped")).
			Return(nil, service.ErrInvalidStatus).Once()

		req := httptest.NewRequest("GET", "/api/order/getOrdersByStatus?status=Shipped", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("DeleteOrder", mock.Anything, "17600123").Return(nil).Once()

		req := httptest.NewRequest("DELETE", "/api/order/deleteOrder/17600123", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("DeleteOrder", mock.Anything, "00000000").
			Return(domain.ErrOrderNotFound).Once()

		req := httptest.NewRequest("DELETE", "/api/order/deleteOrder/00000000", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("Cancelled", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		svc.On("UpdateStatus", mock.Anything, "17600123",
			domain.OrderStatusCancelled, "changed my mind", "").Return(nil).Once()

		body, _ := json.Marshal(map[string]string{"cancelReason": "changed my mind"})
		req := httptest.NewRequest("PUT", "/api/order/updateStatus/17600123?newStatus=Cancelled", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("MissingNewStatus", func(t *testing.T) {
		svc := new(MockOrderService)
		app := setupApp(svc)

		req := httptest.NewRequest("PUT", "/api/order/updateStatus/17600123", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetOrderStatus(t *testing.T) {
	svc := new(MockOrderService)
	app := setupApp(svc)

	svc.On("GetOrderStatus", mock.Anything, "17600123").
		Return(&domain.StatusSummary{
			Status:       domain.OrderStatusDispatched,
			CustomerName: "Jane Doe",
		}, nil).Once()

	req := httptest.NewRequest("GET", "/api/order/getOrderStatus/17600123", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	payload, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(payload), `"customerName":"Jane Doe"`)
	svc.AssertExpectations(t)
}
