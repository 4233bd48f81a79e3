package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/ishop4u/internal/checkout"
	"github.com/vasiliy-maslov/ishop4u/internal/handler"
)

type mockCheckoutService struct {
	checkoutFunc   func(ctx context.Context, userID, shippingAddress string) (*checkout.Order, error)
	getByIDFunc    func(ctx context.Context, orderID int64) (*checkout.Order, error)
	listByUserFunc func(ctx context.Context, userID string) ([]checkout.Order, error)
}

func (m *mockCheckoutService) Checkout(ctx context.Context, userID, shippingAddress string) (*checkout.Order, error) {
	return m.checkoutFunc(ctx, userID, shippingAddress)
}

func (m *mockCheckoutService) GetByID(ctx context.Context, orderID int64) (*checkout.Order, error) {
	return m.getByIDFunc(ctx, orderID)
}

func (m *mockCheckoutService) ListByUser(ctx context.Context, userID string) ([]checkout.Order, error) {
	return m.listByUserFunc(ctx, userID)
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	orderDate := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		checkout   func(ctx context.Context, userID, shippingAddress string) (*checkout.Order, error)
		wantStatus int
		wantErrMsg string
	}{
		{
			name: "success",
			body: `{"user_id": "u1", "shipping_address": "123 Main St"}`,
			checkout: func(ctx context.Context, userID, shippingAddress string) (*checkout.Order, error) {
				return &checkout.Order{
					ID:              9,
					UserID:          userID,
					TotalAmount:     25.0,
					OrderDate:       orderDate,
					Status:          checkout.StatusPending,
					ShippingAddress: shippingAddress,
				}, nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing_shipping_address",
			body:       `{"user_id": "u1"}`,
			wantStatus: http.StatusBadRequest,
			wantErrMsg: "User ID and shipping address are required.",
		},
		{
			name:       "malformed_json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantErrMsg: "Invalid request payload",
		},
		{
			name: "empty_cart",
			body: `{"user_id": "u1", "shipping_address": "123 Main St"}`,
			checkout: func(ctx context.Context, userID, shippingAddress string) (*checkout.Order, error) {
				return nil, checkout.ErrEmptyCart
			},
			wantStatus: http.StatusBadRequest,
			wantErrMsg: "Cart is empty.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewCheckoutHandler(&mockCheckoutService{checkoutFunc: tt.checkout})

			req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			h.Checkout(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErrMsg != "" {
				assert.JSONEq(t, `{"error": "`+tt.wantErrMsg+`"}`, rr.Body.String())
				return
			}

			var resp handler.CheckoutResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "Order placed", resp.Message)
			assert.Equal(t, int64(9), resp.OrderID)
			assert.Equal(t, 25.0, resp.TotalAmount)
			assert.True(t, orderDate.Equal(resp.OrderDate))
			assert.Equal(t, checkout.StatusPending, resp.Status)
		})
	}
}

func TestCheckoutHandler_GetOrders(t *testing.T) {
	t.Run("missing_user_id", func(t *testing.T) {
		h := handler.NewCheckoutHandler(&mockCheckoutService{})

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		rr := httptest.NewRecorder()

		h.GetOrders(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error": "User ID is required."}`, rr.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		svc := &mockCheckoutService{
			listByUserFunc: func(ctx context.Context, userID string) ([]checkout.Order, error) {
				require.Equal(t, "u1", userID)
				return []checkout.Order{{ID: 2, UserID: "u1", TotalAmount: 10}}, nil
			},
		}
		h := handler.NewCheckoutHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/orders?user_id=u1", nil)
		rr := httptest.NewRecorder()

		h.GetOrders(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total_amount":10`)
	})
}

func TestCheckoutHandler_GetOrderByID(t *testing.T) {
	t.Run("invalid_order_id", func(t *testing.T) {
		h := handler.NewCheckoutHandler(&mockCheckoutService{})

		req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
		req = withURLParam(req, "order_id", "abc")
		rr := httptest.NewRecorder()

		h.GetOrderByID(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		svc := &mockCheckoutService{
			getByIDFunc: func(ctx context.Context, orderID int64) (*checkout.Order, error) {
				return nil, checkout.ErrOrderNotFound
			},
		}
		h := handler.NewCheckoutHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/404", nil)
		req = withURLParam(req, "order_id", "404")
		rr := httptest.NewRecorder()

		h.GetOrderByID(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error": "Order not found."}`, rr.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		svc := &mockCheckoutService{
			getByIDFunc: func(ctx context.Context, orderID int64) (*checkout.Order, error) {
				return &checkout.Order{ID: orderID, UserID: "u1", TotalAmount: 42.5}, nil
			},
		}
		h := handler.NewCheckoutHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/7", nil)
		req = withURLParam(req, "order_id", "7")
		rr := httptest.NewRecorder()

		h.GetOrderByID(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total_amount":42.5`)
	})
}
