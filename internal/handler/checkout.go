package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ishop4u/internal/checkout"
)

type CheckoutRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
}

type CheckoutResponse struct {
	Message     string    `json:"message"`
	OrderID     int64     `json:"order_id"`
	TotalAmount float64   `json:"total_amount"`
	OrderDate   time.Time `json:"order_date"`
	Status      string    `json:"status"`
}

type CheckoutHandler struct {
	svc      checkout.Service
	validate *validator.Validate
}

func NewCheckoutHandler(svc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

// Checkout serves POST /api/checkout.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var requestPayload CheckoutRequest

	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode checkout payload")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "User ID and shipping address are required.")
		return
	}

	order, err := h.svc.Checkout(r.Context(), requestPayload.UserID, requestPayload.ShippingAddress)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessageForCheckoutError(err))
		return
	}

	respondWithJSON(w, http.StatusCreated, CheckoutResponse{
		Message:     "Order placed",
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
		Status:      order.Status,
	})
}

// GetOrders serves GET /api/orders?user_id=.
func (h *CheckoutHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	orders, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "Failed to fetch orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

// GetOrderByID serves GET /api/orders/{order_id}.
func (h *CheckoutHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order_id parameter")
		return
	}

	order, err := h.svc.GetByID(r.Context(), orderID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessageForCheckoutError(err))
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}

func clientMessageForCheckoutError(err error) string {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return "Cart is empty."
	case errors.Is(err, checkout.ErrInvalidArgument):
		return "User ID and shipping address are required."
	case errors.Is(err, checkout.ErrOrderNotFound):
		return "Order not found."
	default:
		return "An unexpected error occurred"
	}
}
