package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ishop4u/internal/cart"
)

type AddToCartRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	UserID    string  `json:"user_id" validate:"required"`
	Quantity  *int    `json:"quantity" validate:"omitempty,gt=0"`
	Notes     *string `json:"notes"`
}

type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
}

type CartHandler struct {
	svc      cart.Service
	validate *validator.Validate
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

// AddToCart serves POST /api/cart.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var requestPayload AddToCartRequest

	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode add-to-cart payload")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Product ID and User ID are required.")
		return
	}

	quantity := 1
	if requestPayload.Quantity != nil {
		quantity = *requestPayload.Quantity
	}

	item, err := h.svc.Add(r.Context(), requestPayload.UserID, requestPayload.ProductID, quantity, requestPayload.Notes)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessageForCartError(err))
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Item added to cart",
		"cart_item_id": item.ID,
	})
}

// GetCart serves GET /api/cart?user_id=.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	items, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "Failed to fetch cart")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

// UpdateCartItem serves PUT /api/cart/{item_id}.
func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseItemID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item_id parameter")
		return
	}

	var requestPayload UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&requestPayload); err != nil {
		log.Warn().Err(err).Msg("Failed to decode update-cart payload")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	item, err := h.svc.Update(r.Context(), itemID, requestPayload.Quantity, requestPayload.Notes)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessageForCartError(err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Cart item updated",
		"cart_item_id": item.ID,
	})
}

// DeleteCartItem serves DELETE /api/cart/{item_id}.
func (h *CartHandler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseItemID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid item_id parameter")
		return
	}

	if err := h.svc.Remove(r.Context(), itemID); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), clientMessageForCartError(err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Cart item removed"})
}

// ClearCart serves DELETE /api/cart/clear?user_id=.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	if err := h.svc.Clear(r.Context(), userID); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "Failed to clear cart")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}

func parseItemID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "item_id"), 10, 64)
}

func clientMessageForCartError(err error) string {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		return "Product not found."
	case errors.Is(err, cart.ErrNotFound):
		return "Cart item not found."
	case errors.Is(err, cart.ErrInvalidQuantity):
		return "Valid quantity (positive integer) is required."
	default:
		return "An unexpected error occurred"
	}
}
