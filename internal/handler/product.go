package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ishop4u/internal/catalog"
	"github.com/vasiliy-maslov/ishop4u/internal/product"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// GetProducts serves GET /api/products?query=&source=.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	source := catalog.Source(r.URL.Query().Get("source"))
	if source == "" {
		source = catalog.SourceEscuelaJS
	}

	products, err := h.svc.List(r.Context(), query, source)
	if err != nil {
		log.Error().Err(err).Str("source", source.String()).Msg("Failed to list products")
		if errors.Is(err, catalog.ErrUpstream) {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "An unexpected error occurred")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

// GetTopProducts serves GET /api/top_products.
func (h *ProductHandler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Top(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch top products")
		if errors.Is(err, catalog.ErrUpstream) {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "An unexpected error occurred")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}
