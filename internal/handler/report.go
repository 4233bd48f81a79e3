package handler

import (
	"net/http"

	"github.com/vasiliy-maslov/ishop4u/internal/report"
)

type ReportHandler struct {
	svc report.Service
}

func NewReportHandler(svc report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// GetShipmentSummary serves GET /api/shipment_summary.
func (h *ReportHandler) GetShipmentSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.ShipmentSummary(r.Context())
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "An unexpected error occurred")
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// GetCategoryDistribution serves GET /api/category_distribution.
func (h *ReportHandler) GetCategoryDistribution(w http.ResponseWriter, r *http.Request) {
	shares, err := h.svc.CategoryDistribution(r.Context())
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "An unexpected error occurred")
		return
	}

	respondWithJSON(w, http.StatusOK, shares)
}

// GetDeliveryComparison serves GET /api/delivery_comparison.
func (h *ReportHandler) GetDeliveryComparison(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.svc.DeliveryComparison())
}

// GetSalesPerformance serves GET /api/sales_performance?time_range=.
func (h *ReportHandler) GetSalesPerformance(w http.ResponseWriter, r *http.Request) {
	timeRange := r.URL.Query().Get("time_range")
	if timeRange == "" {
		timeRange = "month"
	}

	respondWithJSON(w, http.StatusOK, h.svc.SalesPerformance(timeRange))
}
