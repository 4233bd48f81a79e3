package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ishop4u/internal/catalog"
	"github.com/vasiliy-maslov/ishop4u/internal/product"
)

// ShipmentSummary mirrors the dashboard card: a formatted currency string,
// not a numeric type, for the shipment total.
type ShipmentSummary struct {
	TotalShipment  string `json:"total_shipment"`
	TotalOrder     int    `json:"total_order"`
	ProductShipped int    `json:"product_shipped"`
	NewGoods       int    `json:"new_goods"`
}

type Service interface {
	ShipmentSummary(ctx context.Context) (*ShipmentSummary, error)
	CategoryDistribution(ctx context.Context) ([]product.CategoryShare, error)
	DeliveryComparison() DeliveryComparison
	SalesPerformance(timeRange string) []SalesPoint
}

type service struct {
	repo     Repository
	products product.Repository
	series   SeriesProvider
}

func NewService(repo Repository, products product.Repository, series SeriesProvider) Service {
	return &service{repo: repo, products: products, series: series}
}

func (s *service) ShipmentSummary(ctx context.Context) (*ShipmentSummary, error) {
	cartValue, err := s.repo.CartValue(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to compute cart value")
		return nil, fmt.Errorf("service: failed to build shipment summary: %w", err)
	}

	itemCount, err := s.repo.CartItemCount(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to count cart items")
		return nil, fmt.Errorf("service: failed to build shipment summary: %w", err)
	}

	shipped, err := s.products.CountBySource(ctx, catalog.SourceFakeStore)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build shipment summary: %w", err)
	}

	newGoods, err := s.products.CountBySource(ctx, catalog.SourceEscuelaJS)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build shipment summary: %w", err)
	}

	return &ShipmentSummary{
		TotalShipment:  formatUSD(cartValue),
		TotalOrder:     itemCount,
		ProductShipped: shipped,
		NewGoods:       newGoods,
	}, nil
}

func (s *service) CategoryDistribution(ctx context.Context) ([]product.CategoryShare, error) {
	shares, err := s.products.CategoryDistribution(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to compute category distribution")
		return nil, fmt.Errorf("service: failed to compute category distribution: %w", err)
	}
	return shares, nil
}

func (s *service) DeliveryComparison() DeliveryComparison {
	return s.series.DeliveryComparison()
}

func (s *service) SalesPerformance(timeRange string) []SalesPoint {
	return s.series.SalesPerformance(timeRange)
}

// formatUSD renders an amount as $X,XXX.XX with thousands separators.
func formatUSD(amount float64) string {
	raw := fmt.Sprintf("%.2f", amount)

	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	parts := strings.SplitN(raw, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%s", sign, b.String(), fracPart)
}
