package product

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ishop4u/internal/catalog"
)

const topProductsLimit = 5

type Service interface {
	List(ctx context.Context, query string, source catalog.Source) ([]Product, error)
	Top(ctx context.Context) ([]Product, error)
}

type service struct {
	gateway catalog.Gateway
	repo    Repository
}

func NewService(gateway catalog.Gateway, repo Repository) Service {
	return &service{gateway: gateway, repo: repo}
}

// List fetches the upstream listing, caches every product on first sight
// and returns the stored rows. The stored row wins over the fresh
// descriptor: a product already cached keeps its original fields.
func (s *service) List(ctx context.Context, query string, source catalog.Source) ([]Product, error) {
	descriptors, err := s.gateway.Fetch(ctx, source, query)
	if err != nil {
		log.Error().Err(err).Str("source", source.String()).Str("query", query).Msg("service: failed to fetch upstream listing")
		return nil, fmt.Errorf("service: failed to fetch products: %w", err)
	}

	return s.ingest(ctx, descriptors, source)
}

// Top returns up to five products from the fixed top-products upstream.
func (s *service) Top(ctx context.Context) ([]Product, error) {
	descriptors, err := s.gateway.FetchTop(ctx, topProductsLimit)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to fetch top products")
		return nil, fmt.Errorf("service: failed to fetch top products: %w", err)
	}

	return s.ingest(ctx, descriptors, catalog.SourceEscuelaJS)
}

func (s *service) ingest(ctx context.Context, descriptors []catalog.Descriptor, source catalog.Source) ([]Product, error) {
	products := make([]Product, 0, len(descriptors))
	for _, d := range descriptors {
		stored, err := s.repo.UpsertIfAbsent(ctx, d, source)
		if err != nil {
			log.Error().Err(err).Str("product_id", d.ID).Msg("service: failed to upsert product")
			return nil, fmt.Errorf("service: failed to store product %s: %w", d.ID, err)
		}
		products = append(products, *stored)
	}
	return products, nil
}
