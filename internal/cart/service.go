package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

type Service interface {
	Add(ctx context.Context, userID, productID string, quantity int, notes *string) (*Item, error)
	List(ctx context.Context, userID string) ([]ItemWithProduct, error)
	Update(ctx context.Context, itemID int64, quantity *int, notes *string) (*Item, error)
	Remove(ctx context.Context, itemID int64) error
	Clear(ctx context.Context, userID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, userID, productID string, quantity int, notes *string) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item := &Item{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Notes:     notes,
	}

	if err := s.repo.AddOrMerge(ctx, item); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			log.Warn().Str("product_id", productID).Str("user_id", userID).Msg("service: add to cart for unknown product")
			return nil, ErrProductNotFound
		}
		log.Error().Err(err).Str("user_id", userID).Msg("service: failed to add cart item")
		return nil, fmt.Errorf("service: failed to add cart item: %w", err)
	}

	return item, nil
}

func (s *service) List(ctx context.Context, userID string) ([]ItemWithProduct, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("service: failed to list cart items")
		return nil, fmt.Errorf("service: failed to list cart items: %w", err)
	}
	return items, nil
}

func (s *service) Update(ctx context.Context, itemID int64, quantity *int, notes *string) (*Item, error) {
	if quantity != nil && *quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.repo.Update(ctx, itemID, quantity, notes)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("item_id", itemID).Msg("service: failed to update cart item")
		return nil, fmt.Errorf("service: failed to update cart item: %w", err)
	}

	return item, nil
}

func (s *service) Remove(ctx context.Context, itemID int64) error {
	err := s.repo.Delete(ctx, itemID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Int64("item_id", itemID).Msg("service: failed to remove cart item")
		return fmt.Errorf("service: failed to remove cart item: %w", err)
	}
	return nil
}

func (s *service) Clear(ctx context.Context, userID string) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("service: failed to clear cart")
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}
	return nil
}
