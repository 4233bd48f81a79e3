package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrInvalidArgument = errors.New("user id and shipping address are required")

type Service interface {
	Checkout(ctx context.Context, userID, shippingAddress string) (*Order, error)
	GetByID(ctx context.Context, orderID int64) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Checkout converts the user's cart into an immutable order. Validation
// happens before any mutation; the conversion itself is one all-or-nothing
// transaction in the repository.
func (s *service) Checkout(ctx context.Context, userID, shippingAddress string) (*Order, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(shippingAddress) == "" {
		return nil, ErrInvalidArgument
	}

	order, err := s.repo.CreateFromCart(ctx, userID, shippingAddress)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			log.Warn().Str("user_id", userID).Msg("service: checkout attempted on empty cart")
			return nil, ErrEmptyCart
		}
		log.Error().Err(err).Str("user_id", userID).Msg("service: checkout failed")
		return nil, fmt.Errorf("service: failed to checkout: %w", err)
	}

	log.Info().Int64("order_id", order.ID).Str("user_id", userID).Float64("total_amount", order.TotalAmount).Msg("service: order created")

	return order, nil
}

func (s *service) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Int64("order_id", orderID).Msg("service: failed to fetch order")
		return nil, fmt.Errorf("service: failed to fetch order: %w", err)
	}
	return order, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("service: failed to fetch user orders")
		return nil, fmt.Errorf("service: failed to fetch user orders: %w", err)
	}
	return orders, nil
}
