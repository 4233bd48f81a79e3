package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the read-only cart aggregates the dashboard needs. It
// consumes the product/cart schema but owns none of it.
type Repository interface {
	CartValue(ctx context.Context) (float64, error)
	CartItemCount(ctx context.Context) (int, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CartValue(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(SUM(p.price * ci.quantity), 0)
		FROM cart_item ci
		JOIN product p ON p.id = ci.product_id
	`

	var total float64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("repository: failed to sum cart value: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) CartItemCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cart_item`).Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count cart items: %w", err)
	}
	return count, nil
}
