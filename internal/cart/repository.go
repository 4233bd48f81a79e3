package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("cart item not found")
	ErrProductNotFound = errors.New("product not found")
)

type Repository interface {
	AddOrMerge(ctx context.Context, item *Item) error
	ListByUser(ctx context.Context, userID string) ([]ItemWithProduct, error)
	Update(ctx context.Context, id int64, quantity *int, notes *string) (*Item, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID string) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// AddOrMerge inserts the item, or, when a row for (user_id, product_id)
// already exists, atomically adds the quantity onto it. Notes overwrite the
// stored ones only when non-empty. The single statement keeps concurrent
// adds for the same user from losing an increment.
func (r *postgresRepository) AddOrMerge(ctx context.Context, item *Item) error {
	query := `
		INSERT INTO cart_item (user_id, product_id, quantity, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = cart_item.quantity + EXCLUDED.quantity,
		    notes = CASE
		        WHEN EXCLUDED.notes IS NOT NULL AND EXCLUDED.notes <> '' THEN EXCLUDED.notes
		        ELSE cart_item.notes
		    END
		RETURNING id, quantity, notes
	`

	err := r.db.QueryRow(ctx, query,
		item.UserID,
		item.ProductID,
		item.Quantity,
		item.Notes,
	).Scan(&item.ID, &item.Quantity, &item.Notes)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrProductNotFound
		}
		return fmt.Errorf("repository: failed to add cart item for user %s: %w", item.UserID, err)
	}

	return nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID string) ([]ItemWithProduct, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.notes,
		       p.id, p.title, p.price, p.image, p.source, p.affiliate_link
		FROM cart_item ci
		JOIN product p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query cart items for user %s: %w", userID, err)
	}
	defer rows.Close()

	items := make([]ItemWithProduct, 0)
	for rows.Next() {
		var item ItemWithProduct
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Quantity,
			&item.Notes,
			&item.Product.ID,
			&item.Product.Title,
			&item.Product.Price,
			&item.Product.Image,
			&item.Product.Source,
			&item.Product.AffiliateLink,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan cart item for user %s: %w", userID, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating cart items for user %s: %w", userID, err)
	}

	return items, nil
}

// Update applies the supplied fields in one statement: a nil quantity keeps
// the stored value, a nil notes pointer keeps the stored notes while a
// non-nil one overwrites unconditionally, including to empty.
func (r *postgresRepository) Update(ctx context.Context, id int64, quantity *int, notes *string) (*Item, error) {
	query := `
		UPDATE cart_item
		SET quantity = COALESCE($2::int, quantity),
		    notes = CASE WHEN $3 THEN $4::text ELSE notes END
		WHERE id = $1
		RETURNING id, user_id, product_id, quantity, notes
	`

	var item Item
	err := r.db.QueryRow(ctx, query, id, quantity, notes != nil, notes).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update cart item %d: %w", id, err)
	}

	return &item, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cart_item WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete cart item %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUser clears the user's cart. Clearing an already empty cart is a
// successful no-op.
func (r *postgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_item WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("repository: failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
