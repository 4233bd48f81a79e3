package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
)

type Repository interface {
	CreateFromCart(ctx context.Context, userID, shippingAddress string) (*Order, error)
	GetByID(ctx context.Context, orderID int64) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

type cartLine struct {
	itemID    int64
	productID string
	quantity  int
	notes     *string
	title     string
	price     float64
}

// CreateFromCart converts the user's cart into an order inside a single
// transaction: lock the cart rows, snapshot title/price from the joined
// product, insert the order and its items, delete the consumed cart rows by
// id. Any failure rolls the whole thing back and leaves the cart untouched.
func (r *postgresRepository) CreateFromCart(ctx context.Context, userID, shippingAddress string) (order *Order, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Str("user_id", userID).Msg("repository: failed to rollback after panic")
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Str("user_id", userID).Msg("repository: failed to rollback checkout transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				err = fmt.Errorf("repository: failed to commit checkout transaction: %w", commitErr)
				order = nil
			}
		}
	}()

	lines, err := lockCartLines(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		err = ErrEmptyCart
		return nil, err
	}

	totalAmount := 0.0
	for _, line := range lines {
		totalAmount += line.price * float64(line.quantity)
	}

	orderDate := time.Now().UTC()
	order = &Order{
		UserID:          userID,
		TotalAmount:     totalAmount,
		OrderDate:       orderDate,
		Status:          StatusPending,
		ShippingAddress: shippingAddress,
	}

	insertOrder := `
		INSERT INTO orders (user_id, total_amount, order_date, status, shipping_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = tx.QueryRow(ctx, insertOrder,
		order.UserID,
		order.TotalAmount,
		order.OrderDate,
		order.Status,
		order.ShippingAddress,
	).Scan(&order.ID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert order for user %s: %w", userID, err)
	}

	insertItem := `
		INSERT INTO order_item (order_id, product_id, product_title, product_price, quantity, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	order.Items = make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		item := OrderItem{
			OrderID:      order.ID,
			ProductID:    line.productID,
			ProductTitle: line.title,
			ProductPrice: line.price,
			Quantity:     line.quantity,
			Notes:        line.notes,
		}
		err = tx.QueryRow(ctx, insertItem,
			item.OrderID,
			item.ProductID,
			item.ProductTitle,
			item.ProductPrice,
			item.Quantity,
			item.Notes,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to insert order item for order %d: %w", order.ID, err)
		}
		order.Items = append(order.Items, item)
	}

	// Delete exactly the locked rows. A row added concurrently after the
	// locking select belongs to the next checkout, not this one.
	consumedIDs := make([]int64, 0, len(lines))
	for _, line := range lines {
		consumedIDs = append(consumedIDs, line.itemID)
	}
	_, err = tx.Exec(ctx, `DELETE FROM cart_item WHERE id = ANY($1)`, consumedIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to clear consumed cart items for user %s: %w", userID, err)
	}

	return order, nil
}

func lockCartLines(ctx context.Context, tx pgx.Tx, userID string) ([]cartLine, error) {
	query := `
		SELECT ci.id, ci.product_id, ci.quantity, ci.notes, p.title, p.price
		FROM cart_item ci
		JOIN product p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.id
		FOR UPDATE OF ci
	`

	rows, err := tx.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to lock cart items for user %s: %w", userID, err)
	}
	defer rows.Close()

	lines := make([]cartLine, 0)
	for rows.Next() {
		var line cartLine
		err := rows.Scan(
			&line.itemID,
			&line.productID,
			&line.quantity,
			&line.notes,
			&line.title,
			&line.price,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan cart line for user %s: %w", userID, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating cart lines for user %s: %w", userID, err)
	}

	return lines, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	query := `
		SELECT id, user_id, total_amount, order_date, status, shipping_address
		FROM orders
		WHERE id = $1
	`

	var order Order
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&order.OrderDate,
		&order.Status,
		&order.ShippingAddress,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order %d: %w", orderID, err)
	}

	items, err := r.itemsForOrders(ctx, []int64{orderID})
	if err != nil {
		return nil, err
	}
	order.Items = items[orderID]
	if order.Items == nil {
		order.Items = make([]OrderItem, 0)
	}

	return &order, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	query := `
		SELECT id, user_id, total_amount, order_date, status, shipping_address
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders for user %s: %w", userID, err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	orderIDs := make([]int64, 0)
	for rows.Next() {
		var order Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalAmount,
			&order.OrderDate,
			&order.Status,
			&order.ShippingAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order for user %s: %w", userID, err)
		}
		order.Items = make([]OrderItem, 0)
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders for user %s: %w", userID, err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.itemsForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if items, ok := itemsByOrder[orders[i].ID]; ok {
			orders[i].Items = items
		}
	}

	return orders, nil
}

func (r *postgresRepository) itemsForOrders(ctx context.Context, orderIDs []int64) (map[int64][]OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_title, product_price, quantity, notes
		FROM order_item
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[int64][]OrderItem)
	for rows.Next() {
		var item OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductTitle,
			&item.ProductPrice,
			&item.Quantity,
			&item.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item: %w", err)
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items: %w", err)
	}

	return itemsByOrder, nil
}
