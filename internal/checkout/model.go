package checkout

import "time"

const StatusPending = "Pending"

// Order is the immutable record of a completed checkout. Status transitions
// after creation belong to fulfillment, not to this service.
type Order struct {
	ID              int64       `json:"id" db:"id"`
	UserID          string      `json:"user_id" db:"user_id"`
	TotalAmount     float64     `json:"total_amount" db:"total_amount"`
	OrderDate       time.Time   `json:"order_date" db:"order_date"`
	Status          string      `json:"status" db:"status"`
	ShippingAddress string      `json:"shipping_address" db:"shipping_address"`
	Items           []OrderItem `json:"items" db:"-"`
}

// OrderItem snapshots the product title and price at checkout time. The
// recorded total must never move even if the product row changes later.
type OrderItem struct {
	ID           int64   `json:"id" db:"id"`
	OrderID      int64   `json:"order_id" db:"order_id"`
	ProductID    string  `json:"product_id" db:"product_id"`
	ProductTitle string  `json:"product_title" db:"product_title"`
	ProductPrice float64 `json:"product_price" db:"product_price"`
	Quantity     int     `json:"quantity" db:"quantity"`
	Notes        *string `json:"notes" db:"notes"`
}
