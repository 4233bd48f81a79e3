package cart

// Item is one row per (user, product) pair while the product sits in the
// user's cart. A second add for the same pair merges by quantity instead of
// creating a duplicate row.
type Item struct {
	ID        int64   `json:"id" db:"id"`
	UserID    string  `json:"user_id" db:"user_id"`
	ProductID string  `json:"product_id" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	Notes     *string `json:"notes" db:"notes"`
}

// ProductSummary carries the product display fields joined onto a cart item.
type ProductSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Image         *string `json:"image"`
	Source        string  `json:"source"`
	AffiliateLink string  `json:"affiliate_link"`
}

type ItemWithProduct struct {
	Item
	Product ProductSummary `json:"product"`
}
