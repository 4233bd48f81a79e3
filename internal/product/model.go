package product

// Product is a canonical catalog entry cached from an upstream source.
// The id is the external source identifier, so the same id seen from two
// sources maps to one row.
type Product struct {
	ID            string  `json:"id" db:"id"`
	Title         string  `json:"title" db:"title"`
	Price         float64 `json:"price" db:"price"`
	Description   *string `json:"description" db:"description"`
	Image         *string `json:"image" db:"image"`
	Category      *string `json:"category" db:"category"`
	Source        string  `json:"source" db:"source"`
	AffiliateLink string  `json:"affiliate_link" db:"affiliate_link"`
}

// CategoryShare is one slice of the catalog's category distribution.
type CategoryShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
