package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vasiliy-maslov/ishop4u/internal/catalog"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	UpsertIfAbsent(ctx context.Context, d catalog.Descriptor, source catalog.Source) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	CountBySource(ctx context.Context, source catalog.Source) (int, error)
	CategoryDistribution(ctx context.Context) ([]CategoryShare, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const placeholderAffiliateLink = "#"

// UpsertIfAbsent inserts the descriptor as a new product unless a row with
// the same id already exists, in which case the existing row is returned
// unchanged. Stale cached fields are preserved by design: upstream changes
// after first sighting are ignored because order totals snapshot from this
// table.
func (r *postgresRepository) UpsertIfAbsent(ctx context.Context, d catalog.Descriptor, source catalog.Source) (*Product, error) {
	price := d.Price
	if price < 0 {
		price = 0
	}

	var description, image, category *string
	if d.Description != "" {
		description = &d.Description
	}
	if len(d.ImageURLs) > 0 && d.ImageURLs[0] != "" {
		image = &d.ImageURLs[0]
	}
	if d.CategoryName != "" {
		category = &d.CategoryName
	}

	affiliateLink := d.AffiliateLink
	if affiliateLink == "" {
		affiliateLink = placeholderAffiliateLink
	}

	query := `
		INSERT INTO product (id, title, price, description, image, category, source, affiliate_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		d.ID,
		d.Title,
		price,
		description,
		image,
		category,
		string(source),
		affiliateLink,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to upsert product %s: %w", d.ID, err)
	}

	stored, err := r.GetByID(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to reload product %s after upsert: %w", d.ID, err)
	}

	return stored, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	query := `
		SELECT id, title, price, description, image, category, source, affiliate_link
		FROM product
		WHERE id = $1
	`

	var p Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Price,
		&p.Description,
		&p.Image,
		&p.Category,
		&p.Source,
		&p.AffiliateLink,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select product by id %s: %w", id, err)
	}

	return &p, nil
}

func (r *postgresRepository) CountBySource(ctx context.Context, source catalog.Source) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM product WHERE source = $1`, string(source)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count products for source %s: %w", source, err)
	}
	return count, nil
}

// CategoryDistribution returns the percentage of cached products per
// category. An empty store yields an empty slice; the total is checked in
// Go so there is no division by zero on the SQL side either.
func (r *postgresRepository) CategoryDistribution(ctx context.Context) ([]CategoryShare, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM product`).Scan(&total); err != nil {
		return nil, fmt.Errorf("repository: failed to count products: %w", err)
	}

	shares := make([]CategoryShare, 0)
	if total == 0 {
		return shares, nil
	}

	query := `
		SELECT COALESCE(category, 'Uncategorized'), COUNT(*)
		FROM product
		GROUP BY category
		ORDER BY COUNT(*) DESC, COALESCE(category, 'Uncategorized')
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query category distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("repository: failed to scan category row: %w", err)
		}
		shares = append(shares, CategoryShare{
			Name:  name,
			Value: float64(count) / float64(total) * 100,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating category rows: %w", err)
	}

	return shares, nil
}
