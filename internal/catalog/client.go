package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ishop4u/internal/config"
)

// Client fetches product listings from the supported upstream catalog APIs
// and maps each response into canonical descriptors.
type Client struct {
	httpClient       *http.Client
	escuelaJSBaseURL string
	fakeStoreBaseURL string
}

func NewClient(cfg config.CatalogConfig) *Client {
	return &Client{
		httpClient:       &http.Client{Timeout: 15 * time.Second},
		escuelaJSBaseURL: strings.TrimRight(cfg.EscuelaJSBaseURL, "/"),
		fakeStoreBaseURL: strings.TrimRight(cfg.FakeStoreBaseURL, "/"),
	}
}

// Fetch returns the upstream listing for the given source, optionally
// filtered by a free-text title query. Any source other than fakestore is
// served by EscuelaJS.
func (c *Client) Fetch(ctx context.Context, source Source, query string) ([]Descriptor, error) {
	if source == SourceFakeStore {
		return c.fetchFakeStore(ctx, query)
	}
	return c.fetchEscuelaJS(ctx, query)
}

// FetchTop returns the first limit products from EscuelaJS.
func (c *Client) FetchTop(ctx context.Context, limit int) ([]Descriptor, error) {
	endpoint := fmt.Sprintf("%s/products?offset=0&limit=%d", c.escuelaJSBaseURL, limit)

	var items []escuelaJSProduct
	if err := c.getJSON(ctx, endpoint, &items); err != nil {
		return nil, err
	}

	descriptors := make([]Descriptor, 0, len(items))
	for _, item := range items {
		descriptors = append(descriptors, item.toDescriptor(c.escuelaJSBaseURL))
	}
	return descriptors, nil
}

type escuelaJSCategory struct {
	Name string `json:"name"`
}

type escuelaJSProduct struct {
	ID          json.Number        `json:"id"`
	Title       string             `json:"title"`
	Price       float64            `json:"price"`
	Description string             `json:"description"`
	Category    *escuelaJSCategory `json:"category"`
	Images      []string           `json:"images"`
}

func (p escuelaJSProduct) toDescriptor(baseURL string) Descriptor {
	d := Descriptor{
		ID:            p.ID.String(),
		Title:         p.Title,
		Price:         p.Price,
		Description:   p.Description,
		ImageURLs:     p.Images,
		AffiliateLink: fmt.Sprintf("%s/products/%s", baseURL, p.ID.String()),
	}
	if p.Category != nil {
		d.CategoryName = p.Category.Name
	}
	return d
}

func (c *Client) fetchEscuelaJS(ctx context.Context, query string) ([]Descriptor, error) {
	endpoint := c.escuelaJSBaseURL + "/products"
	if query != "" {
		// EscuelaJS supports server-side title filtering.
		endpoint = c.escuelaJSBaseURL + "/products/?title=" + url.QueryEscape(query)
	}

	var items []escuelaJSProduct
	if err := c.getJSON(ctx, endpoint, &items); err != nil {
		return nil, err
	}

	descriptors := make([]Descriptor, 0, len(items))
	for _, item := range items {
		descriptors = append(descriptors, item.toDescriptor(c.escuelaJSBaseURL))
	}
	return descriptors, nil
}

type fakeStoreProduct struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
}

func (p fakeStoreProduct) toDescriptor(baseURL string) Descriptor {
	d := Descriptor{
		ID:            p.ID.String(),
		Title:         p.Title,
		Price:         p.Price,
		Description:   p.Description,
		CategoryName:  p.Category,
		AffiliateLink: fmt.Sprintf("%s/products/%s", baseURL, p.ID.String()),
	}
	if p.Image != "" {
		d.ImageURLs = []string{p.Image}
	}
	return d
}

func (c *Client) fetchFakeStore(ctx context.Context, query string) ([]Descriptor, error) {
	// FakeStore has no server-side text filter, so fetch the full listing
	// and filter by case-insensitive substring match on title.
	var items []fakeStoreProduct
	if err := c.getJSON(ctx, c.fakeStoreBaseURL+"/products", &items); err != nil {
		return nil, err
	}

	descriptors := make([]Descriptor, 0, len(items))
	loweredQuery := strings.ToLower(query)
	for _, item := range items {
		if query != "" && !strings.Contains(strings.ToLower(item.Title), loweredQuery) {
			continue
		}
		descriptors = append(descriptors, item.toDescriptor(c.fakeStoreBaseURL))
	}
	return descriptors, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("gateway: failed to build request for %s: %w", endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", endpoint).Msg("gateway: upstream request failed")
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("gateway: upstream returned non-success status")
		return fmt.Errorf("%w: %s returned status %d", ErrUpstream, endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response from %s: %v", ErrUpstream, endpoint, err)
	}

	return nil
}
