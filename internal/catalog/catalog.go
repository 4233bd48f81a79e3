package catalog

import (
	"context"
	"errors"
)

// Source identifies the upstream catalog a product came from.
type Source string

const (
	SourceEscuelaJS Source = "escuelajs"
	SourceFakeStore Source = "fakestore"
)

func (s Source) String() string {
	return string(s)
}

// ErrUpstream marks network failures and non-success responses from an
// upstream catalog API.
var ErrUpstream = errors.New("upstream catalog request failed")

// Descriptor is the canonical, source-agnostic product representation.
// Field mapping from each upstream's own shape happens once, at the
// gateway boundary.
type Descriptor struct {
	ID            string
	Title         string
	Price         float64
	Description   string
	CategoryName  string
	ImageURLs     []string
	AffiliateLink string
}

type Gateway interface {
	Fetch(ctx context.Context, source Source, query string) ([]Descriptor, error)
	FetchTop(ctx context.Context, limit int) ([]Descriptor, error)
}
