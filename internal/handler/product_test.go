package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vasiliy-maslov/ishop4u/internal/catalog"
	"github.com/vasiliy-maslov/ishop4u/internal/handler"
	"github.com/vasiliy-maslov/ishop4u/internal/product"
)

type mockProductService struct {
	listFunc func(ctx context.Context, query string, source catalog.Source) ([]product.Product, error)
	topFunc  func(ctx context.Context) ([]product.Product, error)
}

func (m *mockProductService) List(ctx context.Context, query string, source catalog.Source) ([]product.Product, error) {
	return m.listFunc(ctx, query, source)
}

func (m *mockProductService) Top(ctx context.Context) ([]product.Product, error) {
	return m.topFunc(ctx)
}

func TestProductHandler_GetProducts(t *testing.T) {
	t.Run("defaults_to_escuelajs", func(t *testing.T) {
		var gotSource catalog.Source
		var gotQuery string
		svc := &mockProductService{
			listFunc: func(ctx context.Context, query string, source catalog.Source) ([]product.Product, error) {
				gotSource = source
				gotQuery = query
				return []product.Product{{ID: "1", Title: "Jogger", Price: 98, Source: "escuelajs", AffiliateLink: "#"}}, nil
			},
		}
		h := handler.NewProductHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/products?query=jogger", nil)
		rr := httptest.NewRecorder()

		h.GetProducts(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, catalog.SourceEscuelaJS, gotSource)
		assert.Equal(t, "jogger", gotQuery)
		assert.Contains(t, rr.Body.String(), `"title":"Jogger"`)
	})

	t.Run("explicit_source", func(t *testing.T) {
		var gotSource catalog.Source
		svc := &mockProductService{
			listFunc: func(ctx context.Context, query string, source catalog.Source) ([]product.Product, error) {
				gotSource = source
				return []product.Product{}, nil
			},
		}
		h := handler.NewProductHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/products?source=fakestore", nil)
		rr := httptest.NewRecorder()

		h.GetProducts(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, catalog.SourceFakeStore, gotSource)
	})

	t.Run("upstream_failure_surfaces_detail", func(t *testing.T) {
		svc := &mockProductService{
			listFunc: func(ctx context.Context, query string, source catalog.Source) ([]product.Product, error) {
				return nil, catalog.ErrUpstream
			},
		}
		h := handler.NewProductHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rr := httptest.NewRecorder()

		h.GetProducts(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), catalog.ErrUpstream.Error())
	})
}

func TestProductHandler_GetTopProducts(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockProductService{
			topFunc: func(ctx context.Context) ([]product.Product, error) {
				return []product.Product{
					{ID: "1", Title: "First", Price: 1, Source: "escuelajs", AffiliateLink: "#"},
					{ID: "2", Title: "Second", Price: 2, Source: "escuelajs", AffiliateLink: "#"},
				}, nil
			},
		}
		h := handler.NewProductHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/top_products", nil)
		rr := httptest.NewRecorder()

		h.GetTopProducts(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"title":"First"`)
	})

	t.Run("upstream_failure", func(t *testing.T) {
		svc := &mockProductService{
			topFunc: func(ctx context.Context) ([]product.Product, error) {
				return nil, catalog.ErrUpstream
			},
		}
		h := handler.NewProductHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/top_products", nil)
		rr := httptest.NewRecorder()

		h.GetTopProducts(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
