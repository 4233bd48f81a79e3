package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/ishop4u/internal/catalog"
	"github.com/vasiliy-maslov/ishop4u/internal/config"
)

func newClient(escuelaJS, fakeStore string) *catalog.Client {
	return catalog.NewClient(config.CatalogConfig{
		EscuelaJSBaseURL: escuelaJS,
		FakeStoreBaseURL: fakeStore,
	})
}

func TestClient_FetchEscuelaJS(t *testing.T) {
	var gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("title")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 4, "title": "Classic Red Jogger", "price": 98, "description": "Comfy joggers",
			 "category": {"id": 1, "name": "Clothes"},
			 "images": ["https://img.example/4-a.png", "https://img.example/4-b.png"]},
			{"id": 7, "title": "Mystery Item", "price": 10}
		]`))
	}))
	defer upstream.Close()

	client := newClient(upstream.URL, "http://unused.invalid")

	descriptors, err := client.Fetch(context.Background(), catalog.SourceEscuelaJS, "jogger")
	require.NoError(t, err)
	assert.Equal(t, "jogger", gotQuery, "query should be delegated to the upstream title filter")

	want := []catalog.Descriptor{
		{
			ID:            "4",
			Title:         "Classic Red Jogger",
			Price:         98,
			Description:   "Comfy joggers",
			CategoryName:  "Clothes",
			ImageURLs:     []string{"https://img.example/4-a.png", "https://img.example/4-b.png"},
			AffiliateLink: upstream.URL + "/products/4",
		},
		{
			// Missing fields default instead of aborting the batch.
			ID:            "7",
			Title:         "Mystery Item",
			Price:         10,
			AffiliateLink: upstream.URL + "/products/7",
		},
	}
	if diff := cmp.Diff(want, descriptors); diff != "" {
		t.Errorf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_FetchFakeStore(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Fjallraven Backpack", "price": 109.95, "description": "Fits 15 inch laptops",
			 "category": "men's clothing", "image": "https://img.example/1.jpg"},
			{"id": 2, "title": "Mens Casual T-Shirt", "price": 22.3, "description": "Slim fit",
			 "category": "men's clothing", "image": "https://img.example/2.jpg"}
		]`))
	}))
	defer upstream.Close()

	client := newClient("http://unused.invalid", upstream.URL)

	tests := []struct {
		name      string
		query     string
		wantIDs   []string
	}{
		{name: "no_query_returns_all", query: "", wantIDs: []string{"1", "2"}},
		{name: "case_insensitive_substring", query: "BACKpack", wantIDs: []string{"1"}},
		{name: "no_match", query: "toaster", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptors, err := client.Fetch(context.Background(), catalog.SourceFakeStore, tt.query)
			require.NoError(t, err)

			gotIDs := make([]string, 0, len(descriptors))
			for _, d := range descriptors {
				gotIDs = append(gotIDs, d.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestClient_FetchFakeStore_Mapping(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 9, "title": "Gold Ring", "price": 168, "description": "Shiny",
			"category": "jewelery", "image": "https://img.example/9.jpg"}]`))
	}))
	defer upstream.Close()

	client := newClient("http://unused.invalid", upstream.URL)

	descriptors, err := client.Fetch(context.Background(), catalog.SourceFakeStore, "")
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	want := catalog.Descriptor{
		ID:            "9",
		Title:         "Gold Ring",
		Price:         168,
		Description:   "Shiny",
		CategoryName:  "jewelery",
		ImageURLs:     []string{"https://img.example/9.jpg"},
		AffiliateLink: upstream.URL + "/products/9",
	}
	if diff := cmp.Diff(want, descriptors[0]); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_FetchTop(t *testing.T) {
	var gotLimit, gotOffset string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		gotOffset = r.URL.Query().Get("offset")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "title": "First", "price": 5, "images": []}]`))
	}))
	defer upstream.Close()

	client := newClient(upstream.URL, "http://unused.invalid")

	descriptors, err := client.FetchTop(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "5", gotLimit)
	assert.Equal(t, "0", gotOffset)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "First", descriptors[0].Title)
}

func TestClient_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non_success_status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed_body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(tt.handler)
			defer upstream.Close()

			client := newClient(upstream.URL, upstream.URL)

			_, err := client.Fetch(context.Background(), catalog.SourceEscuelaJS, "")
			assert.True(t, errors.Is(err, catalog.ErrUpstream), "expected ErrUpstream, got %v", err)

			_, err = client.Fetch(context.Background(), catalog.SourceFakeStore, "")
			assert.True(t, errors.Is(err, catalog.ErrUpstream), "expected ErrUpstream, got %v", err)
		})
	}
}

func TestClient_UnknownSourceFallsBackToEscuelaJS(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	client := newClient(upstream.URL, "http://unused.invalid")

	_, err := client.Fetch(context.Background(), catalog.Source("amazon"), "")
	require.NoError(t, err)
	assert.True(t, called, "unknown sources should be served by EscuelaJS")
}
