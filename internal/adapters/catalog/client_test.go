package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/SscSPs/invoice_form_app/internal/adapters/catalog"
	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T, handler http.HandlerFunc) (*catalog.Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := catalog.NewClient(srv.URL+"/api/v1/products/", catalog.WithAPIToken("secret"))
	require.NoError(t, err)
	return client, &hits
}

func TestClient_Lookup(t *testing.T) {
	client, _ := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/42", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Oak table", "price": "120.50"}`))
	})

	product, err := client.Lookup(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", product.ID)
	assert.Equal(t, "Oak table", product.Name)
	assert.Equal(t, "120.50", product.Price.StringFixed(2))
}

func TestClient_LookupNumericPrice(t *testing.T) {
	client, _ := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "Rug", "price": 35.5}`))
	})

	product, err := client.Lookup(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "35.50", product.Price.StringFixed(2))
}

func TestClient_LookupFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		product string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"detail":"Not found."}`, product: "1"},
		{name: "server error", status: http.StatusInternalServerError, body: ``, product: "1"},
		{name: "malformed body", status: http.StatusOK, body: `<html>`, product: "1"},
		{name: "missing price", status: http.StatusOK, body: `{"name":"Lamp"}`, product: "1"},
		{name: "null price", status: http.StatusOK, body: `{"name":"Lamp","price":null}`, product: "1"},
		{name: "empty id", status: http.StatusOK, body: `{"name":"Lamp","price":"1"}`, product: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Lookup(context.Background(), tt.product)
			assert.ErrorIs(t, err, apperrors.ErrLookupFailed)
		})
	}
}

func TestClient_LookupTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := catalog.NewClient(base)
	require.NoError(t, err)

	_, err = client.Lookup(context.Background(), "1")
	assert.ErrorIs(t, err, apperrors.ErrLookupFailed)
}

func TestClient_SearchCachesPerTerm(t *testing.T) {
	client, hits := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/autocomplete", r.URL.Path)
		switch r.URL.Query().Get("q") {
		case "oak":
			_, _ = w.Write([]byte(`{"results":[{"id":"1","name":"Oak table","price":"10.00","text":"Oak table"},{"id":2,"text":"Oak chair","price":4}]}`))
		default:
			_, _ = w.Write([]byte(`{"results":[]}`))
		}
	})
	ctx := context.Background()

	products, err := client.Search(ctx, "oak")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "2", products[1].ID)
	assert.Equal(t, "Oak chair", products[1].Name)
	assert.Equal(t, "4.00", products[1].Price.StringFixed(2))

	_, err = client.Search(ctx, " oak ")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	products, err = client.Search(ctx, "pine")
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestClient_SearchBelowMinimumLength(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	t.Cleanup(srv.Close)

	client, err := catalog.NewClient(srv.URL, catalog.WithMinTermLength(3))
	require.NoError(t, err)

	products, err := client.Search(context.Background(), "oa")
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestClient_SearchFailureIsNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	client, hits := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"id":"1","name":"Oak","price":"1"}]}`))
	})

	_, err := client.Search(context.Background(), "oak")
	assert.ErrorIs(t, err, apperrors.ErrLookupFailed)

	fail.Store(false)
	products, err := client.Search(context.Background(), "oak")
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestNewClient_RejectsBadBaseURL(t *testing.T) {
	_, err := catalog.NewClient("not a url")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
