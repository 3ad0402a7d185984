package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofialindqvist/garmentry/internal/models"
	"github.com/sofialindqvist/garmentry/internal/money"
)

const catalogBody = `[
	{"id": 1, "name": "Oxford Shirt", "description": "Classic fit", "category": "MEN",
	 "price": 45.00, "stock": 12, "size": "M", "color": "Blue",
	 "imageUrls": "https://img.example/shirt-1.jpg, https://img.example/shirt-2.jpg"},
	{"id": 2, "name": "Summer Dress", "description": "Light cotton", "category": "WOMEN",
	 "price": "39.99", "stock": 3, "size": "S", "color": "Red", "imageUrls": ""}
]`

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogBody))
	}))
	defer srv.Close()

	products, err := NewClient(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	// numeric ids normalise to strings, string prices decode too
	assert.Equal(t, models.ID("1"), products[0].ID)
	assert.Equal(t, models.CategoryMen, products[0].Category)
	assert.True(t, products[0].Price.Equal(money.FromFloat(45)))
	assert.Equal(t, []string{"https://img.example/shirt-1.jpg", "https://img.example/shirt-2.jpg"}, products[0].Images())

	assert.Equal(t, models.ID("2"), products[1].ID)
	assert.True(t, products[1].Price.Equal(money.FromFloat(39.99)))
	assert.Empty(t, products[1].Images())
}

func TestClientFailuresCollapseToUnavailable(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("garbage body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // shut down before the call

		_, err := NewClient(srv.URL).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestCatalogLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogBody))
	}))
	defer srv.Close()

	cat := &Catalog{}
	_, loading, _ := cat.Products()
	assert.True(t, loading, "catalog starts in the loading state")

	cat.Load(context.Background(), NewClient(srv.URL))

	products, loading, err := cat.Products()
	require.NoError(t, err)
	assert.False(t, loading)
	assert.Len(t, products, 2)

	p, ok := cat.Get("2")
	require.True(t, ok)
	assert.Equal(t, "Summer Dress", p.Name)

	_, ok = cat.Get("999")
	assert.False(t, ok)
}

func TestCatalogLoadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	cat := &Catalog{}
	cat.Load(context.Background(), NewClient(srv.URL))

	products, loading, err := cat.Products()
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, loading)
	assert.Empty(t, products)

	_, ok := cat.Get("1")
	assert.False(t, ok)
}
