package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofialindqvist/garmentry/internal/money"
)

func TestCartAddUpdateRemove(t *testing.T) {
	shop := newTestShop(t, testCatalog)
	b := newBrowser()

	rr := b.do(t, shop.AddToCart, http.MethodPost, "/api/cart/add", `{"productId":"1"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = b.do(t, shop.AddToCart, http.MethodPost, "/api/cart/add", `{"productId":"1"}`)
	resp := decode[cartResponse](t, rr)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.ItemCount)
	assert.True(t, resp.Subtotal.Equal(money.FromFloat(60)))

	rr = b.do(t, shop.UpdateQuantity, http.MethodPost, "/api/cart/quantity", `{"productId":"1","quantity":99}`)
	resp = decode[cartResponse](t, rr)
	assert.Equal(t, 5, resp.ItemCount, "clamped to stock")

	rr = b.do(t, shop.RemoveFromCart, http.MethodPost, "/api/cart/remove", `{"productId":"1"}`)
	resp = decode[cartResponse](t, rr)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Subtotal.IsZero())
}

func TestCartAddOutOfStock(t *testing.T) {
	shop := newTestShop(t, testCatalog)
	b := newBrowser()

	// product 2 has zero stock; the add is a silent no-op
	rr := b.do(t, shop.AddToCart, http.MethodPost, "/api/cart/add", `{"productId":"2"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[cartResponse](t, rr)
	assert.Empty(t, resp.Items)
}

func TestCartAddUnknownProduct(t *testing.T) {
	shop := newTestShop(t, testCatalog)
	b := newBrowser()

	rr := b.do(t, shop.AddToCart, http.MethodPost, "/api/cart/add", `{"productId":"999"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCartSurvivesRestart(t *testing.T) {
	shop := newTestShop(t, testCatalog)
	b := newBrowser()

	b.do(t, shop.AddToCart, http.MethodPost, "/api/cart/add", `{"productId":"1"}`)
	b.do(t, shop.AddToCart, http.MethodPost, "/api/cart/add", `{"productId":"3"}`)

	// a fresh registry over the same store simulates a server restart
	shop.Visitors = NewVisitors(shop.Store)

	rr := b.do(t, shop.Cart, http.MethodGet, "/api/cart", "")
	resp := decode[cartResponse](t, rr)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Subtotal.Equal(money.FromFloat(150)))
}

func TestCorruptCartSnapshotStartsEmpty(t *testing.T) {
	shop := newTestShop(t, testCatalog)
	b := newBrowser()

	// establish the visitor, then corrupt their snapshot behind their back
	b.do(t, shop.AddToCart, http.MethodPost, "/api/cart/add", `{"productId":"1"}`)
	var visitorID string
	for id := range shop.Visitors.byID {
		visitorID = id
	}
	require.NotEmpty(t, visitorID)
	require.NoError(t, shop.Store.SaveSnapshot(visitorID+"/cart", []byte("{corrupt")))

	shop.Visitors = NewVisitors(shop.Store)

	rr := b.do(t, shop.Cart, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[cartResponse](t, rr)
	assert.Empty(t, resp.Items, "corrupt snapshot falls back to an empty cart")
}

func TestCartIsPerVisitor(t *testing.T) {
	shop := newTestShop(t, testCatalog)
	alice := newBrowser()
	bob := newBrowser()

	alice.do(t, shop.AddToCart, http.MethodPost, "/api/cart/add", `{"productId":"1"}`)

	rr := bob.do(t, shop.Cart, http.MethodGet, "/api/cart", "")
	resp := decode[cartResponse](t, rr)
	assert.Empty(t, resp.Items)
}
