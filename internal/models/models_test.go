package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofialindqvist/garmentry/internal/money"
)

func TestProductDecodeFromUpstream(t *testing.T) {
	// numeric id, numeric price, comma-separated image list
	raw := `{
		"id": 7, "name": "Oxford Shirt", "description": "Classic fit",
		"category": "men", "price": 45.5, "stock": 12, "size": "M",
		"color": "Blue", "imageUrls": "a.jpg, b.jpg, , c.jpg"
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, ID("7"), p.ID)
	assert.Equal(t, CategoryMen, p.Category, "category is normalised")
	assert.True(t, p.Price.Equal(money.FromFloat(45.5)))
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, p.Images())
	assert.Equal(t, "a.jpg", p.FirstImage())
	assert.True(t, p.InStock())
}

func TestProductDecodeStringIDAndPrice(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","price":"19.99","stock":0}`), &p))
	assert.Equal(t, ID("p1"), p.ID)
	assert.True(t, p.Price.Equal(money.FromFloat(19.99)))
	assert.False(t, p.InStock())
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryWomen, ParseCategory("WOMEN"))
	assert.Equal(t, CategoryWomen, ParseCategory(" women "))
	assert.Equal(t, CategoryAll, ParseCategory("all"))
	assert.Equal(t, CategoryOther, ParseCategory("ACCESSORIES"))
	assert.Equal(t, CategoryOther, ParseCategory(""))
}

func TestNoImages(t *testing.T) {
	p := Product{ImageURLs: " , "}
	assert.Empty(t, p.Images())
	assert.Equal(t, "", p.FirstImage())
}

func TestLineTotal(t *testing.T) {
	l := CartLine{
		Product:  Product{ID: "p1", Price: money.FromFloat(12.5)},
		Quantity: 4,
	}
	assert.True(t, l.LineTotal().Equal(money.FromFloat(50)))
}
