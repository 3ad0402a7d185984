package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sofialindqvist/garmentry/internal/money"
)

// Category groups products into the storefront's top-level sections.
type Category string

const (
	CategoryAll   Category = "ALL" // filter-only pseudo category
	CategoryMen   Category = "MEN"
	CategoryWomen Category = "WOMEN"
	CategoryKids  Category = "KIDS"
	CategoryOther Category = "OTHER"
)

// Categories lists the real product categories, in display order.
var Categories = []Category{CategoryMen, CategoryWomen, CategoryKids}

// ParseCategory normalises a raw category string. Unknown values map to
// OTHER so a catalog record with a surprise category still shows up
// somewhere instead of vanishing.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToUpper(strings.TrimSpace(s))); c {
	case CategoryAll, CategoryMen, CategoryWomen, CategoryKids:
		return c
	default:
		return CategoryOther
	}
}

// UnmarshalJSON normalises categories on the way in.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = ParseCategory(s)
	return nil
}

// ID identifies a product. The upstream catalog emits numeric ids, so the
// decoder accepts both numbers and strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	*id = ID(s)
	return nil
}

// Product is one catalog record. Immutable once fetched; cart and wishlist
// entries hold copies of it in their snapshots.
type Product struct {
	ID          ID           `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    Category     `json:"category"`
	Price       money.Amount `json:"price"`
	Stock       int          `json:"stock"`
	Size        string       `json:"size"`
	Color       string       `json:"color"`
	ImageURLs   string       `json:"imageUrls"` // comma-separated, as the upstream stores it
}

// Images splits the comma-separated image list, dropping blanks.
func (p Product) Images() []string {
	var urls []string
	for _, u := range strings.Split(p.ImageURLs, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// FirstImage is the display image, or "" when the product has none.
func (p Product) FirstImage() string {
	if urls := p.Images(); len(urls) > 0 {
		return urls[0]
	}
	return ""
}

// InStock reports whether the product can be added to a cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// CartLine is one distinct product in a cart with its quantity.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price times quantity.
func (l CartLine) LineTotal() money.Amount {
	return l.Product.Price.MulInt(l.Quantity)
}

// CustomerInfo carries the checkout form fields. Field names follow the
// form's wire names.
type CustomerInfo struct {
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	ZipCode    string `json:"zipCode"`
	Country    string `json:"country"`
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

// Order is the result of a completed checkout. It is handed to the API
// caller once and never persisted.
type Order struct {
	OrderNumber string       `json:"orderNumber"`
	Lines       []CartLine   `json:"items"`
	Subtotal    money.Amount `json:"subtotal"`
	Shipping    money.Amount `json:"shipping"`
	Total       money.Amount `json:"total"`
	Customer    CustomerInfo `json:"customer"`
	PlacedAt    time.Time    `json:"placedAt"`
}
