package handlers

import (
	"net/http"

	"github.com/sofialindqvist/garmentry/internal/catalog"
	"github.com/sofialindqvist/garmentry/internal/models"
	"github.com/sofialindqvist/garmentry/internal/money"
)

type productsResponse struct {
	Loading  bool                `json:"loading"`
	Products []models.Product    `json:"products"`
	Facets   catalog.Facets      `json:"facets"`
	Count    int                 `json:"count"`
	Filter   catalog.FilterState `json:"filter"`
}

// Products is the grid endpoint. Query parameters present in the request
// are applied to the visitor's filter state before computing the visible
// list; absent parameters leave the corresponding state alone, so the
// category-change sort reset only fires when the client actually switches
// category.
func (h *ShopHandler) Products(w http.ResponseWriter, r *http.Request) {
	all, loading, err := h.Catalog.Products()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	q := r.URL.Query()
	if q.Has("category") {
		v.Filter.SetCategory(models.ParseCategory(q.Get("category")))
	}
	if q.Has("q") {
		v.Filter.Query = q.Get("q")
	}
	if q.Has("min_price") {
		v.Filter.MinPrice = parseBound(q.Get("min_price"))
	}
	if q.Has("max_price") {
		v.Filter.MaxPrice = parseBound(q.Get("max_price"))
	}
	if q.Has("size") {
		v.Filter.Sizes = dropEmpty(q["size"])
	}
	if q.Has("color") {
		v.Filter.Colors = dropEmpty(q["color"])
	}
	if q.Has("sort") {
		v.Filter.Sort = catalog.ParseSortOrder(q.Get("sort"))
	}

	if loading {
		writeJSON(w, http.StatusOK, productsResponse{
			Loading:  true,
			Products: []models.Product{},
			Filter:   v.Filter,
		})
		return
	}

	visible := catalog.Visible(all, v.Filter)
	writeJSON(w, http.StatusOK, productsResponse{
		Products: visible,
		Facets:   catalog.Options(all, v.Filter),
		Count:    len(visible),
		Filter:   v.Filter,
	})
}

// ProductByID serves the detail view for one product.
func (h *ShopHandler) ProductByID(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Catalog.Get(models.ID(r.PathValue("id")))
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Categories lists the storefront sections.
func (h *ShopHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Categories)
}

// ClearFilters drops the visitor's price and size/color selections, keeping
// category, search, and sort.
func (h *ShopHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	v.Filter.ClearFacets()
	writeJSON(w, http.StatusOK, map[string]any{"filter": v.Filter})
}

// parseBound turns a price query parameter into an optional bound: empty
// means unset, anything else goes through the permissive money parser.
func parseBound(s string) *money.Amount {
	if s == "" {
		return nil
	}
	amt := money.Parse(s)
	return &amt
}

func dropEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
