// Package catalog owns the product list and the pure filtering pipeline
// that computes what the storefront shows for a given filter state.
package catalog

import (
	"slices"
	"strings"

	"github.com/sofialindqvist/garmentry/internal/models"
	"github.com/sofialindqvist/garmentry/internal/money"
)

// SortOrder selects product ordering. Values match the sort control's wire
// names.
type SortOrder string

const (
	SortDefault   SortOrder = "default"    // catalog order, untouched
	SortPriceAsc  SortOrder = "price-low"  // cheapest first
	SortPriceDesc SortOrder = "price-high" // most expensive first
)

// ParseSortOrder maps a raw sort parameter to a SortOrder, defaulting to
// catalog order for anything unrecognised.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortPriceAsc, SortPriceDesc:
		return SortOrder(s)
	default:
		return SortDefault
	}
}

// FilterState is one visitor's current browse state. The zero value is not
// useful; construct with NewFilterState.
type FilterState struct {
	Category models.Category `json:"category"`
	Query    string          `json:"query"`
	MinPrice *money.Amount   `json:"minPrice,omitempty"`
	MaxPrice *money.Amount   `json:"maxPrice,omitempty"`
	Sizes    []string        `json:"sizes"`
	Colors   []string        `json:"colors"`
	Sort     SortOrder       `json:"sort"`
}

// NewFilterState starts on the ALL section with no filters applied.
func NewFilterState() FilterState {
	return FilterState{Category: models.CategoryAll, Sort: SortDefault}
}

// SetCategory switches section. Changing section resets the sort order to
// catalog order; re-selecting the current section does not. This asymmetry
// (search and facet changes keep the sort) is deliberate and matches the
// storefront's historical behaviour.
func (f *FilterState) SetCategory(c models.Category) {
	if f.Category == c {
		return
	}
	f.Category = c
	f.Sort = SortDefault
}

// ToggleSize adds the size to the facet selection, or removes it if already
// selected.
func (f *FilterState) ToggleSize(size string) {
	f.Sizes = toggle(f.Sizes, size)
}

// ToggleColor adds or removes a color facet selection.
func (f *FilterState) ToggleColor(color string) {
	f.Colors = toggle(f.Colors, color)
}

func toggle(set []string, v string) []string {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(set, i, i+1)
	}
	return append(set, v)
}

// ClearFacets drops the price range and size/color selections. Category,
// search query, and sort order are left alone.
func (f *FilterState) ClearFacets() {
	f.MinPrice = nil
	f.MaxPrice = nil
	f.Sizes = nil
	f.Colors = nil
}

// Visible computes the product list shown for a filter state. Pure: the
// input slice is never mutated and the result is always freshly allocated.
//
// Stage order matters. Category and search narrow first (narrow also feeds
// Options, so facet choices are offered from that wider set), then price
// range, then the size and color facets, then sorting.
func Visible(all []models.Product, f FilterState) []models.Product {
	out := narrow(all, f)

	if f.MinPrice != nil {
		out = keep(out, func(p models.Product) bool {
			return p.Price.Cmp(*f.MinPrice) >= 0
		})
	}
	if f.MaxPrice != nil {
		out = keep(out, func(p models.Product) bool {
			return p.Price.Cmp(*f.MaxPrice) <= 0
		})
	}
	if len(f.Sizes) > 0 {
		out = keep(out, func(p models.Product) bool {
			return slices.Contains(f.Sizes, p.Size)
		})
	}
	if len(f.Colors) > 0 {
		out = keep(out, func(p models.Product) bool {
			return slices.Contains(f.Colors, p.Color)
		})
	}

	switch f.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return b.Price.Cmp(a.Price)
		})
	}
	return out
}

// narrow applies the category and search stages only.
func narrow(all []models.Product, f FilterState) []models.Product {
	out := make([]models.Product, 0, len(all))
	out = append(out, all...)

	if f.Category != models.CategoryAll {
		out = keep(out, func(p models.Product) bool {
			return p.Category == f.Category
		})
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		out = keep(out, func(p models.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) ||
				strings.Contains(strings.ToLower(string(p.Category)), q)
		})
	}
	return out
}

func keep(in []models.Product, pred func(models.Product) bool) []models.Product {
	out := in[:0]
	for _, p := range in {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
