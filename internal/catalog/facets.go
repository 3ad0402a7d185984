package catalog

import (
	"slices"

	"github.com/sofialindqvist/garmentry/internal/models"
	"github.com/sofialindqvist/garmentry/internal/money"
)

// Facets lists the filter values available to the visitor: every size and
// color present in the current section/search results, plus the highest
// price among them.
type Facets struct {
	Sizes    []string     `json:"sizes"`
	Colors   []string     `json:"colors"`
	MaxPrice money.Amount `json:"maxPrice"`
}

// Options derives the facet values from the category+search stage of the
// pipeline, not from the fully filtered result. A visitor who has selected
// size M must still see the other sizes on offer, so the visitor's own
// price/size/color selections never narrow the option set.
func Options(all []models.Product, f FilterState) Facets {
	narrowed := narrow(all, f)

	sizes := make([]string, 0)
	colors := make([]string, 0)
	max := money.Zero
	for _, p := range narrowed {
		if p.Size != "" && !slices.Contains(sizes, p.Size) {
			sizes = append(sizes, p.Size)
		}
		if p.Color != "" && !slices.Contains(colors, p.Color) {
			colors = append(colors, p.Color)
		}
		if p.Price.Cmp(max) > 0 {
			max = p.Price
		}
	}
	slices.Sort(sizes)
	slices.Sort(colors)
	return Facets{Sizes: sizes, Colors: colors, MaxPrice: max}
}
