// Package wishlist implements the saved-for-later product set.
package wishlist

import (
	"encoding/json"

	"github.com/sofialindqvist/garmentry/internal/models"
)

// Set is an id-deduplicated product collection. Insertion order is kept for
// display but carries no meaning.
type Set struct {
	products []models.Product
}

func New() *Set {
	return &Set{}
}

// Restore rebuilds a set from a snapshot. Corrupt data yields an empty set
// plus the decode error for logging.
func Restore(snapshot []byte) (*Set, error) {
	s := New()
	if len(snapshot) == 0 {
		return s, nil
	}
	var products []models.Product
	if err := json.Unmarshal(snapshot, &products); err != nil {
		return New(), err
	}
	s.products = products
	return s, nil
}

// Snapshot serialises the set for the persistence adapter.
func (s *Set) Snapshot() ([]byte, error) {
	if s.products == nil {
		return json.Marshal([]models.Product{})
	}
	return json.Marshal(s.products)
}

// Toggle removes the product if present, otherwise appends it. Returns true
// when the product ended up in the set.
func (s *Set) Toggle(p models.Product) bool {
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return false
		}
	}
	s.products = append(s.products, p)
	return true
}

// Contains reports membership by product id.
func (s *Set) Contains(id models.ID) bool {
	for _, p := range s.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Products returns a copy of the set in insertion order.
func (s *Set) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len is the number of saved products.
func (s *Set) Len() int {
	return len(s.products)
}
