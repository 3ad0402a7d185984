// Package cart implements the shopping cart ledger: at most one line per
// product, quantities bounded by stock.
package cart

import (
	"encoding/json"

	"github.com/sofialindqvist/garmentry/internal/models"
	"github.com/sofialindqvist/garmentry/internal/money"
)

// Ledger is one visitor's cart. Operations are total: out-of-range
// quantities are clamped or ignored, never rejected with an error.
// A Ledger is not safe for concurrent use; each visitor has exactly one
// writer.
type Ledger struct {
	lines []models.CartLine
}

func New() *Ledger {
	return &Ledger{}
}

// Restore rebuilds a ledger from a snapshot. A corrupt snapshot returns an
// empty ledger along with the decode error so the caller can log it; the
// cart itself is always usable.
func Restore(snapshot []byte) (*Ledger, error) {
	l := New()
	if len(snapshot) == 0 {
		return l, nil
	}
	var lines []models.CartLine
	if err := json.Unmarshal(snapshot, &lines); err != nil {
		return New(), err
	}
	l.lines = lines
	return l, nil
}

// Snapshot serialises the lines for the persistence adapter. The format is
// the JSON array of {product, quantity} the storefront has always stored.
func (l *Ledger) Snapshot() ([]byte, error) {
	if l.lines == nil {
		return json.Marshal([]models.CartLine{})
	}
	return json.Marshal(l.lines)
}

// Add puts one unit of the product in the cart. Out-of-stock products are
// ignored. An existing line grows by one but never past the product's
// stock; hitting the cap is silent.
func (l *Ledger) Add(p models.Product) {
	if !p.InStock() {
		return
	}
	for i := range l.lines {
		if l.lines[i].Product.ID == p.ID {
			if l.lines[i].Quantity < p.Stock {
				l.lines[i].Quantity++
			}
			return
		}
	}
	l.lines = append(l.lines, models.CartLine{Product: p, Quantity: 1})
}

// SetQuantity sets a line's quantity. Zero or negative removes the line;
// anything above the product's stock is clamped down to it.
func (l *Ledger) SetQuantity(id models.ID, q int) {
	if q <= 0 {
		l.Remove(id)
		return
	}
	for i := range l.lines {
		if l.lines[i].Product.ID == id {
			l.lines[i].Quantity = min(q, l.lines[i].Product.Stock)
			return
		}
	}
}

// Remove deletes the line for the product, if any.
func (l *Ledger) Remove(id models.ID) {
	for i := range l.lines {
		if l.lines[i].Product.ID == id {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Called after a completed order.
func (l *Ledger) Clear() {
	l.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (l *Ledger) Lines() []models.CartLine {
	out := make([]models.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

// Subtotal sums price times quantity over all lines.
func (l *Ledger) Subtotal() money.Amount {
	total := money.Zero
	for _, line := range l.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// ItemCount is the total number of units, not the number of lines.
func (l *Ledger) ItemCount() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

// Len is the number of distinct products.
func (l *Ledger) Len() int {
	return len(l.lines)
}
