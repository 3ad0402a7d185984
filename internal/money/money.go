// Package money holds the currency type used across the storefront.
//
// Prices arrive from the upstream catalog as JSON numbers, but historical
// snapshots and query parameters carry them as strings, so parsing is
// deliberately permissive: anything that does not look like a number is
// treated as zero rather than rejected.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a non-negative currency value in dollars.
type Amount struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// FromDecimal wraps a raw decimal.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// FromFloat converts a float dollar value.
func FromFloat(f float64) Amount {
	return Amount{d: decimal.NewFromFloat(f)}
}

// Parse reads a dollar amount from a string. A leading "$" and surrounding
// whitespace are ignored. Malformed input parses as zero.
func Parse(s string) Amount {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero
	}
	return Amount{d: d}
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// MulInt returns the amount multiplied by a quantity.
func (a Amount) MulInt(n int) Amount {
	return Amount{d: a.d.Mul(decimal.NewFromInt(int64(n)))}
}

// Cmp compares two amounts: -1 if a < b, 0 if equal, +1 if a > b.
func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

// Equal reports whether the two amounts are numerically equal.
func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.d.IsZero()
}

// Decimal exposes the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.d
}

// String renders the plain numeric form, e.g. "12.5".
func (a Amount) String() string {
	return a.d.String()
}

// Format renders the display form with a currency symbol, e.g. "$12.50".
func (a Amount) Format() string {
	return "$" + a.d.StringFixed(2)
}

// MarshalJSON emits the amount as a JSON number with two decimal places.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts numbers, quoted strings, and null. Malformed values
// decode as zero, matching Parse.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	*a = Parse(s)
	return nil
}
