// Package checkout implements the three-step checkout wizard: shipping
// details, payment details, review. Strictly linear, no skipping.
package checkout

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sofialindqvist/garmentry/internal/models"
	"github.com/sofialindqvist/garmentry/internal/money"
)

// Step is a wizard position.
type Step string

const (
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepReview   Step = "review"
)

// FreeShippingOver is the subtotal above which shipping is free; below or at
// it, FlatShipping applies.
var (
	FreeShippingOver = money.FromFloat(50)
	FlatShipping     = money.FromFloat(10)
)

// ShippingFor prices shipping for a cart subtotal. The threshold is strict:
// a subtotal of exactly 50 still pays flat shipping.
func ShippingFor(subtotal money.Amount) money.Amount {
	if subtotal.Cmp(FreeShippingOver) > 0 {
		return money.Zero
	}
	return FlatShipping
}

// Workflow is one visitor's in-progress checkout. Not safe for concurrent
// use; each visitor has exactly one writer.
type Workflow struct {
	step   Step
	form   models.CustomerInfo
	errors map[string]string
}

func New() *Workflow {
	return &Workflow{step: StepShipping, errors: map[string]string{}}
}

// Step reports the current wizard position.
func (w *Workflow) Step() Step {
	return w.step
}

// Form returns the fields entered so far.
func (w *Workflow) Form() models.CustomerInfo {
	return w.form
}

// Errors returns a copy of the field-level validation errors.
func (w *Workflow) Errors() map[string]string {
	out := make(map[string]string, len(w.errors))
	for k, v := range w.errors {
		out[k] = v
	}
	return out
}

// SetField stores a form value and clears any error previously reported for
// that field. Unknown field names are ignored and reported false.
func (w *Workflow) SetField(field, value string) bool {
	switch field {
	case "email":
		w.form.Email = value
	case "fullName":
		w.form.FullName = value
	case "address":
		w.form.Address = value
	case "city":
		w.form.City = value
	case "zipCode":
		w.form.ZipCode = value
	case "country":
		w.form.Country = value
	case "cardNumber":
		w.form.CardNumber = value
	case "cardName":
		w.form.CardName = value
	case "expiryDate":
		w.form.ExpiryDate = value
	case "cvv":
		w.form.CVV = value
	default:
		return false
	}
	delete(w.errors, field)
	return true
}

// Next validates the current step and advances on success. On failure the
// step is unchanged and Errors carries one message per failing field.
// Review does not advance through Next; completion is explicit.
func (w *Workflow) Next() bool {
	switch w.step {
	case StepShipping:
		if errs := w.validateShipping(); len(errs) > 0 {
			w.errors = errs
			return false
		}
		w.errors = map[string]string{}
		w.step = StepPayment
		return true
	case StepPayment:
		if errs := w.validatePayment(); len(errs) > 0 {
			w.errors = errs
			return false
		}
		w.errors = map[string]string{}
		w.step = StepReview
		return true
	default:
		return false
	}
}

// Back steps to the previous wizard position, keeping all entered values.
func (w *Workflow) Back() {
	switch w.step {
	case StepPayment:
		w.step = StepShipping
	case StepReview:
		w.step = StepPayment
	}
}

// Cancel discards everything and returns to the shipping step. The cart is
// untouched.
func (w *Workflow) Cancel() {
	*w = *New()
}

// Complete finishes the checkout from the review step: it prices the order,
// mints an order number, and resets the workflow for the next purchase.
// The caller is responsible for clearing the cart. From any other step it
// reports false.
func (w *Workflow) Complete(lines []models.CartLine, subtotal money.Amount) (models.Order, bool) {
	if w.step != StepReview {
		return models.Order{}, false
	}

	shipping := ShippingFor(subtotal)
	order := models.Order{
		OrderNumber: nextOrderNumber(),
		Lines:       lines,
		Subtotal:    subtotal,
		Shipping:    shipping,
		Total:       subtotal.Add(shipping),
		Customer:    w.form,
		PlacedAt:    time.Now(),
	}
	*w = *New()
	return order, true
}

func (w *Workflow) validateShipping() map[string]string {
	errs := map[string]string{}
	if w.form.Email == "" {
		errs["email"] = "Email is required"
	}
	if w.form.FullName == "" {
		errs["fullName"] = "Full name is required"
	}
	if w.form.Address == "" {
		errs["address"] = "Address is required"
	}
	if w.form.City == "" {
		errs["city"] = "City is required"
	}
	if w.form.ZipCode == "" {
		errs["zipCode"] = "Zip code is required"
	}
	if w.form.Country == "" {
		errs["country"] = "Country is required"
	}
	return errs
}

func (w *Workflow) validatePayment() map[string]string {
	errs := map[string]string{}
	card := strings.Join(strings.Fields(w.form.CardNumber), "")
	if len(card) < 16 || !digitsOnly(card) {
		errs["cardNumber"] = "Valid card number is required"
	}
	if w.form.CardName == "" {
		errs["cardName"] = "Cardholder name is required"
	}
	// Expiry format is intentionally not checked beyond presence; the form
	// has always accepted any non-empty string here.
	if w.form.ExpiryDate == "" {
		errs["expiryDate"] = "Expiry date is required"
	}
	if len(w.form.CVV) < 3 || !digitsOnly(w.form.CVV) {
		errs["cvv"] = "Valid CVV is required"
	}
	return errs
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Order numbers are ORD-<millis> with a monotonic guard so two completions
// in the same millisecond still get distinct numbers.
var (
	orderMu   sync.Mutex
	lastStamp int64
)

func nextOrderNumber() string {
	orderMu.Lock()
	defer orderMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastStamp {
		now = lastStamp + 1
	}
	lastStamp = now
	return "ORD-" + strconv.FormatInt(now, 10)
}
