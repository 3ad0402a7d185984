package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sofialindqvist/garmentry/internal/checkout"
	"github.com/sofialindqvist/garmentry/internal/models"
	"github.com/sofialindqvist/garmentry/internal/money"
	"github.com/sofialindqvist/garmentry/internal/store"
)

type checkoutResponse struct {
	Step     checkout.Step       `json:"step"`
	Form     models.CustomerInfo `json:"form"`
	Errors   map[string]string   `json:"errors"`
	Items    []models.CartLine   `json:"items"`
	Subtotal money.Amount        `json:"subtotal"`
	Shipping money.Amount        `json:"shipping"`
	Total    money.Amount        `json:"total"`
}

func checkoutState(v *Visitor) checkoutResponse {
	subtotal := v.Cart.Subtotal()
	shipping := checkout.ShippingFor(subtotal)
	return checkoutResponse{
		Step:     v.Checkout.Step(),
		Form:     v.Checkout.Form(),
		Errors:   v.Checkout.Errors(),
		Items:    v.Cart.Lines(),
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}

func (h *ShopHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()
	writeJSON(w, http.StatusOK, checkoutState(v))
}

// CheckoutField stores one form value. Editing a field clears its error,
// matching how the form recovers from validation failures.
func (h *ShopHandler) CheckoutField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	if !v.Checkout.SetField(req.Field, req.Value) {
		writeError(w, http.StatusBadRequest, "unknown field")
		return
	}
	writeJSON(w, http.StatusOK, checkoutState(v))
}

// CheckoutNext advances the wizard when the current step validates. On
// failure the step stays put and the response carries the field errors.
func (h *ShopHandler) CheckoutNext(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	v.Checkout.Next()
	writeJSON(w, http.StatusOK, checkoutState(v))
}

func (h *ShopHandler) CheckoutBack(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	v.Checkout.Back()
	writeJSON(w, http.StatusOK, checkoutState(v))
}

// CheckoutCancel abandons the wizard, discarding entered fields. The cart
// is untouched.
func (h *ShopHandler) CheckoutCancel(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	v.Checkout.Cancel()
	writeJSON(w, http.StatusOK, checkoutState(v))
}

// CheckoutComplete places the order from the review step, clears the cart,
// and returns the order to the caller. Orders are not stored anywhere:
// this response is the only copy.
func (h *ShopHandler) CheckoutComplete(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	order, ok := v.Checkout.Complete(v.Cart.Lines(), v.Cart.Subtotal())
	if !ok {
		writeError(w, http.StatusConflict, "checkout is not at the review step")
		return
	}

	v.Cart.Clear()
	if err := h.Store.DeleteSnapshot(store.CartKey(v.ID)); err != nil {
		slog.Error("Failed to delete cart snapshot", "visitor", v.ID, "error", err)
	}

	slog.Info("Order placed", "order", order.OrderNumber, "total", order.Total.Format(), "items", len(order.Lines))
	writeJSON(w, http.StatusOK, order)
}
