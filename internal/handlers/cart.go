package handlers

import (
	"net/http"

	"github.com/sofialindqvist/garmentry/internal/models"
	"github.com/sofialindqvist/garmentry/internal/money"
)

type cartResponse struct {
	Items     []models.CartLine `json:"items"`
	Subtotal  money.Amount      `json:"subtotal"`
	ItemCount int               `json:"itemCount"`
}

func (h *ShopHandler) cartState(v *Visitor) cartResponse {
	return cartResponse{
		Items:     v.Cart.Lines(),
		Subtotal:  v.Cart.Subtotal(),
		ItemCount: v.Cart.ItemCount(),
	}
}

func (h *ShopHandler) Cart(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()
	writeJSON(w, http.StatusOK, h.cartState(v))
}

// AddToCart adds one unit of a product. Out-of-stock products and lines at
// the stock cap are silently left alone, so the response is simply the
// resulting cart either way.
func (h *ShopHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID models.ID `json:"productId"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	p, ok := h.Catalog.Get(req.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	v.Cart.Add(p)
	h.saveCart(v)
	writeJSON(w, http.StatusOK, h.cartState(v))
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line;
// quantities above stock are clamped. Operates on the cart's own product
// snapshot, so it works even while the catalog is still loading.
func (h *ShopHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID models.ID `json:"productId"`
		Quantity  int       `json:"quantity"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	v.Cart.SetQuantity(req.ProductID, req.Quantity)
	h.saveCart(v)
	writeJSON(w, http.StatusOK, h.cartState(v))
}

func (h *ShopHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID models.ID `json:"productId"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	v.Cart.Remove(req.ProductID)
	h.saveCart(v)
	writeJSON(w, http.StatusOK, h.cartState(v))
}
