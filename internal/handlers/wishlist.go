package handlers

import (
	"net/http"

	"github.com/sofialindqvist/garmentry/internal/models"
)

type wishlistResponse struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
}

func (h *ShopHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()
	writeJSON(w, http.StatusOK, wishlistResponse{
		Products: v.Wishlist.Products(),
		Count:    v.Wishlist.Len(),
	})
}

// ToggleWishlist adds or removes a product. Removal also works for ids the
// catalog no longer carries, so a saved product that has since disappeared
// upstream can still be cleared.
func (h *ShopHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID models.ID `json:"productId"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	v := h.visitor(w, r)
	v.Lock()
	defer v.Unlock()

	p, ok := h.Catalog.Get(req.ProductID)
	if !ok {
		if !v.Wishlist.Contains(req.ProductID) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		p = models.Product{ID: req.ProductID}
	}

	v.Wishlist.Toggle(p)
	h.saveWishlist(v)
	writeJSON(w, http.StatusOK, wishlistResponse{
		Products: v.Wishlist.Products(),
		Count:    v.Wishlist.Len(),
	})
}
