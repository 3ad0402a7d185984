package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/sofialindqvist/garmentry/internal/catalog"
	"github.com/sofialindqvist/garmentry/internal/store"
)

const sessionName = "garmentry-session"

// ShopHandler serves the storefront JSON API. All endpoints operate on the
// calling visitor's state, identified by a session cookie.
type ShopHandler struct {
	Store        *store.Store
	Catalog      *catalog.Catalog
	SessionStore *sessions.CookieStore
	Visitors     *Visitors
}

// visitor resolves the calling visitor, minting a new id (and cookie) on
// first contact.
func (h *ShopHandler) visitor(w http.ResponseWriter, r *http.Request) *Visitor {
	session, _ := h.SessionStore.Get(r, sessionName)
	id, ok := session.Values["visitor_id"].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		session.Values["visitor_id"] = id
		if err := session.Save(r, w); err != nil {
			slog.Warn("Failed to save session cookie", "error", err)
		}
	}
	return h.Visitors.Get(id)
}

// saveCart persists the visitor's cart snapshot. Persistence failures are
// logged and swallowed; the in-memory cart stays authoritative for the
// session.
func (h *ShopHandler) saveCart(v *Visitor) {
	snap, err := v.Cart.Snapshot()
	if err == nil {
		err = h.Store.SaveSnapshot(store.CartKey(v.ID), snap)
	}
	if err != nil {
		slog.Error("Failed to save cart snapshot", "visitor", v.ID, "error", err)
	}
}

func (h *ShopHandler) saveWishlist(v *Visitor) {
	snap, err := v.Wishlist.Snapshot()
	if err == nil {
		err = h.Store.SaveSnapshot(store.WishlistKey(v.ID), snap)
	}
	if err != nil {
		slog.Error("Failed to save wishlist snapshot", "visitor", v.ID, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a small request body, rejecting unknown fields.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
