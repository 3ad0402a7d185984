package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// CSRFToken hands the client the token it must echo in the X-CSRF-Token
// header on mutating requests.
func (h *ShopHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"token": csrf.Token(r)})
}
