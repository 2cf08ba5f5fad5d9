package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CartCookieName is the cookie identifying a customer session (cart + configurator)
const CartCookieName = "cart_session"

// SessionCookieTTL is how long the customer session cookie lives; main sets it from CART_TTL_HOURS
var SessionCookieTTL = 72 * time.Hour

// writeJSON encodes v with the given status; handler is used for log lines
func writeJSON(w http.ResponseWriter, status int, v any, handler string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ %s: Error encoding response: %v", handler, err)
	}
}

// decodeJSON decodes the request body into v, answering 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, handler string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Printf("❌ %s: Failed to decode request body: %v", handler, err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// allowMethod answers 405 unless the request uses method
func allowMethod(w http.ResponseWriter, r *http.Request, method string, handler string) bool {
	if r.Method != method {
		log.Printf("❌ %s: Method not allowed: %s", handler, r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// customerSession returns the session id from the cart_session cookie, issuing a new one if missing or malformed
func customerSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CartCookieName); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     CartCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(SessionCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.Printf("🆕 New customer session %s", id)
	return id
}
