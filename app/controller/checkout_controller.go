package controller

import (
	"errors"
	"log"
	"net/http"

	"nube-alta-cafe/cart"
	"nube-alta-cafe/models"
	"nube-alta-cafe/order"
	"nube-alta-cafe/service"
)

// CheckoutController turns the session cart into a WhatsApp order
type CheckoutController struct {
	carts   *cart.Sessions
	catalog *service.CatalogService
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(carts *cart.Sessions, catalog *service.CatalogService) *CheckoutController {
	return &CheckoutController{
		carts:   carts,
		catalog: catalog,
	}
}

type checkoutError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Checkout handles POST /api/checkout
// Validates delivery data and returns the order message with its WhatsApp link.
// The cart is kept until POST /api/checkout/complete.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Checkout: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodPost, "Checkout") {
		return
	}

	var req models.CheckoutRequest
	if !decodeJSON(w, r, &req, "Checkout") {
		return
	}

	store, err := c.carts.Get(r.Context(), customerSession(w, r))
	if err != nil {
		log.Printf("❌ Checkout: %v", err)
		http.Error(w, "Cart is temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	resp, err := order.Checkout(store.Items(), req, c.catalog.StoreConfig())
	if err != nil {
		log.Printf("❌ Checkout: %v", err)
		body := checkoutError{Message: order.UserMessage(err)}

		var verr *order.ValidationError
		status := http.StatusInternalServerError
		switch {
		case errors.As(err, &verr):
			status = http.StatusBadRequest
			body.Fields = verr.Fields
		case errors.Is(err, order.ErrEmptyCart):
			status = http.StatusConflict
		case errors.Is(err, order.ErrWhatsAppNotConfigured):
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, body, "Checkout")
		return
	}

	log.Printf("💰 Checkout: order ready, total=%d, payment=%s", resp.Total, req.PaymentMethod)
	writeJSON(w, http.StatusOK, resp, "Checkout")
}

// Complete handles POST /api/checkout/complete
// Called once the customer has sent the WhatsApp message; empties the cart
func (c *CheckoutController) Complete(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, "CompleteCheckout") {
		return
	}

	store, err := c.carts.Get(r.Context(), customerSession(w, r))
	if err != nil {
		log.Printf("❌ CompleteCheckout: %v", err)
		http.Error(w, "Cart is temporarily unavailable", http.StatusServiceUnavailable)
		return
	}
	store.Clear()

	log.Printf("✅ CompleteCheckout: cart cleared")
	w.WriteHeader(http.StatusNoContent)
}
