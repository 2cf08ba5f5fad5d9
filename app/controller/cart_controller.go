package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"nube-alta-cafe/cart"
	"nube-alta-cafe/models"
	"nube-alta-cafe/pricing"
	"nube-alta-cafe/service"
	"nube-alta-cafe/utils"
)

// CartController handles the customer cart of the current session
type CartController struct {
	sessions *cart.Sessions
	catalog  *service.CatalogService
}

// NewCartController creates a new CartController
func NewCartController(sessions *cart.Sessions, catalog *service.CatalogService) *CartController {
	return &CartController{
		sessions: sessions,
		catalog:  catalog,
	}
}

func cartResponse(store *cart.Store) models.CartResponse {
	items := store.Items()
	totalItems, totalPrice := pricing.CartTotals(items)
	return models.CartResponse{
		Items:               items,
		TotalItems:          totalItems,
		TotalPrice:          totalPrice,
		TotalPriceFormatted: utils.FormatMXN(totalPrice),
	}
}

// loadCart resolves the session cart, answering 503 when the cart repository is down
func (c *CartController) loadCart(w http.ResponseWriter, r *http.Request, handler string) (*cart.Store, bool) {
	store, err := c.sessions.Get(r.Context(), customerSession(w, r))
	if err != nil {
		log.Printf("❌ %s: %v", handler, err)
		http.Error(w, "Cart is temporarily unavailable", http.StatusServiceUnavailable)
		return nil, false
	}
	return store, true
}

// GetCart handles GET /api/cart
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "GetCart") {
		return
	}
	store, ok := c.loadCart(w, r, "GetCart")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(store), "GetCart")
}

// AddItem handles POST /api/cart/items
// Adds one unit of a product that needs no configuration
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodPost, "AddItem") {
		return
	}

	var req models.AddToCartRequest
	if !decodeJSON(w, r, &req, "AddItem") {
		return
	}
	req.ProductID = strings.TrimSpace(req.ProductID)
	if req.ProductID == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}

	product, err := c.catalog.GetProduct(req.ProductID)
	if err != nil || !product.Available {
		log.Printf("❌ AddItem: product %s not available: %v", req.ProductID, err)
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if product.IsConfigurable() {
		log.Printf("❌ AddItem: product %s must be configured first", req.ProductID)
		http.Error(w, "Product must be configured before adding it to the cart", http.StatusConflict)
		return
	}

	store, ok := c.loadCart(w, r, "AddItem")
	if !ok {
		return
	}
	if err := store.AddSimple(product); err != nil {
		log.Printf("❌ AddItem: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, pricing.ErrVariantRequired) {
			status = http.StatusConflict
		}
		http.Error(w, "Could not add product", status)
		return
	}

	log.Printf("🛒 AddItem: Added %s", product.ID)
	writeJSON(w, http.StatusOK, cartResponse(store), "AddItem")
}

// UpdateItem handles PATCH /api/cart/items/{key}
// A quantity <= 0 removes the line
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateItem: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodPatch, "UpdateItem") {
		return
	}

	var req models.UpdateCartQuantityRequest
	if !decodeJSON(w, r, &req, "UpdateItem") {
		return
	}

	store, ok := c.loadCart(w, r, "UpdateItem")
	if !ok {
		return
	}
	key := r.PathValue("key")
	if _, exists := store.Get(key); !exists {
		http.Error(w, "Cart item not found", http.StatusNotFound)
		return
	}
	store.SetQuantityByKey(key, req.Quantity)

	log.Printf("🛒 UpdateItem: %s -> %d", key, req.Quantity)
	writeJSON(w, http.StatusOK, cartResponse(store), "UpdateItem")
}

// RemoveItem handles DELETE /api/cart/items/{key}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodDelete, "RemoveItem") {
		return
	}
	store, ok := c.loadCart(w, r, "RemoveItem")
	if !ok {
		return
	}
	store.RemoveByKey(r.PathValue("key"))
	writeJSON(w, http.StatusOK, cartResponse(store), "RemoveItem")
}

// ClearCart handles DELETE /api/cart
func (c *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodDelete, "ClearCart") {
		return
	}
	store, ok := c.loadCart(w, r, "ClearCart")
	if !ok {
		return
	}
	store.Clear()
	writeJSON(w, http.StatusOK, cartResponse(store), "ClearCart")
}
