package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"nube-alta-cafe/cart"
	"nube-alta-cafe/configurator"
	"nube-alta-cafe/models"
	"nube-alta-cafe/service"
)

// ConfiguratorController drives the product configurator of the current session
type ConfiguratorController struct {
	configurators *configurator.Sessions
	carts         *cart.Sessions
	catalog       *service.CatalogService
}

// NewConfiguratorController creates a new ConfiguratorController
func NewConfiguratorController(configurators *configurator.Sessions, carts *cart.Sessions, catalog *service.CatalogService) *ConfiguratorController {
	return &ConfiguratorController{
		configurators: configurators,
		carts:         carts,
		catalog:       catalog,
	}
}

// configuratorStatus maps configurator errors to HTTP status codes
func configuratorStatus(err error) int {
	switch {
	case errors.Is(err, configurator.ErrNotOpen):
		return http.StatusConflict
	case errors.Is(err, configurator.ErrIncompleteConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, configurator.ErrUnknownVariant), errors.Is(err, configurator.ErrUnknownTopping):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// apply runs fn on the session configurator and answers with its view
func (c *ConfiguratorController) apply(w http.ResponseWriter, r *http.Request, handler string, fn func(cfg *configurator.Configurator) error) {
	var view models.ConfiguratorView
	err := c.configurators.With(customerSession(w, r), func(cfg *configurator.Configurator) error {
		err := fn(cfg)
		view = cfg.View()
		return err
	})
	if err != nil {
		log.Printf("❌ %s: %v", handler, err)
		if errors.Is(err, configurator.ErrIncompleteConfiguration) {
			// the view carries missingVariant so the storefront can highlight the group
			writeJSON(w, http.StatusUnprocessableEntity, view, handler)
			return
		}
		http.Error(w, err.Error(), configuratorStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, view, handler)
}

// Open handles POST /api/configurator
// Opens the configurator for a product, discarding any previous selection
func (c *ConfiguratorController) Open(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 OpenConfigurator: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodPost, "OpenConfigurator") {
		return
	}

	var req models.OpenConfiguratorRequest
	if !decodeJSON(w, r, &req, "OpenConfigurator") {
		return
	}
	opts, err := c.catalog.ProductOptions(strings.TrimSpace(req.ProductID))
	if err != nil {
		log.Printf("❌ OpenConfigurator: %v", err)
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	c.apply(w, r, "OpenConfigurator", func(cfg *configurator.Configurator) error {
		cfg.Open(opts.Product, opts.VariantGroup, opts.Toppings)
		return nil
	})
}

// Get handles GET /api/configurator
func (c *ConfiguratorController) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "GetConfigurator") {
		return
	}
	c.apply(w, r, "GetConfigurator", func(cfg *configurator.Configurator) error { return nil })
}

// Cancel handles DELETE /api/configurator
func (c *ConfiguratorController) Cancel(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodDelete, "CancelConfigurator") {
		return
	}
	c.apply(w, r, "CancelConfigurator", func(cfg *configurator.Configurator) error {
		cfg.Cancel()
		return nil
	})
}

// SelectVariant handles POST /api/configurator/variant
func (c *ConfiguratorController) SelectVariant(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, "SelectVariant") {
		return
	}
	var req models.SelectVariantRequest
	if !decodeJSON(w, r, &req, "SelectVariant") {
		return
	}
	c.apply(w, r, "SelectVariant", func(cfg *configurator.Configurator) error {
		return cfg.SelectVariant(req.VariantID)
	})
}

// ToggleTopping handles POST /api/configurator/toppings/{id}
func (c *ConfiguratorController) ToggleTopping(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, "ToggleTopping") {
		return
	}
	id := r.PathValue("id")
	c.apply(w, r, "ToggleTopping", func(cfg *configurator.Configurator) error {
		return cfg.ToggleTopping(id)
	})
}

// SetQuantity handles POST /api/configurator/quantity
// Quantities are clamped to 1..20
func (c *ConfiguratorController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, "SetQuantity") {
		return
	}
	var req models.SetQuantityRequest
	if !decodeJSON(w, r, &req, "SetQuantity") {
		return
	}
	c.apply(w, r, "SetQuantity", func(cfg *configurator.Configurator) error {
		return cfg.SetQuantity(req.Quantity)
	})
}

// Confirm handles POST /api/configurator/confirm
// Adds the configured line to the session cart and closes the configurator.
// Without a required variant it answers 422 and the configurator stays open.
func (c *ConfiguratorController) Confirm(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ConfirmConfigurator: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodPost, "ConfirmConfigurator") {
		return
	}

	sessionID := customerSession(w, r)
	store, err := c.carts.Get(r.Context(), sessionID)
	if err != nil {
		log.Printf("❌ ConfirmConfigurator: %v", err)
		http.Error(w, "Cart is temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	var view models.ConfiguratorView
	err = c.configurators.With(sessionID, func(cfg *configurator.Configurator) error {
		defer func() { view = cfg.View() }()
		item, err := cfg.Confirm()
		if err != nil {
			return err
		}
		return store.AddConfigured(item)
	})
	if errors.Is(err, configurator.ErrIncompleteConfiguration) {
		log.Printf("⚠️ ConfirmConfigurator: variant missing")
		writeJSON(w, http.StatusUnprocessableEntity, view, "ConfirmConfigurator")
		return
	}
	if err != nil {
		log.Printf("❌ ConfirmConfigurator: %v", err)
		http.Error(w, err.Error(), configuratorStatus(err))
		return
	}

	log.Printf("🛒 ConfirmConfigurator: line added for session %s", sessionID)
	writeJSON(w, http.StatusOK, cartResponse(store), "ConfirmConfigurator")
}
