package controller

import (
	"errors"
	"log"
	"net/http"

	"nube-alta-cafe/models"
	"nube-alta-cafe/repository"
	"nube-alta-cafe/service"
)

// AdminCatalogController handles back-office catalog management
type AdminCatalogController struct {
	admin   *service.AdminService
	catalog *service.CatalogService
}

// NewAdminCatalogController creates a new AdminCatalogController
func NewAdminCatalogController(admin *service.AdminService, catalog *service.CatalogService) *AdminCatalogController {
	return &AdminCatalogController{
		admin:   admin,
		catalog: catalog,
	}
}

type adminProductResponse struct {
	Product      models.Product       `json:"product"`
	VariantGroup *models.VariantGroup `json:"variantGroup"`
	ToppingIDs   []string             `json:"toppingIds"`
}

// adminFailure maps admin service errors to HTTP responses
func adminFailure(w http.ResponseWriter, err error, handler string) {
	log.Printf("❌ %s: %v", handler, err)

	var inputErr *service.InputError
	switch {
	case errors.As(err, &inputErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"field": inputErr.Field, "message": inputErr.Message}, handler)
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrProductNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrReadOnly):
		http.Error(w, "The catalog is read-only: configure DATABASE_URL to edit it", http.StatusConflict)
	default:
		http.Error(w, "Failed to save changes", http.StatusInternalServerError)
	}
}

// Dashboard handles GET /admin/dashboard
func (c *AdminCatalogController) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "Dashboard") {
		return
	}
	writeJSON(w, http.StatusOK, c.catalog.Dashboard(), "Dashboard")
}

// GetCatalog handles GET /admin/catalog
// Returns every row of the catalog, unavailable and inactive included
func (c *AdminCatalogController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "GetCatalog") {
		return
	}
	writeJSON(w, http.StatusOK, c.catalog.AdminCatalog(), "GetCatalog")
}

// GetProduct handles GET /admin/products/{id}
func (c *AdminCatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "GetProduct") {
		return
	}

	id := r.PathValue("id")
	product, err := c.catalog.GetProduct(id)
	if err != nil {
		adminFailure(w, err, "GetProduct")
		return
	}
	group, toppingIDs, err := c.catalog.AdminProductOptions(id)
	if err != nil {
		adminFailure(w, err, "GetProduct")
		return
	}
	writeJSON(w, http.StatusOK, adminProductResponse{Product: product, VariantGroup: group, ToppingIDs: toppingIDs}, "GetProduct")
}

// CreateProduct handles POST /admin/products
func (c *AdminCatalogController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateProduct: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodPost, "CreateProduct") {
		return
	}

	var req models.ProductInput
	if !decodeJSON(w, r, &req, "CreateProduct") {
		return
	}
	product, err := c.admin.CreateProduct(r.Context(), req)
	if err != nil {
		adminFailure(w, err, "CreateProduct")
		return
	}
	log.Printf("✅ CreateProduct: %s (%s)", product.Name, product.ID)
	writeJSON(w, http.StatusCreated, product, "CreateProduct")
}

// UpdateProduct handles PUT /admin/products/{id}
func (c *AdminCatalogController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateProduct: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodPut, "UpdateProduct") {
		return
	}

	var req models.ProductInput
	if !decodeJSON(w, r, &req, "UpdateProduct") {
		return
	}
	product, err := c.admin.UpdateProduct(r.Context(), r.PathValue("id"), req)
	if err != nil {
		adminFailure(w, err, "UpdateProduct")
		return
	}
	writeJSON(w, http.StatusOK, product, "UpdateProduct")
}

// SetProductAvailable handles PATCH /admin/products/{id}/available
// Example: {"value": false}
func (c *AdminCatalogController) SetProductAvailable(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPatch, "SetProductAvailable") {
		return
	}

	var req models.ToggleRequest
	if !decodeJSON(w, r, &req, "SetProductAvailable") {
		return
	}
	if err := c.admin.SetProductAvailable(r.Context(), r.PathValue("id"), req.Value); err != nil {
		adminFailure(w, err, "SetProductAvailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct handles DELETE /admin/products/{id}
func (c *AdminCatalogController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodDelete, "DeleteProduct") {
		return
	}
	if err := c.admin.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		adminFailure(w, err, "DeleteProduct")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateCategory handles POST /admin/categories
func (c *AdminCatalogController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, "CreateCategory") {
		return
	}

	var req models.CategoryInput
	if !decodeJSON(w, r, &req, "CreateCategory") {
		return
	}
	category, err := c.admin.CreateCategory(r.Context(), req)
	if err != nil {
		adminFailure(w, err, "CreateCategory")
		return
	}
	writeJSON(w, http.StatusCreated, category, "CreateCategory")
}

// UpdateCategory handles PUT /admin/categories/{id}
func (c *AdminCatalogController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut, "UpdateCategory") {
		return
	}

	var req models.CategoryInput
	if !decodeJSON(w, r, &req, "UpdateCategory") {
		return
	}
	category, err := c.admin.UpdateCategory(r.Context(), r.PathValue("id"), req)
	if err != nil {
		adminFailure(w, err, "UpdateCategory")
		return
	}
	writeJSON(w, http.StatusOK, category, "UpdateCategory")
}

// DeleteCategory handles DELETE /admin/categories/{id}
func (c *AdminCatalogController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodDelete, "DeleteCategory") {
		return
	}
	if err := c.admin.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		adminFailure(w, err, "DeleteCategory")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateBanner handles POST /admin/banners
func (c *AdminCatalogController) CreateBanner(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, "CreateBanner") {
		return
	}

	var req models.BannerInput
	if !decodeJSON(w, r, &req, "CreateBanner") {
		return
	}
	banner, err := c.admin.CreateBanner(r.Context(), req)
	if err != nil {
		adminFailure(w, err, "CreateBanner")
		return
	}
	writeJSON(w, http.StatusCreated, banner, "CreateBanner")
}

// UpdateBanner handles PUT /admin/banners/{id}
func (c *AdminCatalogController) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut, "UpdateBanner") {
		return
	}

	var req models.BannerInput
	if !decodeJSON(w, r, &req, "UpdateBanner") {
		return
	}
	banner, err := c.admin.UpdateBanner(r.Context(), r.PathValue("id"), req)
	if err != nil {
		adminFailure(w, err, "UpdateBanner")
		return
	}
	writeJSON(w, http.StatusOK, banner, "UpdateBanner")
}

// SetBannerActive handles PATCH /admin/banners/{id}/active
func (c *AdminCatalogController) SetBannerActive(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPatch, "SetBannerActive") {
		return
	}

	var req models.ToggleRequest
	if !decodeJSON(w, r, &req, "SetBannerActive") {
		return
	}
	if err := c.admin.SetBannerActive(r.Context(), r.PathValue("id"), req.Value); err != nil {
		adminFailure(w, err, "SetBannerActive")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteBanner handles DELETE /admin/banners/{id}
func (c *AdminCatalogController) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodDelete, "DeleteBanner") {
		return
	}
	if err := c.admin.DeleteBanner(r.Context(), r.PathValue("id")); err != nil {
		adminFailure(w, err, "DeleteBanner")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListToppings handles GET /admin/toppings
func (c *AdminCatalogController) ListToppings(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "ListToppings") {
		return
	}
	writeJSON(w, http.StatusOK, c.catalog.Toppings(), "ListToppings")
}

// CreateTopping handles POST /admin/toppings
func (c *AdminCatalogController) CreateTopping(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, "CreateTopping") {
		return
	}

	var req models.ToppingInput
	if !decodeJSON(w, r, &req, "CreateTopping") {
		return
	}
	topping, err := c.admin.CreateTopping(r.Context(), req)
	if err != nil {
		adminFailure(w, err, "CreateTopping")
		return
	}
	writeJSON(w, http.StatusCreated, topping, "CreateTopping")
}

// UpdateTopping handles PUT /admin/toppings/{id}
func (c *AdminCatalogController) UpdateTopping(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut, "UpdateTopping") {
		return
	}

	var req models.ToppingInput
	if !decodeJSON(w, r, &req, "UpdateTopping") {
		return
	}
	topping, err := c.admin.UpdateTopping(r.Context(), r.PathValue("id"), req)
	if err != nil {
		adminFailure(w, err, "UpdateTopping")
		return
	}
	writeJSON(w, http.StatusOK, topping, "UpdateTopping")
}

// SetToppingActive handles PATCH /admin/toppings/{id}/active
func (c *AdminCatalogController) SetToppingActive(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPatch, "SetToppingActive") {
		return
	}

	var req models.ToggleRequest
	if !decodeJSON(w, r, &req, "SetToppingActive") {
		return
	}
	if err := c.admin.SetToppingActive(r.Context(), r.PathValue("id"), req.Value); err != nil {
		adminFailure(w, err, "SetToppingActive")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTopping handles DELETE /admin/toppings/{id}
func (c *AdminCatalogController) DeleteTopping(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodDelete, "DeleteTopping") {
		return
	}
	if err := c.admin.DeleteTopping(r.Context(), r.PathValue("id")); err != nil {
		adminFailure(w, err, "DeleteTopping")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetConfig handles GET /admin/config
// Unlike the storefront menu it includes the banking details
func (c *AdminCatalogController) GetConfig(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "GetConfig") {
		return
	}
	writeJSON(w, http.StatusOK, c.catalog.StoreConfig(), "GetConfig")
}

// SaveConfig handles PUT /admin/config
func (c *AdminCatalogController) SaveConfig(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SaveConfig: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, http.MethodPut, "SaveConfig") {
		return
	}

	var req models.StoreConfig
	if !decodeJSON(w, r, &req, "SaveConfig") {
		return
	}
	config, err := c.admin.SaveStoreConfig(r.Context(), req)
	if err != nil {
		adminFailure(w, err, "SaveConfig")
		return
	}
	writeJSON(w, http.StatusOK, config, "SaveConfig")
}
