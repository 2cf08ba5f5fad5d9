package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"nube-alta-cafe/models"
	"nube-alta-cafe/service"
)

// MenuController handles the public storefront catalog
type MenuController struct {
	catalog *service.CatalogService
	images  *service.ImageService
}

// NewMenuController creates a new MenuController
func NewMenuController(catalog *service.CatalogService, images *service.ImageService) *MenuController {
	return &MenuController{
		catalog: catalog,
		images:  images,
	}
}

// GetMenu handles GET /api/menu
// Returns the store configuration, categories, available products and active banners
func (c *MenuController) GetMenu(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "GetMenu") {
		return
	}

	menu := c.catalog.Menu()
	log.Printf("✅ GetMenu: %d products, %d categories, %d banners", len(menu.Products), len(menu.Categories), len(menu.Banners))
	writeJSON(w, http.StatusOK, menu, "GetMenu")
}

// ListProducts handles GET /api/menu/products?category=&q=&banner=
func (c *MenuController) ListProducts(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "ListProducts") {
		return
	}

	query := r.URL.Query()
	filter := models.ProductFilter{
		CategoryID: strings.TrimSpace(query.Get("category")),
		Search:     query.Get("q"),
		BannerID:   strings.TrimSpace(query.Get("banner")),
	}

	products := c.catalog.FilterProducts(filter)
	log.Printf("✅ ListProducts: category=%q q=%q banner=%q -> %d products", filter.CategoryID, filter.Search, filter.BannerID, len(products))
	writeJSON(w, http.StatusOK, products, "ListProducts")
}

// GetProductOptions handles GET /api/menu/products/{id}/options
// Returns the available variants and accepted toppings of a product
func (c *MenuController) GetProductOptions(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "GetProductOptions") {
		return
	}

	id := r.PathValue("id")
	opts, err := c.catalog.ProductOptions(id)
	if errors.Is(err, service.ErrProductNotFound) {
		log.Printf("❌ GetProductOptions: %v", err)
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("❌ GetProductOptions: %v", err)
		http.Error(w, "Failed to load product options", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, opts, "GetProductOptions")
}

// GetImage handles GET /api/images/{id}?size=thumb|medium|large
// Serves uploaded images from the local cache, fetching them from Drive on a miss
func (c *MenuController) GetImage(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, "GetImage") {
		return
	}

	size := r.URL.Query().Get("size")
	switch size {
	case "":
		size = service.SizeMedium
	case service.SizeThumb, service.SizeMedium, service.SizeLarge:
	default:
		http.Error(w, "Invalid size. Valid sizes: thumb, medium, large", http.StatusBadRequest)
		return
	}

	data, err := c.images.Get(r.Context(), r.PathValue("id"), size)
	if errors.Is(err, service.ErrUploadsDisabled) {
		http.Error(w, "Images are not configured", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("❌ GetImage: %v", err)
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ GetImage: Error writing response: %v", err)
	}
}
