package router

import (
	"net/http"

	"nube-alta-cafe/app/controller"
	"nube-alta-cafe/service"
)

type Controllers struct {
	Menu         *controller.MenuController
	Cart         *controller.CartController
	Configurator *controller.ConfiguratorController
	Checkout     *controller.CheckoutController
	AdminAuth    *controller.AdminAuthController
	AdminCatalog *controller.AdminCatalogController
	Catalog      *controller.CatalogController
	Upload       *controller.UploadController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers, auth *service.AuthService) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Storefront catalog
	mux.HandleFunc("/api/menu", controllers.Menu.GetMenu)
	mux.HandleFunc("/api/menu/products", controllers.Menu.ListProducts)
	mux.HandleFunc("/api/menu/products/{id}/options", controllers.Menu.GetProductOptions)
	mux.HandleFunc("/api/images/{id}", controllers.Menu.GetImage)

	// Cart
	mux.HandleFunc("GET /api/cart", controllers.Cart.GetCart)
	mux.HandleFunc("DELETE /api/cart", controllers.Cart.ClearCart)
	mux.HandleFunc("/api/cart/items", controllers.Cart.AddItem)
	mux.HandleFunc("PATCH /api/cart/items/{key}", controllers.Cart.UpdateItem)
	mux.HandleFunc("DELETE /api/cart/items/{key}", controllers.Cart.RemoveItem)

	// Product configurator
	mux.HandleFunc("POST /api/configurator", controllers.Configurator.Open)
	mux.HandleFunc("GET /api/configurator", controllers.Configurator.Get)
	mux.HandleFunc("DELETE /api/configurator", controllers.Configurator.Cancel)
	mux.HandleFunc("/api/configurator/variant", controllers.Configurator.SelectVariant)
	mux.HandleFunc("/api/configurator/toppings/{id}", controllers.Configurator.ToggleTopping)
	mux.HandleFunc("/api/configurator/quantity", controllers.Configurator.SetQuantity)
	mux.HandleFunc("/api/configurator/confirm", controllers.Configurator.Confirm)

	// Checkout
	mux.HandleFunc("/api/checkout", controllers.Checkout.Checkout)
	mux.HandleFunc("/api/checkout/complete", controllers.Checkout.Complete)

	// Admin session
	mux.HandleFunc("/admin/login", controllers.AdminAuth.Login)
	mux.HandleFunc("/admin/logout", controllers.AdminAuth.Logout)
	mux.HandleFunc("/admin/me", auth.RequireAdmin(controllers.AdminAuth.Me))

	// Admin catalog
	admin := auth.RequireAdmin
	mux.HandleFunc("/admin/dashboard", admin(controllers.AdminCatalog.Dashboard))
	mux.HandleFunc("/admin/catalog", admin(controllers.AdminCatalog.GetCatalog))
	mux.HandleFunc("/admin/menu", admin(controllers.Catalog.GenerateMenu))
	mux.HandleFunc("/admin/uploads", admin(controllers.Upload.UploadImage))

	mux.HandleFunc("POST /admin/products", admin(controllers.AdminCatalog.CreateProduct))
	mux.HandleFunc("GET /admin/products/{id}", admin(controllers.AdminCatalog.GetProduct))
	mux.HandleFunc("PUT /admin/products/{id}", admin(controllers.AdminCatalog.UpdateProduct))
	mux.HandleFunc("DELETE /admin/products/{id}", admin(controllers.AdminCatalog.DeleteProduct))
	mux.HandleFunc("/admin/products/{id}/available", admin(controllers.AdminCatalog.SetProductAvailable))

	mux.HandleFunc("POST /admin/categories", admin(controllers.AdminCatalog.CreateCategory))
	mux.HandleFunc("PUT /admin/categories/{id}", admin(controllers.AdminCatalog.UpdateCategory))
	mux.HandleFunc("DELETE /admin/categories/{id}", admin(controllers.AdminCatalog.DeleteCategory))

	mux.HandleFunc("POST /admin/banners", admin(controllers.AdminCatalog.CreateBanner))
	mux.HandleFunc("PUT /admin/banners/{id}", admin(controllers.AdminCatalog.UpdateBanner))
	mux.HandleFunc("DELETE /admin/banners/{id}", admin(controllers.AdminCatalog.DeleteBanner))
	mux.HandleFunc("/admin/banners/{id}/active", admin(controllers.AdminCatalog.SetBannerActive))

	mux.HandleFunc("GET /admin/toppings", admin(controllers.AdminCatalog.ListToppings))
	mux.HandleFunc("POST /admin/toppings", admin(controllers.AdminCatalog.CreateTopping))
	mux.HandleFunc("PUT /admin/toppings/{id}", admin(controllers.AdminCatalog.UpdateTopping))
	mux.HandleFunc("DELETE /admin/toppings/{id}", admin(controllers.AdminCatalog.DeleteTopping))
	mux.HandleFunc("/admin/toppings/{id}/active", admin(controllers.AdminCatalog.SetToppingActive))

	mux.HandleFunc("GET /admin/config", admin(controllers.AdminCatalog.GetConfig))
	mux.HandleFunc("PUT /admin/config", admin(controllers.AdminCatalog.SaveConfig))
}
