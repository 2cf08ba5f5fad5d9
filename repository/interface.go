package repository

import (
	"context"
	"errors"

	"nube-alta-cafe/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist
	ErrNotFound = errors.New("not found")
	// ErrReadOnly is returned by catalog sources that cannot be written (seed catalog)
	ErrReadOnly = errors.New("catalog is read-only")
)

// CatalogRepositoryInterface defines the read-only catalog operations the storefront consumes
type CatalogRepositoryInterface interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListVariantGroupsWithVariants(ctx context.Context) ([]models.VariantGroup, error)
	ListProductToppings(ctx context.Context) ([]models.ProductTopping, error)
	ListToppings(ctx context.Context) ([]models.Topping, error)
	ListBanners(ctx context.Context) ([]models.Banner, error)
	ListBannerProducts(ctx context.Context) ([]models.BannerProduct, error)
	// GetStoreConfig returns ErrNotFound when the store has not been configured yet
	GetStoreConfig(ctx context.Context) (*models.StoreConfig, error)
}

// AdminRepositoryInterface defines the back-office write operations
type AdminRepositoryInterface interface {
	CreateProduct(ctx context.Context, write models.ProductWrite) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, write models.ProductWrite) (*models.Product, error)
	SetProductAvailable(ctx context.Context, id string, available bool) error
	DeleteProduct(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, category models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateBanner(ctx context.Context, banner models.Banner, productIDs []string) (*models.Banner, error)
	UpdateBanner(ctx context.Context, banner models.Banner, productIDs []string) (*models.Banner, error)
	SetBannerActive(ctx context.Context, id string, active bool) error
	DeleteBanner(ctx context.Context, id string) error

	CreateTopping(ctx context.Context, topping models.Topping) (*models.Topping, error)
	UpdateTopping(ctx context.Context, topping models.Topping) (*models.Topping, error)
	SetToppingActive(ctx context.Context, id string, active bool) error
	DeleteTopping(ctx context.Context, id string) error

	UpsertStoreConfig(ctx context.Context, config models.StoreConfig) (*models.StoreConfig, error)
}

// CartRepositoryInterface persists customer carts between requests
type CartRepositoryInterface interface {
	// Load returns the saved lines of a session, empty if there are none
	Load(ctx context.Context, sessionID string) ([]models.CartLineItem, error)
	Save(ctx context.Context, sessionID string, items []models.CartLineItem) error
	Delete(ctx context.Context, sessionID string) error
}
