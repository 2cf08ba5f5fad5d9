package repository

import (
	"context"

	"nube-alta-cafe/models"
)

// ReadOnlyAdminRepository rejects every write; it backs the admin API when the seed catalog is in use
type ReadOnlyAdminRepository struct{}

// Ensure ReadOnlyAdminRepository implements AdminRepositoryInterface
var _ AdminRepositoryInterface = ReadOnlyAdminRepository{}

func (ReadOnlyAdminRepository) CreateProduct(context.Context, models.ProductWrite) (*models.Product, error) {
	return nil, ErrReadOnly
}

func (ReadOnlyAdminRepository) UpdateProduct(context.Context, string, models.ProductWrite) (*models.Product, error) {
	return nil, ErrReadOnly
}

func (ReadOnlyAdminRepository) SetProductAvailable(context.Context, string, bool) error {
	return ErrReadOnly
}

func (ReadOnlyAdminRepository) DeleteProduct(context.Context, string) error { return ErrReadOnly }

func (ReadOnlyAdminRepository) CreateCategory(context.Context, models.Category) (*models.Category, error) {
	return nil, ErrReadOnly
}

func (ReadOnlyAdminRepository) UpdateCategory(context.Context, models.Category) (*models.Category, error) {
	return nil, ErrReadOnly
}

func (ReadOnlyAdminRepository) DeleteCategory(context.Context, string) error { return ErrReadOnly }

func (ReadOnlyAdminRepository) CreateBanner(context.Context, models.Banner, []string) (*models.Banner, error) {
	return nil, ErrReadOnly
}

func (ReadOnlyAdminRepository) UpdateBanner(context.Context, models.Banner, []string) (*models.Banner, error) {
	return nil, ErrReadOnly
}

func (ReadOnlyAdminRepository) SetBannerActive(context.Context, string, bool) error {
	return ErrReadOnly
}

func (ReadOnlyAdminRepository) DeleteBanner(context.Context, string) error { return ErrReadOnly }

func (ReadOnlyAdminRepository) CreateTopping(context.Context, models.Topping) (*models.Topping, error) {
	return nil, ErrReadOnly
}

func (ReadOnlyAdminRepository) UpdateTopping(context.Context, models.Topping) (*models.Topping, error) {
	return nil, ErrReadOnly
}

func (ReadOnlyAdminRepository) SetToppingActive(context.Context, string, bool) error {
	return ErrReadOnly
}

func (ReadOnlyAdminRepository) DeleteTopping(context.Context, string) error { return ErrReadOnly }

func (ReadOnlyAdminRepository) UpsertStoreConfig(context.Context, models.StoreConfig) (*models.StoreConfig, error) {
	return nil, ErrReadOnly
}
