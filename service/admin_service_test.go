package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nube-alta-cafe/models"
	"nube-alta-cafe/repository"
)

// recordingAdminRepository accepts product and config writes and rejects everything else
type recordingAdminRepository struct {
	repository.ReadOnlyAdminRepository
	products []models.ProductWrite
	config   *models.StoreConfig
}

func (r *recordingAdminRepository) CreateProduct(_ context.Context, write models.ProductWrite) (*models.Product, error) {
	r.products = append(r.products, write)
	p := write.Product
	p.ID = "new-product"
	return &p, nil
}

func (r *recordingAdminRepository) UpsertStoreConfig(_ context.Context, config models.StoreConfig) (*models.StoreConfig, error) {
	r.config = &config
	return &config, nil
}

func TestBuildProductWrite_SimpleProduct(t *testing.T) {
	write, err := BuildProductWrite(models.ProductInput{
		Name:        "  <b>Americano</b> ",
		BasePrice:   "$45.50",
		Available:   true,
		ToppingIDs:  []string{"top-1"},
		Description: "Espresso &amp; agua",
	})
	require.NoError(t, err)

	assert.Equal(t, "Americano", write.Product.Name)
	assert.Equal(t, "Espresso & agua", write.Product.Description)
	require.NotNil(t, write.Product.BasePrice)
	assert.Equal(t, int64(4550), *write.Product.BasePrice)
	assert.Nil(t, write.VariantGroup)
	// toppings are ignored for products that do not accept them
	assert.Empty(t, write.ToppingIDs)
}

func TestBuildProductWrite_VariantsAndToppings(t *testing.T) {
	write, err := BuildProductWrite(models.ProductInput{
		Name:              "Latte",
		HasVariants:       true,
		AcceptsToppings:   true,
		FreeToppingsCount: 1,
		ExtraToppingPrice: "10",
		VariantGroup: &models.VariantGroupInput{
			Name: "Tamaño",
			Variants: []models.VariantInput{
				{Name: "Grande", Price: "80", Available: true, Order: 3},
				{Name: "Chico", Price: "60", Available: true, Order: 1},
			},
		},
		ToppingIDs: []string{"top-2", " top-1 ", "top-2", ""},
	})
	require.NoError(t, err)

	assert.Nil(t, write.Product.BasePrice)
	assert.Equal(t, int64(1000), write.Product.ExtraToppingPrice)
	require.NotNil(t, write.VariantGroup)
	require.Len(t, write.VariantGroup.Variants, 2)
	assert.Equal(t, "Chico", write.VariantGroup.Variants[0].Name)
	assert.Equal(t, int64(6000), write.VariantGroup.Variants[0].Price)
	assert.Equal(t, []string{"top-2", "top-1"}, write.ToppingIDs)
}

func TestBuildProductWrite_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		input models.ProductInput
		field string
	}{
		{"missing name", models.ProductInput{Name: "<i></i>", BasePrice: "10"}, "name"},
		{"missing base price", models.ProductInput{Name: "Té"}, "basePrice"},
		{"bad base price", models.ProductInput{Name: "Té", BasePrice: "10.555"}, "basePrice"},
		{"negative extra", models.ProductInput{Name: "Té", BasePrice: "10", ExtraToppingPrice: "-1"}, "extraToppingPrice"},
		{"negative free toppings", models.ProductInput{Name: "Té", BasePrice: "10", FreeToppingsCount: -1}, "freeToppingsCount"},
		{"variants without group", models.ProductInput{Name: "Latte", HasVariants: true}, "variantGroup"},
		{"variant without price", models.ProductInput{
			Name:         "Latte",
			HasVariants:  true,
			VariantGroup: &models.VariantGroupInput{Name: "Tamaño", Variants: []models.VariantInput{{Name: "Chico"}}},
		}, "variantGroup.variants[0].price"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildProductWrite(tc.input)
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tc.field, inputErr.Field)
		})
	}
}

func TestAdminService_CreateProductReloadsCatalog(t *testing.T) {
	catalog, _ := newSeededCatalog(t)
	before := catalog.LoadedAt()
	repo := &recordingAdminRepository{}
	svc := NewAdminService(repo, catalog)

	product, err := svc.CreateProduct(context.Background(), models.ProductInput{Name: "Chai", BasePrice: "55", Available: true})
	require.NoError(t, err)
	assert.Equal(t, "new-product", product.ID)
	require.Len(t, repo.products, 1)
	assert.False(t, catalog.LoadedAt().Before(before))
}

func TestAdminService_ReadOnlyCatalog(t *testing.T) {
	catalog, _ := newSeededCatalog(t)
	svc := NewAdminService(repository.ReadOnlyAdminRepository{}, catalog)
	ctx := context.Background()

	_, err := svc.CreateTopping(ctx, models.ToppingInput{Name: "Chispas", Active: true})
	assert.ErrorIs(t, err, repository.ErrReadOnly)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, "prod-1"), repository.ErrReadOnly)

	// validation runs before the repository is reached
	_, err = svc.CreateTopping(ctx, models.ToppingInput{Name: " "})
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestAdminService_SaveStoreConfig(t *testing.T) {
	catalog, _ := newSeededCatalog(t)
	repo := &recordingAdminRepository{}
	svc := NewAdminService(repo, catalog)
	ctx := context.Background()

	saved, err := svc.SaveStoreConfig(ctx, models.StoreConfig{
		BusinessName:  " Nube Alta ",
		WhatsAppPhone: "+52 55 1234 5678",
		PrimaryColor:  "#123abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nube Alta", saved.BusinessName)

	_, err = svc.SaveStoreConfig(ctx, models.StoreConfig{BusinessName: "X", WhatsAppPhone: "123"})
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "whatsappPhone", inputErr.Field)

	_, err = svc.SaveStoreConfig(ctx, models.StoreConfig{BusinessName: "X", PrimaryColor: "red"})
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "primaryColor", inputErr.Field)
}
