package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nube-alta-cafe/data"
	"nube-alta-cafe/models"
	"nube-alta-cafe/repository"
)

// flakyCatalogRepository wraps the seed catalog and fails product listing on demand
type flakyCatalogRepository struct {
	*repository.SeedCatalogRepository
	fail bool
}

func (r *flakyCatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	if r.fail {
		return nil, errors.New("connection refused")
	}
	return r.SeedCatalogRepository.ListProducts(ctx)
}

func newSeededCatalog(t *testing.T) (*CatalogService, *flakyCatalogRepository) {
	t.Helper()
	seed, err := repository.NewSeedCatalogRepository(data.Menu)
	require.NoError(t, err)
	repo := &flakyCatalogRepository{SeedCatalogRepository: seed}
	svc := NewCatalogService(repo)
	require.NoError(t, svc.Reload(context.Background()))
	return svc, repo
}

func TestCatalogService_EmptyBeforeReload(t *testing.T) {
	seed, err := repository.NewSeedCatalogRepository(data.Menu)
	require.NoError(t, err)
	svc := NewCatalogService(seed)
	menu := svc.Menu()
	assert.Empty(t, menu.Products)
	assert.Equal(t, models.DefaultBusinessName, menu.Config.BusinessName)
	assert.True(t, svc.LoadedAt().IsZero())
}

func TestCatalogService_MenuHidesUnavailableAndPrivateData(t *testing.T) {
	svc, _ := newSeededCatalog(t)
	menu := svc.Menu()

	for _, p := range menu.Products {
		assert.True(t, p.Available, p.ID)
		assert.NotEqual(t, "prod-4", p.ID)
	}
	assert.Empty(t, menu.Config.BankingDetails)
	assert.NotEmpty(t, svc.StoreConfig().BankingDetails)

	require.Len(t, menu.Banners, 1)
	assert.Equal(t, "ban-1", menu.Banners[0].ID)
	assert.ElementsMatch(t, []string{"prod-5", "prod-6"}, menu.BannerProducts["ban-1"])
	_, hasInactive := menu.BannerProducts["ban-2"]
	assert.False(t, hasInactive)

	require.Len(t, menu.Categories, 4)
	assert.Equal(t, "cat-1", menu.Categories[0].ID)
}

func TestCatalogService_FilterProducts(t *testing.T) {
	svc, _ := newSeededCatalog(t)

	frappes := svc.FilterProducts(models.ProductFilter{CategoryID: "cat-2"})
	assert.Len(t, frappes, 2)

	search := svc.FilterProducts(models.ProductFilter{Search: "  LECHE "})
	assert.NotEmpty(t, search)
	for _, p := range search {
		assert.NotEqual(t, "prod-4", p.ID)
	}

	banner := svc.FilterProducts(models.ProductFilter{BannerID: "ban-1", Search: "caramelo"})
	require.Len(t, banner, 1)
	assert.Equal(t, "prod-5", banner[0].ID)

	assert.Empty(t, svc.FilterProducts(models.ProductFilter{BannerID: "missing"}))
}

func TestCatalogService_ProductOptions(t *testing.T) {
	svc, _ := newSeededCatalog(t)

	opts, err := svc.ProductOptions("prod-2")
	require.NoError(t, err)
	require.NotNil(t, opts.VariantGroup)

	var names []string
	for _, v := range opts.VariantGroup.Variants {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"Chico", "Mediano", "Grande"}, names)

	var toppings []string
	for _, top := range opts.Toppings {
		toppings = append(toppings, top.Name)
	}
	// Malvaviscos is linked but inactive, Oreo is active but not linked
	assert.Equal(t, []string{"Canela", "Crema batida", "Nutella"}, toppings)

	simple, err := svc.ProductOptions("prod-1")
	require.NoError(t, err)
	assert.Nil(t, simple.VariantGroup)
	assert.Empty(t, simple.Toppings)

	_, err = svc.ProductOptions("prod-4")
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = svc.ProductOptions("nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_KeepsSnapshotOnFailure(t *testing.T) {
	svc, repo := newSeededCatalog(t)
	before := len(svc.Menu().Products)
	loadedAt := svc.LoadedAt()

	repo.fail = true
	err := svc.Reload(context.Background())
	assert.Error(t, err)
	assert.Len(t, svc.Menu().Products, before)
	assert.Equal(t, loadedAt, svc.LoadedAt())
}

func TestCatalogService_WatchReloadsOnChange(t *testing.T) {
	svc, repo := newSeededCatalog(t)
	repo.fail = true
	_ = svc.Reload(context.Background())
	first := svc.LoadedAt()
	repo.fail = false

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan models.ChangeEvent, 4)
	done := make(chan struct{})
	go func() {
		svc.Watch(ctx, events)
		close(done)
	}()

	events <- models.ChangeEvent{Table: "productos"}
	assert.Eventually(t, func() bool { return svc.LoadedAt().After(first) }, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestCatalogService_AdminViews(t *testing.T) {
	svc, _ := newSeededCatalog(t)

	dash := svc.Dashboard()
	assert.Equal(t, 8, dash.Products)
	assert.Equal(t, 7, dash.AvailableProducts)
	assert.Equal(t, 1, dash.ActiveBanners)
	require.Len(t, dash.UnavailableProducts, 1)
	assert.Equal(t, "prod-4", dash.UnavailableProducts[0].ID)

	all := svc.AdminCatalog()
	assert.Len(t, all.Products, 8)
	assert.Len(t, all.Banners, 2)

	group, toppingIDs, err := svc.AdminProductOptions("prod-2")
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Len(t, group.Variants, 4)
	assert.ElementsMatch(t, []string{"top-1", "top-2", "top-4", "top-5"}, toppingIDs)

	assert.Len(t, svc.Toppings(), 5)
}

func TestSortToppings_Spanish(t *testing.T) {
	toppings := []models.Topping{{Name: "Ñora"}, {Name: "nuez"}, {Name: "Oreo"}, {Name: "Ámbar"}, {Name: "azúcar"}}
	sortToppings(toppings)

	var names []string
	for _, top := range toppings {
		names = append(names, top.Name)
	}
	assert.Equal(t, []string{"Ámbar", "azúcar", "nuez", "Ñora", "Oreo"}, names)
}
