package repository

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"nube-alta-cafe/models"
)

// seedCatalog mirrors the layout of data/menu.yaml
type seedCatalog struct {
	Config          *models.StoreConfig     `yaml:"config"`
	Categories      []models.Category       `yaml:"categories"`
	Products        []models.Product        `yaml:"products"`
	VariantGroups   []models.VariantGroup   `yaml:"variantGroups"`
	Toppings        []models.Topping        `yaml:"toppings"`
	ProductToppings []models.ProductTopping `yaml:"productToppings"`
	Banners         []models.Banner         `yaml:"banners"`
	BannerProducts  []models.BannerProduct  `yaml:"bannerProducts"`
}

// SeedCatalogRepository serves a fixed catalog loaded from YAML.
// It is used when no database is configured (local development, demos).
type SeedCatalogRepository struct {
	catalog seedCatalog
}

// Ensure SeedCatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*SeedCatalogRepository)(nil)

// NewSeedCatalogRepository parses a YAML catalog document
func NewSeedCatalogRepository(data []byte) (*SeedCatalogRepository, error) {
	var c seedCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	for i := range c.VariantGroups {
		for j := range c.VariantGroups[i].Variants {
			if c.VariantGroups[i].Variants[j].GroupID == "" {
				c.VariantGroups[i].Variants[j].GroupID = c.VariantGroups[i].ID
			}
		}
	}

	log.Printf("✅ Seed catalog loaded: %d products, %d categories, %d toppings", len(c.Products), len(c.Categories), len(c.Toppings))
	return &SeedCatalogRepository{catalog: c}, nil
}

// LoadSeedCatalogFile reads a YAML catalog from disk
func LoadSeedCatalogFile(path string) (*SeedCatalogRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed catalog %s: %w", path, err)
	}
	return NewSeedCatalogRepository(data)
}

func (r *SeedCatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(r.catalog.Products))
	for i, p := range r.catalog.Products {
		if p.BasePrice != nil {
			price := *p.BasePrice
			p.BasePrice = &price
		}
		out[i] = p
	}
	return out, nil
}

func (r *SeedCatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	return append([]models.Category{}, r.catalog.Categories...), nil
}

func (r *SeedCatalogRepository) ListVariantGroupsWithVariants(ctx context.Context) ([]models.VariantGroup, error) {
	out := make([]models.VariantGroup, len(r.catalog.VariantGroups))
	for i, g := range r.catalog.VariantGroups {
		g.Variants = append([]models.Variant{}, g.Variants...)
		out[i] = g
	}
	return out, nil
}

func (r *SeedCatalogRepository) ListProductToppings(ctx context.Context) ([]models.ProductTopping, error) {
	return append([]models.ProductTopping{}, r.catalog.ProductToppings...), nil
}

func (r *SeedCatalogRepository) ListToppings(ctx context.Context) ([]models.Topping, error) {
	return append([]models.Topping{}, r.catalog.Toppings...), nil
}

func (r *SeedCatalogRepository) ListBanners(ctx context.Context) ([]models.Banner, error) {
	return append([]models.Banner{}, r.catalog.Banners...), nil
}

func (r *SeedCatalogRepository) ListBannerProducts(ctx context.Context) ([]models.BannerProduct, error) {
	return append([]models.BannerProduct{}, r.catalog.BannerProducts...), nil
}

func (r *SeedCatalogRepository) GetStoreConfig(ctx context.Context) (*models.StoreConfig, error) {
	if r.catalog.Config == nil {
		return nil, ErrNotFound
	}
	c := *r.catalog.Config
	return &c, nil
}
