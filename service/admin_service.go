package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"nube-alta-cafe/models"
	"nube-alta-cafe/repository"
	"nube-alta-cafe/utils"
)

// InputError reports an invalid admin payload; controllers answer 400 with it
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AdminService validates back-office input, writes it through the admin
// repository and refreshes the storefront snapshot
type AdminService struct {
	repository repository.AdminRepositoryInterface
	catalog    *CatalogService
}

// NewAdminService creates a new AdminService
func NewAdminService(repo repository.AdminRepositoryInterface, catalog *CatalogService) *AdminService {
	return &AdminService{repository: repo, catalog: catalog}
}

// refresh reloads the snapshot right away so the admin sees its own write;
// the change feed triggers the same reload on every other instance
func (s *AdminService) refresh(ctx context.Context, what string) {
	if err := s.catalog.Reload(ctx); err != nil {
		log.Printf("⚠️ %s saved but catalog reload failed: %v", what, err)
	}
}

// BuildProductWrite validates a ProductInput and converts prices to centavos
func BuildProductWrite(in models.ProductInput) (models.ProductWrite, error) {
	p := models.Product{
		Name:              utils.CleanText(in.Name),
		Description:       utils.CleanText(in.Description),
		ImageURL:          strings.TrimSpace(in.ImageURL),
		CategoryID:        strings.TrimSpace(in.CategoryID),
		HasVariants:       in.HasVariants,
		AcceptsToppings:   in.AcceptsToppings,
		FreeToppingsCount: in.FreeToppingsCount,
		Available:         in.Available,
	}
	if p.Name == "" {
		return models.ProductWrite{}, invalid("name", "is required")
	}
	if p.FreeToppingsCount < 0 {
		return models.ProductWrite{}, invalid("freeToppingsCount", "must not be negative")
	}

	extra, err := utils.ParseMoney(in.ExtraToppingPrice)
	if err != nil {
		return models.ProductWrite{}, invalid("extraToppingPrice", "%v", err)
	}
	p.ExtraToppingPrice = extra

	if strings.TrimSpace(in.BasePrice) != "" {
		base, err := utils.ParseMoney(in.BasePrice)
		if err != nil {
			return models.ProductWrite{}, invalid("basePrice", "%v", err)
		}
		p.BasePrice = &base
	}

	write := models.ProductWrite{Product: p}

	if p.HasVariants {
		if in.VariantGroup == nil || len(in.VariantGroup.Variants) == 0 {
			return models.ProductWrite{}, invalid("variantGroup", "a product with variants needs at least one variant")
		}
		group := &models.VariantGroup{Name: utils.CleanText(in.VariantGroup.Name)}
		if group.Name == "" {
			return models.ProductWrite{}, invalid("variantGroup.name", "is required")
		}
		for i, v := range in.VariantGroup.Variants {
			name := utils.CleanText(v.Name)
			if name == "" {
				return models.ProductWrite{}, invalid(fmt.Sprintf("variantGroup.variants[%d].name", i), "is required")
			}
			if strings.TrimSpace(v.Price) == "" {
				return models.ProductWrite{}, invalid(fmt.Sprintf("variantGroup.variants[%d].price", i), "is required")
			}
			price, err := utils.ParseMoney(v.Price)
			if err != nil {
				return models.ProductWrite{}, invalid(fmt.Sprintf("variantGroup.variants[%d].price", i), "%v", err)
			}
			group.Variants = append(group.Variants, models.Variant{
				Name:      name,
				Price:     price,
				Available: v.Available,
				Order:     v.Order,
			})
		}
		sort.SliceStable(group.Variants, func(i, j int) bool { return group.Variants[i].Order < group.Variants[j].Order })
		write.VariantGroup = group
	} else if p.BasePrice == nil {
		return models.ProductWrite{}, invalid("basePrice", "is required for products without variants")
	}

	if p.AcceptsToppings {
		seen := map[string]bool{}
		for _, id := range in.ToppingIDs {
			id = strings.TrimSpace(id)
			if id != "" && !seen[id] {
				seen[id] = true
				write.ToppingIDs = append(write.ToppingIDs, id)
			}
		}
	}
	return write, nil
}

// CreateProduct validates and inserts a product
func (s *AdminService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	write, err := BuildProductWrite(in)
	if err != nil {
		return nil, err
	}
	product, err := s.repository.CreateProduct(ctx, write)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, "product")
	return product, nil
}

// UpdateProduct validates and replaces a product
func (s *AdminService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	write, err := BuildProductWrite(in)
	if err != nil {
		return nil, err
	}
	product, err := s.repository.UpdateProduct(ctx, id, write)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, "product")
	return product, nil
}

// SetProductAvailable toggles a product's availability
func (s *AdminService) SetProductAvailable(ctx context.Context, id string, available bool) error {
	if err := s.repository.SetProductAvailable(ctx, id, available); err != nil {
		return err
	}
	s.refresh(ctx, "product availability")
	return nil
}

// DeleteProduct deletes a product
func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repository.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, "product deletion")
	return nil
}

func buildCategory(in models.CategoryInput) (models.Category, error) {
	c := models.Category{Name: utils.CleanText(in.Name), Icon: strings.TrimSpace(in.Icon), Order: in.Order}
	if c.Name == "" {
		return c, invalid("name", "is required")
	}
	return c, nil
}

// CreateCategory validates and inserts a category
func (s *AdminService) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	c, err := buildCategory(in)
	if err != nil {
		return nil, err
	}
	created, err := s.repository.CreateCategory(ctx, c)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, "category")
	return created, nil
}

// UpdateCategory validates and updates a category
func (s *AdminService) UpdateCategory(ctx context.Context, id string, in models.CategoryInput) (*models.Category, error) {
	c, err := buildCategory(in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	updated, err := s.repository.UpdateCategory(ctx, c)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, "category")
	return updated, nil
}

// DeleteCategory deletes a category
func (s *AdminService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repository.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, "category deletion")
	return nil
}

func buildBanner(in models.BannerInput) (models.Banner, []string, error) {
	b := models.Banner{
		Title:              utils.CleanText(in.Title),
		Description:        utils.CleanText(in.Description),
		ImageURL:           strings.TrimSpace(in.ImageURL),
		FullBackgroundURL:  strings.TrimSpace(in.FullBackgroundURL),
		SelectedBackground: strings.TrimSpace(in.SelectedBackground),
		Active:             in.Active,
		Order:              in.Order,
	}
	if b.Title == "" {
		return b, nil, invalid("title", "is required")
	}
	switch b.SelectedBackground {
	case "", "fondo1", "fondo2":
	default:
		return b, nil, invalid("selectedBackground", "must be fondo1, fondo2 or empty")
	}

	seen := map[string]bool{}
	var productIDs []string
	for _, id := range in.ProductIDs {
		id = strings.TrimSpace(id)
		if id != "" && !seen[id] {
			seen[id] = true
			productIDs = append(productIDs, id)
		}
	}
	return b, productIDs, nil
}

// CreateBanner validates and inserts a banner with its linked products
func (s *AdminService) CreateBanner(ctx context.Context, in models.BannerInput) (*models.Banner, error) {
	b, productIDs, err := buildBanner(in)
	if err != nil {
		return nil, err
	}
	created, err := s.repository.CreateBanner(ctx, b, productIDs)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, "banner")
	return created, nil
}

// UpdateBanner validates and updates a banner, replacing its linked products
func (s *AdminService) UpdateBanner(ctx context.Context, id string, in models.BannerInput) (*models.Banner, error) {
	b, productIDs, err := buildBanner(in)
	if err != nil {
		return nil, err
	}
	b.ID = id
	updated, err := s.repository.UpdateBanner(ctx, b, productIDs)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, "banner")
	return updated, nil
}

// SetBannerActive toggles a banner
func (s *AdminService) SetBannerActive(ctx context.Context, id string, active bool) error {
	if err := s.repository.SetBannerActive(ctx, id, active); err != nil {
		return err
	}
	s.refresh(ctx, "banner toggle")
	return nil
}

// DeleteBanner deletes a banner
func (s *AdminService) DeleteBanner(ctx context.Context, id string) error {
	if err := s.repository.DeleteBanner(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, "banner deletion")
	return nil
}

// CreateTopping validates and inserts a topping
func (s *AdminService) CreateTopping(ctx context.Context, in models.ToppingInput) (*models.Topping, error) {
	t := models.Topping{Name: utils.CleanText(in.Name), Active: in.Active}
	if t.Name == "" {
		return nil, invalid("name", "is required")
	}
	created, err := s.repository.CreateTopping(ctx, t)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, "topping")
	return created, nil
}

// UpdateTopping validates and updates a topping
func (s *AdminService) UpdateTopping(ctx context.Context, id string, in models.ToppingInput) (*models.Topping, error) {
	t := models.Topping{ID: id, Name: utils.CleanText(in.Name), Active: in.Active}
	if t.Name == "" {
		return nil, invalid("name", "is required")
	}
	updated, err := s.repository.UpdateTopping(ctx, t)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, "topping")
	return updated, nil
}

// SetToppingActive toggles a topping
func (s *AdminService) SetToppingActive(ctx context.Context, id string, active bool) error {
	if err := s.repository.SetToppingActive(ctx, id, active); err != nil {
		return err
	}
	s.refresh(ctx, "topping toggle")
	return nil
}

// DeleteTopping deletes a topping
func (s *AdminService) DeleteTopping(ctx context.Context, id string) error {
	if err := s.repository.DeleteTopping(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx, "topping deletion")
	return nil
}

// SaveStoreConfig validates and upserts the store configuration
func (s *AdminService) SaveStoreConfig(ctx context.Context, in models.StoreConfig) (*models.StoreConfig, error) {
	config := models.StoreConfig{
		BusinessName:   utils.CleanText(in.BusinessName),
		WhatsAppPhone:  strings.TrimSpace(in.WhatsAppPhone),
		BankingDetails: utils.CleanText(in.BankingDetails),
		LogoURL:        strings.TrimSpace(in.LogoURL),
		PrimaryColor:   strings.TrimSpace(in.PrimaryColor),
	}
	if config.BusinessName == "" {
		return nil, invalid("businessName", "is required")
	}
	digits := 0
	for _, r := range config.WhatsAppPhone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if config.WhatsAppPhone != "" && (digits < 10 || digits > 15) {
		return nil, invalid("whatsappPhone", "must have between 10 and 15 digits")
	}
	if config.PrimaryColor != "" && !hexColor.MatchString(config.PrimaryColor) {
		return nil, invalid("primaryColor", "must be a hex color like #6b4f3a")
	}

	saved, err := s.repository.UpsertStoreConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx, "store config")
	return saved, nil
}
