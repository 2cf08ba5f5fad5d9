package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"nube-alta-cafe/db"
	"nube-alta-cafe/models"
	"nube-alta-cafe/utils"
)

// AdminRepository writes the catalog from the back-office.
// Every write fires the catalog_changes trigger, which reloads storefront snapshots.
type AdminRepository struct {
	catalog *CatalogRepository
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(catalog *CatalogRepository) *AdminRepository {
	return &AdminRepository{catalog: catalog}
}

// Ensure AdminRepository implements AdminRepositoryInterface
var _ AdminRepositoryInterface = (*AdminRepository)(nil)

func nullableMoney(p *int64) any {
	if p == nil {
		return nil
	}
	return utils.CentsToDecimal(*p)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func checkAffected(res sql.Result, what string, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s %s: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}

func withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("❌ Rollback failed: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateProduct inserts a product with its variant group and topping associations
func (r *AdminRepository) CreateProduct(ctx context.Context, write models.ProductWrite) (*models.Product, error) {
	id := uuid.New().String()
	p := write.Product

	err := withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO productos (id, nombre, descripcion, precio, imagen_url, categoria_id,
				esta_disponible, tiene_variantes, acepta_toppings, precio_topping_extra, toppings_gratis)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			id, p.Name, p.Description, nullableMoney(p.BasePrice), p.ImageURL, nullableString(p.CategoryID),
			p.Available, p.HasVariants, p.AcceptsToppings, utils.CentsToDecimal(p.ExtraToppingPrice), p.FreeToppingsCount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
		return replaceProductOptions(ctx, tx, id, write)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ CreateProduct: Created product %s (%s)", id, p.Name)
	return r.catalog.GetProduct(ctx, id)
}

// UpdateProduct replaces a product, its variant group and its topping associations
func (r *AdminRepository) UpdateProduct(ctx context.Context, id string, write models.ProductWrite) (*models.Product, error) {
	p := write.Product

	err := withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE productos SET nombre = $2, descripcion = $3, precio = $4, imagen_url = $5,
				categoria_id = $6, esta_disponible = $7, tiene_variantes = $8, acepta_toppings = $9,
				precio_topping_extra = $10, toppings_gratis = $11, actualizado_en = now()
			WHERE id = $1`,
			id, p.Name, p.Description, nullableMoney(p.BasePrice), p.ImageURL, nullableString(p.CategoryID),
			p.Available, p.HasVariants, p.AcceptsToppings, utils.CentsToDecimal(p.ExtraToppingPrice), p.FreeToppingsCount,
		)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		if err := checkAffected(res, "product", id); err != nil {
			return err
		}
		return replaceProductOptions(ctx, tx, id, write)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ UpdateProduct: Updated product %s", id)
	return r.catalog.GetProduct(ctx, id)
}

// replaceProductOptions rewrites the variant group and topping links of a product
func replaceProductOptions(ctx context.Context, tx *sql.Tx, productID string, write models.ProductWrite) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM grupos_variantes WHERE producto_id = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear variant group: %w", err)
	}
	if write.VariantGroup != nil {
		groupID := uuid.New().String()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO grupos_variantes (id, producto_id, nombre) VALUES ($1, $2, $3)`,
			groupID, productID, write.VariantGroup.Name)
		if err != nil {
			return fmt.Errorf("failed to insert variant group: %w", err)
		}
		for _, v := range write.VariantGroup.Variants {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO variantes (id, grupo_id, nombre, precio, disponible, orden) VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.New().String(), groupID, v.Name, utils.CentsToDecimal(v.Price), v.Available, v.Order)
			if err != nil {
				return fmt.Errorf("failed to insert variant %s: %w", v.Name, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM producto_toppings WHERE producto_id = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear product toppings: %w", err)
	}
	for _, toppingID := range write.ToppingIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO producto_toppings (producto_id, topping_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			productID, toppingID)
		if err != nil {
			return fmt.Errorf("failed to link topping %s: %w", toppingID, err)
		}
	}
	return nil
}

// SetProductAvailable toggles esta_disponible
func (r *AdminRepository) SetProductAvailable(ctx context.Context, id string, available bool) error {
	res, err := db.DB.ExecContext(ctx,
		`UPDATE productos SET esta_disponible = $2, actualizado_en = now() WHERE id = $1`, id, available)
	if err != nil {
		return fmt.Errorf("failed to update product availability: %w", err)
	}
	return checkAffected(res, "product", id)
}

// DeleteProduct deletes a product; variants and links cascade
func (r *AdminRepository) DeleteProduct(ctx context.Context, id string) error {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return checkAffected(res, "product", id)
}

// CreateCategory inserts a category
func (r *AdminRepository) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	category.ID = uuid.New().String()
	err := db.DB.QueryRowContext(ctx,
		`INSERT INTO categorias (id, nombre, icono, orden) VALUES ($1, $2, $3, $4) RETURNING creado_en::text`,
		category.ID, category.Name, nullableString(category.Icon), category.Order,
	).Scan(&category.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	log.Printf("✅ CreateCategory: Created category %s (%s)", category.ID, category.Name)
	return &category, nil
}

// UpdateCategory updates a category
func (r *AdminRepository) UpdateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	err := db.DB.QueryRowContext(ctx,
		`UPDATE categorias SET nombre = $2, icono = $3, orden = $4 WHERE id = $1 RETURNING creado_en::text`,
		category.ID, category.Name, nullableString(category.Icon), category.Order,
	).Scan(&category.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &category, nil
}

// DeleteCategory deletes a category; its products keep existing without category
func (r *AdminRepository) DeleteCategory(ctx context.Context, id string) error {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return checkAffected(res, "category", id)
}

// CreateBanner inserts a banner and its product links
func (r *AdminRepository) CreateBanner(ctx context.Context, banner models.Banner, productIDs []string) (*models.Banner, error) {
	banner.ID = uuid.New().String()
	err := withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO banners (id, titulo, descripcion, imagen_url, imagen_fondo_completo_url,
				fondo_seleccionado, activo, orden)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING creado_en::text`,
			banner.ID, banner.Title, banner.Description, banner.ImageURL, nullableString(banner.FullBackgroundURL),
			nullableString(banner.SelectedBackground), banner.Active, banner.Order,
		).Scan(&banner.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert banner: %w", err)
		}
		return replaceBannerProducts(ctx, tx, banner.ID, productIDs)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ CreateBanner: Created banner %s with %d products", banner.ID, len(productIDs))
	return &banner, nil
}

// UpdateBanner updates a banner and replaces its product links
func (r *AdminRepository) UpdateBanner(ctx context.Context, banner models.Banner, productIDs []string) (*models.Banner, error) {
	err := withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			UPDATE banners SET titulo = $2, descripcion = $3, imagen_url = $4, imagen_fondo_completo_url = $5,
				fondo_seleccionado = $6, activo = $7, orden = $8
			WHERE id = $1
			RETURNING creado_en::text`,
			banner.ID, banner.Title, banner.Description, banner.ImageURL, nullableString(banner.FullBackgroundURL),
			nullableString(banner.SelectedBackground), banner.Active, banner.Order,
		).Scan(&banner.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update banner: %w", err)
		}
		return replaceBannerProducts(ctx, tx, banner.ID, productIDs)
	})
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

func replaceBannerProducts(ctx context.Context, tx *sql.Tx, bannerID string, productIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM banner_productos WHERE banner_id = $1`, bannerID); err != nil {
		return fmt.Errorf("failed to clear banner products: %w", err)
	}
	for _, productID := range productIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO banner_productos (banner_id, producto_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			bannerID, productID)
		if err != nil {
			return fmt.Errorf("failed to link product %s: %w", productID, err)
		}
	}
	return nil
}

// SetBannerActive toggles activo
func (r *AdminRepository) SetBannerActive(ctx context.Context, id string, active bool) error {
	res, err := db.DB.ExecContext(ctx, `UPDATE banners SET activo = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}
	return checkAffected(res, "banner", id)
}

// DeleteBanner deletes a banner; links cascade
func (r *AdminRepository) DeleteBanner(ctx context.Context, id string) error {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	return checkAffected(res, "banner", id)
}

// CreateTopping inserts a topping
func (r *AdminRepository) CreateTopping(ctx context.Context, topping models.Topping) (*models.Topping, error) {
	topping.ID = uuid.New().String()
	_, err := db.DB.ExecContext(ctx,
		`INSERT INTO toppings (id, nombre, activo) VALUES ($1, $2, $3)`, topping.ID, topping.Name, topping.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to insert topping: %w", err)
	}
	log.Printf("✅ CreateTopping: Created topping %s (%s)", topping.ID, topping.Name)
	return &topping, nil
}

// UpdateTopping updates a topping
func (r *AdminRepository) UpdateTopping(ctx context.Context, topping models.Topping) (*models.Topping, error) {
	res, err := db.DB.ExecContext(ctx,
		`UPDATE toppings SET nombre = $2, activo = $3 WHERE id = $1`, topping.ID, topping.Name, topping.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to update topping: %w", err)
	}
	if err := checkAffected(res, "topping", topping.ID); err != nil {
		return nil, err
	}
	return &topping, nil
}

// SetToppingActive toggles activo
func (r *AdminRepository) SetToppingActive(ctx context.Context, id string, active bool) error {
	res, err := db.DB.ExecContext(ctx, `UPDATE toppings SET activo = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update topping: %w", err)
	}
	return checkAffected(res, "topping", id)
}

// DeleteTopping deletes a topping; product links cascade
func (r *AdminRepository) DeleteTopping(ctx context.Context, id string) error {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM toppings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete topping: %w", err)
	}
	return checkAffected(res, "topping", id)
}

// UpsertStoreConfig updates the configuration row, creating it the first time
func (r *AdminRepository) UpsertStoreConfig(ctx context.Context, config models.StoreConfig) (*models.StoreConfig, error) {
	existing, err := r.catalog.GetStoreConfig(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		config.ID = uuid.New().String()
		_, err = db.DB.ExecContext(ctx, `
			INSERT INTO configuracion (id, nombre_negocio, telefono_whatsapp, datos_bancarios, logo_url, color_primario)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			config.ID, config.BusinessName, config.WhatsAppPhone, nullableString(config.BankingDetails),
			config.LogoURL, config.PrimaryColor)
	case err != nil:
		return nil, err
	default:
		config.ID = existing.ID
		_, err = db.DB.ExecContext(ctx, `
			UPDATE configuracion SET nombre_negocio = $2, telefono_whatsapp = $3, datos_bancarios = $4,
				logo_url = $5, color_primario = $6
			WHERE id = $1`,
			config.ID, config.BusinessName, config.WhatsAppPhone, nullableString(config.BankingDetails),
			config.LogoURL, config.PrimaryColor)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save store config: %w", err)
	}

	log.Printf("✅ UpsertStoreConfig: Saved configuration %s", config.ID)
	return &config, nil
}
