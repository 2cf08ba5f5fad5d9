package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"nube-alta-cafe/db"
	"nube-alta-cafe/models"
	"nube-alta-cafe/utils"
)

// CatalogRepository reads the menu catalog from PostgreSQL
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

const productColumns = `
	id::text, nombre, descripcion, COALESCE(imagen_url, ''), COALESCE(categoria_id::text, ''),
	precio::text, tiene_variantes, acepta_toppings, toppings_gratis, precio_topping_extra::text,
	esta_disponible, creado_en::text, actualizado_en::text`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var basePrice sql.NullString
	var extraPrice string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.ImageURL,
		&p.CategoryID,
		&basePrice,
		&p.HasVariants,
		&p.AcceptsToppings,
		&p.FreeToppingsCount,
		&extraPrice,
		&p.Available,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}

	if basePrice.Valid {
		cents, err := utils.ParseMoney(basePrice.String)
		if err != nil {
			return p, fmt.Errorf("product %s precio: %w", p.ID, err)
		}
		p.BasePrice = &cents
	}
	if p.ExtraToppingPrice, err = utils.ParseMoney(extraPrice); err != nil {
		return p, fmt.Errorf("product %s precio_topping_extra: %w", p.ID, err)
	}
	return p, nil
}

// ListProducts retrieves all products, newest first
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos ORDER BY creado_en DESC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying products: %v", err)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Printf("❌ Error scanning product: %v", err)
			continue
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	log.Printf("✓ Fetched %d products", len(products))
	return products, nil
}

// GetProduct retrieves one product by id
func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1`

	p, err := scanProduct(db.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &p, nil
}

// ListCategories retrieves all categories ordered by orden
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT id::text, nombre, COALESCE(icono, ''), orden, creado_en::text
		FROM categorias
		ORDER BY orden ASC, nombre ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Order, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListVariantGroupsWithVariants retrieves every variant group with all its variants (available or not)
func (r *CatalogRepository) ListVariantGroupsWithVariants(ctx context.Context) ([]models.VariantGroup, error) {
	query := `
		SELECT g.id::text, g.producto_id::text, g.nombre,
		       v.id::text, v.nombre, v.precio::text, v.disponible, v.orden
		FROM grupos_variantes g
		LEFT JOIN variantes v ON v.grupo_id = g.id
		ORDER BY g.producto_id, v.orden ASC, v.nombre ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query variant groups: %w", err)
	}
	defer rows.Close()

	groups := []models.VariantGroup{}
	index := map[string]int{}
	for rows.Next() {
		var g models.VariantGroup
		var variantID, variantName, variantPrice sql.NullString
		var available sql.NullBool
		var order sql.NullInt64

		err := rows.Scan(&g.ID, &g.ProductID, &g.Name, &variantID, &variantName, &variantPrice, &available, &order)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant group: %w", err)
		}

		i, ok := index[g.ID]
		if !ok {
			g.Variants = []models.Variant{}
			groups = append(groups, g)
			i = len(groups) - 1
			index[g.ID] = i
		}
		if !variantID.Valid {
			continue
		}

		price, err := utils.ParseMoney(variantPrice.String)
		if err != nil {
			return nil, fmt.Errorf("variant %s precio: %w", variantID.String, err)
		}
		groups[i].Variants = append(groups[i].Variants, models.Variant{
			ID:        variantID.String,
			GroupID:   g.ID,
			Name:      variantName.String,
			Price:     price,
			Available: available.Bool,
			Order:     int(order.Int64),
		})
	}
	return groups, rows.Err()
}

// ListProductToppings retrieves all product/topping associations
func (r *CatalogRepository) ListProductToppings(ctx context.Context) ([]models.ProductTopping, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT producto_id::text, topping_id::text FROM producto_toppings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query product toppings: %w", err)
	}
	defer rows.Close()

	links := []models.ProductTopping{}
	for rows.Next() {
		var l models.ProductTopping
		if err := rows.Scan(&l.ProductID, &l.ToppingID); err != nil {
			return nil, fmt.Errorf("failed to scan product topping: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// ListToppings retrieves all toppings, active or not
func (r *CatalogRepository) ListToppings(ctx context.Context) ([]models.Topping, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT id::text, nombre, activo FROM toppings ORDER BY nombre ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query toppings: %w", err)
	}
	defer rows.Close()

	toppings := []models.Topping{}
	for rows.Next() {
		var t models.Topping
		if err := rows.Scan(&t.ID, &t.Name, &t.Active); err != nil {
			return nil, fmt.Errorf("failed to scan topping: %w", err)
		}
		toppings = append(toppings, t)
	}
	return toppings, rows.Err()
}

// ListBanners retrieves all banners ordered by orden
func (r *CatalogRepository) ListBanners(ctx context.Context) ([]models.Banner, error) {
	query := `
		SELECT id::text, titulo, descripcion, COALESCE(imagen_url, ''),
		       COALESCE(imagen_fondo_completo_url, ''), COALESCE(fondo_seleccionado, ''),
		       activo, orden, creado_en::text
		FROM banners
		ORDER BY orden ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query banners: %w", err)
	}
	defer rows.Close()

	banners := []models.Banner{}
	for rows.Next() {
		var b models.Banner
		err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.ImageURL, &b.FullBackgroundURL,
			&b.SelectedBackground, &b.Active, &b.Order, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan banner: %w", err)
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

// ListBannerProducts retrieves all banner/product links
func (r *CatalogRepository) ListBannerProducts(ctx context.Context) ([]models.BannerProduct, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT banner_id::text, producto_id::text FROM banner_productos`)
	if err != nil {
		return nil, fmt.Errorf("failed to query banner products: %w", err)
	}
	defer rows.Close()

	links := []models.BannerProduct{}
	for rows.Next() {
		var l models.BannerProduct
		if err := rows.Scan(&l.BannerID, &l.ProductID); err != nil {
			return nil, fmt.Errorf("failed to scan banner product: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// GetStoreConfig retrieves the single configuration row
func (r *CatalogRepository) GetStoreConfig(ctx context.Context) (*models.StoreConfig, error) {
	query := `
		SELECT id::text, nombre_negocio, telefono_whatsapp, COALESCE(datos_bancarios, ''),
		       logo_url, color_primario
		FROM configuracion
		LIMIT 1
	`

	var c models.StoreConfig
	err := db.DB.QueryRowContext(ctx, query).Scan(
		&c.ID, &c.BusinessName, &c.WhatsAppPhone, &c.BankingDetails, &c.LogoURL, &c.PrimaryColor,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store config: %w", err)
	}
	return &c, nil
}
