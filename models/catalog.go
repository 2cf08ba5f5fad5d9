package models

// Category represents a menu category (table categorias)
type Category struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Icon      string `json:"icon,omitempty" yaml:"icon"`
	Order     int    `json:"order" yaml:"order"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// Product represents a menu product (table productos)
// All prices are in centavos.
// When HasVariants is true BasePrice is ignored and the price comes from the chosen variant.
type Product struct {
	ID                string `json:"id" yaml:"id"`
	Name              string `json:"name" yaml:"name"`
	Description       string `json:"description" yaml:"description"`
	ImageURL          string `json:"imageUrl" yaml:"imageUrl"`
	CategoryID        string `json:"categoryId" yaml:"categoryId"`
	BasePrice         *int64 `json:"basePrice" yaml:"basePrice"`
	HasVariants       bool   `json:"hasVariants" yaml:"hasVariants"`
	AcceptsToppings   bool   `json:"acceptsToppings" yaml:"acceptsToppings"`
	FreeToppingsCount int    `json:"freeToppingsCount" yaml:"freeToppingsCount"`
	ExtraToppingPrice int64  `json:"extraToppingPrice" yaml:"extraToppingPrice"`
	Available         bool   `json:"available" yaml:"available"`
	CreatedAt         string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt         string `json:"updatedAt" yaml:"updatedAt"`
}

// IsConfigurable reports whether adding the product needs the configurator
func (p Product) IsConfigurable() bool {
	return p.HasVariants || p.AcceptsToppings
}

// VariantGroup groups the mutually exclusive variants of a product (table grupos_variantes)
type VariantGroup struct {
	ID        string    `json:"id" yaml:"id"`
	ProductID string    `json:"productId" yaml:"productId"`
	Name      string    `json:"name" yaml:"name"`
	Variants  []Variant `json:"variants" yaml:"variants"`
}

// Variant is a priced option of a variant group (table variantes).
// Price is absolute, not a delta over the product price.
type Variant struct {
	ID        string `json:"id" yaml:"id"`
	GroupID   string `json:"groupId" yaml:"groupId"`
	Name      string `json:"name" yaml:"name"`
	Price     int64  `json:"price" yaml:"price"`
	Available bool   `json:"available" yaml:"available"`
	Order     int    `json:"order" yaml:"order"`
}

// Topping is a catalog-wide extra (table toppings)
type Topping struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Active bool   `json:"active" yaml:"active"`
}

// ProductTopping links a product with a topping it accepts (table producto_toppings)
type ProductTopping struct {
	ProductID string `json:"productId" yaml:"productId"`
	ToppingID string `json:"toppingId" yaml:"toppingId"`
}

// Banner represents a promotional banner shown on the storefront (table banners)
type Banner struct {
	ID                 string `json:"id" yaml:"id"`
	Title              string `json:"title" yaml:"title"`
	Description        string `json:"description" yaml:"description"`
	ImageURL           string `json:"imageUrl" yaml:"imageUrl"`
	FullBackgroundURL  string `json:"fullBackgroundUrl,omitempty" yaml:"fullBackgroundUrl"`
	SelectedBackground string `json:"selectedBackground,omitempty" yaml:"selectedBackground"` // fondo1, fondo2 or empty
	Active             bool   `json:"active" yaml:"active"`
	Order              int    `json:"order" yaml:"order"`
	CreatedAt          string `json:"createdAt" yaml:"createdAt"`
}

// BannerProduct links a banner with a product it promotes (table banner_productos)
type BannerProduct struct {
	BannerID  string `json:"bannerId" yaml:"bannerId"`
	ProductID string `json:"productId" yaml:"productId"`
}

// StoreConfig holds the store-wide settings (table configuracion)
type StoreConfig struct {
	ID             string `json:"id" yaml:"id"`
	BusinessName   string `json:"businessName" yaml:"businessName"`
	WhatsAppPhone  string `json:"whatsappPhone" yaml:"whatsappPhone"`
	BankingDetails string `json:"bankingDetails,omitempty" yaml:"bankingDetails"`
	LogoURL        string `json:"logoUrl,omitempty" yaml:"logoUrl"`
	PrimaryColor   string `json:"primaryColor,omitempty" yaml:"primaryColor"`
}

// DefaultBusinessName is used until the store configuration has been loaded
const DefaultBusinessName = "Nube Alta Cafe"

// ProductOptions is what the configurator needs to open a product:
// the available variants sorted by order and the accepted, active toppings.
type ProductOptions struct {
	Product      Product       `json:"product"`
	VariantGroup *VariantGroup `json:"variantGroup"`
	Toppings     []Topping     `json:"toppings"`
}

// MenuResponse is the storefront catalog payload
type MenuResponse struct {
	Config         StoreConfig         `json:"config"`
	Categories     []Category          `json:"categories"`
	Products       []Product           `json:"products"`
	Banners        []Banner            `json:"banners"`
	BannerProducts map[string][]string `json:"bannerProducts"` // bannerID -> productIDs
}

// ProductFilter narrows the storefront product list
type ProductFilter struct {
	CategoryID string
	Search     string
	BannerID   string
}
