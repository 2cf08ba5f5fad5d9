package models

// LoginRequest represents the admin login body
// Example: {"email": "admin@cafeorder.com", "password": "..."}
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProductInput is the admin payload for creating or updating a product.
// Prices arrive as decimal strings ("65", "72.50") and are stored in centavos.
// Example:
// {
//   "name": "Latte",
//   "description": "Espresso con leche",
//   "imageUrl": "https://...",
//   "categoryId": "cat-1",
//   "basePrice": "",
//   "hasVariants": true,
//   "acceptsToppings": true,
//   "freeToppingsCount": 1,
//   "extraToppingPrice": "10",
//   "available": true,
//   "variantGroup": {"name": "Tamaño", "variants": [{"name": "Chico", "price": "60", "available": true, "order": 1}]},
//   "toppingIds": ["top-1", "top-2"]
// }
type ProductInput struct {
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	ImageURL          string             `json:"imageUrl"`
	CategoryID        string             `json:"categoryId"`
	BasePrice         string             `json:"basePrice"`
	HasVariants       bool               `json:"hasVariants"`
	AcceptsToppings   bool               `json:"acceptsToppings"`
	FreeToppingsCount int                `json:"freeToppingsCount"`
	ExtraToppingPrice string             `json:"extraToppingPrice"`
	Available         bool               `json:"available"`
	VariantGroup      *VariantGroupInput `json:"variantGroup,omitempty"`
	ToppingIDs        []string           `json:"toppingIds"`
}

// VariantGroupInput is the admin payload for a product's variant group
type VariantGroupInput struct {
	Name     string         `json:"name"`
	Variants []VariantInput `json:"variants"`
}

// VariantInput is the admin payload for one variant
type VariantInput struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	Available bool   `json:"available"`
	Order     int    `json:"order"`
}

// ProductWrite is a validated ProductInput ready to be persisted
type ProductWrite struct {
	Product      Product
	VariantGroup *VariantGroup
	ToppingIDs   []string
}

// CategoryInput is the admin payload for a category
type CategoryInput struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}

// BannerInput is the admin payload for a banner and its linked products
type BannerInput struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	ImageURL           string   `json:"imageUrl"`
	FullBackgroundURL  string   `json:"fullBackgroundUrl"`
	SelectedBackground string   `json:"selectedBackground"`
	Active             bool     `json:"active"`
	Order              int      `json:"order"`
	ProductIDs         []string `json:"productIds"`
}

// ToppingInput is the admin payload for a topping
type ToppingInput struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ToggleRequest flips availability/active flags
// Example: {"value": false}
type ToggleRequest struct {
	Value bool `json:"value"`
}

// DashboardResponse summarizes the catalog for the admin home
type DashboardResponse struct {
	Products            int       `json:"products"`
	AvailableProducts   int       `json:"availableProducts"`
	Categories          int       `json:"categories"`
	Banners             int       `json:"banners"`
	ActiveBanners       int       `json:"activeBanners"`
	UnavailableProducts []Product `json:"unavailableProducts"`
}

// UploadResponse is returned after an admin image upload
type UploadResponse struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
	Bytes  int    `json:"bytes"`
}

// ChangeEvent signals that a catalog table changed; it carries no guarantee about what changed
type ChangeEvent struct {
	Table string `json:"table"`
}
