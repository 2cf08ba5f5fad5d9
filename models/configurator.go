package models

// ConfiguratorView is the live state of an open configurator as shown to the customer
// UnitPrice and Total are nil while a required variant has not been chosen.
type ConfiguratorView struct {
	Open             bool            `json:"open"`
	Product          *Product        `json:"product,omitempty"`
	VariantGroup     *VariantGroup   `json:"variantGroup,omitempty"`
	Toppings         []Topping       `json:"toppings,omitempty"`
	SelectedVariant  string          `json:"selectedVariant,omitempty"`
	SelectedToppings []string        `json:"selectedToppings"`
	Quantity         int             `json:"quantity"`
	Complete         bool            `json:"complete"`
	MissingVariant   bool            `json:"missingVariant"`
	UnitPrice        *int64          `json:"unitPrice"`
	Total            *int64          `json:"total"`
	Breakdown        *PriceBreakdown `json:"breakdown,omitempty"`
}

// OpenConfiguratorRequest opens the configurator for a product
// Example: {"productId": "prod-7"}
type OpenConfiguratorRequest struct {
	ProductID string `json:"productId"`
}

// SelectVariantRequest chooses a variant in the open configurator
// Example: {"variantId": "var-2"}
type SelectVariantRequest struct {
	VariantID string `json:"variantId"`
}

// SetQuantityRequest sets the configurator quantity (clamped to 1..20)
// Example: {"quantity": 2}
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}
