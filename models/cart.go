package models

// CartLineItem represents one configured, priced and quantified line of a cart.
// UnitPrice is frozen when the line is configured and never follows later catalog changes.
type CartLineItem struct {
	Key       string    `json:"key"`
	Product   Product   `json:"product"`
	Variant   *Variant  `json:"variant,omitempty"`
	Toppings  []Topping `json:"toppings,omitempty"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unitPrice"`
}

// LineTotal returns UnitPrice * Quantity
func (l CartLineItem) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// CartResponse represents the cart payload returned to the storefront
// Example response:
// {
//   "items": [{"key": "...", "product": {...}, "quantity": 2, "unitPrice": 9000}],
//   "totalItems": 2,
//   "totalPrice": 18000,
//   "totalPriceFormatted": "$180.00"
// }
type CartResponse struct {
	Items               []CartLineItem `json:"items"`
	TotalItems          int            `json:"totalItems"`
	TotalPrice          int64          `json:"totalPrice"`
	TotalPriceFormatted string         `json:"totalPriceFormatted"`
}

// AddToCartRequest represents the request body for adding a non-configurable product
// Example: {"productId": "prod-3"}
type AddToCartRequest struct {
	ProductID string `json:"productId"`
}

// UpdateCartQuantityRequest represents the request body for changing a line quantity.
// A quantity <= 0 removes the line.
// Example: {"quantity": 3}
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// PriceBreakdown explains how a unit price was computed
type PriceBreakdown struct {
	BasePrice        int64 `json:"basePrice"`
	ToppingCount     int   `json:"toppingCount"`
	FreeToppings     int   `json:"freeToppings"`
	ExtraToppings    int   `json:"extraToppings"`
	ToppingSurcharge int64 `json:"toppingSurcharge"`
	UnitPrice        int64 `json:"unitPrice"`
}
