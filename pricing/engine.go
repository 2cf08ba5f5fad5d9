package pricing

import (
	"errors"

	"nube-alta-cafe/models"
)

// ErrVariantRequired is returned when a product priced by variants is priced without a chosen variant.
// The price is undefined in that case: it never falls back to 0 or to the first variant.
var ErrVariantRequired = errors.New("pricing: product requires a variant")

// ComputeUnitPrice computes the unit price (centavos) of a configured product:
// the base price (variant price or product base price) plus the surcharge for
// every topping beyond the free allowance.
func ComputeUnitPrice(product models.Product, variant *models.Variant, toppings []models.Topping) (int64, error) {
	breakdown, err := Breakdown(product, variant, toppings)
	if err != nil {
		return 0, err
	}
	return breakdown.UnitPrice, nil
}

// Breakdown computes the unit price and explains how it was reached
func Breakdown(product models.Product, variant *models.Variant, toppings []models.Topping) (models.PriceBreakdown, error) {
	base, err := basePrice(product, variant)
	if err != nil {
		return models.PriceBreakdown{}, err
	}

	b := models.PriceBreakdown{
		BasePrice:    base,
		ToppingCount: len(toppings),
	}

	// Toppings on a product that does not accept them are never charged.
	if product.AcceptsToppings {
		free := product.FreeToppingsCount
		if free < 0 {
			free = 0
		}
		extra := len(toppings) - free
		if extra < 0 {
			extra = 0
		}
		price := product.ExtraToppingPrice
		if price < 0 {
			price = 0
		}
		b.FreeToppings = len(toppings) - extra
		b.ExtraToppings = extra
		b.ToppingSurcharge = int64(extra) * price
	}

	b.UnitPrice = b.BasePrice + b.ToppingSurcharge
	return b, nil
}

func basePrice(product models.Product, variant *models.Variant) (int64, error) {
	if product.HasVariants {
		if variant == nil {
			return 0, ErrVariantRequired
		}
		if variant.Price < 0 {
			return 0, nil
		}
		return variant.Price, nil
	}
	if product.BasePrice == nil || *product.BasePrice < 0 {
		return 0, nil
	}
	return *product.BasePrice, nil
}

// LineTotal returns unitPrice * qty
func LineTotal(unitPrice int64, qty int) int64 {
	return unitPrice * int64(qty)
}

// CartTotals returns the number of units and the total price of the given lines
func CartTotals(lines []models.CartLineItem) (items int, total int64) {
	for _, line := range lines {
		items += line.Quantity
		total += line.LineTotal()
	}
	return items, total
}
