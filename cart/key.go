package cart

import (
	"sort"
	"strconv"
	"strings"

	"nube-alta-cafe/models"
)

// noneSentinel marks an absent variant or an empty topping set.
// Encoded ids always start with a digit, so the sentinel can never be mistaken for one.
const noneSentinel = "none"

// DeriveKey returns the merge key of a line item: product id, variant id (or none)
// and the sorted topping ids (or none). Each id is length-prefixed ("<len>:<id>")
// so ids containing the separators cannot produce colliding keys.
func DeriveKey(item models.CartLineItem) string {
	variantID := ""
	if item.Variant != nil {
		variantID = item.Variant.ID
	}
	toppingIDs := make([]string, 0, len(item.Toppings))
	for _, t := range item.Toppings {
		toppingIDs = append(toppingIDs, t.ID)
	}
	return KeyFor(item.Product.ID, variantID, toppingIDs)
}

// KeyFor builds the merge key from raw ids. An empty variantID means no variant.
// Topping order does not matter.
func KeyFor(productID string, variantID string, toppingIDs []string) string {
	var b strings.Builder
	writeID(&b, productID)

	b.WriteByte('|')
	if variantID == "" {
		b.WriteString(noneSentinel)
	} else {
		writeID(&b, variantID)
	}

	b.WriteByte('|')
	if len(toppingIDs) == 0 {
		b.WriteString(noneSentinel)
		return b.String()
	}
	sorted := append([]string(nil), toppingIDs...)
	sort.Strings(sorted)
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		writeID(&b, id)
	}
	return b.String()
}

func writeID(b *strings.Builder, id string) {
	b.WriteString(strconv.Itoa(len(id)))
	b.WriteByte(':')
	b.WriteString(id)
}
