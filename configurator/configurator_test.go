package configurator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nube-alta-cafe/models"
)

func price(v int64) *int64 { return &v }

var (
	latte = models.Product{
		ID:                "latte",
		Name:              "Latte",
		HasVariants:       true,
		AcceptsToppings:   true,
		FreeToppingsCount: 0,
		ExtraToppingPrice: 500,
		Available:         true,
	}
	sizes = &models.VariantGroup{
		ID:        "g-latte",
		ProductID: "latte",
		Name:      "Tamaño",
		Variants: []models.Variant{
			{ID: "grande", Name: "Grande", Price: 8000, Available: true, Order: 2},
			{ID: "mega", Name: "Mega", Price: 9500, Available: false, Order: 3},
			{ID: "chico", Name: "Chico", Price: 6000, Available: true, Order: 1},
		},
	}
	catalogToppings = []models.Topping{
		{ID: "nutella", Name: "Nutella", Active: true},
		{ID: "oreo", Name: "Oreo", Active: true},
		{ID: "viejo", Name: "Descontinuado", Active: false},
	}
	frappe = models.Product{
		ID:                "frappe",
		Name:              "Frappé",
		BasePrice:         price(5000),
		AcceptsToppings:   true,
		FreeToppingsCount: 1,
		ExtraToppingPrice: 1000,
		Available:         true,
	}
)

func TestOpen_OffersAvailableVariantsInOrder(t *testing.T) {
	c := New()
	assert.Equal(t, Idle, c.State())

	c.Open(latte, sizes, catalogToppings)
	require.Equal(t, Editing, c.State())

	group := c.VariantGroup()
	require.NotNil(t, group)
	require.Len(t, group.Variants, 2)
	assert.Equal(t, "chico", group.Variants[0].ID)
	assert.Equal(t, "grande", group.Variants[1].ID)

	offered := c.OfferedToppings()
	require.Len(t, offered, 2)
	assert.Equal(t, "nutella", offered[0].ID)
	assert.ErrorIs(t, c.ToggleTopping("viejo"), ErrUnknownTopping)
	assert.ErrorIs(t, c.SelectVariant("mega"), ErrUnknownVariant)
}

func TestOpen_NoToppingsWhenNotAccepted(t *testing.T) {
	product := frappe
	product.AcceptsToppings = false

	c := New()
	c.Open(product, nil, catalogToppings)
	assert.Empty(t, c.OfferedToppings())
}

func TestVariantPricing(t *testing.T) {
	c := New()
	c.Open(latte, sizes, catalogToppings)

	_, ok := c.UnitPrice()
	assert.False(t, ok, "price must be undefined until a variant is chosen")
	_, isIncomplete := c.Selection().(Incomplete)
	assert.True(t, isIncomplete)

	require.NoError(t, c.SelectVariant("grande"))
	require.NoError(t, c.SelectVariant("chico"))
	require.NoError(t, c.ToggleTopping("nutella"))
	require.NoError(t, c.ToggleTopping("oreo"))

	unit, ok := c.UnitPrice()
	require.True(t, ok)
	assert.Equal(t, int64(7000), unit)
}

func TestConfirm_RejectsMissingVariant(t *testing.T) {
	c := New()
	c.Open(latte, sizes, catalogToppings)
	require.NoError(t, c.ToggleTopping("nutella"))

	_, err := c.Confirm()
	assert.ErrorIs(t, err, ErrIncompleteConfiguration)
	assert.Equal(t, Editing, c.State())
	assert.True(t, c.MissingVariant())
	assert.True(t, c.View().MissingVariant)

	// the selection survives the rejected confirm
	require.NoError(t, c.SelectVariant("grande"))
	assert.False(t, c.MissingVariant())

	item, err := c.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "grande", item.Variant.ID)
	require.Len(t, item.Toppings, 1)
	assert.Equal(t, int64(8500), item.UnitPrice)
	assert.Equal(t, Idle, c.State())
}

func TestConfirm_FixedPriceProduct(t *testing.T) {
	c := New()
	c.Open(frappe, nil, catalogToppings)
	require.NoError(t, c.ToggleTopping("oreo"))
	require.NoError(t, c.ToggleTopping("nutella"))
	require.NoError(t, c.SetQuantity(3))

	total, ok := c.Total()
	require.True(t, ok)
	assert.Equal(t, int64(18000), total)

	item, err := c.Confirm()
	require.NoError(t, err)
	assert.Nil(t, item.Variant)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, int64(6000), item.UnitPrice)
	// catalog order, not click order
	assert.Equal(t, []string{"nutella", "oreo"}, []string{item.Toppings[0].ID, item.Toppings[1].ID})
}

func TestToggleTopping_RemovesOnSecondToggle(t *testing.T) {
	c := New()
	c.Open(frappe, nil, catalogToppings)
	require.NoError(t, c.ToggleTopping("oreo"))
	require.NoError(t, c.ToggleTopping("nutella"))
	require.NoError(t, c.ToggleTopping("oreo"))

	complete, ok := c.Selection().(Complete)
	require.True(t, ok)
	require.Len(t, complete.Toppings, 1)
	assert.Equal(t, "nutella", complete.Toppings[0].ID)
}

func TestQuantityClamping(t *testing.T) {
	c := New()
	c.Open(frappe, nil, nil)
	assert.Equal(t, 1, c.Quantity())

	require.NoError(t, c.Decrement())
	assert.Equal(t, 1, c.Quantity())

	require.NoError(t, c.SetQuantity(-4))
	assert.Equal(t, 1, c.Quantity())

	require.NoError(t, c.SetQuantity(50))
	assert.Equal(t, 20, c.Quantity())

	require.NoError(t, c.Increment())
	assert.Equal(t, 20, c.Quantity())

	require.NoError(t, c.SetQuantity(7))
	require.NoError(t, c.Increment())
	assert.Equal(t, 8, c.Quantity())
}

func TestConfirmedItemIsASnapshot(t *testing.T) {
	group := &models.VariantGroup{
		ID:       "g",
		Variants: []models.Variant{{ID: "chico", Name: "Chico", Price: 6000, Available: true}},
	}
	c := New()
	c.Open(latte, group, catalogToppings)
	require.NoError(t, c.SelectVariant("chico"))
	require.NoError(t, c.ToggleTopping("nutella"))

	item, err := c.Confirm()
	require.NoError(t, err)

	group.Variants[0].Price = 1
	group.Variants[0].Name = "changed"
	assert.Equal(t, int64(6500), item.UnitPrice)
	assert.Equal(t, "Chico", item.Variant.Name)
}

func TestCancel(t *testing.T) {
	c := New()
	c.Open(frappe, nil, catalogToppings)
	require.NoError(t, c.ToggleTopping("oreo"))

	c.Cancel()
	assert.Equal(t, Idle, c.State())
	assert.False(t, c.View().Open)

	_, err := c.Confirm()
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, c.ToggleTopping("oreo"), ErrNotOpen)

	// reopening starts from a clean selection
	c.Open(frappe, nil, catalogToppings)
	complete, ok := c.Selection().(Complete)
	require.True(t, ok)
	assert.Empty(t, complete.Toppings)
	assert.Equal(t, 1, complete.Quantity)
}

func TestView(t *testing.T) {
	c := New()
	c.Open(latte, sizes, catalogToppings)

	view := c.View()
	assert.True(t, view.Open)
	assert.False(t, view.Complete)
	assert.Nil(t, view.UnitPrice)
	assert.Nil(t, view.Total)

	require.NoError(t, c.SelectVariant("grande"))
	require.NoError(t, c.ToggleTopping("oreo"))
	require.NoError(t, c.SetQuantity(2))

	view = c.View()
	assert.True(t, view.Complete)
	assert.Equal(t, "grande", view.SelectedVariant)
	assert.Equal(t, []string{"oreo"}, view.SelectedToppings)
	require.NotNil(t, view.UnitPrice)
	assert.Equal(t, int64(8500), *view.UnitPrice)
	assert.Equal(t, int64(17000), *view.Total)
	require.NotNil(t, view.Breakdown)
	assert.Equal(t, int64(500), view.Breakdown.ToppingSurcharge)
}
