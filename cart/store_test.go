package cart

import (
	"math/rand"
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
		ExtraToppingPrice: 1000,
		Available:         true,
	}
	grande    = models.Variant{ID: "grande", Name: "Grande", Price: 8000, Available: true, Order: 1}
	americano = models.Product{ID: "americano", Name: "Americano", BasePrice: price(4500), Available: true}
	nutella   = models.Topping{ID: "nutella", Name: "Nutella", Active: true}
	oreo      = models.Topping{ID: "oreo", Name: "Oreo", Active: true}
)

func configured(qty int, unit int64, tops ...models.Topping) models.CartLineItem {
	v := grande
	return models.CartLineItem{
		Product:   latte,
		Variant:   &v,
		Toppings:  tops,
		Quantity:  qty,
		UnitPrice: unit,
	}
}

func TestStore_MergesSameConfiguration(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddConfigured(configured(1, 9000, nutella)))
	require.NoError(t, s.AddConfigured(configured(1, 9000, nutella)))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(9000), items[0].UnitPrice)
}

func TestStore_ToppingOrderDoesNotMatter(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddConfigured(configured(1, 10000, nutella, oreo)))
	require.NoError(t, s.AddConfigured(configured(2, 10000, oreo, nutella)))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	// the first configuration's topping order is kept
	assert.Equal(t, []models.Topping{nutella, oreo}, items[0].Toppings)
}

func TestStore_MergeKeepsExistingUnitPrice(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddConfigured(configured(1, 9000, nutella)))
	require.NoError(t, s.AddConfigured(configured(1, 12345, nutella)))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(9000), items[0].UnitPrice)
}

func TestStore_DifferentConfigurationsAppend(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddSimple(americano))
	require.NoError(t, s.AddConfigured(configured(1, 9000, nutella)))
	require.NoError(t, s.AddConfigured(configured(1, 8000)))
	require.NoError(t, s.AddSimple(americano))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "americano", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(4500), items[0].UnitPrice)
	assert.Len(t, items[1].Toppings, 1)
	assert.Empty(t, items[2].Toppings)
}

func TestStore_AddSimpleRejectsVariantProducts(t *testing.T) {
	s := NewStore()
	assert.Error(t, s.AddSimple(latte))
	assert.Empty(t, s.Items())
}

func TestStore_AddConfiguredRejectsZeroQuantity(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.AddConfigured(configured(0, 9000)), ErrInvalidQuantity)
}

func TestStore_SetQuantityFloorRemoves(t *testing.T) {
	for _, qty := range []int{0, -5} {
		s := NewStore()
		require.NoError(t, s.AddConfigured(configured(3, 9000, nutella)))
		key := s.Items()[0].Key

		s.SetQuantityByKey(key, qty)

		_, ok := s.Get(key)
		assert.False(t, ok, "quantity %d should remove the line", qty)
		assert.Empty(t, s.Items())
	}
}

func TestStore_SetQuantityAndRemove(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddSimple(americano))
	key := s.Items()[0].Key

	s.SetQuantityByKey(key, 4)
	assert.Equal(t, 4, s.TotalItems())
	assert.Equal(t, int64(18000), s.TotalPrice())

	s.RemoveByKey("missing")
	assert.Len(t, s.Items(), 1)

	s.RemoveByKey(key)
	assert.Empty(t, s.Items())
	assert.Zero(t, s.TotalPrice())
}

func TestStore_FrozenUnitPrice(t *testing.T) {
	product := americano
	product.BasePrice = price(4500)

	s := NewStore()
	require.NoError(t, s.AddSimple(product))

	*product.BasePrice = 9900
	product.Name = "Americano doble"

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(4500), items[0].UnitPrice)
	assert.Equal(t, int64(4500), s.TotalPrice())
}

func TestStore_ItemsAreCopies(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddConfigured(configured(1, 9000, nutella)))

	items := s.Items()
	items[0].Quantity = 99
	items[0].Toppings[0].Name = "changed"

	fresh := s.Items()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.Equal(t, "Nutella", fresh[0].Toppings[0].Name)
}

func TestStore_ItemsDoNotShareVariantOrPrice(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddConfigured(configured(1, 9000)))
	require.NoError(t, s.AddSimple(americano))

	items := s.Items()
	items[0].Variant.Price = 1
	items[0].Variant.Name = "changed"
	*items[1].Product.BasePrice = 1

	line, ok := s.Get(items[1].Key)
	require.True(t, ok)
	*line.Product.BasePrice = 2

	fresh := s.Items()
	assert.Equal(t, int64(8000), fresh[0].Variant.Price)
	assert.Equal(t, "Grande", fresh[0].Variant.Name)
	assert.Equal(t, int64(4500), *fresh[1].Product.BasePrice)
}

func TestStore_ListenersSeeMutationSynchronously(t *testing.T) {
	s := NewStore()
	var seen [][]models.CartLineItem
	unsubscribe := s.Subscribe(func(items []models.CartLineItem) {
		seen = append(seen, items)
	})

	require.NoError(t, s.AddSimple(americano))
	require.Len(t, seen, 1)
	assert.Equal(t, 1, seen[0][0].Quantity)

	s.Clear()
	require.Len(t, seen, 2)
	assert.Empty(t, seen[1])

	unsubscribe()
	require.NoError(t, s.AddSimple(americano))
	assert.Len(t, seen, 2)
}

func TestStore_RandomizedAggregates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tops := []models.Topping{nutella, oreo, {ID: "chispas", Name: "Chispas", Active: true}}

	s := NewStore()
	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(5); op {
		case 0:
			require.NoError(t, s.AddSimple(americano))
		case 1:
			var chosen []models.Topping
			for _, tp := range tops {
				if rng.Intn(2) == 0 {
					chosen = append(chosen, tp)
				}
			}
			qty := rng.Intn(20) + 1
			require.NoError(t, s.AddConfigured(configured(qty, int64(8000+1000*len(chosen)), chosen...)))
		case 2, 3:
			items := s.Items()
			if len(items) == 0 {
				continue
			}
			key := items[rng.Intn(len(items))].Key
			if op == 2 {
				s.SetQuantityByKey(key, rng.Intn(10)-3)
			} else {
				s.RemoveByKey(key)
			}
		case 4:
			if rng.Intn(20) == 0 {
				s.Clear()
			}
		}

		var wantItems int
		var wantTotal int64
		keys := map[string]bool{}
		for _, item := range s.Items() {
			require.Positive(t, item.Quantity)
			require.False(t, keys[item.Key], "duplicate key %s", item.Key)
			keys[item.Key] = true
			wantItems += item.Quantity
			wantTotal += item.UnitPrice * int64(item.Quantity)
		}
		require.Equal(t, wantItems, s.TotalItems(), "step %d", step)
		require.Equal(t, wantTotal, s.TotalPrice(), "step %d", step)
	}
}
