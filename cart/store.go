package cart

import (
	"errors"
	"fmt"
	"sync"

	"nube-alta-cafe/models"
	"nube-alta-cafe/pricing"
)

// ErrInvalidQuantity is returned when a configured line arrives with a quantity < 1
var ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")

// Listener receives a copy of the cart lines after every mutation
type Listener func(items []models.CartLineItem)

// Store holds the ordered lines of one cart.
// Listeners run synchronously, after the mutation is applied and before the mutating call returns.
// Notifications are delivered in mutation order; a listener must not mutate the store.
type Store struct {
	// notifyMu is taken before mu and held until listeners return
	notifyMu  sync.Mutex
	mu        sync.Mutex
	items     []models.CartLineItem
	listeners map[int]Listener
	nextID    int
}

// NewStore creates a store seeded with previously persisted lines
func NewStore(items ...models.CartLineItem) *Store {
	s := &Store{listeners: make(map[int]Listener)}
	for _, item := range items {
		item.Key = DeriveKey(item)
		s.items = append(s.items, cloneLine(item))
	}
	return s
}

// Subscribe registers a listener and returns a function that removes it
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// AddSimple adds one unit of a product with no variant and no toppings
func (s *Store) AddSimple(product models.Product) error {
	unitPrice, err := pricing.ComputeUnitPrice(product, nil, nil)
	if err != nil {
		return fmt.Errorf("cannot add %s without configuring it: %w", product.ID, err)
	}
	return s.AddConfigured(models.CartLineItem{
		Product:   product,
		Quantity:  1,
		UnitPrice: unitPrice,
	})
}

// AddConfigured merges a priced line into the cart: a line with the same key
// gains the quantity (its unit price and references stay untouched), otherwise
// the line is appended at the end.
func (s *Store) AddConfigured(item models.CartLineItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	item.Key = DeriveKey(item)
	item = cloneLine(item)

	s.mutate(func(items []models.CartLineItem) []models.CartLineItem {
		for i := range items {
			if items[i].Key == item.Key {
				items[i].Quantity += item.Quantity
				return items
			}
		}
		return append(items, item)
	})
	return nil
}

// RemoveByKey deletes the line with the given key; no-op if absent
func (s *Store) RemoveByKey(key string) {
	s.mutate(func(items []models.CartLineItem) []models.CartLineItem {
		out := items[:0]
		for _, item := range items {
			if item.Key != key {
				out = append(out, item)
			}
		}
		return out
	})
}

// SetQuantityByKey sets the quantity of a line; quantity <= 0 removes it
func (s *Store) SetQuantityByKey(key string, quantity int) {
	if quantity <= 0 {
		s.RemoveByKey(key)
		return
	}
	s.mutate(func(items []models.CartLineItem) []models.CartLineItem {
		for i := range items {
			if items[i].Key == key {
				items[i].Quantity = quantity
			}
		}
		return items
	})
}

// Clear empties the cart
func (s *Store) Clear() {
	s.mutate(func([]models.CartLineItem) []models.CartLineItem {
		return nil
	})
}

// Items returns a copy of the current lines in cart order
func (s *Store) Items() []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns the line with the given key
func (s *Store) Get(key string) (models.CartLineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Key == key {
			return cloneLine(item), true
		}
	}
	return models.CartLineItem{}, false
}

// TotalItems is the sum of quantities over all lines
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, _ := pricing.CartTotals(s.items)
	return items
}

// TotalPrice is the sum of unitPrice * quantity over all lines
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, total := pricing.CartTotals(s.items)
	return total
}

func (s *Store) mutate(fn func([]models.CartLineItem) []models.CartLineItem) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.items = fn(s.items)
	snapshot := s.snapshotLocked()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

func (s *Store) snapshotLocked() []models.CartLineItem {
	out := make([]models.CartLineItem, len(s.items))
	for i, item := range s.items {
		out[i] = cloneLine(item)
	}
	return out
}

// cloneLine copies everything a line points to so callers cannot reach stored state
func cloneLine(item models.CartLineItem) models.CartLineItem {
	item.Toppings = cloneToppings(item.Toppings)
	if item.Variant != nil {
		v := *item.Variant
		item.Variant = &v
	}
	if item.Product.BasePrice != nil {
		p := *item.Product.BasePrice
		item.Product.BasePrice = &p
	}
	return item
}

func cloneToppings(in []models.Topping) []models.Topping {
	if len(in) == 0 {
		return nil
	}
	return append([]models.Topping(nil), in...)
}
