package configurator

import (
	"errors"
	"fmt"
	"sort"

	"nube-alta-cafe/models"
	"nube-alta-cafe/pricing"
)

const (
	MinQuantity = 1
	MaxQuantity = 20
)

var (
	// ErrIncompleteConfiguration is returned by Confirm when a required variant is missing.
	// The configurator stays open.
	ErrIncompleteConfiguration = errors.New("configurator: choose a variant first")
	ErrNotOpen                 = errors.New("configurator: not open")
	ErrUnknownVariant          = errors.New("configurator: variant not offered")
	ErrUnknownTopping          = errors.New("configurator: topping not offered")
)

// State of the configurator
type State int

const (
	Idle State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Selection is the in-progress configuration: either Incomplete or Complete
type Selection interface {
	isSelection()
}

// Incomplete means the product needs a variant that has not been chosen
type Incomplete struct {
	Toppings []models.Topping
	Quantity int
}

// Complete holds everything needed to price and confirm the line
type Complete struct {
	Variant  *models.Variant
	Toppings []models.Topping
	Quantity int
}

func (Incomplete) isSelection() {}
func (Complete) isSelection()   {}

// Configurator tracks the selection for one product before it is added to the cart.
// It is not safe for concurrent use.
type Configurator struct {
	state          State
	product        models.Product
	group          *models.VariantGroup
	toppings       []models.Topping
	variant        *models.Variant
	chosen         map[string]bool
	quantity       int
	missingVariant bool
}

// New returns an idle configurator
func New() *Configurator {
	return &Configurator{state: Idle}
}

// State returns the current state
func (c *Configurator) State() State {
	return c.state
}

// Open starts editing a product. Only available variants are offered, sorted by order;
// toppings are offered only if the product accepts them, and only the active ones.
// Opening while already editing discards the previous selection.
func (c *Configurator) Open(product models.Product, group *models.VariantGroup, toppings []models.Topping) {
	c.reset()
	c.state = Editing
	c.product = product
	c.quantity = MinQuantity
	c.chosen = make(map[string]bool)

	if group != nil && product.HasVariants {
		offered := &models.VariantGroup{ID: group.ID, ProductID: group.ProductID, Name: group.Name}
		for _, v := range group.Variants {
			if v.Available {
				offered.Variants = append(offered.Variants, v)
			}
		}
		sort.SliceStable(offered.Variants, func(i, j int) bool {
			return offered.Variants[i].Order < offered.Variants[j].Order
		})
		c.group = offered
	}

	if product.AcceptsToppings {
		for _, t := range toppings {
			if t.Active {
				c.toppings = append(c.toppings, t)
			}
		}
	}
}

// Product returns the product being configured
func (c *Configurator) Product() models.Product {
	return c.product
}

// VariantGroup returns the offered variants, nil if the product has none
func (c *Configurator) VariantGroup() *models.VariantGroup {
	return c.group
}

// OfferedToppings returns the toppings the customer can toggle, in catalog order
func (c *Configurator) OfferedToppings() []models.Topping {
	return append([]models.Topping(nil), c.toppings...)
}

// SelectVariant chooses a variant, replacing any previous choice
func (c *Configurator) SelectVariant(variantID string) error {
	if c.state != Editing {
		return ErrNotOpen
	}
	if c.group == nil {
		return ErrUnknownVariant
	}
	for i := range c.group.Variants {
		if c.group.Variants[i].ID == variantID {
			v := c.group.Variants[i]
			c.variant = &v
			c.missingVariant = false
			return nil
		}
	}
	return ErrUnknownVariant
}

// ToggleTopping adds the topping to the selection, or removes it if already chosen
func (c *Configurator) ToggleTopping(toppingID string) error {
	if c.state != Editing {
		return ErrNotOpen
	}
	if !c.offersTopping(toppingID) {
		return ErrUnknownTopping
	}
	if c.chosen[toppingID] {
		delete(c.chosen, toppingID)
	} else {
		c.chosen[toppingID] = true
	}
	return nil
}

// SetQuantity sets the quantity, clamped to [MinQuantity, MaxQuantity]
func (c *Configurator) SetQuantity(quantity int) error {
	if c.state != Editing {
		return ErrNotOpen
	}
	c.quantity = ClampQuantity(quantity)
	return nil
}

// Increment adds one unit, up to MaxQuantity
func (c *Configurator) Increment() error {
	return c.SetQuantity(c.quantity + 1)
}

// Decrement removes one unit, down to MinQuantity
func (c *Configurator) Decrement() error {
	return c.SetQuantity(c.quantity - 1)
}

// Quantity returns the current quantity
func (c *Configurator) Quantity() int {
	return c.quantity
}

// MissingVariant reports whether the last Confirm was rejected for lack of a variant
func (c *Configurator) MissingVariant() bool {
	return c.missingVariant
}

// Selection returns the current selection as Incomplete or Complete
func (c *Configurator) Selection() Selection {
	toppings := c.selectedToppings()
	if c.product.HasVariants && c.variant == nil {
		return Incomplete{Toppings: toppings, Quantity: c.quantity}
	}
	var variant *models.Variant
	if c.variant != nil {
		v := *c.variant
		variant = &v
	}
	return Complete{Variant: variant, Toppings: toppings, Quantity: c.quantity}
}

// Breakdown returns the live price breakdown; ok is false while the price is undefined
func (c *Configurator) Breakdown() (models.PriceBreakdown, bool) {
	if c.state != Editing {
		return models.PriceBreakdown{}, false
	}
	complete, ok := c.Selection().(Complete)
	if !ok {
		return models.PriceBreakdown{}, false
	}
	b, err := pricing.Breakdown(c.product, complete.Variant, complete.Toppings)
	if err != nil {
		return models.PriceBreakdown{}, false
	}
	return b, true
}

// UnitPrice returns the live unit price; ok is false while the price is undefined
func (c *Configurator) UnitPrice() (int64, bool) {
	b, ok := c.Breakdown()
	return b.UnitPrice, ok
}

// Total returns UnitPrice * Quantity; ok is false while the price is undefined
func (c *Configurator) Total() (int64, bool) {
	unit, ok := c.UnitPrice()
	if !ok {
		return 0, false
	}
	return pricing.LineTotal(unit, c.quantity), true
}

// Confirm finishes the configuration and returns the priced line.
// An incomplete selection is rejected with ErrIncompleteConfiguration and the configurator stays open.
func (c *Configurator) Confirm() (models.CartLineItem, error) {
	if c.state != Editing {
		return models.CartLineItem{}, ErrNotOpen
	}

	switch sel := c.Selection().(type) {
	case Incomplete:
		c.missingVariant = true
		return models.CartLineItem{}, ErrIncompleteConfiguration
	case Complete:
		unitPrice, err := pricing.ComputeUnitPrice(c.product, sel.Variant, sel.Toppings)
		if err != nil {
			return models.CartLineItem{}, fmt.Errorf("failed to price %s: %w", c.product.ID, err)
		}
		item := models.CartLineItem{
			Product:   c.product,
			Variant:   sel.Variant,
			Toppings:  sel.Toppings,
			Quantity:  sel.Quantity,
			UnitPrice: unitPrice,
		}
		c.reset()
		return item, nil
	default:
		panic(fmt.Sprintf("configurator: unexpected selection %T", sel))
	}
}

// Cancel discards the selection and returns to Idle
func (c *Configurator) Cancel() {
	c.reset()
}

// View renders the live state for the storefront
func (c *Configurator) View() models.ConfiguratorView {
	view := models.ConfiguratorView{
		Open:             c.state == Editing,
		SelectedToppings: []string{},
		Quantity:         c.quantity,
		MissingVariant:   c.missingVariant,
	}
	if c.state != Editing {
		return view
	}

	product := c.product
	view.Product = &product
	view.VariantGroup = c.group
	view.Toppings = c.OfferedToppings()
	if c.variant != nil {
		view.SelectedVariant = c.variant.ID
	}
	for _, t := range c.selectedToppings() {
		view.SelectedToppings = append(view.SelectedToppings, t.ID)
	}
	if b, ok := c.Breakdown(); ok {
		total := pricing.LineTotal(b.UnitPrice, c.quantity)
		view.Complete = true
		view.UnitPrice = &b.UnitPrice
		view.Total = &total
		view.Breakdown = &b
	}
	return view
}

// ClampQuantity normalizes a quantity into [MinQuantity, MaxQuantity]
func ClampQuantity(quantity int) int {
	if quantity < MinQuantity {
		return MinQuantity
	}
	if quantity > MaxQuantity {
		return MaxQuantity
	}
	return quantity
}

// selectedToppings returns the chosen toppings in catalog presentation order
func (c *Configurator) selectedToppings() []models.Topping {
	var out []models.Topping
	for _, t := range c.toppings {
		if c.chosen[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

func (c *Configurator) offersTopping(id string) bool {
	for _, t := range c.toppings {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (c *Configurator) reset() {
	*c = Configurator{state: Idle}
}
