package cart

import (
	"errors"

	"github.com/ashrithps/BrekkieBowlz/internal/models"
	"github.com/ashrithps/BrekkieBowlz/internal/pricing"
)

var (
	// ErrOutOfStock means the requested change would push the base item's
	// in-cart total past its available quantity.
	ErrOutOfStock = errors.New("cart: not enough stock for item")
	// ErrNotFound means no cart line matches the given key.
	ErrNotFound = errors.New("cart: item not in cart")
)

// Cart holds the in-progress order. Lines keep insertion order; stock is
// tracked per base item, shared across all customized variants, because
// physical inventory does not care how the customer customizes it.
type Cart struct {
	Lines []models.CartItem
}

func New() *Cart {
	return &Cart{}
}

// Op is a cart mutation. Exactly one of the concrete types applies; the
// operation is carried alongside the identity it acts on, never encoded
// inside it.
type Op interface {
	apply(c *Cart) error
}

// SetQuantity sets the line identified by Key to exactly Quantity.
// Quantity zero removes the line.
type SetQuantity struct {
	Key      models.VariantKey `json:"key"`
	Quantity int               `json:"quantity"`
}

// Decrement removes one unit of the given base item from whichever of its
// variants currently holds the largest quantity. It lets a "minus" control
// on a customizable item work without knowing which variant is active.
type Decrement struct {
	BaseItemID string `json:"baseItemId"`
}

// Add puts one unit of item, with the given customizations applied, into
// the cart. If the base item's in-cart total already meets its available
// quantity the cart is left unchanged and ErrOutOfStock is returned.
func (c *Cart) Add(item models.MenuItem, customizations []models.Customization) error {
	if c.baseTotal(item.ID) >= item.QtyAvailable {
		return ErrOutOfStock
	}

	ids := make([]string, 0, len(customizations))
	for _, cust := range customizations {
		ids = append(ids, cust.ID)
	}
	key := models.NewVariantKey(item.ID, ids)

	for i := range c.Lines {
		if c.Lines[i].Key.Equal(key) {
			c.Lines[i].Quantity++
			return nil
		}
	}

	c.Lines = append(c.Lines, models.CartItem{
		Key:            key,
		Name:           item.Name,
		Price:          pricing.EffectivePrice(item.Price, customizations),
		Quantity:       1,
		Customizations: append([]models.Customization(nil), customizations...),
		QtyAvailable:   item.QtyAvailable,
	})
	return nil
}

// Apply runs a single cart operation.
func (c *Cart) Apply(op Op) error {
	return op.apply(c)
}

func (op SetQuantity) apply(c *Cart) error {
	idx := -1
	for i := range c.Lines {
		if c.Lines[i].Key.Equal(op.Key) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	if op.Quantity <= 0 {
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
		return nil
	}

	line := &c.Lines[idx]
	newTotal := c.baseTotal(op.Key.BaseItemID) - line.Quantity + op.Quantity
	if newTotal > line.QtyAvailable {
		return ErrOutOfStock
	}
	line.Quantity = op.Quantity
	return nil
}

func (op Decrement) apply(c *Cart) error {
	idx := -1
	for i := range c.Lines {
		if c.Lines[i].Key.BaseItemID != op.BaseItemID {
			continue
		}
		if idx < 0 || c.Lines[i].Quantity > c.Lines[idx].Quantity {
			idx = i
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	if c.Lines[idx].Quantity <= 1 {
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
		return nil
	}
	c.Lines[idx].Quantity--
	return nil
}

// baseTotal is the quantity already in the cart across every variant of
// the given base item.
func (c *Cart) baseTotal(baseItemID string) int {
	total := 0
	for _, line := range c.Lines {
		if line.Key.BaseItemID == baseItemID {
			total += line.Quantity
		}
	}
	return total
}

// BaseQuantity reports the in-cart total for a base item.
func (c *Cart) BaseQuantity(baseItemID string) int {
	return c.baseTotal(baseItemID)
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	return append([]models.CartItem(nil), c.Lines...)
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Total is the cart's payable total.
func (c *Cart) Total() int {
	return pricing.Total(c.Lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear empties the cart after a completed checkout.
func (c *Cart) Clear() {
	c.Lines = nil
}
