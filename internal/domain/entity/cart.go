package entity

import (
	"math"
	"slices"

	domainerrors "supermarket/internal/domain/errors"

	"github.com/shopspring/decimal"
)

// CartLine pairs a product with the quantity requested for it.
type CartLine struct {
	Product  Product
	Quantity int
}

// LineTotal returns unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.LineTotal(l.Quantity)
}

// Cart holds requested quantities keyed by product name, in the order the
// products were first added. It never touches catalog stock; reserving and
// releasing units is the caller's job.
type Cart struct {
	lines []*CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add records qty more units of product. Quantities accumulate onto an
// existing line; a sum that would overflow int is rejected.
func (c *Cart) Add(product Product, qty int) error {
	if qty <= 0 {
		return domainerrors.ErrInvalidQuantity
	}

	if line := c.find(product.Name); line != nil {
		if qty > math.MaxInt-line.Quantity {
			return domainerrors.ErrInvalidQuantity
		}
		line.Quantity += qty

		return nil
	}

	c.lines = append(c.lines, &CartLine{Product: product, Quantity: qty})

	return nil
}

// Remove takes up to qty units of the named product out of the cart and
// returns how many were actually removed. When qty covers the whole line the
// line is dropped. Removing an absent product is a no-op.
func (c *Cart) Remove(name string, qty int) int {
	if qty <= 0 {
		return 0
	}

	idx := c.index(name)
	if idx < 0 {
		return 0
	}

	line := c.lines[idx]
	if qty >= line.Quantity {
		removed := line.Quantity
		c.lines = slices.Delete(c.lines, idx, idx+1)

		return removed
	}

	line.Quantity -= qty

	return qty
}

// Subtotal returns the sum of all line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal())
	}

	return total
}

// Clear empties the cart and returns the lines it held.
func (c *Cart) Clear() []CartLine {
	cleared := c.Lines()
	c.lines = nil

	return cleared
}

// Merge moves every line of other into c and empties other.
func (c *Cart) Merge(other *Cart) {
	if other == nil || other == c {
		return
	}

	for _, line := range other.Clear() {
		// Both carts hold reserved stock, so the sum fits and Add cannot fail.
		_ = c.Add(line.Product, line.Quantity)
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, *line)
	}

	return lines
}

// Line returns the 1-based n-th line.
func (c *Cart) Line(n int) (CartLine, bool) {
	if n < 1 || n > len(c.lines) {
		return CartLine{}, false
	}

	return *c.lines[n-1], true
}

// Quantity returns the recorded quantity for name, or 0.
func (c *Cart) Quantity(name string) int {
	if line := c.find(name); line != nil {
		return line.Quantity
	}

	return 0
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) find(name string) *CartLine {
	if idx := c.index(name); idx >= 0 {
		return c.lines[idx]
	}

	return nil
}

func (c *Cart) index(name string) int {
	return slices.IndexFunc(c.lines, func(line *CartLine) bool {
		return line.Product.Name == name
	})
}
