// Package pricing turns a cart and an ordered discount rule set into
// discounts, tax and totals. It is pure arithmetic: no I/O, no hidden state.
package pricing

import (
	"slices"

	"supermarket/internal/domain/entity"
	domainerrors "supermarket/internal/domain/errors"

	"github.com/shopspring/decimal"
)

// Scaling selects how a per-line discount is turned into the cart discount.
type Scaling string

const (
	// ScalingLine sums each line's discount once.
	ScalingLine Scaling = "line"
	// ScalingPerUnit multiplies each line's discount by the line quantity
	// again, reproducing the legacy till's figures.
	ScalingPerUnit Scaling = "per_unit"
)

// IsValid checks if the Scaling is a valid value.
func (s Scaling) IsValid() bool {
	return s == ScalingLine || s == ScalingPerUnit
}

// DefaultScale is the number of decimal places money is rounded to.
const DefaultScale int32 = 2

// Options tunes the engine.
type Options struct {
	TaxRate decimal.Decimal
	Scale   int32
	Scaling Scaling
}

// DefaultOptions returns a 10% tax rate, cent rounding and line scaling.
func DefaultOptions() Options {
	return Options{
		TaxRate: decimal.RequireFromString("0.10"),
		Scale:   DefaultScale,
		Scaling: ScalingLine,
	}
}

// Totals is the automatic-discount view of a cart.
type Totals struct {
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	DiscountedTotal decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
}

// SelectedDiscount is the result of applying one chosen rule cart-wide on top
// of the automatic discounts.
type SelectedDiscount struct {
	Rule      entity.DiscountRule
	BaseTotal decimal.Decimal // subtotal minus automatic discounts
	NewTotal  decimal.Decimal
}

// Engine prices carts against a fixed, ordered rule set.
type Engine struct {
	rules   []entity.DiscountRule
	taxRate decimal.Decimal
	scale   int32
	scaling Scaling
}

// NewEngine copies rules, so later changes by the caller do not leak in.
func NewEngine(rules []entity.DiscountRule, opts Options) *Engine {
	if !opts.Scaling.IsValid() {
		opts.Scaling = ScalingLine
	}
	if opts.Scale < 0 {
		opts.Scale = DefaultScale
	}

	return &Engine{
		rules:   slices.Clone(rules),
		taxRate: opts.TaxRate,
		scale:   opts.Scale,
		scaling: opts.Scaling,
	}
}

// Rules returns the rule set in priority order.
func (e *Engine) Rules() []entity.DiscountRule {
	return slices.Clone(e.rules)
}

// TaxRate returns the configured tax rate.
func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}

// Scaling returns the configured scaling mode.
func (e *Engine) Scaling() Scaling {
	return e.scaling
}

// RuleFor returns the first rule, in priority order, that matches product.
func (e *Engine) RuleFor(product entity.Product) (entity.DiscountRule, bool) {
	for _, rule := range e.rules {
		if rule.Matches(product) {
			return rule, true
		}
	}

	return entity.DiscountRule{}, false
}

// DiscountFor returns the discount amount for a line of product priced at
// lineTotal, using only the first matching rule.
//
// A BOGO match is worth the price of one unit no matter how many units the
// line holds. Amounts never exceed lineTotal and are rounded to the scale.
func (e *Engine) DiscountFor(product entity.Product, lineTotal decimal.Decimal) decimal.Decimal {
	rule, ok := e.RuleFor(product)
	if !ok {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch rule.Kind {
	case entity.DiscountItemBOGO:
		amount = product.UnitPrice
	default:
		amount = lineTotal.Sub(rule.Apply(lineTotal))
	}

	amount = decimal.Min(amount, lineTotal)
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	return amount.Round(e.scale)
}

// LineDiscount returns the discount a cart line contributes under the
// configured scaling, capped at the line total.
func (e *Engine) LineDiscount(line entity.CartLine) decimal.Decimal {
	lineTotal := line.LineTotal()
	amount := e.DiscountFor(line.Product, lineTotal)
	if e.scaling == ScalingPerUnit {
		amount = amount.Mul(decimal.NewFromInt(int64(line.Quantity)))
	}

	return decimal.Min(amount, lineTotal)
}

// TotalDiscount sums LineDiscount over the cart. It never exceeds the
// subtotal and always equals the sum of the discounts reported by Lines.
func (e *Engine) TotalDiscount(cart *entity.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, line := range cart.Lines() {
		total = total.Add(e.LineDiscount(line))
	}

	return total
}

// Totals computes subtotal, automatic discount, tax and grand total. The
// cart-wide selected discount is not part of this figure.
func (e *Engine) Totals(cart *entity.Cart) Totals {
	subtotal := cart.Subtotal()
	discount := e.TotalDiscount(cart)
	discounted := subtotal.Sub(discount)
	tax := discounted.Mul(e.taxRate).Round(e.scale)

	return Totals{
		Subtotal:        subtotal,
		Discount:        discount,
		DiscountedTotal: discounted,
		Tax:             tax,
		Total:           discounted.Add(tax),
	}
}

// ApplySelected applies the rule at index (0-based) to the already
// discounted cart total using the rule's raw formula, whether or not the rule
// matches anything in the cart. The result is floored at zero.
func (e *Engine) ApplySelected(cart *entity.Cart, index int) (*SelectedDiscount, error) {
	if len(e.rules) == 0 {
		return nil, domainerrors.ErrNoDiscounts
	}
	if index < 0 || index >= len(e.rules) {
		return nil, domainerrors.ErrDiscountNotFound
	}

	rule := e.rules[index]
	base := e.Totals(cart).DiscountedTotal

	newTotal := rule.Apply(base)
	if newTotal.IsNegative() {
		newTotal = decimal.Zero
	}

	return &SelectedDiscount{
		Rule:      rule,
		BaseTotal: base,
		NewTotal:  newTotal.Round(e.scale),
	}, nil
}

// Lines prices every cart line for receipts and orders.
func (e *Engine) Lines(cart *entity.Cart) []entity.OrderLine {
	cartLines := cart.Lines()
	lines := make([]entity.OrderLine, 0, len(cartLines))
	for _, line := range cartLines {
		lines = append(lines, entity.OrderLine{
			Name:      line.Product.Name,
			Category:  line.Product.Category,
			UnitPrice: line.Product.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal(),
			Discount:  e.LineDiscount(line),
		})
	}

	return lines
}
