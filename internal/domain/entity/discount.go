package entity

import (
	"github.com/shopspring/decimal"
)

// DiscountKind tags what a DiscountRule targets and how it is matched.
type DiscountKind string

const (
	// DiscountCategoryPercentage takes a percentage off lines of one category.
	DiscountCategoryPercentage DiscountKind = "category_percentage"
	// DiscountCategoryFlat takes a flat amount off lines of one category.
	DiscountCategoryFlat DiscountKind = "category_flat"
	// DiscountItemBOGO is the buy-one-get-one rule keyed to a single product name.
	DiscountItemBOGO DiscountKind = "item_bogo"
)

// IsValid checks if the DiscountKind is a valid value.
func (k DiscountKind) IsValid() bool {
	switch k {
	case DiscountCategoryPercentage, DiscountCategoryFlat, DiscountItemBOGO:
		return true
	default:
		return false
	}
}

// DiscountRule is an immutable named discount.
//
// Kind, Category and ItemName decide which products the rule matches.
// Magnitude and IsPercentage form the rule's raw formula, which is what the
// cart-wide "apply selected discount" pass uses.
type DiscountRule struct {
	Name         string
	Kind         DiscountKind
	Magnitude    decimal.Decimal
	IsPercentage bool
	Category     Category // target of the category kinds
	ItemName     string   // target of DiscountItemBOGO
}

// NewCategoryPercentageRule builds a percentage rule for a category.
func NewCategoryPercentageRule(name string, category Category, pct decimal.Decimal) DiscountRule {
	return DiscountRule{
		Name:         name,
		Kind:         DiscountCategoryPercentage,
		Magnitude:    pct,
		IsPercentage: true,
		Category:     category,
	}
}

// NewCategoryFlatRule builds a flat-amount rule for a category.
func NewCategoryFlatRule(name string, category Category, amount decimal.Decimal) DiscountRule {
	return DiscountRule{
		Name:      name,
		Kind:      DiscountCategoryFlat,
		Magnitude: amount,
		Category:  category,
	}
}

// NewItemBOGORule builds a buy-one-get-one rule for a single product.
// amount is the flat value the rule carries when applied cart-wide.
func NewItemBOGORule(name, itemName string, amount decimal.Decimal) DiscountRule {
	return DiscountRule{
		Name:      name,
		Kind:      DiscountItemBOGO,
		Magnitude: amount,
		ItemName:  itemName,
	}
}

// Matches reports whether the rule targets product.
func (r DiscountRule) Matches(product Product) bool {
	switch r.Kind {
	case DiscountCategoryPercentage, DiscountCategoryFlat:
		return product.Category == r.Category
	case DiscountItemBOGO:
		return product.Name == r.ItemName
	default:
		return false
	}
}

// Apply runs the raw formula against price and returns the reduced price:
// price - price*pct/100 for percentage rules, price - amount otherwise.
// The result may be negative; callers decide how to floor it.
func (r DiscountRule) Apply(price decimal.Decimal) decimal.Decimal {
	if r.IsPercentage {
		return price.Sub(price.Mul(r.Magnitude).Div(decimal.NewFromInt(100)))
	}

	return price.Sub(r.Magnitude)
}

// DefaultDiscountRules returns the stock rule set in priority order.
func DefaultDiscountRules() []DiscountRule {
	return []DiscountRule{
		NewCategoryPercentageRule("10% Off Groceries", CategoryGrocery, decimal.NewFromInt(10)),
		NewCategoryFlatRule("$50 Off Electronics", CategoryElectronics, decimal.NewFromInt(50)),
		NewItemBOGORule("Buy One Get One Free on Shirts", "Shirt", decimal.NewFromInt(100)),
	}
}
