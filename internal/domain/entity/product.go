package entity

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Name is the identity; everything except
// AvailableQuantity is fixed once the catalog is seeded.
type Product struct {
	Name              string          // Unique product name, used as the lookup key.
	UnitPrice         decimal.Decimal // Price of a single unit.
	Category          Category        // Department the product belongs to.
	AvailableQuantity int             // Units still on the shelf.
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.AvailableQuantity > 0
}

// LineTotal returns the undiscounted price of qty units.
func (p Product) LineTotal(qty int) decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// DefaultProducts returns the stock catalog in shelf order.
func DefaultProducts() []Product {
	return []Product{
		{Name: "Apple", UnitPrice: decimal.RequireFromString("1.00"), Category: CategoryGrocery, AvailableQuantity: 50},
		{Name: "TV", UnitPrice: decimal.RequireFromString("500.00"), Category: CategoryElectronics, AvailableQuantity: 10},
		{Name: "Shirt", UnitPrice: decimal.RequireFromString("20.00"), Category: CategoryClothing, AvailableQuantity: 30},
		{Name: "Shampoo", UnitPrice: decimal.RequireFromString("5.00"), Category: CategoryBeauty, AvailableQuantity: 40},
		{Name: "Microwave", UnitPrice: decimal.RequireFromString("100.00"), Category: CategoryHomeAppliances, AvailableQuantity: 15},
	}
}
