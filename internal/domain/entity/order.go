package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a priced snapshot of a cart. Unconfirmed orders double as receipts
// and carry a nil ID.
type Order struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	CustomerName  string
	CustomerEmail string
	Lines         []OrderLine
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PlacedAt      time.Time
}

// OrderLine is one priced cart line.
type OrderLine struct {
	Name      string
	Category  Category
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
	Discount  decimal.Decimal
}

// ItemCount returns the total number of units across all lines.
func (o *Order) ItemCount() int {
	count := 0
	for _, line := range o.Lines {
		count += line.Quantity
	}

	return count
}

// IsConfirmed reports whether the order was placed rather than previewed.
func (o *Order) IsConfirmed() bool {
	return o.ID != uuid.Nil
}
