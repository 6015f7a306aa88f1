package usecase

import (
	"context"

	"supermarket/internal/domain/entity"
	"supermarket/internal/domain/pricing"
)

// QuoteItem is one requested line of a price check.
type QuoteItem struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// QuoteOutput prices a cart that is never reserved against stock.
type QuoteOutput struct {
	Lines  []entity.OrderLine
	Totals pricing.Totals
}

// CatalogUsecase exposes the read side of the shop: shelves, discounts and
// price checks. Nothing here changes stock.
type CatalogUsecase interface {
	// Categories returns every category in display order.
	Categories() []entity.Category

	// CategoryByChoice resolves a 1-based menu choice into a category.
	CategoryByChoice(choice int) (entity.Category, error)

	// Products lists the in-stock products of a category in shelf order.
	Products(ctx context.Context, category entity.Category) []entity.Product

	// ProductByChoice resolves a 1-based menu choice over Products.
	ProductByChoice(ctx context.Context, category entity.Category, choice int) (entity.Product, error)

	FindProduct(ctx context.Context, name string) (entity.Product, error)
	ListProducts(ctx context.Context) []entity.Product

	// Discounts returns the rule set in priority order.
	Discounts() []entity.DiscountRule

	// Quote prices items against current stock without reserving anything.
	Quote(ctx context.Context, items []QuoteItem) (*QuoteOutput, error)
}
