package impl

import (
	"context"
	"math"
	"testing"

	"supermarket/internal/domain/entity"
	domainerrors "supermarket/internal/domain/errors"
	"supermarket/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCatalogService(t *testing.T) usecase.CatalogUsecase {
	return NewCatalogService(CatalogServiceParams{
		CatalogRepo: newTestCatalog(t),
		Engine:      newTestEngine(),
		Logger:      newDiscardLogger(),
	})
}

func TestCatalogService_CategoryByChoice(t *testing.T) {
	srv := createTestCatalogService(t)

	category, err := srv.CategoryByChoice(1)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryGrocery, category)

	category, err = srv.CategoryByChoice(5)
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryHomeAppliances, category)

	for _, choice := range []int{0, -1, 6} {
		_, err := srv.CategoryByChoice(choice)
		assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound, "choice %d", choice)
	}
}

func TestCatalogService_ProductByChoice(t *testing.T) {
	srv := createTestCatalogService(t)
	ctx := context.Background()

	product, err := srv.ProductByChoice(ctx, entity.CategoryElectronics, 1)
	require.NoError(t, err)
	assert.Equal(t, "TV", product.Name)

	for _, choice := range []int{0, 2} {
		_, err := srv.ProductByChoice(ctx, entity.CategoryElectronics, choice)
		assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	}
}

func TestCatalogService_ProductsSkipSoldOut(t *testing.T) {
	ctx := context.Background()
	repo := newTestCatalog(t)
	srv := NewCatalogService(CatalogServiceParams{CatalogRepo: repo, Engine: newTestEngine(), Logger: newDiscardLogger()})

	require.Len(t, srv.Products(ctx, entity.CategoryElectronics), 1)
	require.NoError(t, repo.DecrementStock(ctx, "TV", 10))

	assert.Empty(t, srv.Products(ctx, entity.CategoryElectronics))
	_, err := srv.ProductByChoice(ctx, entity.CategoryElectronics, 1)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	// still listed in the full catalog
	assert.Len(t, srv.ListProducts(ctx), 5)
}

func TestCatalogService_Quote(t *testing.T) {
	srv := createTestCatalogService(t)

	quote, err := srv.Quote(context.Background(), []usecase.QuoteItem{
		{Name: "TV", Quantity: 1},
		{Name: "Apple", Quantity: 4},
		{Name: "Apple", Quantity: 6},
	})
	require.NoError(t, err)

	require.Len(t, quote.Lines, 2)
	assert.Equal(t, "TV", quote.Lines[0].Name)
	assert.Equal(t, 10, quote.Lines[1].Quantity)
	assert.Equal(t, "510.00", quote.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "51.00", quote.Totals.Discount.StringFixed(2))
	assert.True(t, decimal.RequireFromString("504.90").Equal(quote.Totals.Total))
}

func TestCatalogService_QuoteErrors(t *testing.T) {
	tests := []struct {
		name    string
		items   []usecase.QuoteItem
		wantErr error
	}{
		{"no items", nil, domainerrors.ErrEmptyCart},
		{"unknown product", []usecase.QuoteItem{{Name: "Piano", Quantity: 1}}, domainerrors.ErrProductNotFound},
		{"zero quantity", []usecase.QuoteItem{{Name: "TV", Quantity: 0}}, domainerrors.ErrValidationFailed},
		{"missing name", []usecase.QuoteItem{{Quantity: 1}}, domainerrors.ErrValidationFailed},
		{"over stock across lines", []usecase.QuoteItem{{Name: "TV", Quantity: 6}, {Name: "TV", Quantity: 5}}, domainerrors.ErrInsufficientStock},
		{"single item over stock", []usecase.QuoteItem{{Name: "Apple", Quantity: math.MaxInt}}, domainerrors.ErrInsufficientStock},
		{"repeated items past int range", []usecase.QuoteItem{{Name: "Apple", Quantity: math.MaxInt}, {Name: "Apple", Quantity: math.MaxInt}}, domainerrors.ErrInsufficientStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := createTestCatalogService(t)

			_, err := srv.Quote(context.Background(), tt.items)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCatalogService_QuoteDoesNotReserve(t *testing.T) {
	ctx := context.Background()
	repo := newTestCatalog(t)
	srv := NewCatalogService(CatalogServiceParams{CatalogRepo: repo, Engine: newTestEngine(), Logger: newDiscardLogger()})

	_, err := srv.Quote(ctx, []usecase.QuoteItem{{Name: "TV", Quantity: 10}})
	require.NoError(t, err)
	assert.Equal(t, 10, stockOf(t, repo, "TV"))
}

func TestCatalogService_Discounts(t *testing.T) {
	srv := createTestCatalogService(t)

	rules := srv.Discounts()
	require.Len(t, rules, 3)
	assert.Equal(t, "10% Off Groceries", rules[0].Name)
	assert.Equal(t, "$50 Off Electronics", rules[1].Name)
	assert.Equal(t, "Buy One Get One Free on Shirts", rules[2].Name)
}
