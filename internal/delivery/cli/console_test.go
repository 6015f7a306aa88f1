package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"supermarket/internal/domain/entity"
	"supermarket/internal/domain/pricing"
	"supermarket/internal/domain/repository"
	"supermarket/internal/infra/auth"
	"supermarket/internal/infra/persistence/memory"
	"supermarket/internal/usecase/impl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"
)

type fakeShutdowner struct {
	calls int
}

func (s *fakeShutdowner) Shutdown(...fx.ShutdownOption) error {
	s.calls++

	return nil
}

type consoleFixture struct {
	console    *console
	out        *bytes.Buffer
	catalog    repository.CatalogRepository
	shutdowner *fakeShutdowner
}

func newTestConsole(t *testing.T, script ...string) consoleFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog, err := memory.NewCatalogRepository(entity.DefaultProducts())
	require.NoError(t, err)
	engine := pricing.NewEngine(entity.DefaultDiscountRules(), pricing.DefaultOptions())

	out := &bytes.Buffer{}
	shutdowner := &fakeShutdowner{}
	input := strings.Join(script, "\n")
	if input != "" {
		input += "\n"
	}

	c := newConsole(strings.NewReader(input), out, ConsoleParams{
		Logger: logger,
		AccountUC: impl.NewAccountService(impl.AccountServiceParams{
			AccountRepo: memory.NewAccountRepository(),
			Hasher:      auth.NewBcryptHasherWithCost(bcrypt.MinCost),
			Logger:      logger,
		}),
		CatalogUC: impl.NewCatalogService(impl.CatalogServiceParams{
			CatalogRepo: catalog,
			Engine:      engine,
			Logger:      logger,
		}),
		ShoppingUC: impl.NewShoppingService(impl.ShoppingServiceParams{
			CatalogRepo: catalog,
			Engine:      engine,
			Logger:      logger,
		}),
		Shutdowner: shutdowner,
	})

	return consoleFixture{console: c, out: out, catalog: catalog, shutdowner: shutdowner}
}

func (f consoleFixture) stock(t *testing.T, name string) int {
	t.Helper()

	product, err := f.catalog.FindByName(context.Background(), name)
	require.NoError(t, err)

	return product.AvailableQuantity
}

func TestConsole_GuestTotalsAndRelease(t *testing.T) {
	f := newTestConsole(t,
		// continue as guest, add 10 Apples, calculate total, back, exit
		"3",
		"1", "1", "1", "10",
		"3",
		"11",
		"4",
	)

	require.NoError(t, f.console.Serve(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "--- Welcome, Guest ---")
	assert.Contains(t, out, "1. Apple - $1.00 - Available: 50")
	assert.Contains(t, out, "10 Apple(s) added to cart.")
	assert.Contains(t, out, "Subtotal: $10.00")
	assert.Contains(t, out, "Total Discounts: $1.00")
	assert.Contains(t, out, "Discounted Total: $9.00")
	assert.Contains(t, out, "Tax: $0.90")
	assert.Contains(t, out, "Total: $9.90")
	assert.Contains(t, out, "Thank you for using the Supermarket Billing System.")

	// the guest cart goes back on the shelf when the session ends
	assert.Equal(t, 50, f.stock(t, "Apple"))
	assert.Equal(t, 1, f.shutdowner.calls)
}

func TestConsole_InvalidIntegerReprompts(t *testing.T) {
	f := newTestConsole(t, "abc", "9", "4")

	require.NoError(t, f.console.Serve(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Invalid input. Please enter a valid integer.")
	assert.Contains(t, out, "Invalid choice. Please enter a valid option.")
}

func TestConsole_EndOfInputExitsCleanly(t *testing.T) {
	f := newTestConsole(t, "3", "1", "2", "1", "3")

	require.NoError(t, f.console.Serve(context.Background()))

	assert.Contains(t, f.out.String(), "3 TV(s) added to cart.")
	assert.Equal(t, 10, f.stock(t, "TV"))
	assert.Equal(t, 1, f.shutdowner.calls)
}

func TestConsole_RegisterConfirmAndHistory(t *testing.T) {
	f := newTestConsole(t,
		// register, add 2 TVs, confirm, purchase history, logout, exit
		"2", "Ada", "ada@example.com", "Shop!ng42x",
		"1", "2", "1", "2",
		"7", "yes",
		"10",
		"11",
		"4",
	)

	require.NoError(t, f.console.Serve(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Registration successful. Welcome, Ada!")
	assert.Contains(t, out, "--- Welcome, Ada ---")
	assert.Contains(t, out, "Customer: Ada")
	assert.Contains(t, out, "TV - Quantity: 2 - $1,000.00 (-$50.00)")
	assert.Contains(t, out, "Total: $1,045.00")
	assert.Contains(t, out, "Order confirmed. Thank you!")
	assert.Contains(t, out, "2 item(s) - $1,045.00")
	assert.Contains(t, out, "Logged out.")

	// sold goods stay sold
	assert.Equal(t, 8, f.stock(t, "TV"))
}

func TestConsole_ConfirmCancelled(t *testing.T) {
	f := newTestConsole(t,
		"2", "Ada", "ada@example.com", "Shop!ng42x",
		"1", "3", "1", "1",
		"7", "no",
		"11", "4",
	)

	require.NoError(t, f.console.Serve(context.Background()))

	assert.Contains(t, f.out.String(), "Order cancelled.")
	assert.NotContains(t, f.out.String(), "Order confirmed.")
}

func TestConsole_LoginFailure(t *testing.T) {
	f := newTestConsole(t, "1", "nobody@example.com", "whatever", "4")

	require.NoError(t, f.console.Serve(context.Background()))

	assert.Contains(t, f.out.String(), "Invalid email or password. Please try again.")
}

func TestConsole_ShopErrors(t *testing.T) {
	tests := []struct {
		name   string
		script []string
		want   string
	}{
		{
			name:   "guest confirm",
			script: []string{"3", "7", "11", "4"},
			want:   "Please login or register to continue.",
		},
		{
			name:   "guest receipt",
			script: []string{"3", "4", "11", "4"},
			want:   "Please login or register to continue.",
		},
		{
			name:   "guest favorites",
			script: []string{"3", "9", "11", "4"},
			want:   "Please login or register to continue.",
		},
		{
			name:   "bad category",
			script: []string{"3", "1", "9", "11", "4"},
			want:   "Invalid category choice.",
		},
		{
			name:   "bad product",
			script: []string{"3", "1", "1", "7", "11", "4"},
			want:   "Invalid product choice.",
		},
		{
			name:   "too many",
			script: []string{"3", "1", "2", "1", "11", "11", "4"},
			want:   "Insufficient quantity available.",
		},
		{
			name:   "zero quantity",
			script: []string{"3", "1", "2", "1", "0", "11", "4"},
			want:   "Quantity must be greater than zero.",
		},
		{
			name:   "remove from empty cart",
			script: []string{"3", "2", "11", "4"},
			want:   "Cart is empty.",
		},
		{
			name:   "remove bad line",
			script: []string{"3", "1", "1", "1", "5", "2", "5", "1", "11", "4"},
			want:   "Invalid item number.",
		},
		{
			name:   "bad discount number",
			script: []string{"3", "5", "4", "11", "4"},
			want:   "Invalid discount number.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestConsole(t, tt.script...)

			require.NoError(t, f.console.Serve(context.Background()))
			assert.Contains(t, f.out.String(), tt.want)
		})
	}
}

func TestConsole_RemoveAndApplyDiscount(t *testing.T) {
	f := newTestConsole(t,
		// a TV and 5 Apples, then remove more Apples than held, apply the
		// grocery discount cart-wide and clear the cart
		"3",
		"1", "2", "1", "1",
		"1", "1", "1", "5",
		"2", "2", "10",
		"5", "1",
		"6",
		"11", "4",
	)

	require.NoError(t, f.console.Serve(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "2. Apple - Quantity: 5 - $5.00")
	assert.Contains(t, out, "5 Apple(s) removed from cart.")
	assert.Contains(t, out, "Discount applied: 10% Off Groceries")
	assert.Contains(t, out, "New Total: $405.00")
	assert.Contains(t, out, "Cart cleared.")
	assert.Equal(t, 50, f.stock(t, "Apple"))
	assert.Equal(t, 10, f.stock(t, "TV"))
}

func TestConsole_Favorites(t *testing.T) {
	f := newTestConsole(t,
		"2", "Ada", "ada@example.com", "Shop!ng42x",
		"8", "Shirt",
		"8", "Shirt",
		"8", "Piano",
		"9",
		"11", "4",
	)

	require.NoError(t, f.console.Serve(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Shirt added to favorites.")
	assert.Contains(t, out, "Shirt is already a favorite.")
	assert.Contains(t, out, "Invalid product choice.")
	assert.Contains(t, out, "--- Favorites ---\n1. Shirt\n")
}
