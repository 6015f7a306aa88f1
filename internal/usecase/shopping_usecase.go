package usecase

import (
	"context"

	"supermarket/internal/domain/entity"
	"supermarket/internal/domain/pricing"
)

// RemoveOutput reports what a removal actually did.
type RemoveOutput struct {
	Name    string
	Removed int // units taken out of the cart and put back on the shelf
	Deleted bool
}

// ConfirmOutput is a placed order and where its receipt code was archived.
type ConfirmOutput struct {
	Order       *entity.Order
	ReceiptCode string // empty when receipt archiving is off or failed
}

// ShoppingUsecase defines the cart operations of a single session.
// Stock is reserved when an item enters a cart and released when it leaves
// without being bought.
type ShoppingUsecase interface {
	AddToCart(ctx context.Context, session *entity.Session, name string, qty int) error

	// RemoveFromCart removes qty units of the cart line at the 1-based lineNumber.
	RemoveFromCart(ctx context.Context, session *entity.Session, lineNumber, qty int) (*RemoveOutput, error)

	CartLines(session *entity.Session) []entity.OrderLine
	Totals(session *entity.Session) pricing.Totals

	// ApplyDiscount previews the 1-based discount applied cart-wide on top of
	// the automatic discounts. It changes nothing.
	ApplyDiscount(session *entity.Session, number int) (*pricing.SelectedDiscount, error)

	ClearCart(ctx context.Context, session *entity.Session) error

	// Receipt prices the cart for the signed-in shopper without placing it.
	Receipt(ctx context.Context, session *entity.Session) (*entity.Order, error)

	// ConfirmOrder places the cart as an order. Its stock stays sold.
	ConfirmOrder(ctx context.Context, session *entity.Session) (*ConfirmOutput, error)

	AddFavorite(ctx context.Context, session *entity.Session, name string) (bool, error)
	Favorites(session *entity.Session) ([]string, error)
	PurchaseHistory(session *entity.Session) ([]*entity.Order, error)

	// ReleaseSession returns a guest cart's stock to the shelves.
	ReleaseSession(ctx context.Context, session *entity.Session) error
}
