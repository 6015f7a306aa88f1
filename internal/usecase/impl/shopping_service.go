package impl

import (
	"context"
	"log/slog"
	"slices"
	"time"

	deliverycontext "supermarket/internal/delivery/context"
	"supermarket/internal/domain/entity"
	domainerrors "supermarket/internal/domain/errors"
	"supermarket/internal/domain/pricing"
	"supermarket/internal/domain/repository"
	"supermarket/internal/domain/service"
	"supermarket/internal/errors"
	"supermarket/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// shoppingService implements the ShoppingUsecase interface.
type shoppingService struct {
	catalogRepo repository.CatalogRepository
	engine      *pricing.Engine
	archive     service.ReceiptArchive // nil when receipts are not archived
	logger      *slog.Logger
}

// ShoppingServiceParams holds dependencies for ShoppingService, injected by Fx.
type ShoppingServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	Engine      *pricing.Engine
	Archive     service.ReceiptArchive `optional:"true"`
	Logger      *slog.Logger
}

// NewShoppingService is the constructor for shoppingService.
func NewShoppingService(params ShoppingServiceParams) usecase.ShoppingUsecase {
	return &shoppingService{
		catalogRepo: params.CatalogRepo,
		engine:      params.Engine,
		archive:     params.Archive,
		logger:      params.Logger,
	}
}

func (srv *shoppingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddToCart reserves qty units of the product and puts them in the session cart.
func (srv *shoppingService) AddToCart(ctx context.Context, session *entity.Session, name string, qty int) error {
	if qty <= 0 {
		return domainerrors.ErrInvalidQuantity
	}

	product, err := srv.catalogRepo.FindByName(ctx, name)
	if err != nil {
		return err
	}

	if err := srv.catalogRepo.DecrementStock(ctx, name, qty); err != nil {
		return err
	}

	if err := session.Cart().Add(product, qty); err != nil {
		if restockErr := srv.catalogRepo.Restock(ctx, name, qty); restockErr != nil {
			return errors.Wrap(restockErr, "failed to release reserved stock")
		}

		return err
	}

	srv.log(ctx).Debug("Added to cart", slog.String("product", name), slog.Int("quantity", qty))

	return nil
}

// RemoveFromCart puts back exactly the units that left the cart.
func (srv *shoppingService) RemoveFromCart(ctx context.Context, session *entity.Session, lineNumber, qty int) (*usecase.RemoveOutput, error) {
	cart := session.Cart()
	if cart.IsEmpty() {
		return nil, domainerrors.ErrEmptyCart
	}

	line, ok := cart.Line(lineNumber)
	if !ok {
		return nil, domainerrors.ErrCartLineNotFound
	}
	if qty <= 0 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	name := line.Product.Name
	removed := cart.Remove(name, qty)
	if err := srv.catalogRepo.Restock(ctx, name, removed); err != nil {
		return nil, errors.Wrapf(err, "failed to restock %s", name)
	}

	srv.log(ctx).Debug("Removed from cart", slog.String("product", name), slog.Int("quantity", removed))

	return &usecase.RemoveOutput{
		Name:    name,
		Removed: removed,
		Deleted: cart.Quantity(name) == 0,
	}, nil
}

func (srv *shoppingService) CartLines(session *entity.Session) []entity.OrderLine {
	return srv.engine.Lines(session.Cart())
}

func (srv *shoppingService) Totals(session *entity.Session) pricing.Totals {
	return srv.engine.Totals(session.Cart())
}

func (srv *shoppingService) ApplyDiscount(session *entity.Session, number int) (*pricing.SelectedDiscount, error) {
	return srv.engine.ApplySelected(session.Cart(), number-1)
}

// ClearCart empties the cart and returns every unit to the shelves.
func (srv *shoppingService) ClearCart(ctx context.Context, session *entity.Session) error {
	lines := session.Cart().Clear()

	var errs []error
	for _, line := range lines {
		if err := srv.catalogRepo.Restock(ctx, line.Product.Name, line.Quantity); err != nil {
			errs = append(errs, errors.Wrapf(err, "failed to restock %s", line.Product.Name))
		}
	}

	srv.log(ctx).Debug("Cart cleared", slog.Int("lines", len(lines)))

	return errors.WithStack(errors.Join(errs...))
}

func (srv *shoppingService) Receipt(_ context.Context, session *entity.Session) (*entity.Order, error) {
	if session.IsGuest() {
		return nil, domainerrors.ErrLoginRequired
	}

	return srv.buildOrder(session), nil
}

// ConfirmOrder records the order in the account's history and empties the
// cart. The stock reserved by the cart stays sold.
func (srv *shoppingService) ConfirmOrder(ctx context.Context, session *entity.Session) (*usecase.ConfirmOutput, error) {
	if session.IsGuest() {
		return nil, domainerrors.ErrLoginRequired
	}
	if session.Cart().IsEmpty() {
		return nil, domainerrors.ErrEmptyCart
	}

	order := srv.buildOrder(session)
	order.ID = uuid.New()
	session.Account.RecordOrder(order)
	session.Cart().Clear()

	srv.log(ctx).Info("Order confirmed",
		slog.String("order_id", order.ID.String()),
		slog.String("total", order.Total.StringFixed(2)),
		slog.Int("items", order.ItemCount()),
	)

	output := &usecase.ConfirmOutput{Order: order}
	if srv.archive != nil {
		path, err := srv.archive.Save(ctx, order)
		if err != nil {
			// the order stands even when its receipt code cannot be stored
			srv.log(ctx).Error("Failed to archive receipt code", slog.String("order_id", order.ID.String()), slog.Any("error", err))
		} else {
			output.ReceiptCode = path
		}
	}

	return output, nil
}

func (srv *shoppingService) AddFavorite(ctx context.Context, session *entity.Session, name string) (bool, error) {
	if session.IsGuest() {
		return false, domainerrors.ErrLoginRequired
	}

	if _, err := srv.catalogRepo.FindByName(ctx, name); err != nil {
		return false, err
	}

	return session.Account.AddFavorite(name), nil
}

func (srv *shoppingService) Favorites(session *entity.Session) ([]string, error) {
	if session.IsGuest() {
		return nil, domainerrors.ErrLoginRequired
	}

	return slices.Clone(session.Account.Favorites), nil
}

func (srv *shoppingService) PurchaseHistory(session *entity.Session) ([]*entity.Order, error) {
	if session.IsGuest() {
		return nil, domainerrors.ErrLoginRequired
	}

	return slices.Clone(session.Account.Orders), nil
}

// ReleaseSession gives a guest's reserved stock back. Accounts keep their
// carts, so their stock stays reserved.
func (srv *shoppingService) ReleaseSession(ctx context.Context, session *entity.Session) error {
	if !session.IsGuest() || session.Cart().IsEmpty() {
		return nil
	}

	return srv.ClearCart(ctx, session)
}

func (srv *shoppingService) buildOrder(session *entity.Session) *entity.Order {
	cart := session.Cart()
	totals := srv.engine.Totals(cart)

	return &entity.Order{
		AccountID:     session.Account.ID,
		CustomerName:  session.Account.Name,
		CustomerEmail: session.Account.Email,
		Lines:         srv.engine.Lines(cart),
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PlacedAt:      time.Now(),
	}
}
