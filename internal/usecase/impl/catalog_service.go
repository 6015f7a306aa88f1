package impl

import (
	"context"
	"log/slog"
	"slices"

	deliverycontext "supermarket/internal/delivery/context"
	"supermarket/internal/domain/entity"
	domainerrors "supermarket/internal/domain/errors"
	"supermarket/internal/domain/pricing"
	"supermarket/internal/domain/repository"
	"supermarket/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	engine      *pricing.Engine
	validate    *validator.Validate
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	Engine      *pricing.Engine
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		catalogRepo: params.CatalogRepo,
		engine:      params.Engine,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *catalogService) Categories() []entity.Category {
	return entity.Categories()
}

func (srv *catalogService) CategoryByChoice(choice int) (entity.Category, error) {
	categories := entity.Categories()
	if choice < 1 || choice > len(categories) {
		return "", domainerrors.ErrCategoryNotFound
	}

	return categories[choice-1], nil
}

func (srv *catalogService) Products(ctx context.Context, category entity.Category) []entity.Product {
	return slices.Collect(srv.catalogRepo.ByCategory(ctx, category))
}

func (srv *catalogService) ProductByChoice(ctx context.Context, category entity.Category, choice int) (entity.Product, error) {
	if choice >= 1 {
		n := 0
		for product := range srv.catalogRepo.ByCategory(ctx, category) {
			n++
			if n == choice {
				return product, nil
			}
		}
	}

	return entity.Product{}, domainerrors.ErrProductNotFound
}

func (srv *catalogService) FindProduct(ctx context.Context, name string) (entity.Product, error) {
	return srv.catalogRepo.FindByName(ctx, name)
}

func (srv *catalogService) ListProducts(ctx context.Context) []entity.Product {
	return srv.catalogRepo.List(ctx)
}

func (srv *catalogService) Discounts() []entity.DiscountRule {
	return srv.engine.Rules()
}

// Quote prices items as one cart. Repeated names accumulate onto one line.
// Each item is checked against the stock left after the earlier items, so the
// running quantity of a line never exceeds what is on the shelf.
func (srv *catalogService) Quote(ctx context.Context, items []usecase.QuoteItem) (*usecase.QuoteOutput, error) {
	if len(items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	cart := entity.NewCart()
	for i := range items {
		if err := srv.validate.Struct(&items[i]); err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails(describeValidation(err))
		}

		product, err := srv.catalogRepo.FindByName(ctx, items[i].Name)
		if err != nil {
			return nil, err
		}
		held := cart.Quantity(product.Name)
		if items[i].Quantity > product.AvailableQuantity-held {
			return nil, errors.Wrapf(domainerrors.ErrInsufficientStock, "%d %s requested, %d available",
				items[i].Quantity, product.Name, product.AvailableQuantity-held)
		}
		if err := cart.Add(product, items[i].Quantity); err != nil {
			return nil, err
		}
	}

	srv.log(ctx).Debug("Quote priced", slog.Int("lines", cart.Len()))

	return &usecase.QuoteOutput{
		Lines:  srv.engine.Lines(cart),
		Totals: srv.engine.Totals(cart),
	}, nil
}
