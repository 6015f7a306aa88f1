package main

import (
	"context"
	"log/slog"
	"os"

	"supermarket/config"
	"supermarket/internal/delivery"
	"supermarket/internal/delivery/api"
	"supermarket/internal/delivery/api/router/handler"
	"supermarket/internal/delivery/cli"
	"supermarket/internal/domain/entity"
	"supermarket/internal/domain/pricing"
	"supermarket/internal/domain/repository"
	"supermarket/internal/domain/service"
	"supermarket/internal/infra/auth"
	"supermarket/internal/infra/loader"
	logs "supermarket/internal/infra/log"
	"supermarket/internal/infra/persistence/memory"
	"supermarket/internal/infra/qrcode"
	"supermarket/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.WithLogger(newFxLogger),
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

// newFxLogger keeps container events at debug level so they stay out of the
// shopper's way.
func newFxLogger(logger *slog.Logger) fxevent.Logger {
	fxLogger := &fxevent.SlogLogger{Logger: logger}
	fxLogger.UseLogLevel(slog.LevelDebug)

	return fxLogger
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newCatalogRepository,
			memory.NewAccountRepository,
		),
	)
}

// newCatalogRepository stocks the shelves from the catalog file when one is
// configured, else from the catalog section.
func newCatalogRepository(cfg *config.Config) (repository.CatalogRepository, error) {
	var (
		products []entity.Product
		err      error
	)
	if cfg.CatalogFile != "" {
		products, err = loader.NewCSVLoader(cfg.CatalogFile).LoadProducts()
	} else {
		products, err = cfg.Products()
	}
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}

	return memory.NewCatalogRepository(products)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPricingEngine,
			auth.NewBcryptHasher,
			newQRCodeService,
			newReceiptArchive,
		),
	)
}

// newPricingEngine builds the engine from the pricing and discounts sections.
func newPricingEngine(cfg *config.Config) (*pricing.Engine, error) {
	rules, err := cfg.DiscountRules()
	if err != nil {
		return nil, errors.Wrap(err, "load discounts")
	}
	opts, err := cfg.PricingOptions()
	if err != nil {
		return nil, errors.Wrap(err, "load pricing")
	}

	return pricing.NewEngine(rules, opts), nil
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.ReceiptCodeService {
	return qrcode.NewQRCodeService(cfg.Receipt.QRCode.Size, cfg.Receipt.QRCode.ErrorCorrectionLevel)
}

// newReceiptArchive returns nil when no receipt directory is configured.
func newReceiptArchive(cfg *config.Config, codes service.ReceiptCodeService) (service.ReceiptArchive, error) {
	if cfg.Receipt.OutputDir == "" {
		return nil, nil // archiving is optional
	}

	archive, err := qrcode.NewReceiptArchive(cfg.Receipt.OutputDir, codes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create receipt archive")
	}

	return archive, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewCatalogService,
			impl.NewShoppingService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCatalogHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				cli.NewConsole,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
