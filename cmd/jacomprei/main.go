package main

import (
	"context"
	"log/slog"
	"os"

	"jacomprei/config"
	"jacomprei/internal/delivery"
	"jacomprei/internal/delivery/http"
	"jacomprei/internal/delivery/http/middleware"
	"jacomprei/internal/delivery/http/router/handler"
	"jacomprei/internal/domain/repository"
	"jacomprei/internal/domain/service"
	"jacomprei/internal/infra/auth"
	"jacomprei/internal/infra/events"
	logs "jacomprei/internal/infra/log"
	"jacomprei/internal/infra/persistence/memory"
	"jacomprei/internal/infra/persistence/postgres"
	"jacomprei/internal/infra/pubsub"
	"jacomprei/internal/infra/qrcode"
	"jacomprei/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

type persistenceParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type persistenceOut struct {
	fx.Out

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	StoreRepo    repository.StoreRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
}

// newPersistence wires the storage backend. Without a postgres section in
// the config the service runs on the in-memory store, which is enough for
// local development and tests.
func newPersistence(params persistenceParams) (persistenceOut, error) {
	if params.Config.Postgres == nil {
		params.Logger.Info("Postgres not configured, using in-memory store")
		store := memory.NewStore()

		return persistenceOut{
			TxManager:    memory.NewTransactionManager(store),
			UserRepo:     memory.NewUserRepository(store),
			StoreRepo:    memory.NewStoreRepository(store),
			CategoryRepo: memory.NewCategoryRepository(store),
			ProductRepo:  memory.NewProductRepository(store),
			CartRepo:     memory.NewCartRepository(store),
			OrderRepo:    memory.NewOrderRepository(store),
		}, nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return persistenceOut{}, err
	}

	return persistenceOut{
		TxManager:    postgres.NewTransactionManager(db),
		UserRepo:     postgres.NewUserRepository(db),
		StoreRepo:    postgres.NewStoreRepository(db),
		CategoryRepo: postgres.NewCategoryRepository(db),
		ProductRepo:  postgres.NewProductRepository(db),
		CartRepo:     postgres.NewCartRepository(db),
		OrderRepo:    postgres.NewOrderRepository(db),
	}, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newPersistence,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		pubsub.Module,
		fx.Provide(
			auth.NewScryptHasher,
			auth.NewJWTService,
			events.NewHub,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewCatalogService,
			impl.NewStoreService,
			impl.NewCartService,
			impl.NewOrderService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewStoreHandler,
			handler.NewProductHandler,
			handler.NewCategoryHandler,
			handler.NewCartHandler,
			handler.NewOrderHandler,
			handler.NewEventsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
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
