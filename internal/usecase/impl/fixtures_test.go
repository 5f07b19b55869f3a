package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"jacomprei/config"
	"jacomprei/internal/domain/entity"
	"jacomprei/internal/domain/service"
	"jacomprei/internal/infra/auth"
	"jacomprei/internal/infra/events"
	"jacomprei/internal/infra/persistence/memory"
	"jacomprei/internal/usecase"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		Auth:   &config.AuthConfig{TokenTTL: time.Hour},
		Order:  &config.OrderConfig{DeliveryFee: "5.99"},
		Events: &config.EventsConfig{SubscriberBuffer: 8},
	}
	cfg.SecretKey.Access = "unit-test-secret"

	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubPublisher satisfies EventPublisher and remembers what it saw.
type stubPublisher struct {
	events []*service.OrderEvent
}

func (p *stubPublisher) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *stubPublisher) Close() error { return nil }

// marketFixture wires the full usecase layer on top of the in-memory store.
type marketFixture struct {
	store     *memory.Store
	cfg       *config.Config
	hub       service.Broadcaster
	published *stubPublisher

	users  usecase.UserUsecase
	carts  usecase.CartUsecase
	orders usecase.OrderUsecase
}

func newMarketFixture(t *testing.T) *marketFixture {
	t.Helper()

	store := memory.NewStore()
	cfg := testConfig()
	logger := testLogger()

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	hub := events.NewHub(cfg, logger)
	published := &stubPublisher{}

	users := NewUserService(UserServiceParams{
		UserRepo:     memory.NewUserRepository(store),
		Hasher:       auth.NewScryptHasher(),
		TokenService: tokenService,
		Logger:       logger,
	})
	carts := NewCartService(CartServiceParams{
		CartRepo:    memory.NewCartRepository(store),
		ProductRepo: memory.NewProductRepository(store),
	})
	orders, err := NewOrderService(OrderServiceParams{
		TxManager:   memory.NewTransactionManager(store),
		OrderRepo:   memory.NewOrderRepository(store),
		StoreRepo:   memory.NewStoreRepository(store),
		Broadcaster: hub,
		Publisher:   published,
		Config:      cfg,
		Logger:      logger,
	})
	require.NoError(t, err)

	return &marketFixture{
		store:     store,
		cfg:       cfg,
		hub:       hub,
		published: published,
		users:     users,
		carts:     carts,
		orders:    orders,
	}
}

func (f *marketFixture) register(t *testing.T, username string, role entity.Role) uuid.UUID {
	t.Helper()

	out, err := f.users.Register(context.Background(), usecase.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Name:     username,
		Password: "s3cret-password",
		Role:     role,
	})
	require.NoError(t, err)

	return out.User.ID
}

func (f *marketFixture) seedStore(t *testing.T, merchantID uuid.UUID, name string) *entity.Store {
	t.Helper()

	storeEntity := &entity.Store{
		MerchantID: merchantID,
		Name:       name,
		Category:   "Mercearia",
		Address:    "Rua das Flores, 100",
	}
	require.NoError(t, memory.NewStoreRepository(f.store).Create(context.Background(), storeEntity))

	return storeEntity
}

func (f *marketFixture) seedProduct(t *testing.T, storeID uuid.UUID, name, price string, stock int) *entity.Product {
	t.Helper()

	product := &entity.Product{
		StoreID:  storeID,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "Mercearia",
		Stock:    stock,
	}
	require.NoError(t, memory.NewProductRepository(f.store).Create(context.Background(), product))

	return product
}

func (f *marketFixture) updateProduct(t *testing.T, product *entity.Product) {
	t.Helper()

	require.NoError(t, memory.NewProductRepository(f.store).Update(context.Background(), product))
}
