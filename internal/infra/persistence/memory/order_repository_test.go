package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jacomprei/internal/domain/entity"
	"jacomprei/internal/domain/repository"
)

func newTestOrder(t *testing.T, repo repository.OrderRepository, status entity.OrderStatus) *entity.Order {
	t.Helper()

	order := &entity.Order{
		UserID:        uuid.New(),
		StoreID:       uuid.New(),
		Status:        status,
		Subtotal:      decimal.NewFromFloat(20.00),
		DeliveryFee:   decimal.NewFromFloat(5.99),
		Total:         decimal.NewFromFloat(25.99),
		Address:       "Rua das Flores, 123",
		PaymentMethod: "pix",
	}
	require.NoError(t, repo.Create(context.Background(), order))

	return order
}

func TestOrderRepositoryUpdateStatusCAS(t *testing.T) {
	repo := NewOrderRepository(NewStore())
	ctx := context.Background()

	order := newTestOrder(t, repo, entity.OrderStatusPending)

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusConfirmed))

	// Second update against the stale expected status loses the race.
	err := repo.UpdateStatus(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, repository.ErrStatusConflict)

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, got.Status)
}

func TestOrderRepositoryUpdateStatusNotFound(t *testing.T) {
	repo := NewOrderRepository(NewStore())

	err := repo.UpdateStatus(context.Background(), uuid.New(), entity.OrderStatusPending, entity.OrderStatusConfirmed)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestOrderRepositoryAssignDeliveryGuards(t *testing.T) {
	repo := NewOrderRepository(NewStore())
	ctx := context.Background()

	pending := newTestOrder(t, repo, entity.OrderStatusPending)
	err := repo.AssignDelivery(ctx, pending.ID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrStatusConflict)

	ready := newTestOrder(t, repo, entity.OrderStatusReady)
	courier := uuid.New()
	require.NoError(t, repo.AssignDelivery(ctx, ready.ID, courier))

	err = repo.AssignDelivery(ctx, ready.ID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrAlreadyAssigned)

	got, err := repo.FindByID(ctx, ready.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DeliveryPersonID)
	assert.Equal(t, courier, *got.DeliveryPersonID)
	assert.Equal(t, entity.OrderStatusDelivering, got.Status)
}

func TestOrderRepositoryAssignDeliverySingleWinner(t *testing.T) {
	repo := NewOrderRepository(NewStore())
	ctx := context.Background()

	order := newTestOrder(t, repo, entity.OrderStatusReady)

	const couriers = 20
	var wins int
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(couriers)
	for i := 0; i < couriers; i++ {
		go func() {
			defer wg.Done()
			if err := repo.AssignDelivery(ctx, order.ID, uuid.New()); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestOrderRepositoryHistoryOrdering(t *testing.T) {
	repo := NewOrderRepository(NewStore())
	ctx := context.Background()

	order := newTestOrder(t, repo, entity.OrderStatusPending)

	statuses := []entity.OrderStatus{
		entity.OrderStatusPending,
		entity.OrderStatusConfirmed,
		entity.OrderStatusPreparing,
	}
	base := order.CreatedAt
	for i, status := range statuses {
		require.NoError(t, repo.AppendHistory(ctx, &entity.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    status,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	history, err := repo.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, status := range statuses {
		assert.Equal(t, status, history[i].Status)
	}
}

func TestCategorySeeding(t *testing.T) {
	repo := NewCategoryRepository(NewStore())

	categories, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 8)

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	assert.Contains(t, names, "Mercearia")
	assert.Contains(t, names, "Farmácia")
	assert.Contains(t, names, "Pet Shop")
}
