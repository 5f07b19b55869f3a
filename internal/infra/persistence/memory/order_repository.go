package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"jacomprei/internal/domain/entity"
	"jacomprei/internal/domain/repository"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository is the constructor for the in-memory order repository.
func NewOrderRepository(store *Store) repository.OrderRepository {
	return &orderRepository{store: store}
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	order, ok := repo.store.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return copyOrder(order), nil
}

func (repo *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var orders []*entity.Order
	for _, order := range repo.store.orders {
		if order.UserID == userID {
			orders = append(orders, copyOrder(order))
		}
	}

	sortOrdersNewestFirst(orders)

	return orders, nil
}

func (repo *orderRepository) FindByStoreIDs(ctx context.Context, storeIDs []uuid.UUID) ([]*entity.Order, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	wanted := make(map[uuid.UUID]struct{}, len(storeIDs))
	for _, id := range storeIDs {
		wanted[id] = struct{}{}
	}

	var orders []*entity.Order
	for _, order := range repo.store.orders {
		if _, ok := wanted[order.StoreID]; ok {
			orders = append(orders, copyOrder(order))
		}
	}

	sortOrdersNewestFirst(orders)

	return orders, nil
}

func (repo *orderRepository) FindByDeliveryPerson(ctx context.Context, personID uuid.UUID) ([]*entity.Order, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var orders []*entity.Order
	for _, order := range repo.store.orders {
		if order.DeliveryPersonID != nil && *order.DeliveryPersonID == personID {
			orders = append(orders, copyOrder(order))
		}
	}

	sortOrdersNewestFirst(orders)

	return orders, nil
}

func (repo *orderRepository) FindAvailableForDelivery(ctx context.Context) ([]*entity.Order, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	var orders []*entity.Order
	for _, order := range repo.store.orders {
		if order.Status == entity.OrderStatusReady && order.DeliveryPersonID == nil {
			orders = append(orders, copyOrder(order))
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	return orders, nil
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	repo.store.orders[order.ID] = copyOrder(order)

	return nil
}

func (repo *orderRepository) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		cloned := *item
		repo.store.orderItems[item.OrderID] = append(repo.store.orderItems[item.OrderID], &cloned)
	}

	return nil
}

func (repo *orderRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	stored := repo.store.orderItems[orderID]
	items := make([]*entity.OrderItem, 0, len(stored))
	for _, item := range stored {
		cloned := *item
		items = append(items, &cloned)
	}

	return items, nil
}

func (repo *orderRepository) AppendHistory(ctx context.Context, entry *entity.OrderStatusHistory) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	cloned := *entry
	repo.store.history[entry.OrderID] = append(repo.store.history[entry.OrderID], &cloned)

	return nil
}

func (repo *orderRepository) History(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderStatusHistory, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	stored := repo.store.history[orderID]
	entries := make([]*entity.OrderStatusHistory, 0, len(stored))
	for _, entry := range stored {
		cloned := *entry
		entries = append(entries, &cloned)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	return entries, nil
}

func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.OrderStatus) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	order, ok := repo.store.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	if order.Status != expected {
		return repository.ErrStatusConflict
	}

	order.Status = next
	order.UpdatedAt = time.Now()

	return nil
}

func (repo *orderRepository) AssignDelivery(ctx context.Context, id uuid.UUID, personID uuid.UUID) error {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	order, ok := repo.store.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	if order.DeliveryPersonID != nil {
		return repository.ErrAlreadyAssigned
	}
	if order.Status != entity.OrderStatusReady {
		return repository.ErrStatusConflict
	}

	assigned := personID
	order.DeliveryPersonID = &assigned
	order.Status = entity.OrderStatusDelivering
	order.UpdatedAt = time.Now()

	return nil
}

func sortOrdersNewestFirst(orders []*entity.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
