package repository

import (
	"context"
	"errors"

	"jacomprei/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// ErrStatusConflict is returned when a guarded status update finds the order
// in a different status than expected. Callers treat it as a lost race.
var ErrStatusConflict = errors.New("order status conflict")

// ErrAlreadyAssigned is returned when an order already has a delivery person.
var ErrAlreadyAssigned = errors.New("order already assigned")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves a single order by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByUser retrieves all orders placed by the given consumer, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindByStoreIDs retrieves all orders placed against any of the given stores, newest first.
	FindByStoreIDs(ctx context.Context, storeIDs []uuid.UUID) ([]*entity.Order, error)

	// FindByDeliveryPerson retrieves all orders assigned to the given delivery person, newest first.
	FindByDeliveryPerson(ctx context.Context, personID uuid.UUID) ([]*entity.Order, error)

	// FindAvailableForDelivery retrieves unassigned orders in ready status, oldest first.
	FindAvailableForDelivery(ctx context.Context) ([]*entity.Order, error)

	// Create persists a new order entity to the storage.
	Create(ctx context.Context, order *entity.Order) error

	// CreateItems persists the line items of an order.
	CreateItems(ctx context.Context, items []*entity.OrderItem) error

	// ListItems retrieves the line items of an order.
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error)

	// AppendHistory records one status history entry for an order.
	AppendHistory(ctx context.Context, entry *entity.OrderStatusHistory) error

	// History retrieves the status history of an order, oldest first.
	History(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderStatusHistory, error)

	// UpdateStatus moves an order from the expected status to the next one.
	// It returns ErrStatusConflict when the order is no longer in the expected status,
	// so concurrent updaters cannot both win.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.OrderStatus) error

	// AssignDelivery claims an order for a delivery person and moves it to
	// delivering in one guarded write. It succeeds only while the order is in
	// ready status with no delivery person set, and returns ErrStatusConflict
	// or ErrAlreadyAssigned otherwise.
	AssignDelivery(ctx context.Context, id uuid.UUID, personID uuid.UUID) error
}
