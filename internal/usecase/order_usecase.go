package usecase

import (
	"context"

	"github.com/google/uuid"

	"jacomprei/internal/domain/authz"
	"jacomprei/internal/domain/entity"
)

// --- Input DTOs ---

// CheckoutInput defines the data required to turn the cart into an order.
type CheckoutInput struct {
	Address        string
	AddressDetails string
	PaymentMethod  string
	PaymentDetails string
}

// OrderUsecase defines the order lifecycle operations for all three roles.
// Every read and write is authorized against the actor's relationship to the
// order; the status flow itself is enforced by the entity's state machine.
type OrderUsecase interface {
	// Checkout converts the consumer's cart into a pending order, freezing
	// unit prices, then clears the cart and broadcasts a new_order event.
	// Only consumers can place orders.
	Checkout(ctx context.Context, actor authz.Actor, input CheckoutInput) (*entity.OrderDetail, error)

	GetOrder(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*entity.OrderDetail, error)

	// MyOrders lists the consumer's own orders.
	MyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// StoreOrders lists the orders of all stores owned by the merchant.
	StoreOrders(ctx context.Context, merchantID uuid.UUID) ([]*entity.Order, error)

	// DeliveryOrders lists the orders assigned to the delivery person.
	DeliveryOrders(ctx context.Context, personID uuid.UUID) ([]*entity.Order, error)

	// AvailableOrders lists unassigned ready orders couriers can claim.
	AvailableOrders(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus moves the order to the next status on behalf of the actor,
	// records a history entry and broadcasts an order_status_updated event.
	// An empty description gets a generated history note.
	UpdateStatus(ctx context.Context, actor authz.Actor, orderID uuid.UUID, next entity.OrderStatus, description string) (*entity.Order, error)

	// AssignDelivery claims a ready, unassigned order for the delivery person
	// and broadcasts an order_assigned_delivery event.
	AssignDelivery(ctx context.Context, actor authz.Actor, orderID uuid.UUID) (*entity.Order, error)
}
