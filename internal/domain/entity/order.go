package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the central entity of the marketplace. Amounts and the delivery
// address are computed/copied at creation time and immutable afterwards;
// only Status and DeliveryPersonID change, through the lifecycle engine.
type Order struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"userId"`
	StoreID          uuid.UUID       `json:"storeId"`
	DeliveryPersonID *uuid.UUID      `json:"deliveryPersonId,omitempty"`
	Status           OrderStatus     `json:"status"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DeliveryFee      decimal.Decimal `json:"deliveryFee"`
	Total            decimal.Decimal `json:"total"`
	Address          string          `json:"address"`
	AddressDetails   string          `json:"addressDetails,omitempty"`
	PaymentMethod    string          `json:"paymentMethod"`
	PaymentDetails   string          `json:"paymentDetails,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// OrderItem is an immutable snapshot of a cart line at order-creation time.
// Price is the unit price at the time of purchase, decoupled from the live
// product so later edits never alter historical orders.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"orderId"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Subtotal returns quantity times the frozen unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderStatusHistory is one entry of an order's append-only status log.
// Entries are never mutated or deleted; the order's current status always
// equals the status of its most recent entry.
type OrderStatusHistory struct {
	ID          uuid.UUID   `json:"id"`
	OrderID     uuid.UUID   `json:"orderId"`
	Status      OrderStatus `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
	Description string      `json:"description,omitempty"`
}

// OrderDetail bundles an order with its frozen items and full history,
// the shape returned by the order-detail operation.
type OrderDetail struct {
	Order
	Items         []*OrderItem          `json:"items"`
	StatusHistory []*OrderStatusHistory `json:"statusHistory"`
}
