package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jacomprei/internal/domain/entity"
)

// Event type tokens carried in OrderEvent.Type. Clients switch on these.
const (
	EventNewOrder             = "new_order"
	EventOrderStatusUpdated   = "order_status_updated"
	EventOrderAssignedDeliver = "order_assigned_delivery"
)

// OrderEvent is the wire payload broadcast when an order changes.
type OrderEvent struct {
	Type             string             `json:"type"`
	OrderID          uuid.UUID          `json:"orderId"`
	StoreID          *uuid.UUID         `json:"storeId,omitempty"`
	Status           entity.OrderStatus `json:"status"`
	DeliveryPersonID *uuid.UUID         `json:"deliveryPersonId,omitempty"`
	Timestamp        *time.Time         `json:"timestamp,omitempty"`
}

// Broadcaster fans order events out to every connected client.
// Delivery is best effort; a slow client never blocks the publisher.
type Broadcaster interface {
	// Broadcast delivers the event to all current subscribers.
	Broadcast(event *OrderEvent)

	// Subscribe registers a new listener and returns its channel plus an
	// unsubscribe function. The channel is closed on unsubscribe.
	Subscribe() (<-chan *OrderEvent, func())
}

// EventPublisher mirrors order events to an external message queue for
// downstream consumers. Implementations may be a no-op.
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async processing.
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
