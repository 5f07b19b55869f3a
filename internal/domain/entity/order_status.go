package entity

// OrderStatus is the lifecycle state of an order. Tokens are the wire
// format used by clients, so they stay lowercase.
type OrderStatus string

const (
	// OrderStatusPending is the initial state of every order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed means the merchant accepted the order.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusPreparing means the merchant is preparing the order.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusReady means the order awaits pickup by delivery personnel.
	OrderStatusReady OrderStatus = "ready"
	// OrderStatusDelivering means an assigned delivery person is en route.
	OrderStatusDelivering OrderStatus = "delivering"
	// OrderStatusDelivered is terminal: the order reached the consumer.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled is terminal: the order was cancelled before dispatch.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// transitions is the adjacency graph of the lifecycle state machine.
// Cancellation is reachable from every state before the order leaves the
// store; once delivering, the order can only complete.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusDelivered},
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a member of the closed token set.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady,
		OrderStatusDelivering, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition leaves this status.
func (s OrderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether the lifecycle graph has a directed edge
// from s to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}

	return false
}
