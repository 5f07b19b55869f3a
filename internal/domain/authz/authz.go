// Package authz holds the role-based access rules for orders as pure
// functions, so use cases and tests can exercise them without any I/O.
package authz

import (
	"github.com/google/uuid"

	"jacomprei/internal/domain/entity"
)

// Actor identifies the authenticated caller of an order operation.
type Actor struct {
	ID   uuid.UUID
	Role entity.Role
}

// statusTargets lists the statuses each role is allowed to set.
// Relationship checks (ownership, assignment) are applied separately.
var statusTargets = map[entity.Role][]entity.OrderStatus{
	entity.RoleMerchant: {
		entity.OrderStatusConfirmed,
		entity.OrderStatusPreparing,
		entity.OrderStatusReady,
		entity.OrderStatusCancelled,
	},
	entity.RoleDelivery: {
		entity.OrderStatusDelivering,
		entity.OrderStatusDelivered,
	},
	entity.RoleConsumer: {
		entity.OrderStatusCancelled,
	},
}

// TargetsForRole returns the statuses the given role may ever set.
// The returned slice must not be mutated.
func TargetsForRole(role entity.Role) []entity.OrderStatus {
	return statusTargets[role]
}

// CanViewOrder reports whether the actor may read the order.
// ownsStore must be true when the actor is the merchant of the order's store.
func CanViewOrder(actor Actor, order *entity.Order, ownsStore bool) bool {
	switch actor.Role {
	case entity.RoleConsumer:
		return order.UserID == actor.ID
	case entity.RoleMerchant:
		return ownsStore
	case entity.RoleDelivery:
		if order.DeliveryPersonID != nil {
			return *order.DeliveryPersonID == actor.ID
		}
		// Unassigned ready orders are visible so couriers can claim them.
		return order.Status == entity.OrderStatusReady
	default:
		return false
	}
}

// CanSetStatus reports whether the actor may request moving the order to next.
// It checks the role's status targets and the actor's relationship to the
// order, but not the lifecycle itself; entity.OrderStatus.CanTransitionTo
// still decides whether the move is legal from the current status.
func CanSetStatus(actor Actor, order *entity.Order, ownsStore bool, next entity.OrderStatus) bool {
	allowed := false
	for _, target := range statusTargets[actor.Role] {
		if target == next {
			allowed = true
			break
		}
	}

	if !allowed {
		return false
	}

	switch actor.Role {
	case entity.RoleMerchant:
		return ownsStore
	case entity.RoleDelivery:
		return order.DeliveryPersonID != nil && *order.DeliveryPersonID == actor.ID
	case entity.RoleConsumer:
		return order.UserID == actor.ID
	default:
		return false
	}
}
