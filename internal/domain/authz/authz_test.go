package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"jacomprei/internal/domain/entity"
)

func TestCanViewOrder(t *testing.T) {
	consumerID := uuid.New()
	merchantID := uuid.New()
	courierID := uuid.New()
	strangerID := uuid.New()

	order := &entity.Order{
		ID:     uuid.New(),
		UserID: consumerID,
		Status: entity.OrderStatusPending,
	}

	tests := []struct {
		name      string
		actor     Actor
		order     *entity.Order
		ownsStore bool
		want      bool
	}{
		{
			name:  "consumer sees own order",
			actor: Actor{ID: consumerID, Role: entity.RoleConsumer},
			order: order,
			want:  true,
		},
		{
			name:  "consumer cannot see another consumer's order",
			actor: Actor{ID: strangerID, Role: entity.RoleConsumer},
			order: order,
			want:  false,
		},
		{
			name:      "merchant sees orders of own store",
			actor:     Actor{ID: merchantID, Role: entity.RoleMerchant},
			order:     order,
			ownsStore: true,
			want:      true,
		},
		{
			name:  "merchant cannot see orders of another store",
			actor: Actor{ID: merchantID, Role: entity.RoleMerchant},
			order: order,
			want:  false,
		},
		{
			name:  "courier sees assigned order",
			actor: Actor{ID: courierID, Role: entity.RoleDelivery},
			order: &entity.Order{
				UserID:           consumerID,
				DeliveryPersonID: &courierID,
				Status:           entity.OrderStatusDelivering,
			},
			want: true,
		},
		{
			name:  "courier sees unassigned ready order",
			actor: Actor{ID: courierID, Role: entity.RoleDelivery},
			order: &entity.Order{
				UserID: consumerID,
				Status: entity.OrderStatusReady,
			},
			want: true,
		},
		{
			name:  "courier cannot see unassigned pending order",
			actor: Actor{ID: courierID, Role: entity.RoleDelivery},
			order: order,
			want:  false,
		},
		{
			name:  "courier cannot see order assigned to someone else",
			actor: Actor{ID: courierID, Role: entity.RoleDelivery},
			order: &entity.Order{
				UserID:           consumerID,
				DeliveryPersonID: &strangerID,
				Status:           entity.OrderStatusDelivering,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanViewOrder(tt.actor, tt.order, tt.ownsStore)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanSetStatus(t *testing.T) {
	consumerID := uuid.New()
	merchantID := uuid.New()
	courierID := uuid.New()

	pending := &entity.Order{
		ID:     uuid.New(),
		UserID: consumerID,
		Status: entity.OrderStatusPending,
	}
	assigned := &entity.Order{
		ID:               uuid.New(),
		UserID:           consumerID,
		DeliveryPersonID: &courierID,
		Status:           entity.OrderStatusReady,
	}

	tests := []struct {
		name      string
		actor     Actor
		order     *entity.Order
		ownsStore bool
		next      entity.OrderStatus
		want      bool
	}{
		{
			name:      "merchant confirms order of own store",
			actor:     Actor{ID: merchantID, Role: entity.RoleMerchant},
			order:     pending,
			ownsStore: true,
			next:      entity.OrderStatusConfirmed,
			want:      true,
		},
		{
			name:  "merchant without ownership is refused",
			actor: Actor{ID: merchantID, Role: entity.RoleMerchant},
			order: pending,
			next:  entity.OrderStatusConfirmed,
			want:  false,
		},
		{
			name:      "merchant cannot set delivering",
			actor:     Actor{ID: merchantID, Role: entity.RoleMerchant},
			order:     pending,
			ownsStore: true,
			next:      entity.OrderStatusDelivering,
			want:      false,
		},
		{
			name:  "assigned courier sets delivering",
			actor: Actor{ID: courierID, Role: entity.RoleDelivery},
			order: assigned,
			next:  entity.OrderStatusDelivering,
			want:  true,
		},
		{
			name:  "unassigned courier cannot set delivering",
			actor: Actor{ID: uuid.New(), Role: entity.RoleDelivery},
			order: assigned,
			next:  entity.OrderStatusDelivering,
			want:  false,
		},
		{
			name:  "courier cannot cancel",
			actor: Actor{ID: courierID, Role: entity.RoleDelivery},
			order: assigned,
			next:  entity.OrderStatusCancelled,
			want:  false,
		},
		{
			name:  "consumer cancels own order",
			actor: Actor{ID: consumerID, Role: entity.RoleConsumer},
			order: pending,
			next:  entity.OrderStatusCancelled,
			want:  true,
		},
		{
			name:  "consumer cannot confirm",
			actor: Actor{ID: consumerID, Role: entity.RoleConsumer},
			order: pending,
			next:  entity.OrderStatusConfirmed,
			want:  false,
		},
		{
			name:  "consumer cannot cancel someone else's order",
			actor: Actor{ID: uuid.New(), Role: entity.RoleConsumer},
			order: pending,
			next:  entity.OrderStatusCancelled,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanSetStatus(tt.actor, tt.order, tt.ownsStore, tt.next)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTargetsForRole(t *testing.T) {
	assert.ElementsMatch(t,
		[]entity.OrderStatus{
			entity.OrderStatusConfirmed,
			entity.OrderStatusPreparing,
			entity.OrderStatusReady,
			entity.OrderStatusCancelled,
		},
		TargetsForRole(entity.RoleMerchant),
	)
	assert.ElementsMatch(t,
		[]entity.OrderStatus{entity.OrderStatusDelivering, entity.OrderStatusDelivered},
		TargetsForRole(entity.RoleDelivery),
	)
	assert.ElementsMatch(t,
		[]entity.OrderStatus{entity.OrderStatusCancelled},
		TargetsForRole(entity.RoleConsumer),
	)
	assert.Empty(t, TargetsForRole(entity.Role("ADMIN")))
}
