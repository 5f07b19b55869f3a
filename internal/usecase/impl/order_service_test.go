package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jacomprei/internal/domain/authz"
	"jacomprei/internal/domain/entity"
	"jacomprei/internal/domain/service"
	"jacomprei/internal/usecase"
)

func asConsumer(id uuid.UUID) authz.Actor {
	return authz.Actor{ID: id, Role: entity.RoleConsumer}
}

func checkoutInput() usecase.CheckoutInput {
	return usecase.CheckoutInput{
		Address:       "Av. Paulista, 1000",
		PaymentMethod: "pix",
	}
}

func drainEvent(t *testing.T, ch <-chan *service.OrderEvent) *service.OrderEvent {
	t.Helper()

	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("expected an order event")
		return nil
	}
}

func TestOrderService_CheckoutTotalsAndHistory(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "grocer", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Empório do Bairro")
	rice := f.seedProduct(t, store.ID, "Arroz 1kg", "12.90", 10)
	candy := f.seedProduct(t, store.ID, "Bala", "0.75", 100)

	_, err := f.carts.AddItem(ctx, consumerID, rice.ID, 2)
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, consumerID, candy.ID, 3)
	require.NoError(t, err)

	ch, unsubscribe := f.hub.Subscribe()
	defer unsubscribe()

	detail, err := f.orders.Checkout(ctx, asConsumer(consumerID), checkoutInput())
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, detail.Status)
	assert.Equal(t, "28.05", detail.Subtotal.String())
	assert.Equal(t, "5.99", detail.DeliveryFee.String())
	assert.Equal(t, "34.04", detail.Total.String())
	assert.Equal(t, store.ID, detail.StoreID)
	require.Len(t, detail.Items, 2)

	require.Len(t, detail.StatusHistory, 1)
	assert.Equal(t, entity.OrderStatusPending, detail.StatusHistory[0].Status)
	assert.Equal(t, "Order created and pending confirmation", detail.StatusHistory[0].Description)

	cart, err := f.carts.GetCart(ctx, consumerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	event := drainEvent(t, ch)
	assert.Equal(t, service.EventNewOrder, event.Type)
	assert.Equal(t, detail.ID, event.OrderID)
	require.NotNil(t, event.StoreID)
	assert.Equal(t, store.ID, *event.StoreID)
	assert.Equal(t, entity.OrderStatusPending, event.Status)

	require.Len(t, f.published.events, 1)
	assert.Equal(t, service.EventNewOrder, f.published.events[0].Type)
}

func TestOrderService_CheckoutFreezesPrices(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "grocer", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Empório do Bairro")
	product := f.seedProduct(t, store.ID, "Azeite", "39.90", 10)

	_, err := f.carts.AddItem(ctx, consumerID, product.ID, 1)
	require.NoError(t, err)

	detail, err := f.orders.Checkout(ctx, asConsumer(consumerID), checkoutInput())
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "39.9", detail.Items[0].Price.String())

	// A later price change must not alter the placed order.
	product.Price = product.Price.Add(product.Price)
	f.updateProduct(t, product)

	reloaded, err := f.orders.GetOrder(ctx, authz.Actor{ID: consumerID, Role: entity.RoleConsumer}, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, "39.9", reloaded.Items[0].Price.String())
	assert.Equal(t, "45.89", reloaded.Total.String())
}

func TestOrderService_CheckoutRejectsEmptyAndMixedCarts(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "grocer", entity.RoleMerchant)
	first := f.seedStore(t, merchantID, "Loja A")
	second := f.seedStore(t, merchantID, "Loja B")

	_, err := f.orders.Checkout(ctx, asConsumer(consumerID), checkoutInput())
	requireAppCode(t, err, "EMPTY_CART")

	fromFirst := f.seedProduct(t, first.ID, "Suco", "7.00", 10)
	fromSecond := f.seedProduct(t, second.ID, "Bolo", "25.00", 10)
	_, err = f.carts.AddItem(ctx, consumerID, fromFirst.ID, 1)
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, consumerID, fromSecond.ID, 1)
	require.NoError(t, err)

	_, err = f.orders.Checkout(ctx, asConsumer(consumerID), checkoutInput())
	requireAppCode(t, err, "MIXED_STORE_CART")

	// The failed checkout must leave the cart intact.
	cart, err := f.carts.GetCart(ctx, consumerID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

// placeOrder registers a consumer cart with one product and checks it out.
func placeOrder(t *testing.T, f *marketFixture, consumerID, storeID uuid.UUID) *entity.OrderDetail {
	t.Helper()
	ctx := context.Background()

	product := f.seedProduct(t, storeID, "Marmita", "18.00", 100)
	_, err := f.carts.AddItem(ctx, consumerID, product.ID, 1)
	require.NoError(t, err)

	detail, err := f.orders.Checkout(ctx, asConsumer(consumerID), checkoutInput())
	require.NoError(t, err)

	return detail
}

func TestOrderService_FullLifecycle(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "cook", entity.RoleMerchant)
	courierID := f.register(t, "courier", entity.RoleDelivery)
	store := f.seedStore(t, merchantID, "Restaurante da Esquina")

	detail := placeOrder(t, f, consumerID, store.ID)
	merchant := authz.Actor{ID: merchantID, Role: entity.RoleMerchant}
	courier := authz.Actor{ID: courierID, Role: entity.RoleDelivery}

	for _, next := range []entity.OrderStatus{
		entity.OrderStatusConfirmed,
		entity.OrderStatusPreparing,
		entity.OrderStatusReady,
	} {
		order, err := f.orders.UpdateStatus(ctx, merchant, detail.ID, next, "")
		require.NoError(t, err)
		assert.Equal(t, next, order.Status)
	}

	available, err := f.orders.AvailableOrders(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, detail.ID, available[0].ID)

	claimed, err := f.orders.AssignDelivery(ctx, courier, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivering, claimed.Status)
	require.NotNil(t, claimed.DeliveryPersonID)
	assert.Equal(t, courierID, *claimed.DeliveryPersonID)

	available, err = f.orders.AvailableOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)

	mine, err := f.orders.DeliveryOrders(ctx, courierID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	done, err := f.orders.UpdateStatus(ctx, courier, detail.ID, entity.OrderStatusDelivered, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, done.Status)

	full, err := f.orders.GetOrder(ctx, authz.Actor{ID: consumerID, Role: entity.RoleConsumer}, detail.ID)
	require.NoError(t, err)
	require.Len(t, full.StatusHistory, 6)
	assert.Equal(t, entity.OrderStatusPending, full.StatusHistory[0].Status)
	assert.Equal(t, entity.OrderStatusDelivering, full.StatusHistory[4].Status)
	assert.Equal(t, "Order assigned to delivery person and out for delivery", full.StatusHistory[4].Description)
	assert.Equal(t, entity.OrderStatusDelivered, full.StatusHistory[5].Status)
	assert.Equal(t, "Order status updated to delivered", full.StatusHistory[5].Description)
}

func TestOrderService_UpdateStatusAuthorization(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "cook", entity.RoleMerchant)
	otherMerchantID := f.register(t, "rival", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Cantina")

	detail := placeOrder(t, f, consumerID, store.ID)

	// A consumer cannot confirm their own order.
	_, err := f.orders.UpdateStatus(ctx,
		authz.Actor{ID: consumerID, Role: entity.RoleConsumer},
		detail.ID, entity.OrderStatusConfirmed, "")
	requireAppCode(t, err, "FORBIDDEN")

	// A merchant who does not own the store cannot touch the order.
	_, err = f.orders.UpdateStatus(ctx,
		authz.Actor{ID: otherMerchantID, Role: entity.RoleMerchant},
		detail.ID, entity.OrderStatusConfirmed, "")
	requireAppCode(t, err, "FORBIDDEN")

	// The owning merchant cannot skip lifecycle steps.
	_, err = f.orders.UpdateStatus(ctx,
		authz.Actor{ID: merchantID, Role: entity.RoleMerchant},
		detail.ID, entity.OrderStatusReady, "")
	requireAppCode(t, err, "INVALID_TRANSITION")

	// The consumer may cancel while the order is still pending.
	cancelled, err := f.orders.UpdateStatus(ctx,
		authz.Actor{ID: consumerID, Role: entity.RoleConsumer},
		detail.ID, entity.OrderStatusCancelled, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
}

func TestOrderService_AssignDeliveryGuards(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "cook", entity.RoleMerchant)
	courierID := f.register(t, "courier", entity.RoleDelivery)
	rivalCourierID := f.register(t, "rival-courier", entity.RoleDelivery)
	store := f.seedStore(t, merchantID, "Cantina")

	detail := placeOrder(t, f, consumerID, store.ID)
	merchant := authz.Actor{ID: merchantID, Role: entity.RoleMerchant}
	courier := authz.Actor{ID: courierID, Role: entity.RoleDelivery}

	// Only delivery personnel may claim orders.
	_, err := f.orders.AssignDelivery(ctx, authz.Actor{ID: consumerID, Role: entity.RoleConsumer}, detail.ID)
	requireAppCode(t, err, "FORBIDDEN")

	// Claiming before the order is ready fails.
	_, err = f.orders.AssignDelivery(ctx, courier, detail.ID)
	requireAppCode(t, err, "ORDER_NOT_READY")

	for _, next := range []entity.OrderStatus{
		entity.OrderStatusConfirmed,
		entity.OrderStatusPreparing,
		entity.OrderStatusReady,
	} {
		_, err := f.orders.UpdateStatus(ctx, merchant, detail.ID, next, "")
		require.NoError(t, err)
	}

	_, err = f.orders.AssignDelivery(ctx, courier, detail.ID)
	require.NoError(t, err)

	// A second courier cannot claim an assigned order.
	_, err = f.orders.AssignDelivery(ctx, authz.Actor{ID: rivalCourierID, Role: entity.RoleDelivery}, detail.ID)
	requireAppCode(t, err, "ORDER_ALREADY_ASSIGNED")
}

func TestOrderService_GetOrderVisibility(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	strangerID := f.register(t, "stranger", entity.RoleConsumer)
	merchantID := f.register(t, "cook", entity.RoleMerchant)
	courierID := f.register(t, "courier", entity.RoleDelivery)
	store := f.seedStore(t, merchantID, "Cantina")

	detail := placeOrder(t, f, consumerID, store.ID)
	merchant := authz.Actor{ID: merchantID, Role: entity.RoleMerchant}
	courier := authz.Actor{ID: courierID, Role: entity.RoleDelivery}

	_, err := f.orders.GetOrder(ctx, authz.Actor{ID: consumerID, Role: entity.RoleConsumer}, detail.ID)
	require.NoError(t, err)
	_, err = f.orders.GetOrder(ctx, merchant, detail.ID)
	require.NoError(t, err)

	_, err = f.orders.GetOrder(ctx, authz.Actor{ID: strangerID, Role: entity.RoleConsumer}, detail.ID)
	requireAppCode(t, err, "FORBIDDEN")

	// Couriers cannot see a pending order, but a ready one is claimable.
	_, err = f.orders.GetOrder(ctx, courier, detail.ID)
	requireAppCode(t, err, "FORBIDDEN")

	for _, next := range []entity.OrderStatus{
		entity.OrderStatusConfirmed,
		entity.OrderStatusPreparing,
		entity.OrderStatusReady,
	} {
		_, err := f.orders.UpdateStatus(ctx, merchant, detail.ID, next, "")
		require.NoError(t, err)
	}

	_, err = f.orders.GetOrder(ctx, courier, detail.ID)
	require.NoError(t, err)

	_, err = f.orders.GetOrder(ctx, courier, uuid.New())
	requireAppCode(t, err, "ORDER_NOT_FOUND")
}

func TestOrderService_StatusEventsCarryTimestamp(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "cook", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Cantina")

	detail := placeOrder(t, f, consumerID, store.ID)

	ch, unsubscribe := f.hub.Subscribe()
	defer unsubscribe()

	_, err := f.orders.UpdateStatus(ctx,
		authz.Actor{ID: merchantID, Role: entity.RoleMerchant},
		detail.ID, entity.OrderStatusConfirmed, "")
	require.NoError(t, err)

	event := drainEvent(t, ch)
	assert.Equal(t, service.EventOrderStatusUpdated, event.Type)
	assert.Equal(t, detail.ID, event.OrderID)
	assert.Equal(t, entity.OrderStatusConfirmed, event.Status)
	require.NotNil(t, event.Timestamp)
}

func TestOrderService_CheckoutUsesProfileAddress(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "grocer", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Mercadinho")
	soap := f.seedProduct(t, store.ID, "Sabonete", "3.50", 20)

	_, err := f.carts.AddItem(ctx, consumerID, soap.ID, 1)
	require.NoError(t, err)

	// No address anywhere yet.
	_, err = f.orders.Checkout(ctx, asConsumer(consumerID), usecase.CheckoutInput{PaymentMethod: "pix"})
	requireAppCode(t, err, "VALIDATION_FAILED")

	home := "Rua das Flores, 42"
	details := "apto 301"
	_, err = f.users.UpdateProfile(ctx, consumerID, usecase.UpdateProfileInput{
		Address:        &home,
		AddressDetails: &details,
	})
	require.NoError(t, err)

	detail, err := f.orders.Checkout(ctx, asConsumer(consumerID), usecase.CheckoutInput{PaymentMethod: "pix"})
	require.NoError(t, err)
	assert.Equal(t, home, detail.Address)
	assert.Equal(t, details, detail.AddressDetails)
}

func TestOrderService_CheckoutIsConsumerOnly(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	merchantID := f.register(t, "grocer", entity.RoleMerchant)
	courierID := f.register(t, "courier", entity.RoleDelivery)
	store := f.seedStore(t, merchantID, "Padaria")
	bread := f.seedProduct(t, store.ID, "Pão", "1.50", 50)

	// Cart lines alone must not be enough to place an order.
	_, err := f.carts.AddItem(ctx, courierID, bread.ID, 2)
	require.NoError(t, err)

	_, err = f.orders.Checkout(ctx,
		authz.Actor{ID: courierID, Role: entity.RoleDelivery}, checkoutInput())
	requireAppCode(t, err, "FORBIDDEN")

	_, err = f.orders.Checkout(ctx,
		authz.Actor{ID: merchantID, Role: entity.RoleMerchant}, checkoutInput())
	requireAppCode(t, err, "FORBIDDEN")

	// The courier's cart survives the rejected attempts.
	cart, err := f.carts.GetCart(ctx, courierID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestOrderService_UpdateStatusCustomDescription(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "cook", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Cantina")

	detail := placeOrder(t, f, consumerID, store.ID)
	merchant := authz.Actor{ID: merchantID, Role: entity.RoleMerchant}

	_, err := f.orders.UpdateStatus(ctx, merchant, detail.ID,
		entity.OrderStatusConfirmed, "Confirmed by phone with the customer")
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(ctx, merchant, detail.ID,
		entity.OrderStatusPreparing, "")
	require.NoError(t, err)

	full, err := f.orders.GetOrder(ctx, asConsumer(consumerID), detail.ID)
	require.NoError(t, err)
	require.Len(t, full.StatusHistory, 3)
	assert.Equal(t, "Confirmed by phone with the customer", full.StatusHistory[1].Description)
	assert.Equal(t, "Order status updated to preparing", full.StatusHistory[2].Description)
}
