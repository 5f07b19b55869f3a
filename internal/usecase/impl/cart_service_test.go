package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jacomprei/internal/domain/entity"
)

func TestCartService_AddMergesQuantities(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "grocer", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Mercadinho Central")
	product := f.seedProduct(t, store.ID, "Arroz 5kg", "24.90", 10)

	item, err := f.carts.AddItem(ctx, consumerID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	merged, err := f.carts.AddItem(ctx, consumerID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, item.ID, merged.ID)
	assert.Equal(t, 5, merged.Quantity)

	cart, err := f.carts.GetCart(ctx, consumerID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "124.5", cart.Subtotal.String())
}

func TestCartService_AddValidation(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "grocer", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Mercadinho Central")
	product := f.seedProduct(t, store.ID, "Feijão 1kg", "8.50", 2)

	_, err := f.carts.AddItem(ctx, consumerID, product.ID, 0)
	requireAppCode(t, err, "VALIDATION_FAILED")

	_, err = f.carts.AddItem(ctx, consumerID, product.ID, 3)
	requireAppCode(t, err, "VALIDATION_FAILED")

	_, err = f.carts.AddItem(ctx, consumerID, uuid.New(), 1)
	requireAppCode(t, err, "PRODUCT_NOT_FOUND")
}

func TestCartService_UpdateToZeroRemovesLine(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "grocer", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Mercadinho Central")
	product := f.seedProduct(t, store.ID, "Café 500g", "19.90", 10)

	item, err := f.carts.AddItem(ctx, consumerID, product.ID, 2)
	require.NoError(t, err)

	updated, err := f.carts.UpdateItem(ctx, consumerID, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	gone, err := f.carts.UpdateItem(ctx, consumerID, item.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, gone)

	cart, err := f.carts.GetCart(ctx, consumerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())
}

func TestCartService_ItemsAreOwnerScoped(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", entity.RoleConsumer)
	intruder := f.register(t, "intruder", entity.RoleConsumer)
	merchantID := f.register(t, "grocer", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Mercadinho Central")
	product := f.seedProduct(t, store.ID, "Leite 1L", "5.50", 10)

	item, err := f.carts.AddItem(ctx, owner, product.ID, 1)
	require.NoError(t, err)

	_, err = f.carts.UpdateItem(ctx, intruder, item.ID, 2)
	requireAppCode(t, err, "FORBIDDEN")

	err = f.carts.RemoveItem(ctx, intruder, item.ID)
	requireAppCode(t, err, "FORBIDDEN")
}

func TestCartService_ClearCart(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	consumerID := f.register(t, "shopper", entity.RoleConsumer)
	merchantID := f.register(t, "grocer", entity.RoleMerchant)
	store := f.seedStore(t, merchantID, "Mercadinho Central")
	first := f.seedProduct(t, store.ID, "Pão", "1.20", 50)
	second := f.seedProduct(t, store.ID, "Queijo", "32.00", 5)

	_, err := f.carts.AddItem(ctx, consumerID, first.ID, 5)
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, consumerID, second.ID, 1)
	require.NoError(t, err)

	require.NoError(t, f.carts.ClearCart(ctx, consumerID))

	cart, err := f.carts.GetCart(ctx, consumerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
