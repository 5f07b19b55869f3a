package events

import (
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jacomprei/config"
	"jacomprei/internal/domain/entity"
	"jacomprei/internal/domain/service"
)

func newTestHub(buffer int) service.Broadcaster {
	cfg := &config.Config{Events: &config.EventsConfig{SubscriberBuffer: buffer}}

	return NewHub(cfg, slog.Default())
}

func TestHubDeliversToAllSubscribers(t *testing.T) {
	hub := newTestHub(4)

	chA, cancelA := hub.Subscribe()
	defer cancelA()
	chB, cancelB := hub.Subscribe()
	defer cancelB()

	event := &service.OrderEvent{
		Type:    service.EventNewOrder,
		OrderID: uuid.New(),
		Status:  entity.OrderStatusPending,
	}
	hub.Broadcast(event)

	require.Len(t, chA, 1)
	require.Len(t, chB, 1)
	assert.Equal(t, event, <-chA)
	assert.Equal(t, event, <-chB)
}

func TestHubDropsWhenSubscriberBufferFull(t *testing.T) {
	hub := newTestHub(1)

	ch, cancel := hub.Subscribe()
	defer cancel()

	first := &service.OrderEvent{Type: service.EventNewOrder, OrderID: uuid.New()}
	second := &service.OrderEvent{Type: service.EventOrderStatusUpdated, OrderID: uuid.New()}

	hub.Broadcast(first)
	hub.Broadcast(second) // buffer full, dropped for this subscriber

	require.Len(t, ch, 1)
	assert.Equal(t, first, <-ch)
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := newTestHub(4)

	ch, cancel := hub.Subscribe()
	cancel()
	cancel() // idempotent

	_, open := <-ch
	assert.False(t, open)

	// Broadcasting after unsubscribe must not panic on the closed channel.
	hub.Broadcast(&service.OrderEvent{Type: service.EventNewOrder, OrderID: uuid.New()})
}
