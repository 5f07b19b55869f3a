// Package events provides the in-process broadcaster that fans order events
// out to connected websocket clients.
package events

import (
	"log/slog"
	"sync"

	"jacomprei/config"
	"jacomprei/internal/domain/service"
)

const defaultSubscriberBuffer = 16

// Hub is a concrete implementation of the Broadcaster interface.
// Each subscriber gets its own buffered channel; when a subscriber's buffer
// is full the event is dropped for that subscriber only, so one stalled
// websocket can never block order processing.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan *service.OrderEvent]struct{}
	buffer      int
	logger      *slog.Logger
}

// NewHub is the constructor for Hub.
func NewHub(cfg *config.Config, logger *slog.Logger) service.Broadcaster {
	buffer := defaultSubscriberBuffer
	if cfg.Events != nil && cfg.Events.SubscriberBuffer > 0 {
		buffer = cfg.Events.SubscriberBuffer
	}

	return &Hub{
		subscribers: make(map[chan *service.OrderEvent]struct{}),
		buffer:      buffer,
		logger:      logger,
	}
}

// Subscribe registers a new listener and returns its channel plus an
// unsubscribe function. Unsubscribing twice is safe.
func (h *Hub) Subscribe() (<-chan *service.OrderEvent, func()) {
	ch := make(chan *service.OrderEvent, h.buffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, unsubscribe
}

// Broadcast delivers the event to all current subscribers without blocking.
func (h *Hub) Broadcast(event *service.OrderEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Warn("dropping order event for slow subscriber",
				slog.String("type", event.Type),
				slog.String("order_id", event.OrderID.String()),
			)
		}
	}
}
