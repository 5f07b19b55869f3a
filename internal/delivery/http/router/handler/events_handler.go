package handler

import (
	"encoding/json"
	"log/slog"

	"jacomprei/internal/domain/service"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"
)

// EventsHandler terminates the /ws channel, bridging the in-process
// broadcaster to connected websocket clients.
type EventsHandler struct {
	broadcaster service.Broadcaster
	logger      *slog.Logger
}

// NewEventsHandler is the constructor for EventsHandler, injected by Fx.
func NewEventsHandler(broadcaster service.Broadcaster, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		broadcaster: broadcaster,
		logger:      logger,
	}
}

type helloMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Serve upgrades the connection and streams order events as JSON until the
// client disconnects. A slow client only loses its own events; the hub
// drops instead of blocking.
func (h *EventsHandler) Serve(c echo.Context) error {
	wsHandler := websocket.Handler(func(conn *websocket.Conn) {
		defer conn.Close()

		hello, err := json.Marshal(helloMessage{
			Type:    "connected",
			Message: "Connected to Já Comprei WebSocket server",
		})
		if err != nil {
			return
		}
		if _, err := conn.Write(hello); err != nil {
			return
		}

		events, unsubscribe := h.broadcaster.Subscribe()
		defer unsubscribe()

		// Drain client frames so closes are noticed; inbound payloads are
		// ignored.
		done := make(chan struct{})
		go func() {
			defer close(done)
			buf := make([]byte, 512)
			for {
				if _, err := conn.Read(buf); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}

				payload, err := json.Marshal(event)
				if err != nil {
					h.logger.Error("Failed to encode order event", slog.Any("error", err))

					continue
				}
				if _, err := conn.Write(payload); err != nil {
					return
				}

			case <-done:
				return
			}
		}
	})

	wsHandler.ServeHTTP(c.Response(), c.Request())

	return nil
}
