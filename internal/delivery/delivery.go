// Package delivery defines the contract every transport-facing server
// (HTTP, websocket, workers) fulfils so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running server started by the application container.
type Delivery interface {
	Serve(ctx context.Context) error
}
