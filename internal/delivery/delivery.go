// Package delivery defines the contract every transport endpoint fulfills.
package delivery

import "context"

// Delivery is a long-running endpoint (HTTP server, worker, consumer)
// whose lifecycle is managed by fx. Serve blocks until shutdown.
type Delivery interface {
	Serve(ctx context.Context) error
}
