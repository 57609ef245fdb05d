// Package delivery defines the contract every transport implementation
// satisfies so the composition root can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport endpoint, such as an HTTP server.
type Delivery interface {
	// Serve blocks, handling requests until the context is canceled or
	// the server is shut down.
	Serve(ctx context.Context) error
}
