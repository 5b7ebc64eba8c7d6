// Package delivery defines the contract every transport implementation satisfies.
package delivery

import "context"

// Delivery is a transport serving the application, started by main and
// stopped through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
