// Package delivery holds the entry points that drive the use cases.
package delivery

import "context"

// Delivery is a long-running front end started by the application. Serve
// blocks until the front end stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
