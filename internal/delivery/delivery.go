// Package delivery defines the transport-agnostic contract for servers started by main.
package delivery

import "context"

// Delivery is a server that blocks in Serve until it is stopped.
type Delivery interface {
	Serve(ctx context.Context) error
}
