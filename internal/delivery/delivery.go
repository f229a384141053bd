// Package delivery defines the contract shared by every transport frontend.
package delivery

import "context"

// Delivery is a serving frontend, such as the HTTP server. Serve blocks
// until the frontend stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
