// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running transport server (HTTP API, push worker).
// Serve blocks until the server stops; shutdown happens through fx lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
