// Package repo contains the device-local persistence for the trip planner.
// The only thing a device persists is its binding to one trip: a single key
// holding a trip id. Each backend lives in its own file and implements
// BindingStore. No business logic lives here.
package repo

import "context"

// BindingStore is a key-value store for device bindings.
// The service layer depends on this interface, not a concrete backend, which
// keeps the binding rules testable with the in-memory store.
type BindingStore interface {
	// Load returns the trip id stored under key.
	// Returns domain.ErrNotFound if nothing is stored.
	Load(ctx context.Context, key string) (string, error)

	// Store writes tripID under key, replacing any previous value.
	Store(ctx context.Context, key, tripID string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
