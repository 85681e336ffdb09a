// Package service contains the business logic of the trip planner client.
// Services validate inputs, enforce the flow rules, and orchestrate calls to
// the remote API and the device binding store. No SQL and no HTTP live here;
// services depend on interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/repo"
)

// BindingKey is the storage key holding the trip bound to deviceID.
func BindingKey(deviceID string) string {
	if deviceID == "" {
		deviceID = "local"
	}
	return deviceID + ":current-trip"
}

// DeviceBinding remembers the one trip this device is tracking.
// Save always overwrites, so a device is bound to zero or one trip.
type DeviceBinding struct {
	store repo.BindingStore
	key   string

	// mu serialises access; the HTTP surface calls in from many goroutines.
	mu sync.Mutex
}

// NewDeviceBinding constructs a DeviceBinding for deviceID over store.
func NewDeviceBinding(store repo.BindingStore, deviceID string) *DeviceBinding {
	return &DeviceBinding{store: store, key: BindingKey(deviceID)}
}

// Save binds the device to tripID, replacing any previous binding.
// An empty tripID is a programming error and returns domain.ErrInvariant.
func (b *DeviceBinding) Save(ctx context.Context, tripID string) error {
	if tripID == "" {
		return fmt.Errorf("service.DeviceBinding.Save: %w: empty trip id", domain.ErrInvariant)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.store.Store(ctx, b.key, tripID); err != nil {
		return fmt.Errorf("service.DeviceBinding.Save: %w", err)
	}
	return nil
}

// Get returns the bound trip id. ok is false when the device is unbound.
func (b *DeviceBinding) Get(ctx context.Context) (tripID string, ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tripID, err = b.store.Load(ctx, b.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("service.DeviceBinding.Get: %w", err)
	}
	return tripID, true, nil
}

// Remove clears the binding. Removing when unbound is not an error.
func (b *DeviceBinding) Remove(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.store.Delete(ctx, b.key); err != nil {
		return fmt.Errorf("service.DeviceBinding.Remove: %w", err)
	}
	return nil
}
