// Package cache provides a snapshot cache for active pricing catalogs.
// Cached snapshots are immutable; activating a new pricing version
// invalidates the provider's key rather than mutating a cached catalog.
package cache

import (
	"context"

	"github.com/stratocost/stratocost/internal/pricing"
)

// Cache stores the active pricing catalog per provider.
type Cache interface {
	// Get returns the cached catalog for a provider, or ok=false on a miss.
	Get(ctx context.Context, provider string) (*pricing.Catalog, bool, error)

	// Set stores the catalog snapshot for a provider.
	Set(ctx context.Context, catalog *pricing.Catalog) error

	// Invalidate drops the cached snapshot for a provider.
	Invalidate(ctx context.Context, provider string) error

	// Close releases any underlying resources.
	Close() error
}
