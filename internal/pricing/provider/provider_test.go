package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stratocost/stratocost/internal/apiserver/database"
	"github.com/stratocost/stratocost/internal/common/cnst"
	"github.com/stratocost/stratocost/internal/common/errorx"
	"github.com/stratocost/stratocost/internal/pricing/cache"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedPricing(t *testing.T, db database.Database) {
	t.Helper()
	ctx := context.Background()
	v := &database.PricingVersion{ID: "pv-1", Provider: "gcp", Name: "2026-Q1", CreatedAt: time.Now()}
	entries := []*database.PricingEntry{
		{ServiceType: "compute", Tier: "vCPU", UnitType: cnst.UnitTypeHourly,
			UnitPrice: decimal.RequireFromString("0.02"), AnnualMultiplier: decimal.NewFromInt(8760)},
	}
	require.NoError(t, db.CreatePricingVersion(ctx, v, entries))
	require.NoError(t, db.ActivatePricingVersion(ctx, "gcp", "pv-1"))
}

func TestProvider_CatalogFromStore(t *testing.T) {
	db := database.NewMemory()
	seedPricing(t, db)
	p := New(db, cache.NewMemoryCache(time.Minute), zap.NewNop())

	catalog, err := p.Catalog(context.Background(), "gcp")
	require.NoError(t, err)
	assert.Equal(t, "pv-1", catalog.VersionID())

	_, ok := catalog.Lookup("vCPU")
	assert.True(t, ok)
}

func TestProvider_CatalogCached(t *testing.T) {
	db := database.NewMemory()
	seedPricing(t, db)
	c := cache.NewMemoryCache(time.Minute)
	p := New(db, c, zap.NewNop())
	ctx := context.Background()

	first, err := p.Catalog(ctx, "gcp")
	require.NoError(t, err)

	// Activate a new version without invalidating: the stale snapshot is
	// served until the cache entry is dropped.
	require.NoError(t, db.CreatePricingVersion(ctx, &database.PricingVersion{ID: "pv-2", Provider: "gcp", CreatedAt: time.Now()}, nil))
	require.NoError(t, db.ActivatePricingVersion(ctx, "gcp", "pv-2"))

	cached, err := p.Catalog(ctx, "gcp")
	require.NoError(t, err)
	assert.Equal(t, first.VersionID(), cached.VersionID())

	p.Invalidate(ctx, "gcp")
	fresh, err := p.Catalog(ctx, "gcp")
	require.NoError(t, err)
	assert.Equal(t, "pv-2", fresh.VersionID())
}

func TestProvider_NoActiveVersion(t *testing.T) {
	p := New(database.NewMemory(), cache.NewMemoryCache(time.Minute), zap.NewNop())
	_, err := p.Catalog(context.Background(), "aws")
	assert.ErrorIs(t, err, errorx.ErrPricingVersionNotFound)
}
