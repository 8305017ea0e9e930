// Package provider resolves a cloud provider's active pricing catalog from
// the store, with a snapshot cache in front.
package provider

import (
	"context"
	"errors"

	"github.com/stratocost/stratocost/internal/apiserver/database"
	"github.com/stratocost/stratocost/internal/common/errorx"
	"github.com/stratocost/stratocost/internal/pricing"
	"github.com/stratocost/stratocost/internal/pricing/cache"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Provider loads active pricing catalogs. Catalogs are immutable snapshots;
// concurrent readers never observe a partially updated one.
type Provider struct {
	db     database.Database
	cache  cache.Cache
	logger *zap.Logger
}

// New creates a new catalog provider
func New(db database.Database, c cache.Cache, logger *zap.Logger) *Provider {
	return &Provider{
		db:     db,
		cache:  c,
		logger: logger,
	}
}

// Catalog returns the provider's active pricing catalog, from cache when
// possible. A cache failure degrades to a store read; only a missing active
// pricing version is an error.
func (p *Provider) Catalog(ctx context.Context, providerName string) (*pricing.Catalog, error) {
	if cached, ok, err := p.cache.Get(ctx, providerName); err != nil {
		p.logger.Warn("pricing cache read failed, falling back to store",
			zap.String("provider", providerName), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	version, err := p.db.GetActivePricingVersion(ctx, providerName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrPricingVersionNotFound.WithDetail("provider", providerName)
		}
		return nil, err
	}

	rows, err := p.db.ListPricingEntries(ctx, version.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]pricing.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, pricing.Entry{
			ServiceType:      r.ServiceType,
			Tier:             r.Tier,
			Region:           r.Region,
			UnitType:         r.UnitType,
			UnitPrice:        r.UnitPrice,
			AnnualMultiplier: r.AnnualMultiplier,
		})
	}

	catalog := pricing.NewCatalog(providerName, version.ID, entries)
	if err := p.cache.Set(ctx, catalog); err != nil {
		p.logger.Warn("pricing cache write failed",
			zap.String("provider", providerName), zap.Error(err))
	}
	return catalog, nil
}

// Invalidate drops the cached snapshot, forcing the next read to see the
// newly activated pricing version.
func (p *Provider) Invalidate(ctx context.Context, providerName string) {
	if err := p.cache.Invalidate(ctx, providerName); err != nil {
		p.logger.Warn("pricing cache invalidation failed",
			zap.String("provider", providerName), zap.Error(err))
	}
}
