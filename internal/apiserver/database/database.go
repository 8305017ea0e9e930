package database

import (
	"context"

	"github.com/stratocost/stratocost/internal/common/cnst"
)

// Database defines the persistence operations of the analysis engine. It is
// injected into the service layer so tenant isolation and version
// immutability are testable without a real database. Implementations return
// gorm.ErrRecordNotFound for absent records; translating that into the
// user-facing error taxonomy is the service layer's job.
type Database interface {
	// Close closes the database connection.
	Close() error

	// CreateTenant creates a new tenant.
	CreateTenant(ctx context.Context, tenant *Tenant) error

	// GetTenant gets a tenant by id.
	GetTenant(ctx context.Context, id string) (*Tenant, error)

	// ListTenants lists all tenants.
	ListTenants(ctx context.Context) ([]*Tenant, error)

	// UpdateTenantStatus flips a tenant between ACTIVE and INACTIVE.
	UpdateTenantStatus(ctx context.Context, id string, status cnst.TenantStatus) error

	// CreateUser creates a new user.
	CreateUser(ctx context.Context, user *User) error

	// GetUser gets a user by id.
	GetUser(ctx context.Context, id string) (*User, error)

	// CreateAnalysis creates a new analysis.
	CreateAnalysis(ctx context.Context, analysis *Analysis) error

	// GetAnalysis gets an analysis by id.
	GetAnalysis(ctx context.Context, id string) (*Analysis, error)

	// UpdateAnalysis persists the mutable fields of an analysis.
	UpdateAnalysis(ctx context.Context, analysis *Analysis) error

	// ListAnalysesByTenant lists the analyses owned by one tenant.
	ListAnalysesByTenant(ctx context.Context, tenantID string) ([]*Analysis, error)

	// ListAnalyses lists all analyses across tenants.
	ListAnalyses(ctx context.Context) ([]*Analysis, error)

	// CreateAnalysisVersion appends an immutable version snapshot.
	CreateAnalysisVersion(ctx context.Context, version *AnalysisVersion) error

	// GetAnalysisVersion gets one version snapshot verbatim.
	GetAnalysisVersion(ctx context.Context, analysisID string, versionNumber int) (*AnalysisVersion, error)

	// ListAnalysisVersions lists an analysis's versions, oldest first.
	ListAnalysisVersions(ctx context.Context, analysisID string) ([]*AnalysisVersion, error)

	// NextVersionNumber returns max(version_number)+1 for an analysis,
	// starting at 1.
	NextVersionNumber(ctx context.Context, analysisID string) (int, error)

	// CreatePricingVersion creates a pricing version with its entries.
	CreatePricingVersion(ctx context.Context, version *PricingVersion, entries []*PricingEntry) error

	// ActivatePricingVersion makes a version the provider's active one,
	// deactivating any other.
	ActivatePricingVersion(ctx context.Context, provider, versionID string) error

	// GetActivePricingVersion gets the provider's active pricing version.
	GetActivePricingVersion(ctx context.Context, provider string) (*PricingVersion, error)

	// ListPricingEntries lists the entries of a pricing version.
	ListPricingEntries(ctx context.Context, versionID string) ([]*PricingEntry, error)
}
