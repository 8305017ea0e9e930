package cnst

// AnalysisStatus represents the lifecycle state of an analysis
type AnalysisStatus string

const (
	// AnalysisStatusLive represents an unsaved, editable draft
	AnalysisStatusLive AnalysisStatus = "LIVE"
	// AnalysisStatusSaved represents an analysis with at least one version
	AnalysisStatusSaved AnalysisStatus = "SAVED"
	// AnalysisStatusLocked represents an analysis closed to mutation
	AnalysisStatusLocked AnalysisStatus = "LOCKED"
)

// UserRole represents the role of a user
type UserRole string

const (
	// RoleUser is a tenant-scoped user
	RoleUser UserRole = "USER"
	// RoleAdmin bypasses tenant isolation
	RoleAdmin UserRole = "ADMIN"
)

// TenantStatus represents whether a tenant is active
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "ACTIVE"
	TenantStatusInactive TenantStatus = "INACTIVE"
)

// UnitType represents how a pricing entry's unit price is applied
type UnitType string

const (
	// UnitTypeHourly is priced per instance-hour
	UnitTypeHourly UnitType = "hourly"
	// UnitTypeGBMonth is priced per GB-month (storage-like, scales with replicas)
	UnitTypeGBMonth UnitType = "gb_month"
	// UnitTypeGB is priced per GB transferred (egress-like)
	UnitTypeGB UnitType = "gb"
	// UnitTypePercentage is a percentage of the total architecture cost
	UnitTypePercentage UnitType = "percentage"
)

// CostCategory buckets a metered component cost in the breakdown
type CostCategory string

const (
	CategoryCompute        CostCategory = "compute"
	CategoryInfrastructure CostCategory = "infrastructure"
	CategoryStorage        CostCategory = "storage"
	CategoryEgress         CostCategory = "egress"
)

// Sensitivity grades how much a single line item sways the total
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "LOW"
	SensitivityMedium Sensitivity = "MEDIUM"
	SensitivityHigh   Sensitivity = "HIGH"
)
