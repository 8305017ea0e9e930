package database

import (
	"time"

	"github.com/stratocost/stratocost/internal/common/cnst"

	"github.com/shopspring/decimal"
)

// Tenant owns zero or more analyses. Immutable except for status flips.
type Tenant struct {
	ID        string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string            `json:"name" gorm:"type:varchar(100);uniqueIndex"`
	Domain    string            `json:"domain" gorm:"type:varchar(255)"`
	Status    cnst.TenantStatus `json:"status" gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// User belongs to one tenant; admins bypass tenant isolation.
type User struct {
	ID        string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TenantID  string        `json:"tenantId" gorm:"type:varchar(36);index"`
	Email     string        `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Role      cnst.UserRole `json:"role" gorm:"type:varchar(16);not null;default:'USER'"`
	IsActive  bool          `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Analysis is the lifecycle root. The live inputs are one JSON document,
// superseded wholesale on every update; saved snapshots live in
// AnalysisVersion rows.
type Analysis struct {
	ID                   string              `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TenantID             string              `json:"tenantId" gorm:"type:varchar(36);index"`
	Status               cnst.AnalysisStatus `json:"status" gorm:"type:varchar(16);not null;default:'LIVE'"`
	Title                string              `json:"title" gorm:"type:varchar(255)"`
	CreatedBy            string              `json:"createdBy" gorm:"type:varchar(36)"`
	CurrentVersionNumber int                 `json:"currentVersionNumber" gorm:"not null;default:0"`
	Inputs               string              `json:"-" gorm:"type:text"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
	SavedAt              *time.Time          `json:"savedAt,omitempty"`
	LockedAt             *time.Time          `json:"lockedAt,omitempty"`
}

// AnalysisVersion is an immutable, append-only snapshot of inputs, results,
// and editable content at save time. Rows are never updated after creation.
type AnalysisVersion struct {
	ID              uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	AnalysisID      string    `json:"analysisId" gorm:"type:varchar(36);index;uniqueIndex:idx_analysis_version"`
	VersionNumber   int       `json:"versionNumber" gorm:"not null;uniqueIndex:idx_analysis_version"`
	CreatedBy       string    `json:"createdBy" gorm:"type:varchar(36)"`
	CreatedAt       time.Time `json:"createdAt"`
	Inputs          string    `json:"inputs" gorm:"type:text"`
	Results         string    `json:"results" gorm:"type:text"`
	EditableContent string    `json:"editableContent" gorm:"type:text"`
}

// PricingVersion scopes a set of pricing entries. At most one version is
// active per provider; publishing new prices means creating a new version,
// never editing an existing one.
type PricingVersion struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Provider  string    `json:"provider" gorm:"type:varchar(32);index"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

// PricingEntry is one priced tier within a pricing version.
type PricingEntry struct {
	ID               uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	PricingVersionID string          `json:"pricingVersionId" gorm:"type:varchar(36);index"`
	Provider         string          `json:"provider" gorm:"type:varchar(32)"`
	ServiceType      string          `json:"serviceType" gorm:"type:varchar(32)"`
	Tier             string          `json:"tier" gorm:"type:varchar(100)"`
	Region           string          `json:"region,omitempty" gorm:"type:varchar(64)"`
	UnitType         cnst.UnitType   `json:"unitType" gorm:"type:varchar(16)"`
	UnitPrice        decimal.Decimal `json:"unitPrice" gorm:"type:decimal(20,6)"`
	AnnualMultiplier decimal.Decimal `json:"annualMultiplier" gorm:"type:decimal(20,6)"`
}
