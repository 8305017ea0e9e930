package dto

import (
	"time"

	"github.com/stratocost/stratocost/internal/common/cnst"

	"github.com/shopspring/decimal"
)

// PricingEntryInput is one priced tier in a new pricing version.
type PricingEntryInput struct {
	ServiceType      string          `json:"serviceType" binding:"required"`
	Tier             string          `json:"tier" binding:"required"`
	Region           string          `json:"region"`
	UnitType         cnst.UnitType   `json:"unitType" binding:"required"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	AnnualMultiplier decimal.Decimal `json:"annualMultiplier"`
}

// CreatePricingVersionRequest publishes a new immutable pricing version.
// Creation does not activate it.
type CreatePricingVersionRequest struct {
	Provider string              `json:"provider" binding:"required"`
	Name     string              `json:"name" binding:"required"`
	Entries  []PricingEntryInput `json:"entries" binding:"required"`
}

// PricingVersionResponse describes a pricing version.
type PricingVersionResponse struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
