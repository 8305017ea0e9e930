package calc

import (
	"github.com/stratocost/stratocost/internal/common/cnst"

	"github.com/shopspring/decimal"
)

// ComponentCost is one metered line item in the breakdown.
type ComponentCost struct {
	ComponentID string            `json:"componentId"`
	TierName    string            `json:"tierName"`
	Category    cnst.CostCategory `json:"category"`
	Cost        decimal.Decimal   `json:"cost"`
	Sensitivity cnst.Sensitivity  `json:"sensitivity"`
	PricingMiss bool              `json:"pricingMiss,omitempty"`
}

// LicensingCosts holds the licensing side of the estimate.
type LicensingCosts struct {
	LicenseCost    decimal.Decimal `json:"licenseCost"`
	OtherLicensing decimal.Decimal `json:"otherLicensing"`
	Total          decimal.Decimal `json:"total"`
}

// MeteredCosts holds the metered infrastructure side of the estimate.
type MeteredCosts struct {
	Compute        decimal.Decimal `json:"compute"`
	Infrastructure decimal.Decimal `json:"infrastructure"`
	Storage        decimal.Decimal `json:"storage"`
	Egress         decimal.Decimal `json:"egress"`
	Total          decimal.Decimal `json:"total"`
	Components     []ComponentCost `json:"components"`
}

// SupportCosts holds the support side of the estimate.
type SupportCosts struct {
	SupportServices      decimal.Decimal `json:"supportServices"`
	ProfessionalServices decimal.Decimal `json:"professionalServices"`
	CloudSupport         decimal.Decimal `json:"cloudSupport"`
	Total                decimal.Decimal `json:"total"`
}

// Miss records a pricing catalog miss. Misses never abort an estimate; the
// line item contributes zero and the miss is surfaced as a diagnostic.
type Miss struct {
	ComponentID string `json:"componentId"`
	TierName    string `json:"tierName"`
}

// Breakdown is the computed estimate. It is derived data: never hand-edited
// and never stored independently of the analysis version that produced it.
type Breakdown struct {
	Licensing LicensingCosts `json:"licensing"`
	Metered   MeteredCosts   `json:"metered"`
	Support   SupportCosts   `json:"support"`

	// TotalArchitectureCost is the sum of all non-support component costs,
	// the base the percentage-typed support tier is applied to.
	TotalArchitectureCost decimal.Decimal `json:"totalArchitectureCost"`

	GrandTotal decimal.Decimal `json:"grandTotal"`

	Misses []Miss `json:"misses,omitempty"`
}

// ScenarioComparison contrasts the baseline estimate with a managed/optimized
// scenario derived from the same inputs by fixed discount ratios.
type ScenarioComparison struct {
	BaselineTotal           decimal.Decimal `json:"baselineTotal"`
	OptimizedInfrastructure decimal.Decimal `json:"optimizedInfrastructure"`
	OptimizedSupport        decimal.Decimal `json:"optimizedSupport"`
	OptimizedTotal          decimal.Decimal `json:"optimizedTotal"`
	Savings                 decimal.Decimal `json:"savings"`
}

var (
	infraDiscountRatio        = decimal.RequireFromString("0.7") // 30% infrastructure savings
	cloudSupportDiscountRatio = decimal.RequireFromString("0.6") // 40% cloud support savings
)

// Optimized derives the managed/optimized scenario from the baseline.
// Infrastructure is discounted to 70%, the cloud-support input alone to 60%;
// licensing, professional services, and the percentage-derived support
// services amount are unchanged.
func (b *Breakdown) Optimized() ScenarioComparison {
	infra := b.Metered.Total.Mul(infraDiscountRatio).Round(2)
	cloudSupport := b.Support.CloudSupport.Mul(cloudSupportDiscountRatio).Round(2)
	support := b.Support.SupportServices.Add(b.Support.ProfessionalServices).Add(cloudSupport)

	optimized := b.Licensing.Total.Add(infra).Add(support)
	return ScenarioComparison{
		BaselineTotal:           b.GrandTotal,
		OptimizedInfrastructure: infra,
		OptimizedSupport:        support,
		OptimizedTotal:          optimized,
		Savings:                 b.GrandTotal.Sub(optimized),
	}
}
