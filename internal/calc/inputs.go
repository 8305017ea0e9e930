// Package calc turns an analysis's raw inputs into an itemized annual cost
// breakdown, given an immutable pricing catalog snapshot. Every function in
// this package is pure; malformed or negative numbers are propagated rather
// than rejected, validation belongs to the caller.
package calc

import (
	"github.com/shopspring/decimal"
)

// TierSelection is one component's chosen pricing tier and quantities.
type TierSelection struct {
	SelectedTier string          `json:"selectedTier"`
	Instances    int64           `json:"instances"`
	TotalDataGB  decimal.Decimal `json:"totalDataGB"`
}

// Inputs is the flat set of figures an estimate is computed from. Exactly one
// live copy exists per analysis and it is superseded wholesale on each update.
type Inputs struct {
	Provider           string `json:"provider"`
	HostingEnvironment string `json:"hostingEnvironment"`

	// Licensing. OtherLicensingCost is a flat dollar amount, not a
	// percentage, despite its historical naming upstream.
	LicenseUnitCost    decimal.Decimal `json:"licenseUnitCost"`
	InstanceCount      int64           `json:"instanceCount"`
	OtherLicensingCost decimal.Decimal `json:"otherLicensingCost"`

	// Flat support figures. The percentage-based support & services amount
	// comes from a tier selection, not from these.
	ProfessionalServicesCost decimal.Decimal `json:"professionalServicesCost"`
	CloudSupportCost         decimal.Decimal `json:"cloudSupportCost"`

	// TierSelections is keyed by component id.
	TierSelections map[string]TierSelection `json:"tierSelections"`
}
