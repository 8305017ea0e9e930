package calc

import (
	"sort"

	"github.com/stratocost/stratocost/internal/common/cnst"
	"github.com/stratocost/stratocost/internal/pricing"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	sensitivityHighShare   = decimal.RequireFromString("0.20")
	sensitivityMediumShare = decimal.RequireFromString("0.10")
)

// ComputeComponentCost prices a single non-percentage component selection
// against its catalog entry. A selection with no tier chosen, or a required
// quantity left at zero, costs zero: "not yet configured" is indistinguishable
// from "free" here, and that is intentional.
func ComputeComponentCost(sel TierSelection, entry pricing.Entry) decimal.Decimal {
	if sel.SelectedTier == "" {
		return decimal.Zero
	}

	instances := decimal.NewFromInt(sel.Instances)

	switch entry.UnitType {
	case cnst.UnitTypeGBMonth:
		// Storage scales with both data volume and replica count.
		return entry.UnitPrice.Mul(sel.TotalDataGB).Mul(instances).Mul(entry.AnnualMultiplier).Round(2)
	case cnst.UnitTypeGB:
		// Egress scales with data volume only.
		return entry.UnitPrice.Mul(sel.TotalDataGB).Mul(entry.AnnualMultiplier).Round(2)
	default:
		return entry.UnitPrice.Mul(instances).Mul(entry.AnnualMultiplier).Round(2)
	}
}

// ComputePercentageCost prices a percentage-typed entry as a share of the
// total architecture cost. It must only be applied after all non-percentage
// component totals are final.
func ComputePercentageCost(entry pricing.Entry, totalArchitectureCost decimal.Decimal) decimal.Decimal {
	return entry.UnitPrice.Div(hundred).Mul(totalArchitectureCost).Round(2)
}

// ComputeLicensing prices the licensing side of the estimate. The ancillary
// licensing figure is a flat dollar amount.
func ComputeLicensing(in Inputs) LicensingCosts {
	license := in.LicenseUnitCost.Mul(decimal.NewFromInt(in.InstanceCount)).Round(2)
	other := in.OtherLicensingCost.Round(2)
	return LicensingCosts{
		LicenseCost:    license,
		OtherLicensing: other,
		Total:          license.Add(other),
	}
}

// Compute produces the full annual cost breakdown for a set of inputs
// against a pricing catalog snapshot. A catalog miss contributes zero to the
// totals and is recorded as a diagnostic; partial pricing data never blocks
// an estimate.
func Compute(in Inputs, catalog *pricing.Catalog) *Breakdown {
	b := &Breakdown{
		Licensing: ComputeLicensing(in),
	}

	type pendingPercentage struct {
		componentID string
		entry       pricing.Entry
	}
	var percentages []pendingPercentage

	// Deterministic component order regardless of map iteration.
	ids := make([]string, 0, len(in.TierSelections))
	for id := range in.TierSelections {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		sel := in.TierSelections[id]
		if sel.SelectedTier == "" {
			b.Metered.Components = append(b.Metered.Components, ComponentCost{
				ComponentID: id,
				Category:    cnst.CategoryInfrastructure,
				Cost:        decimal.Zero,
			})
			continue
		}

		entry, ok := catalog.Lookup(sel.SelectedTier)
		if !ok {
			b.Misses = append(b.Misses, Miss{ComponentID: id, TierName: sel.SelectedTier})
			b.Metered.Components = append(b.Metered.Components, ComponentCost{
				ComponentID: id,
				TierName:    sel.SelectedTier,
				Category:    cnst.CategoryInfrastructure,
				Cost:        decimal.Zero,
				PricingMiss: true,
			})
			continue
		}

		// Percentage entries are a tax on the architecture total, so they
		// can only be priced after every other component is final.
		if entry.UnitType == cnst.UnitTypePercentage {
			percentages = append(percentages, pendingPercentage{componentID: id, entry: entry})
			continue
		}

		cost := ComputeComponentCost(sel, entry)
		category := categoryOf(entry)
		b.Metered.Components = append(b.Metered.Components, ComponentCost{
			ComponentID: id,
			TierName:    sel.SelectedTier,
			Category:    category,
			Cost:        cost,
		})
		b.addToCategory(category, cost)
	}

	b.Metered.Total = b.Metered.Compute.
		Add(b.Metered.Infrastructure).
		Add(b.Metered.Storage).
		Add(b.Metered.Egress)
	b.TotalArchitectureCost = b.Metered.Total

	for _, p := range percentages {
		b.Support.SupportServices = b.Support.SupportServices.
			Add(ComputePercentageCost(p.entry, b.TotalArchitectureCost))
	}
	b.Support.ProfessionalServices = in.ProfessionalServicesCost.Round(2)
	b.Support.CloudSupport = in.CloudSupportCost.Round(2)
	b.Support.Total = b.Support.SupportServices.
		Add(b.Support.ProfessionalServices).
		Add(b.Support.CloudSupport)

	b.GrandTotal = b.Licensing.Total.Add(b.Metered.Total).Add(b.Support.Total)

	gradeSensitivity(b)
	return b
}

func (b *Breakdown) addToCategory(category cnst.CostCategory, cost decimal.Decimal) {
	switch category {
	case cnst.CategoryCompute:
		b.Metered.Compute = b.Metered.Compute.Add(cost)
	case cnst.CategoryStorage:
		b.Metered.Storage = b.Metered.Storage.Add(cost)
	case cnst.CategoryEgress:
		b.Metered.Egress = b.Metered.Egress.Add(cost)
	default:
		b.Metered.Infrastructure = b.Metered.Infrastructure.Add(cost)
	}
}

func categoryOf(entry pricing.Entry) cnst.CostCategory {
	switch entry.ServiceType {
	case "compute":
		return cnst.CategoryCompute
	case "storage":
		return cnst.CategoryStorage
	case "egress":
		return cnst.CategoryEgress
	default:
		return cnst.CategoryInfrastructure
	}
}

// gradeSensitivity grades each component by its share of the architecture
// total.
func gradeSensitivity(b *Breakdown) {
	for i := range b.Metered.Components {
		c := &b.Metered.Components[i]
		if b.TotalArchitectureCost.IsZero() || !c.Cost.IsPositive() {
			c.Sensitivity = cnst.SensitivityLow
			continue
		}
		share := c.Cost.Div(b.TotalArchitectureCost)
		switch {
		case share.GreaterThanOrEqual(sensitivityHighShare):
			c.Sensitivity = cnst.SensitivityHigh
		case share.GreaterThanOrEqual(sensitivityMediumShare):
			c.Sensitivity = cnst.SensitivityMedium
		default:
			c.Sensitivity = cnst.SensitivityLow
		}
	}
}
