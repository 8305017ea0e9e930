package calc

import (
	"testing"

	"github.com/stratocost/stratocost/internal/common/cnst"
	"github.com/stratocost/stratocost/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog() *pricing.Catalog {
	return pricing.NewCatalog("gcp", "pv-1", []pricing.Entry{
		{
			ServiceType:      "compute",
			Tier:             "vCPU (with 3-yr CUD)",
			UnitType:         cnst.UnitTypeHourly,
			UnitPrice:        dec("0.5"),
			AnnualMultiplier: decimal.NewFromInt(8760),
		},
		{
			ServiceType:      "infrastructure",
			Tier:             "Cluster Management",
			UnitType:         cnst.UnitTypeHourly,
			UnitPrice:        dec("0.10"),
			AnnualMultiplier: decimal.NewFromInt(8760),
		},
		{
			ServiceType:      "storage",
			Tier:             "Block Storage SSD",
			UnitType:         cnst.UnitTypeGBMonth,
			UnitPrice:        dec("0.1"),
			AnnualMultiplier: decimal.NewFromInt(12),
		},
		{
			ServiceType:      "egress",
			Tier:             "Data Transfer Out",
			UnitType:         cnst.UnitTypeGB,
			UnitPrice:        dec("0.08"),
			AnnualMultiplier: decimal.NewFromInt(12),
		},
		{
			ServiceType:      "support",
			Tier:             "Support & Services",
			UnitType:         cnst.UnitTypePercentage,
			UnitPrice:        decimal.NewFromInt(5),
			AnnualMultiplier: decimal.NewFromInt(1),
		},
	})
}

func TestComputeLicensing(t *testing.T) {
	// license_unit=1000, instances=5, ancillary_flat=200 → 5200
	got := ComputeLicensing(Inputs{
		LicenseUnitCost:    decimal.NewFromInt(1000),
		InstanceCount:      5,
		OtherLicensingCost: decimal.NewFromInt(200),
	})
	assert.True(t, got.Total.Equal(decimal.NewFromInt(5200)), got.Total.String())
}

func TestComputeComponentCost_Storage(t *testing.T) {
	// 0.1 per GB-month × 100 GB × 2 instances × 12 = 240
	entry := pricing.Entry{
		ServiceType:      "storage",
		UnitType:         cnst.UnitTypeGBMonth,
		UnitPrice:        dec("0.1"),
		AnnualMultiplier: decimal.NewFromInt(12),
	}
	sel := TierSelection{SelectedTier: "Block Storage SSD", Instances: 2, TotalDataGB: decimal.NewFromInt(100)}
	assert.True(t, ComputeComponentCost(sel, entry).Equal(decimal.NewFromInt(240)))
}

func TestComputeComponentCost_EgressIgnoresInstances(t *testing.T) {
	entry := pricing.Entry{
		ServiceType:      "egress",
		UnitType:         cnst.UnitTypeGB,
		UnitPrice:        dec("0.08"),
		AnnualMultiplier: decimal.NewFromInt(12),
	}
	sel := TierSelection{SelectedTier: "Data Transfer Out", Instances: 7, TotalDataGB: decimal.NewFromInt(100)}
	// 0.08 × 100 × 12 = 96, instances play no part
	assert.True(t, ComputeComponentCost(sel, entry).Equal(decimal.NewFromInt(96)))
}

func TestComputeComponentCost_NotConfiguredIsFree(t *testing.T) {
	entry := pricing.Entry{UnitType: cnst.UnitTypeHourly, UnitPrice: dec("1"), AnnualMultiplier: decimal.NewFromInt(8760)}

	// No tier chosen.
	assert.True(t, ComputeComponentCost(TierSelection{Instances: 3}, entry).IsZero())
	// Tier chosen but zero quantity.
	assert.True(t, ComputeComponentCost(TierSelection{SelectedTier: "x"}, entry).IsZero())
}

func TestComputeComponentCost_Idempotent(t *testing.T) {
	entry := pricing.Entry{UnitType: cnst.UnitTypeHourly, UnitPrice: dec("0.5"), AnnualMultiplier: decimal.NewFromInt(8760)}
	sel := TierSelection{SelectedTier: "vCPU", Instances: 4}
	first := ComputeComponentCost(sel, entry)
	second := ComputeComponentCost(sel, entry)
	assert.True(t, first.Equal(second))
}

func TestComputeComponentCost_NegativeInputsPropagate(t *testing.T) {
	entry := pricing.Entry{UnitType: cnst.UnitTypeHourly, UnitPrice: dec("1"), AnnualMultiplier: decimal.NewFromInt(1)}
	got := ComputeComponentCost(TierSelection{SelectedTier: "x", Instances: -3}, entry)
	assert.True(t, got.Equal(decimal.NewFromInt(-3)))
}

func TestComputePercentageCost(t *testing.T) {
	// 5 (meaning 5%) of 10000 = 500
	entry := pricing.Entry{UnitType: cnst.UnitTypePercentage, UnitPrice: decimal.NewFromInt(5)}
	got := ComputePercentageCost(entry, decimal.NewFromInt(10000))
	assert.True(t, got.Equal(decimal.NewFromInt(500)))
}

func baselineInputs() Inputs {
	return Inputs{
		Provider:                 "gcp",
		LicenseUnitCost:          decimal.NewFromInt(1000),
		InstanceCount:            5,
		OtherLicensingCost:       decimal.NewFromInt(200),
		ProfessionalServicesCost: decimal.NewFromInt(3000),
		CloudSupportCost:         decimal.NewFromInt(2000),
		TierSelections: map[string]TierSelection{
			"compute": {SelectedTier: "vCPU (with 3-yr CUD)", Instances: 4},
			"cluster": {SelectedTier: "GKE Cluster Management", Instances: 1},
			"storage": {SelectedTier: "Block Storage SSD", Instances: 2, TotalDataGB: decimal.NewFromInt(100)},
			"egress":  {SelectedTier: "Data Transfer Out", TotalDataGB: decimal.NewFromInt(500)},
			"support": {SelectedTier: "Support & Services", Instances: 1},
		},
	}
}

func TestCompute_FullBreakdown(t *testing.T) {
	b := Compute(baselineInputs(), testCatalog())

	// compute: 0.5 × 4 × 8760 = 17520
	assert.True(t, b.Metered.Compute.Equal(decimal.NewFromInt(17520)), b.Metered.Compute.String())
	// infrastructure: 0.10 × 1 × 8760 = 876
	assert.True(t, b.Metered.Infrastructure.Equal(decimal.NewFromInt(876)))
	// storage: 0.1 × 100 × 2 × 12 = 240
	assert.True(t, b.Metered.Storage.Equal(decimal.NewFromInt(240)))
	// egress: 0.08 × 500 × 12 = 480
	assert.True(t, b.Metered.Egress.Equal(decimal.NewFromInt(480)))

	wantArch := decimal.NewFromInt(17520 + 876 + 240 + 480)
	assert.True(t, b.TotalArchitectureCost.Equal(wantArch), b.TotalArchitectureCost.String())

	// support services: 5% of architecture total
	wantSupportSvc := wantArch.Mul(dec("0.05")).Round(2)
	assert.True(t, b.Support.SupportServices.Equal(wantSupportSvc), b.Support.SupportServices.String())

	wantSupport := wantSupportSvc.Add(decimal.NewFromInt(3000)).Add(decimal.NewFromInt(2000))
	assert.True(t, b.Support.Total.Equal(wantSupport))

	// total == licensing + metered + support, exactly
	want := b.Licensing.Total.Add(b.Metered.Total).Add(b.Support.Total)
	assert.True(t, b.GrandTotal.Equal(want))
	assert.Empty(t, b.Misses)
}

func TestCompute_PricingMissContributesZero(t *testing.T) {
	in := baselineInputs()
	in.TierSelections["mystery"] = TierSelection{SelectedTier: "Unpriced Tier", Instances: 3}

	base := Compute(baselineInputs(), testCatalog())
	b := Compute(in, testCatalog())

	require.Len(t, b.Misses, 1)
	assert.Equal(t, "mystery", b.Misses[0].ComponentID)
	assert.Equal(t, "Unpriced Tier", b.Misses[0].TierName)
	// The miss must not change any total.
	assert.True(t, b.GrandTotal.Equal(base.GrandTotal))
}

func TestCompute_Deterministic(t *testing.T) {
	a := Compute(baselineInputs(), testCatalog())
	b := Compute(baselineInputs(), testCatalog())
	assert.Equal(t, a, b)
}

func TestCompute_SensitivityGrades(t *testing.T) {
	b := Compute(baselineInputs(), testCatalog())

	grades := map[string]cnst.Sensitivity{}
	for _, c := range b.Metered.Components {
		grades[c.ComponentID] = c.Sensitivity
	}
	// compute dominates the architecture total
	assert.Equal(t, cnst.SensitivityHigh, grades["compute"])
	assert.Equal(t, cnst.SensitivityLow, grades["storage"])
}

func TestBreakdown_OptimizedScenario(t *testing.T) {
	b := Compute(baselineInputs(), testCatalog())
	s := b.Optimized()

	wantInfra := b.Metered.Total.Mul(dec("0.7")).Round(2)
	assert.True(t, s.OptimizedInfrastructure.Equal(wantInfra))

	// Cloud support alone is discounted to 60%; the percentage-derived
	// support services amount and professional services are unchanged.
	wantSupport := b.Support.SupportServices.
		Add(b.Support.ProfessionalServices).
		Add(b.Support.CloudSupport.Mul(dec("0.6")).Round(2))
	assert.True(t, s.OptimizedSupport.Equal(wantSupport))

	assert.True(t, s.Savings.Equal(b.GrandTotal.Sub(s.OptimizedTotal)))
	assert.True(t, s.Savings.IsPositive())
}

func TestCompute_EmptySelections(t *testing.T) {
	in := Inputs{
		LicenseUnitCost: decimal.NewFromInt(100),
		InstanceCount:   1,
	}
	b := Compute(in, testCatalog())
	assert.True(t, b.Metered.Total.IsZero())
	assert.True(t, b.Support.Total.IsZero())
	assert.True(t, b.GrandTotal.Equal(decimal.NewFromInt(100)))
}
