package report

import (
	"strings"
	"testing"

	"github.com/stratocost/stratocost/internal/calc"
	"github.com/stratocost/stratocost/internal/common/cnst"
	"github.com/stratocost/stratocost/internal/insights"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBreakdown() *calc.Breakdown {
	b := &calc.Breakdown{}
	b.Licensing.LicenseCost = decimal.NewFromInt(5000)
	b.Licensing.OtherLicensing = decimal.NewFromInt(200)
	b.Licensing.Total = decimal.NewFromInt(5200)
	b.Metered.Components = []calc.ComponentCost{
		{ComponentID: "compute", TierName: "vCPU", Category: cnst.CategoryCompute, Cost: decimal.NewFromInt(17520), Sensitivity: cnst.SensitivityHigh},
		{ComponentID: "mystery", TierName: "Unpriced", Category: cnst.CategoryInfrastructure, PricingMiss: true},
	}
	b.Metered.Compute = decimal.NewFromInt(17520)
	b.Metered.Total = decimal.NewFromInt(17520)
	b.TotalArchitectureCost = b.Metered.Total
	b.Support.SupportServices = decimal.NewFromInt(876)
	b.Support.Total = decimal.NewFromInt(876)
	b.GrandTotal = decimal.NewFromInt(23596)
	b.Misses = []calc.Miss{{ComponentID: "mystery", TierName: "Unpriced"}}
	return b
}

func TestBuildDefaults_StableRowIDs(t *testing.T) {
	first := BuildDefaults(sampleBreakdown(), nil)
	second := BuildDefaults(sampleBreakdown(), nil)

	idsOf := func(rows []CostRow) []string {
		ids := make([]string, len(rows))
		for i, r := range rows {
			ids[i] = r.ID
		}
		return ids
	}
	assert.Equal(t, idsOf(first.InfrastructureRows), idsOf(second.InfrastructureRows))
	assert.Contains(t, idsOf(first.InfrastructureRows), "infra-compute")
	assert.Contains(t, idsOf(first.LicensingRows), "lic-license")
	assert.Contains(t, idsOf(first.SupportRows), "sup-services")
}

func TestBuildDefaults_NumericRowsCarryComputedAmounts(t *testing.T) {
	c := BuildDefaults(sampleBreakdown(), nil)

	require.NotEmpty(t, c.LicensingRows)
	assert.True(t, c.LicensingRows[0].CostValue.IsNumeric())
	assert.True(t, c.LicensingRows[0].CostValue.Amount.Equal(decimal.NewFromInt(5000)))
}

func TestBuildDefaults_ScenarioRowIsDescriptive(t *testing.T) {
	c := BuildDefaults(sampleBreakdown(), nil)

	var found bool
	for _, row := range c.InfrastructureRows {
		if row.ID == "infra-optimized" {
			found = true
			assert.Equal(t, ValueDescriptive, row.CostValue.Kind)
			assert.Contains(t, row.CostValue.Text, "Impact:")
		}
	}
	assert.True(t, found)
}

func TestBuildDefaults_PricingMissSurfaced(t *testing.T) {
	c := BuildDefaults(sampleBreakdown(), nil)

	var missRow *CostRow
	for i := range c.InfrastructureRows {
		if c.InfrastructureRows[i].ID == "infra-mystery" {
			missRow = &c.InfrastructureRows[i]
		}
	}
	require.NotNil(t, missRow)
	assert.Equal(t, ValueDescriptive, missRow.CostValue.Kind)

	// The miss also lands in the assumptions list.
	var inAssumptions bool
	for _, a := range c.Assumptions {
		if strings.Contains(a, "Unpriced") {
			inAssumptions = true
		}
	}
	assert.True(t, inAssumptions)
}

func TestBuildDefaults_InsightsBecomeListEntries(t *testing.T) {
	ins := []insights.Insight{{Title: "Compute dominates total cost", Description: "details"}}
	c := BuildDefaults(sampleBreakdown(), ins)
	require.Len(t, c.Insights, 1)
	assert.Contains(t, c.Insights[0], "Compute dominates total cost")
}
