package report

import (
	"fmt"

	"github.com/stratocost/stratocost/internal/calc"
	"github.com/stratocost/stratocost/internal/insights"
)

// CostRow is one editable line of a cost table. The id is stable across
// recomputation so user edits can be reconciled against regenerated defaults;
// deleting a row is expressed as absence of its id, not a tombstone.
type CostRow struct {
	ID              string    `json:"id"`
	CostLabel       string    `json:"costLabel"`
	CostValue       CostValue `json:"costValue"`
	NatureOfCosts   string    `json:"natureOfCosts"`
	CostSensitivity string    `json:"costSensitivity"`
	ConfidenceScore string    `json:"confidenceScore"`
	Description     string    `json:"description"`
}

// TermEntry is a glossary item.
type TermEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// QAEntry is a question-and-answer item.
type QAEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EditableContent is the report model a user sees and edits. Cost tables are
// reconciled row-by-row on every save; the free lists and narrative are
// populated from computed defaults once and user-owned from then on.
type EditableContent struct {
	LicensingRows      []CostRow `json:"licensingRows"`
	InfrastructureRows []CostRow `json:"infrastructureRows"`
	SupportRows        []CostRow `json:"supportRows"`

	Assumptions []string    `json:"assumptions"`
	Insights    []string    `json:"insights"`
	Terms       []TermEntry `json:"terms"`
	QA          []QAEntry   `json:"qa"`
	Narrative   string      `json:"narrative"`
}

// BuildDefaults generates the default editable content for a breakdown. Row
// ids are deterministic functions of what the row describes, never random,
// so regeneration after a recompute yields the same ids.
func BuildDefaults(b *calc.Breakdown, ins []insights.Insight) *EditableContent {
	c := &EditableContent{
		LicensingRows:      defaultLicensingRows(b),
		InfrastructureRows: defaultInfrastructureRows(b),
		SupportRows:        defaultSupportRows(b),
		Assumptions:        defaultAssumptions(b),
		Terms:              defaultTerms(),
		Narrative: fmt.Sprintf(
			"Estimated annual total cost of ownership is %s: %s licensing, %s metered infrastructure, and %s support.",
			b.GrandTotal.StringFixed(2), b.Licensing.Total.StringFixed(2),
			b.Metered.Total.StringFixed(2), b.Support.Total.StringFixed(2)),
	}
	for _, i := range ins {
		c.Insights = append(c.Insights, fmt.Sprintf("%s: %s", i.Title, i.Description))
	}
	return c
}

func defaultLicensingRows(b *calc.Breakdown) []CostRow {
	return []CostRow{
		{
			ID:              "lic-license",
			CostLabel:       "Platform licensing",
			CostValue:       Numeric(b.Licensing.LicenseCost),
			NatureOfCosts:   "Fixed",
			CostSensitivity: "LOW",
			ConfidenceScore: "95%",
			Description:     "License unit cost multiplied by instance count.",
		},
		{
			ID:              "lic-other",
			CostLabel:       "Ancillary licensing",
			CostValue:       Numeric(b.Licensing.OtherLicensing),
			NatureOfCosts:   "Fixed",
			CostSensitivity: "LOW",
			ConfidenceScore: "90%",
			Description:     "Flat ancillary licensing amount.",
		},
	}
}

func defaultInfrastructureRows(b *calc.Breakdown) []CostRow {
	rows := make([]CostRow, 0, len(b.Metered.Components)+1)
	for _, comp := range b.Metered.Components {
		row := CostRow{
			ID:              "infra-" + comp.ComponentID,
			CostLabel:       comp.TierName,
			CostValue:       Numeric(comp.Cost),
			NatureOfCosts:   "Variable",
			CostSensitivity: string(comp.Sensitivity),
			ConfidenceScore: "85%",
		}
		if row.CostLabel == "" {
			row.CostLabel = comp.ComponentID
		}
		if comp.PricingMiss {
			row.CostValue = Descriptive("Pricing unavailable, contributes 0")
			row.ConfidenceScore = "50%"
			row.Description = "No pricing entry found for the selected tier."
		}
		rows = append(rows, row)
	}
	s := b.Optimized()
	rows = append(rows, CostRow{
		ID:              "infra-optimized",
		CostLabel:       "Managed scenario impact",
		CostValue:       Descriptive(fmt.Sprintf("Impact: 30%% infrastructure savings (%s)", s.OptimizedInfrastructure.StringFixed(2))),
		NatureOfCosts:   "Scenario",
		CostSensitivity: "MEDIUM",
		ConfidenceScore: "70%",
		Description:     "Derived view applying fixed managed-service discount ratios.",
	})
	return rows
}

func defaultSupportRows(b *calc.Breakdown) []CostRow {
	return []CostRow{
		{
			ID:              "sup-services",
			CostLabel:       "Support & services",
			CostValue:       Numeric(b.Support.SupportServices),
			NatureOfCosts:   "Variable",
			CostSensitivity: "MEDIUM",
			ConfidenceScore: "85%",
			Description:     "Percentage of total architecture cost.",
		},
		{
			ID:              "sup-professional",
			CostLabel:       "Professional services",
			CostValue:       Numeric(b.Support.ProfessionalServices),
			NatureOfCosts:   "Fixed",
			CostSensitivity: "LOW",
			ConfidenceScore: "90%",
		},
		{
			ID:              "sup-cloud",
			CostLabel:       "Cloud support",
			CostValue:       Numeric(b.Support.CloudSupport),
			NatureOfCosts:   "Fixed",
			CostSensitivity: "LOW",
			ConfidenceScore: "90%",
		},
	}
}

func defaultAssumptions(b *calc.Breakdown) []string {
	assumptions := []string{
		"Unit prices reflect the provider's active pricing version at computation time.",
		"Annual figures assume steady-state utilization across the year.",
	}
	for _, m := range b.Misses {
		assumptions = append(assumptions, fmt.Sprintf(
			"No pricing entry was found for tier %q (component %s); its cost is assumed to be 0.", m.TierName, m.ComponentID))
	}
	return assumptions
}

func defaultTerms() []TermEntry {
	return []TermEntry{
		{Term: "TCO", Definition: "Total Cost of Ownership, the all-in annual cost figure this report estimates."},
		{Term: "Tier", Definition: "A named pricing option for a component."},
		{Term: "Annual multiplier", Definition: "Factor converting a unit price into an annualized figure."},
	}
}
