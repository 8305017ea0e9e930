// Package insights derives rule-based warnings and recommendations from a
// computed cost breakdown. Evaluation is pure and deterministic: rules are
// independent, order-insensitive, and re-running on identical input yields
// identical output.
package insights

import (
	"fmt"
	"sort"

	"github.com/stratocost/stratocost/internal/calc"
	"github.com/stratocost/stratocost/internal/common/cnst"

	"github.com/shopspring/decimal"
)

// InsightType classifies an insight.
type InsightType string

const (
	TypeWarning        InsightType = "WARNING"
	TypeInfo           InsightType = "INFO"
	TypeRecommendation InsightType = "RECOMMENDATION"
)

// Severity ranks an insight.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

var severityRank = map[Severity]int{
	SeverityHigh:   3,
	SeverityMedium: 2,
	SeverityLow:    1,
}

// Insight is a derived, ephemeral finding. Insights are recomputed on every
// evaluation and never persisted on their own; a caller may choose to surface
// one as an editable report row.
type Insight struct {
	ID          string      `json:"id"`
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Severity    Severity    `json:"severity"`
}

type rule func(b *calc.Breakdown) *Insight

var rules = []rule{
	computeDominatesRule,
	licensingShareRule,
	highSensitivityRule,
	egressHeavyRule,
	supportShareRule,
	optimizationRule,
}

var (
	half           = decimal.RequireFromString("0.5")
	thirtyPercent  = decimal.RequireFromString("0.3")
	quarter        = decimal.RequireFromString("0.25")
	tenthOfMetered = decimal.RequireFromString("0.1")
	fifteenPercent = decimal.RequireFromString("0.15")
)

// Evaluate runs every rule against the breakdown and returns the findings
// sorted by severity descending, then by id for a stable order.
func Evaluate(b *calc.Breakdown) []Insight {
	var out []Insight
	for _, r := range rules {
		if ins := r(b); ins != nil {
			out = append(out, *ins)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if severityRank[out[i].Severity] != severityRank[out[j].Severity] {
			return severityRank[out[i].Severity] > severityRank[out[j].Severity]
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func computeDominatesRule(b *calc.Breakdown) *Insight {
	if b.GrandTotal.IsZero() || !b.Metered.Compute.Div(b.GrandTotal).GreaterThan(half) {
		return nil
	}
	return &Insight{
		ID:       "compute-dominates",
		Type:     TypeWarning,
		Title:    "Compute dominates total cost",
		Severity: SeverityHigh,
		Description: fmt.Sprintf(
			"Compute accounts for more than half of the annual total (%s of %s). Committed-use discounts or rightsizing would have outsized impact.",
			b.Metered.Compute.StringFixed(2), b.GrandTotal.StringFixed(2)),
	}
}

func licensingShareRule(b *calc.Breakdown) *Insight {
	if b.GrandTotal.IsZero() || !b.Licensing.Total.Div(b.GrandTotal).LessThan(thirtyPercent) {
		return nil
	}
	return &Insight{
		ID:       "licensing-minor-share",
		Type:     TypeInfo,
		Title:    "Licensing is a minor cost driver",
		Severity: SeverityLow,
		Description: fmt.Sprintf(
			"Licensing is below 30%% of the annual total (%s of %s); infrastructure choices drive this estimate.",
			b.Licensing.Total.StringFixed(2), b.GrandTotal.StringFixed(2)),
	}
}

func highSensitivityRule(b *calc.Breakdown) *Insight {
	var high int
	for _, c := range b.Metered.Components {
		if c.Sensitivity == cnst.SensitivityHigh {
			high++
		}
	}
	if high < 3 {
		return nil
	}
	return &Insight{
		ID:       "many-high-sensitivity",
		Type:     TypeRecommendation,
		Title:    "Several components sway the total",
		Severity: SeverityMedium,
		Description: fmt.Sprintf(
			"%d components are graded high sensitivity. Validate their sizing assumptions before committing to this estimate.", high),
	}
}

func egressHeavyRule(b *calc.Breakdown) *Insight {
	if b.Metered.Total.IsZero() || !b.Metered.Egress.Div(b.Metered.Total).GreaterThan(tenthOfMetered) {
		return nil
	}
	return &Insight{
		ID:       "egress-heavy",
		Type:     TypeWarning,
		Title:    "Egress is a significant share of infrastructure",
		Severity: SeverityMedium,
		Description: fmt.Sprintf(
			"Data transfer out is %s of %s metered infrastructure. Co-locating consumers with the platform would reduce it.",
			b.Metered.Egress.StringFixed(2), b.Metered.Total.StringFixed(2)),
	}
}

func supportShareRule(b *calc.Breakdown) *Insight {
	if b.GrandTotal.IsZero() || !b.Support.Total.Div(b.GrandTotal).GreaterThan(quarter) {
		return nil
	}
	return &Insight{
		ID:       "support-heavy",
		Type:     TypeInfo,
		Title:    "Support exceeds a quarter of total cost",
		Severity: SeverityMedium,
		Description: fmt.Sprintf(
			"Support and services amount to %s of %s. Review the selected support plan against actual usage.",
			b.Support.Total.StringFixed(2), b.GrandTotal.StringFixed(2)),
	}
}

func optimizationRule(b *calc.Breakdown) *Insight {
	if b.GrandTotal.IsZero() {
		return nil
	}
	s := b.Optimized()
	if !s.Savings.Div(b.GrandTotal).GreaterThan(fifteenPercent) {
		return nil
	}
	return &Insight{
		ID:       "managed-savings",
		Type:     TypeRecommendation,
		Title:    "Managed scenario offers material savings",
		Severity: SeverityHigh,
		Description: fmt.Sprintf(
			"The managed/optimized scenario saves %s annually (%s vs %s).",
			s.Savings.StringFixed(2), s.OptimizedTotal.StringFixed(2), b.GrandTotal.StringFixed(2)),
	}
}
