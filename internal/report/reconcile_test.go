package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRows() []CostRow {
	return []CostRow{
		{
			ID:              "infra-compute",
			CostLabel:       "vCPU (with 3-yr CUD)",
			CostValue:       Numeric(decimal.NewFromInt(17520)),
			NatureOfCosts:   "Variable",
			CostSensitivity: "HIGH",
			ConfidenceScore: "85%",
		},
		{
			ID:              "infra-storage",
			CostLabel:       "Block Storage SSD",
			CostValue:       Numeric(decimal.NewFromInt(240)),
			NatureOfCosts:   "Variable",
			CostSensitivity: "LOW",
			ConfidenceScore: "85%",
		},
		{
			ID:              "infra-optimized",
			CostLabel:       "Managed scenario impact",
			CostValue:       Descriptive("Impact: 30% infrastructure savings"),
			NatureOfCosts:   "Scenario",
			CostSensitivity: "MEDIUM",
			ConfidenceScore: "70%",
		},
	}
}

func TestReconcileRows_FirstInitialization(t *testing.T) {
	defaults := defaultRows()
	assert.Equal(t, defaults, ReconcileRows(defaults, nil))
	assert.Equal(t, defaults, ReconcileRows(defaults, []CostRow{}))
}

func TestReconcileRows_DeletedRowStaysDeleted(t *testing.T) {
	defaults := defaultRows()
	// The user previously deleted the storage row.
	prior := []CostRow{defaults[0], defaults[2]}

	merged := ReconcileRows(defaults, prior)
	require.Len(t, merged, 2)
	for _, row := range merged {
		assert.NotEqual(t, "infra-storage", row.ID)
	}

	// Regenerating and reconciling again never resurrects it.
	again := ReconcileRows(defaultRows(), merged)
	require.Len(t, again, 2)
	for _, row := range again {
		assert.NotEqual(t, "infra-storage", row.ID)
	}
}

func TestReconcileRows_NumericDefaultAlwaysWins(t *testing.T) {
	defaults := defaultRows()
	prior := defaultRows()
	// The user hand-edited a computed cost; the edit must not survive.
	prior[0].CostValue = Numeric(decimal.NewFromInt(1))

	merged := ReconcileRows(defaults, prior)
	assert.True(t, merged[0].CostValue.Amount.Equal(decimal.NewFromInt(17520)))

	// Even a descriptive prior value loses to a numeric default.
	prior[0].CostValue = Descriptive("about twenty grand")
	merged = ReconcileRows(defaults, prior)
	assert.Equal(t, ValueNumeric, merged[0].CostValue.Kind)
	assert.True(t, merged[0].CostValue.Amount.Equal(decimal.NewFromInt(17520)))
}

func TestReconcileRows_DescriptiveDefaultIsSticky(t *testing.T) {
	defaults := defaultRows()
	prior := defaultRows()
	prior[2].CostValue = Descriptive("Impact: roughly a third off, per our negotiation")

	merged := ReconcileRows(defaults, prior)
	assert.Equal(t, "Impact: roughly a third off, per our negotiation", merged[2].CostValue.Text)
}

func TestReconcileRows_UserTextWinsWhenNonEmpty(t *testing.T) {
	defaults := defaultRows()
	prior := defaultRows()
	prior[0].Description = "Sized for the Q3 migration wave."
	prior[0].ConfidenceScore = "60%"
	prior[1].Description = "" // untouched, default (also empty) applies

	merged := ReconcileRows(defaults, prior)
	assert.Equal(t, "Sized for the Q3 migration wave.", merged[0].Description)
	assert.Equal(t, "60%", merged[0].ConfidenceScore)
	assert.Equal(t, "85%", merged[1].ConfidenceScore)
}

func TestReconcileRows_CustomRowsAppendedUnchanged(t *testing.T) {
	defaults := defaultRows()
	custom := CostRow{
		ID:        "custom-training",
		CostLabel: "Team training",
		CostValue: Numeric(decimal.NewFromInt(15000)),
	}
	prior := append(defaultRows(), custom)

	merged := ReconcileRows(defaults, prior)
	require.Len(t, merged, 4)
	assert.Equal(t, custom, merged[3])
}

func TestReconcileRows_Idempotent(t *testing.T) {
	defaults := defaultRows()
	prior := []CostRow{defaults[0], defaults[2], {ID: "custom-1", CostLabel: "Custom"}}
	prior[0].Description = "edited"
	prior[1].CostValue = Descriptive("Impact: custom impact text")

	once := ReconcileRows(defaults, prior)
	twice := ReconcileRows(defaults, once)
	assert.Equal(t, once, twice)
}

func TestMerge_NilPriorReturnsDefaults(t *testing.T) {
	defaults := &EditableContent{
		InfrastructureRows: defaultRows(),
		Assumptions:        []string{"a"},
		Narrative:          "n",
	}
	assert.Equal(t, defaults, Merge(defaults, nil))
}

func TestMerge_FreeListsAreUserOwned(t *testing.T) {
	defaults := &EditableContent{
		InfrastructureRows: defaultRows(),
		Assumptions:        []string{"regenerated assumption"},
		Insights:           []string{"regenerated insight"},
		Narrative:          "regenerated narrative",
	}
	prior := &EditableContent{
		InfrastructureRows: defaultRows(),
		Assumptions:        []string{"my own assumption"},
		Insights:           nil, // user deleted every insight
		Terms:              []TermEntry{{Term: "CUD", Definition: "Committed-use discount"}},
		QA:                 []QAEntry{{Question: "Why annual?", Answer: "Budget cycle."}},
		Narrative:          "my narrative",
	}

	merged := Merge(defaults, prior)
	assert.Equal(t, []string{"my own assumption"}, merged.Assumptions)
	assert.Nil(t, merged.Insights)
	assert.Equal(t, prior.Terms, merged.Terms)
	assert.Equal(t, prior.QA, merged.QA)
	assert.Equal(t, "my narrative", merged.Narrative)
}

func TestMerge_TablesReconciledListsNot(t *testing.T) {
	defaults := &EditableContent{InfrastructureRows: defaultRows()}
	prior := &EditableContent{InfrastructureRows: defaultRows()}
	prior.InfrastructureRows[0].CostValue = Numeric(decimal.NewFromInt(1))

	merged := Merge(defaults, prior)
	// Numeric non-drift holds through the content-level merge too.
	assert.True(t, merged.InfrastructureRows[0].CostValue.Amount.Equal(decimal.NewFromInt(17520)))
}
