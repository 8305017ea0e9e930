package report

// ReconcileRows merges freshly generated default rows with a user's prior
// rows so that numeric costs never go stale while human-authored text
// survives recomputation:
//
//   - empty prior means first-time initialization: defaults are returned
//     verbatim;
//   - a default row whose id is absent from prior was deleted by the user
//     and must not be resurrected;
//   - a default row present in prior is merged field-by-field: the user's
//     text wins where non-empty, but a numeric default cost always
//     overwrites whatever the user typed, while a descriptive default
//     yields to the user's value;
//   - prior rows with ids no default carries are user-added custom rows and
//     are appended unchanged.
//
// Re-running the merge on its own output is a no-op.
func ReconcileRows(defaults, prior []CostRow) []CostRow {
	if len(prior) == 0 {
		return defaults
	}

	priorByID := make(map[string]CostRow, len(prior))
	for _, row := range prior {
		priorByID[row.ID] = row
	}
	defaultIDs := make(map[string]struct{}, len(defaults))

	merged := make([]CostRow, 0, len(defaults))
	for _, def := range defaults {
		defaultIDs[def.ID] = struct{}{}
		p, kept := priorByID[def.ID]
		if !kept {
			// Deleted by the user; regeneration must not bring it back.
			continue
		}
		merged = append(merged, mergeRow(def, p))
	}

	// Custom rows keep their original relative order.
	for _, row := range prior {
		if _, isDefault := defaultIDs[row.ID]; !isDefault {
			merged = append(merged, row)
		}
	}
	return merged
}

// mergeRow merges one default row with its prior edit. Free-text fields are
// user-owned; the cost value follows the numeric-always-wins rule.
func mergeRow(def, prior CostRow) CostRow {
	out := def
	if prior.CostLabel != "" {
		out.CostLabel = prior.CostLabel
	}
	if prior.NatureOfCosts != "" {
		out.NatureOfCosts = prior.NatureOfCosts
	}
	if prior.CostSensitivity != "" {
		out.CostSensitivity = prior.CostSensitivity
	}
	if prior.ConfidenceScore != "" {
		out.ConfidenceScore = prior.ConfidenceScore
	}
	if prior.Description != "" {
		out.Description = prior.Description
	}

	// Numeric defaults always win: computed costs must never drift. Only a
	// descriptive default yields to the user's prior value.
	if !def.CostValue.IsNumeric() && !prior.CostValue.IsZero() {
		out.CostValue = prior.CostValue
	}
	return out
}

// Merge reconciles fresh default content with a user's prior content. Cost
// tables get row-level reconciliation; the assumptions, insights, terms, and
// Q&A lists plus the narrative are initialized from defaults once and belong
// to the user on every save after that, with no recomputation.
func Merge(defaults, prior *EditableContent) *EditableContent {
	if prior == nil {
		return defaults
	}

	return &EditableContent{
		LicensingRows:      ReconcileRows(defaults.LicensingRows, prior.LicensingRows),
		InfrastructureRows: ReconcileRows(defaults.InfrastructureRows, prior.InfrastructureRows),
		SupportRows:        ReconcileRows(defaults.SupportRows, prior.SupportRows),
		Assumptions:        prior.Assumptions,
		Insights:           prior.Insights,
		Terms:              prior.Terms,
		QA:                 prior.QA,
		Narrative:          prior.Narrative,
	}
}
