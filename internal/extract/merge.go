package extract

import "github.com/claimwise/claimwise/internal/model"

// Merge combines two partial extraction records with explicit precedence:
// an overlay (model) field replaces the base (heuristic) field only when it
// is present, so heuristics act as the baseline. Pure and total - no side
// effects, no failure mode.
func Merge(base, overlay model.RawExtraction) model.RawExtraction {
	out := base

	if overlay.ClaimID != "" {
		out.ClaimID = overlay.ClaimID
	}
	if overlay.CustomerName != "" {
		out.CustomerName = overlay.CustomerName
	}
	if overlay.PolicyNumber != "" {
		out.PolicyNumber = overlay.PolicyNumber
	}
	if overlay.IncidentDate != "" {
		out.IncidentDate = overlay.IncidentDate
	}
	if overlay.Damage != "" {
		out.Damage = overlay.Damage
	}
	if overlay.EstimatedCost != nil {
		out.EstimatedCost = overlay.EstimatedCost
	}
	if len(overlay.Sources) > 0 {
		out.Sources = overlay.Sources
	}
	if len(overlay.Conflicts) > 0 {
		out.Conflicts = overlay.Conflicts
	}
	// RawText keeps the heuristic baseline: it is the verbatim document
	// snapshot, not a model product
	if out.RawText == "" {
		out.RawText = overlay.RawText
	}

	return out
}
