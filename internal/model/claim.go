package model

// RawExtraction is a partial claim record produced by one extractor.
// Every field is optional: the heuristic extractor fills what its patterns
// match, the model extractor fills what the model returns. EstimatedCost is
// untyped because model output may carry it as a number or a string.
type RawExtraction struct {
	ClaimID       string   `json:"claim_id,omitempty"`
	CustomerName  string   `json:"customer_name,omitempty"`
	PolicyNumber  string   `json:"policy_number,omitempty"`
	IncidentDate  string   `json:"incident_date,omitempty"` // ISO-8601 date
	Damage        string   `json:"damage,omitempty"`
	EstimatedCost any      `json:"estimated_cost,omitempty"`
	Sources       []string `json:"sources,omitempty"`
	Conflicts     []string `json:"conflicts,omitempty"`
	RawText       string   `json:"raw_text,omitempty"`
}

// CanonicalClaim is the merged, normalized claim record.
// Invariants: ClaimID is non-empty, string fields are trimmed,
// SourceConflicts is non-nil, and EstimatedCost is a float64 when the raw
// value was coercible (the raw value is preserved unchanged otherwise).
type CanonicalClaim struct {
	ClaimID         string   `json:"claim_id"`
	CustomerName    string   `json:"customer_name,omitempty"`
	PolicyNumber    string   `json:"policy_number,omitempty"`
	IncidentDate    string   `json:"incident_date,omitempty"`
	Damage          string   `json:"damage,omitempty"`
	EstimatedCost   any      `json:"estimated_cost,omitempty"`
	Sources         []string `json:"sources,omitempty"`
	SourceConflicts []string `json:"source_conflicts"`
	RawText         string   `json:"raw_text,omitempty"`
}

// CostValue returns the estimated cost as a number when coercion succeeded.
func (c *CanonicalClaim) CostValue() (float64, bool) {
	switch v := c.EstimatedCost.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// RuleID identifies a rule in the rulebook. The set is closed: new rules are
// added as new identifiers, existing ones are never reinterpreted.
type RuleID string

const (
	RulePolicyActive    RuleID = "policy_active"    // policy active at incident date
	RuleWithinLimits    RuleID = "within_limits"    // cost within coverage limit
	RuleCoveredIncident RuleID = "covered_incident" // advisory, model-evaluated only
	RuleNoConflict      RuleID = "no_conflict"      // advisory, model-evaluated only
)

// KnownRule reports whether id is part of the rulebook. Model output is
// filtered through this so typos cannot mint new rule categories.
func KnownRule(id RuleID) bool {
	switch id {
	case RulePolicyActive, RuleWithinLimits, RuleCoveredIncident, RuleNoConflict:
		return true
	}
	return false
}
