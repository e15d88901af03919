package model

import "github.com/shopspring/decimal"

// Decision is the adjudication outcome for a claim
type Decision string

const (
	DecisionApprove Decision = "Approve"
	DecisionDeny    Decision = "Deny"
	DecisionReview  Decision = "Review"
)

// ValidDecision reports whether d is one of the three allowed outcomes
func ValidDecision(d Decision) bool {
	switch d {
	case DecisionApprove, DecisionDeny, DecisionReview:
		return true
	}
	return false
}

// PolicyRecord is read-only reference data for one policy.
// Loaded once at startup, never mutated.
type PolicyRecord struct {
	CoverageLimit decimal.Decimal `json:"coverage_limit" yaml:"coverage_limit"`
	StartDate     string          `json:"start_date" yaml:"start_date"` // ISO date
	EndDate       string          `json:"end_date" yaml:"end_date"`     // ISO date
}

// RuleCheckResult is the output of the deterministic rule engine.
// Notes are informational only; an empty violation set with a note present
// means "could not validate", not "validated clean".
type RuleCheckResult struct {
	Violations []RuleID `json:"violations"`
	Notes      []string `json:"notes"`
}

// AdjudicationResult is the decision record for a claim. It is produced
// either by the model judge or by the deterministic fallback; consumers
// cannot distinguish provenance from this type and must not rely on it.
type AdjudicationResult struct {
	Decision       Decision `json:"decision"`
	Confidence     float64  `json:"confidence"` // clamped to [0.0, 1.0]
	ViolatedRules  []RuleID `json:"violated_rules"`
	Rationale      string   `json:"rationale"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// ClaimReport is the final denormalized view of a processed claim.
// Append-only: never mutated after creation.
type ClaimReport struct {
	ClaimID        string   `json:"claim_id"`
	CustomerName   string   `json:"customer_name,omitempty"`
	PolicyNumber   string   `json:"policy_number,omitempty"`
	IncidentDate   string   `json:"incident_date,omitempty"`
	EstimatedCost  any      `json:"estimated_cost,omitempty"`
	Damage         string   `json:"damage,omitempty"`
	Decision       Decision `json:"decision"`
	Confidence     float64  `json:"confidence"`
	ViolatedRules  []RuleID `json:"violated_rules"`
	Rationale      string   `json:"rationale"`
	Recommendation string   `json:"recommendation,omitempty"`
	GeneratedAt    string   `json:"generated_at"` // UTC, RFC 3339 with Z
}
