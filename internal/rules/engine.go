// Package rules evaluates canonical claims against policy reference data.
// The engine is pure and deterministic given its inputs: it never consults
// the model and never mutates the claim, so its output is reproducible for
// audit independent of model variance.
package rules

import (
	"time"

	"github.com/claimwise/claimwise/internal/model"
	"github.com/claimwise/claimwise/internal/policy"
	"github.com/shopspring/decimal"
)

// Engine runs the deterministic rulebook checks
type Engine struct {
	store policy.Store
}

// NewEngine creates a rule engine over the given policy store
func NewEngine(store policy.Store) *Engine {
	return &Engine{store: store}
}

// Check evaluates the deterministic rules against a claim.
//
// policy_active fires when the incident date falls outside the policy's
// validity window; within_limits fires when the estimated cost exceeds the
// coverage limit. When a check cannot run (unknown policy number,
// unparseable incident date) a note is recorded and the rule is skipped,
// not failed - an empty violation set with notes present is not the same
// as "validated clean".
func (e *Engine) Check(claim model.CanonicalClaim) model.RuleCheckResult {
	result := model.RuleCheckResult{
		Violations: []model.RuleID{},
		Notes:      []string{},
	}

	pol, found := e.store.Lookup(claim.PolicyNumber)
	if !found {
		result.Notes = append(result.Notes, "Policy number not found in local DB; cannot deterministically validate.")
		return result
	}

	if claim.IncidentDate != "" {
		incident, incErr := parseISODate(claim.IncidentDate)
		start, startErr := parseISODate(pol.StartDate)
		end, endErr := parseISODate(pol.EndDate)

		if incErr != nil || startErr != nil || endErr != nil {
			result.Notes = append(result.Notes, "Could not parse incident date for policy check.")
		} else if incident.Before(start) || incident.After(end) {
			result.Violations = append(result.Violations, model.RulePolicyActive)
		}
	}

	if cost, ok := claim.CostValue(); ok {
		if decimal.NewFromFloat(cost).GreaterThan(pol.CoverageLimit) {
			result.Violations = append(result.Violations, model.RuleWithinLimits)
		}
	}

	return result
}

// parseISODate parses a strict ISO-8601 calendar date
func parseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
