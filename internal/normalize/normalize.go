// Package normalize turns a merged raw extraction into the canonical claim
// record the rest of the pipeline operates on.
package normalize

import (
	"strconv"
	"strings"

	"github.com/claimwise/claimwise/internal/model"
	"github.com/google/uuid"
)

// Normalize produces a canonical claim from a raw extraction. Pure and
// total: it never fails, regardless of input.
//
// Guarantees on the result: claim_id is non-empty (generated when absent),
// string fields are trimmed, source_conflicts is non-nil, and
// estimated_cost is a float64 when the raw value was coercible - an
// uncoercible value is preserved unchanged rather than dropped.
func Normalize(raw model.RawExtraction) model.CanonicalClaim {
	claim := model.CanonicalClaim{
		ClaimID:       strings.TrimSpace(raw.ClaimID),
		CustomerName:  strings.TrimSpace(raw.CustomerName),
		PolicyNumber:  strings.TrimSpace(raw.PolicyNumber),
		IncidentDate:  strings.TrimSpace(raw.IncidentDate),
		Damage:        strings.TrimSpace(raw.Damage),
		EstimatedCost: coerceCost(raw.EstimatedCost),
		Sources:       raw.Sources,
		RawText:       raw.RawText,
	}

	if claim.ClaimID == "" {
		claim.ClaimID = NewClaimID()
	}

	// Seed conflicts from extraction; always non-nil
	claim.SourceConflicts = raw.Conflicts
	if claim.SourceConflicts == nil {
		claim.SourceConflicts = []string{}
	}

	return claim
}

// NewClaimID generates a short unique claim identifier: the first 8 hex
// characters of a random UUID. ~4e9 address space, collision probability
// negligible per session.
func NewClaimID() string {
	return uuid.NewString()[:8]
}

// coerceCost attempts numeric coercion of the raw cost value. Strings are
// cleaned of currency symbols, commas, and whitespace first. A negative
// amount is not a valid cost, so it counts as a coercion failure. On any
// failure the original value is returned untouched (tolerant merge).
func coerceCost(v any) any {
	switch c := v.(type) {
	case nil:
		return nil
	case float64:
		if c < 0 {
			return v
		}
		return c
	case int:
		if c < 0 {
			return v
		}
		return float64(c)
	case int64:
		if c < 0 {
			return v
		}
		return float64(c)
	case string:
		cleaned := strings.TrimSpace(c)
		cleaned = strings.TrimPrefix(cleaned, "$")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		cleaned = strings.TrimSpace(cleaned)
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil && f >= 0 {
			return f
		}
		return c
	default:
		return v
	}
}
