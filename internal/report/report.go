// Package report assembles the final claim report and renders its
// human-readable projection.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/claimwise/claimwise/internal/model"
)

// Build denormalizes a canonical claim and its adjudication result into a
// claim report stamped with the generation time (UTC). Pure apart from the
// clock read; the report is never mutated after creation.
func Build(claim model.CanonicalClaim, adjudication model.AdjudicationResult) model.ClaimReport {
	return BuildAt(claim, adjudication, time.Now().UTC())
}

// BuildAt is Build with an explicit timestamp, for reproducible output
func BuildAt(claim model.CanonicalClaim, adjudication model.AdjudicationResult, now time.Time) model.ClaimReport {
	return model.ClaimReport{
		ClaimID:        claim.ClaimID,
		CustomerName:   claim.CustomerName,
		PolicyNumber:   claim.PolicyNumber,
		IncidentDate:   claim.IncidentDate,
		EstimatedCost:  claim.EstimatedCost,
		Damage:         claim.Damage,
		Decision:       adjudication.Decision,
		Confidence:     adjudication.Confidence,
		ViolatedRules:  adjudication.ViolatedRules,
		Rationale:      adjudication.Rationale,
		Recommendation: adjudication.Recommendation,
		GeneratedAt:    now.UTC().Format("2006-01-02T15:04:05.000000") + "Z",
	}
}

// ToMarkdown renders the fixed human-readable layout. The layout is a
// presentation contract relied upon by external consumers: heading with
// claim id, bulleted metadata, rationale block, optional violated-rules
// list, optional recommendation, generation footer.
func ToMarkdown(r model.ClaimReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Claim Report — %s\n\n", r.ClaimID)
	fmt.Fprintf(&b, "- **Customer**: %s\n", orNone(r.CustomerName))
	fmt.Fprintf(&b, "- **Policy**: %s\n", orNone(r.PolicyNumber))
	fmt.Fprintf(&b, "- **Incident Date**: %s\n", orNone(r.IncidentDate))
	fmt.Fprintf(&b, "- **Estimated Cost**: %s\n", costString(r.EstimatedCost))
	fmt.Fprintf(&b, "- **Decision**: **%s** (confidence %v)\n\n", r.Decision, r.Confidence)
	fmt.Fprintf(&b, "**Rationale:**\n\n%s\n\n", r.Rationale)

	if len(r.ViolatedRules) > 0 {
		b.WriteString("Violated rules:\n\n")
		for _, rule := range r.ViolatedRules {
			fmt.Fprintf(&b, "- %s\n", rule)
		}
	}

	if r.Recommendation != "" {
		fmt.Fprintf(&b, "\n**Recommendation:** %s\n", r.Recommendation)
	}

	fmt.Fprintf(&b, "\n_Generated at %s_\n", r.GeneratedAt)

	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// costString formats the cost for display: numbers without a trailing
// zero-decimal tail, uncoerced raw values verbatim
func costString(v any) string {
	switch c := v.(type) {
	case nil:
		return "None"
	case float64:
		return fmt.Sprintf("%g", c)
	default:
		return fmt.Sprintf("%v", c)
	}
}
