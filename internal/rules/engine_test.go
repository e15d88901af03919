package rules

import (
	"testing"

	"github.com/claimwise/claimwise/internal/model"
	"github.com/claimwise/claimwise/internal/policy"
	"github.com/shopspring/decimal"
)

func testStore() policy.Store {
	return policy.NewMemoryStore(map[string]model.PolicyRecord{
		"P100": {
			CoverageLimit: decimal.NewFromInt(10000),
			StartDate:     "2024-01-01",
			EndDate:       "2024-12-31",
		},
	})
}

func TestCheck_CleanClaim(t *testing.T) {
	e := NewEngine(testStore())

	res := e.Check(model.CanonicalClaim{
		PolicyNumber:  "P100",
		IncidentDate:  "2024-06-01",
		EstimatedCost: 5000.0,
	})

	if len(res.Violations) != 0 {
		t.Errorf("expected no violations, got %v", res.Violations)
	}
	if len(res.Notes) != 0 {
		t.Errorf("expected no notes, got %v", res.Notes)
	}
}

func TestCheck_CostExceedsCoverage(t *testing.T) {
	e := NewEngine(testStore())

	res := e.Check(model.CanonicalClaim{
		PolicyNumber:  "P100",
		IncidentDate:  "2024-06-01",
		EstimatedCost: 15000.0,
	})

	if len(res.Violations) != 1 || res.Violations[0] != model.RuleWithinLimits {
		t.Errorf("expected [within_limits], got %v", res.Violations)
	}
}

func TestCheck_CostAtLimitIsAllowed(t *testing.T) {
	e := NewEngine(testStore())

	// Boundary: equal to the coverage limit is within limits
	res := e.Check(model.CanonicalClaim{
		PolicyNumber:  "P100",
		IncidentDate:  "2024-06-01",
		EstimatedCost: 10000.0,
	})

	if len(res.Violations) != 0 {
		t.Errorf("expected no violations at the coverage boundary, got %v", res.Violations)
	}
}

func TestCheck_IncidentOutsideWindow(t *testing.T) {
	e := NewEngine(testStore())

	tests := []struct {
		name string
		date string
	}{
		{"after end", "2025-01-01"},
		{"before start", "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Check(model.CanonicalClaim{
				PolicyNumber:  "P100",
				IncidentDate:  tt.date,
				EstimatedCost: 5000.0,
			})
			if len(res.Violations) != 1 || res.Violations[0] != model.RulePolicyActive {
				t.Errorf("expected [policy_active], got %v", res.Violations)
			}
		})
	}
}

func TestCheck_WindowBoundariesInclusive(t *testing.T) {
	e := NewEngine(testStore())

	for _, date := range []string{"2024-01-01", "2024-12-31"} {
		res := e.Check(model.CanonicalClaim{
			PolicyNumber: "P100",
			IncidentDate: date,
		})
		if len(res.Violations) != 0 {
			t.Errorf("expected boundary date %s to be active, got %v", date, res.Violations)
		}
	}
}

func TestCheck_UnknownPolicy(t *testing.T) {
	e := NewEngine(testStore())

	res := e.Check(model.CanonicalClaim{
		PolicyNumber:  "NOPE",
		IncidentDate:  "2025-01-01",
		EstimatedCost: 999999.0,
	})

	// Unknown policy means "cannot validate", not "violated": exactly one
	// note and zero violations, regardless of the other fields
	if len(res.Violations) != 0 {
		t.Errorf("expected no violations, got %v", res.Violations)
	}
	if len(res.Notes) != 1 {
		t.Fatalf("expected exactly one note, got %v", res.Notes)
	}
	if res.Notes[0] != "Policy number not found in local DB; cannot deterministically validate." {
		t.Errorf("unexpected note: %q", res.Notes[0])
	}
}

func TestCheck_UnparseableIncidentDate(t *testing.T) {
	e := NewEngine(testStore())

	res := e.Check(model.CanonicalClaim{
		PolicyNumber:  "P100",
		IncidentDate:  "June 1st 2024",
		EstimatedCost: 5000.0,
	})

	if len(res.Violations) != 0 {
		t.Errorf("expected no violations, got %v", res.Violations)
	}
	if len(res.Notes) != 1 || res.Notes[0] != "Could not parse incident date for policy check." {
		t.Errorf("expected date parse note, got %v", res.Notes)
	}
}

func TestCheck_MissingFieldsSkipChecks(t *testing.T) {
	e := NewEngine(testStore())

	// No incident date, no cost: neither rule can fire
	res := e.Check(model.CanonicalClaim{PolicyNumber: "P100"})
	if len(res.Violations) != 0 || len(res.Notes) != 0 {
		t.Errorf("expected clean skip, got %+v", res)
	}
}

func TestCheck_UncoercedCostSkipsLimitCheck(t *testing.T) {
	e := NewEngine(testStore())

	res := e.Check(model.CanonicalClaim{
		PolicyNumber:  "P100",
		IncidentDate:  "2024-06-01",
		EstimatedCost: "unknown",
	})
	if len(res.Violations) != 0 {
		t.Errorf("expected no violations for uncoerced cost, got %v", res.Violations)
	}
}

func TestCheck_ResultSlicesNonNil(t *testing.T) {
	e := NewEngine(testStore())

	res := e.Check(model.CanonicalClaim{PolicyNumber: "P100"})
	if res.Violations == nil || res.Notes == nil {
		t.Error("expected non-nil violation and note slices")
	}
}

func TestCheck_Deterministic(t *testing.T) {
	e := NewEngine(testStore())
	claim := model.CanonicalClaim{
		PolicyNumber:  "P100",
		IncidentDate:  "2025-02-01",
		EstimatedCost: 20000.0,
	}

	first := e.Check(claim)
	for i := 0; i < 5; i++ {
		again := e.Check(claim)
		if len(again.Violations) != len(first.Violations) {
			t.Fatal("expected identical results across runs")
		}
	}
	if len(first.Violations) != 2 {
		t.Errorf("expected both violations, got %v", first.Violations)
	}
}
