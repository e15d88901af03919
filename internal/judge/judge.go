// Package judge produces the adjudication decision for a claim: a model
// verdict against the rulebook, with a deterministic fallback so claim
// processing never blocks on model availability or format compliance.
package judge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/claimwise/claimwise/internal/llm"
	"github.com/claimwise/claimwise/internal/model"
	"github.com/claimwise/claimwise/internal/rules"
)

// Rulebook holds the fixed textual rule descriptions embedded in the judge
// prompt. covered_incident and no_conflict are advisory: only the model
// evaluates them, the deterministic engine does not.
var Rulebook = map[model.RuleID]string{
	model.RulePolicyActive:    "Policy must be active at incident date.",
	model.RuleWithinLimits:    "Estimated cost must be less than or equal to policy coverage.",
	model.RuleCoveredIncident: "Incident type must be one of covered categories: accident, theft, fire, natural disaster.",
	model.RuleNoConflict:      "Key fields must not have unresolved contradictions.",
}

const judgePrompt = `You are an expert insurance claims adjuster with 15+ years of experience. Apply this RULEBOOK:
%s

Given this claim (JSON):
%s

Analyze this claim thoroughly and provide a detailed assessment. Consider:
- Policy coverage limits and exclusions
- Risk factors and red flags
- Documentation completeness
- Cost reasonableness for damage type
- Timeline consistency
- Fraud indicators

Return a JSON with:
{
  "decision": "Approve" | "Deny" | "Review",
  "confidence": 0.0-1.0,
  "violated_rules": [ ... ],
  "rationale": "Provide a detailed, specific analysis (4-6 sentences) explaining your reasoning, citing specific claim details, policy provisions, and industry standards. Vary your language and focus on unique aspects of this particular claim.",
  "recommendation": "If Review, what specific documentation or investigation steps are needed"
}

Make your rationale unique and specific to this claim. Avoid generic language. Reference actual dollar amounts, dates, policy numbers, and damage types from the claim data.
Only output JSON.
`

// Fallback confidence levels for the deterministic path
const (
	fallbackDenyConfidence   = 0.75
	fallbackReviewConfidence = 0.6
)

// Outcome is the result of an adjudication attempt. Degraded marks results
// synthesized by the deterministic fallback, so callers and tests can
// distinguish provenance; the AdjudicationResult itself carries no marker
// and downstream code must not rely on one.
type Outcome struct {
	Result   model.AdjudicationResult
	Degraded bool
}

// Judge adjudicates claims with a model, falling back to a rule-derived
// decision when the model is unreachable or returns unusable output
type Judge struct {
	caller    llm.Caller
	rules     *rules.Engine
	maxTokens int
}

// NewJudge creates an adjudication engine. caller may be nil, in which
// case every adjudication uses the deterministic fallback.
func NewJudge(caller llm.Caller, engine *rules.Engine, maxTokens int) *Judge {
	if maxTokens <= 0 {
		maxTokens = 500
	}
	return &Judge{
		caller:    caller,
		rules:     engine,
		maxTokens: maxTokens,
	}
}

// Adjudicate produces a decision for the claim. It always returns a usable
// result: any model failure or malformed response triggers the fallback,
// never an error to the caller.
func (j *Judge) Adjudicate(ctx context.Context, claim model.CanonicalClaim) Outcome {
	if j.caller == nil {
		return Outcome{Result: j.fallback(claim), Degraded: true}
	}

	prompt, err := BuildPrompt(claim)
	if err != nil {
		log.WithError(err).Warn("judge prompt build failed, using deterministic fallback")
		return Outcome{Result: j.fallback(claim), Degraded: true}
	}

	resp, err := j.caller.Call(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   j.maxTokens,
		Temperature: 0,
	})
	if err != nil {
		log.WithError(err).WithField("provider", j.caller.Name()).
			Warn("model judge failed, using deterministic fallback")
		return Outcome{Result: j.fallback(claim), Degraded: true}
	}

	result, err := parseVerdict(resp)
	if err != nil {
		log.WithError(err).Warn("model judge returned unusable output, using deterministic fallback")
		return Outcome{Result: j.fallback(claim), Degraded: true}
	}

	return Outcome{Result: result}
}

// BuildPrompt constructs the judge prompt embedding the rulebook and the
// claim as structured data
func BuildPrompt(claim model.CanonicalClaim) (string, error) {
	rulebookJSON, err := json.MarshalIndent(Rulebook, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal rulebook: %w", err)
	}
	claimJSON, err := json.MarshalIndent(claim, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal claim: %w", err)
	}
	return fmt.Sprintf(judgePrompt, rulebookJSON, claimJSON), nil
}

// verdict mirrors the JSON shape the model is instructed to return
type verdict struct {
	Decision       string   `json:"decision"`
	Confidence     float64  `json:"confidence"`
	ViolatedRules  []string `json:"violated_rules"`
	Rationale      string   `json:"rationale"`
	Recommendation string   `json:"recommendation"`
}

// parseVerdict parses a model response into an adjudication result. A
// response that is not JSON, or whose decision is not one of the three
// allowed outcomes, counts as unusable. Confidence is clamped into
// [0, 1]; violated-rule entries outside the closed rulebook are dropped.
func parseVerdict(raw string) (model.AdjudicationResult, error) {
	var v verdict
	if err := json.Unmarshal([]byte(llm.StripCodeFence(raw)), &v); err != nil {
		return model.AdjudicationResult{}, fmt.Errorf("parse verdict: %w", err)
	}

	decision := model.Decision(v.Decision)
	if !model.ValidDecision(decision) {
		return model.AdjudicationResult{}, fmt.Errorf("invalid decision %q", v.Decision)
	}

	confidence := v.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	violated := []model.RuleID{}
	for _, r := range v.ViolatedRules {
		id := model.RuleID(r)
		if model.KnownRule(id) {
			violated = append(violated, id)
		}
	}

	return model.AdjudicationResult{
		Decision:       decision,
		Confidence:     confidence,
		ViolatedRules:  violated,
		Rationale:      v.Rationale,
		Recommendation: v.Recommendation,
	}, nil
}

// fallback synthesizes a conservative decision from the deterministic rule
// engine: Deny when violations exist, Review otherwise. The system never
// auto-approves a claim it could not actually evaluate.
func (j *Judge) fallback(claim model.CanonicalClaim) model.AdjudicationResult {
	det := j.rules.Check(claim)

	if len(det.Violations) > 0 {
		return model.AdjudicationResult{
			Decision:       model.DecisionDeny,
			Confidence:     fallbackDenyConfidence,
			ViolatedRules:  det.Violations,
			Rationale:      "Deterministic policy violations found.",
			Recommendation: "Request policy documents / proof of incident.",
		}
	}

	return model.AdjudicationResult{
		Decision:       model.DecisionReview,
		Confidence:     fallbackReviewConfidence,
		ViolatedRules:  []model.RuleID{},
		Rationale:      "Insufficient deterministic evidence — please review.",
		Recommendation: "Ask for photos, police report, or policy docs.",
	}
}
