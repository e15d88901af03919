package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/claimwise/claimwise/internal/llm"
	"github.com/claimwise/claimwise/internal/model"
)

// modelInputLimit caps the document text submitted to the model
const modelInputLimit = 4000

const extractionPrompt = `You are a senior insurance claims analyst with expertise in document processing.
Input: %s

Task: Carefully analyze this claim document and extract key information. Pay attention to:
- Specific damage descriptions and causes
- Exact monetary amounts and cost breakdowns
- Precise dates and timelines
- Policy details and coverage types
- Claimant information and contact details
- Any inconsistencies or missing information

Extract the following fields as strict JSON (no commentary) in this structure:
{
  "claim_id": "<short id or null>",
  "customer_name": "<Full name or null>",
  "policy_number": "<policy id or null>",
  "incident_date": "<YYYY-MM-DD or null>",
  "damage": "<detailed, specific description of damage and cause - be descriptive and unique>",
  "estimated_cost": <number or null>,
  "sources": ["specific text snippets that support your extraction", ...],
  "conflicts": ["detailed explanation of any inconsistencies, missing info, or red flags you notice"]
}

Be thorough and specific in your damage descriptions. Avoid generic terms like "property damage" - instead describe what specifically was damaged and how.
Only output JSON.
`

// Extraction is the outcome of a model-assisted extraction attempt.
// Degraded marks results that fell back to heuristics, so callers and
// tests can distinguish provenance without error interception.
type Extraction struct {
	Raw      model.RawExtraction
	Degraded bool
}

// ModelExtractor asks a language model to extract the claim schema as
// structured JSON. On any failure it silently degrades to the heuristic
// extractor: extraction always succeeds with some result.
type ModelExtractor struct {
	caller    llm.Caller
	heuristic *Extractor
	maxTokens int
}

// NewModelExtractor creates a model-assisted extractor. caller may be nil,
// in which case every extraction degrades to heuristics.
func NewModelExtractor(caller llm.Caller, maxTokens int) *ModelExtractor {
	if maxTokens <= 0 {
		maxTokens = 600
	}
	return &ModelExtractor{
		caller:    caller,
		heuristic: NewExtractor(),
		maxTokens: maxTokens,
	}
}

// Extract runs the model extraction with heuristic fallback
func (e *ModelExtractor) Extract(ctx context.Context, text string) Extraction {
	if e.caller == nil {
		return Extraction{Raw: e.heuristic.ExtractSimple(text), Degraded: true}
	}

	prompt := fmt.Sprintf(extractionPrompt, truncate(text, modelInputLimit))

	resp, err := e.caller.Call(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   e.maxTokens,
		Temperature: 0,
	})
	if err != nil {
		log.WithError(err).WithField("provider", e.caller.Name()).
			Warn("model extraction failed, using heuristics")
		return Extraction{Raw: e.heuristic.ExtractSimple(text), Degraded: true}
	}

	var raw model.RawExtraction
	if err := json.Unmarshal([]byte(llm.StripCodeFence(resp)), &raw); err != nil {
		log.WithError(err).Warn("model extraction returned non-JSON, using heuristics")
		return Extraction{Raw: e.heuristic.ExtractSimple(text), Degraded: true}
	}

	return Extraction{Raw: raw}
}
