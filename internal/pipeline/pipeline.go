// Package pipeline wires the claim processing chain: document text
// extraction, dual field extraction, normalization, deterministic checks,
// adjudication, and report assembly.
package pipeline

import (
	"context"

	"github.com/apex/log"
	"github.com/claimwise/claimwise/internal/cache"
	"github.com/claimwise/claimwise/internal/doctext"
	"github.com/claimwise/claimwise/internal/extract"
	"github.com/claimwise/claimwise/internal/judge"
	"github.com/claimwise/claimwise/internal/llm"
	"github.com/claimwise/claimwise/internal/model"
	"github.com/claimwise/claimwise/internal/normalize"
	"github.com/claimwise/claimwise/internal/policy"
	"github.com/claimwise/claimwise/internal/report"
	"github.com/claimwise/claimwise/internal/rules"
	"github.com/claimwise/claimwise/internal/worker"
)

// Pipeline orchestrates the complete claim processing flow
type Pipeline struct {
	textExtractor  *doctext.Extractor
	heuristic      *extract.Extractor
	modelExtractor *extract.ModelExtractor
	ruleEngine     *rules.Engine
	judge          *judge.Judge
	config         *model.Config
}

// NewPipeline creates a pipeline over the given configuration and policy
// store. The store is injected explicitly: it is the only process-wide
// reference data, loaded once at startup and read-only thereafter.
func NewPipeline(cfg *model.Config, store policy.Store) *Pipeline {
	caller := buildCaller(cfg)
	engine := rules.NewEngine(store)

	return &Pipeline{
		textExtractor:  doctext.NewExtractor(),
		heuristic:      extract.NewExtractor(),
		modelExtractor: extract.NewModelExtractor(caller, cfg.LLM.ExtractMaxTokens),
		ruleEngine:     engine,
		judge:          judge.NewJudge(caller, engine, cfg.LLM.JudgeMaxTokens),
		config:         cfg,
	}
}

// buildCaller assembles the model caller chain: provider (with optional
// secondary failover), per-provider rate limiting, response cache. Returns
// nil when no provider is configured or construction fails; the pipeline
// then runs on heuristics and the deterministic fallback.
func buildCaller(cfg *model.Config) llm.Caller {
	caller, err := llm.NewCallerFromModel(cfg.LLM)
	if err != nil {
		log.WithError(err).Warn("failed to initialize model provider, running without model")
		return nil
	}
	if caller == nil {
		return nil
	}

	if cfg.RateLimiting.RequestsPerSecond > 0 {
		limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
		caller = llm.NewLimitedCaller(caller, limiter)
	}

	if cfg.Cache.Enabled {
		c := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		caller = llm.NewCachedCaller(caller, c, cfg.LLM.Primary.Model, cfg.Cache.DiskTTL)
	}

	return caller
}

// Result is the outcome of processing one claim. Claim, Judge, and
// ReportMarkdown form the stable contract for any presentation layer; the
// remaining fields are diagnostics for callers and tests.
type Result struct {
	Claim          model.CanonicalClaim     `json:"claim"`
	Judge          model.AdjudicationResult `json:"judge"`
	ReportMarkdown string                   `json:"report_markdown"`

	Report               model.ClaimReport     `json:"-"`
	Checks               model.RuleCheckResult `json:"-"`
	ExtractionDegraded   bool                  `json:"-"`
	AdjudicationDegraded bool                  `json:"-"`
}

// ProcessDocument extracts text from document bytes and processes the
// claim. The only error it returns is an unreadable input document; every
// downstream failure degrades to a usable, lower-confidence result.
func (p *Pipeline) ProcessDocument(ctx context.Context, data []byte) (*Result, error) {
	text, err := p.textExtractor.Extract(ctx, data)
	if err != nil {
		return nil, err
	}
	return p.ProcessText(ctx, text), nil
}

// ProcessText runs the extraction-and-adjudication chain over plain text.
// The two extractors have no data dependency, so the model extraction runs
// concurrently with the heuristic baseline.
func (p *Pipeline) ProcessText(ctx context.Context, text string) *Result {
	modelCh := make(chan extract.Extraction, 1)
	go func() {
		modelCh <- p.modelExtractor.Extract(ctx, text)
	}()

	// Heuristic baseline is always computed
	base := p.heuristic.ExtractSimple(text)
	modelRes := <-modelCh

	merged := extract.Merge(base, modelRes.Raw)
	claim := normalize.Normalize(merged)

	checks := p.ruleEngine.Check(claim)
	outcome := p.judge.Adjudicate(ctx, claim)

	rep := report.Build(claim, outcome.Result)

	return &Result{
		Claim:                claim,
		Judge:                outcome.Result,
		ReportMarkdown:       report.ToMarkdown(rep),
		Report:               rep,
		Checks:               checks,
		ExtractionDegraded:   modelRes.Degraded,
		AdjudicationDegraded: outcome.Degraded,
	}
}
