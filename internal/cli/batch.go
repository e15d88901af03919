package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claimwise/claimwise/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	batchProvider  string
	batchPolicies  string
	batchOutputDir string
	batchWorkers   int
	batchTimeout   int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Process every claim document in a directory",
	Long: `Process all claim documents in a directory concurrently. Each document
produces a <claim_id>.json result and a <claim_id>.md report in the output
directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchProvider, "provider", "", "LLM provider (openai, groq, cerebras, anthropic, ollama, mock)")
	batchCmd.Flags().StringVar(&batchPolicies, "policies", "", "path to policy file (JSON or YAML)")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "reports", "directory for JSON results and markdown reports")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent workers (default: number of CPUs)")
	batchCmd.Flags().IntVar(&batchTimeout, "timeout", 0, "overall batch timeout in seconds")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg := loadAppConfig()
	if batchProvider != "" {
		cfg.LLM.Primary.Provider = batchProvider
		applyCredentialEnv(&cfg.LLM.Primary)
	}
	if batchPolicies != "" {
		cfg.Policies.Path = batchPolicies
		cfg.Policies.MySQLDSN = ""
	}
	if batchWorkers > 0 {
		cfg.Concurrency.Workers = batchWorkers
	}

	ctx := context.Background()
	if batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(batchTimeout)*time.Second)
		defer cancel()
	}

	store, err := loadPolicyStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load policies: %w", err)
	}

	paths, err := pipeline.CollectClaimFiles(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no claim documents found in %s", dir)
	}

	if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processing %d documents with %d workers...\n", len(paths), cfg.Concurrency.Workers)

	p := pipeline.NewPipeline(cfg, store)
	processor := pipeline.NewBatchProcessor(p, cfg.Concurrency.Workers)

	start := time.Now()
	results := processor.ProcessPaths(ctx, paths)

	var failed int
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}
		if err := writeBatchResult(r); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s → %s (%s)\n", filepath.Base(r.Path), r.Result.Claim.ClaimID, r.Result.Judge.Decision)
		}
	}

	fmt.Fprintf(os.Stderr, "\n%s\n", strings.Repeat("═", 50))
	fmt.Fprintf(os.Stderr, "Processed %d documents in %v (%d failed)\n",
		len(results), time.Since(start).Round(time.Millisecond), failed)
	fmt.Fprintf(os.Stderr, "Reports written to %s\n", batchOutputDir)

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

// writeBatchResult writes one result pair, named by claim id
func writeBatchResult(r *pipeline.ClaimResult) error {
	base := filepath.Join(batchOutputDir, r.Result.Claim.ClaimID)

	out, err := json.MarshalIndent(r.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(base+".json", append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("write JSON result: %w", err)
	}
	if err := os.WriteFile(base+".md", []byte(r.Result.ReportMarkdown), 0o644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}
