package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/claimwise/claimwise/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	processProvider string
	processModel    string
	processPolicies string
	processJSONOut  string
	processMDOut    string
	processNoCache  bool
	processTimeout  int
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <document>",
	Short: "Process a single claim document",
	Long: `Process one claim document (PDF, HTML, or plain text): extract fields,
run deterministic policy checks, adjudicate, and emit the claim, verdict,
and markdown report.

The JSON result goes to stdout by default; --json and --markdown write the
result and the rendered report to files instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processProvider, "provider", "", "LLM provider (openai, groq, cerebras, anthropic, ollama, mock)")
	processCmd.Flags().StringVar(&processModel, "model", "", "LLM model name")
	processCmd.Flags().StringVar(&processPolicies, "policies", "", "path to policy file (JSON or YAML)")
	processCmd.Flags().StringVar(&processJSONOut, "json", "", "write JSON result to file instead of stdout")
	processCmd.Flags().StringVar(&processMDOut, "markdown", "", "write markdown report to file")
	processCmd.Flags().BoolVar(&processNoCache, "no-cache", false, "disable the model response cache")
	processCmd.Flags().IntVar(&processTimeout, "timeout", 0, "overall processing timeout in seconds")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := loadAppConfig()
	if processProvider != "" {
		cfg.LLM.Primary.Provider = processProvider
		applyCredentialEnv(&cfg.LLM.Primary)
	}
	if processModel != "" {
		cfg.LLM.Primary.Model = processModel
	}
	if processPolicies != "" {
		cfg.Policies.Path = processPolicies
		cfg.Policies.MySQLDSN = ""
	}
	if processNoCache {
		cfg.Cache.Enabled = false
	}

	ctx := context.Background()
	if processTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(processTimeout)*time.Second)
		defer cancel()
	}

	store, err := loadPolicyStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load policies: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d policies\n", store.Len())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	p := pipeline.NewPipeline(cfg, store)

	start := time.Now()
	result, err := p.ProcessDocument(ctx, data)
	if err != nil {
		return fmt.Errorf("process %s: %w", path, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Processed %s in %v\n", path, time.Since(start).Round(time.Millisecond))
		fmt.Fprintf(os.Stderr, "  Claim:    %s\n", result.Claim.ClaimID)
		fmt.Fprintf(os.Stderr, "  Decision: %s (confidence %.2f)\n", result.Judge.Decision, result.Judge.Confidence)
		if result.AdjudicationDegraded {
			fmt.Fprintln(os.Stderr, "  Note: model unavailable, verdict derived from deterministic checks")
		}
	}

	if err := writeResult(result); err != nil {
		return err
	}

	return nil
}

// writeResult emits the stable result triple as JSON, plus the markdown
// report when requested
func writeResult(result *pipeline.Result) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if processJSONOut != "" {
		if err := os.WriteFile(processJSONOut, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("write JSON result: %w", err)
		}
	} else {
		fmt.Println(string(out))
	}

	if processMDOut != "" {
		if err := os.WriteFile(processMDOut, []byte(result.ReportMarkdown), 0o644); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
	}

	return nil
}
