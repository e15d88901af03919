package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claimwise/claimwise/internal/worker"
)

// Processor defines the interface for processing one claim document
type Processor interface {
	ProcessDocument(ctx context.Context, data []byte) (*Result, error)
}

// ClaimJob processes a single claim document file
type ClaimJob struct {
	Path      string
	Processor Processor
}

// Execute reads and processes the claim document
func (j *ClaimJob) Execute(ctx context.Context) worker.Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &ClaimResult{Path: j.Path, Error: fmt.Errorf("read document: %w", err)}
	}

	result, err := j.Processor.ProcessDocument(ctx, data)
	if err != nil {
		return &ClaimResult{Path: j.Path, Error: err}
	}
	return &ClaimResult{Path: j.Path, Result: result}
}

// ClaimResult is the outcome of one claim document job
type ClaimResult struct {
	Path   string
	Result *Result
	Error  error
}

// GetError returns the error from the claim result
func (r *ClaimResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple claim documents concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths processes the given document files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ClaimResult {
	if len(paths) == 0 {
		return []*ClaimResult{}
	}

	pool := worker.NewPool(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ClaimJob{Path: path, Processor: b.processor})
	}

	results := pool.Wait()

	claimResults := make([]*ClaimResult, len(results))
	for i, result := range results {
		claimResults[i] = result.(*ClaimResult)
	}

	return claimResults
}

// ProcessDir collects claim documents in a directory and processes them
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*ClaimResult, error) {
	paths, err := CollectClaimFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("collect documents: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// claimExtensions are the document types accepted for batch processing
var claimExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".text": true,
	".html": true,
	".htm":  true,
	".md":   true,
}

// CollectClaimFiles lists claim documents in a directory (non-recursive),
// sorted for stable processing order
func CollectClaimFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if claimExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}
