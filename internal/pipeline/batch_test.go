package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// mockProcessor implements Processor
type mockProcessor struct {
	shouldErr bool
}

func (m *mockProcessor) ProcessDocument(ctx context.Context, data []byte) (*Result, error) {
	if m.shouldErr {
		return nil, errors.New("processing failed")
	}
	return &Result{ReportMarkdown: "# report"}, nil
}

func writeClaimFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("Policy Number: P100"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeClaimFile(t, dir, "a.txt"),
		writeClaimFile(t, dir, "b.txt"),
		writeClaimFile(t, dir, "c.txt"),
	}

	processor := NewBatchProcessor(&mockProcessor{}, 2)
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("unexpected error for %s: %v", r.Path, r.Error)
		}
		if r.Result == nil {
			t.Errorf("expected result for %s", r.Path)
		}
	}
}

func TestBatchProcessor_ProcessorError(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeClaimFile(t, dir, "a.txt")}

	processor := NewBatchProcessor(&mockProcessor{shouldErr: true}, 1)
	results := processor.ProcessPaths(context.Background(), paths)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Result != nil {
		t.Error("expected nil result on error")
	}
}

func TestBatchProcessor_MissingFile(t *testing.T) {
	processor := NewBatchProcessor(&mockProcessor{}, 1)
	results := processor.ProcessPaths(context.Background(), []string{"/does/not/exist.txt"})

	if len(results) != 1 || results[0].Error == nil {
		t.Fatal("expected read error result")
	}
}

// blockingProcessor implements Processor and only returns on cancellation
type blockingProcessor struct{}

func (blockingProcessor) ProcessDocument(ctx context.Context, data []byte) (*Result, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestBatchProcessor_ContextTimeoutAbortsJobs(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeClaimFile(t, dir, "a.txt"),
		writeClaimFile(t, dir, "b.txt"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	processor := NewBatchProcessor(blockingProcessor{}, 2)

	done := make(chan []*ClaimResult, 1)
	go func() {
		done <- processor.ProcessPaths(ctx, paths)
	}()

	select {
	case results := <-done:
		for _, r := range results {
			if r.Error == nil {
				t.Errorf("expected cancellation error for %s", r.Path)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("batch did not return after context timeout")
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockProcessor{}, 2)
	results := processor.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestCollectClaimFiles(t *testing.T) {
	dir := t.TempDir()
	writeClaimFile(t, dir, "b.txt")
	writeClaimFile(t, dir, "a.pdf")
	writeClaimFile(t, dir, "c.html")
	writeClaimFile(t, dir, "notes.log") // not a claim extension
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := CollectClaimFiles(dir)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if len(paths) != 3 {
		t.Fatalf("expected 3 documents, got %d: %v", len(paths), paths)
	}

	// Sorted for stable processing order
	for i := 1; i < len(paths); i++ {
		if paths[i-1] > paths[i] {
			t.Errorf("expected sorted paths, got %v", paths)
		}
	}
}

func TestCollectClaimFiles_MissingDir(t *testing.T) {
	if _, err := CollectClaimFiles("/does/not/exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestProcessDir(t *testing.T) {
	dir := t.TempDir()
	writeClaimFile(t, dir, "a.txt")
	writeClaimFile(t, dir, "b.txt")

	processor := NewBatchProcessor(&mockProcessor{}, 2)
	results, err := processor.ProcessDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("process dir: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
