package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pbankaus/akviza/internal/model"
)

// Processor defines the interface for processing one document file.
type Processor interface {
	ProcessFile(ctx context.Context, path string) *model.Result
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, path string) *model.Result

func (f ProcessorFunc) ProcessFile(ctx context.Context, path string) *model.Result {
	return f(ctx, path)
}

// FileJob processes one document file.
type FileJob struct {
	Path      string
	Processor Processor
}

// Execute runs the processor over the job's file.
func (j *FileJob) Execute(ctx context.Context) Result {
	return &FileResult{
		Path:   j.Path,
		Result: j.Processor.ProcessFile(ctx, j.Path),
	}
}

// FileResult pairs a processed file with its outcome.
type FileResult struct {
	Path   string
	Result *model.Result
}

// GetError returns the processing error, nil on success.
func (r *FileResult) GetError() error {
	if r.Result != nil && r.Result.Failed() {
		return errors.New(r.Result.Error)
	}
	return nil
}

// BatchProcessor processes multiple document files concurrently.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths processes the given files concurrently and returns one result
// per file, in completion order. Cancelling ctx stops the batch; documents
// already finished keep their results.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	// Sized to the batch so every job can be queued up front.
	pool := NewPoolSize(b.concurrency, len(paths))
	pool.Start()

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-finished:
		}
	}()

	for _, path := range paths {
		pool.Submit(&FileJob{
			Path:      path,
			Processor: b.processor,
		})
	}

	results := pool.Wait()

	fileResults := make([]*FileResult, len(results))
	for i, result := range results {
		fileResults[i] = result.(*FileResult)
	}

	return fileResults
}

// ProcessList reads file paths from a list file and processes them
// concurrently.
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*FileResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads file paths from a list file (one per line),
// skipping blanks and # comments and dropping duplicates.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
