package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pbankaus/akviza/internal/model"
	"github.com/pbankaus/akviza/internal/pipeline"
	"github.com/pbankaus/akviza/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir-or-list-file>",
	Short: "Process multiple invoice documents in parallel",
	Long: `Batch processes multiple extraction results concurrently:
- Take every .json document in a directory, or document paths from a
  list file (one per line)
- Process documents in parallel with a configurable worker count
- Write one JSON result per document into the output directory

Example:
  akviza batch ./invoices
  akviza batch documents.txt --concurrency 8 --output-dir ./results
  akviza batch ./invoices --llm --llm-provider deepseek`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./akviza-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from process command
	batchCmd.Flags().StringVar(&exceptionsFile, "exceptions", "", "YAML file with classification exception keywords")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh processing)")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM classification and summary extraction")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "deepseek", "LLM provider (deepseek, openai)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "deepseek-chat", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n\n", llmProvider, llmModel)
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(worker.ProcessorFunc(
		func(ctx context.Context, path string) *model.Result {
			return p.ProcessFile(ctx, path, pipeline.Options{})
		},
	), concurrency)

	var results []*worker.FileResult
	if info, statErr := os.Stat(input); statErr == nil && info.IsDir() {
		paths, globErr := filepath.Glob(filepath.Join(input, "*.json"))
		if globErr != nil {
			return fmt.Errorf("scan directory: %w", globErr)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no .json documents in %s", input)
		}
		results = processor.ProcessPaths(ctx, paths)
	} else {
		results, err = processor.ProcessList(ctx, input)
		if err != nil {
			return fmt.Errorf("process list: %w", err)
		}
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if err := result.GetError(); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}

		successCount++

		jsonPath := filepath.Join(outputDir, resultFilename(result.Path))
		if err := writeResultJSON(result.Result, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (%d products)\n", result.Path, len(result.Result.Products))
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// resultFilename derives the output file name from the input path.
func resultFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".result.json"
}
