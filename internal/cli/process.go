package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pbankaus/akviza/internal/model"
	"github.com/pbankaus/akviza/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON         string
	timeout         time.Duration
	transportAmount float64
	exceptionsFile  string
	noCache         bool
	clearCache      bool
	llmEnabled      bool
	llmProvider     string
	llmModel        string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <document.json>",
	Short: "Process one invoice extraction result into a priced product list",
	Long: `Process reads an OCR extraction result (JSON) and:
- Groups the recognized fragments into product rows
- Recovers missing bottle volumes and ABV from product names
- Separates freight and pallet rows from the products
- Classifies every product into its excise duty category
- Computes duty, freight share and final cost with VAT per bottle

Example:
  akviza process invoice.json
  akviza process invoice.json --json result.json --transport 150
  akviza process invoice.json --llm --llm-model deepseek-chat`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")

	// Processing flags
	processCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall processing timeout")
	processCmd.Flags().Float64Var(&transportAmount, "transport", 0, "manual transport amount, overrides detection")
	processCmd.Flags().StringVar(&exceptionsFile, "exceptions", "", "YAML file with classification exception keywords")
	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh processing)")
	processCmd.Flags().BoolVar(&clearCache, "clear-cache", false, "drop cached classifications and results first")

	// LLM flags
	processCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM classification and summary extraction")
	processCmd.Flags().StringVar(&llmProvider, "llm-provider", "deepseek", "LLM provider (deepseek, openai)")
	processCmd.Flags().StringVar(&llmModel, "llm-model", "deepseek-chat", "LLM model name")
}

// buildConfig assembles the pipeline configuration from flags and env.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Classify.ExceptionsFile = exceptionsFile

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "deepseek":
			cfg.LLM.APIKey = os.Getenv("DEEPSEEK_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("DEEPSEEK_API_KEY environment variable not set")
			}
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
			cfg.LLM.BaseURL = ""
		}

		cfg.LLM.HTTPProxy = os.Getenv("HTTP_PROXY")
		cfg.LLM.HTTPSProxy = os.Getenv("HTTPS_PROXY")
	}

	return cfg, nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if clearCache {
		if err := p.ClearCache(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: clear cache: %v\n", err)
		}
	}

	if !p.TariffsValid() {
		fmt.Fprintf(os.Stderr, "Warning: the built-in tariff table does not cover today's date\n")
	}

	result := p.ProcessFile(ctx, path, pipeline.Options{TransportAmount: transportAmount})
	if result.Failed() {
		return fmt.Errorf("process failed: %s", result.Error)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d products\n", len(result.Products))
		fmt.Fprintf(os.Stderr, "✓ Transport: %.2f EUR (%s)\n", result.Summary.TransportAmount, result.Summary.TransportSource)
		fmt.Fprintln(os.Stderr)
	}

	if outJSON != "" {
		if err := writeResultJSON(result, outJSON); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	renderResult(os.Stdout, result)
	return nil
}
