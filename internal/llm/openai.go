package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/pbankaus/akviza/internal/model"
	"github.com/pbankaus/akviza/internal/util"
)

// OpenAIProvider implements the Provider interface for any OpenAI-compatible
// chat endpoint. DeepSeek is the production target, selected via BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	config Config
	labels map[model.Category]string
}

// NewOpenAIProvider creates a new OpenAI-compatible provider.
func NewOpenAIProvider(config Config, labels map[model.Category]string) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy),
		},
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		labels: labels,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	if p.config.Provider != "" {
		return p.config.Provider
	}
	return "openai"
}

// IsAvailable checks if the provider is properly configured.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		// Log the actual error for debugging (helps users diagnose API key issues)
		fmt.Fprintf(os.Stderr, "LLM API check failed: %v\n", err)
		return false
	}
	return true
}

func (p *OpenAIProvider) timeout() time.Duration {
	if p.config.Timeout > 0 {
		return time.Duration(p.config.Timeout) * time.Second
	}
	return 10 * time.Second
}

// ClassifyProduct asks the model for a category key. Temperature is pinned
// to zero: the same product must classify the same way every run.
func (p *OpenAIProvider) ClassifyProduct(ctx context.Context, name string, abv float64) (string, error) {
	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 50
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an excise duty expert. Your only task is to classify a drink by the given rules and return ONLY the category key. No explanation, no extra text.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildClassifyPrompt(name, abv, p.labels),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("classify %q: %w", name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("classify %q: empty response", name)
	}

	key := strings.TrimSpace(resp.Choices[0].Message.Content)
	key = strings.ReplaceAll(key, "`", "")
	return key, nil
}

var fencedJSONRe = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")

// ExtractSummary asks the model for the invoice-level discount and freight
// amounts. Models like to wrap JSON in a code fence, so both fenced and
// bare responses parse.
func (p *OpenAIProvider) ExtractSummary(ctx context.Context, documentText string) (SummaryResponse, error) {
	var summary SummaryResponse

	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a financial analyst. Your task is to find the discount and freight cost on an invoice and return them as JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildSummaryPrompt(documentText),
			},
		},
		MaxTokens:   300,
		Temperature: 0,
	})
	if err != nil {
		return summary, fmt.Errorf("extract summary: %w", err)
	}
	if len(resp.Choices) == 0 {
		return summary, fmt.Errorf("extract summary: empty response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if m := fencedJSONRe.FindStringSubmatch(content); m != nil {
		content = strings.TrimSpace(m[1])
	}
	if err := json.Unmarshal([]byte(content), &summary); err != nil {
		return SummaryResponse{}, fmt.Errorf("extract summary: parse response: %w", err)
	}
	return summary, nil
}
