package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/pbankaus/akviza/internal/model"
)

// NewProvider creates a new LLM provider based on configuration.
func NewProvider(config Config, labels map[model.Category]string) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai", "deepseek":
		return NewOpenAIProvider(config, labels)

	case "":
		// No provider configured - return nil (LLM disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, deepseek)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:   modelConfig.Provider,
		Model:      modelConfig.Model,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    int(modelConfig.Timeout / time.Second),
		MaxTokens:  modelConfig.MaxTokens,
		HTTPProxy:  modelConfig.HTTPProxy,
		HTTPSProxy: modelConfig.HTTPSProxy,
	}
}
