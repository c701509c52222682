package model

import "time"

// Config holds the full pipeline configuration. Every business table the
// classifier and calculator consult lives here so that callers can override
// tariffs and keyword lists without touching code; DefaultConfig carries the
// built-in values.
type Config struct {
	Excise      ExciseConfig      `yaml:"excise" json:"excise"`
	Classify    ClassifyConfig    `yaml:"classify" json:"classify"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Transport   TransportConfig   `yaml:"transport" json:"transport"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// ExciseConfig holds the tariff table and category labels.
type ExciseConfig struct {
	// Tariffs maps category key to duty rate. Rates are EUR per hectoliter,
	// except ethyl_alcohol (per hectoliter of pure alcohol) and beer (per
	// ABV-percent per hectoliter).
	Tariffs map[Category]float64 `yaml:"tariffs" json:"tariffs"`

	// Labels maps category key to a human-readable description.
	Labels map[Category]string `yaml:"labels" json:"labels"`

	// Validity window of the tariff table.
	ValidFrom time.Time `yaml:"valid_from" json:"valid_from"`
	ValidTo   time.Time `yaml:"valid_to" json:"valid_to"`

	// VATRate is the fixed value-added-tax multiplier.
	VATRate float64 `yaml:"vat_rate" json:"vat_rate"`
}

// ClassifyConfig holds the curated exception lists consulted by the
// classifier before the keyword cascade. The three shapes match the external
// exceptions file: exact product names, all-keywords-combined groups, and
// any-keyword lists.
type ClassifyConfig struct {
	ExceptionsFile string `yaml:"exceptions_file" json:"exceptions_file"`

	ForceNonAlcoholExact    []string   `yaml:"force_non_alcohol_exact" json:"force_non_alcohol_exact"`
	ForceNonAlcoholCombined [][]string `yaml:"force_non_alcohol_combined" json:"force_non_alcohol_combined"`
	ForceNonAlcoholContains []string   `yaml:"force_non_alcohol_contains" json:"force_non_alcohol_contains"`

	// Hard overrides evaluated before any cache or external lookup.
	ForcedWineKeywords   []string `yaml:"forced_wine_keywords" json:"forced_wine_keywords"`
	ForcedSpiritKeywords []string `yaml:"forced_spirit_keywords" json:"forced_spirit_keywords"`
}

// LLMConfig configures the external classification collaborator.
type LLMConfig struct {
	// Provider name: "openai", "deepseek", "" (disabled).
	Provider string `yaml:"provider" json:"provider"`
	Model    string `yaml:"model" json:"model"`
	APIKey   string `yaml:"api_key" json:"-"`
	BaseURL  string `yaml:"base_url" json:"base_url"`

	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	MaxTokens int           `yaml:"max_tokens" json:"max_tokens"`

	// RequestsPerSecond bounds outbound API calls.
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`

	// Proxy settings for the HTTP client.
	HTTPProxy  string `yaml:"http_proxy" json:"-"`
	HTTPSProxy string `yaml:"https_proxy" json:"-"`
}

// CacheConfig configures the classification and result caches.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Dir     string `yaml:"dir" json:"dir"`

	// ClassificationTTL bounds how long a (name, ABV) -> category entry lives.
	ClassificationTTL time.Duration `yaml:"classification_ttl" json:"classification_ttl"`

	// ResultTTL bounds how long a whole-document result lives.
	ResultTTL time.Duration `yaml:"result_ttl" json:"result_ttl"`
}

// TransportConfig bounds plausible freight amounts.
type TransportConfig struct {
	// MaxAmount rejects implausibly large detected transport amounts.
	MaxAmount float64 `yaml:"max_amount" json:"max_amount"`
}

// ConcurrencyConfig configures batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// OutputConfig configures CLI rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in configuration: the 2026 tariff table and
// the curated keyword lists.
func DefaultConfig() *Config {
	return &Config{
		Excise: ExciseConfig{
			Tariffs: map[Category]float64{
				CategoryEthylAlcohol:       3130.0,
				CategoryIntermediate1522:   411.0,
				CategoryIntermediateUpTo15: 365.0,
				CategoryWine8515:           296.0,
				CategoryWineUpTo85:         148.0,
				CategorySparklingOver85:    296.0,
				CategorySparklingUpTo85:    148.0,
				CategoryBeer:               12.74,
			},
			Labels: map[Category]string{
				CategoryEthylAlcohol:       "Ethyl alcohol (spirits, liqueurs)",
				CategoryIntermediate1522:   "Intermediate product >15%-22% (port, sherry)",
				CategoryIntermediateUpTo15: "Intermediate product >1.2%-15% (vermouth)",
				CategoryWine8515:           "Still wine/fermented >8.5%-15%",
				CategoryWineUpTo85:         "Still wine/fermented >1.2%-8.5%",
				CategorySparklingOver85:    "Sparkling wine/fermented >8.5%",
				CategorySparklingUpTo85:    "Sparkling wine/fermented >1.2%-8.5%",
				CategoryBeer:               "Beer",
				CategoryNonAlcohol:         "Non-alcoholic/untaxed",
			},
			ValidFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			ValidTo:   time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
			VATRate:   1.21,
		},
		Classify: ClassifyConfig{
			ExceptionsFile:       "",
			ForcedWineKeywords:   []string{"acediano"},
			ForcedSpiritKeywords: []string{"navimer", "alcohol pur", "rectified spirit", "spirytus"},
		},
		LLM: LLMConfig{
			Provider:          "", // Disabled by default
			Model:             "deepseek-chat",
			BaseURL:           "https://api.deepseek.com/v1",
			Timeout:           10 * time.Second,
			MaxTokens:         50,
			RequestsPerSecond: 2,
		},
		Cache: CacheConfig{
			Enabled:           true,
			Dir:               ".akviza-cache",
			ClassificationTTL: 720 * time.Hour, // 30 days
			ResultTTL:         24 * time.Hour,
		},
		Transport: TransportConfig{
			MaxAmount: 10000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{},
	}
}
