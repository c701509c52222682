// Package llm talks to an OpenAI-compatible chat endpoint for the two jobs
// the rule engines cannot do well: classifying unusual product names and
// finding invoice-level discount and freight amounts in free text.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbankaus/akviza/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// ClassifyProduct returns an excise category key for the product.
	// The response is a raw key; callers must validate it against the
	// closed category set before trusting it.
	ClassifyProduct(ctx context.Context, name string, abv float64) (string, error)

	// ExtractSummary finds the invoice-level discount and freight amounts
	// in the raw document text.
	ExtractSummary(ctx context.Context, documentText string) (SummaryResponse, error)

	// IsAvailable checks if the provider is properly configured and
	// reachable.
	IsAvailable(ctx context.Context) bool
}

// SummaryResponse is the invoice-level data the model found.
type SummaryResponse struct {
	// DiscountAmount is the invoice discount; negative on most invoices.
	DiscountAmount float64 `json:"discount_amount"`
	// TransportAmount is the freight total, 0 when none was found.
	TransportAmount float64 `json:"transport_amount"`
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "deepseek", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the endpoint
	APIKey string

	// BaseURL for OpenAI-compatible endpoints
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for classification responses
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "deepseek-chat",
		BaseURL:   "https://api.deepseek.com/v1",
		Timeout:   10,
		MaxTokens: 50,
	}
}

// BuildClassifyPrompt constructs the classification prompt. The model is
// boxed in hard: a closed key list, explicit precedence rules and a
// key-only response format.
func BuildClassifyPrompt(name string, abv float64, labels map[model.Category]string) string {
	var categories strings.Builder
	for _, key := range model.Categories {
		fmt.Fprintf(&categories, "- `%s`: %s\n", key, labels[key])
	}

	return fmt.Sprintf(`You are an excise duty expert classifying alcoholic drinks. Classify the product below with absolute precision.

Product name: %q
Alcohol by volume: %.1f%%

Allowed category keys:
%s
Hard rules, in order of precedence:
1. Spirits (whisky, whiskey, rum, cognac, brandy, tequila, gin, vodka, grappa, calvados, pisco, arak) are ALWAYS ethyl_alcohol.
2. Liqueurs (St Germain, Sheridan's, Cointreau, Jagermeister, Amaretto, Baileys) are ALWAYS ethyl_alcohol.
3. Amaro and bitters (Fernet Branca, Aperol, Campari) are ALWAYS ethyl_alcohol.
4. Ignore accessories in the name such as "+ GB", "+ Glass", "Gift Box". "Glen Grant 12 Years + GB" is a whisky, so ethyl_alcohol.
5. Champagne, Prosecco, Cava, Spumante, Asti go to the sparkling wine key matching the ABV.
6. Port, Sherry, Madeira, Marsala go to the intermediate key matching the ABV.
7. All other wines go to the still wine key matching the ABV.
8. Non-drinks (glasses, gift boxes, decanters) are non_alcohol.

Respond with exactly one category key from the list. No other text.`, name, abv, categories.String())
}

// BuildSummaryPrompt constructs the discount and freight extraction prompt.
func BuildSummaryPrompt(documentText string) string {
	// Cap the text so one giant invoice cannot blow the token budget.
	if len(documentText) > 30000 {
		documentText = documentText[:30000]
	}
	return fmt.Sprintf(`Analyze this invoice text and find:
1. The total discount amount. Look for lines with keywords: 'ESCOMPTE', 'Discount', 'Nuolaida', 'Rabatt', 'Remise', 'Descuento', 'Sconto'.
2. The freight cost. Look for lines with keywords: 'Freight', 'Transport', 'Fracht', 'Livraison', 'Spedizione', 'Vracht', 'Transporte', 'Shipping', 'Delivery'.

IMPORTANT: ignore these even when they carry freight keywords:
- 'Pallets' or 'Pallet' lines, those are goods, not freight
- Any alcoholic drinks (wine, beer, whiskey, vodka and so on)

Return a JSON object with two keys: 'discount_amount' and 'transport_amount'.
Values must be numbers (the discount may be negative). Return 0.0 when not found.

Example: {"discount_amount": -50.0, "transport_amount": 150.0}

Text:
---
%s
---`, documentText)
}
