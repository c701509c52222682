package classify

import (
	"context"
	"testing"

	"github.com/pbankaus/akviza/internal/model"
)

func ruleClassifier() *RuleClassifier {
	return NewRuleClassifier(model.ClassifyConfig{
		ForcedWineKeywords:   []string{"acediano"},
		ForcedSpiritKeywords: []string{"navimer", "alcohol pur"},
	})
}

func TestRuleClassifierCascade(t *testing.T) {
	c := ruleClassifier()
	ctx := context.Background()

	cases := []struct {
		name   string
		abv    float64
		volume float64
		want   model.Category
	}{
		// Spirits decide on the keyword alone.
		{"Absolut Vodka", 40, 0.7, model.CategoryEthylAlcohol},
		{"Laphroaig 10 Years", 40, 0.7, model.CategoryEthylAlcohol},
		{"Baileys Irish Cream", 17, 0.7, model.CategoryEthylAlcohol},
		// The spirit keyword wins even when the name mentions a glass.
		{"Underberg bitter + glass", 44, 0.02, model.CategoryEthylAlcohol},

		// Beer splits on the 1.2% line.
		{"Heineken Lager", 5, 0.5, model.CategoryBeer},
		{"Heineken Lager 0.0", 0, 0.5, model.CategoryNonAlcohol},

		// Sparkling wines by house name and by style.
		{"Dom Perignon Vintage 2013", 12.5, 0.75, model.CategorySparklingOver85},
		{"Prosecco Frizzante", 5.5, 0.75, model.CategorySparklingUpTo85},
		// A "sec" still wine must not ride the brut/sparkling keywords.
		{"Bergerac Blanc Sec", 12, 0.75, model.CategoryWine8515},

		// Intermediate products band on ABV.
		{"Taylor's Tawny Port", 20, 0.75, model.CategoryIntermediate1522},
		{"Sherry Fino", 15, 0.75, model.CategoryIntermediateUpTo15},

		// Wines band on ABV, with high-strength styles kept as wine.
		{"Rioja Reserva", 13.5, 0.75, model.CategoryWine8515},
		{"Vinho Verde white", 8, 0.75, model.CategoryWineUpTo85},
		{"Primitivo di Manduria", 16, 0.75, model.CategoryWine8515},

		// No keyword at all: residual ABV banding.
		{"Mystery bottling", 40, 0.7, model.CategoryEthylAlcohol},
		{"Mystery bottling", 18, 0.75, model.CategoryIntermediate1522},
		{"Mystery bottling", 12, 0.75, model.CategoryWine8515},
		{"Mystery bottling", 4, 0.75, model.CategoryWineUpTo85},

		// Non-products.
		{"Spiegelau wine glass", 0, 0, model.CategoryNonAlcohol},
		{"Single gift box", 0, 0, model.CategoryNonAlcohol},
		{"(no name)", 0, 0.75, model.CategoryNonAlcohol},

		// Forced keyword lists.
		{"Acediano", 13, 0.75, model.CategoryWine8515},
		{"Navimer Alcohol Pur", 96, 1.0, model.CategoryEthylAlcohol},
	}

	for _, c2 := range cases {
		got, err := c.Classify(ctx, c2.name, c2.abv, c2.volume)
		if err != nil {
			t.Fatalf("Classify(%q) error: %v", c2.name, err)
		}
		if got != c2.want {
			t.Errorf("Classify(%q, %v%%) = %s, want %s", c2.name, c2.abv, got, c2.want)
		}
	}
}

func TestRuleClassifierDeterministic(t *testing.T) {
	c := ruleClassifier()
	ctx := context.Background()

	first, _ := c.Classify(ctx, "Chateau Margaux 2015", 13.5, 0.75)
	for i := 0; i < 10; i++ {
		got, _ := c.Classify(ctx, "Chateau Margaux 2015", 13.5, 0.75)
		if got != first {
			t.Fatalf("classification not deterministic: %s vs %s", got, first)
		}
	}
}

func TestRuleClassifierNegativeInputsClamped(t *testing.T) {
	c := ruleClassifier()

	got, err := c.Classify(context.Background(), "Mystery bottling", -5, -1)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if got != model.CategoryNonAlcohol {
		t.Errorf("Classify with negative inputs = %s, want %s", got, model.CategoryNonAlcohol)
	}
}

func TestRuleClassifierExceptions(t *testing.T) {
	cfg := model.ClassifyConfig{
		ForceNonAlcoholExact:    []string{"ginger beer"},
		ForceNonAlcoholCombined: [][]string{{"tonic", "water"}},
	}
	c := NewRuleClassifier(cfg)
	ctx := context.Background()

	got, _ := c.Classify(ctx, "Old Jamaica Ginger Beer", 0.5, 0.33)
	if got != model.CategoryNonAlcohol {
		t.Errorf("exception exact: got %s", got)
	}

	got, _ = c.Classify(ctx, "Fever Tree Tonic Water", 0, 0.2)
	if got != model.CategoryNonAlcohol {
		t.Errorf("exception combined: got %s", got)
	}
}
