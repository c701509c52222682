package excise

import (
	"math"
	"testing"
	"time"

	"github.com/pbankaus/akviza/internal/model"
)

func testConfig() model.ExciseConfig {
	return model.ExciseConfig{
		Tariffs: map[model.Category]float64{
			model.CategoryEthylAlcohol:       3130,
			model.CategoryIntermediate1522:   411,
			model.CategoryIntermediateUpTo15: 365,
			model.CategoryWine8515:           296,
			model.CategoryWineUpTo85:         148,
			model.CategorySparklingOver85:    296,
			model.CategorySparklingUpTo85:    148,
			model.CategoryBeer:               12.74,
		},
		Labels: map[model.Category]string{
			model.CategoryEthylAlcohol: "Ethyl alcohol",
			model.CategoryWine8515:     "Wine 8.5-15%",
			model.CategoryBeer:         "Beer",
		},
		VATRate: 1.21,
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPerUnitEthyl(t *testing.T) {
	c := NewCalculator(testConfig())
	p := &model.Product{Name: "Vodka", Volume: 0.7, ABV: 40, CategoryKey: model.CategoryEthylAlcohol}
	got := c.perUnit(p)
	want := 0.7 / 100 * 0.40 * 3130
	if !near(got, want) {
		t.Fatalf("perUnit = %v, want %v", got, want)
	}
}

func TestPerUnitBeerScalesWithABV(t *testing.T) {
	c := NewCalculator(testConfig())
	p := &model.Product{Name: "Lager", Volume: 0.5, ABV: 5, CategoryKey: model.CategoryBeer}
	got := c.perUnit(p)
	want := 0.5 / 100 * 5 * 12.74
	if !near(got, want) {
		t.Fatalf("perUnit = %v, want %v", got, want)
	}

	// Doubling the strength doubles the duty.
	p.ABV = 10
	if !near(c.perUnit(p), 2*want) {
		t.Fatalf("perUnit at 10%% = %v, want %v", c.perUnit(p), 2*want)
	}
}

func TestPerUnitWineIgnoresABV(t *testing.T) {
	c := NewCalculator(testConfig())
	p := &model.Product{Name: "Rioja", Volume: 0.75, ABV: 13.5, CategoryKey: model.CategoryWine8515}
	got := c.perUnit(p)
	want := 0.75 / 100 * 296
	if !near(got, want) {
		t.Fatalf("perUnit = %v, want %v", got, want)
	}
	p.ABV = 9
	if !near(c.perUnit(p), want) {
		t.Fatalf("duty changed with ABV inside the band")
	}
}

func TestPerUnitZeroCases(t *testing.T) {
	c := NewCalculator(testConfig())
	cases := []*model.Product{
		{Name: "Water", Volume: 0.5, CategoryKey: model.CategoryNonAlcohol},
		{Name: "Gin", Volume: 0, ABV: 40, CategoryKey: model.CategoryEthylAlcohol},
		{Name: "Mystery", Volume: 0.7, ABV: 40, CategoryKey: ""},
	}
	for _, p := range cases {
		if got := c.perUnit(p); got != 0 {
			t.Errorf("perUnit(%q) = %v, want 0", p.Name, got)
		}
	}
}

func TestEnrichTotalsAndVAT(t *testing.T) {
	c := NewCalculator(testConfig())
	p := &model.Product{
		Name: "Bordeaux", Quantity: 6, UnitPrice: 10, Amount: 60,
		Volume: 0.75, ABV: 13, CategoryKey: model.CategoryWine8515,
	}
	c.Enrich([]*model.Product{p}, 0)

	if !near(p.ExciseTotal, p.ExcisePerUnit*6) {
		t.Fatalf("ExciseTotal = %v, want %v", p.ExciseTotal, p.ExcisePerUnit*6)
	}
	wantCost := 10 + p.ExcisePerUnit
	if !near(p.CostWithoutVAT, wantCost) {
		t.Fatalf("CostWithoutVAT = %v, want %v", p.CostWithoutVAT, wantCost)
	}
	if !near(p.CostWithVAT, wantCost*1.21) {
		t.Fatalf("CostWithVAT = %v, want %v", p.CostWithVAT, wantCost*1.21)
	}
	if !near(p.CostWithVATTotal, p.CostWithVAT*6) {
		t.Fatalf("CostWithVATTotal = %v, want %v", p.CostWithVATTotal, p.CostWithVAT*6)
	}
	if p.CategoryLabel != "Wine 8.5-15%" {
		t.Fatalf("CategoryLabel = %q", p.CategoryLabel)
	}
}

func TestEnrichRecomputesAmountFromUnitPrice(t *testing.T) {
	c := NewCalculator(testConfig())
	p := &model.Product{
		Name: "Porto", Quantity: 3, UnitPrice: 12.5, Amount: 1, // OCR garbage
		Volume: 0.75, ABV: 20, CategoryKey: model.CategoryIntermediate1522,
	}
	c.Enrich([]*model.Product{p}, 0)
	if !near(p.Amount, 37.5) {
		t.Fatalf("Amount = %v, want 37.5", p.Amount)
	}
}

func TestEnrichTransportProportionalToVolume(t *testing.T) {
	c := NewCalculator(testConfig())
	a := &model.Product{
		Name: "Merlot", Quantity: 6, UnitPrice: 8, Volume: 0.75, ABV: 13,
		CategoryKey: model.CategoryWine8515,
	}
	b := &model.Product{
		Name: "Ale", Quantity: 12, UnitPrice: 2, Volume: 0.5, ABV: 5,
		CategoryKey: model.CategoryBeer,
	}
	// Shipped volume: 4.5 + 6.0 liters, so 21 EUR splits 9 / 12.
	c.Enrich([]*model.Product{a, b}, 21)

	if !near(a.TransportTotal, 9) {
		t.Fatalf("a.TransportTotal = %v, want 9", a.TransportTotal)
	}
	if !near(b.TransportTotal, 12) {
		t.Fatalf("b.TransportTotal = %v, want 12", b.TransportTotal)
	}
	if !near(a.TransportTotal+b.TransportTotal, 21) {
		t.Fatalf("allocation does not sum to the freight total")
	}
	if !near(a.TransportPerUnit, 1.5) {
		t.Fatalf("a.TransportPerUnit = %v, want 1.5", a.TransportPerUnit)
	}
}

func TestEnrichGlasswareNominalVolume(t *testing.T) {
	c := NewCalculator(testConfig())
	wine := &model.Product{
		Name: "Chianti", Quantity: 1, UnitPrice: 10, Volume: 1.8, ABV: 13,
		CategoryKey: model.CategoryWine8515,
	}
	glass := &model.Product{
		Name: "Spiegelau wine glass", Quantity: 1, UnitPrice: 5,
		CategoryKey: model.CategoryNonAlcohol,
	}
	// Freight volume: 1.8 + nominal 0.2 liters, so glassware gets 10%.
	c.Enrich([]*model.Product{wine, glass}, 10)
	if !near(glass.TransportTotal, 1) {
		t.Fatalf("glass.TransportTotal = %v, want 1", glass.TransportTotal)
	}
	if !near(wine.TransportTotal, 9) {
		t.Fatalf("wine.TransportTotal = %v, want 9", wine.TransportTotal)
	}
}

func TestTariffsValidAt(t *testing.T) {
	cfg := testConfig()
	cfg.ValidFrom = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.ValidTo = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	c := NewCalculator(cfg)

	if !c.TariffsValidAt(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("mid-window date reported invalid")
	}
	if c.TariffsValidAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date before window reported valid")
	}
	if c.TariffsValidAt(time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date after window reported valid")
	}
}

func TestApplyDiscountProportional(t *testing.T) {
	a := &model.Product{Name: "A", Quantity: 2, UnitPrice: 50, Amount: 100}
	b := &model.Product{Name: "B", Quantity: 10, UnitPrice: 30, Amount: 300}
	ApplyDiscount([]*model.Product{a, b}, 40)

	if !near(a.AmountWithDiscount, 90) {
		t.Fatalf("a.AmountWithDiscount = %v, want 90", a.AmountWithDiscount)
	}
	if !near(b.AmountWithDiscount, 270) {
		t.Fatalf("b.AmountWithDiscount = %v, want 270", b.AmountWithDiscount)
	}
	if !near(a.UnitPriceWithDiscount, 45) {
		t.Fatalf("a.UnitPriceWithDiscount = %v, want 45", a.UnitPriceWithDiscount)
	}
	if !near(a.DiscountPercentage, 10) {
		t.Fatalf("a.DiscountPercentage = %v, want 10", a.DiscountPercentage)
	}
}

func TestApplyDiscountSkipsLinesWithoutAmount(t *testing.T) {
	a := &model.Product{Name: "A", Quantity: 2, UnitPrice: 50, Amount: 100}
	b := &model.Product{Name: "B", UnitPrice: 7} // no amount, no quantity
	ApplyDiscount([]*model.Product{a, b}, 10)

	if !near(b.UnitPriceWithDiscount, 7) {
		t.Fatalf("b.UnitPriceWithDiscount = %v, want 7", b.UnitPriceWithDiscount)
	}
	if !near(b.DiscountPercentage, 10) {
		t.Fatalf("b.DiscountPercentage = %v, want 10", b.DiscountPercentage)
	}
}

func TestApplyDiscountZeroDiscount(t *testing.T) {
	a := &model.Product{Name: "A", Quantity: 2, UnitPrice: 50, Amount: 100}
	ApplyDiscount([]*model.Product{a}, 0)
	if !near(a.UnitPriceWithDiscount, 50) || !near(a.AmountWithDiscount, 100) {
		t.Fatalf("zero discount changed prices: %v / %v", a.UnitPriceWithDiscount, a.AmountWithDiscount)
	}
}
