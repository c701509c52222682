package model

// Category is one of the fixed fiscal classes determining the applicable
// excise duty tariff. The enumeration is closed: anything outside it coming
// back from an external collaborator is treated as a miss.
type Category string

const (
	CategoryEthylAlcohol        Category = "ethyl_alcohol"
	CategoryIntermediate1522    Category = "intermediate_15_22"
	CategoryIntermediateUpTo15  Category = "intermediate_up_to_15"
	CategoryWine8515            Category = "wine_8.5_15"
	CategoryWineUpTo85          Category = "wine_up_to_8.5"
	CategorySparklingOver85     Category = "sparkling_wine_over_8_5"
	CategorySparklingUpTo85     Category = "sparkling_wine_up_to_8_5"
	CategoryBeer                Category = "beer"
	CategoryNonAlcohol          Category = "non_alcohol"
)

// Categories lists every valid category key.
var Categories = []Category{
	CategoryEthylAlcohol,
	CategoryIntermediate1522,
	CategoryIntermediateUpTo15,
	CategoryWine8515,
	CategoryWineUpTo85,
	CategorySparklingOver85,
	CategorySparklingUpTo85,
	CategoryBeer,
	CategoryNonAlcohol,
}

// ValidCategory reports whether s is a member of the closed enumeration.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// UnnamedProduct is the placeholder name given to a row promoted to a
// product without a recoverable name. Such rows are never alcohol.
const UnnamedProduct = "(no name)"

// Product is the unit passed to classification and costing. It is created by
// field extraction from a row and progressively enriched: name cleanup,
// packaging flag, volume/ABV recovery, classification, cost calculation.
type Product struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
	Volume    float64 `json:"volume"` // Liters
	ABV       float64 `json:"abv"`    // Percent, 0-99

	IsPackaging bool `json:"is_packaging,omitempty"`

	// Discount allocation, filled before excise enrichment.
	UnitPriceWithDiscount float64 `json:"unit_price_with_discount"`
	AmountWithDiscount    float64 `json:"amount_with_discount"`
	DiscountPercentage    float64 `json:"discount_percentage"`

	// Classification and costing, filled by enrichment.
	CategoryKey         Category `json:"excise_category_key,omitempty"`
	CategoryLabel       string   `json:"excise_category,omitempty"`
	ExcisePerUnit       float64  `json:"excise_per_unit"`
	ExciseTotal         float64  `json:"excise_total"`
	TransportPerUnit    float64  `json:"transport_per_unit"`
	TransportTotal      float64  `json:"transport_total"`
	CostWithoutVAT      float64  `json:"cost_wo_vat"`
	CostWithVAT         float64  `json:"cost_w_vat"`
	CostWithoutVATTotal float64  `json:"cost_wo_vat_total"`
	CostWithVATTotal    float64  `json:"cost_w_vat_total"`

	// Clustering metadata, dropped from serialized output.
	Page    int     `json:"-"`
	YCenter float64 `json:"-"`

	// Orphan bookkeeping used only during resolution.
	NameContinuation bool `json:"-"`
}

// HasNumericData reports whether the product carries any quantity, price or
// amount information. Rows without numeric data are orphan candidates.
func (p *Product) HasNumericData() bool {
	return p.Quantity > 0 || p.UnitPrice > 0 || p.Amount > 0
}

// IsComplete reports whether the product has both a quantity and a price or
// amount. Two complete products are never merged during orphan resolution.
func (p *Product) IsComplete() bool {
	return p.Quantity > 0 && (p.UnitPrice > 0 || p.Amount > 0)
}
