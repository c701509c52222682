// Package excise computes the duty, freight share and landed cost of each
// product line from the configured tariff table.
package excise

import (
	"time"

	"github.com/pbankaus/akviza/internal/match"
	"github.com/pbankaus/akviza/internal/model"
)

// glasswareKeywords identify drinkware lines. Glassware ships boxed and
// light, so freight allocation uses a nominal volume instead of zero.
var glasswareKeywords = []string{
	"glas", "glass", "taure", "taures", "stiklinė", "stiklines", "goblet",
	"bokalas", "bokalai", "kupa", "čižas", "čiažai", "decanter", "dekanteris",
	"spiegelau", "schott", "ravenscroft", "nordic", "orrefors",
}

// glasswareTransportVolume is the nominal liters-per-piece used when
// splitting freight over glassware lines.
const glasswareTransportVolume = 0.2

// Calculator applies the tariff table to classified products.
type Calculator struct {
	cfg model.ExciseConfig
}

// NewCalculator returns a Calculator over the given tariff table.
func NewCalculator(cfg model.ExciseConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// TariffsValidAt reports whether the tariff table covers the given date.
// An empty window means no restriction.
func (c *Calculator) TariffsValidAt(t time.Time) bool {
	if !c.cfg.ValidFrom.IsZero() && t.Before(c.cfg.ValidFrom) {
		return false
	}
	if !c.cfg.ValidTo.IsZero() && t.After(c.cfg.ValidTo) {
		return false
	}
	return true
}

// transportVolume is the per-piece volume used for freight allocation.
func transportVolume(p *model.Product) float64 {
	if p.Quantity > 0 && match.ContainsAny(p.Name, glasswareKeywords) {
		return glasswareTransportVolume
	}
	return p.Volume
}

// Enrich fills the duty, freight and cost fields of every product. Freight
// is split proportionally to shipped volume (volume times quantity), duty
// follows the category's tariff, and costs carry the configured VAT rate.
// Products must already be classified.
func (c *Calculator) Enrich(products []*model.Product, transportTotal float64) {
	// Total shipped volume, the denominator of the freight split.
	var totalShipped float64
	for _, p := range products {
		if v := transportVolume(p); p.Quantity > 0 && v > 0 {
			totalShipped += v * p.Quantity
		}
	}

	for _, p := range products {
		// Amounts derive from unit prices whenever a quantity exists, so
		// corrected prices propagate.
		if p.Quantity > 0 {
			p.Amount = p.UnitPrice * p.Quantity
		}
		if p.UnitPriceWithDiscount == 0 {
			p.UnitPriceWithDiscount = p.UnitPrice
		}
		if p.Quantity > 0 {
			p.AmountWithDiscount = p.UnitPriceWithDiscount * p.Quantity
		} else if p.AmountWithDiscount == 0 {
			p.AmountWithDiscount = p.Amount
		}

		p.CategoryLabel = c.cfg.Labels[p.CategoryKey]
		p.ExcisePerUnit = c.perUnit(p)
		p.ExciseTotal = p.ExcisePerUnit * p.Quantity

		p.TransportPerUnit = 0
		p.TransportTotal = 0
		if v := transportVolume(p); p.Quantity > 0 && v > 0 && totalShipped > 0 && transportTotal > 0 {
			p.TransportTotal = transportTotal * (v * p.Quantity / totalShipped)
			p.TransportPerUnit = p.TransportTotal / p.Quantity
		}

		p.CostWithoutVAT = p.UnitPriceWithDiscount + p.ExcisePerUnit + p.TransportPerUnit
		p.CostWithVAT = p.CostWithoutVAT * c.cfg.VATRate
		p.CostWithoutVATTotal = p.CostWithoutVAT * p.Quantity
		p.CostWithVATTotal = p.CostWithVAT * p.Quantity
	}
}

// perUnit computes the duty for one bottle. Tariffs are EUR per hectoliter;
// ethyl alcohol is taxed on pure alcohol content and beer per ABV percent.
func (c *Calculator) perUnit(p *model.Product) float64 {
	if p.CategoryKey == model.CategoryNonAlcohol || p.Volume <= 0 {
		return 0
	}
	rate, ok := c.cfg.Tariffs[p.CategoryKey]
	if !ok {
		return 0
	}
	hl := p.Volume / 100.0
	switch p.CategoryKey {
	case model.CategoryEthylAlcohol:
		return hl * (p.ABV / 100.0) * rate
	case model.CategoryBeer:
		return hl * p.ABV * rate
	default:
		return hl * rate
	}
}
