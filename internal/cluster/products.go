package cluster

import (
	"sort"
	"strings"

	"github.com/pbankaus/akviza/internal/extract"
	"github.com/pbankaus/akviza/internal/filter"
	"github.com/pbankaus/akviza/internal/match"
	"github.com/pbankaus/akviza/internal/model"
	"github.com/pbankaus/akviza/internal/parse"
	"github.com/pbankaus/akviza/internal/recovery"
)

// rowTextTolerance is the band used to read the raw page text of one row.
const rowTextTolerance = 0.02

// Builder converts grouped rows into products. It keeps the source document
// at hand because several repairs need the raw page text around a row.
type Builder struct {
	doc *extract.Document
}

// NewBuilder returns a Builder reading row context from doc.
func NewBuilder(doc *extract.Document) *Builder {
	return &Builder{doc: doc}
}

// Products turns rows into products. Discount and surcharge rows are
// dropped, packaging rows are flagged, and named products get their volume
// and ABV repaired. Rows that cannot stand alone are returned as orphans
// for a later resolution pass.
func (b *Builder) Products(rows []*model.Row) (products, orphans []*model.Product) {
	for _, row := range rows {
		p := b.fromRow(row)
		if p == nil {
			continue
		}

		if p.Name == "" && p.HasNumericData() {
			orphans = append(orphans, p)
			continue
		}
		// Rows with a name but no numbers are usually the tail of a name
		// wrapped onto the next line ("Der Rheinberger Kräuterbitter"
		// under an Underberg row).
		if p.Name != "" && !p.HasNumericData() {
			p.NameContinuation = true
			orphans = append(orphans, p)
			continue
		}
		if p.Name == "" {
			continue
		}

		b.repairVolume(p)
		b.repairABV(p)
		products = append(products, p)
	}
	return products, orphans
}

// fromRow extracts the product fields of one row. Returns nil for rows that
// must not become products at all.
func (b *Builder) fromRow(row *model.Row) *model.Product {
	p := &model.Product{Page: row.Page, YCenter: row.YCenter}

	// Name fragments joined left to right. Product codes are deliberately
	// not part of the name.
	var names []model.Fragment
	for _, f := range row.Entities {
		if model.IsNameType(f.Type) {
			names = append(names, f)
		}
	}
	sort.SliceStable(names, func(i, j int) bool { return names[i].XStart < names[j].XStart })
	var parts []string
	for _, f := range names {
		if f.Text != "" {
			parts = append(parts, f.Text)
		}
	}
	p.Name = strings.TrimSpace(strings.Join(parts, " "))

	if f, ok := row.First(model.FragmentQuantity); ok {
		p.Quantity = parse.SafeFloat(f.Value(), 0)
	}
	if f, ok := row.First(model.FragmentUnitPrice); ok {
		p.UnitPrice = parse.SafeFloat(f.Value(), 0)
	}
	if f, ok := row.First(model.FragmentAmount); ok {
		p.Amount = parse.SafeFloat(f.Value(), 0)
	}
	if f, ok := volumeFragment(row); ok {
		if v, ok := parse.CleanVolume(f.Value()); ok {
			p.Volume = v
		}
	}
	if f, ok := row.First(model.FragmentABV); ok {
		p.ABV = parse.SafeFloat(f.Value(), 0)
	}

	lineText := strings.ToLower(extract.TextInRange(b.doc, row.Page, row.YCenter, rowTextTolerance))
	nameLower := strings.ToLower(p.Name)

	if match.ContainsAny(lineText, filter.DiscountKeywords) || match.ContainsAny(nameLower, filter.DiscountKeywords) {
		return nil
	}
	if match.ContainsAny(nameLower, filter.SurchargeKeywords) {
		return nil
	}

	// Packaging is decided on the name alone. The full line may mention
	// "Bottle" or similar words belonging to neighbouring products. Strong
	// alcohol and anything that reads like wine is never packaging, even
	// with zero ABV.
	if match.ContainsAny(nameLower, filter.PackagingKeywords) &&
		!match.ContainsAny(nameLower, filter.StrongAlcoholKeywords) &&
		!match.ContainsAny(nameLower, filter.WineIndicators) {
		p.IsPackaging = true
		p.Volume = 0
		p.ABV = 0
	}
	return p
}

// volumeFragment finds the row's volume, accepting a quantity fragment whose
// normalized value carries a liter unit when no volume fragment exists.
func volumeFragment(row *model.Row) (model.Fragment, bool) {
	if f, ok := row.First(model.FragmentVolume); ok {
		return f, true
	}
	for _, f := range row.Entities {
		if f.Type != model.FragmentQuantity || f.Normalized == "" {
			continue
		}
		lower := strings.ToLower(f.Normalized)
		if strings.Contains(lower, "liter") || strings.Contains(lower, "l") {
			return f, true
		}
	}
	return model.Fragment{}, false
}

// repairVolume fills a missing volume: from the name text first, then named
// bottle formats, falling back to a standard bottle. Surrounding page text
// is deliberately not consulted, it too often holds a neighbour's size.
func (b *Builder) repairVolume(p *model.Product) {
	if p.Volume > 0 || p.IsPackaging {
		return
	}
	nameLower := strings.ToLower(p.Name)
	if v, ok := recovery.ExtractVolume(p.Name); ok {
		p.Volume = v
		return
	}
	if match.ContainsAny(nameLower, []string{"packaging", "pakuotė", "dėžutė", "empty box", "empty gift box"}) {
		p.Volume = 0
		return
	}
	if v, ok := recovery.VolumeFromName(p.Name); ok {
		p.Volume = v
		return
	}
	p.Volume = recovery.DefaultVolume
}

// repairABV fills a missing ABV from the page text around the row, then the
// name. Packaging stays at zero.
func (b *Builder) repairABV(p *model.Product) {
	if p.IsPackaging {
		p.ABV = 0
		return
	}
	if p.ABV > 0 {
		return
	}
	if v, ok := recovery.ABVNearRow(b.doc, p.Page, p.YCenter); ok {
		p.ABV = v
		return
	}
	p.ABV = recovery.EstimateABV(p.Name)
}
