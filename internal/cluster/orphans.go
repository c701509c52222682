package cluster

import (
	"math"
	"regexp"
	"strings"

	"github.com/pbankaus/akviza/internal/extract"
	"github.com/pbankaus/akviza/internal/filter"
	"github.com/pbankaus/akviza/internal/match"
	"github.com/pbankaus/akviza/internal/model"
	"github.com/pbankaus/akviza/internal/recovery"
)

// Orphan pairing windows, relative to the candidate product above.
const (
	// continuationWindow allows a wrapped name to sit several lines below
	// its row.
	continuationWindow = 0.15
	// Numeric orphans must sit between just above and 10% below the row
	// their numbers belong to.
	numericWindowAbove = 0.01
	numericWindowBelow = 0.10
	// orphanNameTolerance is the band searched for a name when an orphan
	// is promoted to a product of its own.
	orphanNameTolerance = 0.05
)

var numericOnlyRe = regexp.MustCompile(`^[\d\s.,€]+$`)

// ResolveOrphans pairs leftover rows with the products they belong to.
// Numeric orphans fill a nearby product's missing fields; name continuations
// extend a nearby product's name. An orphan with nothing to pair with is
// promoted to a product of its own when it carries a price.
func (b *Builder) ResolveOrphans(products, orphans []*model.Product) []*model.Product {
	for _, orphan := range orphans {
		target := b.pairTarget(products, orphan)

		// Two complete products never merge: the orphan is a real row the
		// name clustering missed, not a broken half.
		if target != nil && orphan.IsComplete() && target.IsComplete() {
			target = nil
		}

		if target != nil {
			b.mergeInto(target, orphan)
			continue
		}
		if p := b.promote(orphan); p != nil {
			products = append(products, p)
		}
	}
	return products
}

// pairTarget finds the closest product the orphan could belong to.
// Continuations look strictly upward; numeric orphans may also sit a hair
// above their row.
func (b *Builder) pairTarget(products []*model.Product, orphan *model.Product) *model.Product {
	var best *model.Product
	bestDist := math.Inf(1)
	for _, p := range products {
		if p.Page != orphan.Page {
			continue
		}
		dist := orphan.YCenter - p.YCenter
		if orphan.NameContinuation {
			if dist <= 0 || dist > continuationWindow {
				continue
			}
		} else {
			if dist < -numericWindowAbove || dist > numericWindowBelow {
				continue
			}
		}
		if d := math.Abs(dist); d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

// mergeInto folds the orphan's data into the target product.
func (b *Builder) mergeInto(target, orphan *model.Product) {
	if target.Quantity == 0 {
		target.Quantity = orphan.Quantity
	}
	if target.UnitPrice == 0 {
		target.UnitPrice = orphan.UnitPrice
	}
	if target.Amount == 0 {
		target.Amount = orphan.Amount
	}

	if orphan.NameContinuation && orphan.Name != "" {
		if !strings.Contains(target.Name, orphan.Name) {
			target.Name = strings.TrimSpace(target.Name + " " + orphan.Name)
		}
	} else {
		// Read the orphan's raw line: wrapped names and stray ABV or
		// volume often live there ("Oloroso ... 46%").
		text := extract.TextAtRow(b.doc, orphan.Page, orphan.YCenter, rowTextTolerance)
		if text != "" {
			if !strings.Contains(target.Name, text) && !numericOnlyRe.MatchString(text) {
				target.Name = strings.TrimSpace(target.Name + " " + text)
			}
			if abv, ok := recovery.ExtractABV(text); ok {
				// The orphan line's ABV is more specific than a guessed
				// or defaulted one, so it wins over a differing value.
				if target.ABV == 0 || abv != target.ABV {
					target.ABV = abv
				}
			}
			if vol, ok := recovery.ExtractVolume(text); ok && target.Volume == 0 {
				target.Volume = vol
			}
		}
	}

	if orphan.ABV > 0 && target.ABV == 0 {
		target.ABV = orphan.ABV
	}
	if orphan.Volume > 0 && target.Volume == 0 {
		target.Volume = orphan.Volume
	}
	if target.UnitPrice == 0 && target.Quantity > 0 && target.Amount > 0 {
		target.UnitPrice = target.Amount / target.Quantity
	}
}

// promote turns an unpaired orphan into a standalone product, or returns
// nil when the row should be dropped.
func (b *Builder) promote(orphan *model.Product) *model.Product {
	if orphan.UnitPrice == 0 && orphan.Amount == 0 {
		return nil
	}
	if b.isPalletRow(orphan.Page, orphan.YCenter) {
		return nil
	}
	if orphan.Name == "" {
		if text := extract.TextAtRow(b.doc, orphan.Page, orphan.YCenter, orphanNameTolerance); text != "" {
			orphan.Name = text
		} else {
			orphan.Name = model.UnnamedProduct
		}
	}
	if match.ContainsAny(strings.ToLower(orphan.Name), filter.SurchargeKeywords) {
		return nil
	}
	return orphan
}

// isPalletRow checks the raw page text at the given position for pallet
// wording.
func (b *Builder) isPalletRow(page int, y float64) bool {
	text := extract.TextAtRow(b.doc, page, y, rowTextTolerance)
	if text == "" {
		return false
	}
	return match.ContainsAny(strings.ToLower(text), filter.PalletRowKeywords)
}
