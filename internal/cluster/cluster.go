package cluster

import (
	"strings"

	"github.com/pbankaus/akviza/internal/model"
)

// ghostMergeWindow is how far below a product an empty row may sit and
// still be treated as the tail of that product's name.
const ghostMergeWindow = 0.06

// Extract runs the full grouping pass: rows, products, orphan resolution,
// ghost cleanup and amount back-fill. The result is in reading order.
func (b *Builder) Extract(fragments []model.Fragment) []*model.Product {
	rows := BuildRows(fragments)
	products, orphans := b.Products(rows)
	products = b.ResolveOrphans(products, orphans)
	products = mergeGhosts(products)
	backfillAmounts(products)
	return products
}

// mergeGhosts folds products that still have no numbers after orphan
// resolution into the product directly above them. Anything empty and too
// far from a neighbour survives as is.
func mergeGhosts(products []*model.Product) []*model.Product {
	if len(products) == 0 {
		return products
	}
	out := products[:1]
	for _, p := range products[1:] {
		prev := out[len(out)-1]
		if !p.HasNumericData() && p.Page == prev.Page {
			if dist := p.YCenter - prev.YCenter; dist > 0 && dist < ghostMergeWindow {
				prev.Name = strings.TrimSpace(prev.Name + " " + p.Name)
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// backfillAmounts computes a missing line amount from quantity and price.
func backfillAmounts(products []*model.Product) {
	for _, p := range products {
		if p.Amount == 0 && p.Quantity > 0 && p.UnitPrice > 0 {
			p.Amount = p.Quantity * p.UnitPrice
		}
	}
}
