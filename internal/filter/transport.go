package filter

import (
	"regexp"
	"strings"

	"github.com/pbankaus/akviza/internal/match"
	"github.com/pbankaus/akviza/internal/model"
)

// transportKeywords mark a product row as a freight charge, across the
// languages seen on incoming invoices.
var transportKeywords = []string{
	"transportas", "gabenimas", "pristatymas", "vežimas",
	"freight", "transport", "shipping", "delivery", "carriage",
	"fracht", "versand", "lieferung",
	"vracht", "verzending", "levering",
	"fret", "livraison", "expédition",
	"flete", "envío", "entrega",
	"spedizione", "consegna", "nolo",
}

// nonTransportKeywords veto the freight match: these rows are always goods
// even when a carrier word appears in the name.
var nonTransportKeywords = []string{
	"jack daniel", "whiskey", "whisky", "vodka", "gin", "rum",
	"wine", "vynas", "champagne", "prosecco", "beer", "alus",
}

// palletKeywords mark rows that are pallets or consolidation fees, dropped
// entirely unless the row also carries a real product.
var palletKeywords = []string{
	"pallet", "pallets", "palete", "paletė", "paletės",
	"fumigated pallet", "euro pallet", "euro-pallet", "epal", "ippc marked",
	"palet", "consolidation fees",
}

// mixedIndicators suggest a pallet-flagged row actually describes a product
// (bottle counts, units, spirits, age statements). Such rows keep their
// product data and only lose the pallet wording from the name.
var mixedIndicators = []string{
	"underberg", "bottles", "liter", "%", "vol", "cl", "ml",
	"whisky", "whiskey", "vodka", "gin", "rum", "cognac", "brandy",
	"years", "yr", "old", "aged", "carton", "case", "gb",
}

// SeparateTransport drops pallet rows and pulls freight rows out of the
// product list, returning the surviving products and the freight total
// found among them.
func SeparateTransport(products []*model.Product) ([]*model.Product, float64) {
	var kept []*model.Product
	var transport float64

	for _, p := range products {
		nameLower := strings.ToLower(p.Name)

		if match.ContainsAny(nameLower, palletKeywords) {
			if !looksLikeProduct(p, nameLower) {
				continue
			}
			p.Name = stripPalletWording(p.Name)
			nameLower = strings.ToLower(p.Name)
		}

		isTransport := match.ContainsAny(nameLower, transportKeywords) && !match.ContainsAny(nameLower, nonTransportKeywords)
		if isTransport {
			if p.Amount > 0 {
				transport += p.Amount
			}
			continue
		}
		kept = append(kept, p)
	}
	return kept, transport
}

// looksLikeProduct reports whether a pallet-flagged row carries enough
// product signal to survive: a product indicator in the name, or real
// quantities and prices. Pallets themselves are cheap and bare.
func looksLikeProduct(p *model.Product, nameLower string) bool {
	if match.ContainsAny(nameLower, mixedIndicators) {
		return true
	}
	return p.Quantity > 0 || p.UnitPrice > 5.0 || p.Volume > 0 || p.ABV > 0
}

// stripPalletWording removes pallet keywords from a mixed row's name.
func stripPalletWording(name string) string {
	for _, k := range palletKeywords {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(k))
		name = re.ReplaceAllString(name, "")
	}
	return strings.Join(strings.Fields(name), " ")
}
