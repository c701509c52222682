package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pbankaus/akviza/internal/match"
	"github.com/pbankaus/akviza/internal/parse"
)

// tableTransportKeywords flag a table cell as a freight charge. The table
// scan is a fallback for invoices where freight was never promoted to a
// typed entity, so the list is deliberately shorter than the row filter's.
var tableTransportKeywords = []string{
	"freight", "transport", "fracht", "livraison", "spedizione", "vracht", "transporte",
}

// tableProductKeywords veto the transport match: some product names carry
// carrier-sounding words and must never be read as freight.
var tableProductKeywords = []string{
	"pallets", "pallet", "jack daniel", "whiskey", "whisky", "vodka", "gin", "rum",
	"wine", "vynas", "champagne", "prosecco", "beer", "alus",
}

var amountRe = regexp.MustCompile(`(\d+[.,]\d+|\d+)`)

// DetectTransport finds the freight total declared in the document itself.
// Typed transport entities are summed first; when none exist, table rows
// flagged by a freight keyword are scanned for an amount. Returns 0 when the
// document declares no freight.
func DetectTransport(doc *Document) float64 {
	var total float64
	for _, e := range doc.Entities {
		if !strings.Contains(strings.ToLower(e.Type), "transport") {
			continue
		}
		if e.Normalized == nil || e.Normalized.Money == nil {
			continue
		}
		if amount := e.Normalized.Money.Float(); amount > 0 {
			total += amount
		}
	}
	if total > 0 {
		return total
	}

	for _, page := range doc.Pages {
		for _, table := range page.Tables {
			for _, row := range table.BodyRows {
				total += transportInRow(doc, row)
			}
		}
	}
	return total
}

// transportInRow returns the freight amount in one table row, or 0.
func transportInRow(doc *Document, row TableRow) float64 {
	matched := false
	var amountText string
	for _, cell := range row.Cells {
		text := doc.AnchorText(cell.Layout.TextAnchor)
		if match.ContainsAny(text, tableTransportKeywords) && !match.ContainsAny(text, tableProductKeywords) {
			matched = true
		}
		if matched && amountText == "" {
			if m := amountRe.FindString(text); m != "" {
				amountText = m
			}
		}
	}
	if !matched || amountText == "" {
		return 0
	}
	amount, ok := parse.CleanFloat(amountText)
	if !ok || amount <= 0 {
		return 0
	}
	return amount
}

// ValidateTransport rejects freight totals that cannot be real: negative
// values and anything above the configured ceiling.
func ValidateTransport(amount, max float64) error {
	if amount < 0 {
		return fmt.Errorf("transport amount is negative: %.2f", amount)
	}
	if amount > max {
		return fmt.Errorf("transport amount %.2f exceeds limit %.2f", amount, max)
	}
	return nil
}
