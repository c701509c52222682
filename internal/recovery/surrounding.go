package recovery

import (
	"github.com/pbankaus/akviza/internal/extract"
)

// Vertical search window around a product row. Kept narrow so an adjacent
// row's strength is never picked up. Volumes are never recovered this way,
// surrounding text too often holds a neighbour's bottle size.
const abvSearchTolerance = 0.04

// ABVNearRow scans the page text around a product row for an alcohol
// strength the structured extraction missed.
func ABVNearRow(doc *extract.Document, page int, y float64) (float64, bool) {
	text := extract.TextInRange(doc, page, y, abvSearchTolerance)
	if text == "" {
		return 0, false
	}
	return ExtractABV(text)
}
