package extract

import (
	"strconv"
	"strings"

	"github.com/pbankaus/akviza/internal/model"
)

// fragmentType maps a service entity type to its fragment tag. Line-item
// members arrive prefixed with "line_item/"; the prefix is stripped first.
// Unknown types map to "" and are skipped.
func fragmentType(entityType string) model.FragmentType {
	t := strings.TrimPrefix(entityType, "line_item/")
	switch t {
	case "product_name":
		return model.FragmentProductName
	case "product_code":
		return model.FragmentProductCode
	case "description":
		return model.FragmentDescription
	case "quantity":
		return model.FragmentQuantity
	case "unit_price":
		return model.FragmentUnitPrice
	case "amount":
		return model.FragmentAmount
	case "volume", "net_volume":
		return model.FragmentVolume
	case "abv", "alcohol_content", "alcohol_percentage":
		return model.FragmentABV
	}
	return ""
}

// excludedSpanTypes mark regions of the document whose fragments must not
// become products. Pallet lines in particular carry quantity and amount
// entities that would otherwise be absorbed into neighbouring rows.
var excludedSpanTypes = map[string]bool{
	"pallet_line":   true,
	"packaging_fee": true,
}

// Collector turns a document's entity tree into a flat, positioned fragment
// list ready for row clustering.
type Collector struct{}

// NewCollector returns a Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Collect flattens the document's entities into fragments. Line-item
// containers are unwrapped, untyped and irrelevant entities are skipped,
// and fragments overlapping an excluded span (pallet line, packaging fee)
// are dropped.
func (c *Collector) Collect(doc *Document) []model.Fragment {
	excluded := excludedSpans(doc)

	var fragments []model.Fragment
	add := func(e *Entity) {
		ft := fragmentType(e.Type)
		if ft == "" {
			return
		}
		if overlapsAny(e, excluded) {
			return
		}
		page, y, x, ok := position(e)
		if !ok {
			return
		}
		fragments = append(fragments, model.Fragment{
			Type:       ft,
			Text:       strings.TrimSpace(e.MentionText),
			Normalized: normalizedString(e.Normalized),
			Page:       page,
			YCenter:    y,
			XStart:     x,
		})
	}

	for i := range doc.Entities {
		e := &doc.Entities[i]
		if e.Type == "line_item" {
			for j := range e.Properties {
				add(&e.Properties[j])
			}
			continue
		}
		add(e)
	}
	return fragments
}

// excludedSpans collects the text segments of every excluded-type entity.
func excludedSpans(doc *Document) []TextSegment {
	var spans []TextSegment
	for _, e := range doc.Entities {
		if !excludedSpanTypes[e.Type] || e.TextAnchor == nil {
			continue
		}
		spans = append(spans, e.TextAnchor.Segments...)
	}
	return spans
}

// overlapsAny reports whether any of the entity's text segments intersects
// an excluded span. Entities without a text anchor never overlap.
func overlapsAny(e *Entity, spans []TextSegment) bool {
	if len(spans) == 0 || e.TextAnchor == nil {
		return false
	}
	for _, seg := range e.TextAnchor.Segments {
		for _, span := range spans {
			if seg.Start < span.End && span.Start < seg.End {
				return true
			}
		}
	}
	return false
}

// normalizedString renders the service's pre-parsed value as text. Money is
// rendered as a plain decimal, percent as its number, text as itself.
func normalizedString(nv *NormalizedValue) string {
	if nv == nil {
		return ""
	}
	switch {
	case nv.Money != nil:
		return strconv.FormatFloat(nv.Money.Float(), 'f', -1, 64)
	case nv.Percent != nil:
		return strconv.FormatFloat(*nv.Percent, 'f', -1, 64)
	default:
		return nv.Text
	}
}
