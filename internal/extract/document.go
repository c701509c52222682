// Package extract consumes the output of the upstream document-extraction
// service: full recognized text, a nested entity list with type tags and
// normalized values, and page line/token geometry for raw-text lookups.
package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Document is one extraction-service result. The shape mirrors what the
// service returns so its JSON output can be consumed directly.
type Document struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities"`
	Pages    []Page   `json:"pages,omitempty"`
}

// Entity is one recognized span. Grouped line items arrive as an entity of
// type "line_item" whose Properties carry the typed member entities.
type Entity struct {
	Type        string           `json:"type"`
	MentionText string           `json:"mention_text"`
	Normalized  *NormalizedValue `json:"normalized_value,omitempty"`
	Properties  []Entity         `json:"properties,omitempty"`
	PageAnchor  *PageAnchor      `json:"page_anchor,omitempty"`
	TextAnchor  *TextAnchor      `json:"text_anchor,omitempty"`
}

// NormalizedValue is the service's pre-parsed value for an entity.
type NormalizedValue struct {
	Text    string   `json:"text,omitempty"`
	Money   *Money   `json:"money_value,omitempty"`
	Percent *float64 `json:"percent_value,omitempty"`
}

// Money is a decimal amount split into whole units and nanos.
type Money struct {
	Units    int64  `json:"units"`
	Nanos    int32  `json:"nanos"`
	Currency string `json:"currency_code,omitempty"`
}

// Float returns the money value as a float64.
func (m *Money) Float() float64 {
	return float64(m.Units) + float64(m.Nanos)/1e9
}

// TextAnchor locates an entity inside Document.Text.
type TextAnchor struct {
	Segments []TextSegment `json:"text_segments"`
}

// TextSegment is a half-open byte range into the document text.
type TextSegment struct {
	Start int64 `json:"start_index"`
	End   int64 `json:"end_index"`
}

// PageAnchor locates an entity on a page.
type PageAnchor struct {
	PageRefs []PageRef `json:"page_refs"`
}

// PageRef carries the page index and the normalized bounding polygon.
type PageRef struct {
	Page         int      `json:"page"`
	BoundingPoly []Vertex `json:"bounding_poly,omitempty"`
}

// Vertex is one normalized (0-1) polygon point.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Page carries the raw geometry used when structured entities are not enough.
type Page struct {
	Lines  []Line  `json:"lines,omitempty"`
	Tokens []Line  `json:"tokens,omitempty"`
	Tables []Table `json:"tables,omitempty"`
}

// Line is a recognized text line (or token) with its layout.
type Line struct {
	Layout Layout `json:"layout"`
}

// Layout binds a text anchor to a bounding polygon.
type Layout struct {
	TextAnchor   TextAnchor `json:"text_anchor"`
	BoundingPoly []Vertex   `json:"bounding_poly,omitempty"`
}

// Table is a detected table; only body rows matter here.
type Table struct {
	BodyRows []TableRow `json:"body_rows,omitempty"`
}

// TableRow is one table row.
type TableRow struct {
	Cells []TableCell `json:"cells,omitempty"`
}

// TableCell is one table cell.
type TableCell struct {
	Layout Layout `json:"layout"`
}

// LoadDocument reads an extraction-service result from a JSON file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument decodes an extraction-service result from raw JSON.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &doc, nil
}

// AnchorText resolves a text anchor against the document text, tolerating
// out-of-range segments from a malformed response.
func (d *Document) AnchorText(anchor TextAnchor) string {
	var sb strings.Builder
	for _, seg := range anchor.Segments {
		start, end := int(seg.Start), int(seg.End)
		if start < 0 || end > len(d.Text) || start >= end {
			continue
		}
		sb.WriteString(d.Text[start:end])
	}
	return sb.String()
}

// SupplierName returns the supplier entity's mention text, or "" when the
// document carries none.
func (d *Document) SupplierName() string {
	for _, e := range d.Entities {
		if e.Type == "supplier_name" {
			return strings.TrimSpace(e.MentionText)
		}
	}
	return ""
}

// position returns the page index and mean Y of the entity's first page ref.
func position(e *Entity) (page int, y float64, x float64, ok bool) {
	if e.PageAnchor == nil || len(e.PageAnchor.PageRefs) == 0 {
		return 0, 0, 0, false
	}
	ref := e.PageAnchor.PageRefs[0]
	if len(ref.BoundingPoly) == 0 {
		return ref.Page, 0, 0, false
	}
	var sum float64
	for _, v := range ref.BoundingPoly {
		sum += v.Y
	}
	return ref.Page, sum / float64(len(ref.BoundingPoly)), ref.BoundingPoly[0].X, true
}

// layoutY returns the mean Y of a layout's bounding polygon.
func layoutY(l Layout) (float64, bool) {
	if len(l.BoundingPoly) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range l.BoundingPoly {
		sum += v.Y
	}
	return sum / float64(len(l.BoundingPoly)), true
}

// layoutX returns the left edge of a layout's bounding polygon.
func layoutX(l Layout) float64 {
	if len(l.BoundingPoly) == 0 {
		return 0
	}
	return l.BoundingPoly[0].X
}
