package model

// FragmentType tags a unit of extracted text with its semantic meaning.
// The tags mirror what the upstream extraction service emits, after
// line_item containers have been flattened.
type FragmentType string

const (
	FragmentProductName FragmentType = "product_name"
	FragmentProductCode FragmentType = "product_code"
	FragmentDescription FragmentType = "description"
	FragmentQuantity    FragmentType = "quantity"
	FragmentUnitPrice   FragmentType = "unit_price"
	FragmentAmount      FragmentType = "amount"
	FragmentVolume      FragmentType = "volume"
	FragmentABV         FragmentType = "abv"
)

// NameTypes are the fragment types that carry a product name and therefore
// anchor a row during clustering.
var NameTypes = []FragmentType{FragmentProductName, FragmentDescription}

// IsNameType reports whether t anchors a row.
func IsNameType(t FragmentType) bool {
	for _, nt := range NameTypes {
		if t == nt {
			return true
		}
	}
	return false
}

// Fragment is one typed, spatially positioned unit of extracted text.
// Fragments are produced once per document by the collector and never
// mutated afterwards.
type Fragment struct {
	Type       FragmentType `json:"type"`                 // Semantic tag
	Text       string       `json:"text"`                 // Raw mention text
	Normalized string       `json:"normalized,omitempty"` // Pre-parsed value (money/percent/text), empty if absent
	Page       int          `json:"page"`                 // Page index (0-based)
	YCenter    float64      `json:"y_center"`             // Vertical center, normalized 0-1
	XStart     float64      `json:"x_start"`              // Left edge, normalized 0-1
}

// Value returns the normalized value when present, the raw mention otherwise.
func (f Fragment) Value() string {
	if f.Normalized != "" {
		return f.Normalized
	}
	return f.Text
}

// Row is a transient accumulation of fragments believed to belong to one
// invoice line. Rows are clustering scaffolding: they are discarded after
// products have been extracted from them.
type Row struct {
	Page     int
	YCenter  float64 // Running mean Y of the row's name fragments
	Entities []Fragment
	HasName  bool
}

// Append adds a fragment to the row.
func (r *Row) Append(f Fragment) {
	r.Entities = append(r.Entities, f)
}

// First returns the first fragment matching any of the given types, in the
// priority order of the type list.
func (r *Row) First(types ...FragmentType) (Fragment, bool) {
	for _, t := range types {
		for _, e := range r.Entities {
			if e.Type == t {
				return e, true
			}
		}
	}
	return Fragment{}, false
}
