package model

// TransportSource records how the invoice-level transport amount was
// determined.
type TransportSource string

const (
	TransportManual    TransportSource = "manual"    // Caller-supplied amount
	TransportAutomatic TransportSource = "automatic" // Best of the detected amounts
	TransportNone      TransportSource = "none"      // Nothing found
)

// Summary is the invoice-level companion to the product list.
type Summary struct {
	DiscountAmount  float64         `json:"discount_amount"`
	TransportAmount float64         `json:"transport_amount"`
	TransportSource TransportSource `json:"transport_source"`
	SupplierName    string          `json:"supplier_name,omitempty"`
}

// Result is the structured outcome of processing one document. The pipeline
// entry point always returns a Result: failures set Error and leave Products
// empty rather than propagating.
type Result struct {
	Products []Product `json:"products"`
	Summary  Summary   `json:"summary"`
	Error    string    `json:"error,omitempty"`
}

// Failed reports whether the document could not be processed at all. A valid
// result with zero products and no error is possible and distinct from this.
func (r *Result) Failed() bool {
	return r.Error != ""
}
