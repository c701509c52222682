package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pbankaus/akviza/internal/model"
	"github.com/pbankaus/akviza/internal/parse"
)

// writeResultJSON writes the result as indented JSON.
func writeResultJSON(result *model.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// renderResult prints the product table and the invoice summary.
func renderResult(w io.Writer, result *model.Result) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tQTY\tVOL\tABV\tCATEGORY\tEXCISE/U\tTRANSP/U\tCOST+VAT")
	for _, p := range result.Products {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g%%\t%s\t%s\t%s\t%s\n",
			p.Name,
			p.Quantity,
			p.Volume,
			p.ABV,
			p.CategoryKey,
			parse.FormatCurrency(p.ExcisePerUnit, 4),
			parse.FormatCurrency(p.TransportPerUnit, 4),
			parse.FormatCurrency(p.CostWithVAT, 2),
		)
	}
	_ = tw.Flush()

	var exciseTotal, costTotal float64
	for _, p := range result.Products {
		exciseTotal += p.ExciseTotal
		costTotal += p.CostWithVATTotal
	}

	fmt.Fprintln(w)
	if result.Summary.SupplierName != "" {
		fmt.Fprintf(w, "Supplier:   %s\n", result.Summary.SupplierName)
	}
	fmt.Fprintf(w, "Products:   %d\n", len(result.Products))
	if result.Summary.DiscountAmount > 0 {
		fmt.Fprintf(w, "Discount:   %s EUR\n", parse.FormatCurrency(result.Summary.DiscountAmount, 2))
	}
	fmt.Fprintf(w, "Transport:  %s EUR (%s)\n",
		parse.FormatCurrency(result.Summary.TransportAmount, 2), result.Summary.TransportSource)
	fmt.Fprintf(w, "Excise:     %s EUR\n", parse.FormatCurrency(exciseTotal, 2))
	fmt.Fprintf(w, "Total cost: %s EUR (with VAT)\n", parse.FormatCurrency(costTotal, 2))
}
