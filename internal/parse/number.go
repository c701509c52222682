// Package parse normalizes the locale-formatted numeric text found on
// invoices: decimal commas, currency symbols, stray OCR artifacts, volume
// strings and ABV percentages.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonNumericRe = regexp.MustCompile(`[^\d.-]`)
	percentRe    = regexp.MustCompile(`\d+[.,]?\d*\s*%`)
)

// CleanFloat converts a European-formatted numeric string into a float.
// It tolerates decimal commas, embedded spaces, currency symbols and
// trailing OCR dots. The second return value reports whether a number could
// be parsed at all; garbage yields (0, false), never an error.
func CleanFloat(value string) (float64, bool) {
	text := strings.TrimSpace(value)
	if text == "" {
		return 0, false
	}

	// Trailing dots are common OCR noise.
	text = strings.TrimRight(text, ".")

	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, ",", ".")
	text = nonNumericRe.ReplaceAllString(text, "")

	if text == "" || text == "-" {
		return 0, false
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SafeFloat converts like CleanFloat but falls back to def on failure.
func SafeFloat(value string, def float64) float64 {
	if f, ok := CleanFloat(value); ok {
		return f
	}
	return def
}

// CleanVolume parses a volume field. ABV percentages embedded in the text are
// stripped first so that "0.7 38%" does not become 0.738, and values above 20
// are assumed to be milliliters and converted to liters (750 -> 0.75).
func CleanVolume(value string) (float64, bool) {
	text := percentRe.ReplaceAllString(value, "")

	val, ok := CleanFloat(text)
	if !ok {
		return 0, false
	}
	if val > 20 {
		return val / 1000.0, true
	}
	return val, true
}

// FormatCurrency renders an amount with the given number of decimals, using
// half-up rounding.
func FormatCurrency(amount float64, decimals int) string {
	return decimal.NewFromFloat(amount).StringFixed(int32(decimals))
}
