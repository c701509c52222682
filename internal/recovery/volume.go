// Package recovery repairs product fields the structured extraction missed,
// reading them back out of product names and surrounding page text.
package recovery

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultVolume is assumed when nothing else yields a bottle size.
const DefaultVolume = 0.75

// fixedVolumeBrands are products the importer only ever buys in one bottle
// size, so the name alone decides the volume. Checked before named sizes.
var fixedVolumeBrands = []struct {
	keyword string
	liters  float64
}{
	{"clos saint jean sanctus sanctorum", 1.5},
	{"jack daniel", 3.0},
}

// namedSizes are traditional champagne-format bottle names. Longer names
// come first so "double magnum" wins over "magnum".
var namedSizes = []struct {
	keyword string
	liters  float64
}{
	{"double magnum", 3.0},
	{"dbl mgn", 3.0},
	{"magnum", 1.5},
	{"mgn", 1.5},
	{"jeroboam", 3.0},
	{"rehoboam", 4.5},
	{"mathusalem", 6.0},
	{"methuselah", 6.0},
	{"salmanazar", 9.0},
	{"balthazar", 12.0},
	{"nebuchadnezzar", 15.0},
	{"100cl", 1.0},
}

var (
	leadingVolumeRe = regexp.MustCompile(`^(\d+[.,]\d+)\s+[A-Za-z]`)
	literRe         = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*(?:liter|liters|l|ltr)\b`)
	clRe            = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*cl\b`)
	mlRe            = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*ml\b`)
	numberRe        = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// bareLiterSizes are bottle sizes plausible without a unit suffix.
var bareLiterSizes = map[float64]bool{
	0.2: true, 0.5: true, 0.7: true, 0.75: true, 1.0: true, 1.5: true, 3.0: true,
}

// bareMilliliterSizes are the same, printed in milliliters.
var bareMilliliterSizes = map[float64]bool{
	187: true, 200: true, 375: true, 500: true, 700: true, 750: true, 1000: true, 1500: true,
}

func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return v, err == nil
}

func plausibleVolume(v float64) bool {
	return v >= 0.01 && v <= 20.0
}

// VolumeFromName resolves a bottle size declared in the product name itself:
// a fixed-volume brand, a traditional format name, or a unit-suffixed number.
func VolumeFromName(name string) (float64, bool) {
	lower := strings.ToLower(name)
	for _, b := range fixedVolumeBrands {
		if strings.Contains(lower, b.keyword) {
			return b.liters, true
		}
	}
	for _, s := range namedSizes {
		if strings.Contains(lower, s.keyword) {
			return s.liters, true
		}
	}
	return ExtractVolume(name)
}

// ExtractVolume pulls a bottle size out of free text. It tries, in order:
// a decimal at the start of the text ("0,02 Underberg"), a number with a
// volume unit, and finally bare numbers matching standard bottle sizes.
func ExtractVolume(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	if m := leadingVolumeRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseDecimal(m[1]); ok && plausibleVolume(v) {
			return v, true
		}
	}
	if m := literRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseDecimal(m[1]); ok && plausibleVolume(v) {
			return v, true
		}
	}
	if m := clRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseDecimal(m[1]); ok && plausibleVolume(v/100) {
			return v / 100, true
		}
	}
	if m := mlRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseDecimal(m[1]); ok && plausibleVolume(v/1000) {
			return v / 1000, true
		}
	}

	// Bare numbers: only exact standard sizes count, and the match must not
	// be a digit run inside a larger number.
	for _, loc := range numberRe.FindAllStringIndex(text, -1) {
		if loc[0] > 0 && isDigit(text[loc[0]-1]) {
			continue
		}
		if loc[1] < len(text) && isDigit(text[loc[1]]) {
			continue
		}
		v, ok := parseDecimal(text[loc[0]:loc[1]])
		if !ok {
			continue
		}
		if bareLiterSizes[v] {
			return v, true
		}
		if bareMilliliterSizes[v] {
			return v / 1000, true
		}
	}
	return 0, false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
