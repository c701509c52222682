package parse

import (
	"regexp"
	"strings"
)

// Prefix noise: packaging counts, volumes, ABV and bare decimals at the
// start of a name.
var namePrefixRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(carton|case|box|pack)\s*(@|of)?\s*\d+\s*(bottles?|btls?|pcs|units?\.?)?\s*(x|×)?\s*`),
	regexp.MustCompile(`(?i)^(x|×)\s*\d+([.,]\d+)?\s*(liter|liters|litre|litres|l|cl|ml|ltr)\.?\s*`),
	regexp.MustCompile(`(?i)^\d+([.,]\d+)?\s*(liter|liters|litre|litres|l|cl|ml|ltr)\.?\s+`),
	regexp.MustCompile(`^\d+([.,]\d+)?\s*%\s*`),
	// Requires a fractional part so "12 Years..." survives.
	regexp.MustCompile(`^\d+[.,]\d+\s+`),
	regexp.MustCompile(`^[.,\-_]+\s*`),
}

// Suffix noise: packaging separators, pack multipliers, trailing volume/ABV
// and packaging keywords at the end of a name.
var nameSuffixRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*-\s*carton\b.*`),
	regexp.MustCompile(`(?i)\s*-\s*case\s*(of)?\b.*`),
	regexp.MustCompile(`(?i)\s*-\s*box\s*(of)?\b.*`),
	regexp.MustCompile(`(?i)\s*-\s*pack\s*(of)?\b.*`),
	regexp.MustCompile(`(?i)\s*-\s*\d+\s*(x|×)\s*\d+.*`),
	regexp.MustCompile(`(?i)\s*:\s*\d+\s*(x|×)\s*\d+.*`),
	regexp.MustCompile(`(?i)\s*@\s*\d+\s*(bottles?|btls?|but\.?|pcs|units?)?\b.*`),
	regexp.MustCompile(`(?i)\s*\d+\s*(x|×)\s*\d*\s*(ml|l|cl|liter|litre|bottles?|btls?)?\s*$`),
	regexp.MustCompile(`(?i)\s*(x|×)\s*\d+\s*(ml|l|cl|liter|litre|bottles?|btls?)?\s*$`),
	regexp.MustCompile(`\s+\d+[.,]?\d*\s*%\s*$`),
	regexp.MustCompile(`(?i)\s+\d+[.,]?\d*\s*(l|liter|litre|cl|ml)\b\s*(\d+[.,]?\d*\s*%)?$`),
	regexp.MustCompile(`(?i)\s+carton\s*(x|×)?\s*$`),
	regexp.MustCompile(`(?i)\s+carton\s+liter\s*$`),
	regexp.MustCompile(`(?i)\s+case\s*$`),
	regexp.MustCompile(`(?i)\s+box\s*$`),
	regexp.MustCompile(`(?i)\s+pack\s*$`),
	regexp.MustCompile(`(?i)\s+bottles?\s*$`),
	regexp.MustCompile(`(?i)\s+btls?\s*$`),
	regexp.MustCompile(`(?i)\s+fee\s*$`),
	regexp.MustCompile(`(?i)\s+liter\s*$`),
	regexp.MustCompile(`(?i)\s+litre\s*$`),
	regexp.MustCompile(`(?i)\s+(x|×)\s*$`),
	regexp.MustCompile(`(?i)\s*\+\s*(GB|Gift Box|Glass)\b.*$`),
}

// CleanProductName strips packaging information, pack quantities and
// volume/ABV noise from a product name:
//
//	"Navimer Alcohol Pur Glass - carton @ 6 bottles x1 liter 96%" -> "Navimer Alcohol Pur Glass"
//	"Vodka Premium 40% 0.7L x6" -> "Vodka Premium"
//	"0.75L 12% Pinot Grigio" -> "Pinot Grigio"
//
// Names that collapse below three characters revert to the original, so a
// row whose whole name was packaging text is left for the filters to judge.
func CleanProductName(name string) string {
	if name == "" {
		return name
	}
	original := strings.TrimSpace(name)
	cleaned := original

	// Stripping one layer can expose another ("... 40% 0.7L x6" sheds the
	// pack count, then the volume, then the ABV), so repeat until stable.
	for {
		before := cleaned
		for _, re := range namePrefixRes {
			cleaned = strings.TrimSpace(re.ReplaceAllString(cleaned, ""))
		}
		for _, re := range nameSuffixRes {
			cleaned = strings.TrimSpace(re.ReplaceAllString(cleaned, ""))
		}
		if cleaned == before {
			break
		}
	}

	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = strings.Trim(cleaned, " -:,")

	if len(cleaned) < 3 {
		return original
	}
	return cleaned
}
