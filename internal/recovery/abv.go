package recovery

import (
	"regexp"
	"strings"

	"github.com/pbankaus/akviza/internal/filter"
	"github.com/pbankaus/akviza/internal/model"
)

var abvRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)

// ExtractABV pulls an alcohol strength out of free text: a number before a
// percent sign, within the plausible 0.5-99 range.
func ExtractABV(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	if m := abvRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseDecimal(m[1]); ok && v >= 0.5 && v <= 99.0 {
			return v, true
		}
	}
	return 0, false
}

// abvByKeyword maps product-name keywords to the typical strength of that
// drink family. Ordered: stronger, more specific families first.
var abvByKeyword = []struct {
	abv      float64
	keywords []string
}{
	{40.0, []string{
		"vodka", "whisky", "whiskey", "gin", "rum", "ron", "cognac", "brandy", "tequila", "bourbon", "scotch", "jack daniel",
		"ardbeg", "auchentoshan", "balvenie", "connemara", "dalwhinnie", "finlaggan", "glenallachie", "glendronach", "glenfiddich",
		"grand marnier", "jura", "zacapa", "unicum", "underberg", "deanston", "arran", "talisker", "laphroaig", "lagavulin",
		"bowmore", "bunnahabhain", "caol ila", "bruichladdich", "kilchoman", "highland park", "macallan", "glenmorangie",
		"glenlivet", "aberlour", "balblair", "benriach", "benromach", "bladnoch", "dalmore", "fettercairn", "glengoyne",
		"glenrothes", "knockando", "mortlach", "old pulteney", "royal lochnagar", "springbank", "tullibardine", "wolfburn",
		"aberfeldy", "ardmore", "auld", "ben nevis", "benrinnes", "blair athol", "cardhu", "clynelish",
		"cragganmore", "dailuaine", "edradour", "glen elgin", "glen garioch",
		"glen grant", "glen keith", "glen moray", "glen ord", "glen scotia", "glen spey", "glenburgie",
		"glencadam", "glendullan", "glenfarclas", "glenglassaugh", "glenkinchie",
		"glenlossie", "glenturret", "inchgower",
		"linkwood", "loch lomond", "longmorn", "mannochmore",
		"miltonduff", "oban", "royal brackla", "scapa", "speyburn",
		"strathisla", "strathmill", "tamdhu", "tamnavulin", "teaninich", "tobermory", "tomatin", "tomintoul",
		"tormore",
		"fernet", "branca", "amaro", "campari", "aperol", "jagermeister",
	}},
	{25.0, []string{"liqueur", "likeris", "likor", "amaretto", "baileys", "kahlua", "sambuca"}},
	{20.0, []string{"port", "porto", "sherry", "madeira", "marsala"}},
	{16.0, []string{"vermouth", "vermutas"}},
	{15.5, []string{"amarone", "ripasso", "primitivo di manduria"}},
	{14.0, []string{"barolo", "barbaresco", "brunello"}},
	{13.0, []string{"chianti"}},
	{12.0, []string{"champagne", "prosecco", "cava", "sparkling", "spumante", "franciacorta", "brut"}},
	{13.0, []string{"wine", "vin", "vino", "wein", "rouge", "blanc", "rosso", "bianco", "red", "white", "rose"}},
	{5.0, []string{"beer", "bier", "birra", "cerveza", "ale", "lager", "stout", "ipa"}},
}

// EstimateABV guesses the alcohol strength from the product name alone.
// An explicit percentage in the name wins; unnamed orphan rows and anything
// matching a non-alcoholic keyword get 0; otherwise the drink-family tables
// decide, falling back to a typical wine strength.
func EstimateABV(name string) float64 {
	if name == "" {
		return 0
	}
	lower := strings.ToLower(name)

	if v, ok := ExtractABV(lower); ok {
		return v
	}
	if strings.Contains(lower, model.UnnamedProduct) {
		return 0
	}
	for _, k := range filter.NonAlcoholicKeywords {
		if strings.Contains(lower, k) {
			return 0
		}
	}
	for _, family := range abvByKeyword {
		for _, k := range family.keywords {
			if strings.Contains(lower, k) {
				return family.abv
			}
		}
	}
	return 12.0
}
