// Package classify assigns each product its excise category. The keyword
// rule engine is the authoritative fallback; an optional external
// collaborator can be layered on top and is validated against the same
// closed category set.
package classify

import (
	"context"

	"github.com/pbankaus/akviza/internal/match"
	"github.com/pbankaus/akviza/internal/model"
)

// Classifier assigns an excise category to a product.
type Classifier interface {
	Classify(ctx context.Context, name string, abv, volume float64) (model.Category, error)
}

// input is one classification request after normalization: simplified name,
// non-negative ABV, non-negative volume.
type input struct {
	name   string
	abv    float64
	volume float64
}

// rule is one step of the cascade. A rule either decides the category or
// passes the input on to the next rule.
type rule struct {
	name  string
	apply func(in input) (model.Category, bool)
}

// RuleClassifier is the deterministic keyword cascade. Rules run in order;
// the first one that decides wins. It never fails and never consults
// anything external, so the same input always yields the same category.
type RuleClassifier struct {
	rules []rule
}

// NewRuleClassifier builds the cascade with the configured exception lists
// folded into the early rules.
func NewRuleClassifier(cfg model.ClassifyConfig) *RuleClassifier {
	c := &RuleClassifier{}
	c.rules = []rule{
		{"packaging_without_volume", rulePackagingBox},
		{"exception_exact", ruleException(cfg.ForceNonAlcoholExact)},
		{"forced_wine", ruleForcedKeyword(cfg.ForcedWineKeywords, model.CategoryWine8515)},
		{"forced_spirit", ruleForcedKeyword(cfg.ForcedSpiritKeywords, model.CategoryEthylAlcohol)},
		{"exception_combined", ruleExceptionCombined(cfg.ForceNonAlcoholCombined)},
		{"exception_contains", ruleException(cfg.ForceNonAlcoholContains)},
		{"ethyl_keywords", ruleEthyl},
		{"non_product", ruleNonProduct},
		{"beer", ruleBeer},
		{"low_abv", ruleLowABV},
		{"sparkling", ruleSparkling},
		{"intermediate", ruleIntermediate},
		{"wine", ruleWine},
		{"abv_bands", ruleABVBands},
	}
	return c
}

// Classify runs the cascade. Products nothing decides on are not taxed.
func (c *RuleClassifier) Classify(_ context.Context, name string, abv, volume float64) (model.Category, error) {
	in := input{name: match.Simplify(name), abv: abv, volume: volume}
	if in.abv < 0 {
		in.abv = 0
	}
	if in.volume < 0 {
		in.volume = 0
	}
	for _, r := range c.rules {
		if cat, ok := r.apply(in); ok {
			return cat, nil
		}
	}
	return model.CategoryNonAlcohol, nil
}

var packagingBoxKeywords = []string{
	"gift box", "giftbox", "gift-box", "single box", "packaging", "pakuotė", "dėžutė", "empty box", "wooden box", "wood box",
}

// A named box with neither volume nor alcohol is packaging, not a drink.
func rulePackagingBox(in input) (model.Category, bool) {
	if in.volume == 0 && in.abv == 0 && match.FindKeyword(in.name, packagingBoxKeywords) != "" {
		return model.CategoryNonAlcohol, true
	}
	return "", false
}

func ruleException(names []string) func(input) (model.Category, bool) {
	return func(in input) (model.Category, bool) {
		for _, n := range names {
			if n != "" && match.ContainsAll(in.name, []string{n}) {
				return model.CategoryNonAlcohol, true
			}
		}
		return "", false
	}
}

func ruleExceptionCombined(combos [][]string) func(input) (model.Category, bool) {
	return func(in input) (model.Category, bool) {
		for _, combo := range combos {
			if match.ContainsAll(in.name, combo) {
				return model.CategoryNonAlcohol, true
			}
		}
		return "", false
	}
}

func ruleForcedKeyword(keywords []string, cat model.Category) func(input) (model.Category, bool) {
	return func(in input) (model.Category, bool) {
		if match.FindKeyword(in.name, keywords) != "" {
			return cat, true
		}
		return "", false
	}
}

var ethylKeywords = []string{
	"vodka", "degtine", "spiritus", "spirytus", "whisky", "viskis", "whiskey", "bourbon", "scotch",
	"rum", "romas", "rhum", "gin", "dzinas", "tequila", "tekila", "brandy", "brendis",
	"cognac", "konjakas", "armagnac", "absinthe", "absentas", "liqueur", "likeris", "likor", "likieris",
	"spirituose", "bitter", "balzams", "trauktine", "nalewka", "nastoyka", "aquavit", "grappa",
	"calvados", "jagermeister", "st germain", "st. germain", "unicum",
	"laphroaig", "barcelo", "glen grant", "fernet", "old pulteney",
	"glendronach", "corazon", "frapin", "crown royal", "bunnahabhain",
	"oban", "tomatin", "sheridans",
	"carolans", "irish cream", "cream liqueur", "baileys", "kahlua", "amaretto", "sambuca", "passoa",
	"dubonnet", "vermouth", "vermutas", "aperitif", "aperityvas", "martini rosso", "martini bianco",
	"campari", "aperol", "cynar", "punt e mes",
}

// A spirit keyword decides immediately, before accessories like "glass" or
// "box" in the same name get a say.
func ruleEthyl(in input) (model.Category, bool) {
	if match.FindKeyword(in.name, ethylKeywords) != "" {
		return model.CategoryEthylAlcohol, true
	}
	return "", false
}

var nonProductKeywords = []string{
	"glas", "glass", "taure", "taures", "stiklinė", "stiklines", "goblet",
	"bokalas", "bokalai", "kupa", "čižas", "čiažai", "decanter", "dekanteris",
	"spiegelau", "schott", "ravenscroft", "nordic", "orrefors",
	"palette", "palete", "box", "gift box", "giftbox", "gift-box", "dėžutė", "packaging", "pakuotė", "empty box", "carton", "case",
	"no name", // placeholder given to unnamed promoted rows, punctuation folds away
}

func ruleNonProduct(in input) (model.Category, bool) {
	if match.FindKeyword(in.name, nonProductKeywords) != "" {
		return model.CategoryNonAlcohol, true
	}
	return "", false
}

var beerKeywords = []string{
	"beer", "alus", "bier", "biere", "cerveza", "birra", "õlu", "lager", "ale", "stout", "pilsner", "ipa", "porter", "saison", "gose", "sour", "gira",
}

func ruleBeer(in input) (model.Category, bool) {
	if match.FindKeyword(in.name, beerKeywords) == "" {
		return "", false
	}
	if in.abv > 1.2 {
		return model.CategoryBeer, true
	}
	return model.CategoryNonAlcohol, true
}

var alcoholFreeKeywords = []string{
	"alc free", "alcohol free", "non alcoholic", "sans alcool", "alkoholfrei", "sin alcohol",
	"alcoholvrije", "alcoholvrij", "alcoholvri",
}

func ruleLowABV(in input) (model.Category, bool) {
	if in.abv <= 1.2 || match.FindKeyword(in.name, alcoholFreeKeywords) != "" {
		return model.CategoryNonAlcohol, true
	}
	return "", false
}

var sparklingKeywords = []string{
	"champagne", "sampanas", "champagner", "prosecco", "cava", "sekt", "spumante", "frizzante",
	"asti", "sparkling", "putojantis", "cremant", "mousseux", "franciacorta",
	"brut", "extra brut", "crystal",
	"louis roederer", "roederer", "moet", "veuve clicquot", "dom perignon", "krug", "bollinger",
	"pol roger", "taittinger", "perrier jouet", "mumm", "piper heidsieck", "lanson",
}

// sparklingExceptions are names that trip a sparkling keyword but describe a
// still wine ("blanc sec", the Bergerac region).
var sparklingExceptions = []string{
	"blanc sec", "rouge sec", "bergerac", "mousserend",
}

func ruleSparkling(in input) (model.Category, bool) {
	if match.FindKeyword(in.name, sparklingKeywords) == "" || match.FindKeyword(in.name, sparklingExceptions) != "" {
		return "", false
	}
	if in.abv > 8.5 {
		return model.CategorySparklingOver85, true
	}
	return model.CategorySparklingUpTo85, true
}

var intermediateKeywords = []string{
	"port", "porto", "portveinas", "sherry", "cheresas", "xeres", "jerez", "marsala", "madeira", "ratafia", "spirituotas vynas", "fortified wine",
}

func ruleIntermediate(in input) (model.Category, bool) {
	if match.FindKeyword(in.name, intermediateKeywords) == "" {
		return "", false
	}
	switch {
	case in.abv > 22.0:
		return model.CategoryEthylAlcohol, true
	case in.abv > 15.0:
		return model.CategoryIntermediate1522, true
	case in.abv > 1.2:
		return model.CategoryIntermediateUpTo15, true
	}
	return "", false
}

var wineKeywords = []string{
	"wine", "vynas", "wein", "vin", "vino", "rose", "rosado", "blanc", "blanco", "white", "bianco",
	"rouge", "rosso", "red", "tinto", "cuvee", "aop", "aoc", "doc", "sidras", "cider", "midus", "mead", "sake",
	"amarone", "barolo", "barbaresco", "brunello", "chianti", "primitivo", "sangiovese", "nebbiolo",
	"montepulciano", "barbera", "dolcetto", "valpolicella", "soave", "pinot grigio",
	"bordeaux", "burgundy", "bourgogne", "rhone", "loire", "alsace", "languedoc", "provence",
	"chablis", "sancerre", "pouilly", "muscadet", "cotes du rhone", "chateauneuf", "bergerac",
	"rioja", "ribera del duero", "priorat", "rias baixas", "rueda", "jumilla", "toro", "acediano",
	"riesling", "gewurztraminer", "spatburgunder", "dornfelder", "muller thurgau",
	"malbec", "cabernet", "merlot", "syrah", "shiraz", "grenache", "tempranillo", "garnacha",
	"chardonnay", "sauvignon", "pinot noir", "pinot blanc", "viognier", "chenin blanc",
}

// highABVWineKeywords are wine styles that routinely exceed 15% but remain
// wines for excise purposes.
var highABVWineKeywords = []string{
	"amarone", "primitivo", "barolo", "barbaresco", "brunello", "ripasso",
	"amarone della valpolicella", "primitivo di manduria",
}

func ruleWine(in input) (model.Category, bool) {
	if match.FindKeyword(in.name, wineKeywords) == "" {
		return "", false
	}
	if match.FindKeyword(in.name, highABVWineKeywords) != "" {
		return model.CategoryWine8515, true
	}
	switch {
	case in.abv > 22.0:
		return model.CategoryEthylAlcohol, true
	case in.abv > 15.0:
		// Over the band limit but named a wine, kept in the wine class.
		return model.CategoryWine8515, true
	case in.abv > 8.5:
		return model.CategoryWine8515, true
	case in.abv > 1.2:
		return model.CategoryWineUpTo85, true
	}
	return "", false
}

// ruleABVBands is the residual banding when no keyword matched at all.
func ruleABVBands(in input) (model.Category, bool) {
	switch {
	case in.abv > 22.0:
		return model.CategoryEthylAlcohol, true
	case in.abv > 15.0:
		return model.CategoryIntermediate1522, true
	case in.abv > 8.5:
		return model.CategoryWine8515, true
	case in.abv > 1.2:
		return model.CategoryWineUpTo85, true
	}
	return "", false
}
