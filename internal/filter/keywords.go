// Package filter removes invoice rows that are not sellable products:
// discount lines, pallets, packaging and freight charges.
package filter


// PackagingKeywords mark rows that are packaging or non-drink goods
// (gift boxes, pallets, olive oil sold alongside wine).
var PackagingKeywords = []string{
	"olive oil", "olio ", "olio di", " aliejus", "aceite", "extra virgin", "alyvuogių", "olim", "vidre",
	"pallet", "palet",
	"empty box", "empty gift box", "tuščia dėžutė", "gift box", "giftbox", "single gift box",
	"wooden box", "wood box", "packaging", "pakuotė",
}

// NonAlcoholicDrinkKeywords mark drinks explicitly sold without alcohol.
var NonAlcoholicDrinkKeywords = []string{
	"alcohol free", "alcohol-free", "alcoholvrij", "alkoholfrei", "sans alcool", "senza alcol", "sin alcohol", "nealkoholinis", "no alcohol",
}

// NonAlcoholicKeywords is the union used wherever a row must be ruled out
// as alcohol altogether.
var NonAlcoholicKeywords = append(append([]string{}, PackagingKeywords...), NonAlcoholicDrinkKeywords...)

// DiscountKeywords mark rows that are price adjustments, not goods.
var DiscountKeywords = []string{"discount", "nuolaida", "rebate"}

// SurchargeKeywords mark per-bottle fee rows.
var SurchargeKeywords = []string{"surcharge", "bottle surcharge", "individual bottle surcharge"}

// StrongAlcoholKeywords veto the packaging flag: rectified spirit is sold
// in glass and its names trip the packaging list.
var StrongAlcoholKeywords = []string{"alcohol pur", "pure alcohol", "96%", "spirit", "navimer"}

// WineIndicators veto the packaging flag for anything that reads like wine:
// grape varieties, appellations, regions, producers, sparkling terms.
var WineIndicators = []string{
	"wine", "vino", "vin ", "wein", "rouge", "blanc", "rosso", "bianco", "rose", "rosé",
	"cabernet", "merlot", "chardonnay", "sauvignon", "pinot", "shiraz", "syrah", "riesling",
	"malbec", "tempranillo", "sangiovese", "nebbiolo", "barbera", "primitivo", "zinfandel",
	"grenache", "mourvedre", "viognier", "gewurztraminer", "gruner", "verdejo", "albarino",
	"vermentino", "trebbiano", "garganega", "corvina", "montepulciano", "nero d'avola",
	"champagne", "prosecco", "cava", "cremant", "sekt", "spumante", "franciacorta",
	"rioja", "chianti", "barolo", "barbaresco", "brunello", "amarone", "valpolicella",
	"bordeaux", "burgundy", "bourgogne", "chablis", "sancerre", "pouilly", "cotes du rhone",
	"chateau", "domaine", "estate", "reserve", "reserva", "gran reserva", "crianza",
	"doc", "docg", "igt", "igp", "aoc", "aop", "dop",
	"toscana", "tuscany", "piemonte", "veneto", "sicilia", "puglia", "lombardia",
	"alsace", "loire", "provence", "languedoc", "rhone",
	"napa", "sonoma", "mendoza", "marlborough", "barossa", "stellenbosch",
	"astruc", "antinori", "frescobaldi", "gaja", "sassicaia", "tignanello",
	"brut", "extra brut", "demi sec", "millesime",
}

// PalletRowKeywords identify pallet rows in raw page text.
var PalletRowKeywords = []string{"pallet", "palete", "paletė", "eur-epal", "europallet", "padėklas"}