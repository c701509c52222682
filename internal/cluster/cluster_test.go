package cluster

import (
	"testing"

	"github.com/pbankaus/akviza/internal/extract"
	"github.com/pbankaus/akviza/internal/model"
)

func emptyBuilder() *Builder {
	return NewBuilder(&extract.Document{})
}

func nameFrag(text string, page int, y, x float64) model.Fragment {
	return model.Fragment{Type: model.FragmentProductName, Text: text, Page: page, YCenter: y, XStart: x}
}

func frag(t model.FragmentType, value string, page int, y float64) model.Fragment {
	return model.Fragment{Type: t, Text: value, Page: page, YCenter: y}
}

func productRow(name string, y float64, qty, price, amount string) []model.Fragment {
	fs := []model.Fragment{nameFrag(name, 0, y, 0.1)}
	if qty != "" {
		fs = append(fs, frag(model.FragmentQuantity, qty, 0, y))
	}
	if price != "" {
		fs = append(fs, frag(model.FragmentUnitPrice, price, 0, y))
	}
	if amount != "" {
		fs = append(fs, frag(model.FragmentAmount, amount, 0, y))
	}
	return fs
}

func TestBuildRowsMergesNameFragments(t *testing.T) {
	fragments := []model.Fragment{
		nameFrag("Barcelo", 0, 0.300, 0.10),
		nameFrag("Imperial", 0, 0.305, 0.30),
		frag(model.FragmentQuantity, "6", 0, 0.302),
	}
	rows := BuildRows(fragments)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if len(rows[0].Entities) != 3 {
		t.Errorf("row entities = %d, want 3", len(rows[0].Entities))
	}
}

func TestBuildRowsSeparatesDistantNames(t *testing.T) {
	fragments := []model.Fragment{
		nameFrag("Rioja Reserva", 0, 0.30, 0.1),
		nameFrag("Chianti Classico", 0, 0.35, 0.1),
	}
	rows := BuildRows(fragments)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}

func TestExtractBuildsProduct(t *testing.T) {
	fragments := []model.Fragment{
		nameFrag("Chateau Margaux 2015", 0, 0.30, 0.1),
		frag(model.FragmentQuantity, "6", 0, 0.30),
		frag(model.FragmentUnitPrice, "150,00", 0, 0.30),
		frag(model.FragmentAmount, "900,00", 0, 0.30),
		frag(model.FragmentVolume, "0.75", 0, 0.30),
		frag(model.FragmentABV, "13.5", 0, 0.30),
	}
	products := emptyBuilder().Extract(fragments)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	p := products[0]
	if p.Name != "Chateau Margaux 2015" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Quantity != 6 || p.UnitPrice != 150 || p.Amount != 900 {
		t.Errorf("numbers = %v / %v / %v", p.Quantity, p.UnitPrice, p.Amount)
	}
	if p.Volume != 0.75 || p.ABV != 13.5 {
		t.Errorf("volume/abv = %v / %v", p.Volume, p.ABV)
	}
}

func TestExtractOrderIndependent(t *testing.T) {
	var fragments []model.Fragment
	fragments = append(fragments, productRow("Absolut Vodka 40% 0.7 L", 0.20, "6", "15,30", "91,80")...)
	fragments = append(fragments, productRow("Heineken Lager", 0.40, "24", "1,10", "26,40")...)

	forward := emptyBuilder().Extract(fragments)

	reversed := make([]model.Fragment, len(fragments))
	for i, f := range fragments {
		reversed[len(fragments)-1-i] = f
	}
	backward := emptyBuilder().Extract(reversed)

	if len(forward) != 2 || len(backward) != 2 {
		t.Fatalf("products = %d / %d, want 2 each", len(forward), len(backward))
	}
	for i := range forward {
		if forward[i].Name != backward[i].Name || forward[i].Amount != backward[i].Amount {
			t.Errorf("order dependence at %d: %q/%v vs %q/%v",
				i, forward[i].Name, forward[i].Amount, backward[i].Name, backward[i].Amount)
		}
	}
}

func TestExtractDropsDiscountAndSurchargeRows(t *testing.T) {
	var fragments []model.Fragment
	fragments = append(fragments, productRow("Rioja Reserva", 0.20, "12", "8,50", "102,00")...)
	fragments = append(fragments, productRow("Discount 10%", 0.40, "", "", "-10,20")...)
	fragments = append(fragments, productRow("Individual bottle surcharge", 0.60, "12", "0,10", "1,20")...)

	products := emptyBuilder().Extract(fragments)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	if products[0].Name != "Rioja Reserva" {
		t.Errorf("surviving product = %q", products[0].Name)
	}
}

func TestExtractFlagsPackaging(t *testing.T) {
	fragments := productRow("Single gift box", 0.30, "2", "5,00", "10,00")
	products := emptyBuilder().Extract(fragments)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	p := products[0]
	if !p.IsPackaging {
		t.Error("packaging not flagged")
	}
	if p.Volume != 0 || p.ABV != 0 {
		t.Errorf("packaging volume/abv = %v / %v, want 0 / 0", p.Volume, p.ABV)
	}
}

func TestExtractWineNeverPackaging(t *testing.T) {
	// "vidre" style names trip the packaging list; a grape variety vetoes it.
	fragments := productRow("Empty Bottle Cabernet Sauvignon pallet edition", 0.30, "6", "12,00", "72,00")
	products := emptyBuilder().Extract(fragments)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	if products[0].IsPackaging {
		t.Error("wine flagged as packaging")
	}
}

func TestExtractRepairsVolumeAndABVFromName(t *testing.T) {
	fragments := productRow("Absolut Vodka 40% 0.7 L", 0.30, "6", "15,30", "91,80")
	products := emptyBuilder().Extract(fragments)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	if products[0].Volume != 0.7 {
		t.Errorf("volume = %v, want 0.7", products[0].Volume)
	}
	if products[0].ABV != 40 {
		t.Errorf("abv = %v, want 40", products[0].ABV)
	}
}

func TestExtractDefaultsVolume(t *testing.T) {
	fragments := productRow("Chateau Margaux", 0.30, "6", "150,00", "900,00")
	products := emptyBuilder().Extract(fragments)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	if products[0].Volume != 0.75 {
		t.Errorf("volume = %v, want default 0.75", products[0].Volume)
	}
}

func TestExtractMergesNameContinuation(t *testing.T) {
	var fragments []model.Fragment
	fragments = append(fragments, productRow("Underberg", 0.30, "12", "1,50", "18,00")...)
	// Wrapped second line of the name: no numbers of its own.
	fragments = append(fragments, nameFrag("Der Rheinberger Krauterbitter", 0, 0.36, 0.1))

	products := emptyBuilder().Extract(fragments)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	want := "Underberg Der Rheinberger Krauterbitter"
	if products[0].Name != want {
		t.Errorf("name = %q, want %q", products[0].Name, want)
	}
}

func TestExtractMergesNumericOrphan(t *testing.T) {
	fragments := []model.Fragment{
		nameFrag("Oloroso Sherry", 0, 0.40, 0.1),
		frag(model.FragmentQuantity, "12", 0, 0.40),
		// The amount landed on its own line below the row.
		frag(model.FragmentAmount, "240,00", 0, 0.46),
	}
	products := emptyBuilder().Extract(fragments)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	p := products[0]
	if p.Amount != 240 {
		t.Errorf("amount = %v, want 240", p.Amount)
	}
	if p.UnitPrice != 20 {
		t.Errorf("unit price = %v, want 240/12", p.UnitPrice)
	}
}

func TestExtractPromotesUnpairedOrphan(t *testing.T) {
	fragments := []model.Fragment{
		frag(model.FragmentQuantity, "3", 0, 0.70),
		frag(model.FragmentUnitPrice, "9,90", 0, 0.70),
	}
	products := emptyBuilder().Extract(fragments)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	if products[0].Name != model.UnnamedProduct {
		t.Errorf("name = %q, want placeholder", products[0].Name)
	}
}

func TestExtractDropsValuelessOrphan(t *testing.T) {
	fragments := []model.Fragment{
		frag(model.FragmentQuantity, "3", 0, 0.70),
	}
	products := emptyBuilder().Extract(fragments)
	if len(products) != 0 {
		t.Fatalf("products = %d, want 0", len(products))
	}
}

func TestExtractKeepsCompleteNeighbours(t *testing.T) {
	var fragments []model.Fragment
	fragments = append(fragments, productRow("Prosecco Frizzante", 0.40, "6", "7,00", "42,00")...)
	// A complete nameless row right below is a row of its own, not a half.
	fragments = append(fragments,
		frag(model.FragmentQuantity, "12", 0, 0.46),
		frag(model.FragmentUnitPrice, "3,00", 0, 0.46),
		frag(model.FragmentAmount, "36,00", 0, 0.46),
	)
	products := emptyBuilder().Extract(fragments)
	if len(products) != 2 {
		t.Fatalf("products = %d, want 2", len(products))
	}
}

func TestMergeGhosts(t *testing.T) {
	products := []*model.Product{
		{Name: "Valpolicella", Quantity: 6, Amount: 60, Page: 0, YCenter: 0.30},
		{Name: "Ripasso Superiore", Page: 0, YCenter: 0.34},
		{Name: "Far away empty", Page: 0, YCenter: 0.60},
	}
	out := mergeGhosts(products)
	if len(out) != 2 {
		t.Fatalf("products = %d, want 2", len(out))
	}
	if out[0].Name != "Valpolicella Ripasso Superiore" {
		t.Errorf("merged name = %q", out[0].Name)
	}
	if out[1].Name != "Far away empty" {
		t.Errorf("survivor = %q", out[1].Name)
	}
}

func TestBackfillAmounts(t *testing.T) {
	products := []*model.Product{
		{Name: "a", Quantity: 6, UnitPrice: 10},
		{Name: "b", Quantity: 6, UnitPrice: 10, Amount: 55},
	}
	backfillAmounts(products)
	if products[0].Amount != 60 {
		t.Errorf("backfilled amount = %v, want 60", products[0].Amount)
	}
	if products[1].Amount != 55 {
		t.Errorf("existing amount overwritten: %v", products[1].Amount)
	}
}
