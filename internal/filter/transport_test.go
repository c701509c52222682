package filter

import (
	"testing"

	"github.com/pbankaus/akviza/internal/model"
)

func TestSeparateTransportPullsFreightRows(t *testing.T) {
	products := []*model.Product{
		{Name: "Rioja Reserva", Quantity: 6, Amount: 51},
		{Name: "Freight charges", Amount: 150},
		{Name: "Livraison Express", Amount: 50},
	}
	kept, transport := SeparateTransport(products)
	if len(kept) != 1 || kept[0].Name != "Rioja Reserva" {
		t.Fatalf("kept = %v", kept)
	}
	if transport != 200 {
		t.Errorf("transport = %v, want 200", transport)
	}
}

func TestSeparateTransportVetoesProductNames(t *testing.T) {
	products := []*model.Product{
		{Name: "Wine delivery gift set", Quantity: 2, Amount: 30},
	}
	kept, transport := SeparateTransport(products)
	if len(kept) != 1 {
		t.Fatalf("product with a carrier word was removed")
	}
	if transport != 0 {
		t.Errorf("transport = %v, want 0", transport)
	}
}

func TestSeparateTransportDropsBarePallets(t *testing.T) {
	products := []*model.Product{
		{Name: "EURO PALLET", Amount: 40},
		{Name: "Chianti Classico", Quantity: 6, Amount: 60},
	}
	kept, transport := SeparateTransport(products)
	if len(kept) != 1 || kept[0].Name != "Chianti Classico" {
		t.Fatalf("kept = %v", kept)
	}
	if transport != 0 {
		t.Errorf("transport = %v, want 0", transport)
	}
}

func TestSeparateTransportKeepsMixedPalletRows(t *testing.T) {
	products := []*model.Product{
		{Name: "Pallet Underberg 0.02 x12", Quantity: 12, UnitPrice: 1.5},
	}
	kept, _ := SeparateTransport(products)
	if len(kept) != 1 {
		t.Fatal("mixed pallet row dropped")
	}
	if kept[0].Name != "Underberg 0.02 x12" {
		t.Errorf("name = %q, want pallet wording stripped", kept[0].Name)
	}
}

func TestStripPalletWording(t *testing.T) {
	got := stripPalletWording("Pallet of Underberg cartons")
	if got != "of Underberg cartons" {
		t.Errorf("stripPalletWording = %q", got)
	}
}
