package parse

import "testing"

func TestCleanProductName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Navimer Alcohol Pur Glass - carton @ 6 bottles x1 liter 96%", "Navimer Alcohol Pur Glass"},
		{"Vodka Premium 40% 0.7L x6", "Vodka Premium"},
		{"0.75L 12% Pinot Grigio", "Pinot Grigio"},
		{"Chateau Margaux 2015 0.75 l", "Chateau Margaux 2015"},
		{"Underberg bitters 44%", "Underberg bitters"},
		{"Rioja Reserva - case of 12", "Rioja Reserva"},
		{"Glenfiddich 12 Years Old", "Glenfiddich 12 Years Old"},
		{"Moet & Chandon Brut + Gift Box", "Moet & Chandon Brut"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CleanProductName(c.in); got != c.want {
			t.Errorf("CleanProductName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanProductNameKeepsShortResults(t *testing.T) {
	// A name that is nothing but packaging text reverts to the original
	// so the filters can still see it.
	in := "0.7 L x6"
	if got := CleanProductName(in); got != in {
		t.Errorf("CleanProductName(%q) = %q, want original", in, got)
	}
}
