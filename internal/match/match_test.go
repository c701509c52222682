package match

import "testing"

func TestSimplify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Kräuterbitter", "krauterbitter"},
		{"CHÂTEAU", "chateau"},
		{"žalias vynas", "zalias vynas"},
		{"Møller & Sønner", "moller  sonner"},
		{"(no name)", "no name"},
		{"Jim Beam 0.7L", "jim beam 0.7l"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Simplify(c.in); got != c.want {
			t.Errorf("Simplify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFindKeyword(t *testing.T) {
	keywords := []string{"vermouth", "port", "gin"}

	if got := FindKeyword("martini vermouth rosso", keywords); got != "vermouth" {
		t.Errorf("FindKeyword = %q, want vermouth", got)
	}

	// Longer keywords match at word boundaries only: "porto" contains
	// "port" as a prefix but not as a word.
	if got := FindKeyword("portobello mushrooms", keywords); got != "" {
		t.Errorf("FindKeyword = %q, want no match", got)
	}
	if got := FindKeyword("tawny port 10 years", keywords); got != "port" {
		t.Errorf("FindKeyword = %q, want port", got)
	}

	if got := FindKeyword("red wine", keywords); got != "" {
		t.Errorf("FindKeyword = %q, want no match", got)
	}
}

func TestFindKeywordShortSubstring(t *testing.T) {
	// Two-character keywords match as plain substrings.
	if got := FindKeyword("xo cognac", []string{"xo"}); got != "xo" {
		t.Errorf("FindKeyword = %q, want xo", got)
	}
}

func TestContainsAny(t *testing.T) {
	keywords := []string{"freight", "transport"}
	if !ContainsAny("International FREIGHT charge", keywords) {
		t.Error("expected match on freight")
	}
	if ContainsAny("Chardonnay 2020", keywords) {
		t.Error("expected no match")
	}
	if ContainsAny("anything", nil) {
		t.Error("expected no match for empty keyword list")
	}
}

func TestContainsAll(t *testing.T) {
	if !ContainsAll(Simplify("Ginger Beer Old Jamaica"), []string{"ginger", "beer"}) {
		t.Error("expected match when all keywords present")
	}
	if ContainsAll(Simplify("Ginger Ale"), []string{"ginger", "beer"}) {
		t.Error("expected no match when one keyword missing")
	}
	if ContainsAll("anything", nil) {
		t.Error("expected no match for empty keyword list")
	}
}
