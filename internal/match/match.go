// Package match implements the text simplification and keyword matching the
// classifier and filters are built on. Matching is substring-based for short
// keywords and word-boundary based for longer ones, over a simplified
// (lowercased, diacritic-folded) form of the text.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes and strips combining marks, so "kräuterbitter"
// simplifies to "krauterbitter".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Letters that do not decompose to base+mark and need a direct mapping.
var letterReplacer = strings.NewReplacer(
	"ł", "l", "Ł", "l",
	"ø", "o", "Ø", "o",
	"đ", "d", "Đ", "d",
	"ß", "ss",
)

var punctRe = regexp.MustCompile(`[^\w\s.\-]`)

// Simplify lowercases the text, folds diacritics to their base letters and
// strips punctuation apart from dots and dashes.
func Simplify(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = letterReplacer.Replace(text)
	if folded, _, err := transform.String(foldDiacritics, text); err == nil {
		text = folded
	}
	return punctRe.ReplaceAllString(text, "")
}

// FindKeyword returns the first keyword found in the simplified text, or ""
// when none matches. Keywords longer than two characters are matched at word
// boundaries; shorter ones match as plain substrings.
func FindKeyword(text string, keywords []string) string {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if len(kw) > 2 {
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			if err != nil {
				if strings.Contains(text, kw) {
					return kw
				}
				continue
			}
			if re.MatchString(text) {
				return kw
			}
		} else if strings.Contains(text, kw) {
			return kw
		}
	}
	return ""
}

// ContainsAny reports whether any keyword appears as a plain substring of the
// lowercased text. Used by the filters, which deliberately match loosely.
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every keyword appears as a substring of the
// simplified text. Used for the all-keywords-combined exception lists.
func ContainsAll(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, kw := range keywords {
		if !strings.Contains(text, Simplify(kw)) {
			return false
		}
	}
	return true
}
