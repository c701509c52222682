package extract

import (
	"math"
	"sort"
	"strings"
)

// positioned is a resolved line of page text with its geometry.
type positioned struct {
	text string
	y    float64
	x    float64
}

// pageLines resolves a page's recognized lines against the document text,
// skipping lines without geometry or content.
func pageLines(doc *Document, page int) []positioned {
	if page < 0 || page >= len(doc.Pages) {
		return nil
	}
	var out []positioned
	for _, line := range doc.Pages[page].Lines {
		y, ok := layoutY(line.Layout)
		if !ok {
			continue
		}
		text := strings.TrimSpace(doc.AnchorText(line.Layout.TextAnchor))
		if text == "" {
			continue
		}
		out = append(out, positioned{text: text, y: y, x: layoutX(line.Layout)})
	}
	return out
}

// TextAtRow returns the raw page text printed at the given vertical position.
// Nearby lines are clustered so that a row wrapped across several recognized
// lines comes back as one string, left to right. Returns "" when nothing sits
// within the tolerance.
func TextAtRow(doc *Document, page int, y, tolerance float64) string {
	lines := pageLines(doc, page)
	var candidates []positioned
	for _, l := range lines {
		if math.Abs(l.y-y) <= tolerance {
			candidates = append(candidates, l)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	// Group candidates whose Y centers sit within 0.01 of each other, then
	// keep the group nearest the requested position. This stops a dense
	// region from bleeding adjacent rows into the result.
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].y < candidates[j].y })
	var groups [][]positioned
	current := []positioned{candidates[0]}
	for _, l := range candidates[1:] {
		if l.y-current[len(current)-1].y <= 0.01 {
			current = append(current, l)
			continue
		}
		groups = append(groups, current)
		current = []positioned{l}
	}
	groups = append(groups, current)

	best := groups[0]
	bestDist := groupDistance(best, y)
	for _, g := range groups[1:] {
		if d := groupDistance(g, y); d < bestDist {
			best, bestDist = g, d
		}
	}

	sort.Slice(best, func(i, j int) bool { return best[i].x < best[j].x })
	parts := make([]string, len(best))
	for i, l := range best {
		parts[i] = l.text
	}
	return strings.Join(parts, " ")
}

func groupDistance(g []positioned, y float64) float64 {
	var sum float64
	for _, l := range g {
		sum += l.y
	}
	return math.Abs(sum/float64(len(g)) - y)
}

// TextInRange returns all page text within the vertical band around y,
// top to bottom, joined with newlines. Unlike TextAtRow it does not try to
// isolate a single row; it is meant for multi-line context windows.
func TextInRange(doc *Document, page int, y, tolerance float64) string {
	lines := pageLines(doc, page)
	var hits []positioned
	for _, l := range lines {
		if math.Abs(l.y-y) <= tolerance {
			hits = append(hits, l)
		}
	}
	if len(hits) == 0 {
		return ""
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].y < hits[j].y })
	parts := make([]string, len(hits))
	for i, l := range hits {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n")
}
