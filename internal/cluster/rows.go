// Package cluster groups positioned fragments into invoice rows and turns
// them into products, repairing rows the extraction service split apart.
package cluster

import (
	"math"
	"sort"

	"github.com/pbankaus/akviza/internal/model"
)

// Geometry tolerances, as fractions of page height.
const (
	// nameMergeTolerance joins name fragments printed on the same line,
	// e.g. "Barcelo" and "Imperial" recognized separately.
	nameMergeTolerance = 0.01
	// assignTolerance attaches a non-name fragment to the nearest row.
	assignTolerance = 0.05
)

// BuildRows groups fragments into rows. Name fragments are clustered first
// and anchor the rows; every other fragment is then attached to the nearest
// row on its page, or becomes a nameless row of its own. Rows come back in
// reading order regardless of the input order.
func BuildRows(fragments []model.Fragment) []*model.Row {
	var names, others []model.Fragment
	for _, f := range fragments {
		if model.IsNameType(f.Type) {
			names = append(names, f)
		} else {
			others = append(others, f)
		}
	}
	sortByPosition(names)
	sortByPosition(others)

	var rows []*model.Row
	for _, f := range names {
		if len(rows) > 0 {
			last := rows[len(rows)-1]
			if last.Page == f.Page && math.Abs(f.YCenter-rowStartY(last)) < nameMergeTolerance {
				last.Append(f)
				continue
			}
		}
		rows = append(rows, &model.Row{Page: f.Page, YCenter: f.YCenter, Entities: []model.Fragment{f}, HasName: true})
	}
	// Row Y is the mean of its name fragments.
	for _, r := range rows {
		r.YCenter = meanY(r.Entities)
	}

	for _, f := range others {
		if row := nearestRow(rows, f); row != nil {
			row.Append(f)
			continue
		}
		// Nothing close enough: open a nameless row. These become orphan
		// candidates later.
		rows = append(rows, &model.Row{Page: f.Page, YCenter: f.YCenter, Entities: []model.Fragment{f}})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Page != rows[j].Page {
			return rows[i].Page < rows[j].Page
		}
		return rows[i].YCenter < rows[j].YCenter
	})
	return rows
}

func sortByPosition(fs []model.Fragment) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Page != fs[j].Page {
			return fs[i].Page < fs[j].Page
		}
		return fs[i].YCenter < fs[j].YCenter
	})
}

// rowStartY is the Y of the row's first name fragment, the anchor new
// fragments are compared against while the row is still being built.
func rowStartY(r *model.Row) float64 {
	return r.Entities[0].YCenter
}

func meanY(fs []model.Fragment) float64 {
	var sum float64
	for _, f := range fs {
		sum += f.YCenter
	}
	return sum / float64(len(fs))
}

// nearestRow returns the closest row on the fragment's page within the
// assignment tolerance, or nil.
func nearestRow(rows []*model.Row, f model.Fragment) *model.Row {
	var best *model.Row
	bestDist := math.Inf(1)
	for _, r := range rows {
		if r.Page != f.Page {
			continue
		}
		dist := math.Abs(r.YCenter - f.YCenter)
		if dist < assignTolerance && dist < bestDist {
			bestDist = dist
			best = r
		}
	}
	return best
}
