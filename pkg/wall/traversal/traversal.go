// Package traversal computes the order in which a cable visits the panels of
// a wall.
//
// A traversal is built from units: one full row for row patterns, one full
// column for col patterns. Units are visited in order; inside a unit the
// panels are visited left-to-right (or top-to-bottom), reversed on every odd
// unit for serpentine patterns. The start corner then mirrors the finished
// coordinates, so mirroring never changes which panels share a unit.
//
//	visits := traversal.Generate(grid, wall.PatternRowSerpentine, wall.CornerTL)
//	for _, unit := range traversal.Units(visits) {
//	    fmt.Println(len(unit))
//	}
package traversal

import "github.com/matzehuels/ledwall/pkg/wall"

// Generate returns every panel of g in cable order. An empty grid yields an
// empty (nil) result, not an error. The result holds exactly
// g.Width*g.Height visits, each coordinate once.
func Generate(g wall.Grid, p wall.Pattern, c wall.Corner) []wall.PanelVisit {
	if g.Empty() {
		return nil
	}

	primary, secondary := g.Height, g.Width
	if p.ColumnMajor() {
		primary, secondary = g.Width, g.Height
	}

	visits := make([]wall.PanelVisit, 0, g.Width*g.Height)
	seq := 0
	for u := 0; u < primary; u++ {
		reversed := p.Serpentine() && u%2 == 1
		for i := 0; i < secondary; i++ {
			s := i
			if reversed {
				s = secondary - 1 - i
			}

			col, row := s, u
			if p.ColumnMajor() {
				col, row = u, s
			}
			if c.MirrorX() {
				col = g.Width - 1 - col
			}
			if c.MirrorY() {
				row = g.Height - 1 - row
			}

			visits = append(visits, wall.PanelVisit{
				Col:    col,
				Row:    row,
				Unit:   u,
				Seq:    seq,
				Pixels: g.PanelPixels(row),
			})
			seq++
		}
	}
	return visits
}

// Units splits visits into consecutive runs sharing the same Unit, keeping
// the original order. The returned slices alias visits.
func Units(visits []wall.PanelVisit) [][]wall.PanelVisit {
	if len(visits) == 0 {
		return nil
	}
	var units [][]wall.PanelVisit
	start := 0
	for i := 1; i <= len(visits); i++ {
		if i == len(visits) || visits[i].Unit != visits[start].Unit {
			units = append(units, visits[start:i:i])
			start = i
		}
	}
	return units
}

// Index returns a lookup from (col, row) to the visit's position in visits.
// Renderers use it to label panels with their sequence number.
func Index(g wall.Grid, visits []wall.PanelVisit) [][]int {
	if g.Empty() {
		return nil
	}
	idx := make([][]int, g.Height)
	for r := range idx {
		idx[r] = make([]int, g.Width)
		for c := range idx[r] {
			idx[r][c] = -1
		}
	}
	for i, v := range visits {
		if v.Row >= 0 && v.Row < g.Height && v.Col >= 0 && v.Col < g.Width {
			idx[v.Row][v.Col] = i
		}
	}
	return idx
}
