package wall

import (
	"strings"

	errs "github.com/matzehuels/ledwall/pkg/errors"
)

// =============================================================================
// Grid
// =============================================================================

// Grid is the panel geometry of a wall.
type Grid struct {
	Width             int  `json:"width" toml:"width" yaml:"width"`                                  // panel columns
	Height            int  `json:"height" toml:"height" yaml:"height"`                               // panel rows
	PanelWidthPx      int  `json:"panel_width_px" toml:"panel_width_px" yaml:"panel_width_px"`       // pixels per panel, horizontally
	PanelHeightPx     int  `json:"panel_height_px" toml:"panel_height_px" yaml:"panel_height_px"`    // pixels per panel, vertically
	HalfHeightLastRow bool `json:"half_height_last_row,omitempty" toml:"half_height_last_row" yaml:"half_height_last_row"`
}

// Empty reports whether the grid has no panels.
func (g Grid) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// Panels returns the number of panels, or 0 for an empty grid.
func (g Grid) Panels() int {
	if g.Empty() {
		return 0
	}
	return g.Width * g.Height
}

// RowHeightPx returns the pixel height of the given row. The last row is
// half as tall when HalfHeightLastRow is set.
func (g Grid) RowHeightPx(row int) int {
	if g.HalfHeightLastRow && row == g.Height-1 {
		return g.PanelHeightPx / 2
	}
	return g.PanelHeightPx
}

// RowOffsetPx returns the pixel y coordinate of the top edge of row.
func (g Grid) RowOffsetPx(row int) int {
	return row * g.PanelHeightPx
}

// PanelPixels returns the pixel count of one panel in the given row.
func (g Grid) PanelPixels(row int) int {
	return g.PanelWidthPx * g.RowHeightPx(row)
}

// TotalWidthPx returns the wall width in pixels.
func (g Grid) TotalWidthPx() int {
	if g.Empty() {
		return 0
	}
	return g.Width * g.PanelWidthPx
}

// TotalHeightPx returns the wall height in pixels, honouring the half-height
// last row.
func (g Grid) TotalHeightPx() int {
	if g.Empty() {
		return 0
	}
	return (g.Height-1)*g.PanelHeightPx + g.RowHeightPx(g.Height-1)
}

// =============================================================================
// Pattern
// =============================================================================

// Pattern is the cable traversal pattern.
type Pattern string

// Supported traversal patterns.
const (
	PatternRowStraight   Pattern = "row-straight"
	PatternRowSerpentine Pattern = "row-serpentine"
	PatternColStraight   Pattern = "col-straight"
	PatternColSerpentine Pattern = "col-serpentine"
)

// Patterns lists every supported pattern in display order.
var Patterns = []Pattern{PatternRowStraight, PatternRowSerpentine, PatternColStraight, PatternColSerpentine}

// ParsePattern parses a pattern name. Matching is case-insensitive and
// accepts "column" as an alias of "col".
func ParsePattern(s string) (Pattern, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.Replace(norm, "column-", "col-", 1)
	for _, p := range Patterns {
		if string(p) == norm {
			return p, nil
		}
	}
	return "", errs.New(errs.ErrCodeInvalidPattern, "unknown pattern %q (must be one of: row-straight, row-serpentine, col-straight, col-serpentine)", s)
}

// Valid reports whether p is a supported pattern.
func (p Pattern) Valid() bool {
	for _, q := range Patterns {
		if q == p {
			return true
		}
	}
	return false
}

// ColumnMajor reports whether the primary scan axis is vertical.
func (p Pattern) ColumnMajor() bool {
	return strings.HasPrefix(string(p), "col")
}

// Serpentine reports whether every other unit is visited in reverse.
func (p Pattern) Serpentine() bool {
	return strings.HasSuffix(string(p), "serpentine")
}

// Next returns the pattern after p in [Patterns], wrapping around.
func (p Pattern) Next() Pattern {
	for i, q := range Patterns {
		if q == p {
			return Patterns[(i+1)%len(Patterns)]
		}
	}
	return Patterns[0]
}

// =============================================================================
// Corner
// =============================================================================

// Corner is the grid corner where panel index 0 sits.
type Corner string

// Supported start corners.
const (
	CornerTL Corner = "TL"
	CornerTR Corner = "TR"
	CornerBL Corner = "BL"
	CornerBR Corner = "BR"
)

// Corners lists every corner in display order.
var Corners = []Corner{CornerTL, CornerTR, CornerBL, CornerBR}

// ParseCorner parses a corner name, case-insensitively.
func ParseCorner(s string) (Corner, error) {
	c := Corner(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CornerTL, CornerTR, CornerBL, CornerBR:
		return c, nil
	}
	return "", errs.New(errs.ErrCodeInvalidCorner, "unknown corner %q (must be one of: TL, TR, BL, BR)", s)
}

// Valid reports whether c is a supported corner.
func (c Corner) Valid() bool {
	switch c {
	case CornerTL, CornerTR, CornerBL, CornerBR:
		return true
	}
	return false
}

// MirrorX reports whether the traversal is mirrored horizontally.
func (c Corner) MirrorX() bool { return strings.Contains(string(c), "R") }

// MirrorY reports whether the traversal is mirrored vertically.
func (c Corner) MirrorY() bool { return strings.Contains(string(c), "B") }

// Next returns the corner after c in [Corners], wrapping around.
func (c Corner) Next() Corner {
	for i, q := range Corners {
		if q == c {
			return Corners[(i+1)%len(Corners)]
		}
	}
	return Corners[0]
}

// =============================================================================
// Visits and Ports
// =============================================================================

// PanelVisit is one panel in traversal order. Col and Row are wall
// coordinates after corner mirroring; Unit counts units in visiting order, so
// unit 0 is always the first row or column cabled. Use [PanelVisit.Line] for
// the wall row or column a unit occupies.
type PanelVisit struct {
	Col    int `json:"col"`
	Row    int `json:"row"`
	Unit   int `json:"unit"`   // traversal unit index, in visiting order
	Seq    int `json:"seq"`    // position in the full traversal
	Pixels int `json:"pixels"` // pixel footprint of the panel
}

// Line returns the row (row patterns) or column (col patterns) the visit's
// unit occupies on the wall.
func (v PanelVisit) Line(p Pattern) int {
	if p.ColumnMajor() {
		return v.Col
	}
	return v.Row
}

// Port is one electrical data output and the panels it drives, in cable order.
type Port struct {
	Index       int          `json:"index"`
	Panels      []PanelVisit `json:"panels"`
	TotalPixels int          `json:"total_pixels"`
}

// First returns the first panel of the port. It panics on an empty port;
// the partitioner never produces one.
func (p Port) First() PanelVisit { return p.Panels[0] }

// Last returns the last panel of the port.
func (p Port) Last() PanelVisit { return p.Panels[len(p.Panels)-1] }

// Role is the rendering role of a panel inside its port.
type Role string

// Panel roles.
const (
	RoleStart        Role = "start"        // triangle glyph
	RoleEnd          Role = "end"          // square glyph
	RoleIntermediate Role = "intermediate" // dot with an arrow to the next panel
)
