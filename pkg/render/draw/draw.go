// Package draw holds the SVG primitives shared by the wall renderers: panel
// geometry, the checkerboard, sequence labels, cable glyphs and the scale
// overlay.
//
// Everything is drawn in wall pixel coordinates and mapped through a [Frame],
// so the full-size preview and the scaled tech-sheet thumbnail share one code
// path.
package draw

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/ports"
)

// Default checkerboard colours.
const (
	DefaultColor1 = "#1c1c1c"
	DefaultColor2 = "#fcfcfc"
)

const (
	fontCharWidth = 0.62 // average advance of a bold sans glyph, in ems
	minCanvas     = 10
)

// Frame maps wall pixel coordinates onto the SVG canvas.
type Frame struct {
	X, Y  float64 // canvas position of wall pixel (0, 0)
	Scale float64 // canvas units per wall pixel
}

// Identity is the frame of a full-size rendering.
var Identity = Frame{Scale: 1}

// Pt maps a wall pixel coordinate.
func (f Frame) Pt(x, y float64) (float64, float64) {
	return f.X + x*f.Scale, f.Y + y*f.Scale
}

// Len maps a wall pixel length.
func (f Frame) Len(l float64) float64 { return l * f.Scale }

// CanvasSize returns the pixel size of g, never smaller than 10x10 so an
// empty wall still renders.
func CanvasSize(g wall.Grid) (w, h int) {
	return max(minCanvas, g.TotalWidthPx()), max(minCanvas, g.TotalHeightPx())
}

// PanelRect returns the pixel rectangle of the panel at (col, row).
func PanelRect(g wall.Grid, col, row int) (x, y, w, h float64) {
	return float64(col * g.PanelWidthPx), float64(g.RowOffsetPx(row)),
		float64(g.PanelWidthPx), float64(g.RowHeightPx(row))
}

// PanelCenter returns the pixel centre of a panel.
func PanelCenter(g wall.Grid, v wall.PanelVisit) (cx, cy float64) {
	x, y, w, h := PanelRect(g, v.Col, v.Row)
	return x + w/2, y + h/2
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// TextWidth estimates the rendered width of s at fontSize.
func TextWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * fontCharWidth
}

// Checkerboard draws every panel in alternating colours with a faint outline.
func Checkerboard(buf *bytes.Buffer, g wall.Grid, f Frame, color1, color2 string) {
	buf.WriteString(`  <g class="panels" stroke="#ffffff" stroke-opacity="0.05">` + "\n")
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			fill := EscapeXML(color1)
			if (row+col)%2 == 1 {
				fill = EscapeXML(color2)
			}
			x, y, w, h := PanelRect(g, col, row)
			x, y = f.Pt(x, y)
			fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
				x, y, f.Len(w), f.Len(h), fill)
		}
	}
	buf.WriteString("  </g>\n")
}

// Labels writes the 1-based cable sequence number at the centre of every
// panel.
func Labels(buf *bytes.Buffer, g wall.Grid, visits []wall.PanelVisit, f Frame) {
	if len(visits) == 0 {
		return
	}
	buf.WriteString(`  <g class="labels" fill="#ffffff" fill-opacity="0.25" font-family="Inter, sans-serif" font-weight="900" text-anchor="middle" dominant-baseline="central">` + "\n")
	for i, v := range visits {
		size := float64(min(g.PanelWidthPx, g.RowHeightPx(v.Row))) * 0.45
		cx, cy := f.Pt(PanelCenter(g, v))
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.2f">%d</text>`+"\n", cx, cy, f.Len(size), i+1)
	}
	buf.WriteString("  </g>\n")
}

// Wiring draws the cables of every port in its palette colour: a line with a
// midpoint arrowhead between consecutive panels, a triangle on the first
// panel pointing along the cable, a square on the last and dots in between.
func Wiring(buf *bytes.Buffer, g wall.Grid, ps []wall.Port, f Frame) {
	if len(ps) == 0 {
		return
	}
	pw := float64(g.PanelWidthPx)
	lineWidth := f.Len(math.Max(3, pw/30))
	dot := f.Len(math.Max(4, pw/20))
	head := dot * 1.8 * 1.5

	buf.WriteString(`  <g class="wiring">` + "\n")
	for _, p := range ps {
		color := ports.Color(p.Index)
		fmt.Fprintf(buf, `   <g class="port" data-port="%d" fill="%s" stroke="%s">`+"\n", p.Index, color, color)

		for _, l := range ports.Links(p) {
			x1, y1 := f.Pt(PanelCenter(g, l.From))
			x2, y2 := f.Pt(PanelCenter(g, l.To))
			fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="%.2f"/>`+"\n", x1, y1, x2, y2, lineWidth)
			arrowhead(buf, x1, y1, x2, y2, head)
		}

		for i, v := range p.Panels {
			cx, cy := f.Pt(PanelCenter(g, v))
			switch ports.RoleAt(p, i) {
			case wall.RoleStart:
				angle := 0.0
				if i+1 < len(p.Panels) {
					next := p.Panels[i+1]
					angle = math.Atan2(float64(next.Row-v.Row), float64(next.Col-v.Col)) * 180 / math.Pi
				}
				t := dot * 2.5
				fmt.Fprintf(buf, `    <polygon points="%.2f,0 %.2f,%.2f %.2f,%.2f" transform="translate(%.2f %.2f) rotate(%.1f)" stroke="none"/>`+"\n",
					t, -t*0.8, t*0.8, -t*0.8, -t*0.8, cx, cy, angle)
			case wall.RoleEnd:
				s := dot * 2.8
				fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" stroke="none"/>`+"\n", cx-s/2, cy-s/2, s, s)
			default:
				fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" stroke="none"/>`+"\n", cx, cy, dot)
			}
		}
		buf.WriteString("   </g>\n")
	}
	buf.WriteString("  </g>\n")
}

// arrowhead draws a filled head at the midpoint of a segment, pointing from
// (x1, y1) to (x2, y2).
func arrowhead(buf *bytes.Buffer, x1, y1, x2, y2, size float64) {
	angle := math.Atan2(y2-y1, x2-x1)
	mx, my := (x1+x2)/2, (y1+y2)/2
	const spread = math.Pi / 5
	ax, ay := mx-size*math.Cos(angle-spread), my-size*math.Sin(angle-spread)
	bx, by := mx-size*math.Cos(angle+spread), my-size*math.Sin(angle+spread)
	fmt.Fprintf(buf, `    <polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" stroke="none"/>`+"\n", mx, my, ax, ay, bx, by)
}

// ScaleOverlay draws the alignment pattern over a w x h canvas: a solid
// centre cross, dashed diagonals and a dashed circle of radius 0.45 of the
// shorter side.
func ScaleOverlay(buf *bytes.Buffer, w, h float64) {
	lineWidth := math.Max(3, w/300)
	dash := math.Max(10, w/100)
	r := math.Min(w, h) * 0.45

	fmt.Fprintf(buf, `  <g class="scale" stroke="#ffffff" stroke-width="%.2f" fill="none">`+"\n", lineWidth)
	fmt.Fprintf(buf, `    <path d="M%.2f 0V%.2fM0 %.2fH%.2f"/>`+"\n", w/2, h, h/2, w)
	fmt.Fprintf(buf, `    <g stroke-dasharray="%.2f %.2f">`+"\n", dash/2, dash)
	fmt.Fprintf(buf, `      <path d="M0 0L%.2f %.2fM%.2f 0L0 %.2f"/>`+"\n", w, h, w, h)
	fmt.Fprintf(buf, `      <circle cx="%.2f" cy="%.2f" r="%.2f"/>`+"\n", w/2, h/2, r)
	buf.WriteString("    </g>\n")
	buf.WriteString("  </g>\n")
}
