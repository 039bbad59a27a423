// Package techsheet renders a printable 1280x720 data sheet for a wall: a
// header with the screen name, a wiring thumbnail, the stat table and a port
// legend.
package techsheet

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/ledwall/pkg/render/draw"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
	"github.com/matzehuels/ledwall/pkg/wall/ports"
)

// Sheet size.
const (
	Width  = 1280
	Height = 720
)

const (
	headerH   = 80
	margin    = 40
	thumbW    = 760
	thumbH    = 570
	thumbTop  = headerH + 30
	colX      = margin + thumbW + 40
	colW      = Width - colX - margin
	rowH      = 26
	legendRow = 22
)

// Stat is one labelled figure of the sheet.
type Stat struct {
	Label string
	Value string
}

// Stats returns the figures shown in the stat table, in display order.
func Stats(p *plan.Plan) []Stat {
	m, cfg := p.Metrics, p.Config
	stats := []Stat{
		{"Panels", fmt.Sprintf("%d × %d (%d)", cfg.Grid.Width, cfg.Grid.Height, m.TotalPanels)},
		{"Resolution", fmt.Sprintf("%d × %d px", m.WidthPx, m.HeightPx)},
		{"Aspect", m.AspectRatio},
		{"Area", fmt.Sprintf("%.2f m²", m.AreaM2)},
		{"Power", fmt.Sprintf("%.0f W", m.TotalWatts)},
		{"Current", fmt.Sprintf("%.1f A @ %.0f V", m.TotalAmps, cfg.Voltage)},
		{"Apparent power", fmt.Sprintf("%.2f kVA", m.KVA)},
		{"Ports", fmt.Sprintf("%d", m.TotalPorts)},
		{"Pattern", string(cfg.Pattern)},
		{"Start corner", string(cfg.Corner)},
		{"Port budget", fmt.Sprintf("%d px", cfg.PixelsPerPort)},
		{"Utilisation", fmt.Sprintf("%.1f%%", m.PortUtilization*100)},
	}
	if m.OversizedPorts > 0 {
		stats = append(stats, Stat{"Oversized ports", fmt.Sprintf("%d", m.OversizedPorts)})
	}
	return stats
}

// RenderSVG draws the data sheet for p.
func RenderSVG(p *plan.Plan) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" font-family="Inter, sans-serif">`+"\n",
		Width, Height, Width, Height)
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="#ffffff"/>`+"\n", Width, Height)

	renderHeader(&buf, p)
	renderThumbnail(&buf, p)
	y := renderStats(&buf, Stats(p))
	renderLegend(&buf, p, y+24)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderHeader(buf *bytes.Buffer, p *plan.Plan) {
	fmt.Fprintf(buf, `  <rect width="%d" height="%d" fill="#09090b"/>`+"\n", Width, headerH)
	fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="14" font-weight="bold" fill="#71717a" letter-spacing="3">TECHNICAL SHEET</text>`+"\n", margin, 32)
	name := p.Config.Name
	if name == "" {
		name = "Untitled"
	}
	fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="28" font-weight="900" font-style="italic" fill="#ffffff">%s</text>`+"\n",
		margin, 64, draw.EscapeXML(strings.ToUpper(name)))
	fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="14" fill="#a1a1aa" text-anchor="end">%s</text>`+"\n",
		Width-margin, 64, draw.EscapeXML(fmt.Sprintf("%d×%d PX  ·  %d PORTS", p.Metrics.WidthPx, p.Metrics.HeightPx, p.Metrics.TotalPorts)))
}

// renderThumbnail fits the wall into the left pane, centred, with its wiring.
func renderThumbnail(buf *bytes.Buffer, p *plan.Plan) {
	fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="#f4f4f5" rx="6"/>`+"\n", margin, thumbTop, thumbW, thumbH)

	g := p.Config.Grid
	w, h := float64(g.TotalWidthPx()), float64(g.TotalHeightPx())
	if w == 0 || h == 0 {
		fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="18" font-weight="bold" fill="#a1a1aa" text-anchor="middle">NO PANELS</text>`+"\n",
			margin+thumbW/2, thumbTop+thumbH/2)
		return
	}

	const pad = 20.0
	scale := math.Min((thumbW-2*pad)/w, (thumbH-2*pad)/h)
	f := draw.Frame{
		X:     margin + (thumbW-w*scale)/2,
		Y:     thumbTop + (thumbH-h*scale)/2,
		Scale: scale,
	}
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#000000"/>`+"\n", f.X, f.Y, w*scale, h*scale)
	draw.Checkerboard(buf, g, f, draw.DefaultColor1, draw.DefaultColor2)
	draw.Wiring(buf, g, p.Ports, f)
}

// renderStats writes the stat table and returns the y below its last row.
func renderStats(buf *bytes.Buffer, stats []Stat) int {
	y := thumbTop
	fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="12" font-weight="bold" fill="#71717a" letter-spacing="2">SPECIFICATIONS</text>`+"\n", colX, y+12)
	y += 24
	for i, s := range stats {
		if i%2 == 0 {
			fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="#f4f4f5"/>`+"\n", colX, y, colW, rowH)
		}
		fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="13" fill="#52525b">%s</text>`+"\n", colX+10, y+17, draw.EscapeXML(s.Label))
		fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="13" font-weight="bold" fill="#09090b" text-anchor="end">%s</text>`+"\n",
			colX+colW-10, y+17, draw.EscapeXML(s.Value))
		y += rowH
	}
	return y
}

// renderLegend lists ports with their colour until the sheet runs out of
// room, then summarises the rest.
func renderLegend(buf *bytes.Buffer, p *plan.Plan, y int) {
	if len(p.Ports) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="12" font-weight="bold" fill="#71717a" letter-spacing="2">PORTS</text>`+"\n", colX, y+12)
	y += 22

	fit := max(0, (Height-margin-y)/legendRow)
	shown := p.Ports
	if len(shown) > fit {
		shown = shown[:max(0, fit-1)]
	}
	for _, port := range shown {
		fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="14" height="14" rx="3" fill="%s"/>`+"\n", colX, y+2, ports.Color(port.Index))
		first, last := port.First(), port.Last()
		label := fmt.Sprintf("Port %d  ·  %d panels  ·  (%d,%d) → (%d,%d)",
			port.Index+1, len(port.Panels), first.Col+1, first.Row+1, last.Col+1, last.Row+1)
		fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="12" fill="#27272a">%s</text>`+"\n", colX+22, y+13, draw.EscapeXML(label))
		y += legendRow
	}
	if rest := len(p.Ports) - len(shown); rest > 0 {
		fmt.Fprintf(buf, `  <text x="%d" y="%d" font-size="12" font-style="italic" fill="#71717a">+ %d more ports</text>`+"\n", colX, y+13, rest)
	}
}
