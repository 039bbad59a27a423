package preview

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	errs "github.com/matzehuels/ledwall/pkg/errors"
	"github.com/matzehuels/ledwall/pkg/render/draw"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
)

// Layer names accepted by [ParseLayers].
const (
	LayerLabels = "labels"
	LayerWiring = "wiring"
	LayerScale  = "scale"
	LayerBadge  = "badge"
	LayerSpecs  = "specs"
)

// Layers lists every layer name in draw order.
var Layers = []string{LayerLabels, LayerWiring, LayerScale, LayerBadge, LayerSpecs}

type Option func(*renderer)

type renderer struct {
	color1, color2 string
	labels         bool
	wiring         bool
	scale          bool
	badge          bool
	specs          bool
}

// WithColors sets the two checkerboard colours. Empty values keep the
// defaults.
func WithColors(c1, c2 string) Option {
	return func(r *renderer) {
		if c1 != "" {
			r.color1 = c1
		}
		if c2 != "" {
			r.color2 = c2
		}
	}
}

func WithLabels() Option { return func(r *renderer) { r.labels = true } }
func WithWiring() Option { return func(r *renderer) { r.wiring = true } }
func WithScale() Option  { return func(r *renderer) { r.scale = true } }
func WithBadge() Option  { return func(r *renderer) { r.badge = true } }
func WithSpecs() Option  { return func(r *renderer) { r.specs = true } }

// ParseLayers maps layer names to options. Names are case-insensitive;
// unknown names fail with INVALID_VIEW.
func ParseLayers(names []string) ([]Option, error) {
	opts := make([]Option, 0, len(names))
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "":
		case LayerLabels:
			opts = append(opts, WithLabels())
		case LayerWiring:
			opts = append(opts, WithWiring())
		case LayerScale:
			opts = append(opts, WithScale())
		case LayerBadge:
			opts = append(opts, WithBadge())
		case LayerSpecs:
			opts = append(opts, WithSpecs())
		default:
			return nil, errs.New(errs.ErrCodeInvalidView, "unknown preview layer %q (valid: %s)", n, strings.Join(Layers, ", "))
		}
	}
	return opts, nil
}

// RenderSVG draws p at one SVG unit per wall pixel.
func RenderSVG(p *plan.Plan, opts ...Option) []byte {
	r := renderer{color1: draw.DefaultColor1, color2: draw.DefaultColor2}
	for _, opt := range opts {
		opt(&r)
	}

	g := p.Config.Grid
	cw, ch := draw.CanvasSize(g)
	w, h := float64(cw), float64(ch)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", cw, ch, cw, ch)
	if r.badge {
		buf.WriteString(`  <defs><filter id="badge-shadow" x="-20%" y="-50%" width="140%" height="200%"><feDropShadow dx="0" dy="0" stdDeviation="10" flood-color="#000000" flood-opacity="0.3"/></filter></defs>` + "\n")
	}
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="#000000"/>`+"\n", cw, ch)

	draw.Checkerboard(&buf, g, draw.Identity, r.color1, r.color2)
	if r.labels {
		draw.Labels(&buf, g, p.Visits, draw.Identity)
	}
	if r.wiring {
		draw.Wiring(&buf, g, p.Ports, draw.Identity)
	}
	if r.scale {
		draw.ScaleOverlay(&buf, w, h)
	}
	if r.badge && p.Config.Name != "" {
		renderBadge(&buf, p.Config.Name, w, h)
	}
	if r.specs {
		renderSpecBar(&buf, p, w, h)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderBadge draws the screen name, upper-cased, on a white pill in the
// middle of the wall.
func renderBadge(buf *bytes.Buffer, name string, w, h float64) {
	text := strings.ToUpper(name)
	fs := math.Max(20, h/18)
	boxW := draw.TextWidth(text, fs) + fs*0.8*2
	boxH := fs + fs*0.4*2
	cx, cy := w/2, h/2

	buf.WriteString(`  <g class="badge">` + "\n")
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="8" fill="#ffffff" filter="url(#badge-shadow)"/>`+"\n",
		cx-boxW/2, cy-boxH/2, boxW, boxH)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="Inter, sans-serif" font-size="%.2f" font-weight="900" font-style="italic" fill="#000000" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		cx, cy, fs, draw.EscapeXML(text))
	buf.WriteString("  </g>\n")
}

// SpecText is the summary line of the spec bar.
func SpecText(p *plan.Plan) string {
	m := p.Metrics
	return fmt.Sprintf("%d×%d PX | ASPECT %s | %d PANELS", m.WidthPx, m.HeightPx, m.AspectRatio, m.TotalPanels)
}

func renderSpecBar(buf *bytes.Buffer, p *plan.Plan, w, h float64) {
	text := SpecText(p)
	fs := math.Max(13, h/32)
	barH := fs * 2.3
	barY := h - barH - h*0.05
	barW := draw.TextWidth(text, fs) + 60

	buf.WriteString(`  <g class="specs">` + "\n")
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="8" fill="#000000" fill-opacity="0.85"/>`+"\n",
		w/2-barW/2, barY, barW, barH)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="Inter, sans-serif" font-size="%.2f" font-weight="bold" fill="#ffffff" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		w/2, barY+barH/2, fs, draw.EscapeXML(text))
	buf.WriteString("  </g>\n")
}
