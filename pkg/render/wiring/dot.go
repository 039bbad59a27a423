package wiring

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
	"github.com/matzehuels/ledwall/pkg/wall/ports"
)

// Options configures wiring diagram rendering.
type Options struct {
	// Detailed adds the pixel footprint to node labels and the pixel total to
	// cluster labels.
	Detailed bool
}

// NodeID returns the DOT identifier of the panel at (col, row).
func NodeID(col, row int) string {
	return fmt.Sprintf("c%d_r%d", col, row)
}

// ToDOT converts a plan to Graphviz DOT. Panels are laid out left to right in
// cable order, one cluster per port.
func ToDOT(p *plan.Plan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph wiring {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Inter\", fontsize=14];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for _, port := range p.Ports {
		color := ports.Color(port.Index)
		fmt.Fprintf(&buf, "  subgraph cluster_port_%d {\n", port.Index)
		fmt.Fprintf(&buf, "    label=%q;\n", clusterLabel(port, opts.Detailed))
		fmt.Fprintf(&buf, "    color=%q;\n", color)
		buf.WriteString("    penwidth=2;\n")
		buf.WriteString("    style=rounded;\n")
		for i, v := range port.Panels {
			fmt.Fprintf(&buf, "    %s [label=%q, color=%q%s];\n",
				NodeID(v.Col, v.Row), nodeLabel(v, opts.Detailed), color, roleAttrs(ports.RoleAt(port, i), color))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, l := range ports.AllLinks(p.Ports) {
		fmt.Fprintf(&buf, "  %s -> %s [color=%q];\n", NodeID(l.From.Col, l.From.Row), NodeID(l.To.Col, l.To.Row), ports.Color(l.Port))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func clusterLabel(port wall.Port, detailed bool) string {
	label := fmt.Sprintf("Port %d", port.Index+1)
	if detailed {
		label += fmt.Sprintf(" (%d px)", port.TotalPixels)
	}
	return label
}

func nodeLabel(v wall.PanelVisit, detailed bool) string {
	label := fmt.Sprintf("%d\n(%d,%d)", v.Seq+1, v.Col+1, v.Row+1)
	if detailed {
		label += fmt.Sprintf("\n%d px", v.Pixels)
	}
	return label
}

// roleAttrs marks the first panel of a port with its colour and the last
// with a bold outline.
func roleAttrs(r wall.Role, color string) string {
	switch r {
	case wall.RoleStart:
		return fmt.Sprintf(", fillcolor=%q, fontcolor=white", color)
	case wall.RoleEnd:
		return ", penwidth=3"
	default:
		return ""
	}
}

// RenderSVG lays out a DOT graph with Graphviz and returns the SVG bytes,
// ready for display or further conversion.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg tag with a plain one
// whose width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
