// Package wiring renders the cable plan of a wall as a Graphviz diagram.
//
// Every panel becomes a node labelled with its sequence number and grid
// coordinate. Panels are grouped into one cluster per port, coloured from the
// port palette, and chained by edges in cable order:
//
//	dot := wiring.ToDOT(p, wiring.Options{})
//	svg, err := wiring.RenderSVG(ctx, dot)
//
// Layout and SVG output come from go-graphviz, which embeds Graphviz, so no
// system installation is needed. PNG and PDF go through [render.ToPNG] and
// [render.ToPDF].
//
// [render.ToPNG]: github.com/matzehuels/ledwall/pkg/render.ToPNG
// [render.ToPDF]: github.com/matzehuels/ledwall/pkg/render.ToPDF
package wiring
