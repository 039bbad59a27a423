// Package render turns a computed wiring plan into images.
//
// # Overview
//
// The engine in [wall] decides which panel each data port drives; this
// package tree draws the result:
//
//   - [preview]: the wall at native pixel size, with optional labels,
//     wiring, scale overlay, name badge and spec bar
//   - [techsheet]: a fixed 1280x720 data sheet with a wiring thumbnail,
//     the stat table and a port legend
//   - [wiring]: a Graphviz diagram of panels clustered per port
//   - [draw]: the SVG primitives the first two share
//
// # Format Conversion
//
// Every renderer produces SVG. [ToPDF] and [ToPNG] convert it with the
// external rsvg-convert tool (from librsvg); when the tool is missing they
// return an UNSUPPORTED error.
//
//	svg := preview.RenderSVG(p, preview.WithWiring())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [wall]: github.com/matzehuels/ledwall/pkg/wall
// [preview]: github.com/matzehuels/ledwall/pkg/render/preview
// [techsheet]: github.com/matzehuels/ledwall/pkg/render/techsheet
// [wiring]: github.com/matzehuels/ledwall/pkg/render/wiring
// [draw]: github.com/matzehuels/ledwall/pkg/render/draw
package render
