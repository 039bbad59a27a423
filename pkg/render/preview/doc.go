// Package preview renders a wall at its native pixel size as SVG.
//
// The base image is the panel checkerboard. Optional layers are drawn on top
// in a fixed order: sequence labels, wiring, scale overlay, name badge and
// spec bar. Layers are selected with [Option] values, or by name with
// [ParseLayers] for command-line and HTTP callers.
//
//	svg := preview.RenderSVG(p, preview.WithWiring(), preview.WithSpecs())
package preview
