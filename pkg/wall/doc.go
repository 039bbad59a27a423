// Package wall defines the data model of an LED video wall: the panel grid,
// the cable traversal pattern, the start corner and the results the wiring
// engine produces (panel visits and ports).
//
// # Overview
//
// A wall is a rectangular grid of identical LED panels. A processor feeds the
// grid through a number of data ports; each port drives a contiguous run of
// panels (a cable) whose total pixel count must fit the port's pixel budget.
//
// The engine lives in the subpackages:
//
//   - [traversal]: the order in which cables visit panels
//   - [ports]: greedy partitioning of that order into ports
//   - [metrics]: totals, aspect ratio, area and electrical figures
//   - [plan]: the pure function that runs all three for a [Config]
//
// Everything in this package is a plain value. Nothing holds mutable state,
// so a [Config] can be shared between goroutines freely.
//
// # Coordinates
//
// Columns grow to the right and rows grow downwards, with (0, 0) in the
// top-left panel. A [Corner] other than [CornerTL] mirrors the traversal; it
// never changes panel coordinates.
//
// [traversal]: github.com/matzehuels/ledwall/pkg/wall/traversal
// [ports]: github.com/matzehuels/ledwall/pkg/wall/ports
// [metrics]: github.com/matzehuels/ledwall/pkg/wall/metrics
// [plan]: github.com/matzehuels/ledwall/pkg/wall/plan
package wall
