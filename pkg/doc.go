// Package pkg provides the libraries behind ledwall, a cabling planner for
// LED video walls.
//
// # Overview
//
// An LED wall is a grid of panels driven by a processor whose outputs
// ("ports") each carry a limited number of pixels. Ledwall walks the grid in
// a cabling pattern from a start corner, cuts the walk into ports without
// ever splitting a row or column across two cables unless it has to, and
// summarizes the result. The pkg directory is organized as:
//
//  1. [wall] - Engine: grid model, traversal, port partition, metrics, plan
//  2. [config] - Configuration files and the one-line wall descriptor
//  3. [render] - Preview, tech sheet and wiring diagram renderers
//  4. [pipeline] - Orchestration (config → plan → artifacts) with caching
//  5. [cache], [io], [observability], [errors] - Supporting infrastructure
//
// # Architecture
//
// The data flow through ledwall:
//
//	configuration (file, descriptor or defaults)
//	         ↓
//	    [wall/traversal] (ordered panel visits)
//	         ↓
//	    [wall/ports] (visits cut into port chains)
//	         ↓
//	    [wall/metrics] (pixels, area, power)
//	         ↓
//	    [render] → SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/ledwall/pkg/config"
//	    "github.com/matzehuels/ledwall/pkg/render/preview"
//	    "github.com/matzehuels/ledwall/pkg/wall/plan"
//	)
//
//	cfg, _ := config.ParseDescriptor("16x9 @128x128 row-serpentine TL")
//	p, _ := plan.Build(cfg)
//	svg := preview.RenderSVG(p, preview.WithWiring(), preview.WithSpecs())
//
// The CLI (cmd/ledwall) and the HTTP server (internal/server) go through
// [pipeline.Runner], which adds validation, caching and observability hooks.
package pkg
