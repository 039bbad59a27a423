// Package io provides JSON import and export for computed wiring plans.
//
// # Overview
//
// A plan document records a wall configuration together with its port
// partition and metrics, so the wiring can be handed to other tools or
// re-rendered without recomputing it:
//
//	{
//	  "version": 1,
//	  "config": {"name": "Main", "grid": {"width": 6, "height": 4, ...}, ...},
//	  "ports": [
//	    {"index": 0, "total_pixels": 393216, "panels": [{"col": 0, "row": 0, ...}, ...]}
//	  ],
//	  "metrics": {"total_ports": 1, "aspect_ratio": "3:2", ...}
//	}
//
// The visit list is not stored; it is the concatenation of the port panels.
//
// # Import
//
// [ReadJSON] reads from any io.Reader and [ImportJSON] from a file path. Both
// validate the configuration and the partition: every panel of the grid must
// appear in exactly one port, and each port's pixel total must match its
// panels. Metrics are recomputed rather than trusted.
//
//	p, err := io.ImportJSON("wall.json")
//
// # Export
//
// [WriteJSON] writes to any io.Writer and [ExportJSON] to a file path.
//
//	err := io.ExportJSON(p, "wall.json")
package io
