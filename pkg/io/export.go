package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/metrics"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
)

// FormatVersion is the plan document version written by [WriteJSON].
const FormatVersion = 1

type document struct {
	Version int             `json:"version"`
	Config  wall.Config     `json:"config"`
	Ports   []wall.Port     `json:"ports"`
	Metrics metrics.Metrics `json:"metrics"`
}

// WriteJSON encodes p to w as an indented plan document.
func WriteJSON(p *plan.Plan, w io.Writer) error {
	doc := document{
		Version: FormatVersion,
		Config:  p.Config,
		Ports:   p.Ports,
		Metrics: p.Metrics,
	}
	if doc.Ports == nil {
		doc.Ports = []wall.Port{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a plan to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(p *plan.Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(p, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
