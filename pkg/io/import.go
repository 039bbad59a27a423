package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/ledwall/pkg/errors"
	"github.com/matzehuels/ledwall/pkg/wall/metrics"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
	"github.com/matzehuels/ledwall/pkg/wall/ports"
)

// ReadJSON decodes a plan document from r.
//
// ReadJSON returns an [errs.ErrCodeInvalidFormat] error if:
//   - The JSON is malformed or the version is unknown
//   - The configuration fails validation (wrapped as the cause)
//   - A panel lies outside the grid, appears twice or is missing
//   - A port's index or pixel total is inconsistent
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*plan.Plan, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode plan")
	}
	if doc.Version != FormatVersion {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported plan version %d", doc.Version)
	}
	if err := doc.Config.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "plan config")
	}
	if err := checkPorts(doc); err != nil {
		return nil, err
	}

	return &plan.Plan{
		Config:  doc.Config,
		Visits:  ports.Flatten(doc.Ports),
		Ports:   doc.Ports,
		Metrics: metrics.Compute(doc.Config, doc.Ports),
	}, nil
}

func checkPorts(doc document) error {
	g := doc.Config.Grid
	seen := make(map[[2]int]bool, g.Panels())
	for i, p := range doc.Ports {
		if p.Index != i {
			return errs.New(errs.ErrCodeInvalidFormat, "port %d has index %d", i, p.Index)
		}
		if len(p.Panels) == 0 {
			return errs.New(errs.ErrCodeInvalidFormat, "port %d has no panels", i)
		}
		sum := 0
		for _, v := range p.Panels {
			if v.Col < 0 || v.Col >= g.Width || v.Row < 0 || v.Row >= g.Height {
				return errs.New(errs.ErrCodeInvalidFormat, "port %d: panel (%d,%d) outside %dx%d grid", i, v.Col, v.Row, g.Width, g.Height)
			}
			cell := [2]int{v.Col, v.Row}
			if seen[cell] {
				return errs.New(errs.ErrCodeInvalidFormat, "port %d: panel (%d,%d) wired twice", i, v.Col, v.Row)
			}
			seen[cell] = true
			sum += v.Pixels
		}
		if sum != p.TotalPixels {
			return errs.New(errs.ErrCodeInvalidFormat, "port %d: total_pixels %d, panels sum to %d", i, p.TotalPixels, sum)
		}
	}
	if len(seen) != g.Panels() {
		return errs.New(errs.ErrCodeInvalidFormat, "%d of %d panels wired", len(seen), g.Panels())
	}
	return nil
}

// ImportJSON reads a plan document from the file at path.
func ImportJSON(path string) (*plan.Plan, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
