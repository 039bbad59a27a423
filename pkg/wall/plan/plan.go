// Package plan runs the complete wiring engine for a wall configuration.
//
// [Build] is the single entry point consumers need: it validates the
// configuration, generates the traversal, partitions it into ports and
// aggregates the metrics. It is pure and deterministic, so the same
// configuration always yields the same plan and concurrent calls are safe.
//
//	cfg := wall.DefaultConfig()
//	cfg.Grid.Width, cfg.Grid.Height = 6, 4
//	p, err := plan.Build(cfg)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(p.Metrics.TotalPorts)
package plan

import (
	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/metrics"
	"github.com/matzehuels/ledwall/pkg/wall/ports"
	"github.com/matzehuels/ledwall/pkg/wall/traversal"
)

// Plan is the computed wiring of a wall.
type Plan struct {
	Config  wall.Config       `json:"config"`
	Visits  []wall.PanelVisit `json:"visits"`
	Ports   []wall.Port       `json:"ports"`
	Metrics metrics.Metrics   `json:"metrics"`
}

// Build validates cfg and computes its plan. Defaults are not applied; use
// [wall.Config.SetDefaults] first for partial input.
//
// An invalid configuration returns the validation error and a nil plan. An
// empty grid is valid and returns a plan with no visits and no ports.
func Build(cfg wall.Config) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	visits := traversal.Generate(cfg.Grid, cfg.Pattern, cfg.Corner)
	ps, err := ports.Partition(visits, cfg.PixelsPerPort)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Config:  cfg,
		Visits:  visits,
		Ports:   ps,
		Metrics: metrics.Compute(cfg, ps),
	}, nil
}

// PortOf returns the index of the port driving the panel at (col, row), or
// -1 when no port does.
func (p *Plan) PortOf(col, row int) int {
	for _, port := range p.Ports {
		for _, v := range port.Panels {
			if v.Col == col && v.Row == row {
				return port.Index
			}
		}
	}
	return -1
}

// PortMap returns the port index of every panel as [row][col], -1 for
// panels outside any port.
func (p *Plan) PortMap() [][]int {
	g := p.Config.Grid
	if g.Empty() {
		return nil
	}
	m := make([][]int, g.Height)
	for r := range m {
		m[r] = make([]int, g.Width)
		for c := range m[r] {
			m[r][c] = -1
		}
	}
	for _, port := range p.Ports {
		for _, v := range port.Panels {
			m[v.Row][v.Col] = port.Index
		}
	}
	return m
}
