// Package ports partitions a wall traversal into processor data ports.
//
// # Algorithm
//
// [Partition] makes a single greedy pass over the traversal units (rows or
// columns, see [traversal.Units]). Whole units are packed into the current port
// while they fit the pixel budget; a unit that does not fit closes the port
// and starts the next one. Real processors wire whole rows or columns per
// cable, so a unit is only split when it alone exceeds the budget. In that case
// it is split panel by panel, and a single panel larger than the budget is
// accepted as an oversized port of one panel instead of failing.
//
// # Rendering Support
//
// [Roles], [Links] and [Color] give a renderer everything it needs to draw
// glyphs, arrows and per-port colours without re-deriving port boundaries.
//
// [traversal.Units]: github.com/matzehuels/ledwall/pkg/wall/traversal.Units
package ports

import (
	errs "github.com/matzehuels/ledwall/pkg/errors"
	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/traversal"
)

// Partition groups visits into ports of at most pixelsPerPort pixels.
// visits must be in traversal order with consecutive visits of a unit
// adjacent, as [traversal.Generate] returns them.
//
// A non-positive budget returns an [errs.ErrCodeInvalidConfiguration] error
// and no ports. No visits yields no ports and a nil error.
func Partition(visits []wall.PanelVisit, pixelsPerPort int) ([]wall.Port, error) {
	if pixelsPerPort <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidConfiguration, "pixels per port must be positive, got %d", pixelsPerPort)
	}

	p := partitioner{budget: pixelsPerPort}
	for _, unit := range traversal.Units(visits) {
		p.addUnit(unit)
	}
	p.close()
	return p.ports, nil
}

type partitioner struct {
	budget  int
	ports   []wall.Port
	current []wall.PanelVisit
	pixels  int
}

func (p *partitioner) addUnit(unit []wall.PanelVisit) {
	unitPixels := sumPixels(unit)
	if p.pixels > 0 && p.pixels+unitPixels > p.budget {
		p.close()
	}

	if unitPixels <= p.budget {
		p.current = append(p.current, unit...)
		p.pixels += unitPixels
		return
	}

	// The unit alone exceeds the budget.
	for _, v := range unit {
		if len(p.current) > 0 && p.pixels+v.Pixels > p.budget {
			p.close()
		}
		p.current = append(p.current, v)
		p.pixels += v.Pixels
	}
}

func (p *partitioner) close() {
	if len(p.current) == 0 {
		return
	}
	p.ports = append(p.ports, wall.Port{
		Index:       len(p.ports),
		Panels:      p.current,
		TotalPixels: p.pixels,
	})
	p.current = nil
	p.pixels = 0
}

func sumPixels(visits []wall.PanelVisit) int {
	total := 0
	for _, v := range visits {
		total += v.Pixels
	}
	return total
}

// Oversized reports whether port exceeds the budget. Only a port made of a
// single panel can, when that panel alone is larger than the budget.
func Oversized(port wall.Port, pixelsPerPort int) bool {
	return port.TotalPixels > pixelsPerPort
}

// Flatten concatenates the panels of all ports in port order. For a
// partition produced by [Partition] this reproduces the traversal.
func Flatten(ports []wall.Port) []wall.PanelVisit {
	n := 0
	for _, p := range ports {
		n += len(p.Panels)
	}
	out := make([]wall.PanelVisit, 0, n)
	for _, p := range ports {
		out = append(out, p.Panels...)
	}
	return out
}
