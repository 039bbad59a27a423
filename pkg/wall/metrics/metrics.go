// Package metrics aggregates the summary figures of a wired wall: port and
// panel counts, pixel totals, aspect ratio, physical area and electrical draw.
//
// Every figure is a defined number even for degenerate input. An empty grid
// yields zero totals and an aspect ratio of "0:0"; a zero voltage or power
// factor yields zero amps or kVA instead of Inf or NaN.
package metrics

import (
	"fmt"

	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/ports"
)

// Metrics are the summary figures of a partitioned wall.
type Metrics struct {
	TotalPorts  int    `json:"total_ports"`
	TotalPanels int    `json:"total_panels"`
	TotalPixels int    `json:"total_pixels"`
	WidthPx     int    `json:"width_px"`
	HeightPx    int    `json:"height_px"`
	AspectRatio string `json:"aspect_ratio"`

	AreaM2     float64 `json:"area_m2"`
	TotalWatts float64 `json:"total_watts"`
	TotalAmps  float64 `json:"total_amps"`
	KVA        float64 `json:"kva"`

	// PortUtilization is the mean fill of the ports, TotalPixels/PixelsPerPort.
	PortUtilization float64 `json:"port_utilization"`
	OversizedPorts  int     `json:"oversized_ports"`
}

// Compute aggregates cfg and its partition. cfg is expected to be valid;
// Compute never fails.
func Compute(cfg wall.Config, ps []wall.Port) Metrics {
	g := cfg.Grid
	m := Metrics{
		TotalPorts:  len(ps),
		TotalPanels: g.Panels(),
		WidthPx:     g.TotalWidthPx(),
		HeightPx:    g.TotalHeightPx(),
	}
	m.AspectRatio = AspectRatio(m.WidthPx, m.HeightPx)

	var fill float64
	for _, p := range ps {
		m.TotalPixels += p.TotalPixels
		if cfg.PixelsPerPort > 0 {
			fill += float64(p.TotalPixels) / float64(cfg.PixelsPerPort)
			if ports.Oversized(p, cfg.PixelsPerPort) {
				m.OversizedPorts++
			}
		}
	}
	if len(ps) > 0 {
		m.PortUtilization = fill / float64(len(ps))
	}

	if m.TotalPanels > 0 {
		m.AreaM2 = (float64(g.Width) * cfg.PanelWidthMm / 1000) * (float64(g.Height) * cfg.PanelHeightMm / 1000)
	}
	m.TotalWatts = float64(m.TotalPanels) * cfg.PanelWatts
	if cfg.Voltage > 0 {
		m.TotalAmps = m.TotalWatts / cfg.Voltage
	}
	if cfg.PowerFactor > 0 {
		m.KVA = m.TotalWatts / cfg.PowerFactor / 1000
	}
	return m
}

// AspectRatio reduces width:height by their greatest common divisor, e.g.
// 1920x1080 gives "16:9". Either side being zero gives "0:0".
func AspectRatio(width, height int) string {
	if width <= 0 || height <= 0 {
		return "0:0"
	}
	d := GCD(width, height)
	return fmt.Sprintf("%d:%d", width/d, height/d)
}

// GCD returns the greatest common divisor of a and b using Euclid's
// algorithm. GCD(0, 0) is 0.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
