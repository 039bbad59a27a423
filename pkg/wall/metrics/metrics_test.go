package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/ports"
	"github.com/matzehuels/ledwall/pkg/wall/traversal"
)

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		w, h int
		want string
	}{
		{1920, 1080, "16:9"},
		{768, 512, "3:2"},
		{128, 128, "1:1"},
		{2048, 1152, "16:9"},
		{1000, 7, "1000:7"},
		{0, 100, "0:0"},
		{100, 0, "0:0"},
		{0, 0, "0:0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AspectRatio(tt.w, tt.h), "%dx%d", tt.w, tt.h)
	}
}

func TestGCD(t *testing.T) {
	assert.Equal(t, 120, GCD(1920, 1080))
	assert.Equal(t, 120, GCD(1080, 1920))
	assert.Equal(t, 7, GCD(7, 0))
	assert.Equal(t, 0, GCD(0, 0))
	assert.Equal(t, 4, GCD(-8, 12))
}

func compute(t *testing.T, cfg wall.Config) Metrics {
	t.Helper()
	visits := traversal.Generate(cfg.Grid, cfg.Pattern, cfg.Corner)
	ps, err := ports.Partition(visits, cfg.PixelsPerPort)
	require.NoError(t, err)
	return Compute(cfg, ps)
}

func TestCompute_Defaults(t *testing.T) {
	cfg := wall.DefaultConfig()
	m := compute(t, cfg)

	assert.Equal(t, 144, m.TotalPanels)
	assert.Equal(t, 2048, m.WidthPx)
	assert.Equal(t, 1152, m.HeightPx)
	assert.Equal(t, "16:9", m.AspectRatio)
	assert.Equal(t, 144*128*128, m.TotalPixels)
	// Rows of 16 panels are 262144 pixels; two fit a 655360 budget.
	assert.Equal(t, 5, m.TotalPorts)
	assert.Zero(t, m.OversizedPorts)

	assert.InDelta(t, 8*4.5, m.AreaM2, 1e-9)
	assert.InDelta(t, 28800.0, m.TotalWatts, 1e-9)
	assert.InDelta(t, 28800.0/220, m.TotalAmps, 1e-9)
	assert.InDelta(t, 32.0, m.KVA, 1e-9)
	assert.InDelta(t, float64(m.TotalPixels)/655360/5, m.PortUtilization, 1e-9)
}

func TestCompute_HalfHeightLastRow(t *testing.T) {
	cfg := wall.DefaultConfig()
	cfg.Grid = wall.Grid{Width: 4, Height: 3, PanelWidthPx: 100, PanelHeightPx: 100, HalfHeightLastRow: true}
	m := compute(t, cfg)

	assert.Equal(t, 250, m.HeightPx)
	assert.Equal(t, "8:5", m.AspectRatio)
	assert.Equal(t, 4*100*100*2+4*100*50, m.TotalPixels)
}

func TestCompute_EmptyGrid(t *testing.T) {
	cfg := wall.DefaultConfig()
	cfg.Grid.Width, cfg.Grid.Height = 0, 5
	m := compute(t, cfg)

	assert.Equal(t, Metrics{AspectRatio: "0:0"}, m)
}

func TestCompute_ZeroElectrical(t *testing.T) {
	cfg := wall.DefaultConfig()
	cfg.Voltage = 0
	cfg.PowerFactor = 0
	m := compute(t, cfg)

	assert.Greater(t, m.TotalWatts, 0.0)
	assert.Zero(t, m.TotalAmps)
	assert.Zero(t, m.KVA)
}

func TestCompute_Oversized(t *testing.T) {
	cfg := wall.DefaultConfig()
	cfg.Grid = wall.Grid{Width: 2, Height: 1, PanelWidthPx: 256, PanelHeightPx: 256}
	cfg.PixelsPerPort = 1000
	m := compute(t, cfg)

	assert.Equal(t, 2, m.TotalPorts)
	assert.Equal(t, 2, m.OversizedPorts)
	assert.Greater(t, m.PortUtilization, 1.0)
}
