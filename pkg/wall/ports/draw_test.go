package ports

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ledwall/pkg/wall"
)

func TestRoles(t *testing.T) {
	tests := []struct {
		name   string
		panels int
		want   []wall.Role
	}{
		{"single", 1, []wall.Role{wall.RoleStart}},
		{"pair", 2, []wall.Role{wall.RoleStart, wall.RoleEnd}},
		{"run", 4, []wall.Role{wall.RoleStart, wall.RoleIntermediate, wall.RoleIntermediate, wall.RoleEnd}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := wall.Port{Panels: make([]wall.PanelVisit, tt.panels)}
			assert.Equal(t, tt.want, Roles(port))
		})
	}
}

func TestLinks(t *testing.T) {
	visits := visitsFor(3, 2, wall.PatternRowSerpentine, wall.CornerTL)
	ports, err := Partition(visits, 3*panelPx)
	require.NoError(t, err)
	require.Len(t, ports, 2)

	links := AllLinks(ports)
	// Two ports of three panels: two links each, none across the boundary.
	require.Len(t, links, 4)
	for _, l := range links {
		assert.Equal(t, l.From.Seq+1, l.To.Seq)
		assert.Equal(t, l.From.Unit, l.To.Unit)
	}
	assert.Equal(t, 1, links[2].Port)
	assert.Equal(t, wall.PanelVisit{Col: 2, Row: 1, Unit: 1, Seq: 3, Pixels: panelPx}, links[2].From)

	assert.Nil(t, Links(wall.Port{Panels: visits[:1]}))
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#3b82f6", Color(0))
	assert.Equal(t, "#059669", Color(9))
	assert.Equal(t, Color(0), Color(len(Palette)))
	assert.Equal(t, Color(len(Palette)-3), Color(-3))
	assert.NotPanics(t, func() { Color(math.MinInt) })
	assert.Contains(t, Palette, Color(math.MinInt))
}
