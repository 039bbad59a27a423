package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/ledwall/pkg/wall"
)

func press(t *testing.T, m ExploreModel, keys ...tea.KeyMsg) ExploreModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(ExploreModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func smallWall() wall.Config {
	cfg := wall.DefaultConfig()
	cfg.Grid.Width, cfg.Grid.Height = 4, 3
	return cfg
}

func TestExploreResize(t *testing.T) {
	m := NewExploreModel(smallWall())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if g := m.Config.Grid; g.Width != 5 || g.Height != 5 {
		t.Errorf("grid = %dx%d, want 5x5", g.Width, g.Height)
	}
	if len(m.Plan.Visits) != 25 {
		t.Errorf("plan should follow the grid, got %d visits", len(m.Plan.Visits))
	}

	for range 10 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.Config.Grid.Width != 0 {
		t.Errorf("width should stop at 0, got %d", m.Config.Grid.Width)
	}
	if m.Err != nil || !strings.Contains(m.View(), "(no panels)") {
		t.Errorf("empty wall should render without error: %v", m.Err)
	}
}

func TestExploreCycle(t *testing.T) {
	m := NewExploreModel(smallWall())
	m = press(t, m, runes("p"), runes("c"), runes("h"))
	if m.Config.Pattern != wall.PatternRowSerpentine.Next() {
		t.Errorf("pattern = %s", m.Config.Pattern)
	}
	if m.Config.Corner != wall.CornerTL.Next() {
		t.Errorf("corner = %s", m.Config.Corner)
	}
	if !m.Config.Grid.HalfHeightLastRow {
		t.Error("h should toggle the half row")
	}
}

func TestExploreBudget(t *testing.T) {
	m := NewExploreModel(smallWall())
	step := 128 * 128
	start := m.Config.PixelsPerPort

	m = press(t, m, runes("+"))
	if m.Config.PixelsPerPort != start+step {
		t.Errorf("budget = %d, want %d", m.Config.PixelsPerPort, start+step)
	}

	for range 100 {
		m = press(t, m, runes("-"))
	}
	if m.Config.PixelsPerPort != step {
		t.Errorf("budget should bottom out at one panel, got %d", m.Config.PixelsPerPort)
	}
	if m.Plan.Metrics.TotalPorts != 12 {
		t.Errorf("one panel per port should give 12 ports, got %d", m.Plan.Metrics.TotalPorts)
	}
}

func TestExploreQuit(t *testing.T) {
	m := NewExploreModel(smallWall())
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestExploreView(t *testing.T) {
	cfg := smallWall()
	cfg.PixelsPerPort = 2 * 128 * 128
	out := NewExploreModel(cfg).View()
	for _, want := range []string{"Wall Explorer", "4×3", "row-serpentine", "6 ports", " 6"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}
