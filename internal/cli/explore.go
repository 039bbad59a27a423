package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ledwall/pkg/config"
	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
)

// Grid bounds of the explorer; a larger map no longer fits a terminal.
const (
	exploreMaxCols = 64
	exploreMaxRows = 40
)

var (
	exploreHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	exploreErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	exploreEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand starts the interactive wall editor.
func (c *CLI) exploreCommand() *cobra.Command {
	var wf wallFlags
	cmd := &cobra.Command{
		Use:   "explore [config]",
		Short: "Edit a wall interactively and watch the wiring change",
		Long: `Edit a wall interactively and watch the wiring change.

Keys:
  ←/→ ↑/↓   remove/add columns and rows
  p / c     cycle traversal pattern / start corner
  + / -     raise/lower the port budget by one panel
  h         toggle the half-height last row
  q         quit and print the descriptor of the final wall`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := wf.load(args)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(NewExploreModel(cfg), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("explore: %w", err)
			}
			if m, ok := final.(ExploreModel); ok {
				printNextStep("Render it", fmt.Sprintf("%s render -d '%s'", appName, config.FormatDescriptor(m.Config)))
			}
			return nil
		},
	}
	wf.register(cmd)
	return cmd
}

// =============================================================================
// ExploreModel - Interactive wall editor
// =============================================================================

// ExploreModel is the bubbletea model of the wall editor. Every key press
// rebuilds the plan; an invalid configuration keeps the last good plan on
// screen together with the error.
type ExploreModel struct {
	Config wall.Config
	Plan   *plan.Plan
	Err    error
}

// NewExploreModel creates an editor for cfg.
func NewExploreModel(cfg wall.Config) ExploreModel {
	m := ExploreModel{Config: cfg}
	m.rebuild()
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	g := &m.Config.Grid
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right":
		g.Width = min(g.Width+1, exploreMaxCols)
	case "left":
		g.Width = max(g.Width-1, 0)
	case "down":
		g.Height = min(g.Height+1, exploreMaxRows)
	case "up":
		g.Height = max(g.Height-1, 0)
	case "p":
		m.Config.Pattern = m.Config.Pattern.Next()
	case "c":
		m.Config.Corner = m.Config.Corner.Next()
	case "h":
		g.HalfHeightLastRow = !g.HalfHeightLastRow
	case "+", "=":
		m.Config.PixelsPerPort += m.budgetStep()
	case "-", "_":
		m.Config.PixelsPerPort = max(m.Config.PixelsPerPort-m.budgetStep(), m.budgetStep())
	default:
		return m, nil
	}
	m.rebuild()
	return m, nil
}

// budgetStep is the pixel footprint of one full panel.
func (m ExploreModel) budgetStep() int {
	return max(1, m.Config.Grid.PanelWidthPx*m.Config.Grid.PanelHeightPx)
}

func (m *ExploreModel) rebuild() {
	p, err := plan.Build(m.Config)
	m.Err = err
	if err == nil {
		m.Plan = p
	}
}

func (m ExploreModel) View() string {
	var b strings.Builder
	cfg := m.Config

	b.WriteString(StyleTitle.Render("Wall Explorer"))
	if cfg.Name != "" {
		b.WriteString("  " + StyleDim.Render(cfg.Name))
	}
	b.WriteString("\n")
	b.WriteString(exploreHelpStyle.Render("←→↑↓ size  p pattern  c corner  +/- budget  h half row  q quit"))
	b.WriteString("\n\n")

	b.WriteString(portGrid(m.Plan))
	b.WriteString("\n\n")

	half := ""
	if cfg.Grid.HalfHeightLastRow {
		half = " · half last row"
	}
	fmt.Fprintf(&b, "%s  %s  %s%s\n",
		StyleValue.Render(fmt.Sprintf("%d×%d", cfg.Grid.Width, cfg.Grid.Height)),
		StyleHighlight.Render(string(cfg.Pattern)),
		StyleHighlight.Render(string(cfg.Corner)),
		StyleDim.Render(half))

	if m.Plan != nil {
		mt := m.Plan.Metrics
		fmt.Fprintf(&b, "%s\n", StyleDim.Render(fmt.Sprintf("%d ports · budget %d px · %.1f%% fill · %d×%d px · %s",
			mt.TotalPorts, cfg.PixelsPerPort, mt.PortUtilization*100, mt.WidthPx, mt.HeightPx, mt.AspectRatio)))
		if mt.OversizedPorts > 0 {
			b.WriteString(StyleWarning.Render(fmt.Sprintf("%d oversized port(s)", mt.OversizedPorts)) + "\n")
		}
	}
	if m.Err != nil {
		b.WriteString(exploreErrorStyle.Render(m.Err.Error()) + "\n")
	}
	return b.String()
}

// portGrid draws one cell per panel labelled with its 1-based port number in
// the port's colour.
func portGrid(p *plan.Plan) string {
	if p == nil || p.Config.Grid.Empty() {
		return exploreEmptyStyle.Render("(no panels)")
	}
	portMap := p.PortMap()
	width := len(fmt.Sprint(len(p.Ports)))

	var b strings.Builder
	for r, row := range portMap {
		if r > 0 {
			b.WriteString("\n")
		}
		for c, idx := range row {
			if c > 0 {
				b.WriteString(" ")
			}
			if idx < 0 {
				b.WriteString(exploreEmptyStyle.Render(strings.Repeat("·", width)))
				continue
			}
			cell := fmt.Sprintf("%*d", width, idx+1)
			b.WriteString(portStyle(idx).Render(cell))
		}
	}
	return b.String()
}
