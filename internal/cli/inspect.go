package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ledwall/pkg/config"
	ledio "github.com/matzehuels/ledwall/pkg/io"
	"github.com/matzehuels/ledwall/pkg/pipeline"
	"github.com/matzehuels/ledwall/pkg/render/techsheet"
	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
	"github.com/matzehuels/ledwall/pkg/wall/ports"
)

// portsCommand prints the port table of a wall.
func (c *CLI) portsCommand() *cobra.Command {
	var (
		wf      wallFlags
		noCache bool
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "ports [config]",
		Short: "List the ports of a wall and the panels each one drives",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, hit, err := c.buildPlan(cmd.Context(), &wf, args, noCache)
			if err != nil {
				return err
			}
			if asJSON {
				return ledio.WriteJSON(p, stdout)
			}
			fmt.Fprintln(stdout, portsTable(p))
			printStats(p.Metrics, hit)
			return nil
		},
	}
	wf.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan document instead of a table")
	return cmd
}

// metricsCommand prints the summary figures of a wall.
func (c *CLI) metricsCommand() *cobra.Command {
	var (
		wf      wallFlags
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "metrics [config]",
		Short: "Show resolution, power and port figures of a wall",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := c.buildPlan(cmd.Context(), &wf, args, noCache)
			if err != nil {
				return err
			}
			title := p.Config.Name
			if title == "" {
				title = "Untitled"
			}
			fmt.Fprintln(stdout, StyleTitle.Render(title))
			fmt.Fprintln(stdout, metricTiles(techsheet.Stats(p)))
			if p.Metrics.OversizedPorts > 0 {
				printWarning("%d port(s) carry a single panel larger than the port budget", p.Metrics.OversizedPorts)
			}
			return nil
		},
	}
	wf.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// configCommand prints the resolved configuration in a chosen format.
func (c *CLI) configCommand() *cobra.Command {
	var (
		wf     wallFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "config [config]",
		Short: "Print the resolved wall configuration",
		Long: `Print the resolved wall configuration as TOML, YAML or a one-line
descriptor. Useful to turn a descriptor into a config file:

  ledwall config -d "8x4 @192x192 col-serpentine BR" --format toml > stage.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := wf.load(args)
			if err != nil {
				return err
			}
			out, err := formatConfig(cfg, format)
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, out)
			return nil
		},
	}
	wf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "descriptor", "output: descriptor, toml, yaml")
	return cmd
}

func formatConfig(cfg wall.Config, format string) (string, error) {
	switch strings.ToLower(format) {
	case "descriptor":
		return config.FormatDescriptor(cfg) + "\n", nil
	case "toml":
		data, err := config.Encode(cfg, config.FormatTOML)
		return string(data), err
	case "yaml", "yml":
		data, err := config.Encode(cfg, config.FormatYAML)
		return string(data), err
	default:
		return "", fmt.Errorf("unknown config format %q (must be descriptor, toml or yaml)", format)
	}
}

// buildPlan loads the wall and computes its plan through the cache.
func (c *CLI) buildPlan(ctx context.Context, wf *wallFlags, args []string, noCache bool) (*plan.Plan, bool, error) {
	cfg, source, err := wf.load(args)
	if err != nil {
		return nil, false, err
	}
	loggerFromContext(ctx).Debugf("Loaded wall from %s", source)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	p, _, hit, err := runner.BuildWithCacheInfo(ctx, pipeline.Options{Config: cfg, Logger: c.Logger})
	if err != nil {
		return nil, false, fmt.Errorf("wiring: %w", err)
	}
	prog.debug(fmt.Sprintf("Wired %d panels onto %d ports", p.Metrics.TotalPanels, p.Metrics.TotalPorts))
	return p, hit, nil
}

// portsTable renders one row per port, coloured like the port in the
// preview.
func portsTable(p *plan.Plan) string {
	budget := p.Config.PixelsPerPort
	rows := make([][]string, len(p.Ports))
	for i, port := range p.Ports {
		first, last := port.First(), port.Last()
		fill := 0.0
		if budget > 0 {
			fill = float64(port.TotalPixels) / float64(budget) * 100
		}
		rows[i] = []string{
			fmt.Sprintf("%d", port.Index+1),
			fmt.Sprintf("%d", len(port.Panels)),
			fmt.Sprintf("%d", port.TotalPixels),
			fmt.Sprintf("%.1f%%", fill),
			fmt.Sprintf("(%d,%d) %s (%d,%d)", first.Col, first.Row, iconArrow, last.Col, last.Row),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Port", "Panels", "Pixels", "Fill", "Run").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(p.Ports) {
				return cell
			}
			port := p.Ports[row]
			switch col {
			case 0:
				return cell.Inherit(portStyle(port.Index)).Bold(true)
			case 3:
				if ports.Oversized(port, budget) {
					return cell.Foreground(colorRed)
				}
				return cell.Foreground(colorGray)
			}
			return cell.Foreground(colorWhite)
		})
	return t.Render()
}

var (
	tileLabelStyle = lipgloss.NewStyle().Foreground(colorGray)
	tileValueStyle = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	tileStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Width(22)
)

// metricTiles lays the stats out as bordered tiles, four per row.
func metricTiles(stats []techsheet.Stat) string {
	const perRow = 4
	var lines []string
	for i := 0; i < len(stats); i += perRow {
		var tiles []string
		for _, s := range stats[i:min(i+perRow, len(stats))] {
			tiles = append(tiles, tileStyle.Render(tileLabelStyle.Render(s.Label)+"\n"+tileValueStyle.Render(s.Value)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
