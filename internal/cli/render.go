package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/ledwall/pkg/errors"
	"github.com/matzehuels/ledwall/pkg/pipeline"
)

// stdoutPath makes -o write a single artifact to standard output.
const stdoutPath = "-"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		wf         wallFlags
		formatsStr string
		layersStr  string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{View: pipeline.DefaultView, Scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [config]",
		Short: "Render a preview, tech sheet or wiring diagram of a wall",
		Long: `Render a preview, tech sheet or wiring diagram of a wall.

The wall comes from a .toml/.yaml config file, a --descriptor, or the built-in
16x9 default. Views:

  preview    checkerboard of the wall at native resolution; overlay layers
             labels, wiring, scale, badge, specs
  techsheet  1280x720 sheet with thumbnail, specifications and port legend
  wiring     Graphviz diagram of every port's cable chain (layer: detailed)

PNG and PDF output need rsvg-convert on PATH. Results are cached locally for
faster subsequent runs.`,
		Example: `  ledwall render -d "16x9 @128x128 row-serpentine TL" --layers wiring,specs
  ledwall render stage.toml --view techsheet -f svg,pdf -o stage
  ledwall render stage.yaml --view wiring --layers detailed -f png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := wf.load(args)
			if err != nil {
				return err
			}
			opts.Config = cfg
			opts.Formats = parseFormats(formatsStr)
			opts.Layers = splitList(layersStr)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			if output == stdoutPath && len(opts.Formats) > 1 {
				return errs.New(errs.ErrCodeInvalidPath, "-o - needs exactly one format")
			}
			return c.runRender(cmd.Context(), source, args, opts, output, noCache)
		},
	}

	wf.register(cmd)
	cmd.Flags().StringVar(&opts.View, "view", opts.View, "view: preview (default), techsheet, wiring")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&layersStr, "layers", "l", "", "overlay layers (comma-separated): labels, wiring, scale, badge, specs; detailed for the wiring view")
	cmd.Flags().StringVar(&opts.Color1, "color1", "", "first checkerboard colour (preview)")
	cmd.Flags().StringVar(&opts.Color2, "color2", "", "second checkerboard colour (preview)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG rasterisation factor")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	registerRenderCompletions(cmd)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, source string, args []string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Loaded wall from %s", source)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.View))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == stdoutPath {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	base := basePath(output, args, opts.View)
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, base, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", opts.View)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Plan.Metrics, result.CacheInfo.PlanHit && result.CacheInfo.RenderHit)
	return nil
}

// basePath derives the output path without extension. An explicit output
// loses a known format extension; otherwise the name comes from the config
// file, with the view appended for non-preview views.
func basePath(output string, args []string, view string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.ToLower(strings.TrimPrefix(ext, "."))] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	base := appName
	if len(args) > 0 {
		base = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}
	if view != pipeline.ViewPreview {
		base += "_" + view
	}
	return base
}

// writeArtifacts writes each format to base.format, or to output verbatim
// when exactly one format was requested and output already names it.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" && strings.EqualFold(filepath.Ext(output), "."+format) {
			path = output
		}
		if err := errs.ValidateOutputPath(path); err != nil {
			return paths, err
		}
		if err := writeFile(path, artifacts[format]); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
