package pipeline

import (
	"bytes"
	"context"
	"fmt"

	errs "github.com/matzehuels/ledwall/pkg/errors"
	ledio "github.com/matzehuels/ledwall/pkg/io"
	"github.com/matzehuels/ledwall/pkg/render"
	"github.com/matzehuels/ledwall/pkg/render/preview"
	"github.com/matzehuels/ledwall/pkg/render/techsheet"
	"github.com/matzehuels/ledwall/pkg/render/wiring"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
)

// Render generates output artifacts in the requested formats. The SVG of the
// view is drawn once and converted for PNG and PDF; JSON is the plan document
// regardless of the view.
func Render(ctx context.Context, p *plan.Plan, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte

	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		if format != FormatJSON && svg == nil {
			var err error
			if svg, err = RenderSVG(ctx, p, opts); err != nil {
				return nil, err
			}
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg
		case FormatPNG:
			data, err = render.ToPNG(svg, opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(svg)
		case FormatJSON:
			var buf bytes.Buffer
			err = ledio.WriteJSON(p, &buf)
			data = buf.Bytes()
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		opts.Logger.Debug("rendered artifact", "view", opts.View, "format", format, "bytes", len(data))
	}

	return artifacts, nil
}

// RenderSVG draws the requested view of p.
func RenderSVG(ctx context.Context, p *plan.Plan, opts Options) ([]byte, error) {
	switch opts.View {
	case ViewPreview, "":
		svgOpts, err := buildPreviewOptions(opts)
		if err != nil {
			return nil, err
		}
		return preview.RenderSVG(p, svgOpts...), nil
	case ViewTechSheet:
		return techsheet.RenderSVG(p), nil
	case ViewWiring:
		dot := wiring.ToDOT(p, wiring.Options{Detailed: opts.HasLayer(LayerDetailed)})
		return wiring.RenderSVG(ctx, dot)
	default:
		return nil, ValidateView(opts.View)
	}
}

func buildPreviewOptions(opts Options) ([]preview.Option, error) {
	svgOpts, err := preview.ParseLayers(opts.Layers)
	if err != nil {
		return nil, err
	}
	if opts.Color1 != "" || opts.Color2 != "" {
		svgOpts = append(svgOpts, preview.WithColors(opts.Color1, opts.Color2))
	}
	return svgOpts, nil
}
