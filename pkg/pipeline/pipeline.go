// Package pipeline runs the complete config → plan → render pipeline for
// ledwall.
//
// The CLI and the HTTP server both go through this package so that defaults,
// validation and caching behave the same at every entry point.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Wiring: validate the wall configuration and build its [plan.Plan]
//     (traversal, port partition, metrics)
//  2. Render: draw one view of the plan in one or more formats
//
// Each stage can be run on its own or as part of [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{
//	    Config:  wall.DefaultConfig(),
//	    View:    pipeline.ViewPreview,
//	    Formats: []string{"svg", "png"},
//	    Layers:  []string{"wiring", "specs"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ledwall/pkg/cache"
	errs "github.com/matzehuels/ledwall/pkg/errors"
	"github.com/matzehuels/ledwall/pkg/render/preview"
	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// View names.
const (
	ViewPreview   = "preview"
	ViewTechSheet = "techsheet"
	ViewWiring    = "wiring"
)

// DefaultView is the view rendered when none is requested.
const DefaultView = ViewPreview

// DefaultScale is the PNG rasterisation factor.
const DefaultScale = 2.0

// MaxScale bounds the PNG rasterisation factor.
const MaxScale = 8.0

// LayerDetailed adds pixel counts to the wiring diagram labels.
const LayerDetailed = "detailed"

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidViews is the set of supported views.
var ValidViews = map[string]bool{
	ViewPreview:   true,
	ViewTechSheet: true,
	ViewWiring:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Wiring input. The configuration is used as given; callers apply
	// defaults when they build it.
	Config wall.Config `json:"config"`

	// Render options
	View    string   `json:"view,omitempty"`
	Formats []string `json:"formats,omitempty"`
	Layers  []string `json:"layers,omitempty"` // preview layers, or "detailed" for the wiring view
	Color1  string   `json:"color1,omitempty"`
	Color2  string   `json:"color2,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG only
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the computed wiring.
	Plan *plan.Plan

	// PlanHash is the content hash of the serialized plan.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PanelCount int
	PortCount  int
	WiringTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return errs.New(errs.ErrCodeInvalidView, "invalid view: %q (must be one of: preview, techsheet, wiring)", view)
	}
	return nil
}

// ValidateLayers checks the layer names against the view. The preview accepts
// its overlay layers, the wiring diagram accepts "detailed" and the tech
// sheet accepts none.
func ValidateLayers(view string, layers []string) error {
	switch view {
	case ViewPreview:
		_, err := preview.ParseLayers(layers)
		return err
	case ViewWiring:
		for _, l := range layers {
			if l != LayerDetailed {
				return errs.New(errs.ErrCodeInvalidView, "view wiring does not support layer %q", l)
			}
		}
	default:
		if len(layers) > 0 {
			return errs.New(errs.ErrCodeInvalidView, "view %s does not support layers", view)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the configuration and render options and
// applies render defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForWiring(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForWiring checks the wall configuration.
func (o *Options) ValidateForWiring() error {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Config.Validate()
}

// SetRenderDefaults sets default values for rendering and normalises layer
// names to lower case.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = DefaultView
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	layers := o.Layers[:0:0]
	for _, l := range o.Layers {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			layers = append(layers, l)
		}
	}
	o.Layers = layers
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	for _, c := range []string{o.Color1, o.Color2} {
		if err := errs.ValidateColor(c); err != nil {
			return err
		}
	}
	return ValidateLayers(o.View, o.Layers)
}

// HasLayer reports whether name was requested.
func (o *Options) HasLayer(name string) bool {
	return slices.Contains(o.Layers, name)
}

// ArtifactKeyOpts returns cache key options for one rendered format. Options
// that do not affect the format are left out so equivalent requests share a
// cache entry.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{View: o.View, Format: format}
	if format == FormatJSON {
		return k
	}
	k.Layers = slices.Sorted(slices.Values(o.Layers))
	k.Layers = slices.Compact(k.Layers)
	if o.View == ViewPreview {
		k.Palette = o.Color1 + "," + o.Color2
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// ValidateScale checks a PNG scale factor after defaults are applied.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || scale <= 0 || scale > MaxScale {
		return errs.New(errs.ErrCodeInvalidOption, "scale must be within (0, %g], got %g", MaxScale, scale)
	}
	return nil
}
