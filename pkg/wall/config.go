package wall

import (
	errs "github.com/matzehuels/ledwall/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultName is the screen name used when none is configured.
	DefaultName = "Screen 1"

	// DefaultWidth and DefaultHeight give a 16:9 wall of 16×9 panels.
	DefaultWidth  = 16
	DefaultHeight = 9

	// DefaultPanelPx is the default panel resolution on both axes.
	DefaultPanelPx = 128

	// DefaultPanelMm is the default physical panel size on both axes.
	DefaultPanelMm = 500.0

	// DefaultPixelsPerPort is the pixel budget of one gigabit processor port.
	DefaultPixelsPerPort = 655360

	// DefaultPanelWatts is the default maximum draw of one panel.
	DefaultPanelWatts = 200.0

	// DefaultVoltage is the default mains supply voltage.
	DefaultVoltage = 220.0

	// DefaultPowerFactor is the assumed power factor for kVA sizing.
	DefaultPowerFactor = 0.9
)

// Size limits. MaxPanels bounds Width×Height; MaxPanelPx bounds each axis of
// the panel resolution so pixel totals stay far from int overflow.
const (
	MaxPanels  = 1 << 20
	MaxPanelPx = 1 << 14
)

// DefaultPattern is the default cable traversal pattern.
const DefaultPattern = PatternRowSerpentine

// DefaultCorner is the default start corner.
const DefaultCorner = CornerTL

// Config is the complete, explicit configuration of a wall: geometry, cabling,
// physical size and electrical draw. The wiring engine reads Grid, Pattern,
// Corner and PixelsPerPort; the remaining fields feed the metrics.
type Config struct {
	Name          string  `json:"name,omitempty" toml:"name" yaml:"name"`
	Grid          Grid    `json:"grid" toml:"grid" yaml:"grid"`
	Pattern       Pattern `json:"pattern" toml:"pattern" yaml:"pattern"`
	Corner        Corner  `json:"corner" toml:"corner" yaml:"corner"`
	PixelsPerPort int     `json:"pixels_per_port" toml:"pixels_per_port" yaml:"pixels_per_port"`

	// Physical panel size in millimetres.
	PanelWidthMm  float64 `json:"panel_width_mm,omitempty" toml:"panel_width_mm" yaml:"panel_width_mm"`
	PanelHeightMm float64 `json:"panel_height_mm,omitempty" toml:"panel_height_mm" yaml:"panel_height_mm"`

	// Electrical figures.
	PanelWatts  float64 `json:"panel_watts,omitempty" toml:"panel_watts" yaml:"panel_watts"`
	Voltage     float64 `json:"voltage,omitempty" toml:"voltage" yaml:"voltage"`
	PowerFactor float64 `json:"power_factor,omitempty" toml:"power_factor" yaml:"power_factor"`
}

// DefaultConfig returns the configuration a fresh project starts with.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero-valued fields with their defaults. It is meant for
// loaders building a Config from partial input; the engine itself never
// applies defaults, so an explicit zero budget still fails validation.
func (c *Config) SetDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Grid.Width == 0 && c.Grid.Height == 0 {
		c.Grid.Width = DefaultWidth
		c.Grid.Height = DefaultHeight
	}
	if c.Grid.PanelWidthPx == 0 {
		c.Grid.PanelWidthPx = DefaultPanelPx
	}
	if c.Grid.PanelHeightPx == 0 {
		c.Grid.PanelHeightPx = DefaultPanelPx
	}
	if c.Pattern == "" {
		c.Pattern = DefaultPattern
	}
	if c.Corner == "" {
		c.Corner = DefaultCorner
	}
	if c.PixelsPerPort == 0 {
		c.PixelsPerPort = DefaultPixelsPerPort
	}
	if c.PanelWidthMm == 0 {
		c.PanelWidthMm = DefaultPanelMm
	}
	if c.PanelHeightMm == 0 {
		c.PanelHeightMm = DefaultPanelMm
	}
	if c.PanelWatts == 0 {
		c.PanelWatts = DefaultPanelWatts
	}
	if c.Voltage == 0 {
		c.Voltage = DefaultVoltage
	}
	if c.PowerFactor == 0 {
		c.PowerFactor = DefaultPowerFactor
	}
}

// Validate checks every field against its constraint. All failures carry
// [errs.ErrCodeInvalidConfiguration]; pattern and corner failures wrap the
// parser's more specific error.
func (c Config) Validate() error {
	if err := errs.ValidateScreenName(c.Name); err != nil {
		return err
	}
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "grid dimensions must not be negative, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.Width > MaxPanels || c.Grid.Height > MaxPanels ||
		(c.Grid.Width > 0 && c.Grid.Height > MaxPanels/c.Grid.Width) {
		return errs.New(errs.ErrCodeInvalidConfiguration, "grid %dx%d exceeds the limit of %d panels", c.Grid.Width, c.Grid.Height, MaxPanels)
	}
	if c.Grid.PanelWidthPx <= 0 || c.Grid.PanelHeightPx <= 0 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "panel resolution must be positive, got %dx%d", c.Grid.PanelWidthPx, c.Grid.PanelHeightPx)
	}
	if c.Grid.PanelWidthPx > MaxPanelPx || c.Grid.PanelHeightPx > MaxPanelPx {
		return errs.New(errs.ErrCodeInvalidConfiguration, "panel resolution %dx%d exceeds %d px per side", c.Grid.PanelWidthPx, c.Grid.PanelHeightPx, MaxPanelPx)
	}
	if c.PixelsPerPort <= 0 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "pixels per port must be positive, got %d", c.PixelsPerPort)
	}
	if !c.Pattern.Valid() {
		if _, err := ParsePattern(string(c.Pattern)); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "pattern")
		}
		return errs.New(errs.ErrCodeInvalidConfiguration, "pattern %q is not canonical (use ParsePattern)", c.Pattern)
	}
	if !c.Corner.Valid() {
		if _, err := ParseCorner(string(c.Corner)); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "corner")
		}
		return errs.New(errs.ErrCodeInvalidConfiguration, "corner %q is not canonical (use ParseCorner)", c.Corner)
	}
	if c.PanelWidthMm < 0 || c.PanelHeightMm < 0 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "panel size must not be negative")
	}
	if c.PanelWatts < 0 || c.Voltage < 0 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "electrical figures must not be negative")
	}
	if c.PowerFactor < 0 || c.PowerFactor > 1 {
		return errs.New(errs.ErrCodeInvalidConfiguration, "power factor must be within [0, 1], got %g", c.PowerFactor)
	}
	return nil
}
