package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	errs "github.com/matzehuels/ledwall/pkg/errors"
	"github.com/matzehuels/ledwall/pkg/wall"
)

// descriptorLexer tokenizes wall descriptors. A size such as "16x9" is a
// single Pair token, so identifiers may start with x.
var descriptorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Pair", Pattern: `[0-9]+(?:\.[0-9]+)?[xX][0-9]+(?:\.[0-9]+)?`},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_-]*`},
	{Name: "Punct", Pattern: `[@=]`},
})

type descriptorAST struct {
	Size    *dimsAST     `@@`
	Panel   *dimsAST     `( "@" @@ )?`
	Options []*optionAST `@@*`
}

// dimsAST is a number, or a pair like 128x64.
type dimsAST struct {
	Raw string `@(Pair | Number)`
}

// parts splits a pair into its two numbers. b is nil for a lone number.
func (d *dimsAST) parts() (a string, b *string) {
	if i := strings.IndexAny(d.Raw, "xX"); i >= 0 {
		rest := d.Raw[i+1:]
		return d.Raw[:i], &rest
	}
	return d.Raw, nil
}

type optionAST struct {
	Pos   lexer.Position
	Key   string    `@Ident`
	Value *valueAST `( "=" @@ )?`
}

type valueAST struct {
	Dims *dimsAST `  @@`
	Word *string  `| @(Ident | String)`
}

var descriptorParser = participle.MustBuild[descriptorAST](
	participle.Lexer(descriptorLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// ParseDescriptor parses a one-line wall descriptor into a validated
// configuration. The grammar is
//
//	WxH [@PWxPH] option*
//
// where each option is one of
//
//	row-straight | row-serpentine | col-straight | col-serpentine
//	TL | TR | BL | BR
//	half
//	pattern=NAME  corner=NAME  half=true|false
//	ports=N  name="TEXT"  mm=WxH  watts=N  volts=N  pf=N
//
// Omitted settings take their defaults. Syntax errors and unknown options
// return [errs.ErrCodeInvalidDescriptor].
func ParseDescriptor(s string) (wall.Config, error) {
	ast, err := descriptorParser.ParseString("", s)
	if err != nil {
		return wall.Config{}, errs.Wrap(errs.ErrCodeInvalidDescriptor, err, "descriptor %q", s)
	}

	cfg := wall.DefaultConfig()
	if cfg.Grid.Width, cfg.Grid.Height, err = ast.Size.ints(); err != nil {
		return wall.Config{}, descriptorError(s, err)
	}
	if ast.Panel != nil {
		if cfg.Grid.PanelWidthPx, cfg.Grid.PanelHeightPx, err = ast.Panel.ints(); err != nil {
			return wall.Config{}, descriptorError(s, err)
		}
	}
	for _, opt := range ast.Options {
		if err := opt.apply(&cfg); err != nil {
			return wall.Config{}, descriptorError(s, fmt.Errorf("%s: %w", opt.Pos, err))
		}
	}
	return Finish(cfg)
}

func descriptorError(s string, err error) error {
	return errs.Wrap(errs.ErrCodeInvalidDescriptor, err, "descriptor %q", s)
}

// ints returns a pair as integers. A lone number is rejected.
func (d *dimsAST) ints() (int, int, error) {
	sa, sb := d.parts()
	if sb == nil {
		return 0, 0, fmt.Errorf("expected WxH, got %s", sa)
	}
	a, err := strconv.Atoi(sa)
	if err != nil {
		return 0, 0, fmt.Errorf("expected an integer, got %s", sa)
	}
	b, err := strconv.Atoi(*sb)
	if err != nil {
		return 0, 0, fmt.Errorf("expected an integer, got %s", *sb)
	}
	return a, b, nil
}

func (d *dimsAST) floats() (float64, float64, error) {
	sa, sb := d.parts()
	if sb == nil {
		return 0, 0, fmt.Errorf("expected WxH, got %s", sa)
	}
	a, err := strconv.ParseFloat(sa, 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseFloat(*sb, 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (d *dimsAST) float() (float64, error) {
	if _, sb := d.parts(); sb != nil {
		return 0, fmt.Errorf("expected a number, got %s", d.Raw)
	}
	return strconv.ParseFloat(d.Raw, 64)
}

func (o *optionAST) apply(cfg *wall.Config) error {
	key := strings.ToLower(o.Key)
	if o.Value == nil {
		return o.applyFlag(cfg)
	}
	v := o.Value

	switch key {
	case "name":
		if v.Word == nil {
			return fmt.Errorf("name expects text")
		}
		cfg.Name = *v.Word
	case "pattern":
		if v.Word == nil {
			return fmt.Errorf("pattern expects a name")
		}
		cfg.Pattern = wall.Pattern(*v.Word)
	case "corner":
		if v.Word == nil {
			return fmt.Errorf("corner expects a name")
		}
		cfg.Corner = wall.Corner(*v.Word)
	case "half":
		if v.Word == nil {
			return fmt.Errorf("half expects true or false")
		}
		b, err := strconv.ParseBool(*v.Word)
		if err != nil {
			return fmt.Errorf("half expects true or false, got %q", *v.Word)
		}
		cfg.Grid.HalfHeightLastRow = b
	case "ports":
		if v.Dims == nil {
			return fmt.Errorf("ports expects a pixel count")
		}
		if _, sb := v.Dims.parts(); sb != nil {
			return fmt.Errorf("ports expects a pixel count, got %s", v.Dims.Raw)
		}
		n, err := strconv.Atoi(v.Dims.Raw)
		if err != nil {
			return fmt.Errorf("ports expects an integer, got %s", v.Dims.Raw)
		}
		cfg.PixelsPerPort = n
	case "mm":
		if v.Dims == nil {
			return fmt.Errorf("mm expects WxH")
		}
		w, h, err := v.Dims.floats()
		if err != nil {
			return err
		}
		cfg.PanelWidthMm, cfg.PanelHeightMm = w, h
	case "watts", "volts", "pf":
		if v.Dims == nil {
			return fmt.Errorf("%s expects a number", key)
		}
		f, err := v.Dims.float()
		if err != nil {
			return err
		}
		switch key {
		case "watts":
			cfg.PanelWatts = f
		case "volts":
			cfg.Voltage = f
		case "pf":
			cfg.PowerFactor = f
		}
	default:
		return fmt.Errorf("unknown option %q", o.Key)
	}
	return nil
}

// applyFlag handles a bare identifier: a pattern, a corner or "half".
func (o *optionAST) applyFlag(cfg *wall.Config) error {
	if strings.EqualFold(o.Key, "half") {
		cfg.Grid.HalfHeightLastRow = true
		return nil
	}
	if p, err := wall.ParsePattern(o.Key); err == nil {
		cfg.Pattern = p
		return nil
	}
	if c, err := wall.ParseCorner(o.Key); err == nil {
		cfg.Corner = c
		return nil
	}
	return fmt.Errorf("unknown option %q", o.Key)
}

// FormatDescriptor returns the canonical descriptor of cfg. Parsing the result
// yields cfg again.
func FormatDescriptor(cfg wall.Config) string {
	g := cfg.Grid
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d @%dx%d %s %s ports=%d", g.Width, g.Height, g.PanelWidthPx, g.PanelHeightPx, cfg.Pattern, cfg.Corner, cfg.PixelsPerPort)
	if g.HalfHeightLastRow {
		b.WriteString(" half")
	}
	fmt.Fprintf(&b, " name=%s", strconv.Quote(cfg.Name))
	fmt.Fprintf(&b, " mm=%sx%s", num(cfg.PanelWidthMm), num(cfg.PanelHeightMm))
	fmt.Fprintf(&b, " watts=%s volts=%s pf=%s", num(cfg.PanelWatts), num(cfg.Voltage), num(cfg.PowerFactor))
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
