// Package config loads wall configurations from files and descriptors.
//
// # Files
//
// [Load] picks the decoder by extension: .toml uses BurntSushi/toml, .yaml and
// .yml use gopkg.in/yaml.v3. Both reject unknown keys so typos fail loudly.
// Missing fields keep the values of [wall.DefaultConfig]; a key set to zero
// stays zero.
//
//	name = "Main"
//	pattern = "row-serpentine"
//	corner = "TL"
//	pixels_per_port = 655360
//
//	[grid]
//	width = 16
//	height = 9
//	panel_width_px = 128
//	panel_height_px = 128
//
// # Descriptors
//
// [ParseDescriptor] reads the same configuration from a single line, handy on
// the command line and in URLs:
//
//	16x9 @128x128 row-serpentine TL ports=655360 half name="Main"
//
// [FormatDescriptor] produces the canonical descriptor of a configuration.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/ledwall/pkg/errors"
	"github.com/matzehuels/ledwall/pkg/wall"
)

// Format is a configuration file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath returns the file format implied by the extension of path.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported config file %q (use .toml, .yaml or .yml)", path)
}

// Load reads, defaults, normalizes and validates the configuration at path.
func Load(path string) (wall.Config, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return wall.Config{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return wall.Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return wall.Config{}, errs.Wrap(errs.ErrCodeInternal, err, "read config %s", path)
	}
	return Decode(data, format)
}

// Decode parses data in the given format. See [Load].
func Decode(data []byte, format Format) (wall.Config, error) {
	cfg := wall.DefaultConfig()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return wall.Config{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return wall.Config{}, errs.New(errs.ErrCodeInvalidFormat, "toml: unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF; treat it as all defaults.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return wall.Config{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "yaml")
		}
	default:
		return wall.Config{}, errs.New(errs.ErrCodeInvalidFormat, "unknown config format %q", format)
	}
	return Finish(cfg)
}

// Finish canonicalizes the pattern and corner spellings and validates cfg.
// Every loader ends with it.
func Finish(cfg wall.Config) (wall.Config, error) {
	p, err := wall.ParsePattern(string(cfg.Pattern))
	if err != nil {
		return wall.Config{}, errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "pattern")
	}
	cfg.Pattern = p

	c, err := wall.ParseCorner(string(cfg.Corner))
	if err != nil {
		return wall.Config{}, errs.Wrap(errs.ErrCodeInvalidConfiguration, err, "corner")
	}
	cfg.Corner = c

	if err := cfg.Validate(); err != nil {
		return wall.Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg in the given format.
func Encode(cfg wall.Config, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "toml")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "yaml")
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown config format %q", format)
	}
	return buf.Bytes(), nil
}
