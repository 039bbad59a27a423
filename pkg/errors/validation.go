package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// colorPattern accepts #rgb, #rgba, #rrggbb, #rrggbbaa and plain colour
// keywords such as "black".
var colorPattern = regexp.MustCompile(`^(#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|[a-zA-Z]{1,32})$`)

// ValidateOutputPath validates a path the CLI is about to write an artifact to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not be a directory reference ("." or trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if path == "." || strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}

// ValidateScreenName validates a screen name used in artifact file names and
// sheet titles.
func ValidateScreenName(name string) error {
	if len(name) > 128 {
		return New(ErrCodeInvalidConfiguration, "screen name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfiguration, "screen name contains invalid control characters")
		}
	}
	return nil
}

// ValidateColor validates a colour written into rendered SVG attributes.
// An empty string is accepted and means the default colour.
func ValidateColor(color string) error {
	if color == "" || colorPattern.MatchString(color) {
		return nil
	}
	const maxShown = 32
	if len(color) > maxShown {
		color = color[:maxShown] + "..."
	}
	return New(ErrCodeInvalidOption, "invalid colour %q (want #rgb, #rrggbb, #rrggbbaa or a colour name)", color)
}
