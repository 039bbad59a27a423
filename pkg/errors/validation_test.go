package errors

import (
	"strings"
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "wall.svg", false},
		{"nested file", "out/screens/wall.png", false},
		{"absolute file", "/tmp/wall.pdf", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "wall\x00.svg", true},
		{"control char", "wall\x01.svg", true},
		{"dot", ".", true},
		{"trailing slash", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateScreenName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"normal", "Screen 1", false},
		{"unicode", "Palco Principal – Área", false},
		{"too long", strings.Repeat("x", 129), true},
		{"newline", "Screen\n1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScreenName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScreenName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"#fff", false},
		{"#FFFA", false},
		{"#1c1c1c", false},
		{"#1c1c1c80", false},
		{"black", false},
		{"DarkSlateGray", false},

		{"#ff", true},
		{"#fffff", true},
		{"#ggg", true},
		{"1c1c1c", true},
		{"red ", true},
		{"rgb(0,0,0)", true},
		{`red"/><script>alert(1)</script>`, true},
		{strings.Repeat("a", 33), true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOption) {
				t.Errorf("ValidateColor(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidOption)
			}
		})
	}
}
