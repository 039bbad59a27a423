package wall

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/matzehuels/ledwall/pkg/errors"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidateGridLimits(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"empty", 0, 0, false},
		{"at limit", 1024, MaxPanels / 1024, false},
		{"single row at limit", MaxPanels, 1, false},
		{"one over", 1024, MaxPanels/1024 + 1, true},
		{"wide", MaxPanels + 1, 1, true},
		{"tall", 1, MaxPanels + 1, true},
		{"product overflows int64", 3037000500, 3037000500, true},
		{"ten million square", 10_000_000, 10_000_000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Grid.Width, cfg.Grid.Height = tt.width, tt.height
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfiguration), "err = %v", err)
		})
	}
}

func TestValidatePanelResolutionLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.PanelWidthPx = MaxPanelPx
	assert.NoError(t, cfg.Validate())

	cfg.Grid.PanelWidthPx = MaxPanelPx + 1
	assert.True(t, errs.Is(cfg.Validate(), errs.ErrCodeInvalidConfiguration))
}
