package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ledwall/pkg/config"
	errs "github.com/matzehuels/ledwall/pkg/errors"
	"github.com/matzehuels/ledwall/pkg/wall"
)

var errConflictingInput = errs.New(errs.ErrCodeInvalidConfiguration, "give either a config file or --descriptor, not both")

// wallFlags selects the wall a command works on: a config file argument, a
// descriptor, or the built-in default wall.
type wallFlags struct {
	descriptor string
	name       string
}

func (f *wallFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.descriptor, "descriptor", "d", "", `wall descriptor, e.g. "16x9 @128x128 row-serpentine TL"`)
	cmd.Flags().StringVar(&f.name, "name", "", "override the screen name")
	cmd.ValidArgsFunction = completeWallFile
}

// load resolves the wall configuration. args holds at most one config path.
func (f *wallFlags) load(args []string) (wall.Config, string, error) {
	var (
		cfg    wall.Config
		source string
		err    error
	)
	switch {
	case len(args) > 0 && f.descriptor != "":
		return wall.Config{}, "", errConflictingInput
	case len(args) > 0:
		source = args[0]
		cfg, err = config.Load(source)
	case f.descriptor != "":
		source = "descriptor"
		cfg, err = config.ParseDescriptor(f.descriptor)
	default:
		source = "defaults"
		cfg = wall.DefaultConfig()
	}
	if err != nil {
		return wall.Config{}, "", err
	}
	if f.name != "" {
		cfg.Name = f.name
		if cfg, err = config.Finish(cfg); err != nil {
			return wall.Config{}, "", err
		}
	}
	return cfg, source, nil
}
