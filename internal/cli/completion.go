package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ledwall/pkg/pipeline"
	"github.com/matzehuels/ledwall/pkg/render/preview"
)

// wallFileExts are the config file extensions offered for the wall argument.
var wallFileExts = []string{"toml", "yaml", "yml"}

// cacheURLHints are offered for --cache-url.
var cacheURLHints = []string{"file", "none", "redis://", "rediss://", "mongodb://"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for ledwall.

Completions cover subcommands, wall config files (.toml, .yaml, .yml),
--view, --format, --layers and --cache-url values.

  bash        source <(ledwall completion bash)
  zsh         ledwall completion zsh > "${fpath[1]}/_ledwall"
  fish        ledwall completion fish > ~/.config/fish/completions/ledwall.fish
  powershell  ledwall completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}

	return cmd
}

// completeWallFile completes the optional config file argument.
func completeWallFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return wallFileExts, cobra.ShellCompDirectiveFilterFileExt
}

// completeFrom returns a completion function offering values that start with
// the typed prefix. For comma-separated flags only the last element is
// completed.
func completeFrom(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		head, last := "", toComplete
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			head, last = toComplete[:i+1], toComplete[i+1:]
		}
		var out []string
		for _, v := range values {
			if strings.HasPrefix(v, strings.ToLower(last)) {
				out = append(out, head+v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// registerRenderCompletions wires value completion for the render flags.
func registerRenderCompletions(cmd *cobra.Command) {
	layers := append(slices.Clone(preview.Layers), pipeline.LayerDetailed)
	_ = cmd.RegisterFlagCompletionFunc("view", completeFrom(sortedKeys(pipeline.ValidViews)...))
	_ = cmd.RegisterFlagCompletionFunc("format", completeFrom(sortedKeys(pipeline.ValidFormats)...))
	_ = cmd.RegisterFlagCompletionFunc("layers", completeFrom(layers...))
}

// registerCacheURLCompletion wires --cache-url completion.
func registerCacheURLCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("cache-url", completeFrom(cacheURLHints...))
}
