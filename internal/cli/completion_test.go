package cli

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteWallFile(t *testing.T) {
	exts, dir := completeWallFile(nil, nil, "")
	if dir != cobra.ShellCompDirectiveFilterFileExt || !slices.Equal(exts, []string{"toml", "yaml", "yml"}) {
		t.Errorf("first argument = %v %v, want config extensions", exts, dir)
	}
	if got, dir := completeWallFile(nil, []string{"main.toml"}, ""); got != nil || dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument = %v %v, want none", got, dir)
	}
}

func TestCompleteFrom(t *testing.T) {
	complete := completeFrom("labels", "wiring", "scale", "badge", "specs")
	tests := []struct {
		typed string
		want  []string
	}{
		{"", []string{"labels", "wiring", "scale", "badge", "specs"}},
		{"s", []string{"scale", "specs"}},
		{"W", []string{"wiring"}},
		{"wiring,l", []string{"wiring,labels"}},
		{"x", nil},
	}
	for _, tt := range tests {
		got, _ := complete(nil, nil, tt.typed)
		if !slices.Equal(got, tt.want) {
			t.Errorf("complete(%q) = %v, want %v", tt.typed, got, tt.want)
		}
	}
}

func TestRenderFlagCompletions(t *testing.T) {
	cmd := New(&bytes.Buffer{}, LogInfo).renderCommand()
	tests := map[string]string{
		"view":   "techsheet",
		"format": "pdf",
		"layers": "detailed",
	}
	for flag, want := range tests {
		fn, ok := cmd.GetFlagCompletionFunc(flag)
		if !ok {
			t.Errorf("--%s has no completion", flag)
			continue
		}
		got, _ := fn(cmd, nil, "")
		if !slices.Contains(got, want) {
			t.Errorf("--%s completions %v missing %q", flag, got, want)
		}
	}
	if cmd.ValidArgsFunction == nil {
		t.Error("render should complete config files")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("%s script does not mention %s", shell, appName)
			}
		})
	}
}
