package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// captureStdout redirects command output into a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("wall loaded", "panels", 144)

	line := strings.TrimSpace(buf.String())
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(line) {
		t.Errorf("line should start with an HH:MM:SS.cc timestamp: %q", line)
	}
	if !strings.Contains(line, "wall loaded") || !strings.Contains(line, "panels=144") {
		t.Errorf("line missing message or fields: %q", line)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("partition detail")
	if buf.Len() != 0 {
		t.Fatalf("debug output at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("partition detail")
	if !strings.Contains(buf.String(), "partition detail") {
		t.Error("debug output missing after switching to debug level")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		log   func(*progress)
		want  string
	}{
		{"done at info", LogInfo, func(p *progress) { p.done("Wired 24 panels onto 1 port") }, "Wired 24 panels onto 1 port ("},
		{"debug at debug", LogDebug, func(p *progress) { p.debug("Plan cache hit") }, "Plan cache hit ("},
		{"debug at info", LogInfo, func(p *progress) { p.debug("Plan cache hit") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newProgress(newLogger(&buf, tt.level)))
			out := buf.String()
			if tt.want == "" {
				if out != "" {
					t.Errorf("unexpected output %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) || !strings.HasSuffix(strings.TrimSpace(out), ")") {
				t.Errorf("output = %q, want %q followed by an elapsed time", out, tt.want)
			}
		})
	}
}

func TestProgressElapsedRounded(t *testing.T) {
	p := newProgress(log.Default())
	if d := p.elapsed(); d%time.Millisecond != 0 {
		t.Errorf("elapsed %v not rounded to milliseconds", d)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("missing logger should fall back to the default")
	}

	l := newLogger(&bytes.Buffer{}, LogInfo)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext returned a different logger")
	}
}

func TestRootCommandCarriesLogger(t *testing.T) {
	captureStdout(t)
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()

	var seen *log.Logger
	whoami := &cobra.Command{
		Use: "whoami",
		RunE: func(cmd *cobra.Command, args []string) error {
			seen = loggerFromContext(cmd.Context())
			return nil
		},
	}
	root.AddCommand(whoami)
	root.SetArgs([]string{"whoami"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if seen != c.Logger {
		t.Error("subcommands should receive the CLI logger through the context")
	}
}
