package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnWiringStart(ctx, 144)
	h.OnWiringComplete(ctx, 8, 3*time.Millisecond, nil)
	h.OnRenderComplete(ctx, "preview", []string{"svg"}, time.Millisecond, errors.New("rsvg-convert not found"))
	h.OnCacheSet(ctx, KeyArtifact, 2048)
	h.OnResponse(ctx, "POST", "/v1/plan", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"hook", "wiring start", "panels=144",
		"wiring done", "ports=8",
		"render failed", "rsvg-convert not found",
		"cache set", "kind=artifact", "bytes=2048",
		"request done", "status=200",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksSilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheHit(context.Background(), KeyPlan)
	if buf.Len() != 0 {
		t.Errorf("hooks should log at debug level only, got %q", buf.String())
	}
}

func TestUseLogger(t *testing.T) {
	Reset()
	defer Reset()

	UseLogger(log.New(&bytes.Buffer{}))
	if _, ok := Pipeline().(*LogHooks); !ok {
		t.Errorf("Pipeline() = %T, want *LogHooks", Pipeline())
	}
	if _, ok := Cache().(*LogHooks); !ok {
		t.Errorf("Cache() = %T, want *LogHooks", Cache())
	}
	if _, ok := HTTP().(*LogHooks); !ok {
		t.Errorf("HTTP() = %T, want *LogHooks", HTTP())
	}
}
