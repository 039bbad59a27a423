package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/ports"
	"github.com/matzehuels/ledwall/pkg/wall/traversal"
)

var grid = wall.Grid{Width: 3, Height: 2, PanelWidthPx: 100, PanelHeightPx: 80, HalfHeightLastRow: true}

func TestPanelGeometry(t *testing.T) {
	x, y, w, h := PanelRect(grid, 2, 1)
	if x != 200 || y != 80 || w != 100 || h != 40 {
		t.Errorf("PanelRect(2,1) = %v %v %v %v", x, y, w, h)
	}
	cx, cy := PanelCenter(grid, wall.PanelVisit{Col: 1, Row: 0})
	if cx != 150 || cy != 40 {
		t.Errorf("PanelCenter(1,0) = %v %v", cx, cy)
	}
	cx, cy = PanelCenter(grid, wall.PanelVisit{Col: 0, Row: 1})
	if cx != 50 || cy != 100 {
		t.Errorf("PanelCenter(0,1) on half row = %v %v", cx, cy)
	}
}

func TestCanvasSize(t *testing.T) {
	if w, h := CanvasSize(grid); w != 300 || h != 120 {
		t.Errorf("CanvasSize = %dx%d, want 300x120", w, h)
	}
	if w, h := CanvasSize(wall.Grid{}); w != 10 || h != 10 {
		t.Errorf("CanvasSize(empty) = %dx%d, want 10x10", w, h)
	}
}

func TestFrame(t *testing.T) {
	f := Frame{X: 10, Y: 20, Scale: 0.5}
	if x, y := f.Pt(100, 40); x != 60 || y != 40 {
		t.Errorf("Pt = %v %v", x, y)
	}
	if l := f.Len(30); l != 15 {
		t.Errorf("Len = %v", l)
	}
}

func TestCheckerboard(t *testing.T) {
	var buf bytes.Buffer
	Checkerboard(&buf, grid, Identity, "#111111", "#eeeeee")
	out := buf.String()
	if got := strings.Count(out, "<rect"); got != 6 {
		t.Errorf("rect count = %d, want 6", got)
	}
	if strings.Count(out, "#111111") != 3 || strings.Count(out, "#eeeeee") != 3 {
		t.Error("checkerboard colours should alternate")
	}
}

func TestCheckerboardEscapesColours(t *testing.T) {
	var buf bytes.Buffer
	Checkerboard(&buf, grid, Identity, `red"/><script>x</script>`, "#eeeeee")
	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Fatalf("colour leaked raw markup:\n%s", out)
	}
	if !strings.Contains(out, `fill="red&#34;/&gt;&lt;script&gt;x&lt;/script&gt;"`) {
		t.Errorf("colour should be attribute-escaped:\n%s", out)
	}
}

func TestLabels(t *testing.T) {
	visits := traversal.Generate(grid, wall.PatternRowSerpentine, wall.CornerTL)
	var buf bytes.Buffer
	Labels(&buf, grid, visits, Identity)
	out := buf.String()
	for _, want := range []string{">1</text>", ">6</text>"} {
		if !strings.Contains(out, want) {
			t.Errorf("labels missing %s", want)
		}
	}
	// Label 4 sits on the last panel of the serpentine second row, (2,1).
	if !strings.Contains(out, `x="250.00" y="100.00" font-size="18.00">4</text>`) {
		t.Errorf("label 4 misplaced:\n%s", out)
	}
}

func TestWiringGlyphs(t *testing.T) {
	visits := traversal.Generate(grid, wall.PatternRowSerpentine, wall.CornerTL)
	ps, err := ports.Partition(visits, 3*100*80)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	Wiring(&buf, grid, ps, Identity)
	out := buf.String()

	if got := strings.Count(out, `class="port"`); got != len(ps) {
		t.Errorf("port groups = %d, want %d", got, len(ps))
	}
	if got := strings.Count(out, "<line"); got != len(ports.AllLinks(ps)) {
		t.Errorf("lines = %d, want %d", got, len(ports.AllLinks(ps)))
	}
	if !strings.Contains(out, ports.Color(0)) || !strings.Contains(out, ports.Color(1)) {
		t.Error("ports should use their palette colours")
	}
	// Second port starts at (2,1) heading left.
	if !strings.Contains(out, "rotate(180.0)") {
		t.Error("start triangle of the serpentine second row should point left")
	}
}

func TestWiringEmpty(t *testing.T) {
	var buf bytes.Buffer
	Wiring(&buf, grid, nil, Identity)
	if buf.Len() != 0 {
		t.Errorf("no ports should draw nothing, got %q", buf.String())
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`<A & "B">`); got != "&lt;A &amp; &#34;B&#34;&gt;" {
		t.Errorf("EscapeXML = %q", got)
	}
}
