package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	errs "github.com/matzehuels/ledwall/pkg/errors"
	"github.com/matzehuels/ledwall/pkg/wall"
	"github.com/matzehuels/ledwall/pkg/wall/plan"
)

func buildPlan(t *testing.T) *plan.Plan {
	t.Helper()
	cfg := wall.DefaultConfig()
	cfg.Name = "Main"
	cfg.Grid.Width, cfg.Grid.Height = 5, 3
	cfg.Grid.HalfHeightLastRow = true
	cfg.PixelsPerPort = 4 * 128 * 128
	p, err := plan.Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p
}

func TestRoundTrip(t *testing.T) {
	want := buildPlan(t)

	var buf bytes.Buffer
	if err := WriteJSON(want, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestExportImportFile(t *testing.T) {
	want := buildPlan(t)
	path := filepath.Join(t.TempDir(), "wall.json")

	if err := ExportJSON(want, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.Metrics != want.Metrics {
		t.Errorf("metrics = %+v, want %+v", got.Metrics, want.Metrics)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestEmptyGridRoundTrip(t *testing.T) {
	cfg := wall.DefaultConfig()
	cfg.Grid.Width = 0
	cfg.Grid.Height = 0
	p := &plan.Plan{Config: cfg}

	var buf bytes.Buffer
	if err := WriteJSON(p, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"ports": []`) {
		t.Errorf("empty plan should encode an empty port list:\n%s", buf.String())
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got.Ports) != 0 || len(got.Visits) != 0 {
		t.Errorf("empty plan decoded with %d ports, %d visits", len(got.Ports), len(got.Visits))
	}
}

func TestReadJSONRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*document)
		want   string
	}{
		{"version", func(d *document) { d.Version = 99 }, "version"},
		{"config", func(d *document) { d.Config.PixelsPerPort = 0 }, "plan config"},
		{"index", func(d *document) { d.Ports[1].Index = 7 }, "index"},
		{"empty port", func(d *document) { d.Ports[0].Panels = nil }, "no panels"},
		{"total", func(d *document) { d.Ports[0].TotalPixels++ }, "total_pixels"},
		{"outside", func(d *document) { d.Ports[0].Panels[0].Col = 40 }, "outside"},
		{"duplicate", func(d *document) {
			d.Ports[0].Panels[1] = d.Ports[0].Panels[0]
			d.Ports[0].TotalPixels = 2 * d.Ports[0].Panels[0].Pixels
			for _, v := range d.Ports[0].Panels[2:] {
				d.Ports[0].TotalPixels += v.Pixels
			}
		}, "twice"},
		{"missing", func(d *document) { d.Ports = d.Ports[:1] }, "panels wired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := buildPlan(t)
			var buf bytes.Buffer
			if err := WriteJSON(p, &buf); err != nil {
				t.Fatal(err)
			}
			var doc document
			if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
				t.Fatal(err)
			}
			tt.mutate(&doc)
			data, _ := json.Marshal(doc)

			_, err := ReadJSON(bytes.NewReader(data))
			if !errs.Is(err, errs.ErrCodeInvalidFormat) {
				t.Fatalf("err = %v, want INVALID_FORMAT", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestReadJSONMalformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{not json"))
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}
