package page

import (
	"strings"
	"testing"

	"github.com/woozymasta/feddanmap/internal/pipeline"
	"github.com/woozymasta/feddanmap/internal/points"
	"github.com/woozymasta/feddanmap/internal/render"
)

func testScene() *pipeline.Scene {
	return &pipeline.Scene{
		Title:  "Villages & Fields",
		Width:  900,
		Height: 600,
		Shapes: []render.Shape{
			{Index: 0, D: "M0,0L10,0L10,10Z", Label: "Giza"},
			{Index: 1, D: "M5,5L6,6"},
		},
		Markers: []render.Marker{{
			Index:       0,
			Record:      points.Record{Place: "Middle"},
			X:           450,
			Y:           300.123,
			R:           1,
			Fill:        "#FFFFFF",
			Stroke:      "#222",
			StrokeWidth: 1,
			Opacity:     0.8,
			Tooltip:     "<strong>Middle</strong><br/>feddans: 2500",
		}},
		TooltipOffsetY: 90,
	}
}

func TestBuild(t *testing.T) {
	out, err := Build(testScene(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		`<div id="map">`,
		`width="900" height="600"`,
		`<g class="features">`,
		`<path d="M0,0L10,0L10,10Z"><title>Giza</title></path>`,
		`<path d="M5,5L6,6"></path>`,
		`<circle cx="450" cy="300.12" r="1" fill="#FFFFFF" stroke="#222" stroke-width="1" opacity="0.8"`,
		`data-tooltip="&lt;strong&gt;Middle&lt;/strong&gt;&lt;br/&gt;feddans: 2500"`,
		`<div id="tooltip" class="hidden" data-offset-y="90">`,
		`<span id="city-label"></span>`,
		`<title>Villages &amp; Fields</title>`,
		`addEventListener('mouseover'`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected document to contain %q\n%s", want, doc)
		}
	}

	if got := strings.Count(doc, "<circle"); got != 1 {
		t.Fatalf("expected 1 circle, got %d", got)
	}
	if got := strings.Count(doc, "<path"); got != 2 {
		t.Fatalf("expected 2 paths, got %d", got)
	}
}

func TestBuildMinified(t *testing.T) {
	raw, err := Build(testScene(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	small, err := Build(testScene(), NewMinifier())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(small) >= len(raw) {
		t.Fatalf("expected minified output to be smaller: %d >= %d", len(small), len(raw))
	}
	for _, want := range []string{"city-label", "tooltip", "<circle", "mouseover"} {
		if !strings.Contains(string(small), want) {
			t.Fatalf("minified output lost %q", want)
		}
	}
	for _, gone := range []string{"offsetY = 90;", "\n  var tooltip"} {
		if !strings.Contains(string(raw), gone) {
			t.Fatalf("raw output should contain %q", gone)
		}
		if strings.Contains(string(small), gone) {
			t.Fatalf("script was not minified: found %q", gone)
		}
	}
}

func TestNewMinifierScriptTypes(t *testing.T) {
	m := NewMinifier()
	for _, mediatype := range []string{"text/javascript", "application/javascript", "application/x-javascript", "text/ecmascript"} {
		t.Run(mediatype, func(t *testing.T) {
			out, err := m.String(mediatype, "var a = 1;\n\nvar b = 2;\n")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Contains(out, "\n\n") || strings.Contains(out, " = ") {
				t.Fatalf("expected minified script, got %q", out)
			}
		})
	}
}

func TestFormatNum(t *testing.T) {
	for in, want := range map[float64]string{
		1:       "1",
		0.8:     "0.8",
		300.126: "300.13",
		-0.001:  "0",
		1234.5:  "1234.5",
	} {
		if got := formatNum(in); got != want {
			t.Fatalf("formatNum(%v): expected %q, got %q", in, want, got)
		}
	}
}
