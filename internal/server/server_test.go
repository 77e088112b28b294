package server

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/woozymasta/feddanmap/internal/config"
	"github.com/woozymasta/feddanmap/internal/pipeline"
	"github.com/woozymasta/feddanmap/internal/raster"
	"github.com/woozymasta/feddanmap/internal/render"
	"github.com/woozymasta/feddanmap/internal/source"
)

const boundariesJSON = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{},
  "geometry":{"type":"Polygon","coordinates":[[[30,29],[32,29],[32,31],[30,31],[30,29]]]}}]}`

const villagesCSV = "lon,lat,feddans,place\n31,30,250000,Middle\n"

func newTestServer(t *testing.T) *ServerContext {
	t.Helper()
	return newTestServerCSV(t, villagesCSV)
}

func newTestServerCSV(t *testing.T, csv string) *ServerContext {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Boundaries = filepath.Join(dir, "map.geojson")
	cfg.Points = filepath.Join(dir, "villages.csv")
	if err := os.WriteFile(cfg.Boundaries, []byte(boundariesJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(cfg.Points, []byte(csv), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	scene, err := pipeline.Run(context.Background(), source.NewFetcher(time.Second), cfg)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	s, err := NewServerContext(cfg, scene, raster.FormatPNG)
	if err != nil {
		t.Fatalf("server context: %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, target string, header ...string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

func TestHandleIndex(t *testing.T) {
	h := RequestLogger(newTestServer(t).Routes())

	resp := get(t, h, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "city-label") {
		t.Fatalf("page lacks tooltip label")
	}

	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("expected etag")
	}
	if resp := get(t, h, "/", "If-None-Match", etag); resp.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", resp.StatusCode)
	}
	if resp := get(t, h, "/favicon.ico"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleScene(t *testing.T) {
	resp := get(t, newTestServer(t).Routes(), "/api/scene")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var scene struct {
		Fit struct {
			Center [2]float64 `json:"center"`
			Scale  float64    `json:"scale"`
		} `json:"fit"`
		Markers []json.RawMessage `json:"markers"`
		Width   float64           `json:"width"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&scene); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if scene.Width != 900 || len(scene.Markers) != 1 || scene.Fit.Center != [2]float64{31, 30} || scene.Fit.Scale <= 1 {
		t.Fatalf("unexpected scene %+v", scene)
	}
}

func TestHandleSceneSkipsOutOfRangeRows(t *testing.T) {
	s := newTestServerCSV(t, villagesCSV+"31,95,2500,Typo\n")
	if len(s.Scene.Markers) != 1 || len(s.Scene.Skipped) != 1 {
		t.Fatalf("expected 1 marker and 1 skipped row, got %d and %+v", len(s.Scene.Markers), s.Scene.Skipped)
	}

	resp := get(t, s.Routes(), "/api/scene")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var scene map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&scene); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHandleSceneEncodeError(t *testing.T) {
	s := &ServerContext{Scene: &pipeline.Scene{
		Markers: []render.Marker{{X: 1, Y: math.NaN()}},
	}}

	resp := get(t, http.HandlerFunc(s.HandleScene), "/api/scene")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestPageETag(t *testing.T) {
	a := pageETag([]byte("<p>one</p>"))
	b := pageETag([]byte("<p>two</p>"))
	if a == b {
		t.Fatalf("expected different etags for same-size pages, got %s", a)
	}
	if a != pageETag([]byte("<p>one</p>")) {
		t.Fatalf("expected stable etag")
	}
	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) || len(a) != 34 {
		t.Fatalf("unexpected etag format %s", a)
	}
}

func TestHandleHit(t *testing.T) {
	h := newTestServer(t).Routes()

	resp := get(t, h, "/api/hit?x=451&y=300&page_x=500&page_y=400")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var hit HitResponse
	if err := json.NewDecoder(resp.Body).Decode(&hit); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hit.Marker.Record.Place != "Middle" {
		t.Fatalf("unexpected marker %+v", hit.Marker)
	}
	if !hit.Tooltip.Visible || hit.Tooltip.Position[0] != 500 || hit.Tooltip.Position[1] != 310 {
		t.Fatalf("unexpected tooltip %+v", hit.Tooltip)
	}
	if hit.Tooltip.Content != "<strong>Middle</strong><br/>feddans: 250000" {
		t.Fatalf("unexpected content %q", hit.Tooltip.Content)
	}

	if resp := get(t, h, "/api/hit?x=10&y=10"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for empty spot, got %d", resp.StatusCode)
	}
	if resp := get(t, h, "/api/hit?x=a&y=10"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if resp := get(t, h, "/api/hit?x=1&y=1&page_y=z"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandlePreview(t *testing.T) {
	resp := get(t, newTestServer(t).Routes(), "/preview")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}

	empty := &ServerContext{}
	if resp := get(t, http.HandlerFunc(empty.HandlePreview), "/preview"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 without preview, got %d", resp.StatusCode)
	}
}

func TestHandleData(t *testing.T) {
	h := newTestServer(t).Routes()

	resp := get(t, h, "/data/villages.csv")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != villagesCSV {
		t.Fatalf("unexpected body %q", body)
	}

	if resp := get(t, h, "/data/map.geojson"); resp.Header.Get("Content-Type") != "application/geo+json" {
		t.Fatalf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}
	if resp := get(t, h, "/data/other.txt"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
