// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/feddanmap/internal/interact"
	"github.com/woozymasta/feddanmap/internal/render"
	"github.com/woozymasta/feddanmap/internal/source"
	"github.com/woozymasta/feddanmap/internal/tooltip"

	"github.com/rs/zerolog/log"
)

const etagCap = 64

// HitResponse is the answer of the hit API.
type HitResponse struct {
	Marker  render.Marker `json:"marker"`
	Tooltip tooltip.State `json:"tooltip"`
}

// Routes registers all handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/scene", s.HandleScene)
	mux.HandleFunc("/api/hit", s.HandleHit)
	mux.HandleFunc("/preview", s.HandlePreview)
	mux.HandleFunc("/data/", s.HandleData)
	mux.HandleFunc("/", s.HandleIndex)
	return mux
}

// HandleScene serves the scene as JSON.
func (s *ServerContext) HandleScene(w http.ResponseWriter, r *http.Request) {
	data, err := json.Marshal(s.Scene)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode scene")
		http.Error(w, "scene cannot be encoded", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// HandleHit reports the marker under canvas position x,y and the tooltip a
// pointer entering it at pageX,pageY would show. Page coordinates default to x,y.
func (s *ServerContext) HandleHit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		http.Error(w, "x and y must be numbers", http.StatusBadRequest)
		return
	}

	pageX, pageY := x, y
	if v := q.Get("page_x"); v != "" {
		var err error
		if pageX, err = strconv.ParseFloat(v, 64); err != nil {
			http.Error(w, "page_x must be a number", http.StatusBadRequest)
			return
		}
	}
	if v := q.Get("page_y"); v != "" {
		var err error
		if pageY, err = strconv.ParseFloat(v, 64); err != nil {
			http.Error(w, "page_y must be a number", http.StatusBadRequest)
			return
		}
	}

	var tip tooltip.Controller
	session := interact.NewSession(&tip, s.Markers, s.Scene.TooltipOffsetY)
	session.Move(x, y, pageX, pageY)

	i, ok := session.Hovered()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(HitResponse{
		Marker:  s.Scene.Markers[i],
		Tooltip: session.Tooltip(),
	})
}

// HandlePreview serves the raster snapshot.
func (s *ServerContext) HandlePreview(w http.ResponseWriter, r *http.Request) {
	if len(s.Preview) == 0 {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", s.PreviewType)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.Preview)
}

// HandleIndex serves the rendered map page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	if r.Header.Get("If-None-Match") == s.IndexETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", s.IndexETag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleData serves the local source files the scene was built from.
// Path: /data/map.geojson or /data/villages.csv
func (s *ServerContext) HandleData(w http.ResponseWriter, r *http.Request) {
	var path, contentType string
	switch strings.TrimPrefix(r.URL.Path, "/data/") {
	case "map.geojson":
		path, contentType = s.Config.Boundaries, "application/geo+json"
	case "villages.csv":
		path, contentType = s.Config.Points, "text/csv; charset=utf-8"
	default:
		http.NotFound(w, r)
		return
	}

	if source.IsRemote(path) {
		http.Redirect(w, r, path, http.StatusFound)
		return
	}

	if !s.serveFile(w, r, path, contentType) {
		http.NotFound(w, r)
	}
}

// serveFile serves a local source file with a size/mtime ETag.
// A missing path or a directory reports false and writes nothing.
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}
