package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/woozymasta/feddanmap/internal/config"
	"github.com/woozymasta/feddanmap/internal/interact"
	"github.com/woozymasta/feddanmap/internal/page"
	"github.com/woozymasta/feddanmap/internal/pipeline"
	"github.com/woozymasta/feddanmap/internal/raster"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
// Everything is built once and read-only afterwards.
type ServerContext struct {
	Config      *config.Config
	Scene       *pipeline.Scene
	Markers     *interact.Index
	IndexHTML   []byte
	IndexETag   string
	Preview     []byte
	PreviewType string
}

// NewServerContext renders the page and the preview for a loaded scene.
// previewFormat "" disables the preview.
func NewServerContext(cfg *config.Config, scene *pipeline.Scene, previewFormat raster.Format) (*ServerContext, error) {
	log.Info().
		Int("shapes", len(scene.Shapes)).
		Int("markers", len(scene.Markers)).
		Msg("Initializing server context")

	html, err := page.Build(scene, page.NewMinifier())
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}

	s := &ServerContext{
		Config:    cfg,
		Scene:     scene,
		Markers:   interact.NewIndex(scene.Markers),
		IndexHTML: html,
		IndexETag: pageETag(html),
	}

	if previewFormat != "" {
		img, err := raster.Render(scene, cfg.Preview)
		if err != nil {
			return nil, fmt.Errorf("render preview: %w", err)
		}

		var buf bytes.Buffer
		if err := raster.Encode(&buf, img, previewFormat); err != nil {
			return nil, fmt.Errorf("encode preview: %w", err)
		}
		s.Preview = buf.Bytes()
		s.PreviewType = previewFormat.ContentType()

		log.Debug().
			Str("format", string(previewFormat)).
			Int("bytes", len(s.Preview)).
			Msg("Preview rendered")
	}

	log.Info().
		Int("page_bytes", len(s.IndexHTML)).
		Msg("Server context initialized successfully")

	return s, nil
}

// pageETag is a strong ETag over the page bytes, so a rebuilt scene with
// the same page size still invalidates cached copies.
func pageETag(html []byte) string {
	sum := sha256.Sum256(html)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
