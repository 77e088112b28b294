// Package pipeline loads the boundary and village data and turns them into a scene.
//
// Loading happens in two steps. LoadBoundaries reads the GeoJSON, fits the
// projection and draws the boundary shapes. Markers can only be produced from
// its result, so villages are never projected before the fit is applied.
package pipeline

import (
	"context"
	"fmt"

	"github.com/woozymasta/feddanmap/internal/config"
	"github.com/woozymasta/feddanmap/internal/fit"
	"github.com/woozymasta/feddanmap/internal/geo"
	"github.com/woozymasta/feddanmap/internal/points"
	"github.com/woozymasta/feddanmap/internal/render"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// Loader fetches the raw bytes of a data source.
type Loader interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Boundaries is the outcome of the first step: a canvas fitted to the features.
type Boundaries struct {
	Features *geojson.FeatureCollection
	Shapes   []render.Shape
	Canvas   render.Canvas
	Fit      fit.Result
}

// Scene is everything needed to draw the map.
type Scene struct {
	Title          string                     `json:"title,omitempty"`
	Shapes         []render.Shape             `json:"shapes"`
	Markers        []render.Marker            `json:"markers"`
	Skipped        []points.Skipped           `json:"skipped,omitempty"`
	Features       *geojson.FeatureCollection `json:"-"`
	Canvas         render.Canvas              `json:"-"`
	Fit            fit.Result                 `json:"fit"`
	Width          float64                    `json:"width"`
	Height         float64                    `json:"height"`
	TooltipOffsetY float64                    `json:"tooltip_offset_y"`
}

// Run performs both steps in order.
func Run(ctx context.Context, src Loader, cfg *config.Config) (*Scene, error) {
	b, err := LoadBoundaries(ctx, src, cfg)
	if err != nil {
		return nil, err
	}
	return b.LoadPoints(ctx, src, cfg)
}

// LoadBoundaries reads cfg.Boundaries, fits the canvas and draws one shape per feature.
func LoadBoundaries(ctx context.Context, src Loader, cfg *config.Config) (*Boundaries, error) {
	data, err := src.Fetch(ctx, cfg.Boundaries)
	if err != nil {
		return nil, fmt.Errorf("load boundaries: %w", err)
	}

	fc, err := geo.ParseFeatures(data)
	if err != nil {
		return nil, fmt.Errorf("load boundaries: %w", err)
	}

	res, canvas, err := render.NewCanvas(cfg.Width, cfg.Height).Fit(fc)
	if err != nil {
		return nil, fmt.Errorf("fit boundaries: %w", err)
	}

	shapes, err := render.Boundaries(canvas, fc, cfg.LabelProperty)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", cfg.Boundaries).
		Int("features", len(fc.Features)).
		Float64("scale", res.Scale).
		Floats64("center", res.Center[:]).
		Msg("Boundaries loaded")

	return &Boundaries{
		Features: fc,
		Shapes:   shapes,
		Canvas:   canvas,
		Fit:      res,
	}, nil
}

// LoadPoints reads cfg.Points and projects the villages onto the fitted canvas.
func (b *Boundaries) LoadPoints(ctx context.Context, src Loader, cfg *config.Config) (*Scene, error) {
	data, err := src.Fetch(ctx, cfg.Points)
	if err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}

	parsed, err := points.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}

	markers, err := render.Markers(b.Canvas, parsed.Records, render.StyleFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", cfg.Points).
		Int("markers", len(markers)).
		Int("skipped", len(parsed.Skipped)).
		Msg("Points loaded")

	return &Scene{
		Title:          cfg.Title,
		Shapes:         b.Shapes,
		Markers:        markers,
		Skipped:        parsed.Skipped,
		Features:       b.Features,
		Canvas:         b.Canvas,
		Fit:            b.Fit,
		Width:          cfg.Width,
		Height:         cfg.Height,
		TooltipOffsetY: cfg.Tooltip.OffsetY,
	}, nil
}
