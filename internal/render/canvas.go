// Package render binds boundary features and village records to drawable shapes.
package render

import (
	"errors"

	"github.com/woozymasta/feddanmap/internal/fit"
	"github.com/woozymasta/feddanmap/internal/geo"

	"github.com/paulmach/orb/geojson"
)

var ErrProjectionNotConfigured = errors.New("render: projection is not configured")

// Canvas is a drawing surface with its projection and path generator.
type Canvas struct {
	Path       geo.Path
	Projection geo.Projection
	Width      float64
	Height     float64
}

// NewCanvas returns a canvas with an unconfigured Mercator projection.
func NewCanvas(width, height float64) Canvas {
	p := geo.NewMercator()
	return Canvas{
		Width:      width,
		Height:     height,
		Projection: p,
		Path:       geo.NewPath(p),
	}
}

// Fit measures fc with the canvas path generator and returns a canvas whose
// projection is configured for fc.
func (c Canvas) Fit(fc *geojson.FeatureCollection) (fit.Result, Canvas, error) {
	res, err := fit.CalculateScaleCenter(fc, c.Path, c.Width, c.Height)
	if err != nil {
		return fit.Result{}, c, err
	}

	c.Projection = res.Apply(c.Projection, c.Width, c.Height)
	c.Path = geo.NewPath(c.Projection)
	return res, c, nil
}

// Ready reports whether shapes can be projected onto the canvas.
func (c Canvas) Ready() bool {
	return c.Projection.Configured() && c.Path.Projection.Configured()
}
