// Package fit computes the projection scale and center that make a feature
// collection fill a drawing surface.
package fit

import (
	"errors"
	"math"

	"github.com/woozymasta/feddanmap/internal/geo"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Padding is the share of the canvas the fitted features occupy along the tighter axis.
const Padding = 0.95

var (
	ErrEmptyCollection  = errors.New("fit: empty feature collection")
	ErrDegenerateExtent = errors.New("fit: features have zero extent")
	ErrInvalidCanvas    = errors.New("fit: canvas width and height must be positive")
)

// Bounder returns the pixel-space bounds of a geometry under some projection.
// geo.Path implements it.
type Bounder interface {
	Bounds(orb.Geometry) orb.Bound
}

// Result is the fitted scale factor and geographic center.
type Result struct {
	Center orb.Point `json:"center"`
	Scale  float64   `json:"scale"`
}

// CalculateScaleCenter measures the features with the given path generator,
// which only needs to preserve relative extents, and returns the scale that fits
// them into width x height with a 5% margin and the center of their lon/lat box.
func CalculateScaleCenter(fc *geojson.FeatureCollection, path Bounder, width, height float64) (Result, error) {
	if width <= 0 || height <= 0 || math.IsNaN(width) || math.IsNaN(height) {
		return Result{}, ErrInvalidCanvas
	}

	all := geo.Collection(fc)
	if len(all) == 0 {
		return Result{}, ErrEmptyCollection
	}

	px := path.Bounds(all)
	return Compute(px, all.Bound(), width, height)
}

// Compute derives the result from already measured boxes: px in pixels, geoBox in lon/lat.
func Compute(px, geoBox orb.Bound, width, height float64) (Result, error) {
	if width <= 0 || height <= 0 {
		return Result{}, ErrInvalidCanvas
	}

	dx := (px.Max[0] - px.Min[0]) / width
	dy := (px.Max[1] - px.Min[1]) / height
	ratio := math.Max(dx, dy)
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return Result{}, ErrDegenerateExtent
	}

	res := Result{
		Scale: Padding / ratio,
		Center: orb.Point{
			(geoBox.Min[0] + geoBox.Max[0]) / 2,
			(geoBox.Min[1] + geoBox.Max[1]) / 2,
		},
	}
	if math.IsNaN(res.Center[0]) || math.IsNaN(res.Center[1]) || math.IsInf(res.Scale, 0) {
		return Result{}, ErrDegenerateExtent
	}

	return res, nil
}

// Apply configures the projection with the result, centered on the canvas.
func (r Result) Apply(p geo.Projection, width, height float64) geo.Projection {
	return p.Configure(r.Scale, r.Center, orb.Point{width / 2, height / 2})
}
