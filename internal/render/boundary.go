package render

import (
	"github.com/woozymasta/feddanmap/internal/geo"

	"github.com/paulmach/orb/geojson"
)

// Shape is the drawable form of one boundary feature.
type Shape struct {
	D     string `json:"d"`
	Label string `json:"label,omitempty"`
	Index int    `json:"index"`
}

// Boundaries returns one shape per feature, in feature order. A feature with
// no geometry still gets an empty shape. labelKey names the property used as label.
func Boundaries(c Canvas, fc *geojson.FeatureCollection, labelKey string) ([]Shape, error) {
	if !c.Ready() {
		return nil, ErrProjectionNotConfigured
	}
	if fc == nil {
		return nil, nil
	}

	shapes := make([]Shape, len(fc.Features))
	for i, f := range fc.Features {
		shapes[i] = Shape{Index: i, Label: geo.Label(f, labelKey)}
		if f != nil && f.Geometry != nil {
			shapes[i].D = c.Path.D(f.Geometry)
		}
	}

	return shapes, nil
}
