package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var ErrNoFeatures = errors.New("feature collection has no features")

// ParseFeatures decodes a GeoJSON FeatureCollection.
func ParseFeatures(data []byte) (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	return fc, nil
}

// Collection gathers the geometry of every feature, skipping features without one.
func Collection(fc *geojson.FeatureCollection) orb.Collection {
	if fc == nil {
		return nil
	}
	c := make(orb.Collection, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		c = append(c, f.Geometry)
	}
	return c
}

// Bounds returns the geographic bounding box (lon/lat) of all features.
func Bounds(fc *geojson.FeatureCollection) (orb.Bound, error) {
	c := Collection(fc)
	if len(c) == 0 {
		return orb.Bound{}, ErrNoFeatures
	}
	return c.Bound(), nil
}

// Label returns the feature property as text, or "" when it is missing.
func Label(f *geojson.Feature, key string) string {
	if f == nil || key == "" {
		return ""
	}
	v, ok := f.Properties[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
