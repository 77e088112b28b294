// Package geo wraps the orb Mercator projection with a scale, center and translate
// and turns projected geometry into SVG path data.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Default translate of an unconfigured projection, in pixels.
var defaultTranslate = orb.Point{480, 250}

// Projection maps longitude/latitude to planar drawing coordinates.
// The zero value is not usable, start from NewMercator.
type Projection struct {
	center     orb.Point
	translate  orb.Point
	centerM    orb.Point // center in unit-sphere mercator units
	scale      float64
	configured bool
}

// NewMercator returns an unconfigured Mercator projection with scale 1.
// It is only good for measuring relative extents, Configure must be called before drawing.
func NewMercator() Projection {
	return Projection{
		scale:     1,
		translate: defaultTranslate,
	}
}

// Configure returns a copy of the projection with the given scale, center and translate applied.
func (p Projection) Configure(scale float64, center, translate orb.Point) Projection {
	p.scale = scale
	p.center = center
	p.translate = translate
	p.centerM = unitMercator(center)
	p.configured = true
	return p
}

// Configured reports whether Configure was called.
func (p Projection) Configured() bool { return p.configured }

// Scale returns the current scale factor.
func (p Projection) Scale() float64 { return p.scale }

// Center returns the geographic center.
func (p Projection) Center() orb.Point { return p.center }

// Translate returns the pixel position the center is mapped to.
func (p Projection) Translate() orb.Point { return p.translate }

// Project converts a lon/lat point. Y grows downwards.
func (p Projection) Project(pt orb.Point) orb.Point {
	m := unitMercator(pt)
	return orb.Point{
		p.translate[0] + p.scale*(m[0]-p.centerM[0]),
		p.translate[1] - p.scale*(m[1]-p.centerM[1]),
	}
}

// Invert converts a pixel position back to lon/lat.
func (p Projection) Invert(pt orb.Point) orb.Point {
	m := orb.Point{
		(pt[0]-p.translate[0])/p.scale + p.centerM[0],
		(p.translate[1]-pt[1])/p.scale + p.centerM[1],
	}
	return project.Mercator.ToWGS84(orb.Point{m[0] * orb.EarthRadius, m[1] * orb.EarthRadius})
}

func unitMercator(pt orb.Point) orb.Point {
	m := project.WGS84.ToMercator(pt)
	return orb.Point{m[0] / orb.EarthRadius, m[1] / orb.EarthRadius}
}
