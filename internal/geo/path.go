package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// DefaultPointRadius is the radius used to draw Point geometries.
const DefaultPointRadius = 4.5

// Path renders geometries as SVG path data under a projection.
type Path struct {
	Projection  Projection
	PointRadius float64
}

// NewPath returns a path generator bound to the projection.
func NewPath(p Projection) Path {
	return Path{Projection: p, PointRadius: DefaultPointRadius}
}

// Bounds returns the pixel-space bounding box of the geometry as currently projected.
// A nil geometry yields an empty bound at the origin.
func (g Path) Bounds(geom orb.Geometry) orb.Bound {
	if geom == nil {
		return orb.Bound{}
	}
	return project.Geometry(orb.Clone(geom), g.Projection.Project).Bound()
}

// D returns the value of the SVG "d" attribute for the geometry.
func (g Path) D(geom orb.Geometry) string {
	var sb strings.Builder
	g.write(&sb, geom)
	return sb.String()
}

func (g Path) write(sb *strings.Builder, geom orb.Geometry) {
	switch v := geom.(type) {
	case orb.Point:
		g.point(sb, v)
	case orb.MultiPoint:
		for _, p := range v {
			g.point(sb, p)
		}
	case orb.LineString:
		g.line(sb, v, false)
	case orb.MultiLineString:
		for _, ls := range v {
			g.line(sb, ls, false)
		}
	case orb.Ring:
		g.line(sb, v, true)
	case orb.Polygon:
		for _, r := range v {
			g.line(sb, r, true)
		}
	case orb.MultiPolygon:
		for _, poly := range v {
			for _, r := range poly {
				g.line(sb, r, true)
			}
		}
	case orb.Bound:
		g.write(sb, v.ToPolygon())
	case orb.Collection:
		for _, c := range v {
			g.write(sb, c)
		}
	}
}

func (g Path) line(sb *strings.Builder, pts []orb.Point, closed bool) {
	if len(pts) == 0 {
		return
	}
	for i, p := range pts {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteByte('L')
		}
		writeXY(sb, g.Projection.Project(p))
	}
	if closed {
		sb.WriteByte('Z')
	}
}

// point draws a circle as two arcs.
func (g Path) point(sb *strings.Builder, p orb.Point) {
	c := g.Projection.Project(p)
	r := num(g.PointRadius)
	d := num(2 * g.PointRadius)

	sb.WriteByte('M')
	writeXY(sb, c)
	sb.WriteString("m0," + r)
	sb.WriteString("a" + r + "," + r + " 0 1,1 0,-" + d)
	sb.WriteString("a" + r + "," + r + " 0 1,1 0," + d)
	sb.WriteByte('Z')
}

func writeXY(sb *strings.Builder, p orb.Point) {
	sb.WriteString(num(p[0]))
	sb.WriteByte(',')
	sb.WriteString(num(p[1]))
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
