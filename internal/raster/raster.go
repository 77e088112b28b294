// Package raster draws a scene into an image for previews.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/woozymasta/feddanmap/internal/config"
	"github.com/woozymasta/feddanmap/internal/pipeline"
	"github.com/woozymasta/feddanmap/internal/render"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
	"golang.org/x/image/vector"
)

// circleSegments is the number of edges used to approximate a marker.
const circleSegments = 32

// Render draws boundaries and markers at scene resolution.
func Render(scene *pipeline.Scene, opt config.Preview) (*image.RGBA, error) {
	if !scene.Canvas.Ready() {
		return nil, render.ErrProjectionNotConfigured
	}

	w, h := int(math.Ceil(scene.Width)), int(math.Ceil(scene.Height))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	if opt.Background != "" {
		bg, err := parseColor(opt.Background, 1)
		if err != nil {
			return nil, err
		}
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	fill, err := parseColor(opt.Fill, 1)
	if err != nil {
		return nil, err
	}
	stroke, err := parseColor(opt.Stroke, 1)
	if err != nil {
		return nil, err
	}

	r := &rasterizer{z: vector.NewRasterizer(w, h), dst: dst, proj: scene.Canvas.Projection.Project}

	if scene.Features != nil {
		for _, f := range scene.Features.Features {
			if f == nil || f.Geometry == nil {
				continue
			}
			r.geometry(f.Geometry, fill, stroke)
		}
	}

	for _, m := range scene.Markers {
		if err := r.marker(m); err != nil {
			return nil, fmt.Errorf("marker %d: %w", m.Index, err)
		}
	}

	return dst, nil
}

type rasterizer struct {
	z    *vector.Rasterizer
	dst  *image.RGBA
	proj orb.Projection
}

func (r *rasterizer) flush(c color.Color) {
	b := r.dst.Bounds()
	r.z.Draw(r.dst, b, image.NewUniform(c), image.Point{})
	r.z.Reset(b.Dx(), b.Dy())
}

func (r *rasterizer) geometry(g orb.Geometry, fill, stroke color.Color) {
	switch v := g.(type) {
	case orb.Polygon:
		r.polygon(v, fill, stroke)
	case orb.MultiPolygon:
		for _, p := range v {
			r.polygon(p, fill, stroke)
		}
	case orb.LineString:
		r.line(v, stroke)
	case orb.MultiLineString:
		for _, ls := range v {
			r.line(ls, stroke)
		}
	case orb.Point:
		r.circle(r.proj(v), 2)
		r.flush(stroke)
	case orb.MultiPoint:
		for _, p := range v {
			r.circle(r.proj(p), 2)
		}
		r.flush(stroke)
	case orb.Collection:
		for _, c := range v {
			r.geometry(c, fill, stroke)
		}
	}
}

func (r *rasterizer) polygon(p orb.Polygon, fill, stroke color.Color) {
	for _, ring := range p {
		for i, pt := range ring {
			xy := r.proj(pt)
			if i == 0 {
				r.z.MoveTo(float32(xy[0]), float32(xy[1]))
			} else {
				r.z.LineTo(float32(xy[0]), float32(xy[1]))
			}
		}
		r.z.ClosePath()
	}
	r.flush(fill)

	for _, ring := range p {
		r.segments(ring, 0.5)
	}
	r.flush(stroke)
}

func (r *rasterizer) line(ls orb.LineString, stroke color.Color) {
	r.segments(ls, 1)
	r.flush(stroke)
}

// segments adds a quad of the given width per segment.
func (r *rasterizer) segments(pts []orb.Point, width float64) {
	for i := 1; i < len(pts); i++ {
		a, b := r.proj(pts[i-1]), r.proj(pts[i])
		dx, dy := b[0]-a[0], b[1]-a[1]
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*width/2, dx/l*width/2

		r.z.MoveTo(float32(a[0]+nx), float32(a[1]+ny))
		r.z.LineTo(float32(b[0]+nx), float32(b[1]+ny))
		r.z.LineTo(float32(b[0]-nx), float32(b[1]-ny))
		r.z.LineTo(float32(a[0]-nx), float32(a[1]-ny))
		r.z.ClosePath()
	}
}

func (r *rasterizer) circle(c orb.Point, radius float64) {
	if radius <= 0 {
		return
	}
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		x := float32(c[0] + radius*math.Cos(a))
		y := float32(c[1] + radius*math.Sin(a))
		if i == 0 {
			r.z.MoveTo(x, y)
		} else {
			r.z.LineTo(x, y)
		}
	}
	r.z.ClosePath()
}

// marker draws the stroke as a ring behind the fill.
func (r *rasterizer) marker(m render.Marker) error {
	fill, err := parseColor(m.Fill, m.Opacity)
	if err != nil {
		return err
	}
	stroke, err := parseColor(m.Stroke, m.Opacity)
	if err != nil {
		return err
	}

	c := orb.Point{m.X, m.Y}
	half := m.StrokeWidth / 2

	if half > 0 {
		r.circle(c, m.R+half)
		r.flush(stroke)
	}
	r.circle(c, m.R-half)
	r.flush(fill)
	return nil
}

// parseColor accepts #rgb and #rrggbb.
func parseColor(hex string, opacity float64) (color.NRGBA, error) {
	if len(hex) == 4 && hex[0] == '#' {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	rr, gg, bb := c.RGB255()
	a := math.Max(0, math.Min(1, opacity))
	return color.NRGBA{R: rr, G: gg, B: bb, A: uint8(math.Round(a * 255))}, nil
}
