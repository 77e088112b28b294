package render

import (
	"math"
	"strconv"

	"github.com/woozymasta/feddanmap/internal/config"
	"github.com/woozymasta/feddanmap/internal/points"
	"github.com/woozymasta/feddanmap/internal/tooltip"
)

// Style drives marker size, fill and the static stroke.
type Style struct {
	Stroke      string
	Thresholds  []float64
	Colors      []string
	AreaFactor  float64
	StrokeWidth float64
	Opacity     float64
}

// StyleFromConfig copies marker settings from the configuration.
func StyleFromConfig(cfg *config.Config) Style {
	return Style{
		Thresholds:  cfg.Palette.Thresholds,
		Colors:      cfg.Palette.Colors,
		AreaFactor:  cfg.Marker.AreaFactor,
		Stroke:      cfg.Marker.Stroke,
		StrokeWidth: cfg.Marker.StrokeWidth,
		Opacity:     cfg.Marker.Opacity,
	}
}

// DefaultStyle is the five class purple-green scheme.
func DefaultStyle() Style {
	return StyleFromConfig(config.Default())
}

// Color classifies feddans. A value equal to a threshold belongs to the lower class.
func (s Style) Color(feddans float64) string {
	for i, t := range s.Thresholds {
		if feddans <= t {
			return s.Colors[i]
		}
	}
	return s.Colors[len(s.Colors)-1]
}

// Radius is area proportional: r = sqrt(feddans * AreaFactor).
func (s Style) Radius(feddans float64) float64 {
	return math.Sqrt(feddans * s.AreaFactor)
}

// Marker is a projected, styled village.
type Marker struct {
	Record      points.Record `json:"record"`
	Fill        string        `json:"fill"`
	Stroke      string        `json:"stroke"`
	Tooltip     string        `json:"tooltip"`
	Index       int           `json:"index"`
	X           float64       `json:"x"`
	Y           float64       `json:"y"`
	R           float64       `json:"r"`
	StrokeWidth float64       `json:"stroke_width"`
	Opacity     float64       `json:"opacity"`
}

// Contains reports whether (x, y) falls inside the marker circle.
func (m Marker) Contains(x, y float64) bool {
	dx, dy := x-m.X, y-m.Y
	return dx*dx+dy*dy <= m.R*m.R
}

// Markers projects every record with the canvas projection, keeping record order.
func Markers(c Canvas, records []points.Record, s Style) ([]Marker, error) {
	if !c.Ready() {
		return nil, ErrProjectionNotConfigured
	}

	markers := make([]Marker, len(records))
	for i, rec := range records {
		xy := c.Projection.Project(rec.Point())
		markers[i] = Marker{
			Index:       i,
			Record:      rec,
			X:           xy[0],
			Y:           xy[1],
			R:           s.Radius(rec.Feddans),
			Fill:        s.Color(rec.Feddans),
			Stroke:      s.Stroke,
			StrokeWidth: s.StrokeWidth,
			Opacity:     s.Opacity,
			Tooltip:     tooltip.Content(rec.Place, feddansText(rec)),
		}
	}

	return markers, nil
}

func feddansText(rec points.Record) string {
	if rec.FeddansRaw != "" {
		return rec.FeddansRaw
	}
	return strconv.FormatFloat(rec.Feddans, 'f', -1, 64)
}
