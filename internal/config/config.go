// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Title         string  `yaml:"title,omitempty" json:"title,omitempty"`
	Boundaries    string  `yaml:"boundaries" json:"-"`
	Points        string  `yaml:"points" json:"-"`
	LabelProperty string  `yaml:"label_property,omitempty" json:"-"`
	Tooltip       Tooltip `yaml:"tooltip" json:"tooltip"`
	Palette       Palette `yaml:"palette" json:"palette"`
	Preview       Preview `yaml:"preview" json:"-"`
	Marker        Marker  `yaml:"marker" json:"marker"`
	Width         float64 `yaml:"width" json:"width"`
	Height        float64 `yaml:"height" json:"height"`
}

// Tooltip controls tooltip placement relative to the pointer.
type Tooltip struct {
	OffsetY float64 `yaml:"offset_y" json:"offset_y"`
}

// Marker holds static marker styling and the sizing factor.
type Marker struct {
	Stroke      string  `yaml:"stroke" json:"stroke"`
	AreaFactor  float64 `yaml:"area_factor" json:"area_factor"`
	StrokeWidth float64 `yaml:"stroke_width" json:"stroke_width"`
	Opacity     float64 `yaml:"opacity" json:"opacity"`
}

// Palette is a threshold classification: value <= Thresholds[i] gets Colors[i],
// anything above the last threshold gets the last color.
type Palette struct {
	Thresholds []float64 `yaml:"thresholds" json:"thresholds"`
	Colors     []string  `yaml:"colors" json:"colors"`
}

// Preview holds colors used by raster snapshots.
type Preview struct {
	Fill       string `yaml:"fill" json:"fill"`
	Stroke     string `yaml:"stroke" json:"stroke"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
}

var (
	ErrInvalidSize    = errors.New("width and height must be positive")
	ErrInvalidPalette = errors.New("palette needs one more color than thresholds")
	ErrUnsorted       = errors.New("palette thresholds must be strictly ascending")
	ErrNoSources      = errors.New("boundaries and points sources are required")
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Title:      "Villages",
		Boundaries: "data/map.geojson",
		Points:     "data/villages.csv",
		Width:      900,
		Height:     600,
		Tooltip:    Tooltip{OffsetY: 90},
		Marker: Marker{
			AreaFactor:  0.0004,
			Stroke:      "#222",
			StrokeWidth: 1,
			Opacity:     0.8,
		},
		Palette: Palette{
			Thresholds: []float64{500, 1500, 2500, 3500},
			Colors:     []string{"#7B3294", "#C2A5CF", "#FFFFFF", "#A6DBA0", "#008837"},
		},
		Preview: Preview{
			Fill:   "#DDDDDD",
			Stroke: "#FFFFFF",
		},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Keys missing from the file keep their default values. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the invariants the renderer relies on.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidSize
	}
	if c.Boundaries == "" || c.Points == "" {
		return ErrNoSources
	}
	if len(c.Palette.Colors) != len(c.Palette.Thresholds)+1 {
		return ErrInvalidPalette
	}
	if !slices.IsSorted(c.Palette.Thresholds) || len(slices.Compact(slices.Clone(c.Palette.Thresholds))) != len(c.Palette.Thresholds) {
		return ErrUnsorted
	}

	return nil
}
