package gizmo

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gizmo/backend"
	"github.com/gogpu/gizmo/shape"
)

// ErrInvalidConfig is returned by Config.Validate and the config loaders.
var ErrInvalidConfig = errors.New("gizmo: invalid config")

// Config holds the defaults draw contexts start every frame with.
//
// A zero Config is not valid; start from DefaultConfig. YAML documents
// only need to name the fields they change:
//
//	color: "#ff8800"
//	layer: gizmos|editor
//	segments: 48
type Config struct {
	// Color is the default draw color as a hex string ("#RRGGBB[AA]").
	Color string `yaml:"color"`

	// Layer is the default layer of every handle and draw call.
	Layer backend.Layer `yaml:"layer"`

	// LineWidth is the stroke width of 2D geometry handles.
	LineWidth float64 `yaml:"line_width"`

	// FontSize2D and FontSize3D are the default label sizes.
	FontSize2D float64 `yaml:"font_size_2d"`
	FontSize3D float64 `yaml:"font_size_3d"`

	// Segments is the tessellation of circles and curves in 3D.
	Segments int `yaml:"segments"`

	// SphereRings and CapsuleRings are the latitude bands of spheres and
	// of each capsule cap.
	SphereRings  int `yaml:"sphere_rings"`
	CapsuleRings int `yaml:"capsule_rings"`

	// DepthTest is the initial depth-test flag of 3D contexts.
	DepthTest bool `yaml:"depth_test"`

	// DashLength is the dash and gap length of dashed 3D lines.
	DashLength float64 `yaml:"dash_length"`
}

// DefaultConfig returns the built-in defaults: blue on the gizmos layer,
// 5px lines, 40/15pt labels, 32 segments, depth testing on.
func DefaultConfig() Config {
	return Config{
		Color:        "#0000ff",
		Layer:        backend.LayerGizmos,
		LineWidth:    5,
		FontSize2D:   40,
		FontSize3D:   15,
		Segments:     32,
		SphereRings:  16,
		CapsuleRings: 8,
		DepthTest:    true,
		DashLength:   0.25,
	}
}

// ParseConfig decodes a YAML document over DefaultConfig and validates
// the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("gizmo: load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if _, err := gg.ParseHex(c.Color); err != nil {
		return fmt.Errorf("%w: color: %w", ErrInvalidConfig, err)
	}
	switch {
	case c.LineWidth <= 0:
		return fmt.Errorf("%w: line_width must be positive, got %v", ErrInvalidConfig, c.LineWidth)
	case c.FontSize2D <= 0 || c.FontSize3D <= 0:
		return fmt.Errorf("%w: font sizes must be positive", ErrInvalidConfig)
	case c.Segments < 3:
		return fmt.Errorf("%w: segments must be at least 3, got %d", ErrInvalidConfig, c.Segments)
	case c.SphereRings < 2:
		return fmt.Errorf("%w: sphere_rings must be at least 2, got %d", ErrInvalidConfig, c.SphereRings)
	case c.CapsuleRings < 1:
		return fmt.Errorf("%w: capsule_rings must be at least 1, got %d", ErrInvalidConfig, c.CapsuleRings)
	case c.DashLength < 0:
		return fmt.Errorf("%w: dash_length must not be negative, got %v", ErrInvalidConfig, c.DashLength)
	}
	return nil
}

// defaultState returns the State contexts reset to after every frame.
func (c Config) defaultState() State {
	return State{Color: gg.Hex(c.Color), Layer: c.Layer, Space: WorldSpace}
}

// builder returns the tessellation settings for 3D contexts.
func (c Config) builder() shape.Builder {
	return shape.Builder{
		Segments:     c.Segments,
		SphereRings:  c.SphereRings,
		CapsuleRings: c.CapsuleRings,
		DashLength:   c.DashLength,
	}
}
