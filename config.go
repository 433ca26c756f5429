package polyedit

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Style controls how a follower draws and how large its hit areas are.
// Sizes are in screen pixels and stay constant regardless of camera zoom.
type Style struct {
	// PixelsPerUnit converts world units to pixels at zoom 1.
	PixelsPerUnit float64 `toml:"pixels_per_unit"`
	// AnchorRadius is the hit radius around anchors and edges.
	AnchorRadius float64 `toml:"anchor_radius"`
	// AnchorSize is the side length of the square anchor marker.
	AnchorSize float64 `toml:"anchor_size"`
	// LineWidth is the outline stroke width.
	LineWidth float64 `toml:"line_width"`
	// GuideWidth is the triangulation guide stroke width.
	GuideWidth float64 `toml:"guide_width"`

	OutlineColor        Color `toml:"outline_color"`
	HoverColor          Color `toml:"hover_color"`
	ProblemColor        Color `toml:"problem_color"`
	GuideColor          Color `toml:"guide_color"`
	AnchorColor         Color `toml:"anchor_color"`
	SelectedAnchorColor Color `toml:"selected_anchor_color"`
}

// DefaultStyle returns the standard editor overlay style.
func DefaultStyle() Style {
	return Style{
		PixelsPerUnit:       100,
		AnchorRadius:        10,
		AnchorSize:          8,
		LineWidth:           2,
		GuideWidth:          1,
		OutlineColor:        ColorWhite,
		HoverColor:          Color{R: 1, G: 0.85, B: 0.2, A: 1},
		ProblemColor:        Color{R: 1, G: 0.25, B: 0.25, A: 1},
		GuideColor:          Color{R: 1, G: 1, B: 1, A: 0.25},
		AnchorColor:         ColorWhite,
		SelectedAnchorColor: Color{R: 0.3, G: 0.7, B: 1, A: 1},
	}
}

// withDefaults fills zero sizes from DefaultStyle. Colors are kept as given.
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.PixelsPerUnit <= 0 {
		s.PixelsPerUnit = d.PixelsPerUnit
	}
	if s.AnchorRadius <= 0 {
		s.AnchorRadius = d.AnchorRadius
	}
	if s.AnchorSize <= 0 {
		s.AnchorSize = d.AnchorSize
	}
	if s.LineWidth <= 0 {
		s.LineWidth = d.LineWidth
	}
	if s.GuideWidth <= 0 {
		s.GuideWidth = d.GuideWidth
	}
	return s
}

// WindowConfig sizes the editor window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// CameraConfig sets the initial camera.
type CameraConfig struct {
	X    float64 `toml:"x"`
	Y    float64 `toml:"y"`
	Zoom float64 `toml:"zoom"`
}

// Config is the editor configuration, usually loaded from a TOML file.
type Config struct {
	Window     WindowConfig `toml:"window"`
	Camera     CameraConfig `toml:"camera"`
	Style      Style        `toml:"style"`
	Background Color        `toml:"background"`
	Debug      bool         `toml:"debug"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window:     WindowConfig{Title: "polyedit", Width: 960, Height: 640},
		Camera:     CameraConfig{Zoom: 1},
		Style:      DefaultStyle(),
		Background: Color{R: 0.137, G: 0.118, B: 0.176, A: 1},
	}
}

// ParseConfig decodes TOML on top of DefaultConfig, so a file only needs the
// keys it changes.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Style = cfg.Style.withDefaults()
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size %dx%d is negative", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Zoom < 0 {
		return fmt.Errorf("camera zoom %v is negative", c.Camera.Zoom)
	}
	return nil
}
