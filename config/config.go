// Package config loads ngon scenes and viewer settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/ngon"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Config describes a scene and how to display it.
type Config struct {
	LogLevel string  `yaml:"log_level" toml:"log_level"`
	Window   Window  `yaml:"window" toml:"window"`
	Render   Render  `yaml:"render" toml:"render"`
	Shapes   []Shape `yaml:"shapes" toml:"shapes"`
}

// Window configures the viewer window.
type Window struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	// GLVersion is the OpenGL core profile version as [major, minor].
	GLVersion  []int  `yaml:"gl_version" toml:"gl_version"`
	Background string `yaml:"background" toml:"background"`
}

// Render configures how meshes are drawn.
type Render struct {
	PointSize float64 `yaml:"point_size" toml:"point_size"`
	LineWidth float64 `yaml:"line_width" toml:"line_width"`
	// Shader is an optional path to a combined glgl shader source.
	Shader string `yaml:"shader" toml:"shader"`
	// Fit maps the bounds of the scene onto the window. When false
	// vertices are taken as normalized device coordinates.
	Fit    bool    `yaml:"fit" toml:"fit"`
	Margin float64 `yaml:"margin" toml:"margin"`
}

// Shape is one scene item. Polygons use Center, Radius and Sides;
// point lists use Points.
type Shape struct {
	Name   string      `yaml:"name" toml:"name"`
	Kind   string      `yaml:"kind" toml:"kind"`
	Style  string      `yaml:"style" toml:"style"`
	Color  string      `yaml:"color" toml:"color"`
	Center []float64   `yaml:"center" toml:"center"`
	Radius float64     `yaml:"radius" toml:"radius"`
	Sides  uint        `yaml:"sides" toml:"sides"`
	Points [][]float64 `yaml:"points" toml:"points"`
}

// Default returns the configuration used when no file is given: a window
// like the one of the classic OpenGL tutorials showing a hexagon's vertices.
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: Window{
			Title:      "ngon",
			Width:      800,
			Height:     600,
			GLVersion:  []int{3, 3},
			Background: "#334D4D",
		},
		Render: Render{
			PointSize: 10,
			LineWidth: 1,
			Margin:    0.1,
		},
		Shapes: []Shape{{
			Name:   "hexagon",
			Kind:   ngon.KindPolygon.String(),
			Style:  ngon.StyleVertex.String(),
			Color:  "#FF8000",
			Center: []float64{0, 0},
			Radius: 0.5,
			Sides:  6,
		}},
	}
}

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
}

// Load reads, defaults and validates the configuration file at path.
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer fp.Close()
	cfg, err := Decode(fp, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a configuration from r. Fields left unset take the values
// of Default, except Shapes which is only defaulted when the
// file names none. The result is validated.
func Decode(r io.Reader, format Format) (Config, error) {
	cfg := Default()
	defaultShapes := cfg.Shapes
	cfg.Shapes = nil
	var err error
	switch format {
	case YAML:
		err = yaml.NewDecoder(r).Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil // empty document.
		}
	case TOML:
		err = toml.NewDecoder(r).Decode(&cfg)
	default:
		err = fmt.Errorf("unknown config format %q", format)
	}
	if err != nil {
		return Config{}, err
	}
	if len(cfg.Shapes) == 0 {
		cfg.Shapes = defaultShapes
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and returns all problems found joined together.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if len(c.Window.GLVersion) != 2 {
		errs = append(errs, fmt.Errorf("gl_version must be [major, minor], got %v", c.Window.GLVersion))
	}
	if _, err := ParseColor(c.Window.Background); err != nil {
		errs = append(errs, fmt.Errorf("window background: %w", err))
	}
	if c.Render.PointSize < 0 || c.Render.LineWidth < 0 || c.Render.Margin < 0 {
		errs = append(errs, errors.New("point_size, line_width and margin must not be negative"))
	}
	for i, s := range c.Shapes {
		if _, err := s.Item(); err != nil {
			errs = append(errs, fmt.Errorf("shape %d %q: %w", i, s.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Scene returns the scene described by the shapes.
func (c Config) Scene() (ngon.Scene, error) {
	items := make([]ngon.Item, len(c.Shapes))
	for i, s := range c.Shapes {
		item, err := s.Item()
		if err != nil {
			return ngon.Scene{}, fmt.Errorf("shape %d %q: %w", i, s.Name, err)
		}
		items[i] = item
	}
	return ngon.Scene{Items: items}, nil
}

// Background returns the parsed window background color.
func (c Config) Background() color.NRGBA {
	bg, _ := ParseColor(c.Window.Background) // validated on load.
	return bg
}

// Item converts the shape to a scene item.
func (s Shape) Item() (ngon.Item, error) {
	kind := ngon.KindPolygon
	if s.Kind != "" {
		k, err := ngon.ParseKind(s.Kind)
		if err != nil {
			return ngon.Item{}, err
		}
		kind = k
	}
	style, err := ngon.ParseStyle(s.Style)
	if err != nil {
		return ngon.Item{}, err
	}
	c := color.NRGBA{}
	if s.Color != "" {
		c, err = ParseColor(s.Color)
		if err != nil {
			return ngon.Item{}, err
		}
	}
	item := ngon.Item{Name: s.Name, Style: style, Color: c}
	switch kind {
	case ngon.KindPolygon:
		center, err := vec(s.Center)
		if err != nil {
			return ngon.Item{}, fmt.Errorf("center: %w", err)
		}
		p := ngon.Polygon{Center: center, Radius: s.Radius, Sides: s.Sides}
		if _, err := p.Omega(); err != nil {
			return ngon.Item{}, err
		}
		item.Shape = p
	case ngon.KindPoints:
		if len(s.Points) == 0 {
			return ngon.Item{}, ngon.ErrEmptyShape
		}
		pts := make(ngon.Points, len(s.Points))
		for i, xy := range s.Points {
			v, err := vec(xy)
			if err != nil {
				return ngon.Item{}, fmt.Errorf("point %d: %w", i, err)
			}
			pts[i] = v
		}
		item.Shape = pts
	}
	return item, nil
}

func vec(xy []float64) (r2.Vec, error) {
	switch len(xy) {
	case 0:
		return r2.Vec{}, nil
	case 2:
		return r2.Vec{X: xy[0], Y: xy[1]}, nil
	}
	return r2.Vec{}, fmt.Errorf("want [x, y], got %v", xy)
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA". Alpha defaults to opaque.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
