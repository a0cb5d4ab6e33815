package atomcells

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig implies a setting is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config outlines how atoms become cells & how the cells are drawn.
// A hand built Config should start from DefaultConfig.
type Config struct {
	// Projection from 3D atom positions onto the plane.
	Projection Projection `yaml:"projection"`

	// Radius is the distance of synthetic far vertices closing unbounded
	// cells, in projected units. 0 picks twice the larger span of the
	// projected points.
	Radius float64 `yaml:"radius"`

	// Workers reconstructing cells concurrently, 0 or 1 is sequential.
	// The result is identical either way.
	Workers int `yaml:"workers"`

	Render RenderConfig `yaml:"render"`
}

// RenderConfig configures the image.
type RenderConfig struct {
	// Figure size in inches
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// DPI (dots per inch) so the image is Width*DPI by Height*DPI pixels
	DPI float64 `yaml:"dpi"`

	// Alpha (opacity) of cell fill & edges, 0-1
	Alpha float64 `yaml:"alpha"`

	// Colours are names or #rrggbb[aa], see ParseColour
	Background string  `yaml:"background"`
	EdgeColour string  `yaml:"edge_colour"`
	EdgeWidth  float64 `yaml:"edge_width"`

	// Legend draws a key of the categories present, bottom left
	Legend bool `yaml:"legend"`

	// Highlight outlines all cells whose substructure name (eg. "LIG1")
	// or atom name matches, empty for none
	Highlight       string  `yaml:"highlight"`
	HighlightColour string  `yaml:"highlight_colour"`
	HighlightWidth  float64 `yaml:"highlight_width"`
}

// DefaultConfig returns the settings of the classic figure; 2.69 x 2.70
// inches at 120 dpi with half transparent cells & black edges.
func DefaultConfig() *Config {
	return &Config{
		Projection: Perspective,
		Render: RenderConfig{
			Width:           2.69,
			Height:          2.70,
			DPI:             120,
			Alpha:           0.5,
			Background:      "white",
			EdgeColour:      "black",
			EdgeWidth:       1,
			HighlightColour: "gold",
			HighlightWidth:  2,
		},
	}
}

// LoadConfig reads a YAML config from fs. Settings absent from the file
// keep their DefaultConfig values.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return cfg, cfg.Validate()
}

// Validate checks settings are in range.
func (c *Config) Validate() error {
	switch {
	case !c.Projection.valid():
		return errors.Wrapf(ErrInvalidConfig, "unknown projection %q", c.Projection)
	case c.Radius < 0:
		return errors.Wrapf(ErrInvalidConfig, "radius %v is negative", c.Radius)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "workers %d is negative", c.Workers)
	}
	return c.Render.Validate()
}

// Validate checks settings are in range.
func (r *RenderConfig) Validate() error {
	switch {
	case r.Width <= 0 || r.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "figure size %vx%v", r.Width, r.Height)
	case r.DPI <= 0:
		return errors.Wrapf(ErrInvalidConfig, "dpi %v", r.DPI)
	case r.Alpha < 0 || r.Alpha > 1:
		return errors.Wrapf(ErrInvalidConfig, "alpha %v not in [0, 1]", r.Alpha)
	case r.EdgeWidth < 0 || r.HighlightWidth < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative line width")
	}

	for _, c := range []string{r.Background, r.EdgeColour, r.HighlightColour} {
		if _, err := ParseColour(c); err != nil {
			return errors.Wrap(ErrInvalidConfig, err.Error())
		}
	}
	return nil
}

// size of the image in pixels, never less than 1x1
func (r *RenderConfig) size() (int, int) {
	w := int(r.Width*r.DPI + 0.5)
	h := int(r.Height*r.DPI + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
