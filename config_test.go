package atomcells

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	w, h := cfg.Render.size()
	assert.Equal(t, 323, w)
	assert.Equal(t, 324, h)
}

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "cfg.yaml", []byte(`
projection: orthographic
workers: 4
render:
  dpi: 300
  alpha: 0.8
  legend: true
  highlight: LIG1
`), 0644))

	cfg, err := LoadConfig(fs, "cfg.yaml")
	require.NoError(t, err)

	want := DefaultConfig()
	want.Projection = Orthographic
	want.Workers = 4
	want.Render.DPI = 300
	want.Render.Alpha = 0.8
	want.Render.Legend = true
	want.Render.Highlight = "LIG1"
	assert.Equal(t, want, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("render: [1, 2"), 0644))
	require.NoError(t, afero.WriteFile(fs, "range.yaml", []byte("projection: fisheye\n"), 0644))

	_, err := LoadConfig(fs, "bad.yaml")
	assert.Error(t, err)

	_, err = LoadConfig(fs, "range.yaml")
	assert.Equal(t, ErrInvalidConfig, errors.Cause(err))

	_, err = LoadConfig(fs, "missing.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"radius":     func(c *Config) { c.Radius = -1 },
		"workers":    func(c *Config) { c.Workers = -2 },
		"width":      func(c *Config) { c.Render.Width = 0 },
		"dpi":        func(c *Config) { c.Render.DPI = -5 },
		"alpha":      func(c *Config) { c.Render.Alpha = 1.5 },
		"edge width": func(c *Config) { c.Render.EdgeWidth = -1 },
		"colour":     func(c *Config) { c.Render.EdgeColour = "nope" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Equal(t, ErrInvalidConfig, errors.Cause(cfg.Validate()))
		})
	}
}
