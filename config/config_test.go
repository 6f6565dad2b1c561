package config

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soypat/ngon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const yamlScene = `
log_level: debug
window:
  title: shapes
  width: 640
  height: 480
  background: "#000000"
render:
  point_size: 4
  fit: true
shapes:
  - name: tri
    sides: 3
    radius: 0.5
    center: [2, 3]
    style: fill
    color: "#ff000080"
  - name: dots
    kind: points
    points: [[0, 0], [1, 1]]
`

const tomlScene = `
log_level = "warn"

[window]
title = "shapes"
width = 320
height = 200

[[shapes]]
name = "square"
sides = 4
radius = 1.0
style = "line"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "scene.yaml", yamlScene))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "shapes", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, []int{3, 3}, cfg.Window.GLVersion, "unset fields keep defaults")
	assert.Equal(t, color.NRGBA{A: 255}, cfg.Background())
	assert.True(t, cfg.Render.Fit)
	assert.Equal(t, 4.0, cfg.Render.PointSize)

	scene, err := cfg.Scene()
	require.NoError(t, err)
	require.Len(t, scene.Items, 2)
	tri := scene.Items[0]
	assert.Equal(t, ngon.Polygon{Center: ngon.Vec(2, 3), Radius: 0.5, Sides: 3}, tri.Shape)
	assert.Equal(t, ngon.StyleFill, tri.Style)
	assert.Equal(t, color.NRGBA{R: 255, A: 0x80}, tri.Color)

	dots := scene.Items[1]
	assert.Equal(t, ngon.Points{ngon.Vec(0, 0), ngon.Vec(1, 1)}, dots.Shape)
	assert.Equal(t, ngon.StyleVertex, dots.Style)
}

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(writeFile(t, "scene.toml", tomlScene))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 200, cfg.Window.Height)
	assert.Equal(t, "#334D4D", cfg.Window.Background)

	scene, err := cfg.Scene()
	require.NoError(t, err)
	require.Len(t, scene.Items, 1)
	assert.Equal(t, ngon.Polygon{Radius: 1, Sides: 4}, scene.Items[0].Shape)
	assert.Equal(t, ngon.StyleLine, scene.Items[0].Style)
}

func TestDefaults(t *testing.T) {
	def := Default()
	require.NoError(t, def.Validate())
	assert.Equal(t, 800, def.Window.Width)
	assert.Equal(t, 600, def.Window.Height)
	assert.Equal(t, color.NRGBA{R: 0x33, G: 0x4d, B: 0x4d, A: 0xff}, def.Background())

	cfg, err := Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Equal(t, def, cfg, "empty document yields defaults")

	cfg, err = Decode(strings.NewReader(""), TOML)
	require.NoError(t, err)
	assert.Equal(t, def, cfg)
}

func TestValidate(t *testing.T) {
	const bad = `
window:
  width: 0
  background: "purple"
shapes:
  - name: nothing
    sides: 0
  - name: weird
    style: wobbly
    sides: 3
`
	_, err := Decode(strings.NewReader(bad), YAML)
	require.Error(t, err)
	assert.ErrorIs(t, err, ngon.ErrInvalidConfiguration)
	msg := err.Error()
	for _, want := range []string{"window size", "background", `"nothing"`, `"weird"`} {
		assert.Contains(t, msg, want)
	}

	_, err = Load(writeFile(t, "scene.json", "{}"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = Decode(strings.NewReader("shapes: [{center: [1, 2, 3], sides: 3}]"), YAML)
	assert.Error(t, err)
	_, err = Decode(strings.NewReader("shapes: [{kind: points}]"), YAML)
	assert.ErrorIs(t, err, ngon.ErrEmptyShape)
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#334D4D", color.NRGBA{R: 0x33, G: 0x4d, B: 0x4d, A: 0xff}, true},
		{"ff8000", color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, true},
		{"#01020304", color.NRGBA{R: 1, G: 2, B: 3, A: 4}, true},
		{"#fff", color.NRGBA{}, false},
		{"#gggggg", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
	} {
		got, err := ParseColor(test.in)
		if !test.ok {
			assert.Error(t, err, test.in)
			continue
		}
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, got, test.in)
	}
}

func TestWatch(t *testing.T) {
	path := writeFile(t, "scene.yaml", "shapes: [{sides: 3, radius: 1}]")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zaptest.NewLogger(t), func(c Config) { got <- c })
	}()
	// Let the watcher register before writing.
	time.Sleep(100 * time.Millisecond)

	// Invalid contents are skipped.
	require.NoError(t, os.WriteFile(path, []byte("shapes: [{sides: 0}]"), 0o644))
	time.Sleep(3 * settle)
	require.NoError(t, os.WriteFile(path, []byte("shapes: [{sides: 7, radius: 1}]"), 0o644))

	select {
	case cfg := <-got:
		require.Len(t, cfg.Shapes, 1)
		assert.Equal(t, uint(7), cfg.Shapes[0].Sides)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after file change")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not return after cancel")
	}
}
