package glrender

import (
	"context"
	"errors"
	"image/color"

	"github.com/go-gl/gl/all-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/ngon/render"
	"go.uber.org/zap"
)

// WindowConfig configures the window opened by Run.
type WindowConfig struct {
	Title         string
	Width, Height int
	// Version is the requested OpenGL core profile version. Zero means 3.3.
	Version    [2]int
	ClearColor color.NRGBA
	Renderer   Config
	// OnKey is called for every key press not handled by Run.
	// Escape and Q close the window.
	OnKey func(key glfw.Key, mods glfw.ModifierKey)
}

// Run opens a window and draws the meshes of src every frame until the
// window is closed or ctx is done. Meshes are re-uploaded whenever src's
// version changes. If a new set of meshes cannot be computed the
// previous ones keep being drawn.
//
// Run must be called from the main goroutine locked to its OS thread.
func Run(ctx context.Context, cfg WindowConfig, src render.Source) error {
	if src == nil {
		return errors.New("nil mesh source")
	}
	log := cfg.Renderer.Log
	if log == nil {
		log = zap.NewNop()
		cfg.Renderer.Log = log
	}
	if cfg.Version == [2]int{} {
		cfg.Version = [2]int{3, 3}
	}
	window, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   cfg.Title,
		Version: cfg.Version,
		Width:   cfg.Width,
		Height:  cfg.Height,
	})
	if err != nil {
		return err
	}
	defer terminate()

	r, err := New(cfg.Renderer)
	if err != nil {
		return err
	}
	defer r.Delete()

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyEscape, glfw.KeyQ:
			w.SetShouldClose(true)
		default:
			if cfg.OnKey != nil {
				cfg.OnKey(key, mods)
			}
		}
	})
	fbw, fbh := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	bg := rgba(cfg.ClearColor)

	var version uint64
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			window.SetShouldClose(true)
			break
		}
		if v := src.Version(); v != version {
			meshes, err := src.Meshes(ctx)
			if err != nil {
				log.Error("computing meshes", zap.Error(err))
			} else if err = r.Upload(meshes); err != nil {
				return err
			} else {
				log.Info("meshes updated", zap.Uint64("version", v), zap.Int("meshes", len(meshes)))
			}
			version = v
		}
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
		r.Draw()
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return ctx.Err()
}
