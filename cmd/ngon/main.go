// Command ngon computes regular polygon vertices and draws them in an
// OpenGL window, to PNG or SVG images, or prints them as a table.
//
//	ngon view -sides 6 -radius 0.5 -style fill
//	ngon view -config scene.yaml
//	ngon png -sides 5 -o pentagon.png
//	ngon plot -config scene.toml -o scene.svg
//	ngon vertices -sides 4
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/muesli/termenv"
	"github.com/soypat/ngon"
	"github.com/soypat/ngon/config"
	"github.com/soypat/ngon/internal/zlog"
	"github.com/soypat/ngon/render"
	"github.com/soypat/ngon/render/glrender"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

func init() {
	// GLFW and OpenGL calls must happen on the main thread.
	runtime.LockOSThread()
}

const usage = `usage: ngon <command> [flags]

commands:
  view      open a window drawing the shapes
  png       rasterize the shapes to a PNG file
  plot      plot the shapes with axes to an image file
  vertices  print the polygon vertices
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1], os.Args[2:], os.Stdout)
	stop()
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "ngon:", err)
		os.Exit(1)
	}
}

// flags common to every command.
type flags struct {
	config   string
	sides    uint
	radius   float64
	x, y     float64
	style    string
	color    string
	logLevel string
	out      string
	width    int
	height   int
	fit      bool
}

func parseFlags(cmd string, args []string) (flags, error) {
	f := flags{}
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.StringVar(&f.config, "config", "", "YAML or TOML scene file. Overrides shape flags")
	fs.UintVar(&f.sides, "sides", 4, "number of polygon sides")
	fs.Float64Var(&f.radius, "radius", 0.5, "polygon circumradius")
	fs.Float64Var(&f.x, "x", 0, "polygon center x")
	fs.Float64Var(&f.y, "y", 0, "polygon center y")
	fs.StringVar(&f.style, "style", "vertex", "draw style: vertex, line or fill")
	fs.StringVar(&f.color, "color", "#FF8000", "shape color as #RRGGBB[AA]")
	fs.StringVar(&f.logLevel, "log", "", "log level. Overrides the config file")
	fs.StringVar(&f.out, "o", "", "output file for png and plot")
	fs.IntVar(&f.width, "width", 0, "image or window width in pixels. Zero uses the config")
	fs.IntVar(&f.height, "height", 0, "image or window height in pixels. Zero uses the config")
	fs.BoolVar(&f.fit, "fit", false, "fit the view to the shapes instead of using NDC")
	err := fs.Parse(args)
	return f, err
}

// load returns the configuration named by the flags. Without a config
// file the shape flags describe a single polygon.
func (f flags) load() (config.Config, error) {
	if f.config != "" {
		cfg, err := config.Load(f.config)
		if err != nil {
			return cfg, err
		}
		f.override(&cfg)
		return cfg, nil
	}
	cfg := config.Default()
	cfg.Shapes = []config.Shape{{
		Name:   fmt.Sprintf("%d-gon", f.sides),
		Kind:   ngon.KindPolygon.String(),
		Style:  f.style,
		Color:  f.color,
		Center: []float64{f.x, f.y},
		Radius: f.radius,
		Sides:  f.sides,
	}}
	f.override(&cfg)
	return cfg, cfg.Validate()
}

func (f flags) override(cfg *config.Config) {
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.width > 0 {
		cfg.Window.Width = f.width
	}
	if f.height > 0 {
		cfg.Window.Height = f.height
	}
	if f.fit {
		cfg.Render.Fit = true
	}
}

func run(ctx context.Context, cmd string, args []string, stdout io.Writer) error {
	f, err := parseFlags(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := f.load()
	if err != nil {
		return err
	}
	log, atom, err := zlog.New(cfg.LogLevel, zlog.Console)
	if err != nil {
		return err
	}
	defer log.Sync()
	log = log.Named(cmd)

	switch cmd {
	case "view":
		return view(ctx, f, cfg, log, atom)
	case "png":
		return writePNG(ctx, f, cfg, log)
	case "plot":
		return writePlot(ctx, f, cfg, log)
	case "vertices":
		return printVertices(ctx, cfg, stdout)
	}
	return fmt.Errorf("unknown command %q\n%s", cmd, usage)
}

func meshes(ctx context.Context, cfg config.Config) ([]ngon.Mesh, error) {
	scene, err := cfg.Scene()
	if err != nil {
		return nil, err
	}
	return scene.Meshes(ctx)
}

func view(ctx context.Context, f flags, cfg config.Config, log *zap.Logger, atom zap.AtomicLevel) error {
	wcfg := glrender.WindowConfig{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Version:    [2]int{cfg.Window.GLVersion[0], cfg.Window.GLVersion[1]},
		ClearColor: cfg.Background(),
		Renderer: glrender.Config{
			PointSize: float32(cfg.Render.PointSize),
			Log:       log,
		},
	}
	if cfg.Render.Shader != "" {
		src, err := render.ReadShader(cfg.Render.Shader)
		if err != nil {
			return err
		}
		wcfg.Renderer.ShaderSource = src
	}
	initial, err := meshes(ctx, cfg)
	if err != nil {
		return err
	}

	if f.config != "" {
		// Reloaded scenes may move, so a fitted view is refitted on every change.
		wcfg.Renderer.View = render.View{Fit: cfg.Render.Fit, Margin: cfg.Render.Margin}
		scene, _ := cfg.Scene() // meshes succeeded above.
		src := render.NewSceneSource(scene)
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			err := config.Watch(ctx, f.config, log, func(c config.Config) {
				if err := zlog.SetLevel(atom, c.LogLevel); err != nil {
					log.Warn("ignoring log level", zap.Error(err))
				}
				s, err := c.Scene()
				if err != nil {
					log.Error("reloaded scene", zap.Error(err))
					return
				}
				src.SetScene(s)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error("watching config", zap.Error(err))
			}
		}()
		return glrender.Run(ctx, wcfg, src)
	}

	// A single polygon from flags is editable from the keyboard. Its view is
	// fitted once so radius and position edits are visible.
	if cfg.Render.Fit {
		wcfg.Renderer.View = render.View{Box: render.FitView(initial, cfg.Render.Margin)}
	}
	item := cfg.Shapes[0]
	style, _ := ngon.ParseStyle(item.Style)
	c, _ := config.ParseColor(item.Color)
	model, err := ngon.NewModel(ngon.Polygon{
		Center: ngon.Vec(item.Center[0], item.Center[1]),
		Radius: item.Radius,
		Sides:  item.Sides,
	}, ngon.WithLogger(log))
	if err != nil {
		return err
	}
	wcfg.OnKey = func(key glfw.Key, _ glfw.ModifierKey) {
		editModel(model, key, log)
	}
	log.Info("keys: up/down change sides, +/- change radius, left/right move, esc quits")
	return glrender.Run(ctx, wcfg, render.ModelSource{Model: model, Name: item.Name, Style: style, Color: c})
}

const radiusStep = 1.1

func editModel(m *ngon.Model, key glfw.Key, log *zap.Logger) {
	switch key {
	case glfw.KeyUp:
		if err := m.SetSides(m.Sides() + 1); err != nil {
			log.Warn("set sides", zap.Error(err))
		}
	case glfw.KeyDown:
		if m.Sides() <= 1 {
			return
		}
		if err := m.SetSides(m.Sides() - 1); err != nil {
			log.Warn("set sides", zap.Error(err))
		}
	case glfw.KeyEqual, glfw.KeyKPAdd:
		m.SetRadius(m.Radius() * radiusStep)
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		m.SetRadius(m.Radius() / radiusStep)
	case glfw.KeyLeft, glfw.KeyRight:
		c := m.Center()
		step := 0.05 * m.Radius()
		if key == glfw.KeyLeft {
			step = -step
		}
		c.X += step
		m.SetCenter(c)
	}
}

func outputPath(f flags, def string) string {
	if f.out != "" {
		return f.out
	}
	return def
}

func writePNG(ctx context.Context, f flags, cfg config.Config, log *zap.Logger) error {
	ms, err := meshes(ctx, cfg)
	if err != nil {
		return err
	}
	rc := render.RasterConfig{
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Supersample: 2,
		Background:  cfg.Background(),
		PointSize:   cfg.Render.PointSize,
		LineWidth:   cfg.Render.LineWidth,
	}
	if cfg.Render.Fit {
		rc.View = render.FitView(ms, cfg.Render.Margin)
	}
	img, err := render.Rasterize(ms, rc)
	if err != nil {
		return err
	}
	path := outputPath(f, "ngon.png")
	if err := render.SavePNG(path, img); err != nil {
		return err
	}
	log.Info("wrote image", zap.String("path", path), zap.Uint64("fingerprint", ngon.MeshesFingerprint(ms)))
	return nil
}

func writePlot(ctx context.Context, f flags, cfg config.Config, log *zap.Logger) error {
	ms, err := meshes(ctx, cfg)
	if err != nil {
		return err
	}
	path := outputPath(f, "ngon.svg")
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	err = render.Plot(fp, ms, render.PlotConfig{
		Title:  cfg.Window.Title,
		Width:  vg.Length(cfg.Window.Width) * vg.Inch / 96,
		Height: vg.Length(cfg.Window.Height) * vg.Inch / 96,
		Format: format,
		Margin: cfg.Render.Margin,
		Legend: true,
	})
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	log.Info("wrote plot", zap.String("path", path))
	return nil
}

func printVertices(ctx context.Context, cfg config.Config, w io.Writer) error {
	ms, err := meshes(ctx, cfg)
	if err != nil {
		return err
	}
	out := termenv.NewOutput(w)
	header := out.String(fmt.Sprintf("%-12s %5s %14s %14s", "shape", "i", "x", "y")).Bold()
	fmt.Fprintln(w, header)
	for _, m := range ms {
		for i, v := range m.Vertices {
			fmt.Fprintf(w, "%-12s %5d %14.6f %14.6f\n", m.Name, i, v.X, v.Y)
		}
	}
	return nil
}
