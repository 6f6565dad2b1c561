package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/soypat/ngon"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotConfig configures Plot.
type PlotConfig struct {
	Title string
	// Width and Height of the figure. Zero means 4 inches.
	Width, Height vg.Length
	// Format is the output format understood by gonum/plot: "svg", "png",
	// "pdf", "eps", "jpg" or "tif". Empty means "svg".
	Format string
	// Margin is added around the meshes as a fraction of their extent.
	Margin float64
	// Legend adds the mesh names to the figure.
	Legend bool
}

var errNothingToPlot = errors.New("no vertices to plot")

// Plot writes a figure of the meshes to w. Filled meshes are drawn as
// polygons, outlines as closed lines and vertex meshes as scatter points.
// Axes share the same scale so regular polygons look regular.
func Plot(w io.Writer, meshes []ngon.Mesh, cfg PlotConfig) error {
	if _, ok := ngon.MeshBounds(meshes); !ok {
		return errNothingToPlot
	}
	view := FitView(meshes, cfg.Margin)
	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = view.Min.X, view.Max.X
	p.Y.Min, p.Y.Max = view.Min.Y, view.Max.Y
	p.Add(plotter.NewGrid())

	for _, m := range meshes {
		if len(m.Vertices) == 0 {
			continue
		}
		xys := toXYs(m.Vertices)
		c := MeshColor(m.Color)
		var thumb plot.Thumbnailer
		switch TopologyFor(m.Style) {
		case Triangles:
			poly, err := plotter.NewPolygon(xys)
			if err != nil {
				return fmt.Errorf("plotting %q: %w", m.Name, err)
			}
			poly.Color = c
			poly.LineStyle.Color = c
			p.Add(poly)
			thumb = poly
		case LineLoop:
			closed := append(xys, xys[0])
			line, err := plotter.NewLine(closed)
			if err != nil {
				return fmt.Errorf("plotting %q: %w", m.Name, err)
			}
			line.LineStyle.Color = c
			line.LineStyle.Width = vg.Points(1.5)
			p.Add(line)
			thumb = line
		default:
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return fmt.Errorf("plotting %q: %w", m.Name, err)
			}
			sc.GlyphStyle.Color = c
			sc.GlyphStyle.Radius = vg.Points(3)
			p.Add(sc)
			thumb = sc
		}
		if cfg.Legend && m.Name != "" {
			p.Legend.Add(m.Name, thumb)
		}
	}

	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = 4 * vg.Inch
	}
	if height <= 0 {
		height = 4 * vg.Inch
	}
	format := cfg.Format
	if format == "" {
		format = "svg"
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func toXYs(v ngon.Sequence) plotter.XYs {
	xys := make(plotter.XYs, len(v))
	for i, vert := range v {
		xys[i].X = vert.X
		xys[i].Y = vert.Y
	}
	return xys
}
