package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/ngon"
	"github.com/soypat/ngon/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// RasterConfig configures Rasterize.
type RasterConfig struct {
	Width, Height int
	// Supersample renders at Supersample times the output resolution and
	// downscales the result for antialiasing. Values below 1 mean 1.
	Supersample int
	Background  color.NRGBA
	// PointSize is the side in output pixels of the square drawn per vertex
	// for ngon.StyleVertex.
	PointSize float64
	// LineWidth is the width in output pixels of ngon.StyleLine outlines.
	LineWidth float64
	// View is the world box mapped onto the image. The zero box means
	// vertices are already in normalized device coordinates.
	View d2.Box
}

var errBadImageSize = errors.New("raster image width and height must be positive")

// Rasterize draws the meshes in order onto a new image using a software renderer.
func Rasterize(meshes []ngon.Mesh, cfg RasterConfig) (image.Image, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errBadImageSize
	}
	scale := cfg.Supersample
	if scale < 1 {
		scale = 1
	}
	pointSize := cfg.PointSize
	if pointSize <= 0 {
		pointSize = 1
	}
	lineWidth := cfg.LineWidth
	if lineWidth <= 0 {
		lineWidth = 1
	}
	w, h := cfg.Width*scale, cfg.Height*scale

	context := fauxgl.NewContext(w, h)
	context.ClearColorBufferWith(fauxgl.MakeColor(cfg.Background))
	context.Cull = fauxgl.CullNone
	// Meshes are painted in order on the z=0 plane.
	context.ReadDepth = false
	context.WriteDepth = false
	context.LineWidth = lineWidth * float64(scale)

	view := ViewTransform(cfg.View)
	// Half the side of a point's square in NDC units per axis.
	half := r2.Vec{
		X: float64(pointHalfNDC(float32(pointSize), cfg.Width)),
		Y: float64(pointHalfNDC(float32(pointSize), cfg.Height)),
	}
	for _, m := range meshes {
		if len(m.Vertices) == 0 {
			continue
		}
		context.Shader = fauxgl.NewSolidColorShader(fauxgl.Identity(), fauxgl.MakeColor(MeshColor(m.Color)))
		v := m.Vertices.Transform(view)
		switch TopologyFor(m.Style) {
		case Triangles:
			context.DrawTriangles(fillTriangles(v))
		case LineLoop:
			context.DrawLines(outline(v))
		default:
			context.DrawTriangles(pointQuads(v, half))
		}
	}
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(cfg.Width), uint(cfg.Height), img, resize.Bilinear)
	}
	return img, nil
}

// SavePNG writes img to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	return fauxgl.SavePNG(path, img)
}

// pointHalfNDC converts half a point side in pixels to NDC units for an
// image axis of n pixels. NDC spans 2 units across the axis.
func pointHalfNDC(sizePx float32, n int) float32 {
	return math32.Max(sizePx, 1) / float32(n)
}

func vec3(v r2.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, 0)
}

func fillTriangles(v ngon.Sequence) []*fauxgl.Triangle {
	idx := Indices(Triangles, len(v))
	tris := make([]*fauxgl.Triangle, 0, len(idx)/3)
	for i := 0; i+2 < len(idx); i += 3 {
		tris = append(tris, fauxgl.NewTriangleForPoints(vec3(v[idx[i]]), vec3(v[idx[i+1]]), vec3(v[idx[i+2]])))
	}
	return tris
}

func outline(v ngon.Sequence) []*fauxgl.Line {
	segs := Segments(v)
	lines := make([]*fauxgl.Line, len(segs))
	for i, s := range segs {
		lines[i] = fauxgl.NewLineForPoints(vec3(s[0]), vec3(s[1]))
	}
	return lines
}

func pointQuads(v ngon.Sequence, half r2.Vec) []*fauxgl.Triangle {
	tris := make([]*fauxgl.Triangle, 0, 2*len(v))
	for _, p := range v {
		sq := d2.NewBox2(p, r2.Scale(2, half)).Vertices()
		tris = append(tris,
			fauxgl.NewTriangleForPoints(vec3(sq[0]), vec3(sq[1]), vec3(sq[2])),
			fauxgl.NewTriangleForPoints(vec3(sq[0]), vec3(sq[2]), vec3(sq[3])),
		)
	}
	return tris
}
