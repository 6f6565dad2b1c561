// Package render draws ngon meshes. It contains an OpenGL renderer with its
// GLFW frame loop, a software rasterizer and a plot exporter. All three
// interpret a mesh's style the same way:
//
//	StyleVertex: one point per vertex.
//	StyleLine:   closed outline, vertex n-1 connects back to vertex 0.
//	StyleFill:   triangles fanning out from vertex 0.
package render

import (
	"fmt"
	"image/color"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/ngon"
	"github.com/soypat/ngon/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Topology is the primitive type used to connect a mesh's vertices.
type Topology uint8

const (
	Points Topology = iota
	LineLoop
	Triangles
)

func (t Topology) String() string {
	switch t {
	case Points:
		return "points"
	case LineLoop:
		return "line-loop"
	case Triangles:
		return "triangles"
	}
	return fmt.Sprintf("Topology(%d)", uint8(t))
}

// TopologyFor returns the topology used to draw a style.
func TopologyFor(s ngon.Style) Topology {
	switch s {
	case ngon.StyleLine:
		return LineLoop
	case ngon.StyleFill:
		return Triangles
	}
	return Points
}

// Indices returns the element indices that draw n vertices with topology t.
// Triangles are a fan around vertex 0 and need at least 3 vertices;
// fewer yields no indices.
func Indices(t Topology, n int) []uint32 {
	if n <= 0 {
		return nil
	}
	switch t {
	case Triangles:
		if n < 3 {
			return nil
		}
		idx := make([]uint32, 0, 3*(n-2))
		for i := 1; i < n-1; i++ {
			idx = append(idx, 0, uint32(i), uint32(i+1))
		}
		return idx
	default:
		idx := make([]uint32, n)
		for i := range idx {
			idx[i] = uint32(i)
		}
		return idx
	}
}

// Segments returns the closed outline of v as consecutive vertex pairs.
func Segments(v ngon.Sequence) [][2]r2.Vec {
	if len(v) < 2 {
		return nil
	}
	segs := make([][2]r2.Vec, 0, len(v))
	for i := range v {
		j := (i + 1) % len(v)
		if len(v) == 2 && j == 0 {
			break // a two vertex loop is a single segment.
		}
		segs = append(segs, [2]r2.Vec{v[i], v[j]})
	}
	return segs
}

// Vec2 converts a vertex to its single precision GPU representation.
func Vec2(v r2.Vec) ms2.Vec {
	return ms2.Vec{X: float32(v.X), Y: float32(v.Y)}
}

// Pack appends the x,y coordinates of every vertex after applying view to dst
// as interleaved float32 values and returns the result.
func Pack(dst []float32, v ngon.Sequence, view d2.Transform) []float32 {
	for _, vert := range v {
		g := Vec2(view.ApplyPos(vert))
		dst = append(dst, g.X, g.Y)
	}
	return dst
}

// NDC is the normalized device coordinate box.
var NDC = d2.Box{Min: r2.Vec{X: -1, Y: -1}, Max: r2.Vec{X: 1, Y: 1}}

// ViewTransform returns the transform that maps world coordinates in view to
// normalized device coordinates. The zero box maps world coordinates through
// unchanged, so vertices are already in NDC.
func ViewTransform(view d2.Box) d2.Transform {
	if view == (d2.Box{}) {
		return d2.Identity()
	}
	return d2.Fit(view, NDC)
}

// FitView returns a square view enclosing every mesh with a margin
// expressed as a fraction of its size. Meshes whose vertices all coincide
// get a 2x2 view around that point. Returns the zero box if the meshes
// have no vertices.
func FitView(meshes []ngon.Mesh, margin float64) d2.Box {
	bb, ok := ngon.MeshBounds(meshes)
	if !ok {
		return d2.Box{}
	}
	sq := bb.Square()
	if sq.Size().X == 0 {
		sq = d2.NewBox2(sq.Center(), d2.Elem(2))
	}
	return sq.ScaleAboutCenter(1 + margin)
}

// View selects the world box a renderer maps onto its output.
type View struct {
	// Box is a fixed world box. The zero box means vertices are already
	// in normalized device coordinates.
	Box d2.Box
	// Fit replaces Box with FitView of the meshes every time they change.
	Fit    bool
	Margin float64
}

// For returns the world box to use for meshes.
func (v View) For(meshes []ngon.Mesh) d2.Box {
	if !v.Fit {
		return v.Box
	}
	if box := FitView(meshes, v.Margin); box != (d2.Box{}) {
		return box
	}
	return v.Box
}

// White is the color used for meshes with a zero color.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// MeshColor returns c, or White if c is the zero color.
func MeshColor(c color.NRGBA) color.NRGBA {
	if c == (color.NRGBA{}) {
		return White
	}
	return c
}
