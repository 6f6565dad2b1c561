// Package glrender draws ngon meshes with OpenGL through a GLFW window.
// All functions must be called from the goroutine that owns the GL context,
// which must be locked to its OS thread with runtime.LockOSThread.
package glrender

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/all-core/gl"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/ngon"
	"github.com/soypat/ngon/render"
	"go.uber.org/zap"
)

// Config configures a Renderer.
type Config struct {
	// ShaderSource is a combined vertex/fragment source in glgl format.
	// Nil selects render.DefaultShader.
	ShaderSource []byte
	// PointSize is the pixel size of points drawn for ngon.StyleVertex.
	PointSize float32
	// View selects the world box mapped onto the window. It is evaluated
	// on every upload so fitted views follow the meshes.
	View render.View
	Log  *zap.Logger
}

// Renderer owns the GPU buffers of a set of meshes and the program that draws them.
type Renderer struct {
	prog     glgl.Program
	progID   uint32
	colorLoc int32
	cfg      Config
	log      *zap.Logger
	meshes   []glMesh
	uploaded uint64 // fingerprint of uploaded meshes.
	scratch  []float32
}

type glMesh struct {
	name  string
	vao   uint32
	vbo   uint32
	ebo   uint32
	count int32
	mode  uint32
	color [4]float32
}

// New compiles the configured shader program. A GL context must be current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing GL bindings: %w", err)
	}
	src := cfg.ShaderSource
	if src == nil {
		src = render.DefaultShader
	}
	combined, err := glgl.ParseCombined(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing shader: %w", err)
	}
	prog, err := glgl.CompileProgram(combined)
	if err != nil {
		return nil, errors.New(string(combined.Vertex) + "\n" + string(combined.Fragment) + "\n" + err.Error())
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{prog: prog, cfg: cfg, log: log}
	prog.Bind()
	var id int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &id)
	r.progID = uint32(id)
	r.colorLoc = gl.GetUniformLocation(r.progID, gl.Str("color\x00"))
	if r.colorLoc < 0 {
		log.Warn("shader has no color uniform")
	}
	if cfg.PointSize > 0 {
		gl.PointSize(math32.Max(1, cfg.PointSize))
	}
	return r, nil
}

// Upload replaces the meshes on the GPU. It is a no-op when the meshes are
// bitwise identical to the last upload.
func (r *Renderer) Upload(meshes []ngon.Mesh) error {
	fp := ngon.MeshesFingerprint(meshes)
	if r.uploaded != 0 && fp == r.uploaded && len(meshes) == len(r.meshes) {
		r.log.Debug("meshes unchanged, skipping upload")
		return nil
	}
	r.release()
	box := r.cfg.View.For(meshes)
	view := render.ViewTransform(box)
	for _, m := range meshes {
		topo := render.TopologyFor(m.Style)
		idx := render.Indices(topo, len(m.Vertices))
		if len(idx) == 0 {
			r.log.Debug("mesh has nothing to draw", zap.String("mesh", m.Name), zap.Stringer("topology", topo))
			continue
		}
		r.scratch = render.Pack(r.scratch[:0], m.Vertices, view)
		gm := glMesh{
			name:  m.Name,
			count: int32(len(idx)),
			mode:  glMode(topo),
			color: rgba(render.MeshColor(m.Color)),
		}
		gl.GenVertexArrays(1, &gm.vao)
		gl.BindVertexArray(gm.vao)

		gl.GenBuffers(1, &gm.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, 4*len(r.scratch), gl.Ptr(r.scratch), gl.STATIC_DRAW)

		gl.GenBuffers(1, &gm.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(idx), gl.Ptr(idx), gl.STATIC_DRAW)

		gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(0)
		gl.BindVertexArray(0)
		// Appended before the error check so release frees its buffers.
		r.meshes = append(r.meshes, gm)
		if err := glError(); err != nil {
			r.release()
			return fmt.Errorf("uploading mesh %q: %w", m.Name, err)
		}
		r.log.Debug("mesh uploaded", zap.String("mesh", m.Name), zap.Int("vertices", len(m.Vertices)), zap.Stringer("topology", topo))
	}
	r.uploaded = fp
	r.log.Debug("view", zap.Float64s("min", []float64{box.Min.X, box.Min.Y}), zap.Float64s("max", []float64{box.Max.X, box.Max.Y}))
	return nil
}

// Draw issues one draw call per uploaded mesh in upload order.
func (r *Renderer) Draw() {
	r.prog.Bind()
	for _, m := range r.meshes {
		if r.colorLoc >= 0 {
			gl.Uniform4f(r.colorLoc, m.color[0], m.color[1], m.color[2], m.color[3])
		}
		gl.BindVertexArray(m.vao)
		gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	gl.BindVertexArray(0)
}

// Delete frees all GPU resources held by the renderer.
func (r *Renderer) Delete() {
	r.release()
	gl.DeleteProgram(r.progID)
}

func (r *Renderer) release() {
	for _, m := range r.meshes {
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteVertexArrays(1, &m.vao)
	}
	r.meshes = r.meshes[:0]
	r.uploaded = 0
}

func glMode(t render.Topology) uint32 {
	switch t {
	case render.LineLoop:
		return gl.LINE_LOOP
	case render.Triangles:
		return gl.TRIANGLES
	}
	return gl.POINTS
}

func rgba(c color.NRGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

func glError() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}
