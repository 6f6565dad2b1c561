// Package ngon generates the vertices of regular polygons and other simple
// 2D shapes for consumption by a renderer.
//
// Vertices are gonum r2.Vec values. A regular polygon places vertex 0 at
// angle 0 measured from the positive x axis around its center and advances
// counterclockwise by 360/Sides degrees per vertex.
package ngon

import (
	"errors"
	"fmt"

	"github.com/soypat/ngon/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const tolerance = 1e-9

var (
	// ErrInvalidConfiguration is returned when a shape cannot be computed from
	// its parameters, such as a polygon with zero sides.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrIndexOutOfRange is returned when a vertex index is outside [0, Sides).
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	// ErrEmptyShape is returned by shapes with no vertices to draw.
	ErrEmptyShape = errors.New("shape has no vertices")
)

// Sequence is an ordered, owned sequence of vertices. The order
// determines winding and which vertex pairs form edges when drawn.
type Sequence = d2.Set

// Vec returns the vector (x, y).
func Vec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

// ConfigError describes a rejected shape parameter.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func errZeroSides() error {
	return &ConfigError{Field: "sides", Value: 0, Err: ErrInvalidConfiguration}
}
