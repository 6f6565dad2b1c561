package ngon

import (
	"fmt"
	"math"

	"github.com/soypat/ngon/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon describes a regular polygon inscribed in the circle of the given
// Radius around Center. The zero value is invalid since it has no sides.
//
// A non-positive Radius or fewer than 3 sides is accepted and yields
// degenerate (coincident, inverted or collinear) vertices.
type Polygon struct {
	Center r2.Vec
	Radius float64
	Sides  uint
}

// MaxSides is the largest side count a Polygon accepts.
const MaxSides = 1 << 24

// Omega returns the angular step between consecutive vertices in degrees.
func (p Polygon) Omega() (float64, error) {
	if p.Sides == 0 {
		return 0, errZeroSides()
	}
	if p.Sides > MaxSides {
		return 0, &ConfigError{Field: "sides", Value: p.Sides, Err: ErrInvalidConfiguration}
	}
	return 360 / float64(p.Sides), nil
}

// Vertex returns the i'th vertex of the polygon.
func (p Polygon) Vertex(i int) (r2.Vec, error) {
	omega, err := p.Omega()
	if err != nil {
		return r2.Vec{}, err
	}
	if i < 0 || uint(i) >= p.Sides {
		return r2.Vec{}, fmt.Errorf("vertex %d of %d-gon: %w", i, p.Sides, ErrIndexOutOfRange)
	}
	return p.vertex(i, omega), nil
}

// vertex does no validation. Both cos and sin are evaluated on the same
// radian value so repeated calls are bitwise identical.
func (p Polygon) vertex(i int, omega float64) r2.Vec {
	offset := d2.Pol{R: p.Radius, Theta: d2.DegToRad(float64(i) * omega)}.PolarToCartesian()
	return r2.Add(p.Center, offset)
}

// Vertices returns the polygon's Sides vertices starting at angle 0 and
// advancing counterclockwise.
func (p Polygon) Vertices() (Sequence, error) {
	if _, err := p.Omega(); err != nil {
		return nil, err
	}
	return p.AppendVertices(make(Sequence, 0, p.Sides))
}

// AppendVertices appends the polygon's vertices to dst and returns the result.
// On error dst is returned unmodified.
func (p Polygon) AppendVertices(dst Sequence) (Sequence, error) {
	omega, err := p.Omega()
	if err != nil {
		return dst, err
	}
	for i := 0; uint(i) < p.Sides; i++ {
		dst = append(dst, p.vertex(i, omega))
	}
	return dst, nil
}

// Kind returns KindPolygon.
func (p Polygon) Kind() Kind { return KindPolygon }

// Bounds returns the box enclosing the polygon's circumscribed circle.
func (p Polygon) Bounds() d2.Box {
	r := math.Abs(p.Radius)
	return d2.NewBox2(p.Center, d2.Elem(2*r))
}

// Scaled returns a copy of the polygon with its radius multiplied by k.
func (p Polygon) Scaled(k float64) Polygon {
	p.Radius *= k
	return p
}

// SideLength returns the length of each polygon edge.
func (p Polygon) SideLength() (float64, error) {
	omega, err := p.Omega()
	if err != nil {
		return 0, err
	}
	return 2 * math.Abs(p.Radius) * math.Sin(d2.DegToRad(omega)/2), nil
}

func (p Polygon) String() string {
	return fmt.Sprintf("%d-gon(center=(%g,%g) r=%g)", p.Sides, p.Center.X, p.Center.Y, p.Radius)
}
