package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 { return degrees * degToRad }

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 { return radians * radToDeg }

func Elem(sides float64) r2.Vec {
	return r2.Vec{
		X: sides,
		Y: sides,
	}
}

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// Dist returns the euclidean distance between a and b.
func Dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Angle returns the angle of p as seen from center, measured counterclockwise
// from the positive x axis. Result is in radians in (-π, π].
func Angle(center, p r2.Vec) float64 {
	d := r2.Sub(p, center)
	return math.Atan2(d.Y, d.X)
}

// WrapAngle maps an angle in radians onto [0, 2π).
func WrapAngle(radians float64) float64 {
	a := math.Mod(radians, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Set is an ordered sequence of vertices. Order is significant.
type Set []r2.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Bounds returns the smallest box containing all vertices of the set.
// It panics on an empty set.
func (a Set) Bounds() Box {
	return Box{Min: a.Min(), Max: a.Max()}
}

// Clone returns a copy of the set with its own backing array.
func (a Set) Clone() Set {
	if a == nil {
		return nil
	}
	b := make(Set, len(a))
	copy(b, a)
	return b
}

// Transform returns a new set with t applied to every vertex.
func (a Set) Transform(t Transform) Set {
	b := make(Set, len(a))
	for i, v := range a {
		b[i] = t.ApplyPos(v)
	}
	return b
}

// Pol is a polar coordinate. Theta is in radians.
type Pol struct {
	R, Theta float64
}

// PolarToCartesian converts a polar to a cartesian coordinate.
func (a Pol) PolarToCartesian() r2.Vec {
	return r2.Vec{X: a.R * math.Cos(a.Theta), Y: a.R * math.Sin(a.Theta)}
}
