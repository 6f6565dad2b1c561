package d2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-12

func TestDegreeConversion(t *testing.T) {
	for _, test := range []struct {
		deg, rad float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{270, 3 * math.Pi / 2},
		{-45, -math.Pi / 4},
	} {
		assert.InDelta(t, test.rad, DegToRad(test.deg), tol, "deg %g", test.deg)
		assert.InDelta(t, test.deg, RadToDeg(test.rad), tol, "rad %g", test.rad)
	}
}

func TestAngle(t *testing.T) {
	c := r2.Vec{X: 2, Y: 3}
	assert.InDelta(t, 0, Angle(c, r2.Vec{X: 3, Y: 3}), tol)
	assert.InDelta(t, math.Pi/2, Angle(c, r2.Vec{X: 2, Y: 4}), tol)
	assert.InDelta(t, math.Pi, Angle(c, r2.Vec{X: 1, Y: 3}), tol)
	assert.InDelta(t, 3*math.Pi/2, WrapAngle(Angle(c, r2.Vec{X: 2, Y: 2})), tol)
	assert.InDelta(t, 0.5, WrapAngle(2*math.Pi+0.5), tol)
}

func TestPolar(t *testing.T) {
	for _, test := range []struct {
		p    Pol
		want r2.Vec
	}{
		{Pol{R: 2, Theta: 0}, r2.Vec{X: 2}},
		{Pol{R: 2, Theta: math.Pi / 2}, r2.Vec{Y: 2}},
		{Pol{R: 1, Theta: math.Pi}, r2.Vec{X: -1}},
		{Pol{R: 0, Theta: 1.3}, r2.Vec{}},
		{Pol{R: -1, Theta: 0}, r2.Vec{X: -1}},
	} {
		got := test.p.PolarToCartesian()
		assert.True(t, EqualWithin(got, test.want, tol), "%+v: got %v want %v", test.p, got, test.want)
	}
}

func TestSetBounds(t *testing.T) {
	s := Set{{X: -1, Y: 2}, {X: 3, Y: -4}, {X: 0, Y: 0}}
	b := s.Bounds()
	assert.Equal(t, r2.Vec{X: -1, Y: -4}, b.Min)
	assert.Equal(t, r2.Vec{X: 3, Y: 2}, b.Max)
	assert.True(t, b.Contains(r2.Vec{}))
	sq := b.Square()
	assert.InDelta(t, sq.Size().X, sq.Size().Y, tol)
	assert.InDelta(t, 6, sq.Size().X, tol)

	c := s.Clone()
	c[0].X = 100
	assert.Equal(t, -1.0, s[0].X)
	assert.Nil(t, Set(nil).Clone())
}

func TestFit(t *testing.T) {
	src := Box{Min: r2.Vec{X: 10, Y: 10}, Max: r2.Vec{X: 20, Y: 30}}
	dst := Box{Min: r2.Vec{X: -1, Y: -1}, Max: r2.Vec{X: 1, Y: 1}}
	fit := Fit(src, dst)
	for i, v := range src.Vertices() {
		got := fit.ApplyPos(v)
		want := dst.Vertices()[i]
		assert.True(t, EqualWithin(got, want, tol), "corner %d: got %v want %v", i, got, want)
	}
	require.True(t, EqualWithin(fit.ApplyPos(src.Center()), dst.Center(), tol))
}

func TestBoxInclude(t *testing.T) {
	b := Box{Min: r2.Vec{X: 1, Y: 1}, Max: r2.Vec{X: 1, Y: 1}}
	b = b.Include(r2.Vec{X: -2, Y: 3})
	assert.Equal(t, Box{Min: r2.Vec{X: -2, Y: 1}, Max: r2.Vec{X: 1, Y: 3}}, b)
	assert.Equal(t, b, b.Include(r2.Vec{Y: 2}), "inner point leaves box unchanged")
}

func TestTransformCompose(t *testing.T) {
	tr := Translate(r2.Vec{X: 1, Y: 2}).Mul(Scale(r2.Vec{X: 3, Y: -1}))
	got := tr.ApplyPos(r2.Vec{X: 1, Y: 1})
	assert.Equal(t, r2.Vec{X: 4, Y: 1}, got, "scale applies first")
	assert.Equal(t, r2.Vec{X: 5, Y: 7}, Identity().ApplyPos(r2.Vec{X: 5, Y: 7}))
}
