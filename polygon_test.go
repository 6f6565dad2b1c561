package ngon

import (
	"errors"
	"math"
	"sync"
	"testing"

	sdfx "github.com/deadsy/sdfx/sdf"
	"github.com/soypat/ngon/internal/d2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPolygonSideCount(t *testing.T) {
	for n := uint(3); n <= 64; n++ {
		p := Polygon{Center: Vec(0.25, -3), Radius: 1.5, Sides: n}
		v, err := p.Vertices()
		require.NoError(t, err)
		assert.Len(t, v, int(n))
	}
}

func TestPolygonOnCircle(t *testing.T) {
	for _, p := range []Polygon{
		{Radius: 1, Sides: 3},
		{Center: Vec(2, 3), Radius: 0.5, Sides: 3},
		{Center: Vec(-10, 4), Radius: 7, Sides: 17},
		{Center: Vec(1e3, 1e3), Radius: 1e-3, Sides: 360},
	} {
		v, err := p.Vertices()
		require.NoError(t, err)
		for i, vert := range v {
			assert.InDelta(t, p.Radius, d2.Dist(vert, p.Center), tolerance*math.Max(1, p.Radius), "%v vertex %d", p, i)
		}
	}
}

func TestPolygonRotationalSymmetry(t *testing.T) {
	for _, n := range []uint{3, 4, 5, 6, 7, 12, 100} {
		p := Polygon{Center: Vec(2, 3), Radius: 4, Sides: n}
		v, err := p.Vertices()
		require.NoError(t, err)
		want := d2.DegToRad(360 / float64(n))
		for i := range v {
			a := d2.Angle(p.Center, v[i])
			b := d2.Angle(p.Center, v[(i+1)%len(v)]) // includes wrap-around pair
			step := d2.WrapAngle(b - a)
			assert.InDelta(t, want, step, 1e-9, "n=%d i=%d", n, i)
		}
	}
}

func TestPolygonIdempotent(t *testing.T) {
	p := Polygon{Center: Vec(0.1, 0.2), Radius: 0.3, Sides: 11}
	a, err := p.Vertices()
	require.NoError(t, err)
	b, err := p.Vertices()
	require.NoError(t, err)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, math.Float64bits(a[i].X), math.Float64bits(b[i].X))
		assert.Equal(t, math.Float64bits(a[i].Y), math.Float64bits(b[i].Y))
	}
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestPolygonZeroSides(t *testing.T) {
	p := Polygon{Radius: 1}
	v, err := p.Vertices()
	assert.Nil(t, v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "sides", cerr.Field)

	_, err = p.Omega()
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = p.Vertex(0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	dst := Sequence{Vec(1, 1)}
	got, err := p.AppendVertices(dst)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, dst, got)
}

func TestPolygonTooManySides(t *testing.T) {
	for _, sides := range []uint{MaxSides + 1, ^uint(0)} {
		p := Polygon{Radius: 1, Sides: sides}
		v, err := p.Vertices()
		assert.Nil(t, v)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		var cerr *ConfigError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "sides", cerr.Field)
		_, err = p.Vertex(0)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	}
	_, err := NewModel(Polygon{Radius: 1, Sides: ^uint(0)})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	m, err := NewModel(Polygon{Radius: 1, Sides: 3})
	require.NoError(t, err)
	assert.ErrorIs(t, m.SetSides(MaxSides+1), ErrInvalidConfiguration)
	assert.Equal(t, uint(3), m.Sides())
}

func TestPolygonSquare(t *testing.T) {
	p := Polygon{Center: Vec(0, 0), Radius: 1, Sides: 4}
	v, err := p.Vertices()
	require.NoError(t, err)
	want := Sequence{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}
	require.Len(t, v, len(want))
	for i := range want {
		assert.True(t, d2.EqualWithin(v[i], want[i], tolerance), "vertex %d: got %v want %v", i, v[i], want[i])
	}
}

func TestPolygonTriangleOffCenter(t *testing.T) {
	p := Polygon{Center: Vec(2, 3), Radius: 0.5, Sides: 3}
	v, err := p.Vertices()
	require.NoError(t, err)
	require.Len(t, v, 3)
	for i := range v {
		assert.InDelta(t, 0.5, d2.Dist(v[i], p.Center), tolerance)
		step := d2.WrapAngle(d2.Angle(p.Center, v[(i+1)%3]) - d2.Angle(p.Center, v[i]))
		assert.InDelta(t, 120, d2.RadToDeg(step), 1e-9)
	}
	side, err := p.SideLength()
	require.NoError(t, err)
	assert.InDelta(t, side, d2.Dist(v[0], v[1]), tolerance)
}

func TestPolygonRadialScaling(t *testing.T) {
	p := Polygon{Center: Vec(-1, 5), Radius: 1, Sides: 9}
	small, err := p.Vertices()
	require.NoError(t, err)
	large, err := p.Scaled(2).Vertices()
	require.NoError(t, err)
	for i := range small {
		ds := r2.Sub(small[i], p.Center)
		dl := r2.Sub(large[i], p.Center)
		assert.True(t, d2.EqualWithin(r2.Scale(2, ds), dl, tolerance), "vertex %d", i)
		assert.InDelta(t, d2.Angle(p.Center, small[i]), d2.Angle(p.Center, large[i]), 1e-12)
	}
}

func TestPolygonDegenerate(t *testing.T) {
	v, err := Polygon{Center: Vec(3, 4), Radius: 0, Sides: 5}.Vertices()
	require.NoError(t, err)
	for _, vert := range v {
		assert.Equal(t, Vec(3, 4), vert)
	}

	v, err = Polygon{Radius: 1, Sides: 2}.Vertices()
	require.NoError(t, err)
	require.Len(t, v, 2)
	assert.True(t, d2.EqualWithin(v[1], Vec(-1, 0), tolerance))

	v, err = Polygon{Radius: -1, Sides: 4}.Vertices()
	require.NoError(t, err)
	assert.True(t, d2.EqualWithin(v[0], Vec(-1, 0), tolerance), "negative radius inverts")
}

func TestPolygonVertexIndex(t *testing.T) {
	p := Polygon{Radius: 2, Sides: 6}
	all, err := p.Vertices()
	require.NoError(t, err)
	for i := range all {
		v, err := p.Vertex(i)
		require.NoError(t, err)
		assert.Equal(t, all[i], v)
	}
	_, err = p.Vertex(6)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = p.Vertex(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPolygonMatchesSDFX(t *testing.T) {
	for _, n := range []int{3, 4, 5, 6, 8, 13, 32} {
		const radius = 2.5
		got, err := Polygon{Radius: radius, Sides: uint(n)}.Vertices()
		require.NoError(t, err)
		want := sdfx.Nagon(n, radius)
		require.Len(t, got, len(want))
		for i := range want {
			w := r2.Vec{X: want[i].X, Y: want[i].Y}
			assert.True(t, d2.EqualWithin(got[i], w, 1e-9), "n=%d vertex %d: got %v want %v", n, i, got[i], w)
		}
	}
}

func TestPolygonConcurrentReaders(t *testing.T) {
	p := Polygon{Center: Vec(1, 1), Radius: 3, Sides: 33}
	want, err := p.Vertices()
	require.NoError(t, err)
	fp := Fingerprint(want)
	var wg sync.WaitGroup
	results := make([]uint64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := p.Vertices()
			if err == nil {
				results[i] = Fingerprint(v)
			}
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, fp, got)
	}
}

func TestShapeFactory(t *testing.T) {
	s, err := NewShape(KindPolygon)
	require.NoError(t, err)
	_, err = s.Vertices()
	assert.ErrorIs(t, err, ErrInvalidConfiguration, "zero polygon has no sides")

	s, err = NewShape(KindPoints)
	require.NoError(t, err)
	_, err = s.Vertices()
	assert.ErrorIs(t, err, ErrEmptyShape)

	_, err = NewShape(Kind(99))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	for _, k := range []Kind{KindPolygon, KindPoints} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	for _, st := range []Style{StyleVertex, StyleLine, StyleFill} {
		got, err := ParseStyle(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	_, err = ParseStyle("wireframe")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestPoints(t *testing.T) {
	quad := Points{{X: 0.5, Y: 0.5}, {X: 0.5, Y: -0.5}, {X: -0.5, Y: -0.5}, {X: -0.5, Y: 0.5}}
	v, err := quad.Vertices()
	require.NoError(t, err)
	assert.Equal(t, Sequence(quad), v)
	v[0].X = 9
	assert.Equal(t, 0.5, quad[0].X, "Vertices must return a copy")
	bb := quad.Bounds()
	assert.Equal(t, Vec(-0.5, -0.5), bb.Min)
	assert.Equal(t, Vec(0.5, 0.5), bb.Max)
}
