package d2

import (
	"gonum.org/v1/gonum/spatial/r2"
)

var identityT = Transform{data: [9]float64{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}}

// Transform represents a 2D affine transformation
// of translations and per-axis scaling.
type Transform struct {
	data [3 * 3]float64 // row major
}

// NewTransform returns a transform from 9 row major values.
func NewTransform(data []float64) Transform {
	if len(data) != 9 {
		panic("bad length")
	}
	t := Transform{}
	copy(t.data[:], data)
	return t
}

// Identity returns the identity transform.
func Identity() Transform {
	return identityT
}

// Translate returns a transform that translates by v.
func Translate(v r2.Vec) Transform {
	return NewTransform([]float64{
		1, 0, v.X,
		0, 1, v.Y,
		0, 0, 1,
	})
}

// Scale returns a transform that scales each axis by the components of k.
func Scale(k r2.Vec) Transform {
	return NewTransform([]float64{
		k.X, 0, 0,
		0, k.Y, 0,
		0, 0, 1,
	})
}

// Fit returns the transform that maps src onto dst. Axes are scaled
// independently. A degenerate src axis is mapped onto dst's center.
func Fit(src, dst Box) Transform {
	ss, ds := src.Size(), dst.Size()
	k := r2.Vec{X: 1, Y: 1}
	if ss.X != 0 {
		k.X = ds.X / ss.X
	}
	if ss.Y != 0 {
		k.Y = ds.Y / ss.Y
	}
	return Translate(dst.Center()).Mul(Scale(k)).Mul(Translate(r2.Scale(-1, src.Center())))
}

func (t Transform) At(i, j int) float64 {
	return t.data[i*3+j]
}

func (t *Transform) Set(i, j int, v float64) {
	t.data[i*3+j] = v
}

// Mul multiplies 3x3 matrices. The result applies b first, then a.
func (a Transform) Mul(b Transform) Transform {
	m := Transform{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, a.At(i, 0)*b.At(0, j)+a.At(i, 1)*b.At(1, j)+a.At(i, 2)*b.At(2, j))
		}
	}
	return m
}

func (t Transform) ApplyPos(b r2.Vec) r2.Vec {
	if t == identityT {
		return b
	}
	return r2.Vec{
		X: t.At(0, 0)*b.X + t.At(0, 1)*b.Y + t.At(0, 2),
		Y: t.At(1, 0)*b.X + t.At(1, 1)*b.Y + t.At(1, 2),
	}
}
