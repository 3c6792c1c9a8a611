package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Transform represents a 2D affine transformation stored as a
// row-major homogeneous 3x3 matrix.
type Transform struct {
	data [3 * 3]float64 // stack stronk
}

var identityT = Transform{data: [9]float64{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}}

// Identity returns the identity transform.
func Identity() Transform {
	return identityT
}

// Translation returns a transform that translates by v.
func Translation(v r2.Vec) Transform {
	t := identityT
	t.Set(0, 2, v.X)
	t.Set(1, 2, v.Y)
	return t
}

// Rotation returns a transform that rotates about the origin by theta radians.
func Rotation(theta float64) Transform {
	s, c := math.Sincos(theta)
	t := identityT
	t.Set(0, 0, c)
	t.Set(0, 1, -s)
	t.Set(1, 0, s)
	t.Set(1, 1, c)
	return t
}

// Scaling returns a transform that scales each axis about the origin.
func Scaling(k r2.Vec) Transform {
	t := identityT
	t.Set(0, 0, k.X)
	t.Set(1, 1, k.Y)
	return t
}

// About conjugates t so that it acts about point p instead of the origin.
func (t Transform) About(p r2.Vec) Transform {
	return Translation(p).Mul(t).Mul(Translation(r2.Scale(-1, p)))
}

func (t *Transform) At(i, j int) float64 {
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

// ApplySet transforms every vector of s in place.
func (t Transform) ApplySet(s Set) {
	for i := range s {
		s[i] = t.ApplyPos(s[i])
	}
}
