package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector helpers for mesh positions and normals.

func Elem(sides float64) r3.Vec {
	return r3.Vec{
		X: sides,
		Y: sides,
		Z: sides,
	}
}

func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// MulElem returns the element-wise product of a and b.
func MulElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

func AbsElem(a r3.Vec) r3.Vec {
	return r3.Vec{
		X: math.Abs(a.X),
		Y: math.Abs(a.Y),
		Z: math.Abs(a.Z),
	}
}

// Unit returns a normalized. Unlike r3.Unit the zero vector is returned
// unchanged instead of NaNs.
func Unit(a r3.Vec) r3.Vec {
	n := r3.Norm(a)
	if n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/n, a)
}

// IsZero reports whether all components of a are zero.
func IsZero(a r3.Vec) bool {
	return a.X == 0 && a.Y == 0 && a.Z == 0
}

// TriangleNormal returns the non-normalized normal of the counter-clockwise
// triangle abc. Its length is twice the triangle's area.
func TriangleNormal(a, b, c r3.Vec) r3.Vec {
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

type Set []r3.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r3.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r3.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Average returns the centroid of the set, or the zero vector for an empty set.
func (a Set) Average() r3.Vec {
	if len(a) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, v := range a {
		sum = r3.Add(sum, v)
	}
	return r3.Scale(1/float64(len(a)), sum)
}

// Bounds returns the bounding box of a non-empty set.
func (a Set) Bounds() Box {
	return Box{Min: a.Min(), Max: a.Max()}
}
