package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// R2 vector helpers for UV space. Angles are in radians and
// positive angles rotate counter-clockwise.

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

func Max(a r2.Vec) float64 {
	return math.Max(a.X, a.Y)
}

// DivElem divides a by b component-wise. Components where b is zero
// are left untouched.
func DivElem(a, b r2.Vec) r2.Vec {
	if b.X != 0 {
		a.X /= b.X
	}
	if b.Y != 0 {
		a.Y /= b.Y
	}
	return a
}

// Dist returns the euclidean distance between a and b.
func Dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Mid returns the midpoint of a and b.
func Mid(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}

// Perpendicular returns a rotated 90 degrees counter-clockwise.
func Perpendicular(a r2.Vec) r2.Vec {
	return r2.Vec{X: -a.Y, Y: a.X}
}

// Angle returns the unsigned angle between a and b in [0, pi].
func Angle(a, b r2.Vec) float64 {
	na, nb := r2.Norm(a), r2.Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	c := r2.Dot(a, b) / (na * nb)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// SignedAngle returns the angle that rotates from onto to, in (-pi, pi].
func SignedAngle(from, to r2.Vec) float64 {
	return math.Atan2(r2.Cross(from, to), r2.Dot(from, to))
}

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

// Average returns the centroid of the set. The zero vector is
// returned for an empty set.
func (a Set) Average() r2.Vec {
	if len(a) == 0 {
		return r2.Vec{}
	}
	var sum r2.Vec
	for _, v := range a {
		sum = r2.Add(sum, v)
	}
	return r2.Scale(1/float64(len(a)), sum)
}

// Bounds returns the bounding box of the set.
func (a Set) Bounds() Box {
	return Box{Min: a.Min(), Max: a.Max()}
}

// Nearest returns the element of the set closest to p. If the
// set is empty p is returned.
func (a Set) Nearest(p r2.Vec) r2.Vec {
	if len(a) == 0 {
		return p
	}
	nearest := a[0]
	best := Dist(p, nearest)
	for _, v := range a[1:] {
		if d := Dist(p, v); d < best {
			best = d
			nearest = v
		}
	}
	return nearest
}
