package pmesh

import (
	"math"

	"github.com/soypat/pmesh/internal/d2"
	"github.com/soypat/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ProjectionAxis is one of the six axis aligned half-directions used to
// select a planar projection.
type ProjectionAxis int

const (
	AxisX ProjectionAxis = iota
	AxisY
	AxisZ
	AxisXNegative
	AxisYNegative
	AxisZNegative

	numAxes = 6
)

func (a ProjectionAxis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	case AxisXNegative:
		return "-X"
	case AxisYNegative:
		return "-Y"
	case AxisZNegative:
		return "-Z"
	}
	return "unknown axis"
}

// VectorToProjectionAxis returns the axis half-direction most aligned
// with n. Ties favour Z, then Y.
func VectorToProjectionAxis(n r3.Vec) ProjectionAxis {
	a := d3.AbsElem(n)
	switch {
	case a.X > a.Y && a.X > a.Z:
		if n.X > 0 {
			return AxisX
		}
		return AxisXNegative
	case a.Y > a.Z:
		if n.Y > 0 {
			return AxisY
		}
		return AxisYNegative
	}
	if n.Z >= 0 {
		return AxisZ
	}
	return AxisZNegative
}

// ProjectionAxisToVector returns the unit vector of axis a.
func ProjectionAxisToVector(a ProjectionAxis) r3.Vec {
	switch a {
	case AxisX:
		return r3.Vec{X: 1}
	case AxisY:
		return r3.Vec{Y: 1}
	case AxisXNegative:
		return r3.Vec{X: -1}
	case AxisYNegative:
		return r3.Vec{Y: -1}
	case AxisZNegative:
		return r3.Vec{Z: -1}
	}
	return r3.Vec{Z: 1}
}

// tangentToAxis is the up direction of the projection plane of a.
func tangentToAxis(a ProjectionAxis) r3.Vec {
	switch a {
	case AxisY, AxisYNegative:
		return r3.Vec{Z: 1}
	}
	return r3.Vec{Y: 1}
}

// PlanarProject projects points onto the plane whose normal is the axis
// half-direction closest to normal.
func PlanarProject(points []r3.Vec, normal r3.Vec) []r2.Vec {
	return PlanarProjectAxis(points, normal, VectorToProjectionAxis(normal))
}

// PlanarProjectAxis projects points onto the plane with the given normal
// using axis to pick the plane's up direction. The U axis points right when
// looking at the plane against its normal and V completes a right handed
// frame. A zero normal is replaced by the axis vector.
func PlanarProjectAxis(points []r3.Vec, normal r3.Vec, axis ProjectionAxis) []r2.Vec {
	n := d3.Unit(normal)
	if d3.IsZero(n) {
		n = ProjectionAxisToVector(axis)
	}
	u := d3.Unit(r3.Cross(tangentToAxis(axis), n))
	if d3.IsZero(u) {
		// normal parallel to the tangent, only possible with an explicit axis.
		n = ProjectionAxisToVector(axis)
		u = d3.Unit(r3.Cross(tangentToAxis(axis), n))
	}
	v := d3.Unit(r3.Cross(n, u))
	uvs := make([]r2.Vec, len(points))
	for i, p := range points {
		uvs[i] = r2.Vec{X: r3.Dot(u, p), Y: r3.Dot(v, p)}
	}
	return uvs
}

// SphericalProject maps points to longitude/latitude coordinates around
// their centroid. Both coordinates fall in [0,1].
func SphericalProject(points []r3.Vec) []r2.Vec {
	center := d3.Set(points).Average()
	uvs := make([]r2.Vec, len(points))
	for i, p := range points {
		d := d3.Unit(r3.Sub(p, center))
		if d3.IsZero(d) {
			uvs[i] = r2.Vec{X: .5, Y: .5}
			continue
		}
		uvs[i] = r2.Vec{
			X: .5 + math.Atan2(d.Z, d.X)/tau,
			Y: .5 - math.Asin(d.Y)/pi,
		}
	}
	return uvs
}

// FitUVs translates uvs so their minimum is the origin and scales them
// uniformly so the largest extent is 1. A set with no extent is only
// translated.
func FitUVs(uvs []r2.Vec) {
	if len(uvs) == 0 {
		return
	}
	s := d2.Set(uvs)
	min := s.Min()
	for i := range uvs {
		uvs[i] = r2.Sub(uvs[i], min)
	}
	scale := d2.Max(s.Max())
	if scale == 0 {
		return
	}
	for i, uv := range uvs {
		uvs[i] = r2.Vec{X: uv.X / scale, Y: uv.Y / scale}
	}
}

// stretchUVs maps uvs onto the unit square, scaling each axis independently.
func stretchUVs(uvs []r2.Vec) {
	if len(uvs) == 0 {
		return
	}
	b := d2.Set(uvs).Bounds()
	size := b.Size()
	for i := range uvs {
		uvs[i] = d2.DivElem(r2.Sub(uvs[i], b.Min), size)
	}
}

// BoxBuckets assigns every face to the projection axis closest to its
// normal. Each face lands in exactly one bucket, buckets keep the input
// order.
func BoxBuckets(faces []*Face, normal func(*Face) r3.Vec) [numAxes][]*Face {
	var buckets [numAxes][]*Face
	for _, f := range faces {
		a := VectorToProjectionAxis(normal(f))
		buckets[a] = append(buckets[a], f)
	}
	return buckets
}
