// Package form3 builds editable meshes: box and plane primitives and
// tessellations of signed distance functions.
package form3

import (
	"runtime/debug"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/soypat/pmesh"
	"github.com/soypat/pmesh/form3/must3"
	pmrender "github.com/soypat/pmesh/render"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cube returns a box mesh of the given size centered at the origin with
// one quad face per side.
func Cube(size r3.Vec) (m *pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Cube(size), err
}

// Plane returns a subdivided plane mesh on the XY plane facing +Z.
func Plane(size r2.Vec, divX, divY int) (m *pmesh.Mesh, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return must3.Plane(size, divX, divY), err
}

// FromSDF tessellates s with uniform marching cubes using cells cells along
// the longest side of its bounding box and returns the welded result.
func FromSDF(s sdf.SDF3, cells int) (*pmesh.Mesh, error) {
	if s == nil {
		return nil, ErrMsg("nil SDF3")
	}
	if cells < 2 {
		return nil, ErrMsg("cells < 2")
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return nil, ErrMsg("SDF3 produced no triangles")
	}
	model := make([]pmrender.Triangle3, len(triangles))
	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			model[i][j] = r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
		}
	}
	return pmrender.FromTriangles(model, 0)
}

// Sphere returns a tessellated sphere of the given radius centered at the
// origin.
func Sphere(radius float64, cells int) (*pmesh.Mesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, err
	}
	return FromSDF(s, cells)
}
