// Package must3 builds editable mesh primitives. Constructors panic on
// invalid arguments; see package form3 for error returning versions.
package must3

import (
	"github.com/soypat/pmesh"
	"github.com/soypat/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// weldTol is the distance under which primitive vertices are welded.
const weldTol = 1e-9

// cubeSides lists the outward normal and the in-plane axes u, v of every
// cube side such that cross(u, v) equals the normal.
var cubeSides = [6][3]r3.Vec{
	{{X: 1}, {Y: 1}, {Z: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {Z: 1}, {X: 1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {Y: 1}, {X: 1}},
}

// Cube returns a box of the given size centered at the origin. Each side
// is a quad face with its own four vertices. Coincident corners are welded.
func Cube(size r3.Vec) *pmesh.Mesh {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		panic("size <= 0")
	}
	half := r3.Scale(0.5, size)
	positions := make([]r3.Vec, 0, 24)
	faces := make([]*pmesh.Face, 0, 6)
	for i, side := range cubeSides {
		n, u, v := side[0], side[1], side[2]
		c := d3.MulElem(n, half)
		hu := d3.MulElem(u, half)
		hv := d3.MulElem(v, half)
		positions = append(positions,
			r3.Sub(r3.Sub(c, hu), hv),
			r3.Sub(r3.Add(c, hu), hv),
			r3.Add(r3.Add(c, hu), hv),
			r3.Add(r3.Sub(c, hu), hv),
		)
		faces = append(faces, mustFace(quad(4*i, 4*i+1, 4*i+2, 4*i+3)))
	}
	m, err := pmesh.NewMesh(positions, faces)
	if err != nil {
		panic(err)
	}
	m.WeldCoincident(weldTol)
	return m
}

// Plane returns a grid of div.X by div.Y quads lying on the XY plane,
// centered at the origin and facing +Z. Grid vertices are shared
// between neighbouring quads.
func Plane(size r2.Vec, divX, divY int) *pmesh.Mesh {
	if size.X <= 0 || size.Y <= 0 {
		panic("size <= 0")
	}
	if divX < 1 || divY < 1 {
		panic("divisions < 1")
	}
	stride := divX + 1
	positions := make([]r3.Vec, 0, stride*(divY+1))
	for j := 0; j <= divY; j++ {
		for i := 0; i <= divX; i++ {
			positions = append(positions, r3.Vec{
				X: size.X * (float64(i)/float64(divX) - 0.5),
				Y: size.Y * (float64(j)/float64(divY) - 0.5),
			})
		}
	}
	faces := make([]*pmesh.Face, 0, divX*divY)
	for j := 0; j < divY; j++ {
		for i := 0; i < divX; i++ {
			a := j*stride + i
			faces = append(faces, mustFace(quad(a, a+1, a+1+stride, a+stride)))
		}
	}
	m, err := pmesh.NewMesh(positions, faces)
	if err != nil {
		panic(err)
	}
	return m
}

// quad triangulates the counter-clockwise quad abcd.
func quad(a, b, c, d int) []int {
	return []int{a, b, c, a, c, d}
}

func mustFace(triangles []int) *pmesh.Face {
	f, err := pmesh.NewFace(triangles)
	if err != nil {
		panic(err)
	}
	return f
}
