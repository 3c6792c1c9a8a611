// Package render exports editable meshes as triangles: STL files, fauxgl
// meshes for previews and UV layout plots. It also imports triangle soups
// back into welded editable meshes.
package render

import (
	"io"

	"github.com/google/uuid"
	"github.com/soypat/pmesh"
	"github.com/soypat/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams triangles. ReadTriangles returns io.EOF once all
// triangles have been read.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle with counter-clockwise winding.
type Triangle3 [3]r3.Vec

// Normal returns the unit normal of the triangle.
func (t Triangle3) Normal() r3.Vec {
	return d3.Unit(d3.TriangleNormal(t[0], t[1], t[2]))
}

// Degenerate returns true if two vertices of the triangle are within tol.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t[0], t[1], tol) ||
		d3.EqualWithin(t[1], t[2], tol) ||
		d3.EqualWithin(t[2], t[0], tol)
}

var _ Renderer = (*MeshRenderer)(nil)

// MeshRenderer streams the triangles of an editable mesh face by face.
type MeshRenderer struct {
	m    *pmesh.Mesh
	face int
	next int // next triangle index within face
}

// NewMeshRenderer returns a Renderer over the faces of m. The mesh must not
// be modified while the renderer is in use.
func NewMeshRenderer(m *pmesh.Mesh) *MeshRenderer {
	return &MeshRenderer{m: m}
}

// ID returns the identifier of the rendered mesh.
func (r *MeshRenderer) ID() uuid.UUID { return r.m.ID }

func (r *MeshRenderer) ReadTriangles(dst []Triangle3) (n int, err error) {
	faces := r.m.Faces()
	pos := r.m.Positions()
	for n < len(dst) && r.face < len(faces) {
		f := faces[r.face]
		if r.next+2 >= f.Len() {
			r.face++
			r.next = 0
			continue
		}
		dst[n] = Triangle3{pos[f.Index(r.next)], pos[f.Index(r.next+1)], pos[f.Index(r.next+2)]}
		r.next += 3
		n++
	}
	if n == 0 && r.face >= len(faces) {
		return 0, io.EOF
	}
	return n, nil
}

// Triangles returns every triangle of m.
func Triangles(m *pmesh.Mesh) []Triangle3 {
	model, _ := RenderAll(NewMeshRenderer(m))
	return model
}
