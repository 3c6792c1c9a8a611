// Package pmesh implements an editable polygon mesh made of faces built
// from shared, weldable vertex indices, together with the algorithms that
// derive topology (border edges, quads, submeshes) and compute, sew, split
// and align UV coordinates as the geometry changes.
//
// A Mesh owns parallel vertex arrays (positions and two UV channels) and two
// independent weld tables over the same index domain: one for positions and
// one for UVs. Meshes are not safe for concurrent use; multi-step operations
// such as AutoStitch or ProjectFacesBox leave intermediate states that must
// not be observed by other goroutines.
package pmesh

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/soypat/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an editable polygon mesh.
type Mesh struct {
	// ID identifies the mesh across exports.
	ID uuid.UUID
	// Config holds the UV algorithm tolerances.
	Config Config

	positions []r3.Vec
	uv0       []r2.Vec
	uv1       []r2.Vec
	faces     []*Face
	shared    *WeldTable // position welds
	sharedUV  *WeldTable // UV welds
}

// NewMesh creates a mesh over the given positions. Faces are owned by the
// mesh after the call and must reference indices within positions.
// UV channels start zeroed and both weld tables start empty.
func NewMesh(positions []r3.Vec, faces []*Face) (*Mesh, error) {
	n := len(positions)
	for _, f := range faces {
		if f == nil {
			return nil, errors.Wrap(ErrInvalidArgument, "nil face")
		}
		if err := checkIndices(f.indices, n); err != nil {
			return nil, err
		}
	}
	m := &Mesh{
		ID:        uuid.Must(uuid.NewV7()),
		Config:    DefaultConfig(),
		positions: append([]r3.Vec(nil), positions...),
		uv0:       make([]r2.Vec, n),
		uv1:       make([]r2.Vec, n),
		faces:     append([]*Face(nil), faces...),
		shared:    NewWeldTable(n),
		sharedUV:  NewWeldTable(n),
	}
	return m, nil
}

// VertexCount returns the size of the vertex index domain.
func (m *Mesh) VertexCount() int { return len(m.positions) }

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int { return len(m.faces) }

// Positions returns the vertex positions. The slice is owned by the mesh
// and must be treated as read-only.
func (m *Mesh) Positions() []r3.Vec { return m.positions }

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) r3.Vec { return m.positions[i] }

// Bounds returns the bounding box of the vertex positions. A mesh without
// vertices has an empty box at the origin.
func (m *Mesh) Bounds() r3.Box {
	if len(m.positions) == 0 {
		return r3.Box{}
	}
	return r3.Box(d3.Set(m.positions).Bounds())
}

// SetPosition moves vertex i.
func (m *Mesh) SetPosition(i int, p r3.Vec) error {
	if i < 0 || i >= len(m.positions) {
		return errIndexRange(i, len(m.positions))
	}
	m.positions[i] = p
	return nil
}

// Faces returns the faces of the mesh. The slice must not be modified,
// use AddFace and RemoveFace instead.
func (m *Mesh) Faces() []*Face { return m.faces }

// SharedIndices returns the position weld table. Use WeldVertices and
// SplitVertices to modify it.
func (m *Mesh) SharedIndices() *WeldTable { return m.shared }

// SharedIndicesUV returns the UV weld table. Use the UV editing
// operations to modify it.
func (m *Mesh) SharedIndicesUV() *WeldTable { return m.sharedUV }

// SetSharedIndices replaces the position weld table.
func (m *Mesh) SetSharedIndices(w *WeldTable) error {
	if w == nil || w.Len() != len(m.positions) {
		return errors.Wrap(ErrInvalidArgument, "weld table does not match vertex count")
	}
	m.shared = w
	return nil
}

// SetSharedIndicesUV replaces the UV weld table.
func (m *Mesh) SetSharedIndicesUV(w *WeldTable) error {
	if w == nil || w.Len() != len(m.positions) {
		return errors.Wrap(ErrInvalidArgument, "weld table does not match vertex count")
	}
	m.sharedUV = w
	return nil
}

// uvs returns the UV array of a channel by reference.
func (m *Mesh) uvs(channel int) ([]r2.Vec, error) {
	switch channel {
	case 0:
		return m.uv0, nil
	case 1:
		return m.uv1, nil
	}
	return nil, errChannel(channel)
}

// UVs returns a copy of the UV coordinates of channel 0 (primary) or
// 1 (secondary). Other channels return ErrNotSupported.
func (m *Mesh) UVs(channel int) ([]r2.Vec, error) {
	uvs, err := m.uvs(channel)
	if err != nil {
		return nil, err
	}
	return append([]r2.Vec(nil), uvs...), nil
}

// SetUVs replaces the UV coordinates of a channel. uvs must hold one
// coordinate per vertex.
func (m *Mesh) SetUVs(channel int, uvs []r2.Vec) error {
	dst, err := m.uvs(channel)
	if err != nil {
		return err
	}
	if len(uvs) != len(dst) {
		return errors.Wrapf(ErrInvalidArgument, "got %d UVs for %d vertices", len(uvs), len(dst))
	}
	copy(dst, uvs)
	return nil
}

// AppendVertices adds vertices to the mesh and returns the index of the
// first one. New vertices have zero UVs and are not welded.
func (m *Mesh) AppendVertices(positions ...r3.Vec) int {
	first := len(m.positions)
	m.positions = append(m.positions, positions...)
	n := len(m.positions)
	m.uv0 = append(m.uv0, make([]r2.Vec, len(positions))...)
	m.uv1 = append(m.uv1, make([]r2.Vec, len(positions))...)
	m.shared.Resize(n)
	m.sharedUV.Resize(n)
	return first
}

// AddFace creates a face from triangles and appends it to the mesh.
func (m *Mesh) AddFace(triangles []int) (*Face, error) {
	if err := checkIndices(triangles, len(m.positions)); err != nil {
		return nil, err
	}
	f, err := NewFace(triangles)
	if err != nil {
		return nil, err
	}
	m.faces = append(m.faces, f)
	return f, nil
}

// RemoveFace removes f from the mesh. Vertices are kept.
func (m *Mesh) RemoveFace(f *Face) bool {
	for i, face := range m.faces {
		if face == f {
			m.faces = append(m.faces[:i], m.faces[i+1:]...)
			return true
		}
	}
	return false
}

// SetFaceIndices replaces the triangles of f after checking them against
// the vertex range.
func (m *Mesh) SetFaceIndices(f *Face, triangles []int) error {
	if err := checkIndices(triangles, len(m.positions)); err != nil {
		return err
	}
	return f.SetIndices(triangles)
}

// WeldVertices merges the position weld groups of the given indices.
func (m *Mesh) WeldVertices(indices ...int) error {
	return m.shared.Merge(indices...)
}

// SplitVertices disconnects the given vertices from their position weld
// groups so they may be moved independently.
func (m *Mesh) SplitVertices(indices ...int) error {
	return m.shared.Split(indices...)
}

// WeldCoincident rebuilds the position weld table so vertices closer
// than tol are welded.
func (m *Mesh) WeldCoincident(tol float64) {
	m.shared = WeldCoincident(m.positions, tol)
}

// FaceNormal returns the unit normal of f computed from the sum of its
// triangle normals. Degenerate faces return the zero vector.
func (m *Mesh) FaceNormal(f *Face) r3.Vec {
	var sum r3.Vec
	for i := 0; i+2 < len(f.indices); i += 3 {
		a, b, c := m.positions[f.indices[i]], m.positions[f.indices[i+1]], m.positions[f.indices[i+2]]
		sum = r3.Add(sum, d3.TriangleNormal(a, b, c))
	}
	return d3.Unit(sum)
}

// averageNormal returns the plain average of the face normals.
func (m *Mesh) averageNormal(faces []*Face) r3.Vec {
	if len(faces) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, f := range faces {
		sum = r3.Add(sum, m.FaceNormal(f))
	}
	return r3.Scale(1/float64(len(faces)), sum)
}

func (m *Mesh) positionsOf(indices []int) []r3.Vec {
	p := make([]r3.Vec, len(indices))
	for i, idx := range indices {
		p[i] = m.positions[idx]
	}
	return p
}

// Submeshes builds render index buffers for the mesh faces.
func (m *Mesh) Submeshes(preferred Topology) ([]Submesh, error) {
	return BuildSubmeshes(m.faces, preferred)
}

// Validate checks the mesh for broken invariants: faces with malformed or
// out of range indices, face caches out of sync with their indices and
// arrays or weld tables not matching the vertex count.
func (m *Mesh) Validate() error {
	n := len(m.positions)
	if len(m.uv0) != n || len(m.uv1) != n {
		return errors.Wrap(ErrInvariant, "UV array length does not match vertex count")
	}
	if m.shared.Len() != n || m.sharedUV.Len() != n {
		return errors.Wrap(ErrInvariant, "weld table length does not match vertex count")
	}
	for i, f := range m.faces {
		if len(f.indices)%3 != 0 {
			return errors.Wrapf(ErrInvalidArgument, "face %d: index count %d not a multiple of 3", i, len(f.indices))
		}
		if err := checkIndices(f.indices, n); err != nil {
			return errors.WithMessagef(err, "face %d", i)
		}
		if err := f.validateCache(); err != nil {
			return errors.WithMessagef(err, "face %d", i)
		}
	}
	return nil
}
