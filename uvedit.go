package pmesh

import (
	"github.com/soypat/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// SewUVs welds every pair of the given vertices whose primary UVs are
// closer than delta. Both UVs of a sewn pair move to their midpoint.
// Pairs are compared exhaustively so indices should be a seam's worth
// of vertices, not a whole mesh.
func (m *Mesh) SewUVs(indices []int, delta float64) error {
	if err := checkIndices(indices, len(m.positions)); err != nil {
		return err
	}
	m.sew(m.uv0, indices, delta)
	return nil
}

func (m *Mesh) sew(uvs []r2.Vec, indices []int, delta float64) int {
	merged := make([]bool, len(indices))
	n := 0
	for i := 0; i < len(indices)-1; i++ {
		for j := i + 1; j < len(indices); j++ {
			a, b := indices[i], indices[j]
			if a == b || (merged[i] && merged[j] && m.sharedUV.Equivalent(a, b)) {
				continue
			}
			if d2.Dist(uvs[a], uvs[b]) >= delta {
				continue
			}
			mid := d2.Mid(uvs[a], uvs[b])
			uvs[a], uvs[b] = mid, mid
			m.sharedUV.union(a, b)
			merged[i], merged[j] = true, true
			n++
		}
	}
	debugf("sew: %d pairs merged over %d indices", n, len(indices))
	return n
}

// CollapseUVs moves the primary UVs of all given vertices to their
// centroid and welds them into one group regardless of distance.
func (m *Mesh) CollapseUVs(indices []int) error {
	if err := checkIndices(indices, len(m.positions)); err != nil {
		return err
	}
	if len(indices) == 0 {
		return nil
	}
	uvs := m.uv0
	var sum r2.Vec
	for _, i := range indices {
		sum = r2.Add(sum, uvs[i])
	}
	center := r2.Scale(1/float64(len(indices)), sum)
	for _, i := range indices {
		uvs[i] = center
	}
	return m.sharedUV.Merge(indices...)
}

// SplitUVs removes each vertex from its UV weld group. Vertices that are
// not welded are left as they are.
func (m *Mesh) SplitUVs(indices []int) error {
	return m.sharedUV.Split(indices...)
}

// ProjectFacesAuto planar projects faces as one patch along their average
// normal and writes the result to channel. The projected vertices are split
// from their previous UV welds and then sewn back where the new projection
// makes them coincide.
func (m *Mesh) ProjectFacesAuto(faces []*Face, channel int) error {
	uvs, err := m.uvs(channel)
	if err != nil {
		return err
	}
	if err := checkFaces(faces); err != nil {
		return err
	}
	indices := distinctIndices(distinctOf(faces))
	if err := checkIndices(indices, len(m.positions)); err != nil {
		return err
	}
	projected := PlanarProject(m.positionsOf(indices), m.averageNormal(faces))
	for i, idx := range indices {
		uvs[idx] = projected[i]
	}
	// Split before sewing, otherwise stale welds from an earlier
	// projection would survive.
	for _, f := range faces {
		f.ElementGroup = -1
		m.sharedUV.detachAll(f.DistinctIndices())
	}
	m.sew(uvs, indices, m.Config.withDefaults().SewDelta)
	return nil
}

// ProjectFacesBox projects each face along the axis closest to its normal.
// Faces sharing an axis are projected together. Box projected faces become
// manually unwrapped and their vertices are split from their UV welds.
func (m *Mesh) ProjectFacesBox(faces []*Face, channel int) error {
	uvs, err := m.uvs(channel)
	if err != nil {
		return err
	}
	if err := checkFaces(faces); err != nil {
		return err
	}
	if err := checkIndices(distinctOf(faces), len(m.positions)); err != nil {
		return err
	}
	buckets := BoxBuckets(faces, m.FaceNormal)
	for axis, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		a := ProjectionAxis(axis)
		for _, f := range bucket {
			f.ElementGroup = -1
			f.ManualUV = true
		}
		indices := distinctIndices(distinctOf(bucket))
		projected := PlanarProjectAxis(m.positionsOf(indices), ProjectionAxisToVector(a), a)
		for i, idx := range indices {
			uvs[idx] = projected[i]
		}
		m.sharedUV.detachAll(indices)
		debugf("box: %d faces projected along %s", len(bucket), a)
	}
	return nil
}

// ProjectFacesSphere spherically projects the given vertices around their
// centroid. Faces touching any of them become manually unwrapped and leave
// their element group.
func (m *Mesh) ProjectFacesSphere(indices []int, channel int) error {
	uvs, err := m.uvs(channel)
	if err != nil {
		return err
	}
	if err := checkIndices(indices, len(m.positions)); err != nil {
		return err
	}
	touched := make(map[int]bool, len(indices))
	for _, i := range indices {
		touched[i] = true
	}
	for _, f := range m.faces {
		for _, i := range f.DistinctIndices() {
			if touched[i] {
				f.ManualUV = true
				f.ElementGroup = -1
				break
			}
		}
	}
	m.sharedUV.detachAll(indices)
	projected := SphericalProject(m.positionsOf(indices))
	for i, idx := range indices {
		uvs[idx] = projected[i]
	}
	return nil
}

// NearestVector2 returns the element of uvs closest to p, or p
// when uvs is empty.
func NearestVector2(p r2.Vec, uvs []r2.Vec) r2.Vec {
	return d2.Set(uvs).Nearest(p)
}
