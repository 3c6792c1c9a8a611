package pmesh

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Face is a set of triangles sharing a material, smoothing group and
// UV unwrap settings. Triangle indices refer to the owning Mesh's
// vertex arrays.
//
// Distinct indices and border edges are derived from the triangle list
// on first access and cached until the next SetIndices.
type Face struct {
	indices []int

	// cache holds derived data. valid is the dirty flag: when false
	// distinct and edges are stale and must be recomputed.
	cache struct {
		valid    bool
		n        int // len(indices) when computed
		distinct []int
		edges    []Edge
	}

	// Material is shared between faces and never copied. A nil
	// material resolves to DefaultMaterial.
	Material *Material
	// SmoothingGroup groups faces whose abutting vertex normals are averaged.
	// SmoothingGroupNone marks hard edges.
	SmoothingGroup int
	// UV holds the auto unwrap parameters used while ManualUV is false.
	UV AutoUnwrapSettings
	// ManualUV disables automatic projection of this face.
	ManualUV bool
	// TextureGroup batches faces projected together by RefreshUVs. -1 for none.
	TextureGroup int
	// ElementGroup batches faces whose UV seams are merged together. -1 for none.
	ElementGroup int
}

// NewFace creates a face from a triangle index list with default attributes.
func NewFace(triangles []int) (*Face, error) {
	f := &Face{
		Material:       DefaultMaterial,
		SmoothingGroup: SmoothingGroupNone,
		UV:             NewAutoUnwrapSettings(),
		TextureGroup:   -1,
	}
	if err := f.SetIndices(triangles); err != nil {
		return nil, err
	}
	return f, nil
}

// SetIndices replaces the triangles of the face. The slice is copied.
func (f *Face) SetIndices(triangles []int) error {
	if triangles == nil {
		return errors.Wrap(ErrInvalidArgument, "nil triangle list")
	}
	if len(triangles)%3 != 0 {
		return errors.Wrapf(ErrInvalidArgument, "triangle list length %d not a multiple of 3", len(triangles))
	}
	for _, i := range triangles {
		if i < 0 {
			return errors.Wrapf(ErrInvalidArgument, "negative index %d", i)
		}
	}
	f.indices = append(make([]int, 0, len(triangles)), triangles...)
	f.invalidateCache()
	return nil
}

// Indices returns a copy of the triangle index list.
func (f *Face) Indices() []int {
	return append([]int(nil), f.indices...)
}

// Index returns the i'th triangle index.
func (f *Face) Index(i int) int { return f.indices[i] }

// Len returns the number of triangle indices.
func (f *Face) Len() int { return len(f.indices) }

// TriangleCount returns the number of triangles in the face.
func (f *Face) TriangleCount() int { return len(f.indices) / 3 }

// IsValid reports whether the face holds at least one triangle.
func (f *Face) IsValid() bool {
	return len(f.indices) > 2
}

// DistinctIndices returns the vertex indices referenced by the face, each
// once, in first-seen order. The returned slice must not be modified.
func (f *Face) DistinctIndices() []int {
	f.ensureCache()
	return f.cache.distinct
}

// Edges returns the border edges of the face: edges that belong to exactly
// one of its triangles, in first-seen order. Edges shared by two triangles
// are interior and excluded. The returned slice must not be modified.
func (f *Face) Edges() []Edge {
	f.ensureCache()
	return f.cache.edges
}

func (f *Face) invalidateCache() {
	f.cache.valid = false
	f.cache.n = 0
	f.cache.distinct = nil
	f.cache.edges = nil
}

func (f *Face) ensureCache() {
	if f.cache.valid {
		if f.cache.n != len(f.indices) {
			panic(errors.Wrapf(ErrInvariant, "face cache built from %d indices, face has %d", f.cache.n, len(f.indices)))
		}
		return
	}
	f.cache.distinct = distinctIndices(f.indices)
	f.cache.edges = borderEdges(f.indices)
	f.cache.n = len(f.indices)
	f.cache.valid = true
}

// validateCache recomputes derived data and compares it against the cache.
func (f *Face) validateCache() error {
	if !f.cache.valid {
		return nil
	}
	if f.cache.n != len(f.indices) {
		return errors.Wrapf(ErrInvariant, "face cache built from %d indices, face has %d", f.cache.n, len(f.indices))
	}
	distinct := distinctIndices(f.indices)
	edges := borderEdges(f.indices)
	if len(distinct) != len(f.cache.distinct) || len(edges) != len(f.cache.edges) {
		return errors.Wrap(ErrInvariant, "face cache size mismatch")
	}
	for i := range distinct {
		if distinct[i] != f.cache.distinct[i] {
			return errors.Wrapf(ErrInvariant, "cached distinct index %d mismatch", i)
		}
	}
	for i := range edges {
		if edges[i] != f.cache.edges[i] {
			return errors.Wrapf(ErrInvariant, "cached border edge %d mismatch", i)
		}
	}
	return nil
}

func distinctIndices(indices []int) []int {
	seen := make(map[int]struct{}, len(indices))
	distinct := make([]int, 0, len(indices))
	for _, i := range indices {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		distinct = append(distinct, i)
	}
	return distinct
}

// borderEdges returns the edges referenced by exactly one triangle.
func borderEdges(indices []int) []Edge {
	count := make(map[EdgeKey]int, len(indices))
	all := make([]Edge, 0, len(indices))
	for i := 0; i+2 < len(indices); i += 3 {
		tri := [3]Edge{
			{indices[i], indices[i+1]},
			{indices[i+1], indices[i+2]},
			{indices[i+2], indices[i]},
		}
		for _, e := range tri {
			k := e.Key()
			if count[k] == 0 {
				all = append(all, e)
			}
			count[k]++
		}
	}
	border := all[:0]
	for _, e := range all {
		if count[e.Key()] == 1 {
			border = append(border, e)
		}
	}
	return border
}

// ToQuad returns the face as 4 ordered indices when it is made of exactly
// two triangles whose border edges close a single 4-cycle. ok is false when
// the face cannot be represented as a quad.
func (f *Face) ToQuad() (quad [4]int, ok bool) {
	if len(f.indices) != 6 {
		return quad, false
	}
	edges := f.Edges()
	if len(edges) != 4 {
		return quad, false
	}
	var used [4]bool
	used[0] = true
	quad[0], quad[1] = edges[0].X, edges[0].Y
	for k := 2; k < 4; k++ {
		next := -1
		for j := 1; j < 4; j++ {
			if !used[j] && edges[j].Contains(quad[k-1]) {
				next = j
				break
			}
		}
		if next < 0 {
			return [4]int{}, false
		}
		used[next] = true
		quad[k] = edges[next].Other(quad[k-1])
	}
	for j := 1; j < 4; j++ {
		if !used[j] && edges[j].Key() != (Edge{quad[3], quad[0]}).Key() {
			return [4]int{}, false
		}
	}
	if quad[0] == quad[2] || quad[1] == quad[3] {
		return [4]int{}, false
	}
	return quad, true
}

// Contains reports whether any triangle of the face is made of
// the same three indices as tri, in any order.
func (f *Face) Contains(tri [3]int) bool {
	has := func(i int) bool { return tri[0] == i || tri[1] == i || tri[2] == i }
	for i := 0; i+2 < len(f.indices); i += 3 {
		if has(f.indices[i]) && has(f.indices[i+1]) && has(f.indices[i+2]) {
			return true
		}
	}
	return false
}

// Copy returns a deep copy of the face. The material is shared.
func (f *Face) Copy() *Face {
	c := &Face{}
	c.CopyFrom(f)
	return c
}

// CopyFrom copies the indices and attributes of other into f.
// The material is shared, not duplicated.
func (f *Face) CopyFrom(other *Face) {
	f.indices = append(make([]int, 0, len(other.indices)), other.indices...)
	f.invalidateCache()
	f.Material = other.Material
	f.SmoothingGroup = other.SmoothingGroup
	f.UV = other.UV
	f.ManualUV = other.ManualUV
	f.TextureGroup = other.TextureGroup
	f.ElementGroup = other.ElementGroup
}

func (f *Face) String() string {
	if len(f.indices)%3 != 0 {
		return "index count is not a multiple of 3"
	}
	var sb strings.Builder
	for i := 0; i < len(f.indices); i += 3 {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(f.indices[i]))
		sb.WriteString(", ")
		sb.WriteString(strconv.Itoa(f.indices[i+1]))
		sb.WriteString(", ")
		sb.WriteString(strconv.Itoa(f.indices[i+2]))
		sb.WriteByte(']')
	}
	return sb.String()
}

// AllTriangles concatenates the triangle indices of all faces.
func AllTriangles(faces []*Face) []int {
	all := make([]int, 0, len(faces)*6)
	for _, f := range faces {
		all = append(all, f.indices...)
	}
	return all
}

// distinctOf concatenates the distinct indices of the faces. Indices shared
// between faces appear once per face.
func distinctOf(faces []*Face) []int {
	var ind []int
	for _, f := range faces {
		ind = append(ind, f.DistinctIndices()...)
	}
	return ind
}
