package pmesh

import (
	"github.com/pkg/errors"
)

// Material is an opaque reference to a render material. Faces share
// material pointers; resolving them to assets is up to the caller.
type Material struct {
	Name string
}

// DefaultMaterial is used for faces without a material.
var DefaultMaterial = &Material{Name: "Default"}

// Topology is the primitive layout of a submesh index buffer.
type Topology int

const (
	TopologyTriangles Topology = iota
	TopologyQuads
	TopologyLines
	TopologyPoints
)

func (t Topology) String() string {
	switch t {
	case TopologyTriangles:
		return "triangles"
	case TopologyQuads:
		return "quads"
	case TopologyLines:
		return "lines"
	case TopologyPoints:
		return "points"
	}
	return "unknown topology"
}

// Submesh is a renderable index buffer for a single material.
type Submesh struct {
	Material *Material
	Topology Topology
	Indices  []int
}

type submeshBucket struct {
	material *Material
	indices  []int
}

// BuildSubmeshes partitions faces by material into index buffers. When
// preferred is TopologyQuads, faces convertible with ToQuad go to per-material
// quad buffers and the rest to triangle buffers. Quad submeshes are listed
// before triangle submeshes; within each, materials keep first-seen order.
func BuildSubmeshes(faces []*Face, preferred Topology) ([]Submesh, error) {
	if preferred != TopologyTriangles && preferred != TopologyQuads {
		return nil, errors.Wrapf(ErrNotSupported, "submesh topology %s", preferred)
	}
	wantsQuads := preferred == TopologyQuads
	// Slices keep first-seen material order, map order would not.
	var quads, tris []*submeshBucket
	find := func(buckets *[]*submeshBucket, m *Material) *submeshBucket {
		for _, b := range *buckets {
			if b.material == m {
				return b
			}
		}
		b := &submeshBucket{material: m}
		*buckets = append(*buckets, b)
		return b
	}
	for _, face := range faces {
		if face == nil || len(face.indices) == 0 {
			continue
		}
		material := face.Material
		if material == nil {
			material = DefaultMaterial
		}
		if wantsQuads {
			if quad, ok := face.ToQuad(); ok {
				b := find(&quads, material)
				b.indices = append(b.indices, quad[:]...)
				continue
			}
		}
		b := find(&tris, material)
		b.indices = append(b.indices, face.indices...)
	}
	submeshes := make([]Submesh, 0, len(quads)+len(tris))
	for _, b := range quads {
		submeshes = append(submeshes, Submesh{Material: b.material, Topology: TopologyQuads, Indices: b.indices})
	}
	for _, b := range tris {
		submeshes = append(submeshes, Submesh{Material: b.material, Topology: TopologyTriangles, Indices: b.indices})
	}
	return submeshes, nil
}
