package pmesh

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = kdVertices{}
	_ kdtree.Comparable = kdVertex{}
	_ kdtree.SortSlicer = kdPlane{}
)

// WeldCoincident returns a weld table over len(points) indices in which
// every pair of points closer than tol shares a group. Points are
// located with a k-d tree so the cost is close to O(n log n) for
// well spread meshes.
func WeldCoincident(points []r3.Vec, tol float64) *WeldTable {
	w := NewWeldTable(len(points))
	if len(points) < 2 || tol <= 0 {
		return w
	}
	list := make(kdVertices, len(points))
	for i, p := range points {
		list[i] = kdVertex{pos: p, idx: i}
	}
	tree := kdtree.New(list, false)
	tol2 := tol * tol
	for i, p := range points {
		keep := kdtree.NewDistKeeper(tol2)
		tree.NearestSet(keep, kdVertex{pos: p, idx: i})
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				continue
			}
			j := c.Comparable.(kdVertex).idx
			if j != i && c.Dist < tol2 {
				w.union(i, j)
			}
		}
	}
	return w
}

type kdVertex struct {
	pos r3.Vec
	idx int
}

func (v kdVertex) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(kdVertex)
	switch d {
	case 0:
		return v.pos.X - q.pos.X
	case 1:
		return v.pos.Y - q.pos.Y
	case 2:
		return v.pos.Z - q.pos.Z
	}
	panic("unreachable")
}

func (v kdVertex) Dims() int { return 3 }

// Distance returns the squared euclidean distance.
func (v kdVertex) Distance(c kdtree.Comparable) float64 {
	q := c.(kdVertex)
	return r3.Norm2(r3.Sub(v.pos, q.pos))
}

type kdVertices []kdVertex

func (k kdVertices) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdVertices) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdVertices) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: d, vertices: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdVertices) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

type kdPlane struct {
	dim      kdtree.Dim
	vertices kdVertices
}

func (p kdPlane) Less(i, j int) bool {
	return p.vertices[i].Compare(p.vertices[j], p.dim) < 0
}

func (p kdPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}

func (p kdPlane) Len() int { return len(p.vertices) }

func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}
