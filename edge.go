package pmesh

import "fmt"

// Edge is an unordered pair of vertex indices. X and Y keep the order in
// which the edge was discovered (triangle winding) but comparisons ignore it.
type Edge struct {
	X, Y int
}

// EdgeKey is the canonical, order independent form of an Edge
// suitable as a map key.
type EdgeKey [2]int

// Key returns the canonical key of e with the lower index first.
func (e Edge) Key() EdgeKey {
	if e.X > e.Y {
		return EdgeKey{e.Y, e.X}
	}
	return EdgeKey{e.X, e.Y}
}

// Equal reports whether e and other join the same two indices.
func (e Edge) Equal(other Edge) bool {
	return e.Key() == other.Key()
}

// IsValid reports whether the edge joins two distinct non-negative indices.
func (e Edge) IsValid() bool {
	return e.X >= 0 && e.Y >= 0 && e.X != e.Y
}

// Contains reports whether i is one of the edge's endpoints.
func (e Edge) Contains(i int) bool {
	return e.X == i || e.Y == i
}

// Other returns the endpoint opposite to i.
func (e Edge) Other(i int) int {
	if e.X == i {
		return e.Y
	}
	return e.X
}

func (e Edge) String() string {
	return fmt.Sprintf("[%d, %d]", e.X, e.Y)
}

// equivalentEdge reports whether a and b join weld-equivalent endpoints
// under w, in either orientation.
func equivalentEdge(w *WeldTable, a, b Edge) bool {
	ax, ay := w.Canonical(a.X), w.Canonical(a.Y)
	bx, by := w.Canonical(b.X), w.Canonical(b.Y)
	return (ax == bx && ay == by) || (ax == by && ay == bx)
}
