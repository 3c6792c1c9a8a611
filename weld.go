package pmesh

import (
	"sort"

	"github.com/pkg/errors"
)

// WeldTable partitions the vertex index domain [0,Len()) into groups of
// indices that are treated as a single point. Indices that were never added
// are implicit singleton groups.
//
// The table is a disjoint-set forest with path compression and union by
// size. Each group additionally keeps its members in a cyclic ring so a
// group can be enumerated and an index removed from it without touching
// the rest of the table.
//
// Group identifiers returned by Lookup are member indices and remain valid
// only until the next Merge, Split or Resize.
type WeldTable struct {
	parent []int // -1 when the index is absent
	size   []int // group size, valid at roots
	next   []int // member ring
}

// NewWeldTable returns an empty table over n vertex indices.
func NewWeldTable(n int) *WeldTable {
	w := &WeldTable{}
	w.Resize(n)
	return w
}

// WeldTableFromGroups builds a table over n indices from explicit groups.
func WeldTableFromGroups(n int, groups [][]int) (*WeldTable, error) {
	w := NewWeldTable(n)
	for _, g := range groups {
		if err := w.Merge(g...); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Len returns the size of the index domain.
func (w *WeldTable) Len() int { return len(w.parent) }

func (w *WeldTable) check(indices []int) error {
	return checkIndices(indices, len(w.parent))
}

func (w *WeldTable) present(i int) bool { return w.parent[i] >= 0 }

func (w *WeldTable) add(i int) {
	w.parent[i] = i
	w.size[i] = 1
	w.next[i] = i
}

func (w *WeldTable) find(i int) int {
	root := i
	for w.parent[root] != root {
		root = w.parent[root]
	}
	for w.parent[i] != root {
		i, w.parent[i] = w.parent[i], root
	}
	return root
}

// Lookup returns the group of index i. ok is false when i is not present
// in the table (an implicit singleton). Lookup panics with an
// ErrInvalidArgument error if i is outside the index domain.
func (w *WeldTable) Lookup(i int) (group int, ok bool) {
	if i < 0 || i >= len(w.parent) {
		panic(errIndexRange(i, len(w.parent)))
	}
	if !w.present(i) {
		return -1, false
	}
	return w.find(i), true
}

// Canonical returns the group of i, or i itself when i is an implicit
// singleton. Two indices are welded if and only if their canonical values
// are equal. Like Lookup it panics for indices outside the domain.
func (w *WeldTable) Canonical(i int) int {
	if g, ok := w.Lookup(i); ok {
		return g
	}
	return i
}

// Equivalent reports whether a and b belong to the same group.
func (w *WeldTable) Equivalent(a, b int) bool {
	return a == b || w.Canonical(a) == w.Canonical(b)
}

// Merge unions the groups of all given indices into one. Indices not yet
// in the table are added.
func (w *WeldTable) Merge(indices ...int) error {
	if err := w.check(indices); err != nil {
		return err
	}
	if len(indices) == 0 {
		return nil
	}
	for _, i := range indices[1:] {
		w.union(indices[0], i)
	}
	if len(indices) == 1 && !w.present(indices[0]) {
		w.add(indices[0])
	}
	return nil
}

// union welds a and b, adding them to the table if absent. Indices are
// not range checked.
func (w *WeldTable) union(a, b int) {
	if !w.present(a) {
		w.add(a)
	}
	if !w.present(b) {
		w.add(b)
	}
	ra, rb := w.find(a), w.find(b)
	if ra == rb {
		return
	}
	if w.size[ra] < w.size[rb] {
		ra, rb = rb, ra
	}
	w.parent[rb] = ra
	w.size[ra] += w.size[rb]
	// Splice both member rings into one.
	w.next[ra], w.next[rb] = w.next[rb], w.next[ra]
}

// Split moves each given index out of its group into a singleton group.
// The remaining members of the group stay welded. Indices absent from
// the table are already singletons and are left untouched.
func (w *WeldTable) Split(indices ...int) error {
	if err := w.check(indices); err != nil {
		return err
	}
	w.detachAll(indices)
	return nil
}

// detachAll is Split without the range check.
func (w *WeldTable) detachAll(indices []int) {
	for _, i := range indices {
		if w.present(i) {
			w.detach(i)
		}
	}
}

// detach removes i from its group and leaves it as an explicit singleton.
func (w *WeldTable) detach(i int) {
	if w.next[i] == i {
		return
	}
	var rest []int
	for j := w.next[i]; j != i; j = w.next[j] {
		rest = append(rest, j)
	}
	w.relink(rest)
	w.add(i)
}

// relink makes members a group of its own rooted at its first element.
func (w *WeldTable) relink(members []int) {
	if len(members) == 0 {
		return
	}
	root := members[0]
	for k, j := range members {
		w.parent[j] = root
		w.next[j] = members[(k+1)%len(members)]
	}
	w.size[root] = len(members)
}

// Members returns the sorted indices welded to i, including i.
func (w *WeldTable) Members(i int) []int {
	if i < 0 || i >= len(w.parent) {
		return nil
	}
	if !w.present(i) {
		return []int{i}
	}
	members := []int{i}
	for j := w.next[i]; j != i; j = w.next[j] {
		members = append(members, j)
	}
	sort.Ints(members)
	return members
}

// Groups returns every group held by the table, members sorted and groups
// ordered by their smallest member.
func (w *WeldTable) Groups() [][]int {
	var groups [][]int
	seen := make([]bool, len(w.parent))
	for i := range w.parent {
		if seen[i] || !w.present(i) {
			continue
		}
		g := w.Members(i)
		for _, j := range g {
			seen[j] = true
		}
		groups = append(groups, g)
	}
	return groups
}

// GroupCount returns the number of groups held by the table.
func (w *WeldTable) GroupCount() int {
	n := 0
	for i := range w.parent {
		if w.present(i) && w.parent[i] == i {
			n++
		}
	}
	return n
}

// RemoveEmpty drops groups that no longer weld anything, that is groups
// with a single member, turning them back into implicit singletons. It
// returns the number of groups dropped.
func (w *WeldTable) RemoveEmpty() int {
	n := 0
	for i := range w.parent {
		if w.present(i) && w.next[i] == i {
			w.parent[i] = -1
			w.size[i] = 0
			n++
		}
	}
	return n
}

// Resize changes the index domain to [0,n). When shrinking, indices at
// or above n are removed from their groups first.
func (w *WeldTable) Resize(n int) {
	if n < 0 {
		panic(errors.Wrapf(ErrInvalidArgument, "negative weld table size %d", n))
	}
	for i := n; i < len(w.parent); i++ {
		if w.present(i) {
			w.detach(i)
		}
	}
	old := len(w.parent)
	w.parent = resizeInts(w.parent, n)
	w.size = resizeInts(w.size, n)
	w.next = resizeInts(w.next, n)
	for i := old; i < n; i++ {
		w.parent[i] = -1
	}
}

func resizeInts(s []int, n int) []int {
	if n <= len(s) {
		return s[:n]
	}
	return append(s, make([]int, n-len(s))...)
}

// Clone returns a deep copy of the table.
func (w *WeldTable) Clone() *WeldTable {
	return &WeldTable{
		parent: append([]int(nil), w.parent...),
		size:   append([]int(nil), w.size...),
		next:   append([]int(nil), w.next...),
	}
}
