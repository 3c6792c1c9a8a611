package pmesh

import (
	"errors"
	"testing"
)

func TestFaceBorderEdges(t *testing.T) {
	for _, test := range []struct {
		name    string
		indices []int
		want    []Edge
	}{
		{"triangle", []int{0, 1, 2}, []Edge{{0, 1}, {1, 2}, {2, 0}}},
		{"quad", quad(0, 1, 2, 3), []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}}},
		{"disjoint", []int{0, 1, 2, 3, 4, 5}, []Edge{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}}},
		{"fan", []int{0, 1, 2, 0, 2, 3, 0, 3, 4}, []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}}},
		{"doubled", []int{0, 1, 2, 2, 1, 0}, nil},
	} {
		f, err := NewFace(test.indices)
		if err != nil {
			t.Fatal(err)
		}
		for pass := 0; pass < 2; pass++ {
			got := f.Edges()
			if len(got) != len(test.want) {
				t.Fatalf("%s: got edges %v, want %v", test.name, got, test.want)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Errorf("%s: edge %d got %v, want %v", test.name, i, got[i], test.want[i])
				}
			}
			// Same indices again must give the same edges.
			if err := f.SetIndices(test.indices); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestFaceDistinctIndices(t *testing.T) {
	f, err := NewFace([]int{4, 2, 7, 4, 7, 9})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{4, 2, 7, 9}
	got := f.DistinctIndices()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if err := f.SetIndices([]int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if got := f.DistinctIndices(); len(got) != 3 || got[0] != 1 {
		t.Errorf("cache not invalidated: %v", got)
	}
}

func TestFaceToQuad(t *testing.T) {
	for _, test := range []struct {
		name    string
		indices []int
		ok      bool
		want    [4]int
	}{
		{"quad", quad(0, 1, 2, 3), true, [4]int{0, 1, 2, 3}},
		{"other diagonal", []int{0, 1, 3, 1, 2, 3}, true, [4]int{0, 1, 2, 3}},
		{"triangle", []int{0, 1, 2}, false, [4]int{}},
		{"no shared edge", []int{0, 1, 2, 3, 4, 5}, false, [4]int{}},
		{"shared vertex only", []int{0, 1, 2, 0, 3, 4}, false, [4]int{}},
		{"doubled triangle", []int{0, 1, 2, 0, 2, 1}, false, [4]int{}},
		{"three triangles", []int{0, 1, 2, 0, 2, 3, 0, 3, 4}, false, [4]int{}},
	} {
		f, err := NewFace(test.indices)
		if err != nil {
			t.Fatal(err)
		}
		got, ok := f.ToQuad()
		if ok != test.ok {
			t.Errorf("%s: got ok=%v, want %v", test.name, ok, test.ok)
			continue
		}
		if ok && got != test.want {
			t.Errorf("%s: got quad %v, want %v", test.name, got, test.want)
		}
	}
}

func TestFaceSetIndicesErrors(t *testing.T) {
	f, err := NewFace([]int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, bad := range [][]int{nil, {0, 1}, {0, 1, 2, 3}, {0, -1, 2}} {
		if err := f.SetIndices(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%v: expected invalid argument, got %v", bad, err)
		}
	}
	if f.Len() != 3 {
		t.Error("failed SetIndices must not modify the face")
	}
	if err := f.SetIndices([]int{}); err != nil {
		t.Fatal(err)
	}
	if f.IsValid() {
		t.Error("empty face reported valid")
	}
}

func TestFaceCopy(t *testing.T) {
	mat := &Material{Name: "brick"}
	f, err := NewFace(quad(0, 1, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	f.Material = mat
	f.SmoothingGroup = 3
	f.ManualUV = true
	f.TextureGroup = 2
	f.UV.Rotation = 45
	c := f.Copy()
	if c.Material != mat {
		t.Error("material must be shared")
	}
	if c.SmoothingGroup != 3 || !c.ManualUV || c.TextureGroup != 2 || c.UV.Rotation != 45 {
		t.Errorf("attributes not copied: %+v", c)
	}
	if err := c.SetIndices([]int{5, 6, 7}); err != nil {
		t.Fatal(err)
	}
	if f.Index(0) != 0 || f.Len() != 6 {
		t.Error("copy shares indices with the original")
	}
	if len(f.Edges()) != 4 {
		t.Error("original cache affected by copy")
	}
}

func TestFaceContains(t *testing.T) {
	f, err := NewFace(quad(0, 1, 2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if !f.Contains([3]int{2, 0, 1}) || !f.Contains([3]int{3, 2, 0}) {
		t.Error("expected face to contain its triangles")
	}
	if f.Contains([3]int{1, 2, 3}) {
		t.Error("face does not contain triangle 1,2,3")
	}
	if got := f.String(); got != "[0, 1, 2], [0, 2, 3]" {
		t.Errorf("got %q", got)
	}
}

func TestEdgeKey(t *testing.T) {
	a, b := Edge{3, 1}, Edge{1, 3}
	if !a.Equal(b) || a.Key() != b.Key() {
		t.Error("edge equality must ignore order")
	}
	if a.Key() != (EdgeKey{1, 3}) {
		t.Errorf("got key %v", a.Key())
	}
	if (Edge{2, 2}).IsValid() || (Edge{-1, 2}).IsValid() {
		t.Error("degenerate edges reported valid")
	}
	if a.Other(3) != 1 || a.Other(1) != 3 {
		t.Error("Other")
	}
}
