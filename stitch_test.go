package pmesh

import (
	"math"
	"reflect"
	"testing"

	"github.com/soypat/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAutoStitchAdjacent(t *testing.T) {
	for _, test := range []struct {
		name   string
		layout d2.Transform // applied to f1's UVs before stitching
		scale  float64      // resulting f1 edge length over unit
	}{
		{"identity", d2.Identity(), 1},
		{"rotated", d2.Rotation(0.7).About(r2.Vec{X: .3, Y: -.2}), 1},
		{"rotated scaled", d2.Translation(r2.Vec{X: 4, Y: 1}).Mul(d2.Rotation(-2.4)).Mul(d2.Scaling(r2.Vec{X: 2, Y: 2})), 2},
	} {
		m := unitCube(t)
		f1, f2 := m.Faces()[0], m.Faces()[2] // +X and +Y share the edge x=y=.5
		f2.TextureGroup = 4
		if err := m.ProjectFacesAuto([]*Face{f1}, 0); err != nil {
			t.Fatal(err)
		}
		uvs, _ := m.UVs(0)
		for _, i := range f1.DistinctIndices() {
			uvs[i] = test.layout.ApplyPos(uvs[i])
		}
		m.SetUVs(0, uvs)
		fixed := m.valuesOf(uvs, f1.DistinctIndices())

		ok, err := m.AutoStitch(f1, f2, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("%s: expected matching border edge", test.name)
		}
		if !f1.ManualUV || !f2.ManualUV || f1.TextureGroup != -1 || f2.TextureGroup != -1 {
			t.Errorf("%s: stitched faces must become manual without texture group", test.name)
		}
		uvs, _ = m.UVs(0)
		if got := m.valuesOf(uvs, f1.DistinctIndices()); !reflect.DeepEqual(got, fixed) {
			t.Errorf("%s: stitching moved f1 UVs:\n%v\n%v", test.name, fixed, got)
		}
		pw, uw := m.SharedIndices(), m.SharedIndicesUV()
		matched := 0
		for _, i := range f1.DistinctIndices() {
			for _, j := range f2.DistinctIndices() {
				if !pw.Equivalent(i, j) {
					continue
				}
				matched++
				if !d2.EqualWithin(uvs[i], uvs[j], 1e-9) {
					t.Errorf("%s: matched vertices %d,%d apart in UV space: %v %v", test.name, i, j, uvs[i], uvs[j])
				}
				if !uw.Equivalent(i, j) {
					t.Errorf("%s: matched vertices %d,%d not UV welded", test.name, i, j)
				}
			}
		}
		if matched != 2 {
			t.Errorf("%s: expected 2 matched vertex pairs, got %d", test.name, matched)
		}
		// f2 is laid out rigidly at f1's scale.
		d := f2.DistinctIndices()
		for a := 0; a < len(d); a++ {
			for b := a + 1; b < len(d); b++ {
				want := test.scale * r3.Norm(r3.Sub(m.Position(d[a]), m.Position(d[b])))
				if got := d2.Dist(uvs[d[a]], uvs[d[b]]); math.Abs(got-want) > 1e-9 {
					t.Errorf("%s: f2 vertices %d,%d at UV distance %g, want %g", test.name, d[a], d[b], got, want)
				}
			}
		}
		// Unmatched f2 corners lie beyond the shared edge, farther from
		// f1's center than any of f1's own corners.
		center := d2.Set(fixed).Average()
		var inside int
		for _, i := range d {
			if isWeldedTo(pw, i, f1.DistinctIndices()) {
				continue
			}
			if d2.Dist(uvs[i], center) < test.scale {
				inside++
			}
		}
		if inside > 0 {
			t.Errorf("%s: %d f2 vertices overlap f1", test.name, inside)
		}
	}
}

func isWeldedTo(w *WeldTable, i int, indices []int) bool {
	for _, j := range indices {
		if w.Equivalent(i, j) {
			return true
		}
	}
	return false
}

func TestAutoStitchNoMatch(t *testing.T) {
	m := unitCube(t)
	f1, f2 := m.Faces()[0], m.Faces()[1] // +X and -X
	before, _ := m.UVs(0)
	ok, err := m.AutoStitch(f1, f2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("opposite sides share no edge")
	}
	after, _ := m.UVs(0)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("failed stitch modified UVs")
		}
	}
	if f1.ManualUV || f2.ManualUV {
		t.Error("failed stitch modified faces")
	}
	if _, err := m.AutoStitch(f1, nil, 0); err == nil {
		t.Error("expected error for nil face")
	}
	if _, err := m.AutoStitch(f1, f2, 3); err == nil {
		t.Error("expected error for unsupported channel")
	}
}

func TestResolveFlip(t *testing.T) {
	const threshold = DefaultAlignErrorThreshold
	// Vertices 0,1 are the fixed edge, 2,3 the moving one.
	matchX, matchY := [2]int{0, 2}, [2]int{1, 3}
	moving := []int{2, 3, 4}
	for _, test := range []struct {
		name    string
		moving  [3]r2.Vec
		flipped bool
	}{
		// Anti-parallel: the flip puts the endpoints on top of each other.
		{"anti-parallel", [3]r2.Vec{{X: 1}, {X: 0}, {X: .5, Y: 1}}, true},
		// Parallel but offset: the flip would make it worse.
		{"offset", [3]r2.Vec{{X: 0, Y: .1}, {X: 1, Y: .1}, {X: .5, Y: 1}}, false},
		// Under threshold: flip is never tried.
		{"aligned", [3]r2.Vec{{X: 0.001}, {X: 1.001}, {X: .5, Y: 1}}, false},
	} {
		uvs := []r2.Vec{{X: 0}, {X: 1}, test.moving[0], test.moving[1], test.moving[2]}
		center := d2.Mid(uvs[0], uvs[1])
		before := matchError(uvs, matchX, matchY)
		flipped, residual := resolveFlip(uvs, moving, center, matchX, matchY, threshold)
		if flipped != test.flipped {
			t.Errorf("%s: got flipped=%v, want %v", test.name, flipped, test.flipped)
		}
		if residual > before {
			t.Errorf("%s: residual grew from %g to %g", test.name, before, residual)
		}
		if math.Abs(residual-matchError(uvs, matchX, matchY)) > tol {
			t.Errorf("%s: reported residual does not match UVs", test.name)
		}
		if !flipped {
			for k, i := range moving {
				if !d2.EqualWithin(uvs[i], test.moving[k], tol) {
					t.Errorf("%s: rejected flip not undone: %v", test.name, uvs[i])
				}
			}
		}
	}
}

func TestMatchCoordinates(t *testing.T) {
	points := []r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1}}
	for _, theta := range []float64{0, pi / 2, -pi / 3, 3, -3} {
		rot := d2.Rotation(theta).About(r2.Vec{X: 1, Y: .5})
		target := make([]r2.Vec, len(points)+2) // longer target is ignored past the prefix
		for i, p := range points {
			target[i] = r2.Add(rot.ApplyPos(p), r2.Vec{X: 5, Y: -2})
		}
		tr := MatchCoordinates(points, target)
		if math.Abs(tr.Rotation-theta) > 1e-9 {
			t.Errorf("theta %g: got rotation %g", theta, tr.Rotation)
		}
		center := d2.Set(target[:len(points)]).Bounds().Center()
		apply := d2.Rotation(tr.Rotation).About(center).Mul(d2.Translation(tr.Translation))
		for i, p := range points {
			if got := apply.ApplyPos(p); !d2.EqualWithin(got, target[i], 1e-9) {
				t.Errorf("theta %g point %d: got %v, want %v", theta, i, got, target[i])
			}
		}
		if !d2.EqualWithin(tr.Scale, r2.Vec{X: 1, Y: 1}, 1e-9) {
			t.Errorf("theta %g: got scale %v", theta, tr.Scale)
		}
	}
	if tr := MatchCoordinates(nil, points); tr.Scale != (r2.Vec{X: 1, Y: 1}) || tr.Rotation != 0 {
		t.Errorf("empty input: %+v", tr)
	}
}

func TestSetAutoUVRoundTrip(t *testing.T) {
	m := twoQuads(t)
	f := m.Faces()[0]
	m.RefreshUVs()
	auto, _ := m.UVs(0)
	if err := m.SetAutoUV([]*Face{f}, false); err != nil {
		t.Fatal(err)
	}
	if !f.ManualUV || f.TextureGroup != -1 {
		t.Fatal("face not switched to manual")
	}
	// Hand edit: rotate the unit square 90 degrees and move it.
	manual := append([]r2.Vec(nil), auto...)
	edit := d2.Translation(r2.Vec{X: 3, Y: 4}).Mul(d2.Rotation(pi / 2).About(r2.Vec{X: .5, Y: .5}))
	for _, i := range f.DistinctIndices() {
		manual[i] = edit.ApplyPos(auto[i])
	}
	m.SetUVs(0, manual)
	m.SharedIndicesUV().Merge(f.DistinctIndices()...)

	if err := m.SetAutoUV([]*Face{f}, true); err != nil {
		t.Fatal(err)
	}
	if f.ManualUV {
		t.Fatal("face still manual")
	}
	if math.Abs(f.UV.Rotation-90) > 1e-9 {
		t.Errorf("got rotation %g degrees", f.UV.Rotation)
	}
	if f.UV.Scale != (r2.Vec{X: 1, Y: 1}) {
		t.Errorf("identity scale was overwritten with %v", f.UV.Scale)
	}
	got, _ := m.UVs(0)
	for _, i := range f.DistinctIndices() {
		if !d2.EqualWithin(got[i], manual[i], 1e-9) {
			t.Errorf("vertex %d: auto UV %v does not match manual layout %v", i, got[i], manual[i])
		}
	}
	if m.SharedIndicesUV().Equivalent(0, 1) {
		t.Error("manual UV welds not split")
	}
}

func TestSetAutoUVScale(t *testing.T) {
	m := twoQuads(t)
	f := m.Faces()[1]
	m.SetAutoUV([]*Face{f}, false)
	uvs, _ := m.UVs(0)
	for _, i := range f.DistinctIndices() {
		p := m.Position(i)
		uvs[i] = r2.Vec{X: 3 * p.X, Y: 3 * p.Y}
	}
	m.SetUVs(0, uvs)
	if err := m.SetAutoUV([]*Face{f}, true); err != nil {
		t.Fatal(err)
	}
	if !d2.EqualWithin(f.UV.Scale, r2.Vec{X: 3, Y: 3}, 1e-9) {
		t.Errorf("got scale %v", f.UV.Scale)
	}
}
