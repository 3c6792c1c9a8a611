package pmesh

import (
	"testing"

	"github.com/soypat/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestApplyUnwrapSettings(t *testing.T) {
	square := func() []r2.Vec {
		return []r2.Vec{{X: 2, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 2}, {X: 2, Y: 2}}
	}
	for _, test := range []struct {
		name  string
		setup func(s *AutoUnwrapSettings)
		want  []r2.Vec
	}{
		{"identity", func(s *AutoUnwrapSettings) {},
			[]r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1}}},
		{"world space", func(s *AutoUnwrapSettings) { s.UseWorldSpace = true },
			square()},
		{"fit", func(s *AutoUnwrapSettings) { s.Fill = FillFit },
			[]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: .5}, {X: 0, Y: .5}}},
		{"stretch", func(s *AutoUnwrapSettings) { s.Fill = FillStretch },
			[]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}},
		{"flip u", func(s *AutoUnwrapSettings) { s.FlipU = true },
			[]r2.Vec{{X: 0, Y: 0}, {X: -2, Y: 0}, {X: -2, Y: 1}, {X: 0, Y: 1}}},
		{"swap", func(s *AutoUnwrapSettings) { s.SwapUV = true },
			[]r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 0}}},
		{"offset", func(s *AutoUnwrapSettings) { s.Offset = r2.Vec{X: 1, Y: -1} },
			[]r2.Vec{{X: -1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: -1, Y: 2}}},
		{"rotation", func(s *AutoUnwrapSettings) { s.Rotation = 180 },
			[]r2.Vec{{X: 2, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}, {X: 2, Y: 0}}},
		{"scale", func(s *AutoUnwrapSettings) { s.Scale = r2.Vec{X: 2, Y: .5} },
			[]r2.Vec{{X: -1, Y: .25}, {X: 3, Y: .25}, {X: 3, Y: .75}, {X: -1, Y: .75}}},
	} {
		s := NewAutoUnwrapSettings()
		test.setup(&s)
		uvs := square()
		ApplyUnwrapSettings(uvs, s)
		for i := range uvs {
			if !d2.EqualWithin(uvs[i], test.want[i], tol) {
				t.Errorf("%s: uv %d got %v, want %v", test.name, i, uvs[i], test.want[i])
			}
		}
	}
}

func TestAutoUnwrapSettingsReset(t *testing.T) {
	s := AutoUnwrapSettings{FlipU: true, Rotation: 30, Fill: FillFit}
	s.Reset()
	if s != NewAutoUnwrapSettings() {
		t.Errorf("got %+v", s)
	}
}

func TestRefreshUVsTextureGroup(t *testing.T) {
	positions := []r3.Vec{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 2, Y: 1},
		{X: 5, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 1}, {X: 5, Y: 1},
	}
	f1, _ := NewFace(quad(0, 1, 2, 3))
	f2, _ := NewFace(quad(4, 5, 6, 7))
	f3, _ := NewFace(quad(8, 9, 10, 11))
	m, err := NewMesh(positions, []*Face{f1, f2, f3})
	if err != nil {
		t.Fatal(err)
	}
	f1.TextureGroup, f2.TextureGroup = 1, 1
	f3.ManualUV = true
	manual, _ := m.UVs(0)
	manual[8] = r2.Vec{X: 42}
	m.SetUVs(0, manual)

	m.RefreshUVs()
	uvs, _ := m.UVs(0)
	// f1 and f2 are one patch anchored at f1's corner.
	if !d2.EqualWithin(uvs[4], r2.Vec{X: 2}, tol) {
		t.Errorf("grouped face projected alone: %v", uvs[4])
	}
	if uvs[8] != (r2.Vec{X: 42}) {
		t.Errorf("manual face re-projected: %v", uvs[8])
	}

	f2.TextureGroup = -1
	m.RefreshUVs()
	uvs, _ = m.UVs(0)
	if !d2.EqualWithin(uvs[4], r2.Vec{}, tol) {
		t.Errorf("ungrouped face not anchored: %v", uvs[4])
	}
}
