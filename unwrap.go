package pmesh

import (
	"github.com/soypat/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Fill decides how projected UVs are fitted before the unwrap transform.
type Fill int

const (
	// FillTile keeps the projected scale.
	FillTile Fill = iota
	// FillFit scales uniformly into the unit square.
	FillFit
	// FillStretch scales each axis into [0,1].
	FillStretch
)

// AutoUnwrapSettings are the parameters applied to a face's projected UVs
// while it is not manually edited.
type AutoUnwrapSettings struct {
	// UseWorldSpace keeps the projected coordinates in place. When false
	// the lower left corner of the projection is moved to the origin.
	UseWorldSpace bool
	FlipU         bool
	FlipV         bool
	SwapUV        bool
	Fill          Fill
	// Scale multiplies the UVs about their center. (1,1) is identity.
	Scale r2.Vec
	// Offset is subtracted from the UVs.
	Offset r2.Vec
	// Rotation in degrees, counter-clockwise about the UV center.
	Rotation float64
}

// NewAutoUnwrapSettings returns identity settings.
func NewAutoUnwrapSettings() AutoUnwrapSettings {
	return AutoUnwrapSettings{Scale: r2.Vec{X: 1, Y: 1}}
}

// Reset restores identity settings.
func (s *AutoUnwrapSettings) Reset() {
	*s = NewAutoUnwrapSettings()
}

// ApplyUnwrapSettings transforms projected uvs in place. The steps run in
// order: fill, lower left anchor (unless UseWorldSpace), flips and swap,
// offset, rotation about the bounds center and finally scale about the
// bounds center.
func ApplyUnwrapSettings(uvs []r2.Vec, s AutoUnwrapSettings) {
	if len(uvs) == 0 {
		return
	}
	switch s.Fill {
	case FillFit:
		FitUVs(uvs)
	case FillStretch:
		stretchUVs(uvs)
	}
	set := d2.Set(uvs)
	if !s.UseWorldSpace {
		d2.Translation(r2.Scale(-1, set.Min())).ApplySet(set)
	}
	for i, uv := range uvs {
		if s.FlipU {
			uv.X = -uv.X
		}
		if s.FlipV {
			uv.Y = -uv.Y
		}
		if s.SwapUV {
			uv.X, uv.Y = uv.Y, uv.X
		}
		uvs[i] = r2.Sub(uv, s.Offset)
	}
	if s.Rotation != 0 {
		center := set.Bounds().Center()
		d2.Rotation(DtoR(s.Rotation)).About(center).ApplySet(set)
	}
	if s.Scale != (r2.Vec{X: 1, Y: 1}) && s.Scale != (r2.Vec{}) {
		center := set.Bounds().Center()
		d2.Scaling(s.Scale).About(center).ApplySet(set)
	}
}

// Transform2D is a similarity-like transform between two UV layouts.
type Transform2D struct {
	Translation r2.Vec
	// Rotation in radians, counter-clockwise.
	Rotation float64
	// Scale per axis. Informational, callers may ignore it.
	Scale r2.Vec
}

// RefreshUVs re-projects the primary UV channel of every face that is not
// manually unwrapped. Faces sharing a texture group are projected as one
// patch with the settings of the group's first face.
func (m *Mesh) RefreshUVs() {
	done := make(map[*Face]bool, len(m.faces))
	for _, f := range m.faces {
		if f.ManualUV || done[f] || !f.IsValid() {
			continue
		}
		batch := []*Face{f}
		if f.TextureGroup >= 0 {
			for _, g := range m.faces {
				if g != f && !g.ManualUV && g.TextureGroup == f.TextureGroup && g.IsValid() {
					batch = append(batch, g)
				}
			}
		}
		for _, g := range batch {
			done[g] = true
		}
		m.projectAuto(batch, f.UV)
	}
}

// projectAuto planar projects the union of the batch's vertices with the
// batch's average normal and writes the result to channel 0.
func (m *Mesh) projectAuto(batch []*Face, s AutoUnwrapSettings) {
	indices := distinctIndices(distinctOf(batch))
	uvs := PlanarProject(m.positionsOf(indices), m.averageNormal(batch))
	ApplyUnwrapSettings(uvs, s)
	for i, idx := range indices {
		m.uv0[idx] = uvs[i]
	}
}
