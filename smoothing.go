package pmesh

import (
	"image/color"

	"github.com/soypat/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// SmoothingGroupNone marks faces with hard edges.
const SmoothingGroupNone = 0

// GroupBySmoothingGroup partitions faces by smoothing group. Groups are
// listed in first-seen order and faces keep their input order.
func GroupBySmoothingGroup(faces []*Face) [][]*Face {
	var groups [][]*Face
	index := make(map[int]int)
	for _, f := range faces {
		i, ok := index[f.SmoothingGroup]
		if !ok {
			i = len(groups)
			index[f.SmoothingGroup] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], f)
	}
	return groups
}

// Kelly's maximum contrast colors.
var kellyColors = [...]color.NRGBA{
	{230, 25, 75, 255},   // red
	{60, 180, 75, 255},   // green
	{255, 225, 25, 255},  // yellow
	{0, 130, 200, 255},   // blue
	{245, 130, 48, 255},  // orange
	{145, 30, 180, 255},  // purple
	{70, 240, 240, 255},  // cyan
	{240, 50, 230, 255},  // magenta
	{210, 245, 60, 255},  // lime
	{250, 190, 190, 255}, // pink
	{0, 128, 128, 255},   // teal
	{230, 190, 255, 255}, // lavender
	{170, 110, 40, 255},  // brown
	{255, 250, 200, 255}, // beige
	{128, 0, 0, 255},     // maroon
	{170, 255, 195, 255}, // mint
	{128, 128, 0, 255},   // olive
	{255, 215, 180, 255}, // coral
	{0, 0, 128, 255},     // navy
	{128, 128, 128, 255}, // grey
	{255, 255, 255, 255}, // white
	{0, 0, 0, 255},       // black
}

// SmoothingGroupColor returns a color that tells smoothing group g apart
// from its neighbours. Hard edged faces get a transparent color.
func SmoothingGroupColor(g int) color.NRGBA {
	if g <= SmoothingGroupNone {
		return color.NRGBA{}
	}
	return kellyColors[g%len(kellyColors)]
}

// SetSmoothingGroup assigns group g to faces.
func (m *Mesh) SetSmoothingGroup(faces []*Face, g int) error {
	if g < SmoothingGroupNone {
		return errInvalidGroup(g)
	}
	for _, f := range faces {
		f.SmoothingGroup = g
	}
	return nil
}

// Normals returns per-vertex unit normals. Vertices of hard edged faces
// take their face normal. Position welded vertices of faces in the same
// smoothing group share the average of those faces' normals.
func (m *Mesh) Normals() []r3.Vec {
	normals := make([]r3.Vec, len(m.positions))
	type key struct{ group, weld int }
	sums := make(map[key]r3.Vec)
	faceNormals := make([]r3.Vec, len(m.faces))
	for fi, f := range m.faces {
		n := m.FaceNormal(f)
		faceNormals[fi] = n
		if f.SmoothingGroup == SmoothingGroupNone {
			continue
		}
		for _, i := range f.DistinctIndices() {
			k := key{f.SmoothingGroup, m.shared.Canonical(i)}
			sums[k] = r3.Add(sums[k], n)
		}
	}
	for fi, f := range m.faces {
		for _, i := range f.DistinctIndices() {
			if f.SmoothingGroup == SmoothingGroupNone {
				normals[i] = faceNormals[fi]
				continue
			}
			normals[i] = d3.Unit(sums[key{f.SmoothingGroup, m.shared.Canonical(i)}])
		}
	}
	return normals
}
