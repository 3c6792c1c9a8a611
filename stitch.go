package pmesh

import (
	"math"

	"github.com/pkg/errors"
	"github.com/soypat/pmesh/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// AutoStitch lays the UVs of f2 next to f1 along a border edge the two faces
// share through the position weld table. f2 is re-projected, scaled,
// moved and rotated so the shared edge lines up with f1's, then the two
// matched endpoint pairs are welded in UV space. Both faces become manually
// unwrapped. ok is false when the faces share no border edge.
func (m *Mesh) AutoStitch(f1, f2 *Face, channel int) (ok bool, err error) {
	if f1 == nil || f2 == nil {
		return false, errors.Wrap(ErrInvalidArgument, "nil face")
	}
	if _, err := m.uvs(channel); err != nil {
		return false, err
	}
	if err := checkIndices(append(f1.Indices(), f2.indices...), len(m.positions)); err != nil {
		return false, err
	}
	for _, e1 := range f1.Edges() {
		for _, e2 := range f2.Edges() {
			if !equivalentEdge(m.shared, e1, e2) {
				continue
			}
			if err := m.ProjectFacesAuto([]*Face{f2}, channel); err != nil {
				return false, err
			}
			f1.ManualUV, f2.ManualUV = true, true
			f1.TextureGroup, f2.TextureGroup = -1, -1
			m.alignEdges(f1, f2, e1, e2, channel)
			return true, nil
		}
	}
	debugf("auto stitch: faces [%v] and [%v] share no border edge", f1, f2)
	return false, nil
}

// alignEdges transforms the UVs of f2 so edge e2 lies on top of edge e1
// of f1 and welds the matched endpoints.
func (m *Mesh) alignEdges(f1, f2 *Face, e1, e2 Edge, channel int) {
	uvs, _ := m.uvs(channel)
	threshold := m.Config.withDefaults().AlignErrorThreshold
	matchX := [2]int{e1.X, -1}
	matchY := [2]int{e1.Y, -1}
	if m.shared.Equivalent(e1.X, e2.X) {
		matchX[1], matchY[1] = e2.X, e2.Y
	} else {
		matchX[1], matchY[1] = e2.Y, e2.X
	}
	moving := f2.DistinctIndices()

	// Scale about the origin, the translation below fixes the position.
	if l2 := d2.Dist(uvs[e2.X], uvs[e2.Y]); l2 > 0 {
		k := d2.Dist(uvs[e1.X], uvs[e1.Y]) / l2
		for _, i := range moving {
			uvs[i] = r2.Scale(k, uvs[i])
		}
	}
	center := d2.Mid(uvs[e1.X], uvs[e1.Y])
	diff := r2.Sub(center, d2.Mid(uvs[e2.X], uvs[e2.Y]))
	for _, i := range moving {
		uvs[i] = r2.Add(uvs[i], diff)
	}
	from := r2.Sub(uvs[matchY[1]], uvs[matchX[1]])
	to := r2.Sub(uvs[matchY[0]], uvs[matchX[0]])
	rotateIndices(uvs, moving, center, d2.SignedAngle(from, to))

	flipped, residual := resolveFlip(uvs, moving, center, matchX, matchY, threshold)
	debugf("auto stitch: residual %.4g flipped=%v", residual, flipped)

	// Split all of f2 and only weld the matched pairs back so unrelated
	// shared vertices are not contaminated.
	m.sharedUV.detachAll(moving)
	m.sharedUV.union(matchX[0], matchX[1])
	m.sharedUV.union(matchY[0], matchY[1])
	m.sharedUV.RemoveEmpty()
}

func rotateIndices(uvs []r2.Vec, indices []int, center r2.Vec, theta float64) {
	if theta == 0 {
		return
	}
	t := d2.Rotation(theta).About(center)
	for _, i := range indices {
		uvs[i] = t.ApplyPos(uvs[i])
	}
}

// matchError is the summed distance between both matched endpoint pairs.
func matchError(uvs []r2.Vec, matchX, matchY [2]int) float64 {
	return d2.Dist(uvs[matchX[0]], uvs[matchX[1]]) + d2.Dist(uvs[matchY[0]], uvs[matchY[1]])
}

// resolveFlip rotates the moving indices by 180 degrees about center when
// the residual endpoint error exceeds threshold and the flip lowers it.
// It returns whether the flip was kept and the resulting error.
func resolveFlip(uvs []r2.Vec, moving []int, center r2.Vec, matchX, matchY [2]int, threshold float64) (flipped bool, residual float64) {
	residual = matchError(uvs, matchX, matchY)
	if residual <= threshold {
		return false, residual
	}
	rotateIndices(uvs, moving, center, pi)
	if e := matchError(uvs, matchX, matchY); e < residual {
		return true, e
	}
	rotateIndices(uvs, moving, center, -pi)
	return false, residual
}

// MatchCoordinates computes the transform that lays points onto target.
// Only the first min(len(points), len(target)) elements are compared.
// Translation moves the bounds center of points onto the bounds center of
// target, Rotation then turns the points about that center so the direction
// of their first two elements matches target's. Scale is the ratio of the
// bounds sizes after rotation.
func MatchCoordinates(points, target []r2.Vec) Transform2D {
	n := len(points)
	if len(target) < n {
		n = len(target)
	}
	tr := Transform2D{Scale: r2.Vec{X: 1, Y: 1}}
	if n == 0 {
		return tr
	}
	tb := d2.Set(target[:n]).Bounds()
	center := tb.Center()
	tr.Translation = r2.Sub(center, d2.Set(points[:n]).Bounds().Center())
	transformed := make(d2.Set, n)
	for i := range transformed {
		transformed[i] = r2.Add(points[i], tr.Translation)
	}
	if n > 1 {
		td := r2.Sub(target[1], target[0])
		pd := r2.Sub(transformed[1], transformed[0])
		angle := d2.Angle(td, pd)
		// The unsigned angle loses direction, the perpendicular tells it back.
		if r2.Dot(d2.Perpendicular(td), pd) > 0 {
			angle = -angle
		}
		tr.Rotation = angle
		d2.Rotation(angle).About(center).ApplySet(transformed)
	}
	psize, tsize := transformed.Bounds().Size(), tb.Size()
	if psize.X != 0 {
		tr.Scale.X = tsize.X / psize.X
	}
	if psize.Y != 0 {
		tr.Scale.Y = tsize.Y / psize.Y
	}
	return tr
}

// SetAutoUV switches faces between automatic and manual unwrapping.
//
// Switching to automatic keeps the current look of manually unwrapped faces:
// their UV welds are split, settings reset and the faces re-projected, then
// offset and rotation are solved so the projection lands on the previous
// layout. Scale is solved too but only written when it strays from identity
// by more than Config.ScaleTolerance. Switching to manual flags the faces
// and clears their texture group.
func (m *Mesh) SetAutoUV(faces []*Face, auto bool) error {
	if err := checkFaces(faces); err != nil {
		return err
	}
	if !auto {
		for _, f := range faces {
			f.ManualUV = true
			f.TextureGroup = -1
		}
		return nil
	}
	var manual []*Face
	for _, f := range faces {
		if f.ManualUV {
			manual = append(manual, f)
		}
	}
	if len(manual) == 0 {
		return nil
	}
	all := AllTriangles(manual)
	if err := checkIndices(all, len(m.positions)); err != nil {
		return err
	}
	m.sharedUV.detachAll(all)
	origins := make([][]r2.Vec, len(manual))
	for i, f := range manual {
		origins[i] = m.valuesOf(m.uv0, f.DistinctIndices())
		f.UV.Reset()
		f.ManualUV = false
		f.ElementGroup = -1
	}
	m.RefreshUVs()
	tol := m.Config.withDefaults().ScaleTolerance
	for i, f := range manual {
		tr := MatchCoordinates(m.valuesOf(m.uv0, f.DistinctIndices()), origins[i])
		f.UV.Offset = r2.Scale(-1, tr.Translation)
		f.UV.Rotation = wrapDegrees(RtoD(tr.Rotation))
		if math.Abs(r2.Norm2(tr.Scale)-2) > tol {
			f.UV.Scale = tr.Scale
		}
	}
	m.RefreshUVs()
	return nil
}

func (m *Mesh) valuesOf(uvs []r2.Vec, indices []int) []r2.Vec {
	v := make([]r2.Vec, len(indices))
	for i, idx := range indices {
		v[i] = uvs[idx]
	}
	return v
}
