package render

import (
	"math"

	"github.com/pkg/errors"
	"github.com/soypat/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// FromTriangles builds an editable mesh from a triangle soup such as the
// contents of an STL file. Every triangle becomes a face with its own three
// vertices and vertices closer than vertexTol are welded. If vertexTol is 0
// it is inferred from the shortest triangle side. Degenerate triangles are
// dropped.
func FromTriangles(model []Triangle3, vertexTolOrZero float64) (*pmesh.Mesh, error) {
	if len(model) == 0 {
		return nil, errors.New("empty triangle slice")
	}
	minDist2 := math.MaxFloat64
	maxDist2 := -math.MaxFloat64
	for i := range model {
		for j, vert := range model[i] {
			side2 := r3.Norm2(r3.Sub(model[i][(j+1)%3], vert))
			if side2 > 0 {
				minDist2 = math.Min(minDist2, side2)
			}
			maxDist2 = math.Max(maxDist2, side2)
		}
	}
	if maxDist2 <= 0 {
		return nil, errors.New("all triangles are degenerate")
	}
	suggested := math.Sqrt(minDist2) / 256
	tol := vertexTolOrZero
	if tol > math.Sqrt(maxDist2)/2 {
		return nil, errors.Errorf("vertex tolerance is too large to generate appropiate mesh, suggested tolerance: %g", suggested)
	}
	if tol == 0 {
		tol = suggested
	}

	positions := make([]r3.Vec, 0, 3*len(model))
	faces := make([]*pmesh.Face, 0, len(model))
	for _, t := range model {
		if t.Degenerate(tol) {
			continue
		}
		base := len(positions)
		positions = append(positions, t[0], t[1], t[2])
		f, err := pmesh.NewFace([]int{base, base + 1, base + 2})
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}
	m, err := pmesh.NewMesh(positions, faces)
	if err != nil {
		return nil, err
	}
	m.WeldCoincident(tol)
	return m, nil
}
