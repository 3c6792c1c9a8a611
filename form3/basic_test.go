package form3_test

import (
	"math"
	"testing"

	"github.com/soypat/pmesh/form3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCube(t *testing.T) {
	m, err := form3.Cube(r3.Vec{X: 1, Y: 2, Z: 3})
	if err != nil {
		t.Fatal(err)
	}
	if m.FaceCount() != 6 || m.VertexCount() != 24 {
		t.Fatalf("got %d faces and %d vertices", m.FaceCount(), m.VertexCount())
	}
	if got := m.SharedIndices().GroupCount(); got != 8 {
		t.Errorf("expected 8 welded corners, got %d", got)
	}
	for i, f := range m.Faces() {
		if _, ok := f.ToQuad(); !ok {
			t.Errorf("side %d is not a quad", i)
		}
		n := m.FaceNormal(f)
		c := r3.Vec{}
		for _, j := range f.DistinctIndices() {
			c = r3.Add(c, m.Position(j))
		}
		if r3.Dot(n, c) <= 0 {
			t.Errorf("side %d normal %v points inwards", i, n)
		}
	}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
	if _, err := form3.Cube(r3.Vec{X: 1, Y: -1, Z: 1}); err == nil {
		t.Error("expected error for negative size")
	}
}

func TestPlane(t *testing.T) {
	m, err := form3.Plane(r2.Vec{X: 2, Y: 1}, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if m.FaceCount() != 8 || m.VertexCount() != 15 {
		t.Fatalf("got %d faces and %d vertices", m.FaceCount(), m.VertexCount())
	}
	for i, f := range m.Faces() {
		if n := m.FaceNormal(f); math.Abs(n.Z-1) > 1e-12 {
			t.Errorf("face %d normal %v", i, n)
		}
	}
	if _, err := form3.Plane(r2.Vec{X: 1, Y: 1}, 0, 1); err == nil {
		t.Error("expected error for zero divisions")
	}
}

func TestSphere(t *testing.T) {
	const radius = 2
	m, err := form3.Sphere(radius, 20)
	if err != nil {
		t.Fatal(err)
	}
	if m.FaceCount() == 0 {
		t.Fatal("no faces")
	}
	cellSize := 2 * radius / 20.
	for i, p := range m.Positions() {
		if d := math.Abs(r3.Norm(p) - radius); d > cellSize {
			t.Fatalf("vertex %d at distance %g from surface", i, d)
		}
	}
	// Marching cubes emits triangles with their own vertices.
	if m.SharedIndices().GroupCount() >= m.VertexCount() {
		t.Error("tessellated vertices were not welded")
	}
	if _, err := form3.FromSDF(nil, 10); err == nil {
		t.Error("expected error for nil SDF")
	}
}
