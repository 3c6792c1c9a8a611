package render

import (
	"image"
	"math"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"github.com/soypat/pmesh"
	"github.com/soypat/pmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Fauxgl converts m into a fauxgl mesh. Vertex normals come from the
// smoothing groups of m, texture coordinates from UV channel 0 and vertex
// colors from the smoothing group palette.
func Fauxgl(m *pmesh.Mesh) *fauxgl.Mesh {
	pos := m.Positions()
	normals := m.Normals()
	uvs, _ := m.UVs(0)
	var triangles []*fauxgl.Triangle
	for _, f := range m.Faces() {
		c := pmesh.SmoothingGroupColor(f.SmoothingGroup)
		col := fauxgl.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}
		for t := 0; t+2 < f.Len(); t += 3 {
			var v [3]fauxgl.Vertex
			for k := range v {
				i := f.Index(t + k)
				v[k] = fauxgl.Vertex{
					Position: fvec(pos[i]),
					Normal:   fvec(normals[i]),
					Texture:  fauxgl.V(uvs[i].X, uvs[i].Y, 0),
					Color:    col,
				}
			}
			triangles = append(triangles, fauxgl.NewTriangle(v[0], v[1], v[2]))
		}
	}
	return fauxgl.NewTriangleMesh(triangles)
}

func fvec(v r3.Vec) fauxgl.Vector { return fauxgl.V(v.X, v.Y, v.Z) }

// View configures the camera of Preview.
type View struct {
	// LookAt is the point the camera is aimed at.
	LookAt r3.Vec
	// Up is the up direction of the camera.
	Up r3.Vec
	// Eye is the position of the camera.
	Eye        r3.Vec
	Near, Far  float64
	Background string // hex color
	Color      string // hex object color
}

// DefaultView is an isometric view of a mesh fitted in a bi-unit cube.
var DefaultView = View{
	Up:         r3.Vec{Z: 1},
	Eye:        d3.Elem(2.4),
	Near:       1,
	Far:        10,
	Background: "#FFF8E3",
	Color:      "#468966",
}

// Preview renders a shaded image of m fitted in a bi-unit cube. The image is
// supersampled and downsampled for antialiasing.
func Preview(m *pmesh.Mesh, width, height int, view View) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid preview size %dx%d", width, height)
	}
	if m.FaceCount() == 0 {
		return nil, errors.New("mesh has no faces")
	}
	// BiUnitCube divides by the largest extent.
	size := d3.Box(m.Bounds()).Size()
	if math.Max(size.X, math.Max(size.Y, size.Z)) == 0 {
		return nil, errors.New("mesh has zero extent")
	}
	const (
		scale = 2  // supersampling
		fovy  = 30 // vertical field of view in degrees
	)
	mesh := Fauxgl(m)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor(view.Background))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(fvec(view.Eye), fvec(view.LookAt), fvec(view.Up)).Perspective(fovy, aspect, view.Near, view.Far)
	light := fauxgl.V(-0.75, 1, 0.25).Normalize()
	shader := fauxgl.NewPhongShader(matrix, light, fvec(view.Eye))
	shader.ObjectColor = fauxgl.HexColor(view.Color)
	context.Shader = shader
	context.DrawMesh(mesh)
	img := context.Image()
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear), nil
}

// SavePreview renders m with DefaultView and writes it as a PNG file.
func SavePreview(path string, m *pmesh.Mesh, width, height int) error {
	img, err := Preview(m, width, height, DefaultView)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}
