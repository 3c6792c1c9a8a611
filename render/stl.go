package render

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/soypat/pmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const headerPrefix = "pmesh "

// CreateSTL streams the triangles of a Renderer to a binary STL file. If the
// renderer has an ID method the identifier is stored in the file header.
func CreateSTL(path string, r Renderer) error {
	return createSTL(path, r)
}

// WriteMeshSTL writes the faces of m to w in binary STL format, tagging the
// header with the mesh identifier.
func WriteMeshSTL(w io.Writer, m *pmesh.Mesh) error {
	return writeSTL(w, Triangles(m), m.ID)
}

// WriteSTL writes model triangles to a writer in STL file format.
func WriteSTL(w io.Writer, model []Triangle3) error {
	return writeSTL(w, model, uuid.Nil)
}

func writeSTL(w io.Writer, model []Triangle3, id uuid.UUID) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	header := newSTLHeader(id, len(model))
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return errors.Wrap(err, "writing STL header")
	}
	var b [50]byte
	for _, triangle := range model {
		stlFromTriangle3(triangle).put(b[:])
		_, err := io.Copy(w, bytes.NewReader(b[:]))
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadSTL reads a binary STL file. The returned identifier is uuid.Nil unless
// the file was written by this package from a mesh.
func ReadSTL(r io.Reader) ([]Triangle3, uuid.UUID, error) {
	return readBinarySTL(r)
}

// stlHeader defines the STL file header.
type stlHeader struct {
	Header [80]uint8
	Count  uint32 // Number of triangles
}

func newSTLHeader(id uuid.UUID, count int) stlHeader {
	h := stlHeader{Count: uint32(count)}
	if id != uuid.Nil {
		copy(h.Header[:], headerPrefix+id.String())
	}
	return h
}

func (h stlHeader) id() uuid.UUID {
	s := string(h.Header[:])
	if !strings.HasPrefix(s, headerPrefix) {
		return uuid.Nil
	}
	id, err := uuid.Parse(s[len(headerPrefix) : len(headerPrefix)+36])
	if err != nil {
		return uuid.Nil
	}
	return id
}

const trianglesInBuffer = 1 << 10

type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]Triangle3
}

func (w *stlReader) Read(b []byte) (int, error) {
	const stlTriangleSize = 50
	ntMax := min(len(b)/stlTriangleSize, len(w.buf))

	if ntMax == 0 {
		return 0, errors.New("stlWriter requires at least 50 bytes to write a single triangle")
	}

	var (
		err error
		it  int // Number of triangles written to byte buffer
		nt  int // number of triangles read during ReadTriangles
		d   stlTriangle
	)

	for it < ntMax && err == nil {
		// remaining space in byte buffer for triangles and prevent overflow.
		remaining := len(b)/stlTriangleSize - it
		nt, err = w.r.ReadTriangles(w.buf[:min(ntMax, remaining)])
		if nt > ntMax {
			panic("bug: ReadTriangles read more triangles than available in buffer")
		}
		if nt*stlTriangleSize > len(b[it*stlTriangleSize:]) {
			panic("bug: buffer overflow")
		}
		for _, triangle := range w.buf[:nt] {
			d = stlFromTriangle3(triangle)
			d.put(b[it*stlTriangleSize:])
			it++
		}
	}
	return it * stlTriangleSize, err
}

func createSTL(path string, r Renderer) error {
	const sizeOfSTLHeader = 84
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	// Do not write header.
	_, err = file.Seek(sizeOfSTLHeader, 0)
	if err != nil {
		return err
	}
	rd := &stlReader{
		r: r,
	}
	n, err := io.CopyBuffer(file, rd, make([]byte, 50*trianglesInBuffer))
	if err != nil {
		return errors.Wrap(err, "streaming STL triangles")
	}
	if n == 0 {
		return errors.New("renderer produced no triangles")
	}
	_, err = file.Seek(0, 0)
	if err != nil {
		return err
	}
	var id uuid.UUID
	if ider, ok := r.(interface{ ID() uuid.UUID }); ok {
		id = ider.ID()
	}
	header := newSTLHeader(id, int(n/50)) // size of stl triangles is 50
	if err = binary.Write(file, binary.LittleEndian, &header); err != nil {
		return err
	}
	return nil
}

func readBinarySTL(r io.Reader) (output []Triangle3, id uuid.UUID, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, uuid.Nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, uuid.Nil, errors.Wrap(err, "STL header read failed")
	}
	if header.Count == 0 {
		return nil, uuid.Nil, errors.New("STL header indicates 0 triangles present")
	}
	id = header.id()
	var (
		buf            [50]byte
		d              stlTriangle
		i              int
		normMismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, errCalculatedNormalMismatch) {
			readErr = errors.WithMessagef(readErr, "%d/%d STL triangles read", i+1, header.Count)
		}
	}()
	for i = 0; i < int(header.Count); i++ {
		var n int
		for n < 50 {
			nr, err := r.Read(buf[n:])
			if err != nil {
				return nil, id, err
			}
			n += nr
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if errors.Is(err, errCalculatedNormalMismatch) {
				normMismatches++
				if normMismatches > 10_000 {
					// This may be valid output, so we return the triangles.
					return output, id, errors.Errorf("got too many normal vector mismatches (%d)", normMismatches)
				}
				readErr = err
			} else {
				return nil, id, err
			}
		}
		output = append(output, d.toTriangle3())
	}
	// NormalMismatch error validation may be returned.
	// For high resolution models this error may be incorrectly returned.
	return output, id, readErr
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to marshal stlTriangle")
	}

	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

var errCalculatedNormalMismatch = errors.New("triangle normal not approximately equal to calculated normal from vertices. Ignore this error if model is OK")

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.degenerate(epsilon) {
		return errors.New("triangle is degenerate")
	}
	calcNormal := t.normalFromVertices()
	calcNormalNeg := [3]float32{-calcNormal[0], -calcNormal[1], -calcNormal[2]}
	if !equalWithin3F32(calcNormal, t.Normal, normTol) && !equalWithin3F32(calcNormalNeg, t.Normal, normTol) {
		return errCalculatedNormalMismatch // sometimes may fail
	}
	return nil
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func (t stlTriangle) normalFromVertices() [3]float32 {
	v1 := r3.Scale(10, r3From3F32(t.Vertex1))
	v2 := r3.Scale(10, r3From3F32(t.Vertex2))
	v3 := r3.Scale(10, r3From3F32(t.Vertex3))
	e1 := v2.Sub(v1)
	e2 := v3.Sub(v1)
	n := r3.Unit(r3.Cross(e1, e2))
	n32 := [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
	return n32
}

// Degenerate returns true if the triangle is degenerate.
func (t stlTriangle) degenerate(tol float32) bool {
	return equalWithin3F32(t.Vertex1, t.Vertex2, tol) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, tol) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, tol)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func (d stlTriangle) toTriangle3() Triangle3 {
	return Triangle3{
		r3From3F32(d.Vertex1),
		r3From3F32(d.Vertex2),
		r3From3F32(d.Vertex3),
	}
}

func f32From3(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func stlFromTriangle3(t Triangle3) stlTriangle {
	return stlTriangle{
		Normal:  f32From3(t.Normal()),
		Vertex1: f32From3(t[0]),
		Vertex2: f32From3(t[1]),
		Vertex3: f32From3(t[2]),
	}
}
