package render

import "io"

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<8)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		if err != nil {
			break
		}
		result = append(result, buf[:nt]...)
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}
