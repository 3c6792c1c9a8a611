package d3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d bounding box.
type Box r3.Box

// Size returns the extent of the box along each axis.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}
