package d2

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Box is a 2d bounding box.
type Box r2.Box

// Size returns the extent of the box along each axis.
func (a Box) Size() r2.Vec {
	return r2.Sub(a.Max, a.Min)
}

// Center returns the midpoint of the box.
func (a Box) Center() r2.Vec {
	return Mid(a.Min, a.Max)
}
