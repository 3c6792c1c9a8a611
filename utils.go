package pmesh

import (
	"math"
)

const (
	pi  = math.Pi
	tau = 2 * pi
)

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

// wrapDegrees maps an angle in degrees to (-180, 180].
func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}
