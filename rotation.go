package xtid

import "math"

// rotationMatrix converts degrees to a 2x2 rotation matrix [cos, -sin, sin, cos].
func rotationMatrix(degrees float64) []float64 {
	rad := degrees * math.Pi / 180
	return []float64{math.Cos(rad), -math.Sin(rad), math.Sin(rad), math.Cos(rad)}
}
