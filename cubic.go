package xtid

import "math"

// cubic is a cubic bezier timing curve, like CSS cubic-bezier().
type cubic struct {
	curves []float64
}

func newCubic(curves []float64) *cubic {
	return &cubic{curves: curves}
}

// value returns the curve's Y for a given X (time), extrapolating linearly
// outside [0, 1] and binary-searching the bezier parameter inside.
func (c *cubic) value(t float64) float64 {
	if t <= 0.0 {
		startGradient := 0.0
		if c.curves[0] > 0.0 {
			startGradient = c.curves[1] / c.curves[0]
		} else if c.curves[1] == 0.0 && c.curves[2] > 0.0 {
			startGradient = c.curves[3] / c.curves[2]
		}
		return startGradient * t
	}

	if t >= 1.0 {
		endGradient := 0.0
		if c.curves[2] < 1.0 {
			endGradient = (c.curves[3] - 1.0) / (c.curves[2] - 1.0)
		} else if c.curves[2] == 1.0 && c.curves[0] < 1.0 {
			endGradient = (c.curves[1] - 1.0) / (c.curves[0] - 1.0)
		}
		return 1.0 + endGradient*(t-1.0)
	}

	start := 0.0
	end := 1.0
	mid := 0.0
	for {
		mid = (start + end) / 2
		xEst := bezier(c.curves[0], c.curves[2], mid)
		if math.Abs(t-xEst) < 0.00001 {
			return bezier(c.curves[1], c.curves[3], mid)
		}
		// Interval collapsed onto adjacent floats; further halving makes
		// no progress.
		if math.Abs(end-start) < 0x1p-52 {
			break
		}
		if xEst < t {
			start = mid
		} else {
			end = mid
		}
	}
	return bezier(c.curves[1], c.curves[3], mid)
}

// bezier evaluates 3*p1*(1-m)²*m + 3*p2*(1-m)*m² + m³.
func bezier(p1, p2, m float64) float64 {
	return 3.0*p1*(1-m)*(1-m)*m + 3.0*p2*(1-m)*m*m + m*m*m
}
