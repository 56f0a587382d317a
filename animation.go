package xtid

import (
	"fmt"
	"math"
	"strings"
)

// totalAnimationTime is the loading animation's duration in milliseconds.
const totalAnimationTime = 4096.0

// deriveAnimationKey converts the frame row selected by the key bytes into
// the animation key string. It is total over validated KeyMaterial: every
// selector was bounds-checked at construction, so there is no error path.
//
// The rounding modes, truncation order and hex layout below mirror the
// verifier's own embedded algorithm and must not be "improved".
func deriveAnimationKey(m *KeyMaterial) string {
	frameTime := 1.0
	for _, idx := range m.indices.frameTime {
		frameTime *= float64(m.keyBytes[idx] % rowIndexModulus)
	}
	frameTime = jsRound(frameTime/10) * 10

	return animate(m.selectedRow(), frameTime/totalAnimationTime)
}

// solve scales a 0-255 sample into [minVal, maxVal], either flooring or
// rounding to two decimals.
func solve(value, minVal, maxVal float64, rounding bool) float64 {
	result := value*(maxVal-minVal)/255 + minVal
	if rounding {
		return math.Floor(result)
	}
	return math.Round(result*100) / 100
}

// animate evaluates the frame row at the target time and assembles the key:
// interpolated color channels, then the rotation matrix in hex, with dots
// and minus signs stripped.
func animate(row []int, targetTime float64) string {
	fromColor := []float64{float64(row[0]), float64(row[1]), float64(row[2]), 1}
	toColor := []float64{float64(row[3]), float64(row[4]), float64(row[5]), 1}
	fromRotation := []float64{0.0}
	toRotation := []float64{solve(float64(row[6]), 60.0, 360.0, true)}

	curveRow := row[7:]
	curves := make([]float64, len(curveRow))
	for i, item := range curveRow {
		curves[i] = solve(float64(item), oddCoefficient(i), 1.0, false)
	}

	val := newCubic(curves).value(targetTime)

	color := interpolate(fromColor, toColor, val)
	for i := range color {
		color[i] = math.Max(0, math.Min(255, color[i]))
	}

	rotation := interpolate(fromRotation, toRotation, val)
	matrix := rotationMatrix(rotation[0])

	parts := make([]string, 0, 9)
	for i := 0; i < 3; i++ {
		parts = append(parts, fmt.Sprintf("%x", int(math.Round(color[i]))))
	}
	for _, v := range matrix {
		rounded := math.Round(v*100) / 100
		parts = append(parts, strings.ToLower(floatToHex(math.Abs(rounded))))
	}
	parts = append(parts, "0", "0")

	key := strings.Join(parts, "")
	return strings.NewReplacer(".", "", "-", "").Replace(key)
}
