package xtid

import "math"

// jsRound rounds with JavaScript Math.round semantics: halves go toward
// positive infinity, so -0.5 rounds to -0 rather than -1.
func jsRound(num float64) float64 {
	x := math.Floor(num)
	if num-x >= 0.5 {
		x = math.Ceil(num)
	}
	return math.Copysign(x, num)
}

// oddCoefficient returns -1 for odd indices and 0 for even ones. It sets the
// lower bound when scaling bezier control points.
func oddCoefficient(i int) float64 {
	if i%2 != 0 {
		return -1.0
	}
	return 0.0
}

func hexDigit(d int64) byte {
	if d > 9 {
		return byte(d) + 55 // 'A'..'F'
	}
	return byte(d) + '0'
}

// floatToHex converts a non-negative float to hex with uppercase digits,
// e.g. 10 -> "A", 0.5 -> "0.8". Non-terminating fractions are capped at 20
// characters, matching the verifier.
func floatToHex(x float64) string {
	if x == 0 {
		return "0"
	}

	quotient := int64(math.Floor(x))
	fraction := x - float64(quotient)

	var buf []byte
	if quotient == 0 {
		buf = append(buf, '0')
	} else {
		for quotient > 0 {
			buf = append([]byte{hexDigit(quotient % 16)}, buf...)
			quotient /= 16
		}
	}

	if fraction > 0 {
		buf = append(buf, '.')
		for fraction > 0 {
			fraction *= 16
			d := int64(math.Floor(fraction))
			fraction -= float64(d)
			buf = append(buf, hexDigit(d))
			if len(buf) > 20 {
				break
			}
		}
	}

	return string(buf)
}
