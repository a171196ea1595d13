package aggregators

import "math"

// Mean returns the arithmetic mean of values. It reports false for an empty
// slice instead of dividing by zero.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Round rounds v to the given number of decimals, halves away from zero.
// A decimal half such as 1.015 is stored slightly below itself in binary,
// so the scaled result is nudged up when v lies at or past the midpoint.
func Round(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}
	scale := math.Pow10(decimals)
	f := math.Round(v * scale)
	if v > 0 && (f+0.5)/scale <= v {
		f++
	} else if v < 0 && (f-0.5)/scale >= v {
		f--
	}
	return f / scale
}
