package systems

import "math"

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// lerp interpolates from a toward b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// heading returns the unit vector pointing from (x1, y1) to (x2, y2).
func heading(x1, y1, x2, y2 float64) (float64, float64) {
	angle := math.Atan2(y2-y1, x2-x1)
	return math.Cos(angle), math.Sin(angle)
}

// uniform returns a draw in [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
