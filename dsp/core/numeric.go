package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Sanitize clamps value to [min, max] and replaces non-finite input with def.
func Sanitize(value, min, max, def float64) float64 {
	if !IsFinite(value) {
		return def
	}
	return Clamp(value, min, max)
}
