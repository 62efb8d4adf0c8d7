package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// Coerce returns a value that is at least min and at most max
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// TrimmedMean averages the inclusive index range [low..high] of the given,
// already sorted, values.
// Make sure that:
// 0 <= low <= high < len(sorted)
func TrimmedMean(sorted []float64, low int, high int) float64 {
	return Avg(sorted[low : high+1])
}

// IsFinite returns false for NaN and +/-Inf
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
