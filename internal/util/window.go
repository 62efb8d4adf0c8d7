package util

import (
	"sort"

	"github.com/asecurityteam/rolling"
)

func CreateRollingWindow(size int) *rolling.PointPolicy {
	return rolling.NewPointPolicy(rolling.NewWindow(size))
}

// GetWindowValues returns a copy of all points currently held by the window,
// in bucket order
func GetWindowValues(window *rolling.PointPolicy) []float64 {
	var values []float64
	window.Reduce(func(w rolling.Window) float64 {
		values = make([]float64, 0, len(w))
		for _, bucket := range w {
			values = append(values, bucket...)
		}
		return 0
	})
	return values
}

// GetSortedWindowValues returns a copy of all points of the window, sorted ascending
func GetSortedWindowValues(window *rolling.PointPolicy) []float64 {
	values := GetWindowValues(window)
	sort.Float64s(values)
	return values
}
