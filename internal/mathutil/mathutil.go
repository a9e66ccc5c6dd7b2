// Package mathutil holds the numeric helpers shared by scoring and the
// statistics display.
package mathutil

import (
	"cmp"
	"math"

	"github.com/shopspring/decimal"
)

func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev is the population standard deviation of xs.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := Mean(xs)
	stdev := 0.0
	for _, x := range xs {
		xi := x - mean
		stdev += xi * xi
	}
	return math.Sqrt(stdev / float64(len(xs)))
}

func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds half away from zero at the given number of decimal places,
// using the shortest decimal representation of v rather than its binary
// value, so 2.675 rounds to 2.68.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
