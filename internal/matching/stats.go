package matching

import (
	"math"
	"sort"
)

// median returns the middle value of the finite entries in xs. NaN entries
// are ignored; an all-NaN or empty sample yields NaN.
func median(xs []float64) float64 {
	cp := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			cp = append(cp, v)
		}
	}
	if len(cp) == 0 {
		return math.NaN()
	}
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 1 {
		return cp[mid]
	}
	return 0.5 * (cp[mid-1] + cp[mid])
}

// meanStd returns the mean and population standard deviation of the finite
// entries in xs, plus how many finite entries there were.
func meanStd(xs []float64) (mean, std float64, n int) {
	sum := 0.0
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN(), math.NaN(), 0
	}
	mean = sum / float64(n)
	varSum := 0.0
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		d := v - mean
		varSum += d * d
	}
	return mean, math.Sqrt(varSum / float64(n)), n
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
