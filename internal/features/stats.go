package features

import (
	"math"
	"sort"
)

// mean returns the arithmetic mean of values, or false for an empty slice.
func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// median returns the middle value (or midpoint of the two middle values)
// without mutating the input.
func median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, true
	}
	return sorted[mid], true
}

// mode returns the most frequent value; ties break toward the value seen
// first in input order.
func mode(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(values))
	max := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > max {
			max = counts[v]
		}
	}
	for _, v := range values {
		if counts[v] == max {
			return v, true
		}
	}
	return values[0], true
}

// distribution returns the percentage share of each distinct value,
// summing to 100 over a non-empty input.
func distribution(values []string) map[string]float64 {
	if len(values) == 0 {
		return nil
	}
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	shares := make(map[string]float64, len(counts))
	for v, count := range counts {
		shares[v] = float64(count) / float64(len(values)) * 100
	}
	return shares
}

// safeDivide returns numerator/denominator, or false when the denominator
// is zero.
func safeDivide(numerator, denominator float64) (float64, bool) {
	if denominator == 0 {
		return 0, false
	}
	return numerator / denominator, true
}

// round2 rounds to two decimal places for presentation stability. Ratio
// inputs stay unrounded; only the final figure passes through here.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
