package core

import "sort"

// -----------------------------------------------------------------------------

// Mean computes the arithmetic mean. The second return is false for an
// empty input.
func Mean(data []float64) (float64, bool) {
	if len(data) == 0 {
		return 0, false
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data)), true
}

// -----------------------------------------------------------------------------

// WeightedMean computes sum(value*weight)/sum(weight). The second return is
// false when the weight total is zero.
func WeightedMean(values, weights []float64) (float64, bool) {
	if len(values) != len(weights) || len(values) == 0 {
		return 0, false
	}

	weightedSum := 0.0
	weightTotal := 0.0
	for i := range values {
		weightedSum += values[i] * weights[i]
		weightTotal += weights[i]
	}

	if weightTotal == 0 {
		return 0, false
	}
	return weightedSum / weightTotal, true
}

// -----------------------------------------------------------------------------

// Median computes the standard median: sort ascending, middle element for an
// odd count, average of the two middle elements for an even count. The
// second return is false for an empty input. The input slice is not mutated.
func Median(data []float64) (float64, bool) {
	n := len(data)
	if n == 0 {
		return 0, false
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2], true
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, true
}

// -----------------------------------------------------------------------------

// MinMax returns the smallest and largest values. The third return is false
// for an empty input.
func MinMax(data []float64) (float64, float64, bool) {
	if len(data) == 0 {
		return 0, 0, false
	}

	min, max := data[0], data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, true
}
