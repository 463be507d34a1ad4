// Package synth generates the dashboard's synthetic data. Every generator
// is a pure function of its seed or index and an explicit end instant, so
// identical inputs always yield identical output.
package synth

import "math"

// SeededRandom maps seed to a value in [0,1). It is a deterministic
// stand-in for a random source and carries no state between calls.
func SeededRandom(seed int) float64 {
	x := math.Sin(float64(seed)*9999) * 10000
	return x - math.Floor(x)
}

// PickIndex maps seed to an index in [0,n), or 0 when n is not positive.
func PickIndex(seed, n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(math.Floor(SeededRandom(seed) * float64(n)))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Pick returns the element of items selected by seed.
func Pick[T any](seed int, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[PickIndex(seed, len(items))]
}

// Weighted pairs a value with its probability in a sampling table.
type Weighted[T any] struct {
	Value       T
	Probability float64
}

// WeightedSample draws from options in table order: the first option whose
// cumulative probability exceeds the draw wins, otherwise the last option
// is returned.
func WeightedSample[T any](seed int, options []Weighted[T]) T {
	var zero T
	if len(options) == 0 {
		return zero
	}

	r := SeededRandom(seed)
	accumulated := 0.0
	for _, opt := range options {
		accumulated += opt.Probability
		if r < accumulated {
			return opt.Value
		}
	}
	return options[len(options)-1].Value
}
