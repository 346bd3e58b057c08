package game

import (
	"math"
	"math/rand/v2"
)

// weighted pairs a candidate value with its selection weight. Weights do
// not need to sum to 1; a zero weight is never selected.
type weighted[T any] struct {
	value  T
	weight float64
}

func w[T any](value T, weight float64) weighted[T] {
	return weighted[T]{value: value, weight: weight}
}

// weightedChoice picks one value with probability weight_i / sum(weights).
// Panics if the table is empty or has no positive weight; the built-in
// tables are validated by tests, so a bad table is a programming error.
func weightedChoice[T any](r *rand.Rand, table []weighted[T]) T {
	var total float64
	for _, entry := range table {
		if entry.weight > 0 {
			total += entry.weight
		}
	}
	if len(table) == 0 || total <= 0 {
		panic("game: weighted table has no selectable entries")
	}

	roll := r.Float64() * total
	var last T
	for _, entry := range table {
		if entry.weight <= 0 {
			continue
		}
		last = entry.value
		roll -= entry.weight
		if roll < 0 {
			return entry.value
		}
	}
	// Float rounding can leave a sliver past the last selectable
	// entry; trailing zero-weight entries must never absorb it.
	return last
}

// uniformChoice picks one value with equal probability.
func uniformChoice[T any](r *rand.Rand, values []T) T {
	return values[r.IntN(len(values))]
}

// sampleWithoutReplacement returns k distinct values from the pool in
// random order. k is capped at the pool size.
func sampleWithoutReplacement[T any](r *rand.Rand, pool []T, k int) []T {
	if k > len(pool) {
		k = len(pool)
	}
	idx := r.Perm(len(pool))
	out := make([]T, 0, k)
	for _, i := range idx[:k] {
		out = append(out, pool[i])
	}
	return out
}

// intBetween returns a uniform integer in [min, max] inclusive.
func intBetween(r *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.IntN(max-min+1)
}

// normalInt draws from a normal distribution and rounds to the nearest
// integer.
func normalInt(r *rand.Rand, mean, stddev float64) int {
	return int(math.Round(r.NormFloat64()*stddev + mean))
}

// clampInt limits v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// newRand returns a PCG-backed generator with a random seed.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
