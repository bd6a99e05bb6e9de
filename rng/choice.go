package rng

import (
	"slices"
	"sort"
)

// Weighted pairs a value with its relative likelihood.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// W is shorthand for building a Weighted entry.
func W[T any](value T, weight float64) Weighted[T] {
	return Weighted[T]{Value: value, Weight: weight}
}

// Choice picks a uniformly random element. Panics if xs is empty.
func Choice[T any](r *Rng, xs []T) T {
	if len(xs) == 0 {
		panic("rng: Choice from empty slice")
	}
	return xs[int(r.Rnd()*float64(len(xs)))]
}

// WeightedChoice picks an element with probability proportional to its weight. A single
// draw is consumed even when the result is forced. If the weights do not sum to a positive
// number the last element is returned. Panics if items is empty.
func WeightedChoice[T any](r *Rng, items []Weighted[T]) T {
	if len(items) == 0 {
		panic("rng: WeightedChoice from empty slice")
	}
	return pickWeighted(items, r.Rnd())
}

// pickWeighted maps a draw x in [0, 1) onto items. Zero-weight items are never returned
// unless every weight is zero.
func pickWeighted[T any](items []Weighted[T], x float64) T {
	cumulative := make([]float64, len(items))
	total := 0.0
	for i, it := range items {
		total += it.Weight
		cumulative[i] = total
	}
	if !(total > 0) {
		return items[len(items)-1].Value
	}

	target := x * total
	i := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > target })
	if i == len(items) {
		return items[len(items)-1].Value
	}
	return items[i].Value
}

// Shuffle returns a permuted copy of xs. Each element is keyed by one draw, in order, and
// the copy is stably sorted by key.
func Shuffle[T any](r *Rng, xs []T) []T {
	type keyed struct {
		key   float64
		value T
	}
	ks := make([]keyed, len(xs))
	for i, x := range xs {
		ks[i] = keyed{key: r.Rnd(), value: x}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		}
		return 0
	})

	out := make([]T, len(ks))
	for i, k := range ks {
		out[i] = k.value
	}
	return out
}

// Winnow removes random elements from a copy of xs until at most n remain, preserving the
// order of the survivors.
func Winnow[T any](r *Rng, xs []T, n int) []T {
	out := slices.Clone(xs)
	for len(out) > n {
		i := int(r.Rnd() * float64(len(out)))
		out = slices.Delete(out, i, i+1)
	}
	return out
}
