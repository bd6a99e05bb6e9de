package rng

import (
	"encoding/hex"
	"slices"
	"testing"
)

func TestChoice(t *testing.T) {
	r := New(nil)
	xs := []string{"a", "b", "c", "d"}
	var got []string
	for range 6 {
		got = append(got, Choice(r, xs))
	}
	want := []string{"c", "b", "c", "c", "c", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("Choice = %v, want %v", got, want)
	}
}

func TestChoiceEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Choice(New(nil), []int{})
}

func TestWeightedChoice(t *testing.T) {
	seed, _ := hex.DecodeString("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	r := New(seed)
	items := []Weighted[int]{W(1, 1), W(3, 3), W(2, 2)}

	counts := map[int]int{}
	for range 10000 {
		counts[WeightedChoice(r, items)]++
	}
	want := map[int]int{1: 1683, 3: 5006, 2: 3311}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("count[%d] = %d, want %d", k, counts[k], v)
		}
	}
}

func TestWeightedChoiceDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		items []Weighted[string]
		want  string
	}{
		{"all zero weights", []Weighted[string]{W("x", 0), W("y", 0)}, "y"},
		{"single positive weight", []Weighted[string]{W("a", 1), W("b", 0)}, "a"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(nil)
			before := *r
			if got := WeightedChoice(r, tc.items); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
			if r.Equal(&before) {
				t.Error("WeightedChoice should always consume a draw")
			}
		})
	}
}

func TestPickWeightedSkipsZeroWeights(t *testing.T) {
	tests := []struct {
		name  string
		items []Weighted[string]
		x     float64
		want  string
	}{
		{"zero draw skips leading zero weight", []Weighted[string]{W("zero", 0), W("one", 1)}, 0, "one"},
		{"zero draw skips several zero weights", []Weighted[string]{W("a", 0), W("b", 0), W("c", 2)}, 0, "c"},
		{"zero weight in the middle", []Weighted[string]{W("a", 1), W("b", 0), W("c", 1)}, 0.5, "c"},
		{"draw just below a boundary", []Weighted[string]{W("a", 1), W("b", 1)}, 0.4999, "a"},
		{"draw near one", []Weighted[string]{W("a", 1), W("b", 1), W("c", 0)}, 0.9999, "b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pickWeighted(tc.items, tc.x); got != tc.want {
				t.Errorf("pickWeighted(%v) = %q, want %q", tc.x, got, tc.want)
			}
		})
	}
}

func TestShuffle(t *testing.T) {
	r := New(nil)
	in := []int{0, 1, 2, 3, 4, 5, 6, 7}
	got := Shuffle(r, in)
	want := []int{1, 0, 4, 3, 2, 5, 6, 7}
	if !slices.Equal(got, want) {
		t.Errorf("Shuffle = %v, want %v", got, want)
	}
	if !slices.Equal(in, []int{0, 1, 2, 3, 4, 5, 6, 7}) {
		t.Error("Shuffle modified its input")
	}
}

func TestWinnow(t *testing.T) {
	r := New(nil)
	in := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	got := Winnow(r, in, 3)
	want := []string{"a", "c", "h"}
	if !slices.Equal(got, want) {
		t.Errorf("Winnow = %v, want %v", got, want)
	}

	r = New(nil)
	before := *r
	if got := Winnow(r, in, 10); len(got) != len(in) {
		t.Errorf("Winnow to larger n changed length: %v", got)
	}
	if !r.Equal(&before) {
		t.Error("Winnow with nothing to remove should not draw")
	}
}
