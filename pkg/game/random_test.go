package game

import (
	"math"
	"math/rand/v2"
	"testing"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestWeightedChoice_Frequencies(t *testing.T) {
	r := testRand(1)
	table := []weighted[string]{
		w("A", 3),
		w("B", 1),
	}

	const n = 10000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[weightedChoice(r, table)]++
	}

	freqA := float64(counts["A"]) / n
	if math.Abs(freqA-0.75) > 0.02 {
		t.Errorf("frequency of A = %.3f, want 0.75 +/- 0.02", freqA)
	}
}

func TestWeightedChoice_ZeroWeightNeverSelected(t *testing.T) {
	r := testRand(2)
	table := []weighted[string]{
		w("never", 0),
		w("always", 1),
	}

	for i := 0; i < 1000; i++ {
		if got := weightedChoice(r, table); got != "always" {
			t.Fatalf("selected zero-weight value %q", got)
		}
	}
}

func TestWeightedChoice_TrailingZeroWeight(t *testing.T) {
	// The rounding fallback must land on the last positive-weight
	// entry, not on a zero-weight entry that happens to close the
	// table.
	r := testRand(8)
	table := []weighted[string]{
		w("always", 1),
		w("never", 0),
	}

	for i := 0; i < 1000; i++ {
		if got := weightedChoice(r, table); got != "always" {
			t.Fatalf("selected zero-weight value %q", got)
		}
	}
}

func TestWeightedChoice_Ties(t *testing.T) {
	r := testRand(3)
	table := []weighted[string]{
		w("A", 2),
		w("B", 2),
	}

	const n = 10000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[weightedChoice(r, table)]++
	}

	freqA := float64(counts["A"]) / n
	if math.Abs(freqA-0.5) > 0.02 {
		t.Errorf("frequency of A = %.3f, want 0.50 +/- 0.02", freqA)
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	r := testRand(4)
	pool := []string{"a", "b", "c", "d", "e", "f"}

	for k := 1; k <= len(pool); k++ {
		got := sampleWithoutReplacement(r, pool, k)
		if len(got) != k {
			t.Fatalf("k=%d: got %d items", k, len(got))
		}
		seen := map[string]bool{}
		inPool := map[string]bool{}
		for _, p := range pool {
			inPool[p] = true
		}
		for _, item := range got {
			if seen[item] {
				t.Fatalf("k=%d: duplicate item %q", k, item)
			}
			if !inPool[item] {
				t.Fatalf("k=%d: item %q not from pool", k, item)
			}
			seen[item] = true
		}
	}
}

func TestSampleWithoutReplacement_KPastPoolSize(t *testing.T) {
	r := testRand(5)
	pool := []string{"a", "b"}
	if got := sampleWithoutReplacement(r, pool, 10); len(got) != 2 {
		t.Errorf("got %d items, want pool size 2", len(got))
	}
}

func TestIntBetween_Inclusive(t *testing.T) {
	r := testRand(6)
	sawLo, sawHi := false, false
	for i := 0; i < 5000; i++ {
		v := intBetween(r, 3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("value %d outside [3,7]", v)
		}
		sawLo = sawLo || v == 3
		sawHi = sawHi || v == 7
	}
	if !sawLo || !sawHi {
		t.Errorf("bounds not both reachable: lo=%v hi=%v", sawLo, sawHi)
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{100, 150, 210, 150},
		{300, 150, 210, 210},
		{180, 150, 210, 180},
		{150, 150, 210, 150},
		{210, 150, 210, 210},
	}
	for _, tt := range tests {
		if got := clampInt(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clampInt(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
