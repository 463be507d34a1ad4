package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededRandom_Range(t *testing.T) {
	for seed := -5000; seed <= 10000; seed++ {
		v := SeededRandom(seed)
		require.GreaterOrEqual(t, v, 0.0, "seed %d", seed)
		require.Less(t, v, 1.0, "seed %d", seed)
	}
}

func TestSeededRandom_Deterministic(t *testing.T) {
	for _, seed := range []int{0, 1, 42, 1000, 6000, 123456} {
		assert.Equal(t, SeededRandom(seed), SeededRandom(seed))
	}
	assert.Equal(t, 0.0, SeededRandom(0))
}

func TestSeededRandom_MatchesFormula(t *testing.T) {
	x := math.Sin(7*9999.0) * 10000
	assert.InDelta(t, x-math.Floor(x), SeededRandom(7), 1e-12)
}

func TestPickIndex(t *testing.T) {
	for seed := 0; seed < 500; seed++ {
		idx := PickIndex(seed, 8)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 8)
	}
	assert.Equal(t, 0, PickIndex(3, 0))
}

func TestPick_Empty(t *testing.T) {
	assert.Equal(t, "", Pick[string](1, nil))
}

func TestWeightedSample_SingleOption(t *testing.T) {
	options := []Weighted[string]{{Value: "only", Probability: 1.0}}
	for seed := 0; seed < 1000; seed++ {
		require.Equal(t, "only", WeightedSample(seed, options))
	}
}

func TestWeightedSample_FallsBackToLast(t *testing.T) {
	options := []Weighted[string]{
		{Value: "a", Probability: 0},
		{Value: "b", Probability: 0},
		{Value: "c", Probability: 0},
	}
	for seed := 1; seed < 100; seed++ {
		assert.Equal(t, "c", WeightedSample(seed, options))
	}
}

func TestWeightedSample_EmptyTable(t *testing.T) {
	assert.Equal(t, 0, WeightedSample[int](1, nil))
}

func TestWeightedSample_FirstBucketExceedingDraw(t *testing.T) {
	options := []Weighted[string]{
		{Value: "low", Probability: 0.5},
		{Value: "high", Probability: 0.5},
	}
	for seed := 0; seed < 200; seed++ {
		want := "high"
		if SeededRandom(seed) < 0.5 {
			want = "low"
		}
		assert.Equal(t, want, WeightedSample(seed, options), "seed %d", seed)
	}
}

func TestWeightedSample_OrderMatters(t *testing.T) {
	forward := []Weighted[string]{
		{Value: "a", Probability: 0.9},
		{Value: "b", Probability: 0.1},
	}
	reversed := []Weighted[string]{
		{Value: "b", Probability: 0.1},
		{Value: "a", Probability: 0.9},
	}

	differs := false
	for seed := 0; seed < 200 && !differs; seed++ {
		differs = WeightedSample(seed, forward) != WeightedSample(seed, reversed)
	}
	assert.True(t, differs, "reordering the table should change at least one draw")
}

func TestWeightedSample_Distribution(t *testing.T) {
	counts := make(map[string]int)
	options := []Weighted[string]{
		{Value: "common", Probability: 0.8},
		{Value: "rare", Probability: 0.2},
	}
	for seed := 0; seed < 10000; seed++ {
		counts[WeightedSample(seed, options)]++
	}
	assert.Greater(t, counts["common"], counts["rare"])
}
