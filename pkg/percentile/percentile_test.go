package percentile

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/arraymath/pkg/selection"
)

func newExtractor() *Extractor {
	return New(selection.New(selection.WithSeed(2020)))
}

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name      string
		n, lo, hi int
		want      Plan
	}{
		{"documented example", 10, 10, 80, Plan{Count: 7, MaxRank: 3, MinRank: 9}},
		{"ten to fifty", 10, 10, 50, Plan{Count: 4, MaxRank: 6, MinRank: 9}},
		{"from zero", 10, 0, 50, Plan{Count: 5, MaxRank: 6, MinRank: 10}},
		{"to hundred", 10, 50, 100, Plan{Count: 5, MaxRank: 1, MinRank: 5}},
		{"truncation", 7, 20, 95, Plan{Count: 5, MaxRank: 2, MinRank: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPlan(tt.n, tt.lo, tt.hi))
		})
	}
}

func TestRangeKnownInput(t *testing.T) {
	data := []int{20000, 160, -2, 4, 100, 6, 120, 8, 140, 1800}
	original := slices.Clone(data)

	got, err := newExtractor().Range(data, 10, 50)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{4, 6, 8, 100}, got)
	// Original order is kept.
	assert.Equal(t, []int{4, 100, 6, 8}, got)
	assert.Equal(t, original, data, "input must not be modified")
}

func TestExtractBoundaries(t *testing.T) {
	data := []int{20000, 160, -2, 4, 100, 6, 120, 8, 140, 1800}

	res, err := newExtractor().Extract(data, 10, 50)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Low)
	assert.Equal(t, 100, res.High)
	assert.Equal(t, Plan{Count: 4, MaxRank: 6, MinRank: 9}, res.Plan)
}

func TestRangeEmptyInput(t *testing.T) {
	_, err := newExtractor().Range(nil, 10, 50)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = newExtractor().Range([]int{}, 50, 50)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRangeEqualOrInvertedBounds(t *testing.T) {
	data := []int{5, 3, 9, 1}
	e := newExtractor()

	for _, p := range []int{-10, 0, 25, 50, 100, 250} {
		got, err := e.Range(data, p, p)
		require.NoError(t, err)
		assert.Empty(t, got, "p=%d", p)
	}

	got, err := e.Range(data, 80, 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRangeFullReturnsInput(t *testing.T) {
	data := []int{7, -1, 7, 42}

	got, err := newExtractor().Range(data, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Same(t, &data[0], &got[0])
}

func TestRangeInvalidPercentages(t *testing.T) {
	data := []int{1, 2, 3, 4}
	e := newExtractor()

	_, err := e.Range(data, -5, 50)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.Range(data, 10, 150)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRangeZeroCount(t *testing.T) {
	// 3*10/100 and 3*20/100 both truncate to 0.
	got, err := newExtractor().Range([]int{3, 1, 2}, 10, 20)
	require.NoError(t, err)
	assert.Empty(t, got)

	// MaxRank lands one past the array; no selection is attempted.
	e := newExtractor()
	res, err := e.Extract([]int{5, 4, 3, 2, 1}, 10, 15)
	require.NoError(t, err)
	assert.Empty(t, res.Values)
	assert.Equal(t, Plan{Count: 0, MaxRank: 6, MinRank: 5}, res.Plan)
	assert.Zero(t, res.Low)
	assert.Zero(t, res.High)
	assert.Zero(t, e.Stats().Rounds)
}

func TestRangeEdges(t *testing.T) {
	data := []int{50, 10, 90, 30, 70, 20, 60, 40, 100, 80}
	e := newExtractor()

	got, err := e.Range(data, 0, 30)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 30, 20}, got)

	got, err = e.Range(data, 80, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{90, 100}, got)
}

func TestRangeMatchesSortedSlice(t *testing.T) {
	rng := rand.New(rand.NewPCG(31, 37))
	e := newExtractor()

	for _, n := range []int{1, 2, 9, 10, 101, 1000} {
		perm := rng.Perm(n * 3)
		data := perm[:n]
		sorted := slices.Sorted(slices.Values(data))

		for _, bounds := range [][2]int{{0, 50}, {10, 90}, {20, 95}, {33, 34}, {50, 100}, {1, 99}} {
			lower, upper := bounds[0], bounds[1]
			got, err := e.Range(data, lower, upper)
			require.NoError(t, err)

			want := sorted[n*lower/100 : n*upper/100]
			assert.ElementsMatch(t, want, got, "n=%d bounds=%v", n, bounds)
		}
	}
}

func TestRangeDuplicatesKeepsCount(t *testing.T) {
	// Duplicates straddling the upper boundary: the scan keeps the first
	// matches and the result length stays at the planned count.
	data := []int{1, 2, 6, 3, 5, 4, 9, 9, 9, 9}

	got, err := newExtractor().Range(data, 10, 80)
	require.NoError(t, err)
	assert.Len(t, got, 7)
	assert.Equal(t, []int{2, 6, 3, 5, 4, 9, 9}, got)
}

func TestStatsAccumulate(t *testing.T) {
	e := newExtractor()
	_, err := e.Range([]int{20000, 160, -2, 4, 100, 6, 120, 8, 140, 1800}, 10, 50)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, e.Stats().Rounds, 2)
}
