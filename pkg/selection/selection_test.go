package selection

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func uniqueValues(rng *rand.Rand, n int) []int {
	seen := make(map[int]struct{}, n)
	out := make([]int, 0, n)
	for len(out) < n {
		v := rng.IntN(1_000_000) - 500_000
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func TestSelectOutOfRange(t *testing.T) {
	s := New(WithSeed(1))

	tests := []struct {
		name string
		data []int
		rank int
	}{
		{"negative", []int{1, 2, 3}, -1},
		{"past length", []int{1, 2, 3}, 4},
		{"empty", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Select(tt.data, tt.rank)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestSelectRankZeroNotFound(t *testing.T) {
	s := New(WithSeed(1))

	_, err := s.Select([]int{3, 1, 2}, 0)
	assert.ErrorIs(t, err, ErrRankNotFound)

	_, err = s.Select(nil, 0)
	assert.ErrorIs(t, err, ErrRankNotFound)
}

func TestSelectEveryRank(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	s := New(WithSeed(99))

	for _, n := range []int{1, 2, 3, 10, 257} {
		data := uniqueValues(rng, n)
		sorted := slices.Sorted(slices.Values(data))

		for rank := 1; rank <= n; rank++ {
			work := slices.Clone(data)
			got, err := s.Select(work, rank)
			require.NoError(t, err)
			require.Equal(t, sorted[n-rank], got, "n=%d rank=%d", n, rank)
			require.Equal(t, sorted, slices.Sorted(slices.Values(work)), "Select must only permute")
		}
	}
}

func TestSelectMatchesQuantile(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	data := uniqueValues(rng, 1000)

	sorted := make([]float64, len(data))
	for i, v := range data {
		sorted[i] = float64(v)
	}
	slices.Sort(sorted)

	s := New(WithSeed(5))
	for _, p := range []float64{0.1, 0.25, 0.5, 0.9} {
		want := stat.Quantile(p, stat.Empirical, sorted, nil)
		// Empirical quantile p is the value at ascending index ceil(p*n)-1.
		rank := len(data) - (int(p*float64(len(data))) - 1)
		got, err := s.Select(slices.Clone(data), rank)
		require.NoError(t, err)
		assert.Equal(t, want, float64(got), "p=%v", p)
	}
}

func TestSelectWithDuplicates(t *testing.T) {
	data := []int{9, 1, 9, 9, 5, 1, 7}
	sorted := slices.Sorted(slices.Values(data))
	s := New(WithSeed(8))

	for rank := 1; rank <= len(data); rank++ {
		got, err := s.Select(slices.Clone(data), rank)
		require.NoError(t, err)
		assert.Equal(t, sorted[len(data)-rank], got)
	}
}

func TestSelectDeterministicWithSeed(t *testing.T) {
	data := uniqueValues(rand.New(rand.NewPCG(1, 2)), 500)

	a, b := New(WithSeed(77)), New(WithSeed(77))
	va, err := a.Select(slices.Clone(data), 100)
	require.NoError(t, err)
	vb, err := b.Select(slices.Clone(data), 100)
	require.NoError(t, err)

	assert.Equal(t, va, vb)
	assert.Equal(t, a.Stats(), b.Stats())
}

func TestStatsAndReset(t *testing.T) {
	s := New(WithSeed(2))
	_, err := s.Select([]int{4, 2, 8, 6}, 2)
	require.NoError(t, err)

	st := s.Stats()
	assert.Positive(t, st.Rounds)
	assert.GreaterOrEqual(t, st.Comparisons, st.Rounds-1)

	s.Reset()
	assert.Equal(t, Stats{}, s.Stats())
}

func TestComparisonsGrowLinearly(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 22))
	const trials = 30

	meanComparisons := func(n int) float64 {
		data := uniqueValues(rng, n)
		samples := make([]float64, trials)
		for i := range samples {
			s := New(WithSeed(uint64(i + 1)))
			_, err := s.Select(slices.Clone(data), n/2)
			require.NoError(t, err)
			samples[i] = float64(s.Stats().Comparisons)
		}
		return stat.Mean(samples, nil)
	}

	small := meanComparisons(2_000)
	large := meanComparisons(32_000)

	// Expected comparisons for the median are about 3.4n. An n log n
	// algorithm would grow by roughly 21x here, a linear one by 16x.
	assert.Less(t, small/2_000, 6.0)
	assert.Less(t, large/32_000, 6.0)
	assert.Less(t, large/small, 19.0)
}
