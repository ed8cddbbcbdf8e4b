// Package arraymath combines the hash table, merge sort and percentile
// extraction into array-level operations.
package arraymath

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/panbanda/arraymath/pkg/hashtable"
	"github.com/panbanda/arraymath/pkg/mergesort"
	"github.com/panbanda/arraymath/pkg/percentile"
	"github.com/panbanda/arraymath/pkg/selection"
)

// DefaultMaxLoadFactor is the load factor used by the counting tables.
const DefaultMaxLoadFactor = hashtable.DefaultMaxLoadFactor

var (
	// ErrLengthMismatch is returned when paired arrays differ in length.
	ErrLengthMismatch = errors.New("arrays differ in length")

	// ErrOverflow is returned when a difference, its square or the running
	// sum does not fit in an int.
	ErrOverflow = errors.New("squared distance overflows int")
)

// Option configures a Math.
type Option func(*Math)

// WithMaxLoadFactor sets the load factor of the counting tables.
func WithMaxLoadFactor(lf float64) Option {
	return func(m *Math) {
		m.maxLoadFactor = lf
	}
}

// WithSelector uses s for percentile selection.
func WithSelector(s *selection.Selector) Option {
	return func(m *Math) {
		m.selector = s
	}
}

// Math runs array operations. It is not safe for concurrent use.
type Math struct {
	maxLoadFactor float64
	selector      *selection.Selector
	extractor     *percentile.Extractor
}

// New creates a Math.
func New(opts ...Option) (*Math, error) {
	m := &Math{maxLoadFactor: DefaultMaxLoadFactor}
	for _, opt := range opts {
		opt(m)
	}
	if _, err := hashtable.New[int, int](m.maxLoadFactor, hashtable.IntHasher); err != nil {
		return nil, err
	}
	m.extractor = percentile.New(m.selector)
	return m, nil
}

// Counts builds a table mapping each value of data to its multiplicity.
func (m *Math) Counts(data []int) *hashtable.Table[int, int] {
	// maxLoadFactor was validated by New.
	tbl, _ := hashtable.New[int, int](m.maxLoadFactor, hashtable.IntHasher)
	for _, v := range data {
		n, _ := tbl.Lookup(v)
		tbl.Insert(v, n+1)
	}
	return tbl
}

// SameMultiset reports whether a and b hold the same values with the same
// multiplicities. Arrays of different length are never the same.
func (m *Math) SameMultiset(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	return hashtable.Equal(m.Counts(a), m.Counts(b))
}

// MinSquaredPairDistance pairs the values of a and b by rank and returns the
// sum of squared differences, which is the smallest over all pairings.
// The inputs are not modified. Values far apart, such as two pairs about
// 2^31.5 apart on 64-bit platforms, yield ErrOverflow.
func (m *Math) MinSquaredPairDistance(a, b []int) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(a), len(b))
	}

	x, y := slices.Clone(a), slices.Clone(b)
	mergesort.Sort(x)
	mergesort.Sort(y)

	sum := 0
	for i := range x {
		sq, ok := squaredDiff(x[i], y[i])
		if !ok || sum > math.MaxInt-sq {
			return 0, fmt.Errorf("%w: pair %d (%d, %d)", ErrOverflow, i, x[i], y[i])
		}
		sum += sq
	}
	return sum, nil
}

// squaredDiff returns (a-b)^2 and false if any step overflows int.
func squaredDiff(a, b int) (int, bool) {
	if (b > 0 && a < math.MinInt+b) || (b < 0 && a > math.MaxInt+b) {
		return 0, false
	}
	d := a - b
	var abs uint64
	if d < 0 {
		abs = uint64(-(d + 1)) + 1
	} else {
		abs = uint64(d)
	}
	hi, lo := bits.Mul64(abs, abs)
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// PercentileRange returns the values of data between the lower and upper
// percentages. See percentile.Extractor.Range.
func (m *Math) PercentileRange(data []int, lower, upper int) ([]int, error) {
	return m.extractor.Range(data, lower, upper)
}

// Extractor exposes the percentile extractor backing PercentileRange.
func (m *Math) Extractor() *percentile.Extractor {
	return m.extractor
}
