// Package selection finds order statistics with randomized quickselect.
//
// Ranks count from the top: rank r of an n-element array is the value that
// would sit at index n-r after an ascending sort, so rank 1 is the maximum
// and rank n the minimum.
package selection

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrOutOfRange is returned when the requested rank is outside [0, len].
	ErrOutOfRange = errors.New("rank is not within the array")

	// ErrRankNotFound is returned when the search window empties without
	// reaching the target index. Only rank 0 can produce it.
	ErrRankNotFound = errors.New("rank not found")
)

// Stats counts the work done by a Selector. The counters are diagnostic.
type Stats struct {
	Rounds      int `json:"rounds"`      // partition calls
	Comparisons int `json:"comparisons"` // element comparisons inside partition
}

// Selector runs quickselect with a uniformly random pivot per partition.
// A Selector is not safe for concurrent use.
type Selector struct {
	rng   *rand.Rand
	stats Stats
}

// Option configures a Selector.
type Option func(*Selector)

// WithSource draws pivots from src.
func WithSource(src rand.Source) Option {
	return func(s *Selector) {
		s.rng = rand.New(src)
	}
}

// WithSeed draws pivots from a PCG source seeded with seed, making pivot
// choices reproducible.
func WithSeed(seed uint64) Option {
	return WithSource(rand.NewPCG(seed, seed))
}

// New creates a Selector. Without options pivots come from a randomly seeded source.
func New(opts ...Option) *Selector {
	s := &Selector{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Stats returns the counters accumulated since creation or the last Reset.
func (s *Selector) Stats() Stats {
	return s.stats
}

// Reset zeroes the counters.
func (s *Selector) Reset() {
	s.stats = Stats{}
}

// Select returns the value of the given rank. It reorders data in place.
func (s *Selector) Select(data []int, rank int) (int, error) {
	if rank < 0 || rank > len(data) {
		return 0, fmt.Errorf("%w: rank %d, length %d", ErrOutOfRange, rank, len(data))
	}

	target := len(data) - rank
	left, right := 0, len(data)-1
	for left <= right {
		s.stats.Rounds++
		index := s.partition(data, left, right)
		switch {
		case index == target:
			return data[index], nil
		case index > target:
			right = index - 1
		default:
			left = index + 1
		}
	}
	return 0, fmt.Errorf("%w: rank %d, length %d", ErrRankNotFound, rank, len(data))
}

// partition moves a random pivot of data[left:right+1] to its sorted
// position, with smaller values before it, and returns that position.
func (s *Selector) partition(data []int, left, right int) int {
	p := left + s.rng.IntN(right-left+1)
	pivot := data[p]
	data[p], data[right] = data[right], data[p]

	boundary := left
	for i := left; i < right; i++ {
		s.stats.Comparisons++
		if data[i] < pivot {
			data[i], data[boundary] = data[boundary], data[i]
			boundary++
		}
	}
	data[right], data[boundary] = data[boundary], data[right]
	return boundary
}
