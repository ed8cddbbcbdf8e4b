// Package percentile extracts the values lying between two percentiles of an
// unsorted integer array in expected linear time.
//
// The two boundary values are located with quickselect and a single scan
// collects everything between them. Results are exact only when the input
// holds unique values: when duplicates straddle a boundary there is no way to
// tell, short of sorting, which copies belong inside the window.
package percentile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/panbanda/arraymath/pkg/selection"
)

// ErrInvalidArgument is returned for an empty input or a percentage outside [0, 100].
var ErrInvalidArgument = errors.New("invalid argument")

// Plan holds the rank arithmetic for an n-element input.
//
// MaxRank resolves to the upper boundary value and MinRank to the lower one.
// For n=10, lower=10, upper=80: eight values sit below the upper bound and one
// below the lower bound, so the upper boundary is the 3rd largest value
// (10-8+1), the lower boundary the 9th largest (10-1) and Count is 8-1=7.
type Plan struct {
	Count   int `json:"count"`
	MaxRank int `json:"max_rank"`
	MinRank int `json:"min_rank"`
}

// NewPlan computes the plan for n values between lower and upper percent.
// All divisions truncate.
func NewPlan(n, lower, upper int) Plan {
	above := n * upper / 100
	below := n * lower / 100
	return Plan{
		Count:   above - below,
		MaxRank: n - above + 1,
		MinRank: n - below,
	}
}

// Result is the outcome of an extraction.
type Result struct {
	Values []int `json:"values"`
	Low    int   `json:"low"`
	High   int   `json:"high"`
	Plan   Plan  `json:"plan"`
}

// Extractor resolves percentile ranges with a shared Selector.
type Extractor struct {
	selector *selection.Selector
}

// New creates an Extractor. A nil selector gets a randomly seeded one.
func New(selector *selection.Selector) *Extractor {
	if selector == nil {
		selector = selection.New()
	}
	return &Extractor{selector: selector}
}

// Stats returns the selector's counters.
func (e *Extractor) Stats() selection.Stats {
	return e.selector.Stats()
}

// Range returns the values of data between the lower and upper percentages,
// inclusive of both boundary values, in their original order.
//
// An empty data slice is an error. lower >= upper yields an empty result and
// lower == 0 with upper == 100 returns data itself. data is never modified.
func (e *Extractor) Range(data []int, lower, upper int) ([]int, error) {
	res, err := e.Extract(data, lower, upper)
	if err != nil {
		return nil, err
	}
	return res.Values, nil
}

// Extract is Range with the boundary values and rank plan attached. Low and
// High are zero when no selection was needed.
func (e *Extractor) Extract(data []int, lower, upper int) (Result, error) {
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: the array is empty", ErrInvalidArgument)
	}
	if lower >= upper {
		return Result{Values: []int{}}, nil
	}
	if lower == 0 && upper == 100 {
		return Result{Values: data, Plan: NewPlan(len(data), lower, upper)}, nil
	}
	if lower < 0 || upper > 100 {
		return Result{}, fmt.Errorf("%w: percentages %d..%d outside 0..100", ErrInvalidArgument, lower, upper)
	}

	plan := NewPlan(len(data), lower, upper)
	if plan.Count == 0 {
		// Both percentages truncate to the same position; no value fits.
		return Result{Values: []int{}, Plan: plan}, nil
	}

	work := slices.Clone(data)
	high, err := e.selector.Select(work, plan.MaxRank)
	if err != nil {
		return Result{}, fmt.Errorf("selecting upper boundary: %w", err)
	}
	low, err := e.selector.Select(work, plan.MinRank)
	if err != nil {
		return Result{}, fmt.Errorf("selecting lower boundary: %w", err)
	}

	return Result{
		Values: collect(data, low, high, plan.Count),
		Low:    low,
		High:   high,
		Plan:   plan,
	}, nil
}

// collect scans data once and keeps up to size values in [low, high].
// Missing values stay zero and surplus duplicates are dropped.
func collect(data []int, low, high, size int) []int {
	out := make([]int, size)
	n := 0
	for _, v := range data {
		if v < low || v > high {
			continue
		}
		if n == size {
			break
		}
		out[n] = v
		n++
	}
	return out
}
