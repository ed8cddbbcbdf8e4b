// Package trials runs repeated, independently seeded quickselect runs over
// the same input and summarizes how much work each one did.
package trials

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/stat"

	"github.com/panbanda/arraymath/pkg/selection"
)

// ErrInconsistent is returned when two trials select different values.
var ErrInconsistent = errors.New("trials disagree on the selected value")

// Options configures Run.
type Options struct {
	Trials   int
	Workers  int
	BaseSeed uint64 // trial i uses BaseSeed+i
	// OnProgress is called after each finished trial, possibly concurrently.
	OnProgress func()
}

// Result is the outcome of one trial.
type Result struct {
	Seed  uint64          `json:"seed"`
	Value int             `json:"value"`
	Stats selection.Stats `json:"stats"`
}

// Summary aggregates a set of trials.
type Summary struct {
	N               int     `json:"n"`
	Rank            int     `json:"rank"`
	Trials          int     `json:"trials"`
	Value           int     `json:"value"`
	MeanRounds      float64 `json:"mean_rounds"`
	StdDevRounds    float64 `json:"stddev_rounds"`
	MeanComparisons float64 `json:"mean_comparisons"`
	StdDevCompares  float64 `json:"stddev_comparisons"`
	MaxComparisons  int     `json:"max_comparisons"`
	// PerElement is MeanComparisons / N; it stays flat as N grows.
	PerElement float64 `json:"comparisons_per_element"`
	// NLogN is N * log2(N), the work of a comparison sort.
	NLogN float64 `json:"n_log_n"`
}

// Run selects rank from data in opts.Trials independent trials spread over
// opts.Workers goroutines. data is not modified.
func Run(ctx context.Context, data []int, rank int, opts Options) (Summary, []Result, error) {
	if opts.Trials <= 0 {
		return Summary{}, nil, fmt.Errorf("trials must be positive, got %d", opts.Trials)
	}
	workers := max(opts.Workers, 1)

	p := pool.NewWithResults[Result]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(workers)

	for i := range opts.Trials {
		seed := opts.BaseSeed + uint64(i)
		p.Go(func(ctx context.Context) (Result, error) {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			sel := selection.New(selection.WithSeed(seed))
			v, err := sel.Select(slices.Clone(data), rank)
			if err != nil {
				return Result{}, fmt.Errorf("trial seed %d: %w", seed, err)
			}
			if opts.OnProgress != nil {
				opts.OnProgress()
			}
			return Result{Seed: seed, Value: v, Stats: sel.Stats()}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return Summary{}, nil, err
	}
	slices.SortFunc(results, func(a, b Result) int {
		switch {
		case a.Seed < b.Seed:
			return -1
		case a.Seed > b.Seed:
			return 1
		}
		return 0
	})

	summary, err := summarize(len(data), rank, results)
	if err != nil {
		return Summary{}, nil, err
	}
	return summary, results, nil
}

func summarize(n, rank int, results []Result) (Summary, error) {
	rounds := make([]float64, len(results))
	comparisons := make([]float64, len(results))
	s := Summary{N: n, Rank: rank, Trials: len(results), Value: results[0].Value}

	for i, r := range results {
		if r.Value != s.Value {
			return Summary{}, fmt.Errorf("%w: seed %d got %d, seed %d got %d",
				ErrInconsistent, results[0].Seed, s.Value, r.Seed, r.Value)
		}
		rounds[i] = float64(r.Stats.Rounds)
		comparisons[i] = float64(r.Stats.Comparisons)
		s.MaxComparisons = max(s.MaxComparisons, r.Stats.Comparisons)
	}

	s.MeanRounds = stat.Mean(rounds, nil)
	s.MeanComparisons = stat.Mean(comparisons, nil)
	if len(results) > 1 {
		s.StdDevRounds = stat.StdDev(rounds, nil)
		s.StdDevCompares = stat.StdDev(comparisons, nil)
	}
	if n > 0 {
		s.PerElement = s.MeanComparisons / float64(n)
		s.NLogN = float64(n) * math.Log2(float64(n))
	}
	return s, nil
}
