package main

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/panbanda/arraymath/internal/progress"
	"github.com/panbanda/arraymath/internal/sample"
	"github.com/panbanda/arraymath/pkg/config"
	"github.com/panbanda/arraymath/pkg/selection"
)

// parseInts parses a comma-separated list such as "1, 2,3".
func parseInts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", strings.TrimSpace(p), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// formatInts joins at most limit values, eliding the rest.
func formatInts(data []int, limit int) string {
	var b strings.Builder
	for i, v := range data {
		if i == limit {
			fmt.Fprintf(&b, ", ... (%d more)", len(data)-limit)
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// newSelector returns a selector seeded from config, or a randomly seeded one.
func (e *runtimeEnv) newSelector() *selection.Selector {
	if seed := e.cfg.Selection.Seed; seed != 0 {
		return selection.New(selection.WithSeed(seed))
	}
	return selection.New()
}

func (e *runtimeEnv) newRand() *rand.Rand {
	if seed := e.cfg.Selection.Seed; seed != 0 {
		return rand.New(rand.NewPCG(seed, ^seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func newTracker(c *cli.Context, label string, total int) *progress.Tracker {
	if c.Bool("quiet") {
		return progress.Quiet(total)
	}
	return progress.NewTrackerTo(c.App.ErrWriter, label, total)
}

// inputValues returns --values when given and a generated sample otherwise.
func (e *runtimeEnv) inputValues(c *cli.Context) ([]int, error) {
	if c.IsSet("values") {
		return parseInts(c.String("values"))
	}

	size := e.cfg.Sample.Size
	if c.IsSet("size") {
		size = c.Int("size")
	}
	if size <= 0 || size > config.MaxSampleSize {
		return nil, fmt.Errorf("--size must be in [1, %d], got %d", config.MaxSampleSize, size)
	}

	tracker := newTracker(c, "Generating sample...", size)
	data, err := sample.UniqueInts(e.newRand(), size, e.cfg.Sample.Min, config.SampleCeiling, tracker.Tick)
	e.log.Debug("sample generated", zap.Int64("values", tracker.Current()), zap.Int("min", e.cfg.Sample.Min))
	tracker.Finish()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func sampleFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "values",
			Usage: "Comma-separated input values (default: generated sample)",
		},
		&cli.IntFlag{
			Name:  "size",
			Usage: "Generated sample size (overrides config)",
		},
	}
}
