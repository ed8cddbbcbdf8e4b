package main

import (
	"fmt"
	"math"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/panbanda/arraymath/internal/output"
	"github.com/panbanda/arraymath/pkg/percentile"
	"github.com/panbanda/arraymath/pkg/selection"
)

func percentileCmd() *cli.Command {
	return &cli.Command{
		Name:    "percentile",
		Aliases: []string{"pct"},
		Usage:   "Extract the values between two percentiles",
		Flags: append(sampleFlags(),
			&cli.IntFlag{
				Name:  "lower",
				Usage: "Lower percentage (overrides config)",
			},
			&cli.IntFlag{
				Name:  "upper",
				Usage: "Upper percentage (overrides config)",
			},
			&cli.IntFlag{
				Name:  "show",
				Value: 20,
				Usage: "Maximum number of result values to print",
			},
		),
		Action: runPercentileCmd,
	}
}

// percentileReport is the JSON/TOON shape of the percentile command.
type percentileReport struct {
	N           int             `json:"n"`
	Lower       int             `json:"lower"`
	Upper       int             `json:"upper"`
	Plan        percentile.Plan `json:"plan"`
	Low         int             `json:"low"`
	High        int             `json:"high"`
	Values      []int           `json:"values"`
	Stats       selection.Stats `json:"stats"`
	WorkPlusN   int             `json:"comparisons_plus_n"`
	SortingCost float64         `json:"n_log_n"`
}

func runPercentileCmd(c *cli.Context) error {
	env := envFrom(c)
	lower, upper := env.cfg.Percentile.Lower, env.cfg.Percentile.Upper
	if c.IsSet("lower") {
		lower = c.Int("lower")
	}
	if c.IsSet("upper") {
		upper = c.Int("upper")
	}

	data, err := env.inputValues(c)
	if err != nil {
		return err
	}

	ext := percentile.New(env.newSelector())
	res, err := ext.Extract(data, lower, upper)
	if err != nil {
		return err
	}
	stats := ext.Stats()
	env.log.Debug("percentile extracted",
		zap.Int("n", len(data)),
		zap.Int("count", res.Plan.Count),
		zap.Int("rounds", stats.Rounds),
		zap.Int("comparisons", stats.Comparisons))

	n := len(data)
	rep := percentileReport{
		N:           n,
		Lower:       lower,
		Upper:       upper,
		Plan:        res.Plan,
		Low:         res.Low,
		High:        res.High,
		Values:      res.Values,
		Stats:       stats,
		WorkPlusN:   stats.Comparisons + n,
		SortingCost: float64(n) * math.Log2(float64(n)),
	}

	return env.emit(c, &output.Summary{
		Title: fmt.Sprintf("Percentile %d-%d", lower, upper),
		Fields: []output.Field{
			{Label: "Input size", Value: n},
			{Label: "Result count", Value: len(res.Values)},
			{Label: "Max rank", Value: res.Plan.MaxRank},
			{Label: "Min rank", Value: res.Plan.MinRank},
			{Label: "Low boundary", Value: res.Low},
			{Label: "High boundary", Value: res.High},
			{Label: "Partition rounds", Value: stats.Rounds},
			{Label: "Comparisons", Value: stats.Comparisons},
			{Label: "Comparisons + n", Value: rep.WorkPlusN},
			{Label: "n log2 n", Value: fmt.Sprintf("%.0f", rep.SortingCost)},
			{Label: "Values", Value: formatInts(res.Values, c.Int("show"))},
		},
		Data: rep,
	})
}
