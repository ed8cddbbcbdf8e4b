package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/panbanda/arraymath/internal/output"
	"github.com/panbanda/arraymath/internal/trials"
)

func trialsCmd() *cli.Command {
	return &cli.Command{
		Name:  "trials",
		Usage: "Repeat a selection with independent pivot seeds and summarize the work done",
		Flags: append(sampleFlags(),
			&cli.IntFlag{
				Name:  "rank",
				Usage: "Rank to select (default: the median)",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of trials (overrides config)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent trials (overrides config)",
			},
		),
		Action: runTrialsCmd,
	}
}

func runTrialsCmd(c *cli.Context) error {
	env := envFrom(c)
	count, workers := env.cfg.Trials.Count, env.cfg.Trials.Workers
	if c.IsSet("count") {
		count = c.Int("count")
	}
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}

	data, err := env.inputValues(c)
	if err != nil {
		return err
	}
	rank := (len(data) + 1) / 2
	if c.IsSet("rank") {
		rank = c.Int("rank")
	}

	baseSeed := env.cfg.Selection.Seed
	if baseSeed == 0 {
		baseSeed = env.newRand().Uint64()
	}

	tracker := newTracker(c, "Running trials...", count)
	summary, results, err := trials.Run(c.Context, data, rank, trials.Options{
		Trials:     count,
		Workers:    workers,
		BaseSeed:   baseSeed,
		OnProgress: tracker.Tick,
	})
	tracker.Finish()
	if err != nil {
		return fmt.Errorf("trials failed: %w", err)
	}
	env.log.Debug("trials finished",
		zap.Int("trials", summary.Trials),
		zap.Float64("mean_comparisons", summary.MeanComparisons))

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			strconv.FormatUint(r.Seed, 10),
			strconv.Itoa(r.Stats.Rounds),
			strconv.Itoa(r.Stats.Comparisons),
			fmt.Sprintf("%.2f", float64(r.Stats.Comparisons)/float64(summary.N)),
		}
	}

	return env.emit(c, &output.Report{
		Title: "Selection Trials",
		Sections: []output.Renderable{
			output.NewTable("Trials", []string{"Seed", "Rounds", "Comparisons", "Per element"}, rows, results),
			&output.Summary{
				Title: "Summary",
				Fields: []output.Field{
					{Label: "Input size", Value: summary.N},
					{Label: "Rank", Value: summary.Rank},
					{Label: "Value", Value: summary.Value},
					{Label: "Trials", Value: summary.Trials},
					{Label: "Mean rounds", Value: fmt.Sprintf("%.2f (sd %.2f)", summary.MeanRounds, summary.StdDevRounds)},
					{Label: "Mean comparisons", Value: fmt.Sprintf("%.0f (sd %.0f)", summary.MeanComparisons, summary.StdDevCompares)},
					{Label: "Max comparisons", Value: summary.MaxComparisons},
					{Label: "Comparisons per element", Value: fmt.Sprintf("%.3f", summary.PerElement)},
					{Label: "n log2 n", Value: fmt.Sprintf("%.0f", summary.NLogN)},
				},
				Data: summary,
			},
		},
	})
}
