package main

import (
	"fmt"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/arraymath/internal/output"
	"github.com/panbanda/arraymath/pkg/selection"
)

func selectCmd() *cli.Command {
	return &cli.Command{
		Name:  "select",
		Usage: "Find the value of a given rank (1 = largest)",
		Flags: append(sampleFlags(),
			&cli.IntFlag{
				Name:     "rank",
				Aliases:  []string{"k"},
				Usage:    "Rank to select, 1 is the largest value",
				Required: true,
			},
		),
		Action: runSelectCmd,
	}
}

type selectReport struct {
	N     int             `json:"n"`
	Rank  int             `json:"rank"`
	Value int             `json:"value"`
	Stats selection.Stats `json:"stats"`
}

func runSelectCmd(c *cli.Context) error {
	env := envFrom(c)
	data, err := env.inputValues(c)
	if err != nil {
		return err
	}

	rank := c.Int("rank")
	sel := env.newSelector()
	v, err := sel.Select(slices.Clone(data), rank)
	if err != nil {
		return fmt.Errorf("rank %d of %d values: %w", rank, len(data), err)
	}

	rep := selectReport{N: len(data), Rank: rank, Value: v, Stats: sel.Stats()}
	return env.emit(c, &output.Summary{
		Title: "Select",
		Fields: []output.Field{
			{Label: "Input size", Value: rep.N},
			{Label: "Rank", Value: rep.Rank},
			{Label: "Value", Value: rep.Value},
			{Label: "Partition rounds", Value: rep.Stats.Rounds},
			{Label: "Comparisons", Value: rep.Stats.Comparisons},
		},
		Data: rep,
	})
}
