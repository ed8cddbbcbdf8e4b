package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/arraymath/internal/output"
	"github.com/panbanda/arraymath/pkg/arraymath"
)

func sameCmd() *cli.Command {
	return &cli.Command{
		Name:      "same",
		Usage:     "Report whether two arrays hold the same values with the same multiplicities",
		ArgsUsage: "<a,b,c> <x,y,z>",
		Action:    runSameCmd,
	}
}

func distanceCmd() *cli.Command {
	return &cli.Command{
		Name:      "distance",
		Usage:     "Minimum sum of squared differences over all pairings of two arrays",
		ArgsUsage: "<a,b,c> <x,y,z>",
		Action:    runDistanceCmd,
	}
}

// pairArgs parses the two positional array arguments.
func pairArgs(c *cli.Context) ([]int, []int, error) {
	if c.Args().Len() != 2 {
		return nil, nil, fmt.Errorf("%s expects two comma-separated arrays, got %d arguments", c.Command.Name, c.Args().Len())
	}
	a, err := parseInts(c.Args().Get(0))
	if err != nil {
		return nil, nil, err
	}
	b, err := parseInts(c.Args().Get(1))
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func (e *runtimeEnv) newMath() (*arraymath.Math, error) {
	return arraymath.New(
		arraymath.WithMaxLoadFactor(e.cfg.Table.MaxLoadFactor),
		arraymath.WithSelector(e.newSelector()),
	)
}

func runSameCmd(c *cli.Context) error {
	env := envFrom(c)
	a, b, err := pairArgs(c)
	if err != nil {
		return err
	}
	m, err := env.newMath()
	if err != nil {
		return err
	}

	same := m.SameMultiset(a, b)
	return env.emit(c, &output.Summary{
		Title: "Same multiset",
		Fields: []output.Field{
			{Label: "A", Value: formatInts(a, 20)},
			{Label: "B", Value: formatInts(b, 20)},
			{Label: "Same", Value: same},
		},
		Data: map[string]any{"a": a, "b": b, "same": same},
	})
}

func runDistanceCmd(c *cli.Context) error {
	env := envFrom(c)
	a, b, err := pairArgs(c)
	if err != nil {
		return err
	}
	m, err := env.newMath()
	if err != nil {
		return err
	}

	d, err := m.MinSquaredPairDistance(a, b)
	if err != nil {
		return err
	}
	return env.emit(c, &output.Summary{
		Title: "Minimum squared pair distance",
		Fields: []output.Field{
			{Label: "A", Value: formatInts(a, 20)},
			{Label: "B", Value: formatInts(b, 20)},
			{Label: "Distance", Value: d},
		},
		Data: map[string]any{"a": a, "b": b, "distance": d},
	})
}
