package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/panbanda/arraymath/internal/output"
	"github.com/panbanda/arraymath/internal/sample"
	"github.com/panbanda/arraymath/pkg/hashtable"
)

func tableCmd() *cli.Command {
	return &cli.Command{
		Name:  "table",
		Usage: "Insert the sample teams into a hash table and show its slots",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "load-factor",
				Usage: "Maximum load factor (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "delete",
				Usage: "Cities to delete after inserting",
			},
		},
		Action: runTableCmd,
	}
}

type insertRow struct {
	City       string  `json:"city"`
	Team       string  `json:"team"`
	Size       int     `json:"size"`
	Capacity   int     `json:"capacity"`
	LoadFactor float64 `json:"load_factor"`
}

type slotRow struct {
	Slot int    `json:"slot"`
	City string `json:"city"`
	Team string `json:"team"`
}

func runTableCmd(c *cli.Context) error {
	env := envFrom(c)
	lf := env.cfg.Table.MaxLoadFactor
	if c.IsSet("load-factor") {
		lf = c.Float64("load-factor")
	}

	resize := func(oldCap, newCap, size int) {
		env.log.Debug("table resized",
			zap.Int("old_capacity", oldCap),
			zap.Int("new_capacity", newCap),
			zap.Int("size", size))
	}
	teams, err := hashtable.New[string, string](lf, hashtable.StringHasher, hashtable.WithResizeHook(resize))
	if err != nil {
		return err
	}

	var inserts []insertRow
	for _, t := range sample.Teams() {
		teams.Insert(t.City, t.Name)
		inserts = append(inserts, insertRow{
			City:       t.City,
			Team:       t.Name,
			Size:       teams.Len(),
			Capacity:   teams.Capacity(),
			LoadFactor: teams.LoadFactor(),
		})
	}

	var deleted, missing []string
	for _, city := range c.StringSlice("delete") {
		if teams.Delete(city) {
			deleted = append(deleted, city)
		} else {
			missing = append(missing, city)
		}
	}

	var slots []slotRow
	for i, e := range teams.Slots() {
		slots = append(slots, slotRow{Slot: i, City: e.Key, Team: e.Value})
	}

	insertRows := make([][]string, len(inserts))
	for i, r := range inserts {
		insertRows[i] = []string{r.City, r.Team, strconv.Itoa(r.Size), strconv.Itoa(r.Capacity), fmt.Sprintf("%.3f", r.LoadFactor)}
	}
	slotRows := make([][]string, len(slots))
	for i, r := range slots {
		slotRows[i] = []string{strconv.Itoa(r.Slot), r.City, r.Team}
	}

	report := &output.Report{
		Title: "Hash Table",
		Sections: []output.Renderable{
			output.NewTable("Inserts", []string{"City", "Team", "Size", "Capacity", "Load"}, insertRows, inserts),
			output.NewTable("Slots", []string{"Slot", "City", "Team"}, slotRows, slots),
			&output.Summary{
				Title: "Summary",
				Fields: []output.Field{
					{Label: "Entries", Value: teams.Len()},
					{Label: "Capacity", Value: teams.Capacity()},
					{Label: "Load factor", Value: fmt.Sprintf("%.3f", teams.LoadFactor())},
					{Label: "Max load factor", Value: teams.MaxLoadFactor()},
					{Label: "Deleted", Value: len(deleted)},
				},
			},
		},
	}

	f, err := env.newFormatter(c)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Output(report); err != nil {
		return err
	}
	for _, city := range missing {
		if f.Format() == output.FormatText {
			f.Warning("%s is not in the table", city)
		} else {
			env.log.Warn("city not in table", zap.String("city", city))
		}
	}
	return nil
}
