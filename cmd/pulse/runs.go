package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/pulse"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, pulse.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'pulse extract' to record one.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			strconv.Itoa(r.MarketCount),
			strconv.Itoa(r.NewsCount),
			r.ContentHash,
		})
	}
	writeTable(deps.Stdout, []string{"ID", "CREATED", "MARKET", "NEWS", "HASH"}, rows)
	return nil
}
