package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pulse"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	market, err := deps.Runs.FindMarketRecords(deps.Ctx, run.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	news, err := deps.Runs.FindNewsRecords(deps.Ctx, run.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s (%s)\n", run.ID, run.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(deps.Stdout, "Source: %s\n\n", run.Source)

	fmt.Fprintf(deps.Stdout, "Market (%d)\n", len(market))
	rows := make([][]string, 0, len(market))
	for _, r := range market {
		rows = append(rows, r.Row())
	}
	writeTable(deps.Stdout, pulse.MarketColumns, rows)

	fmt.Fprintf(deps.Stdout, "\nLatest News (%d)\n", len(news))
	rows = make([][]string, 0, len(news))
	for _, r := range news {
		rows = append(rows, r.Row())
	}
	writeTable(deps.Stdout, pulse.NewsColumns, rows)
	return nil
}
