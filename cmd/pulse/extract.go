package main

import (
	"fmt"

	"github.com/fwojciec/pulse"
	"github.com/fwojciec/pulse/sqlite"
	"golang.org/x/sync/errgroup"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := deps.Snapshots.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	ex, err := deps.Extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Market entries found: %d\n", len(ex.Market))
	fmt.Fprintf(deps.Stdout, "Latest News entries found: %d\n", len(ex.News))

	// Sinks share the extraction read-only.
	g, ctx := errgroup.WithContext(deps.Ctx)
	for _, out := range deps.Outputs {
		g.Go(func() error {
			return out.Sink.WriteExtraction(ctx, ex)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: writing output: %s\n", errorText(err))
		return err
	}
	for _, out := range deps.Outputs {
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", out.Path)
	}

	if deps.Runs == nil {
		return nil
	}
	return c.record(deps, html, ex)
}

// record stores the extraction as a run, noting when the same snapshot
// was extracted before.
func (c *ExtractCmd) record(deps *Dependencies, html string, ex *pulse.Extraction) error {
	hash := sqlite.HashContent(html)

	prev, err := deps.Runs.FindRuns(deps.Ctx, pulse.RunFilter{ContentHash: &hash, Limit: 1})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	if len(prev) > 0 {
		fmt.Fprintf(deps.Stdout, "Snapshot unchanged since run %s\n", prev[0].ID)
	}

	run := &pulse.Run{Source: deps.SnapshotPath, ContentHash: hash}
	if err := deps.Runs.CreateRun(deps.Ctx, run, ex); err != nil {
		fmt.Fprintf(deps.Stderr, "error: recording run: %s\n", errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Recorded run %s\n", run.ID)
	return nil
}

// errorText returns the user-facing message of application errors and the
// full text of anything else.
func errorText(err error) string {
	if pulse.ErrorCode(err) == pulse.EINTERNAL {
		return err.Error()
	}
	return pulse.ErrorMessage(err)
}
