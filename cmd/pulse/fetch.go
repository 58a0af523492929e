package main

import (
	"fmt"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Fetching %s\n", c.URL)

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: fetching %s: %s\n", c.URL, errorText(err))
		return err
	}

	if err := deps.Snapshots.Save(deps.Ctx, []byte(html)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: saving snapshot: %s\n", errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d bytes to %s\n", len(html), deps.SnapshotPath)
	return nil
}
