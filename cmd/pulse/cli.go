package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/pulse"
)

// DefaultURL is the portal page fetched when no URL is given.
const DefaultURL = "https://www.cnbc.com/world/?region=world"

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	Fetcher      pulse.Fetcher
	Snapshots    pulse.SnapshotStore
	SnapshotPath string
	Extractor    pulse.Extractor
	Outputs      []Output
	Runs         pulse.RunService
}

// Output is a record sink together with the path it reports to the user.
type Output struct {
	Path string
	Sink pulse.RecordSink
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Data    string `default:"data" env:"PULSE_DATA" help:"Data directory holding raw_data and processed_data"`
	DB      string `name:"db" env:"PULSE_DB" help:"Run history database (default: <data>/pulse.db)"`
	Verbose bool   `short:"v" help:"Log pipeline steps to stderr"`

	Fetch   FetchCmd   `cmd:"" help:"Fetch the portal page and save it as the raw snapshot"`
	Extract ExtractCmd `cmd:"" help:"Extract market and news records from the raw snapshot"`
	Runs    RunsCmd    `cmd:"" help:"List recorded extraction runs"`
	Show    ShowCmd    `cmd:"" help:"Show the records of an extraction run"`
}

func (c *CLI) dbPath() string {
	if c.DB != "" {
		return c.DB
	}
	return filepath.Join(c.Data, "pulse.db")
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL     string        `arg:"" optional:"" default:"${default_url}" help:"Portal URL"`
	Render  bool          `short:"r" xor:"mode" help:"Render the page in headless Chrome before saving"`
	Probe   bool          `xor:"mode" help:"Render only when the static page has no market banner"`
	Timeout time.Duration `default:"30s" help:"Fetch timeout"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Rules     string `help:"YAML file with extraction rule overrides"`
	RSS       string `name:"rss" help:"Also write latest news as an RSS feed to this path"`
	NoHistory bool   `help:"Do not record the run in the history database"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of runs to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Run ID"`
}
