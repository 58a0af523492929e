package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pulse"
	"github.com/fwojciec/pulse/etree"
	"github.com/fwojciec/pulse/fs"
	"github.com/fwojciec/pulse/goquery"
	pulsehttp "github.com/fwojciec/pulse/http"
	"github.com/fwojciec/pulse/rod"
	pulseslog "github.com/fwojciec/pulse/slog"
	"github.com/fwojciec/pulse/sqlite"
	"github.com/fwojciec/pulse/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the run history. Opened only by commands
	// that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pulse"),
		kong.Description("Extract market tickers and latest news from a saved portal snapshot."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"default_url": DefaultURL},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pulse --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	store := fs.NewSnapshotStore(filepath.Join(cli.Data, fs.RawDir, fs.SnapshotFile))
	processedDir := filepath.Join(cli.Data, fs.ProcessedDir)
	deps.Snapshots = store
	deps.SnapshotPath = store.Path()

	switch strings.Fields(kongCtx.Command())[0] {
	case "fetch":
		fetcher, err := m.newFetcher(cli.Fetch, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()
		deps.Fetcher = pulseslog.NewLoggingFetcher(fetcher, logger)

	case "extract":
		rules := pulse.DefaultRules()
		if cli.Extract.Rules != "" {
			if rules, err = yaml.LoadRules(cli.Extract.Rules); err != nil {
				fmt.Fprintf(stderr, "error: %s\n", pulse.ErrorMessage(err))
				return err
			}
		}
		extractor, err := goquery.NewExtractor(rules)
		if err != nil {
			return err
		}
		deps.Extractor = pulseslog.NewLoggingExtractor(extractor, logger)

		csv := fs.NewCSVWriter(processedDir)
		deps.Outputs = append(deps.Outputs,
			Output{Path: processedDir, Sink: pulseslog.NewLoggingSink(csv, "csv", logger)},
		)
		if cli.Extract.RSS != "" {
			feed := etree.NewFeedWriter(cli.Extract.RSS, rules.BaseURL)
			deps.Outputs = append(deps.Outputs,
				Output{Path: cli.Extract.RSS, Sink: pulseslog.NewLoggingSink(feed, "rss", logger)},
			)
		}

		if !cli.Extract.NoHistory {
			if err := m.openDB(cli.dbPath(), stderr); err != nil {
				return err
			}
			defer m.Close()
			deps.Runs = sqlite.NewRunService(m.DB)
		}

	case "runs", "show":
		if err := m.openDB(cli.dbPath(), stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	return kongCtx.Run(deps)
}

func (m *Main) newFetcher(cmd FetchCmd, stderr io.Writer) (pulse.Fetcher, error) {
	static := pulsehttp.NewFetcher(pulsehttp.WithTimeout(cmd.Timeout))
	newRenderer := func() (pulse.Fetcher, error) {
		fetcher, err := rod.NewFetcher(
			rod.WithFetchTimeout(cmd.Timeout),
			rod.WithUserAgent(pulsehttp.DefaultUserAgent),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to render pages")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return fetcher, nil
	}

	switch {
	case cmd.Render:
		return newRenderer()
	case cmd.Probe:
		extractor, err := goquery.NewExtractor(pulse.DefaultRules())
		if err != nil {
			return nil, err
		}
		return &ProbeFetcher{
			HTTP:        static,
			Extractor:   extractor,
			NewRenderer: newRenderer,
		}, nil
	}
	return static, nil
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PULSE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}
