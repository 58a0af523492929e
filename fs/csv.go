package fs

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/fwojciec/pulse"
)

// Output file names inside the processed data directory.
const (
	MarketFile = "market_data.csv"
	NewsFile   = "news_data.csv"
)

// Ensure CSVWriter implements pulse.RecordSink at compile time.
var _ pulse.RecordSink = (*CSVWriter)(nil)

// CSVWriter writes the market and news tables as CSV files to a directory.
// Each file is replaced atomically; a header row is always written.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates a new CSVWriter that writes to dir.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// MarketPath returns the path of the market table.
func (w *CSVWriter) MarketPath() string {
	return filepath.Join(w.dir, MarketFile)
}

// NewsPath returns the path of the news table.
func (w *CSVWriter) NewsPath() string {
	return filepath.Join(w.dir, NewsFile)
}

// WriteExtraction writes both tables.
func (w *CSVWriter) WriteExtraction(ctx context.Context, ex *pulse.Extraction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	market := make([][]string, 0, len(ex.Market))
	for _, r := range ex.Market {
		market = append(market, r.Row())
	}
	if err := writeTable(w.MarketPath(), pulse.MarketColumns, market); err != nil {
		return err
	}

	news := make([][]string, 0, len(ex.News))
	for _, r := range ex.News {
		news = append(news, r.Row())
	}
	return writeTable(w.NewsPath(), pulse.NewsColumns, news)
}

func writeTable(path string, header []string, rows [][]string) error {
	return writeAtomic(path, func(f *os.File) error {
		cw := csv.NewWriter(f)
		if err := cw.Write(header); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	})
}
