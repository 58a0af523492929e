// Package slog provides log/slog decorators for the pulse pipeline. Each
// decorator logs the operation name, result sizes, duration and error.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pulse"
)

// Ensure LoggingFetcher implements pulse.Fetcher.
var _ pulse.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   pulse.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pulse.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingExtractor implements pulse.Extractor.
var _ pulse.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   pulse.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pulse.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the record counts and delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string) (ex *pulse.Extraction, err error) {
	defer func(begin time.Time) {
		var market, news int
		if ex != nil {
			market, news = len(ex.Market), len(ex.News)
		}
		e.logger.Info("extract",
			"bytes", len(html),
			"market", market,
			"news", news,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}

// Ensure LoggingSink implements pulse.RecordSink.
var _ pulse.RecordSink = (*LoggingSink)(nil)

// LoggingSink wraps a RecordSink with logging. Name identifies the sink in
// log lines, e.g. "csv" or "rss".
type LoggingSink struct {
	next   pulse.RecordSink
	name   string
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next pulse.RecordSink, name string, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, name: name, logger: logger}
}

// WriteExtraction logs the write and delegates to the wrapped sink.
func (s *LoggingSink) WriteExtraction(ctx context.Context, ex *pulse.Extraction) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("write",
			"sink", s.name,
			"market", len(ex.Market),
			"news", len(ex.News),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteExtraction(ctx, ex)
}
