package main

import (
	"context"

	"github.com/fwojciec/pulse"
)

// Ensure ProbeFetcher implements pulse.Fetcher at compile time.
var _ pulse.Fetcher = (*ProbeFetcher)(nil)

// ProbeFetcher fetches over plain HTTP and falls back to a rendering
// fetcher when the static page yields no market records.
//
// Decision flow:
//   - HTTP fetch fails → render
//   - Static page has market records → use it
//   - Otherwise render and keep whichever page yields more records
type ProbeFetcher struct {
	HTTP      pulse.Fetcher
	Extractor pulse.Extractor

	// NewRenderer starts the rendering fetcher on first use.
	NewRenderer func() (pulse.Fetcher, error)

	renderer pulse.Fetcher
}

// Fetch implements pulse.Fetcher.
func (f *ProbeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	static, err := f.HTTP.Fetch(ctx, url)
	if err != nil {
		return f.render(ctx, url)
	}

	staticEx, err := f.Extractor.Extract(static)
	if err == nil && len(staticEx.Market) > 0 {
		return static, nil
	}

	rendered, rerr := f.render(ctx, url)
	if rerr != nil {
		// Rendering failed, keep the static page (best effort)
		return static, nil
	}

	if recordsDiffer(staticEx, rendered, f.Extractor) {
		return rendered, nil
	}
	return static, nil
}

func (f *ProbeFetcher) render(ctx context.Context, url string) (string, error) {
	if f.renderer == nil {
		r, err := f.NewRenderer()
		if err != nil {
			return "", err
		}
		f.renderer = r
	}
	return f.renderer.Fetch(ctx, url)
}

// Close closes both fetchers.
func (f *ProbeFetcher) Close() error {
	err := f.HTTP.Close()
	if f.renderer != nil {
		if rerr := f.renderer.Close(); err == nil {
			err = rerr
		}
	}
	return err
}

// recordsDiffer reports whether the rendered page yields more records than
// the static extraction. A failed static extraction counts as zero records.
func recordsDiffer(static *pulse.Extraction, rendered string, extractor pulse.Extractor) bool {
	renderedEx, err := extractor.Extract(rendered)
	if err != nil {
		return false
	}

	var staticCount int
	if static != nil {
		staticCount = len(static.Market) + len(static.News)
	}
	return len(renderedEx.Market)+len(renderedEx.News) > staticCount
}
