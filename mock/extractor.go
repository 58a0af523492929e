package mock

import "github.com/fwojciec/pulse"

var _ pulse.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pulse.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pulse.Extraction, error)
}

func (e *Extractor) Extract(html string) (*pulse.Extraction, error) {
	return e.ExtractFn(html)
}
