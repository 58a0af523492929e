package mock

import (
	"context"

	"github.com/fwojciec/pulse"
)

var _ pulse.RecordSink = (*RecordSink)(nil)

// RecordSink is a mock implementation of pulse.RecordSink.
type RecordSink struct {
	WriteExtractionFn func(ctx context.Context, ex *pulse.Extraction) error
}

func (s *RecordSink) WriteExtraction(ctx context.Context, ex *pulse.Extraction) error {
	return s.WriteExtractionFn(ctx, ex)
}
