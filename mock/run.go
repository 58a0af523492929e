package mock

import (
	"context"

	"github.com/fwojciec/pulse"
)

var _ pulse.RunService = (*RunService)(nil)

// RunService is a mock implementation of pulse.RunService.
type RunService struct {
	CreateRunFn         func(ctx context.Context, run *pulse.Run, ex *pulse.Extraction) error
	FindRunByIDFn       func(ctx context.Context, id string) (*pulse.Run, error)
	FindRunsFn          func(ctx context.Context, filter pulse.RunFilter) ([]*pulse.Run, error)
	FindMarketRecordsFn func(ctx context.Context, runID string) ([]pulse.MarketRecord, error)
	FindNewsRecordsFn   func(ctx context.Context, runID string) ([]pulse.NewsRecord, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *pulse.Run, ex *pulse.Extraction) error {
	return s.CreateRunFn(ctx, run, ex)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*pulse.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter pulse.RunFilter) ([]*pulse.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FindMarketRecords(ctx context.Context, runID string) ([]pulse.MarketRecord, error) {
	return s.FindMarketRecordsFn(ctx, runID)
}

func (s *RunService) FindNewsRecords(ctx context.Context, runID string) ([]pulse.NewsRecord, error) {
	return s.FindNewsRecordsFn(ctx, runID)
}
