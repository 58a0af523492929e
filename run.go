package pulse

import (
	"context"
	"time"
)

// Run represents one recorded extraction of a snapshot.
type Run struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	ContentHash string    `json:"contentHash"`
	MarketCount int       `json:"marketCount"`
	NewsCount   int       `json:"newsCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "run source required")
	}
	if r.ContentHash == "" {
		return Errorf(EINVALID, "run content hash required")
	}
	return nil
}

// RunService represents a service for managing extraction history.
type RunService interface {
	// CreateRun stores a run together with its records.
	// ID, counts and CreatedAt are assigned by the service.
	CreateRun(ctx context.Context, run *Run, ex *Extraction) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindMarketRecords retrieves the market records of a run in extraction order.
	FindMarketRecords(ctx context.Context, runID string) ([]MarketRecord, error)

	// FindNewsRecords retrieves the news records of a run in extraction order.
	FindNewsRecords(ctx context.Context, runID string) ([]NewsRecord, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID          *string `json:"id"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
