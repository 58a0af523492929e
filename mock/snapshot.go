package mock

import (
	"context"

	"github.com/fwojciec/pulse"
)

var _ pulse.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of pulse.SnapshotStore.
type SnapshotStore struct {
	SaveFn func(ctx context.Context, raw []byte) error
	LoadFn func(ctx context.Context) (string, error)
}

func (s *SnapshotStore) Save(ctx context.Context, raw []byte) error {
	return s.SaveFn(ctx, raw)
}

func (s *SnapshotStore) Load(ctx context.Context) (string, error) {
	return s.LoadFn(ctx)
}
