package pulse

import "context"

// SnapshotStore persists the raw portal snapshot between the fetch step
// and the extraction step.
type SnapshotStore interface {
	// Save stores raw snapshot bytes, replacing any previous snapshot.
	Save(ctx context.Context, raw []byte) error

	// Load returns the decoded snapshot.
	// Returns EMISSING if the snapshot is absent or empty.
	Load(ctx context.Context) (string, error)
}
