// Package store persists FEPS memory snapshots. The core memory owns no
// file or network state; hosts that want durable clip weights take a
// snapshot and hand it to one of the backends here.
package store

import (
	"context"

	"github.com/fepslab/feps/types"
)

// SnapshotStore persists and retrieves memory snapshots. A zero snapshot ID
// is assigned on Save. Implementations are safe for concurrent use.
type SnapshotStore interface {
	// Save persists a snapshot, assigning an ID when missing.
	Save(ctx context.Context, snap *types.MemorySnapshot) error

	// Load returns the snapshot with the given ID, or SNAPSHOT_NOT_FOUND.
	Load(ctx context.Context, id string) (*types.MemorySnapshot, error)

	// Latest returns the most recently created snapshot, or
	// SNAPSHOT_NOT_FOUND when the store is empty.
	Latest(ctx context.Context) (*types.MemorySnapshot, error)

	// List returns snapshot IDs ordered newest first, at most limit
	// (0 means no limit).
	List(ctx context.Context, limit int) ([]string, error)

	// Delete removes a snapshot. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any backend resources.
	Close() error
}

func errNotFound(id string) error {
	return types.NewError(types.ErrSnapshotNotFound, "snapshot not found: "+id)
}
