package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fepslab/feps/types"
)

// InMemoryStore keeps snapshots in process memory. Suitable for tests and
// single-run hosts that only need restart-free checkpointing.
type InMemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*types.MemorySnapshot
	logger    *zap.Logger
}

// NewInMemoryStore creates an empty in-memory snapshot store.
func NewInMemoryStore(logger *zap.Logger) *InMemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryStore{
		snapshots: make(map[string]*types.MemorySnapshot),
		logger:    logger.With(zap.String("component", "snapshot_store_inmemory")),
	}
}

// Save stores a copy of the snapshot.
func (s *InMemoryStore) Save(ctx context.Context, snap *types.MemorySnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *snap
	s.snapshots[snap.ID] = &copied

	s.logger.Debug("snapshot saved",
		zap.String("id", snap.ID),
		zap.Int("clips", len(snap.Clips)))
	return nil
}

// Load returns the snapshot with the given ID.
func (s *InMemoryStore) Load(ctx context.Context, id string) (*types.MemorySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[id]
	if !ok {
		return nil, errNotFound(id)
	}
	copied := *snap
	return &copied, nil
}

// Latest returns the most recently created snapshot.
func (s *InMemoryStore) Latest(ctx context.Context) (*types.MemorySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *types.MemorySnapshot
	for _, snap := range s.snapshots {
		if latest == nil || snap.CreatedAt.After(latest.CreatedAt) {
			latest = snap
		}
	}
	if latest == nil {
		return nil, errNotFound("latest")
	}
	copied := *latest
	return &copied, nil
}

// List returns snapshot IDs newest first.
func (s *InMemoryStore) List(ctx context.Context, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*types.MemorySnapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		all = append(all, snap)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	ids := make([]string, 0, len(all))
	for _, snap := range all {
		ids = append(ids, snap.ID)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// Delete removes a snapshot.
func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }
