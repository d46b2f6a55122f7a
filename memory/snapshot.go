package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fepslab/feps/types"
)

// Snapshot serializes the full memory state: every clip with its edges and
// confidence, the belief set, the trajectory and the learning parameters.
// Clips and edges are emitted in deterministic order.
func (m *Memory) Snapshot() (*types.MemorySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.errUninitialized(); err != nil {
		return nil, err
	}

	clips := make([]types.ClipSnapshot, 0, len(m.clips))
	for _, id := range m.order {
		clips = append(clips, m.clips[id].snapshot())
	}
	beliefs := m.sortedBeliefs()

	return &types.MemorySnapshot{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		NumClones:  m.cfg.NumClones,
		Gamma:      m.cfg.Gamma,
		BaseReward: m.cfg.BaseReward,
		Clips:      clips,
		Beliefs:    beliefs,
		Trajectory: append([]string(nil), m.trajectory...),
	}, nil
}

// Restore replaces the memory state with a previously taken snapshot,
// including the learning parameters it was taken under. The sampler keeps
// its current seed.
func (m *Memory) Restore(s *types.MemorySnapshot) error {
	if s == nil {
		return types.NewError(types.ErrInvalidConfig, "nil snapshot")
	}
	if s.NumClones < 1 {
		return types.NewError(types.ErrInvalidCloneCount, "snapshot num_clones must be at least 1")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cfg.NumClones = s.NumClones
	if s.Gamma > 0 {
		m.cfg.Gamma = s.Gamma
	}
	if s.BaseReward > 0 {
		m.cfg.BaseReward = s.BaseReward
	}

	m.clips = make(map[string]*clip, len(s.Clips))
	for _, cs := range s.Clips {
		c := &clip{
			id:          cs.ID,
			observation: cs.Observation,
			confidence:  cs.Confidence,
			weights:     make(map[edgeKey]float64, len(cs.Edges)),
		}
		for _, e := range cs.Edges {
			c.weights[edgeKey{action: e.Action, dest: e.Destination}] = e.Weight
		}
		m.clips[c.id] = c
	}

	m.order = make([]string, 0, len(m.clips))
	for id := range m.clips {
		m.order = append(m.order, id)
	}
	sort.Strings(m.order)

	m.beliefs = make(map[string]struct{}, len(s.Beliefs))
	for _, id := range s.Beliefs {
		if _, ok := m.clips[id]; ok {
			m.beliefs[id] = struct{}{}
		}
	}
	m.trajectory = append([]string(nil), s.Trajectory...)
	m.initialized = true
	return nil
}
