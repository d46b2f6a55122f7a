package memory

import "go.uber.org/zap"

// UpdateBeliefs reconciles the belief set with a new observation.
//
// From the empty state the belief set becomes every clip tied to the
// observation. Otherwise the existing set is filtered to clips whose
// observation matches; if that filter eliminates every belief (a surprise),
// the set is rebuilt from the registry and the trajectory is cleared,
// whether or not a correct-prediction streak was in progress.
//
// Repeating the same observation is idempotent: the set stabilizes at the
// full matching set. An observation outside the initialization vocabulary
// matches no clips and therefore behaves like a surprise into an empty set;
// this is tolerated silently.
func (m *Memory) UpdateBeliefs(observation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errUninitialized(); err != nil {
		return err
	}
	m.updateBeliefs(observation)
	return nil
}

// updateBeliefs is the lock-held belief transition shared by UpdateBeliefs,
// UpdateModel and ProcessStep.
func (m *Memory) updateBeliefs(observation string) {
	if len(m.beliefs) == 0 {
		m.beliefs = m.matchingClips(observation)
		return
	}

	for id := range m.beliefs {
		if m.clips[id].observation != observation {
			delete(m.beliefs, id)
		}
	}

	if len(m.beliefs) == 0 {
		// Every belief falsified: rebuild from the registry and abandon
		// the trajectory.
		m.beliefs = m.matchingClips(observation)
		m.trajectory = nil
		if m.cfg.Observer != nil {
			m.cfg.Observer.OnBeliefReset(observation)
		}
		m.logger.Debug("belief reset",
			zap.String("observation", observation),
			zap.Int("beliefs", len(m.beliefs)))
	}
}

func (m *Memory) matchingClips(observation string) map[string]struct{} {
	out := make(map[string]struct{})
	for id, c := range m.clips {
		if c.observation == observation {
			out[id] = struct{}{}
		}
	}
	return out
}
