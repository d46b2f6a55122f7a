package memory

// Predict samples a forecast of the next observation given an action.
//
// Each belief independently samples one outgoing transition: the clip's
// action-keyed weights over every clip in the registry form an unnormalized
// categorical distribution, with zero-weight destinations still eligible;
// when the whole row is zero the draw is uniform. Each sampled destination
// votes with its observation label and the plurality wins, ties broken by
// the lexicographically smallest label so results are reproducible across
// runs.
//
// The second return is false when there are no active beliefs, which is the
// normal condition before the first observation and not an error. Repeated
// calls on identical state may return different labels; Predict draws a
// sample, it does not compute the mode of the true distribution.
func (m *Memory) Predict(action string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errUninitialized(); err != nil {
		return "", false, err
	}
	if len(m.beliefs) == 0 {
		return "", false, nil
	}

	votes := make(map[string]int)
	for _, id := range m.sortedBeliefs() {
		dest := m.sampleNext(m.clips[id], action)
		votes[m.clips[dest].observation]++
	}

	best, bestCount := "", 0
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	}
	return best, true, nil
}

// sampleNext draws one destination clip id from c's action-keyed weight row.
// Callers hold the lock and guarantee the registry is non-empty.
func (m *Memory) sampleNext(c *clip, action string) string {
	var total float64
	for _, id := range m.order {
		total += c.weight(action, id)
	}
	if total == 0 {
		// No learning yet for this action: uniform over the registry.
		return m.order[m.rng.Intn(len(m.order))]
	}

	r := m.rng.Float64() * total
	var cum float64
	for _, id := range m.order {
		cum += c.weight(action, id)
		if r < cum {
			return id
		}
	}
	// Floating point may leave r a hair past the final cumulative sum.
	return m.order[len(m.order)-1]
}
