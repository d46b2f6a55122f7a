package memory

import "math"

// MaxUncertainty is returned when no positive-weight transition exists for
// the queried action from any current belief. It is a fixed sentinel, not a
// computed entropy.
const MaxUncertainty = 1.0

// Uncertainty computes the Shannon entropy (natural log) of the
// reachable-observation distribution for an action over the current beliefs.
//
// Every destination reachable through a strictly positive action-keyed
// weight contributes its observation label; the entropy of the resulting
// label frequencies is returned. 0 means every transition funnels to one
// label; the value grows with label diversity and is not normalized. With no
// positive-weight destinations at all (including an empty belief set or an
// unknown action) the MaxUncertainty sentinel is returned.
func (m *Memory) Uncertainty(action string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.errUninitialized(); err != nil {
		return 0, err
	}

	counts := make(map[string]int)
	total := 0
	for id := range m.beliefs {
		for k, w := range m.clips[id].weights {
			if k.action != action || w <= 0 {
				continue
			}
			counts[m.clips[k.dest].observation]++
			total++
		}
	}
	if total == 0 {
		return MaxUncertainty, nil
	}

	var entropy float64
	for _, n := range counts {
		p := float64(n) / float64(total)
		entropy -= p * math.Log(p)
	}
	return entropy, nil
}
