package memory

import "go.uber.org/zap"

// UpdateModel applies one learning step.
//
// The belief set is first reconciled with currentObservation. On a correct
// prediction the whole belief set is appended to the trajectory (duplicates
// kept) and every consecutive-pair source in the trajectory gains one point
// of confidence; the increment spans pairs formed on earlier calls too, so
// confidence measures how long the trajectory has survived rather than
// per-action credit. On an incorrect prediction the accumulated trajectory
// is converted into edge rewards under the given action and then cleared.
// Finally the belief set is reconciled with nextObservation, which may clear
// the trajectory again if it triggers a reset.
func (m *Memory) UpdateModel(currentObservation, action, nextObservation string, correctPrediction bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errUninitialized(); err != nil {
		return err
	}

	m.updateBeliefs(currentObservation)

	if correctPrediction {
		m.trajectory = append(m.trajectory, m.sortedBeliefs()...)
		for i := 0; i < len(m.trajectory)-1; i++ {
			m.clips[m.trajectory[i]].confidence++
		}
	} else {
		m.distributeRewards(action)
		m.trajectory = nil
	}

	m.updateBeliefs(nextObservation)
	return nil
}

// distributeRewards converts the trajectory into edge rewards under the
// triggering action. For each consecutive pair (src, dst):
//
//	w ← w − gamma·(w − 1) + baseReward·confidence(src)
//
// The forgetting term pulls the old weight toward 1.0 before the reward is
// added, so rewarded edges grow without bound while unrewarded ones decay
// toward 1.0, never 0. Afterwards every clip in the trajectory has its
// confidence reset to 0. Trajectories shorter than 2 carry no edges and are
// a no-op. Callers hold the lock.
func (m *Memory) distributeRewards(action string) {
	if len(m.trajectory) < 2 {
		return
	}

	for i := 0; i < len(m.trajectory)-1; i++ {
		src := m.clips[m.trajectory[i]]
		dst := m.trajectory[i+1]
		old := src.weight(action, dst)
		reward := m.cfg.BaseReward * src.confidence
		src.setWeight(action, dst, old-m.cfg.Gamma*(old-1.0)+reward)
	}

	for _, id := range m.trajectory {
		m.clips[id].confidence = 0
	}

	if m.cfg.Observer != nil {
		m.cfg.Observer.OnRewardDistribution(len(m.trajectory)-1, len(m.trajectory))
	}
	m.logger.Debug("rewards distributed",
		zap.String("action", action),
		zap.Int("edges", len(m.trajectory)-1))
}

// ProcessStep is the host-facing entry point for one interaction step.
//
// The first observation of a run has no preceding action; pass empty action
// and predicted values and only the belief set is updated. Afterwards,
// predicted should carry the forecast obtained before acting (empty when
// there was none); the step counts as correct only when a non-empty
// prediction matches the observation.
func (m *Memory) ProcessStep(previousObservation, action, observation, predicted string) error {
	if action == "" {
		return m.UpdateBeliefs(observation)
	}
	correct := predicted != "" && predicted == observation
	return m.UpdateModel(previousObservation, action, observation, correct)
}
