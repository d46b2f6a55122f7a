package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Drives a single-clone memory through a streak of correct predictions on
// "edge" followed by a miss, which triggers reward distribution.
func runStreak(t *testing.T, m *Memory, correct int) {
	t.Helper()
	for i := 0; i < correct; i++ {
		require.NoError(t, m.UpdateModel("edge", "up", "edge", true))
	}
	require.NoError(t, m.UpdateModel("edge", "up", "corner", false))
}

func TestUpdateModel_RewardFormula(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 1, Gamma: 0.1, BaseReward: 1.0})
	m.Initialize([]string{"edge", "corner"})

	// Two correct steps: trajectory [e0, e0], confidence(e0) = 1. The miss
	// then rewards the single e0->e0 pair:
	//   w = 0 - 0.1*(0-1) + 1*1 = 1.1
	runStreak(t, m, 2)

	e0 := m.clips["edge_clone_0"]
	assert.InDelta(t, 1.1, e0.weight("up", "edge_clone_0"), 1e-9)
	assert.Zero(t, e0.confidence)
	assert.Zero(t, m.TrajectoryLength())

	// The miss reconciled beliefs against "corner".
	assert.Equal(t, []string{"corner_clone_0"}, m.Beliefs())
}

func TestUpdateModel_ConfidenceCompoundsAcrossPairs(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 1, Gamma: 0.1, BaseReward: 1.0})
	m.Initialize([]string{"edge", "corner"})

	// Three correct steps: trajectory [e0, e0, e0], confidence(e0) = 3.
	// Both pairs hit the same (up, e0) edge:
	//   w1 = 0 - 0.1*(0-1) + 3 = 3.1
	//   w2 = 3.1 - 0.1*(3.1-1) + 3 = 5.89
	runStreak(t, m, 3)

	e0 := m.clips["edge_clone_0"]
	assert.InDelta(t, 5.89, e0.weight("up", "edge_clone_0"), 1e-9)
}

func TestUpdateModel_WeightGrowsAcrossStreaks(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 1, Gamma: 0.1, BaseReward: 1.0})
	m.Initialize([]string{"edge", "corner"})

	prev := 0.0
	for round := 0; round < 5; round++ {
		require.NoError(t, m.UpdateBeliefs("edge"))
		runStreak(t, m, 2)
		w := m.clips["edge_clone_0"].weight("up", "edge_clone_0")
		assert.Greater(t, w, prev, "round %d", round)
		prev = w
	}
}

func TestUpdateModel_ShortTrajectoryNoReward(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 1})
	m.Initialize([]string{"edge", "corner"})

	// One correct step leaves a length-1 trajectory; the miss has no pairs
	// to reward.
	runStreak(t, m, 1)
	assert.Empty(t, m.clips["edge_clone_0"].weights)
}

func TestUpdateModel_ObserverNotified(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	m := newTestMemory(t, Config{NumClones: 1, Observer: obs})
	m.Initialize([]string{"edge", "corner"})

	runStreak(t, m, 3)
	assert.Equal(t, 1, obs.distributions)
	assert.Equal(t, 2, obs.lastEdges)
}

func TestProcessStep_FirstObservation(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 2})
	m.Initialize([]string{"center", "edge", "corner"})

	require.NoError(t, m.ProcessStep("", "", "center", ""))
	assert.Equal(t, []string{"center_clone_0", "center_clone_1"}, m.Beliefs())
}

func TestProcessStep_EndToEnd(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 2})
	m.Initialize([]string{"center", "edge", "corner"})
	assert.Equal(t, 6, m.ClipCount())

	require.NoError(t, m.ProcessStep("", "", "center", ""))

	// Weights start at zero, so the forecast is a uniform draw over the
	// vocabulary.
	pred, ok, err := m.Predict("up")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, []string{"center", "edge", "corner"}, pred)

	// No prior prediction existed, so the step counts as incorrect.
	require.NoError(t, m.ProcessStep("center", "up", "edge", ""))
	assert.Zero(t, m.TrajectoryLength())
	assert.Equal(t, []string{"edge_clone_0", "edge_clone_1"}, m.Beliefs())
}
