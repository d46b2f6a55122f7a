package memory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUncertainty_SentinelWithoutEvidence(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 2})
	m.Initialize([]string{"a", "b"})

	// Empty beliefs.
	u, err := m.Uncertainty("up")
	require.NoError(t, err)
	assert.Equal(t, MaxUncertainty, u)

	// Active beliefs, but no positive weights for the action.
	require.NoError(t, m.UpdateBeliefs("a"))
	u, err = m.Uncertainty("up")
	require.NoError(t, err)
	assert.Equal(t, MaxUncertainty, u)
}

func TestUncertainty_ZeroWhenSingleLabel(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 2})
	m.Initialize([]string{"a", "b"})
	require.NoError(t, m.UpdateBeliefs("a"))

	// Every positive-weight destination under "up" funnels to "b".
	m.clips["a_clone_0"].setWeight("up", "b_clone_0", 2.0)
	m.clips["a_clone_1"].setWeight("up", "b_clone_1", 0.5)

	u, err := m.Uncertainty("up")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, u, 1e-12)
}

func TestUncertainty_BalancedLabels(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 1})
	m.Initialize([]string{"a", "b", "c"})
	require.NoError(t, m.UpdateBeliefs("a"))

	// One destination each toward "b" and "c": entropy ln(2).
	m.clips["a_clone_0"].setWeight("up", "b_clone_0", 1.0)
	m.clips["a_clone_0"].setWeight("up", "c_clone_0", 3.0)

	u, err := m.Uncertainty("up")
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2), u, 1e-12)
}

func TestUncertainty_IgnoresOtherActions(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 1})
	m.Initialize([]string{"a", "b"})
	require.NoError(t, m.UpdateBeliefs("a"))

	m.clips["a_clone_0"].setWeight("down", "b_clone_0", 4.0)

	u, err := m.Uncertainty("up")
	require.NoError(t, err)
	assert.Equal(t, MaxUncertainty, u)
}
