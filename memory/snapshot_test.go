package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 2, Gamma: 0.2, BaseReward: 2.0})
	m.Initialize([]string{"edge", "corner"})

	require.NoError(t, m.UpdateModel("edge", "up", "edge", true))
	require.NoError(t, m.UpdateModel("edge", "up", "edge", true))
	require.NoError(t, m.UpdateModel("edge", "up", "corner", false))

	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Len(t, snap.Clips, 4)
	assert.Equal(t, 2, snap.NumClones)
	assert.Equal(t, 0.2, snap.Gamma)

	restored := newTestMemory(t, Config{})
	require.NoError(t, restored.Restore(snap))

	assert.Equal(t, m.ClipCount(), restored.ClipCount())
	assert.Equal(t, m.Beliefs(), restored.Beliefs())
	assert.Equal(t, m.TrajectoryLength(), restored.TrajectoryLength())

	// Learned weights survive byte-for-byte.
	snap2, err := restored.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, snap.Clips, snap2.Clips)
	assert.Equal(t, snap.Beliefs, snap2.Beliefs)

	// And the restored memory keeps learning with the snapshot parameters.
	u, err := restored.Uncertainty("up")
	require.NoError(t, err)
	wantU, err := m.Uncertainty("up")
	require.NoError(t, err)
	assert.Equal(t, wantU, u)
}

func TestRestore_Invalid(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{})
	require.Error(t, m.Restore(nil))
}
