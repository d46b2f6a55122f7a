package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fepslab/feps/types"
)

func newTestMemory(t *testing.T, cfg Config) *Memory {
	t.Helper()
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	m, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	return m
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{})
	assert.Equal(t, DefaultNumClones, m.cfg.NumClones)
	assert.Equal(t, DefaultGamma, m.cfg.Gamma)
	assert.Equal(t, DefaultBaseReward, m.cfg.BaseReward)
}

func TestNew_InvalidCloneCount(t *testing.T) {
	t.Parallel()

	_, err := New(Config{NumClones: -1}, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, types.ErrInvalidCloneCount, types.GetErrorCode(err))
}

func TestInitialize_Cardinality(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 2})
	m.Initialize([]string{"a", "b"})

	assert.Equal(t, 4, m.ClipCount())
	assert.Empty(t, m.Beliefs())

	byObs := map[string]int{}
	for _, c := range m.clips {
		byObs[c.observation]++
	}
	assert.Equal(t, map[string]int{"a": 2, "b": 2}, byObs)
}

func TestInitialize_DuplicateObservations(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 3})
	m.Initialize([]string{"a", "a", "a"})
	assert.Equal(t, 3, m.ClipCount())
}

func TestInitialize_ResetsAllState(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{NumClones: 1})
	m.Initialize([]string{"a", "b"})
	require.NoError(t, m.UpdateBeliefs("a"))
	require.NoError(t, m.UpdateModel("a", "up", "a", true))
	require.NotEmpty(t, m.Beliefs())

	m.Initialize([]string{"a", "b"})
	assert.Empty(t, m.Beliefs())
	assert.Zero(t, m.TrajectoryLength())
	for _, c := range m.clips {
		assert.Empty(t, c.weights)
		assert.Zero(t, c.confidence)
	}
}

func TestOperations_BeforeInitialize(t *testing.T) {
	t.Parallel()

	m := newTestMemory(t, Config{})

	err := m.UpdateBeliefs("a")
	assert.Equal(t, types.ErrUninitializedMemory, types.GetErrorCode(err))

	_, _, err = m.Predict("up")
	assert.Equal(t, types.ErrUninitializedMemory, types.GetErrorCode(err))

	err = m.UpdateModel("a", "up", "b", false)
	assert.Equal(t, types.ErrUninitializedMemory, types.GetErrorCode(err))

	_, err = m.Uncertainty("up")
	assert.Equal(t, types.ErrUninitializedMemory, types.GetErrorCode(err))

	_, err = m.Snapshot()
	assert.Equal(t, types.ErrUninitializedMemory, types.GetErrorCode(err))
}
