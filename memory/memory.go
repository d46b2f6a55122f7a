package memory

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fepslab/feps/types"
)

// Default learning parameters, matching the reference behavior.
const (
	DefaultNumClones  = 2
	DefaultGamma      = 0.1
	DefaultBaseReward = 1.0
)

// Observer receives notifications about memory state transitions. All methods
// are called while the memory lock is held; implementations must not call
// back into the memory.
type Observer interface {
	// OnBeliefReset fires when every active belief was falsified by an
	// observation and the belief set was rebuilt from the registry.
	OnBeliefReset(observation string)

	// OnRewardDistribution fires after trajectory rewards were applied.
	// edges is the number of consecutive pairs updated.
	OnRewardDistribution(edges, trajectoryLen int)
}

// Config holds the learning parameters of a Memory.
type Config struct {
	// NumClones is the number of clone clips created per observation.
	// Must be at least 1. Defaults to DefaultNumClones when 0.
	NumClones int `yaml:"num_clones" json:"num_clones"`

	// Gamma is the forgetting rate pulling unrewarded weights toward 1.0.
	Gamma float64 `yaml:"gamma" json:"gamma"`

	// BaseReward scales the confidence-weighted edge reward.
	BaseReward float64 `yaml:"base_reward" json:"base_reward"`

	// Seed seeds the transition sampler. 0 selects a time-based seed;
	// set it explicitly for reproducible runs.
	Seed int64 `yaml:"seed" json:"seed"`

	// Observer, when non-nil, is notified of belief resets and reward
	// distributions.
	Observer Observer `yaml:"-" json:"-"`
}

func (c Config) withDefaults() Config {
	if c.NumClones == 0 {
		c.NumClones = DefaultNumClones
	}
	if c.Gamma == 0 {
		c.Gamma = DefaultGamma
	}
	if c.BaseReward == 0 {
		c.BaseReward = DefaultBaseReward
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// Memory is the FEPS episodic memory. All exported methods serialize on an
// internal lock; interleaved belief mutation and prediction sampling from
// multiple goroutines observe a consistent state.
type Memory struct {
	mu  sync.RWMutex
	cfg Config
	rng *rand.Rand

	clips       map[string]*clip
	order       []string // clip ids in sorted order, fixed at Initialize
	beliefs     map[string]struct{}
	trajectory  []string
	initialized bool

	logger *zap.Logger
}

// New creates a Memory. Initialize must be called before any other
// operation. Returns InvalidCloneCount when cfg.NumClones is negative
// (0 selects the default).
func New(cfg Config, logger *zap.Logger) (*Memory, error) {
	if cfg.NumClones < 0 {
		return nil, types.NewError(types.ErrInvalidCloneCount, "num_clones must be at least 1")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	return &Memory{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		logger: logger.With(zap.String("component", "feps_memory")),
	}, nil
}

// Initialize creates NumClones clone clips per distinct observation. The
// observation vocabulary is fixed afterwards: clips are never added or
// destroyed. Calling Initialize again discards all learned state and starts
// over.
func (m *Memory) Initialize(observations []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clips = make(map[string]*clip)
	m.beliefs = make(map[string]struct{})
	m.trajectory = nil

	seen := make(map[string]struct{}, len(observations))
	for _, obs := range observations {
		if _, dup := seen[obs]; dup {
			continue
		}
		seen[obs] = struct{}{}
		for i := 0; i < m.cfg.NumClones; i++ {
			c := newClip(obs, i)
			m.clips[c.id] = c
		}
	}

	m.order = make([]string, 0, len(m.clips))
	for id := range m.clips {
		m.order = append(m.order, id)
	}
	sort.Strings(m.order)
	m.initialized = true

	m.logger.Debug("memory initialized",
		zap.Int("observations", len(seen)),
		zap.Int("num_clones", m.cfg.NumClones),
		zap.Int("clips", len(m.clips)))
}

// errUninitialized is the shared guard for every operation that needs clips.
func (m *Memory) errUninitialized() error {
	if !m.initialized {
		return types.NewError(types.ErrUninitializedMemory, "Initialize must be called first")
	}
	return nil
}

// ClipCount returns the number of clone clips in the registry.
func (m *Memory) ClipCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clips)
}

// Beliefs returns the current belief set as a sorted copy of clip ids.
func (m *Memory) Beliefs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.beliefs))
	for id := range m.beliefs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// TrajectoryLength returns the length of the current correct-prediction
// trajectory.
func (m *Memory) TrajectoryLength() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trajectory)
}

// sortedBeliefs returns belief ids in sorted order. Callers hold the lock.
// The fixed order keeps sampling and trajectory growth reproducible under a
// given seed; Go map iteration would reshuffle them per run.
func (m *Memory) sortedBeliefs() []string {
	ids := make([]string, 0, len(m.beliefs))
	for id := range m.beliefs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
