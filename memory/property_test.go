package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"
)

func observationGen() *rapid.Generator[[]string] {
	return rapid.Custom(func(t *rapid.T) []string {
		labels := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 1, 8).Draw(t, "labels")
		seen := make(map[string]struct{}, len(labels))
		out := make([]string, 0, len(labels))
		for _, l := range labels {
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
		return out
	})
}

func TestInitializeCardinalityProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		observations := observationGen().Draw(t, "observations")
		clones := rapid.IntRange(1, 5).Draw(t, "clones")

		m, err := New(Config{NumClones: clones, Seed: 1}, zap.NewNop())
		require.NoError(t, err)
		m.Initialize(observations)

		if got := m.ClipCount(); got != len(observations)*clones {
			t.Fatalf("expected %d clips, got %d", len(observations)*clones, got)
		}
		if len(m.Beliefs()) != 0 {
			t.Fatalf("belief set must start empty")
		}
	})
}

func TestBeliefConsistencyProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		observations := observationGen().Draw(t, "observations")
		m, err := New(Config{NumClones: rapid.IntRange(1, 4).Draw(t, "clones"), Seed: 1}, zap.NewNop())
		require.NoError(t, err)
		m.Initialize(observations)

		// After any sequence of updates, every belief must sit on the last
		// observation and repeating it must change nothing.
		var last string
		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			last = rapid.SampledFrom(observations).Draw(t, "observation")
			require.NoError(t, m.UpdateBeliefs(last))
		}

		for _, id := range m.Beliefs() {
			if m.clips[id].observation != last {
				t.Fatalf("belief %s is on %q, last observation was %q", id, m.clips[id].observation, last)
			}
		}

		before := m.Beliefs()
		require.NoError(t, m.UpdateBeliefs(last))
		after := m.Beliefs()
		if len(before) != len(after) {
			t.Fatalf("repeated observation changed the belief set: %v -> %v", before, after)
		}
	})
}

func TestWeightsStayNonNegativeProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		observations := observationGen().Draw(t, "observations")
		actions := []string{"up", "down", "left", "right"}

		m, err := New(Config{NumClones: rapid.IntRange(1, 3).Draw(t, "clones"), Seed: 1}, zap.NewNop())
		require.NoError(t, err)
		m.Initialize(observations)

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		prev := rapid.SampledFrom(observations).Draw(t, "first")
		require.NoError(t, m.UpdateBeliefs(prev))
		for i := 0; i < steps; i++ {
			next := rapid.SampledFrom(observations).Draw(t, "next")
			action := rapid.SampledFrom(actions).Draw(t, "action")
			correct := rapid.Bool().Draw(t, "correct")
			require.NoError(t, m.UpdateModel(prev, action, next, correct))
			prev = next
		}

		for id, c := range m.clips {
			if c.confidence < 0 {
				t.Fatalf("clip %s has negative confidence %v", id, c.confidence)
			}
			for k, w := range c.weights {
				if w < 0 {
					t.Fatalf("clip %s edge %+v has negative weight %v", id, k, w)
				}
			}
		}
	})
}
