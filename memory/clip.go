package memory

import (
	"fmt"
	"sort"

	"github.com/fepslab/feps/types"
)

// edgeKey identifies one outgoing transition of a clip: the action taken and
// the destination clip. Weights are stored sparsely; a missing key reads as 0.
type edgeKey struct {
	action string
	dest   string
}

// clip is one clone node: a hypothesis of being at a given observation.
type clip struct {
	id          string
	observation string
	weights     map[edgeKey]float64
	confidence  float64
}

func newClip(observation string, index int) *clip {
	return &clip{
		id:          fmt.Sprintf("%s_clone_%d", observation, index),
		observation: observation,
		weights:     make(map[edgeKey]float64),
	}
}

// weight returns the h-value for (action, dest), 0 when the edge was never
// rewarded.
func (c *clip) weight(action, dest string) float64 {
	return c.weights[edgeKey{action: action, dest: dest}]
}

func (c *clip) setWeight(action, dest string, w float64) {
	c.weights[edgeKey{action: action, dest: dest}] = w
}

// snapshot serializes the clip with edges in deterministic order.
func (c *clip) snapshot() types.ClipSnapshot {
	edges := make([]types.EdgeWeight, 0, len(c.weights))
	for k, w := range c.weights {
		edges = append(edges, types.EdgeWeight{Action: k.action, Destination: k.dest, Weight: w})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Action != edges[j].Action {
			return edges[i].Action < edges[j].Action
		}
		return edges[i].Destination < edges[j].Destination
	})
	return types.ClipSnapshot{
		ID:          c.id,
		Observation: c.observation,
		Confidence:  c.confidence,
		Edges:       edges,
	}
}
