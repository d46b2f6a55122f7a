// Package types provides unified type definitions for the FEPS module.
package types

import "time"

// EdgeWeight is one learned transition strength ("h-value") from a clip to a
// destination clip under a specific action. Absent edges are implicitly 0.
type EdgeWeight struct {
	Action      string  `json:"action"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
}

// ClipSnapshot is the serialized form of one clone clip: its identity, the
// observation it is tied to, its trajectory confidence and its outgoing edges.
type ClipSnapshot struct {
	ID          string       `json:"id"`
	Observation string       `json:"observation"`
	Confidence  float64      `json:"confidence"`
	Edges       []EdgeWeight `json:"edges,omitempty"`
}

// MemorySnapshot is a point-in-time serialization of the whole episodic
// memory, suitable for persistence and restore. The snapshot carries the
// learning parameters so a restored memory behaves identically.
type MemorySnapshot struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	NumClones  int            `json:"num_clones"`
	Gamma      float64        `json:"gamma"`
	BaseReward float64        `json:"base_reward"`
	Clips      []ClipSnapshot `json:"clips"`
	Beliefs    []string       `json:"beliefs,omitempty"`
	Trajectory []string       `json:"trajectory,omitempty"`
}

// StepRecord describes one processed interaction step: the observation pair
// around an action, what the memory predicted, and whether it was right.
type StepRecord struct {
	PreviousObservation string    `json:"previous_observation,omitempty"`
	Action              string    `json:"action,omitempty"`
	Observation         string    `json:"observation"`
	Predicted           string    `json:"predicted,omitempty"`
	Correct             bool      `json:"correct"`
	Timestamp           time.Time `json:"timestamp"`
}
