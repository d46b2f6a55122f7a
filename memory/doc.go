/*
Package memory implements the FEPS episodic memory: a belief-tracking,
predictive-learning structure built from clone clips.

# Model

For every observation label the memory holds a fixed number of clone clips,
each a hypothesis of "being at observation O, instance i". A belief set tracks
which clips are consistent with the observation history; per-clip, per-action
edge weights ("h-values") drive a stochastic prediction of the next
observation; a trajectory of clips visited during a streak of correct
predictions accumulates confidence that is converted into edge rewards when
the streak breaks.

# Core types

  - [Memory]: the owning structure; all operations serialize on its internal
    lock, so a concurrent host may share one instance.
  - [Config]: clone count, forgetting rate gamma, base reward and sampling
    seed.
  - [Observer]: optional hook notified on belief resets and reward
    distributions, used for metrics.

# Operations

  - [Memory.Initialize]: create the clone clips for a fixed observation
    vocabulary. Calling it again resets all learned state.
  - [Memory.UpdateBeliefs]: reconcile the belief set with an observation.
  - [Memory.Predict]: sample a next-observation forecast for an action.
  - [Memory.UpdateModel] / [Memory.ProcessStep]: apply the trajectory and
    reward update for one interaction step.
  - [Memory.Uncertainty]: Shannon entropy of the reachable-observation
    distribution for an action.

Unknown observations and actions are tolerated silently as zero-evidence
cases: filtering by an unknown observation triggers a normal belief reset,
an unknown action samples uniformly and reports maximal uncertainty. This is
a deliberate permissive choice, matching the lazy default-zero weight map.
*/
package memory
