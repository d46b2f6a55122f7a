// Package metrics provides internal prometheus metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Prediction outcome label values.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeNone      = "none"
)

// Collector gathers FEPS memory metrics. All methods are nil-safe so callers
// can run without metrics wired.
type Collector struct {
	predictionsTotal         *prometheus.CounterVec
	beliefResetsTotal        prometheus.Counter
	rewardDistributionsTotal prometheus.Counter
	rewardedEdgesTotal       prometheus.Counter
	beliefSetSize            prometheus.Gauge
	trajectoryLength         prometheus.Gauge
	uncertainty              prometheus.Histogram

	logger *zap.Logger
}

// NewCollector creates a Collector registered against the given registerer.
// Pass prometheus.DefaultRegisterer for production use or a fresh registry
// in tests.
func NewCollector(reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)

	return &Collector{
		predictionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "feps_predictions_total",
			Help: "Predictions checked against observed outcomes, by outcome.",
		}, []string{"outcome"}),
		beliefResetsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "feps_belief_resets_total",
			Help: "Belief-set resets triggered by total belief elimination.",
		}),
		rewardDistributionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "feps_reward_distributions_total",
			Help: "Trajectory reward distribution events.",
		}),
		rewardedEdgesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "feps_rewarded_edges_total",
			Help: "Edges updated across all reward distributions.",
		}),
		beliefSetSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "feps_belief_set_size",
			Help: "Size of the belief set after the latest update.",
		}),
		trajectoryLength: factory.NewGauge(prometheus.GaugeOpts{
			Name: "feps_trajectory_length",
			Help: "Trajectory length at the latest reward distribution.",
		}),
		uncertainty: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "feps_uncertainty",
			Help:    "Entropy of predicted-observation distributions.",
			Buckets: prometheus.LinearBuckets(0, 0.25, 10),
		}),
		logger: logger.With(zap.String("component", "feps_metrics")),
	}
}

// RecordPrediction counts one checked prediction by outcome.
func (c *Collector) RecordPrediction(outcome string) {
	if c == nil {
		return
	}
	c.predictionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveBeliefSetSize records the current belief-set size.
func (c *Collector) ObserveBeliefSetSize(n int) {
	if c == nil {
		return
	}
	c.beliefSetSize.Set(float64(n))
}

// ObserveUncertainty records one entropy evaluation.
func (c *Collector) ObserveUncertainty(u float64) {
	if c == nil {
		return
	}
	c.uncertainty.Observe(u)
}

// OnBeliefReset implements memory.Observer.
func (c *Collector) OnBeliefReset(observation string) {
	if c == nil {
		return
	}
	c.beliefResetsTotal.Inc()
	c.logger.Debug("belief reset observed", zap.String("observation", observation))
}

// OnRewardDistribution implements memory.Observer.
func (c *Collector) OnRewardDistribution(edges, trajectoryLen int) {
	if c == nil {
		return
	}
	c.rewardDistributionsTotal.Inc()
	c.rewardedEdgesTotal.Add(float64(edges))
	c.trajectoryLength.Set(float64(trajectoryLen))
}
