package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fepslab/feps/internal/metrics"
	"github.com/fepslab/feps/memory"
	"github.com/fepslab/feps/types"
)

// Enhancer augments a TextGenerator with the FEPS episodic memory. It owns
// the observation history; each reported observation is checked against the
// memory's own forecast for the action that produced it, and the result
// drives the learning update.
type Enhancer struct {
	mu        sync.Mutex
	gen       TextGenerator
	mem       *memory.Memory
	collector *metrics.Collector
	logger    *zap.Logger

	sessionID string
	history   []types.StepRecord
}

// NewEnhancer creates an Enhancer around a generator and an initialized
// memory. collector may be nil.
func NewEnhancer(gen TextGenerator, mem *memory.Memory, collector *metrics.Collector, logger *zap.Logger) *Enhancer {
	if logger == nil {
		logger = zap.NewNop()
	}
	name := "none"
	if gen != nil {
		name = gen.Name()
	}
	return &Enhancer{
		gen:       gen,
		mem:       mem,
		collector: collector,
		sessionID: uuid.NewString(),
		logger: logger.With(
			zap.String("component", "feps_enhancer"),
			zap.String("provider", name)),
	}
}

// SessionID returns the identifier of this enhancer session.
func (e *Enhancer) SessionID() string { return e.sessionID }

// ProcessObservation reports a new observation. action is the action that
// led to it, empty for the first observation of a run. After the first
// observation the memory's forecast for the action is sampled and compared
// with what arrived, and the model is updated accordingly.
func (e *Enhancer) ProcessObservation(observation, action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec := types.StepRecord{
		Action:      action,
		Observation: observation,
		Timestamp:   time.Now(),
	}

	if len(e.history) == 0 || action == "" {
		if err := e.mem.UpdateBeliefs(observation); err != nil {
			return err
		}
		e.history = append(e.history, rec)
		return nil
	}

	prev := e.history[len(e.history)-1].Observation
	rec.PreviousObservation = prev

	predicted, ok, err := e.mem.Predict(action)
	if err != nil {
		return err
	}
	correct := ok && predicted == observation
	rec.Predicted = predicted
	rec.Correct = correct

	if err := e.mem.UpdateModel(prev, action, observation, correct); err != nil {
		return err
	}
	e.history = append(e.history, rec)

	e.collector.RecordPrediction(predictionOutcome(ok, correct))
	e.collector.ObserveBeliefSetSize(len(e.mem.Beliefs()))

	e.logger.Debug("observation processed",
		zap.String("observation", observation),
		zap.String("action", action),
		zap.String("predicted", predicted),
		zap.Bool("correct", correct))
	return nil
}

func predictionOutcome(ok, correct bool) string {
	switch {
	case !ok:
		return metrics.OutcomeNone
	case correct:
		return metrics.OutcomeCorrect
	default:
		return metrics.OutcomeIncorrect
	}
}

// Prediction returns the memory's forecast for an action without updating
// the model. The second return is false when the memory holds no beliefs.
func (e *Enhancer) Prediction(action string) (string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mem.Predict(action)
}

// BeliefStates returns the current belief set.
func (e *Enhancer) BeliefStates() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mem.Beliefs()
}

// Uncertainty returns the memory's entropy estimate for an action.
func (e *Enhancer) Uncertainty(action string) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, err := e.mem.Uncertainty(action)
	if err != nil {
		return 0, err
	}
	e.collector.ObserveUncertainty(u)
	return u, nil
}

// History returns a copy of the step records processed so far.
func (e *Enhancer) History() []types.StepRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]types.StepRecord(nil), e.history...)
}

// GenerateWithContext prefixes the prompt with the current belief state and
// delegates to the underlying generator.
func (e *Enhancer) GenerateWithContext(ctx context.Context, action, prompt string) (string, error) {
	if e.gen == nil {
		return "", types.NewError(types.ErrGeneratorUnavailable, "no text generator configured")
	}

	e.mu.Lock()
	beliefs := e.mem.Beliefs()
	u, err := e.mem.Uncertainty(action)
	e.mu.Unlock()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current belief states: %s\n", strings.Join(beliefs, ", "))
	fmt.Fprintf(&b, "Prediction uncertainty for %q: %.3f\n\n", action, u)
	b.WriteString(prompt)

	return e.gen.Generate(ctx, b.String())
}
