package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/loop"
)

// Recorder steps a model without a scene, as fast as it can. It backs the
// run command and tests.
type Recorder struct {
	model     loop.Stepper
	metrics   []Metric
	observers []Observer
}

func NewRecorder(model loop.Stepper) *Recorder {
	return &Recorder{model: model}
}

func (r *Recorder) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Recorder) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Recorder) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}

	result := &Result{
		Samples: make([]dynamo.Sample, 0, cfg.Steps),
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s := r.model.Step()
		if cfg.ValidateState && !validSample(s) {
			return result, &dynamo.SimulationError{Step: s.Step, Time: s.Time, Wrapped: dynamo.ErrInvalidState}
		}

		for _, m := range r.metrics {
			m.Observe(s)
		}
		for _, o := range r.observers {
			o.OnSample(s)
		}
		result.Samples = append(result.Samples, s)
		result.StepsTaken++

		if s.Terminal {
			result.Terminal = true
			break
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func validSample(s dynamo.Sample) bool {
	if !dynamo.State(s.Position[:]).IsValid() {
		return false
	}
	return !math.IsNaN(s.Energy) && !math.IsInf(s.Energy, 0)
}
