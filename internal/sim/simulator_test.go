package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/motion"
	"github.com/san-kum/quanticle/internal/params"
)

type countMetric struct{ n int }

func (c *countMetric) Name() string          { return "count" }
func (c *countMetric) Observe(dynamo.Sample) { c.n++ }
func (c *countMetric) Value() float64        { return float64(c.n) }
func (c *countMetric) Reset()                { c.n = 0 }

type nanStepper struct{ n int }

func (s *nanStepper) Step() dynamo.Sample {
	s.n++
	pos := mgl64.Vec3{float64(s.n), 0, 0}
	if s.n == 3 {
		pos[1] = math.NaN()
	}
	return dynamo.Sample{Step: s.n, Position: pos}
}

func TestRecorderStopsAtTerminal(t *testing.T) {
	model, err := motion.New(params.Projectile{AngleXY: 45, Speed: 10}, motion.Options{})
	if err != nil {
		t.Fatal(err)
	}
	r := NewRecorder(model)
	m := &countMetric{}
	r.AddMetric(m)
	seen := 0
	r.AddObserver(ObserverFunc(func(dynamo.Sample) { seen++ }))

	result, err := r.Run(context.Background(), RunConfig{Steps: 10000})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !result.Terminal {
		t.Error("expected terminal run")
	}
	last := result.Samples[len(result.Samples)-1]
	if !last.Terminal || last.Position.Y() != 0 {
		t.Errorf("last sample = %+v", last)
	}
	if result.StepsTaken != len(result.Samples) || seen != result.StepsTaken {
		t.Errorf("steps=%d samples=%d seen=%d", result.StepsTaken, len(result.Samples), seen)
	}
	if result.Metrics["count"] != float64(result.StepsTaken) {
		t.Errorf("count metric = %v", result.Metrics["count"])
	}
}

func TestRecorderStepLimit(t *testing.T) {
	model, _ := motion.New(params.Pendulum{Length: 1, Mass: 1}, motion.Options{})
	result, err := NewRecorder(model).Run(context.Background(), RunConfig{Steps: 50})
	if err != nil {
		t.Fatal(err)
	}
	if result.StepsTaken != 50 || result.Terminal {
		t.Errorf("steps=%d terminal=%v", result.StepsTaken, result.Terminal)
	}
}

func TestRecorderInvalidConfig(t *testing.T) {
	if _, err := NewRecorder(&nanStepper{}).Run(context.Background(), RunConfig{}); err == nil {
		t.Error("expected error for zero steps")
	}
}

func TestRecorderValidateState(t *testing.T) {
	result, err := NewRecorder(&nanStepper{}).Run(context.Background(), RunConfig{Steps: 10, ValidateState: true})
	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("err = %v, want SimulationError", err)
	}
	if simErr.Step != 3 || !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("err = %v", err)
	}
	if result.StepsTaken != 2 {
		t.Errorf("steps = %d", result.StepsTaken)
	}
}

func TestRecorderContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRecorder(&nanStepper{}).Run(ctx, RunConfig{Steps: 10})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}
