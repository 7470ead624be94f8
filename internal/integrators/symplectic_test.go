package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/quanticle/internal/dynamo"
)

func TestSymplecticEulerUpdateOrder(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewSymplecticEuler()

	dt := 0.1
	x := integ.Step(dyn, dynamo.State{1.0, 0.0}, nil, 0, dt)

	// v' = v + a*dt = -0.1, q' = q + v'*dt = 0.99
	if math.Abs(x[1]-(-0.1)) > 1e-12 {
		t.Errorf("velocity = %.12f, want -0.1", x[1])
	}
	if math.Abs(x[0]-0.99) > 1e-12 {
		t.Errorf("position = %.12f, want 0.99", x[0])
	}
}

func TestSymplecticEulerBoundedEnergy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewSymplecticEuler()

	x := dynamo.State{1.0, 0.0}
	dt := 0.02
	maxAmp := 0.0
	for i := 0; i < 50000; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
		maxAmp = math.Max(maxAmp, math.Abs(x[0]))
	}

	if maxAmp > 1.0+dt {
		t.Errorf("amplitude grew to %.6f over a long run", maxAmp)
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		integ, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if integ == nil {
			t.Fatalf("ByName(%q) returned nil", name)
		}
	}

	if _, err := ByName(""); err != nil {
		t.Errorf("empty name should select the default, got %v", err)
	}
	if _, err := ByName("rk45"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
