package motion

import (
	"math"
	"testing"

	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
)

func TestPendulumAngleBounded(t *testing.T) {
	for _, length := range []float64{0.5, 1, 2, 5} {
		m := NewPendulum(params.Pendulum{Length: length, Mass: 1})
		// discretization error for semi-implicit Euler stays within O(dt)
		eps := 0.02
		for i := 0; i < 10000; i++ {
			s := m.Step()
			r := s.Readout.(dynamo.AngleReadout)
			if math.Abs(r.Theta) > InitialTheta+eps {
				t.Fatalf("L=%v: |theta|=%f exceeds %f at step %d", length, math.Abs(r.Theta), InitialTheta+eps, i)
			}
			if r.Phi != 0 {
				t.Fatalf("phi = %f, want 0", r.Phi)
			}
		}
	}
}

func TestPendulumFirstStep(t *testing.T) {
	m := NewPendulum(params.Pendulum{Length: 2, Mass: 1})
	s := m.Step()

	alpha := -(9.8 / 2) * math.Sin(InitialTheta)
	omega := alpha * Dt
	theta := InitialTheta + omega*Dt

	st := m.State()
	if math.Abs(st.Omega-omega) > 1e-12 || math.Abs(st.Theta-theta) > 1e-12 {
		t.Errorf("state = %+v, want theta=%f omega=%f", st, theta, omega)
	}

	want := m.Bob()
	if s.Position != want {
		t.Errorf("sample position %v, bob %v", s.Position, want)
	}
	if math.Abs(s.Position.Len()-2) > 1e-12 {
		t.Errorf("bob distance from pivot = %f, want 2", s.Position.Len())
	}
}

func TestPendulumSwings(t *testing.T) {
	m := NewPendulum(params.Pendulum{Length: 1, Mass: 1})
	sawNegative := false
	// period ~ 2*pi*sqrt(1/9.8) ~ 2s = 100 steps
	for i := 0; i < 100; i++ {
		if m.Step().Readout.(dynamo.AngleReadout).Theta < 0 {
			sawNegative = true
		}
	}
	if !sawNegative {
		t.Error("pendulum never crossed the vertical within one period")
	}
	if m.Done() {
		t.Error("pendulum should never be done")
	}
}

func TestPendulumIntegratorOption(t *testing.T) {
	if _, err := NewPendulumWith(params.Pendulum{Length: 1, Mass: 1}, "rk4"); err != nil {
		t.Fatalf("rk4: %v", err)
	}
	if _, err := NewPendulumWith(params.Pendulum{Length: 1, Mass: 1}, "nope"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
