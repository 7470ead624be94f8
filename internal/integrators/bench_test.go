package integrators

import (
	"testing"

	"github.com/san-kum/quanticle/internal/dynamo"
)

type benchDynamics struct{}

func (b *benchDynamics) StateDim() int   { return 2 }
func (b *benchDynamics) ControlDim() int { return 0 }
func (b *benchDynamics) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func benchmarkIntegrator(b *testing.B, integrator dynamo.Integrator) {
	dyn := &benchDynamics{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, nil, 0, 0.02)
	}
}

func BenchmarkEuler(b *testing.B)      { benchmarkIntegrator(b, NewEuler()) }
func BenchmarkSymplectic(b *testing.B) { benchmarkIntegrator(b, NewSymplecticEuler()) }
func BenchmarkRK4(b *testing.B)        { benchmarkIntegrator(b, NewRK4()) }
func BenchmarkVerlet(b *testing.B)     { benchmarkIntegrator(b, NewVerlet()) }
