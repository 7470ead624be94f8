package integrators

import "github.com/san-kum/quanticle/internal/dynamo"

// SymplecticEuler is semi-implicit Euler for split states laid out as
// [q..., v...]: velocities are advanced first and the new velocities move the
// positions.
type SymplecticEuler struct {
	scratch dynamo.State
}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(s.scratch) != n {
		s.scratch = make(dynamo.State, n)
	}

	dx := dyn.Derive(x, u, t)
	copy(s.scratch, dx)

	result := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + s.scratch[half+i]*dt
		result[i] = x[i] + result[half+i]*dt
	}
	return result
}
