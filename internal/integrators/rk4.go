package integrators

import "github.com/san-kum/quanticle/internal/dynamo"

// RK4 is the classic fourth order Runge-Kutta method. It is accurate on short
// runs but slowly bleeds energy from oscillators.
type RK4 struct {
	k     [4]dynamo.State
	stage dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

// offset writes x + h*k into the stage buffer.
func (r *RK4) offset(x, k dynamo.State, h float64) dynamo.State {
	for i := range x {
		r.stage[i] = x[i] + h*k[i]
	}
	return r.stage
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	if len(r.stage) != n {
		r.stage = make(dynamo.State, n)
		for i := range r.k {
			r.k[i] = make(dynamo.State, n)
		}
	}

	h := dt / 2
	copy(r.k[0], dyn.Derive(x, u, t))
	copy(r.k[1], dyn.Derive(r.offset(x, r.k[0], h), u, t+h))
	copy(r.k[2], dyn.Derive(r.offset(x, r.k[1], h), u, t+h))
	copy(r.k[3], dyn.Derive(r.offset(x, r.k[2], dt), u, t+dt))

	result := make(dynamo.State, n)
	for i := range x {
		result[i] = x[i] + dt/6*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return result
}
