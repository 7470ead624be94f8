package integrators

import "github.com/san-kum/quanticle/internal/dynamo"

// Verlet is velocity Verlet for split states [q..., v...]. Positions take a
// full step from the current acceleration, then velocities average the old
// and new accelerations.
type Verlet struct {
	drifted dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(v.drifted) != n {
		v.drifted = make(dynamo.State, n)
	}

	a0 := dyn.Derive(x, u, t)
	copy(v.drifted[half:], x[half:])
	for i := 0; i < half; i++ {
		v.drifted[i] = x[i] + dt*x[half+i] + dt*dt/2*a0[half+i]
	}
	a1 := dyn.Derive(v.drifted, u, t+dt)

	result := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		result[i] = v.drifted[i]
		result[half+i] = x[half+i] + dt/2*(a0[half+i]+a1[half+i])
	}
	return result
}
