package integrators

import "github.com/san-kum/quanticle/internal/dynamo"

// Leapfrog is the kick-drift-kick scheme for split states [q..., v...]: a
// half kick on the velocities, a full drift on the positions, then the second
// half kick from the drifted positions.
type Leapfrog struct {
	mid dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(l.mid) != n {
		l.mid = make(dynamo.State, n)
	}

	a0 := dyn.Derive(x, u, t)
	for i := 0; i < half; i++ {
		l.mid[half+i] = x[half+i] + dt/2*a0[half+i]
		l.mid[i] = x[i] + dt*l.mid[half+i]
	}
	a1 := dyn.Derive(l.mid, u, t+dt)

	result := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		result[i] = l.mid[i]
		result[half+i] = l.mid[half+i] + dt/2*a1[half+i]
	}
	return result
}
