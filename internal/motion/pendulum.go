package motion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/integrators"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/physics"
)

type PendulumState struct {
	Theta, Omega float64
}

// Pendulum integrates the simple pendulum forever from theta0 = pi/6 at rest.
type Pendulum struct {
	sys   *physics.Pendulum
	integ dynamo.Integrator
	x     dynamo.State
	t, dt float64
	step  int
}

func NewPendulum(p params.Pendulum) *Pendulum {
	return &Pendulum{
		sys:   physics.NewPendulum(p.Length, p.Mass),
		integ: integrators.NewSymplecticEuler(),
		x:     dynamo.State{InitialTheta, 0},
		dt:    Dt,
	}
}

func NewPendulumWith(p params.Pendulum, integrator string) (*Pendulum, error) {
	integ, err := integrators.ByName(integrator)
	if err != nil {
		return nil, err
	}
	m := NewPendulum(p)
	m.integ = integ
	return m, nil
}

func (p *Pendulum) Step() dynamo.Sample {
	p.x = p.integ.Step(p.sys, p.x, nil, p.t, p.dt)
	p.t += p.dt
	p.step++

	theta := p.x[0]
	return dynamo.Sample{
		Step:     p.step,
		Time:     p.t,
		Position: p.Bob(),
		Readout:  dynamo.AngleReadout{Theta: theta, Phi: 0},
		Energy:   p.sys.Energy(p.x),
	}
}

func (p *Pendulum) Done() bool { return false }

func (p *Pendulum) State() PendulumState {
	return PendulumState{Theta: p.x[0], Omega: p.x[1]}
}

func (p *Pendulum) Bob() mgl64.Vec3 { return p.sys.Bob(p.x[0]) }

func (p *Pendulum) System() *physics.Pendulum { return p.sys }
