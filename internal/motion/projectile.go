package motion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/physics"
)

type ProjectileState struct {
	T        float64
	Position mgl64.Vec3
}

// Projectile follows the closed-form trajectory until the body drops below
// the ground, then rests there: y is clamped to 0, t stops advancing and
// every further Step returns the landed sample.
type Projectile struct {
	traj   physics.Ballistic
	dt     float64
	state  ProjectileState
	step   int
	landed bool
}

func NewProjectile(p params.Projectile) *Projectile {
	return &Projectile{
		traj: physics.NewBallistic(p.AngleXY, p.AngleZ, p.Speed),
		dt:   Dt,
	}
}

func (p *Projectile) Step() dynamo.Sample {
	if p.landed {
		return p.sample()
	}

	pos := p.traj.At(p.state.T)
	if pos.Y() >= 0 {
		p.state.Position = pos
		s := p.sample()
		p.state.T += p.dt
		p.step++
		return s
	}

	p.state.Position = mgl64.Vec3{pos.X(), 0, pos.Z()}
	p.landed = true
	return p.sample()
}

func (p *Projectile) Done() bool { return p.landed }

func (p *Projectile) State() ProjectileState { return p.state }

func (p *Projectile) Trajectory() physics.Ballistic { return p.traj }

func (p *Projectile) sample() dynamo.Sample {
	pos := p.state.Position
	return dynamo.Sample{
		Step:     p.step,
		Time:     p.state.T,
		Position: pos,
		Readout:  dynamo.PositionReadout{X: pos.X(), Y: pos.Y(), Z: pos.Z()},
		Terminal: p.landed,
	}
}
