package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/dynamo"
)

// Pendulum is an undamped planar pendulum. State is [theta, omega].
type Pendulum struct {
	Mass    float64
	Length  float64
	Gravity float64
}

func NewPendulum(length, mass float64) *Pendulum {
	return &Pendulum{
		Mass:    mass,
		Length:  length,
		Gravity: StandardGravity,
	}
}

func (p *Pendulum) StateDim() int {
	return 2
}

func (p *Pendulum) ControlDim() int {
	return 0
}

// Derive returns [omega, alpha] with alpha = -(g/L) sin(theta). Mass cancels.
func (p *Pendulum) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	theta := x[0]
	omega := x[1]

	alpha := -(p.Gravity / p.Length) * math.Sin(theta)
	return dynamo.State{omega, alpha}
}

func (p *Pendulum) Energy(x dynamo.State) float64 {
	// KE = 0.5 * m * (L*omega)^2
	// PE = m * g * L * (1 - cos(theta))
	v := p.Length * x[1]
	ke := 0.5 * p.Mass * v * v
	pe := p.Mass * p.Gravity * p.Length * (1.0 - math.Cos(x[0]))
	return ke + pe
}

// Bob returns the bob position relative to the pivot.
func (p *Pendulum) Bob(theta float64) mgl64.Vec3 {
	return mgl64.Vec3{p.Length * math.Sin(theta), -p.Length * math.Cos(theta), 0}
}
