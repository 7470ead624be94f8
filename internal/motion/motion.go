// Package motion implements the time-stepped demo models. Each model advances
// by a fixed step and returns a sample per call to Step; publishing the
// sample is left to the render loop.
package motion

import (
	"fmt"
	"math"

	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
)

// Dt is the fixed simulated step, in seconds.
const Dt = 0.02

// Model is one running motion model.
type Model interface {
	Step() dynamo.Sample
	Done() bool
}

type Options struct {
	// Integrator selects the pendulum integrator by name; empty means
	// semi-implicit Euler.
	Integrator string
}

// New builds the model for p. The sandbox has no motion model; its dynamics
// belong to the rigid-body engine.
func New(p params.Parameters, opts Options) (Model, error) {
	switch p := p.(type) {
	case params.Projectile:
		return NewProjectile(p), nil
	case params.Pendulum:
		return NewPendulumWith(p, opts.Integrator)
	case params.SHM:
		return NewSHM(p), nil
	case params.Sandbox:
		return nil, fmt.Errorf("%w: sandbox has no motion model", dynamo.ErrUnknownVariant)
	default:
		return nil, fmt.Errorf("%w: %T", dynamo.ErrUnknownVariant, p)
	}
}

// InitialTheta is the pendulum release angle.
const InitialTheta = math.Pi / 6
