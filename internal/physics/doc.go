// Package physics provides the closed-form and ODE models behind the demo
// simulations.
//
//   - [Pendulum]: simple pendulum ODE, implements [dynamo.System]
//   - [Ballistic]: drag-free projectile kinematics
//   - [Oscillator]: three-axis simple harmonic motion
//
// # Energy
//
// [Pendulum.Energy] gives the mechanical energy of a state. The pendulum
// motion reports it every step so drift shows up in the metrics:
//
//	p := physics.NewPendulum(2, 1)
//	e0 := p.Energy(dynamo.State{theta0, 0})
package physics

// StandardGravity is the gravitational acceleration used by the motion
// models, in m/s^2.
const StandardGravity = 9.8
