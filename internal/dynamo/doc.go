// Package dynamo provides the core primitives shared by the simulation stack.
//
// The package defines the fundamental types that flow between the motion
// models, the render loop and the host UI:
//
//   - [State]: vector representing ODE state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Sample]: one published step of a running simulation
//   - [Readout]: the display value carried by a sample
//
// # Example
//
//	dyn := physics.NewPendulum(2, 1)
//	integ := integrators.NewSymplecticEuler()
//	x := dynamo.State{math.Pi / 6, 0}
//	x = integ.Step(dyn, x, nil, 0, 0.02)
//
// # Thread Safety
//
// Nothing in this package synchronizes. Samples are values and may be copied
// freely across goroutines once published.
package dynamo
