// Package viz is the terminal host for the lab.
//
// [App] is a Bubble Tea program that owns a [sim.Host] and presents its
// frame queue on every tick. Scenes are rasterized by [BrailleSurface] onto a
// braille [Canvas].
//
// # Key Bindings
//
//	1-4     - Projectile, Pendulum, SHM, Sandbox
//	Tab     - Select parameter
//	Up/Down - Adjust parameter (clamped to its range)
//	R       - Restart with the same parameters
//	Space   - Pause/Resume frame presentation
//	←/→     - Orbit camera, +/- zoom
//	T       - Cycle color themes
//	S       - Sandbox: spawn the configured body (B box, O sphere)
//	C       - Sandbox: clear bodies
//	G       - Sandbox: toggle gravity
//	?       - Show help overlay
package viz
