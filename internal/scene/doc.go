// Package scene composes the per-variant 3D scene (camera, lights, geometry),
// keeps its nodes in sync with published samples and owns the lifecycle of
// the graphics surface it draws to.
package scene
