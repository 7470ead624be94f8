// Package sandbox is the interactive rigid-body mode: a saved configuration
// is loaded asynchronously, after which the user spawns bodies into a
// physics world and watches them fall.
//
// The world is a 2D rigid-body engine stepped in the x/y plane; every body
// shares z = 0 and rests on a static ground at y = 0.
package sandbox
