// Package window is the desktop host. It draws the same scenes as the
// terminal view into a raylib window.
//
// The raylib surface and event loop build only with the raylib tag, since
// raylib needs cgo and a GL capable display:
//
//	go build -tags raylib ./cmd/quanticle
//	quanticle window pendulum
//
// Everything else here ([Driver], [Primitives]) is plain Go so it can be
// exercised without a display.
package window
