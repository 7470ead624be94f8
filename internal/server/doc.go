// Package server streams simulation samples over websockets. Each
// connection owns one host and one frame queue, driven by a ticker on the
// connection goroutine.
package server
