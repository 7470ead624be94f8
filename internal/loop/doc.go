// Package loop drives one render session: each presented frame advances the
// stepper, mutates the scene and publishes the sample.
//
// The controller is single-threaded. A [Scheduler] hands it frame callbacks;
// [FrameQueue] is the requestAnimationFrame-style scheduler the hosts present
// from their own loop goroutine. Cancellation is cooperative and is checked
// only at the top of a tick.
package loop
