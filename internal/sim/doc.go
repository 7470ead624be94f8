// Package sim hosts simulation sessions. A Host mounts one session at a
// time, reconciling parameter changes into either a no-op or a full
// teardown and recreate. Recorder runs a model headless for the run command.
package sim
