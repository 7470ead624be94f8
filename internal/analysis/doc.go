// Package analysis extracts frequency content from recorded runs.
//
//	freq := analysis.DominantFrequency(series, motion.Dt)
//
// The transform is go-dsp's real FFT, which accepts any series length.
package analysis
