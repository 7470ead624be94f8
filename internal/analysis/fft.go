package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Pad removes the mean so the DC bin does not dominate the spectrum.
func Pad(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out
}

// PowerSpectrum returns the magnitudes of the first half of the transform
// of the mean-removed series.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(Pad(data))
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency in Hz of a series
// sampled every dt seconds. A flat or too short series yields 0.
func DominantFrequency(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}
	ps := PowerSpectrum(data)
	best, peak := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > peak {
			best, peak = i, ps[i]
		}
	}
	if peak < 1e-9 {
		return 0
	}
	return float64(best) / (float64(len(data)) * dt)
}
