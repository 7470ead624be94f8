package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Oscillator is undamped simple harmonic motion on three axes sharing one
// angular frequency.
type Oscillator struct {
	Amplitude float64
	Omega     float64
	Phase     mgl64.Vec3
}

// NewOscillator uses phase offsets 0, pi/2 and pi/4 on x, y and z.
func NewOscillator(amplitude, frequency float64) Oscillator {
	return Oscillator{
		Amplitude: amplitude,
		Omega:     2 * math.Pi * frequency,
		Phase:     mgl64.Vec3{0, math.Pi / 2, math.Pi / 4},
	}
}

func (o Oscillator) At(t float64) mgl64.Vec3 {
	wt := o.Omega * t
	return mgl64.Vec3{
		o.Amplitude * math.Sin(wt+o.Phase[0]),
		o.Amplitude * math.Sin(wt+o.Phase[1]),
		o.Amplitude * math.Sin(wt+o.Phase[2]),
	}
}

func (o Oscillator) Period() float64 {
	return 2 * math.Pi / o.Omega
}
