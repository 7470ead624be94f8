package motion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/physics"
)

type SHMState struct {
	T        float64
	Position mgl64.Vec3
}

type SHM struct {
	osc   physics.Oscillator
	dt    float64
	state SHMState
	step  int
}

func NewSHM(p params.SHM) *SHM {
	return &SHM{
		osc: physics.NewOscillator(p.Amplitude, p.Frequency),
		dt:  Dt,
	}
}

func (s *SHM) Step() dynamo.Sample {
	pos := s.osc.At(s.state.T)
	s.state.Position = pos
	sample := dynamo.Sample{
		Step:     s.step,
		Time:     s.state.T,
		Position: pos,
		Readout:  dynamo.PositionReadout{X: pos.X(), Y: pos.Y(), Z: pos.Z()},
	}
	s.state.T += s.dt
	s.step++
	return sample
}

func (s *SHM) Done() bool { return false }

func (s *SHM) State() SHMState { return s.state }

func (s *SHM) Oscillator() physics.Oscillator { return s.osc }
