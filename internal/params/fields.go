package params

import (
	"fmt"
	"math"
)

// Field describes one adjustable parameter for host controls.
type Field struct {
	Name  string
	Unit  string
	Value float64
	Range Range
	Step  float64
}

func Fields(p Parameters) []Field {
	switch p := p.(type) {
	case Projectile:
		return []Field{
			{Name: "angleXY", Unit: "deg", Value: p.AngleXY, Range: AngleXYRange, Step: 1},
			{Name: "angleZ", Unit: "deg", Value: p.AngleZ, Range: AngleZRange, Step: 1},
			{Name: "speed", Unit: "m/s", Value: p.Speed, Range: SpeedRange, Step: 1},
		}
	case Pendulum:
		return []Field{
			{Name: "length", Unit: "m", Value: p.Length, Range: LengthRange, Step: 0.1},
			{Name: "mass", Unit: "kg", Value: p.Mass, Range: MassRange, Step: 0.1},
		}
	case SHM:
		return []Field{
			{Name: "amplitude", Unit: "m", Value: p.Amplitude, Range: AmplitudeRange, Step: 0.1},
			{Name: "frequency", Unit: "Hz", Value: p.Frequency, Range: FrequencyRange, Step: 0.05},
		}
	default:
		return nil
	}
}

// Set returns a copy of p with the named field replaced. The result is not
// normalized.
func Set(p Parameters, name string, value float64) (Parameters, error) {
	unknown := fmt.Errorf("unknown param %q for %v", name, variantOf(p))
	switch p := p.(type) {
	case Projectile:
		switch name {
		case "angleXY":
			p.AngleXY = value
		case "angleZ":
			p.AngleZ = value
		case "speed":
			p.Speed = value
		default:
			return nil, unknown
		}
		return p, nil
	case Pendulum:
		switch name {
		case "length":
			p.Length = value
		case "mass":
			p.Mass = value
		default:
			return nil, unknown
		}
		return p, nil
	case SHM:
		switch name {
		case "amplitude":
			p.Amplitude = value
		case "frequency":
			p.Frequency = value
		default:
			return nil, unknown
		}
		return p, nil
	default:
		return nil, unknown
	}
}

// Nudge moves a field by delta steps, clamps it to the field range and rounds
// away float noise from repeated slider steps.
func Nudge(p Parameters, name string, delta int) (Parameters, error) {
	for _, f := range Fields(p) {
		if f.Name != name {
			continue
		}
		v := f.Range.Clamp(f.Value + float64(delta)*f.Step)
		return Set(p, name, math.Round(v*1000)/1000)
	}
	return nil, fmt.Errorf("unknown param %q for %v", name, variantOf(p))
}

func variantOf(p Parameters) string {
	if p == nil {
		return "<nil>"
	}
	return p.Variant().String()
}
