package params

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/san-kum/quanticle/internal/dynamo"
)

type Range struct {
	Min, Max float64
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }
func (r Range) Clamp(v float64) float64 { return lo.Clamp(v, r.Min, r.Max) }

// Ranges enforced by the host UI sliders.
var (
	AngleXYRange   = Range{0, 90}
	AngleZRange    = Range{-90, 90}
	SpeedRange     = Range{1, 50}
	LengthRange    = Range{0.5, 5}
	MassRange      = Range{0.1, 5}
	AmplitudeRange = Range{0.5, 5}
	FrequencyRange = Range{0.1, 2}
)

// Policy selects what Normalize does with an out-of-range value.
type Policy int

const (
	Clamp Policy = iota
	Reject
)

func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "clamp":
		return Clamp, nil
	case "reject", "strict":
		return Reject, nil
	default:
		return 0, fmt.Errorf("unknown validation policy: %s", name)
	}
}

func (p Policy) String() string {
	if p == Reject {
		return "reject"
	}
	return "clamp"
}

// BoundsError reports the field that failed validation.
type BoundsError struct {
	Field string
	Value float64
	Range Range
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s=%g outside [%g, %g]", e.Field, e.Value, e.Range.Min, e.Range.Max)
}

func (e *BoundsError) Unwrap() error { return dynamo.ErrParameterBounds }

// Normalize validates p against the slider ranges. Non-finite values are
// always rejected; out-of-range values are clamped or rejected per policy.
func Normalize(p Parameters, policy Policy) (Parameters, error) {
	var errs []error
	fix := func(field string, v float64, r Range) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s: %w", field, dynamo.ErrInvalidState))
			return v
		}
		if r.Contains(v) {
			return v
		}
		if policy == Reject {
			errs = append(errs, &BoundsError{Field: field, Value: v, Range: r})
			return v
		}
		return r.Clamp(v)
	}

	var out Parameters
	switch p := p.(type) {
	case Projectile:
		out = Projectile{
			AngleXY: fix("angleXY", p.AngleXY, AngleXYRange),
			AngleZ:  fix("angleZ", p.AngleZ, AngleZRange),
			Speed:   fix("speed", p.Speed, SpeedRange),
		}
	case Pendulum:
		out = Pendulum{
			Length: fix("length", p.Length, LengthRange),
			Mass:   fix("mass", p.Mass, MassRange),
		}
	case SHM:
		out = SHM{
			Amplitude: fix("amplitude", p.Amplitude, AmplitudeRange),
			Frequency: fix("frequency", p.Frequency, FrequencyRange),
		}
	case Sandbox:
		if p.ConfigID == "" {
			errs = append(errs, fmt.Errorf("sandbox: empty config id: %w", dynamo.ErrNotFound))
		}
		out = p
	case nil:
		return nil, fmt.Errorf("%w: nil parameters", dynamo.ErrUnknownVariant)
	default:
		return nil, fmt.Errorf("%w: %T", dynamo.ErrUnknownVariant, p)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
