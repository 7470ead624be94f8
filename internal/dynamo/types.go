package dynamo

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

type State []float64

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// Shape is the collision/visual shape of a sandbox body.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeSphere
)

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "box":
		return ShapeBox, nil
	case "sphere":
		return ShapeSphere, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidShape, name)
	}
}

func (s Shape) MarshalText() ([]byte, error) {
	if s != ShapeBox && s != ShapeSphere {
		return nil, ErrInvalidShape
	}
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	v, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Readout is the display value a model publishes with each sample.
// Implementations: PositionReadout, AngleReadout, BodyCountReadout.
type Readout interface {
	Values() map[string]float64
	readout()
}

// PositionReadout is emitted by Projectile and SHM, in meters.
type PositionReadout struct {
	X, Y, Z float64
}

func (PositionReadout) readout() {}

func (r PositionReadout) Values() map[string]float64 {
	return map[string]float64{"x": r.X, "y": r.Y, "z": r.Z}
}

// AngleReadout is emitted by Pendulum, in radians. Phi is always 0 for the
// planar model.
type AngleReadout struct {
	Theta, Phi float64
}

func (AngleReadout) readout() {}

func (r AngleReadout) Values() map[string]float64 {
	return map[string]float64{"theta": r.Theta, "phi": r.Phi}
}

type BodyCountReadout struct {
	Count int
}

func (BodyCountReadout) readout() {}

func (r BodyCountReadout) Values() map[string]float64 {
	return map[string]float64{"bodies": float64(r.Count)}
}

// BodyPose is the simulated pose of one sandbox body.
type BodyPose struct {
	ID       uint64
	Shape    Shape
	Color    string
	Position mgl64.Vec3
	Angle    float64
}

// Sample is one step of a running simulation.
type Sample struct {
	Step     int
	Time     float64
	Position mgl64.Vec3
	Readout  Readout
	Energy   float64
	Bodies   []BodyPose
	Terminal bool
}
