package sandbox

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/dynamo"
)

type BodyHandle uint64

type BodySpec struct {
	Shape    dynamo.Shape
	Mass     float64
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Angle    float64
}

type Pose struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Angle    float64
}

// Engine is the rigid-body world. Gravity is fixed when the world is built.
type Engine interface {
	Register(spec BodySpec) (BodyHandle, error)
	Deregister(h BodyHandle)
	Step(dt float64)
	Pose(h BodyHandle) (Pose, bool)
	Bodies() int
	Close()
}

type EngineFactory func(gravity mgl64.Vec3) Engine
