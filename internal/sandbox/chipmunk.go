package sandbox

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/san-kum/quanticle/internal/dynamo"
)

const (
	BoxSize      = 1.0
	SphereRadius = 0.5
	// GroundExtent is the half-length of the collision ground. The visible
	// plane is much smaller; bodies rolling past it must still land.
	GroundExtent    = 1e5
	groundThickness = 1.0
)

type cpBody struct {
	body  *cp.Body
	shape *cp.Shape
}

// Chipmunk is the Engine backed by the Chipmunk2D port.
type Chipmunk struct {
	space  *cp.Space
	ground *cp.Shape
	bodies map[BodyHandle]cpBody
	next   BodyHandle
}

func NewChipmunk(gravity mgl64.Vec3) Engine {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: gravity.X(), Y: gravity.Y()})

	// a thick segment whose top face sits at y=0
	r := groundThickness
	ground := cp.NewSegment(space.StaticBody, cp.Vector{X: -GroundExtent, Y: -r}, cp.Vector{X: GroundExtent, Y: -r}, r)
	ground.SetElasticity(0.2)
	ground.SetFriction(0.8)
	space.AddShape(ground)

	return &Chipmunk{space: space, ground: ground, bodies: make(map[BodyHandle]cpBody)}
}

func (c *Chipmunk) Register(spec BodySpec) (BodyHandle, error) {
	if err := ValidateMass(spec.Mass); err != nil {
		return 0, err
	}

	var body *cp.Body
	var shape *cp.Shape
	switch spec.Shape {
	case dynamo.ShapeBox:
		body = c.space.AddBody(cp.NewBody(spec.Mass, cp.MomentForBox(spec.Mass, BoxSize, BoxSize)))
		shape = cp.NewBox(body, BoxSize, BoxSize, 0)
	case dynamo.ShapeSphere:
		body = c.space.AddBody(cp.NewBody(spec.Mass, cp.MomentForCircle(spec.Mass, 0, SphereRadius, cp.Vector{})))
		shape = cp.NewCircle(body, SphereRadius, cp.Vector{})
	default:
		return 0, fmt.Errorf("%w: %v", dynamo.ErrInvalidShape, spec.Shape)
	}
	body.SetPosition(cp.Vector{X: spec.Position.X(), Y: spec.Position.Y()})
	body.SetVelocityVector(cp.Vector{X: spec.Velocity.X(), Y: spec.Velocity.Y()})
	body.SetAngle(spec.Angle)
	shape.SetElasticity(0.2)
	shape.SetFriction(0.7)
	c.space.AddShape(shape)

	c.next++
	c.bodies[c.next] = cpBody{body: body, shape: shape}
	return c.next, nil
}

func (c *Chipmunk) Deregister(h BodyHandle) {
	b, ok := c.bodies[h]
	if !ok {
		return
	}
	c.space.RemoveShape(b.shape)
	c.space.RemoveBody(b.body)
	delete(c.bodies, h)
}

func (c *Chipmunk) Step(dt float64) {
	c.space.Step(dt)
}

func (c *Chipmunk) Pose(h BodyHandle) (Pose, bool) {
	b, ok := c.bodies[h]
	if !ok {
		return Pose{}, false
	}
	p, v := b.body.Position(), b.body.Velocity()
	return Pose{
		Position: mgl64.Vec3{p.X, p.Y, 0},
		Velocity: mgl64.Vec3{v.X, v.Y, 0},
		Angle:    b.body.Angle(),
	}, true
}

func (c *Chipmunk) Bodies() int { return len(c.bodies) }

func (c *Chipmunk) Close() {
	for h := range c.bodies {
		c.Deregister(h)
	}
	c.space.RemoveShape(c.ground)
}
