package sandbox

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/dynamo"
	"go.uber.org/zap"
)

type State int

const (
	Loading State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "loading"
}

const Dt = 1.0 / 60.0

var (
	SpawnPoint = mgl64.Vec3{0, 5, 0}
	Gravity    = mgl64.Vec3{0, -9.81, 0}
)

// Body is one spawned body. Its pose lives in the engine.
type Body struct {
	ID     uint64
	Shape  dynamo.Shape
	Mass   float64
	Color  string
	handle BodyHandle
}

type Controller struct {
	factory EngineFactory
	log     *zap.Logger

	state   State
	cfg     SavedConfig
	gravity bool
	engine  Engine
	bodies  *orderedmap.OrderedMap[uint64, *Body]
	nextID  uint64
	step    int
	t       float64
}

func New(factory EngineFactory, log *zap.Logger) *Controller {
	if factory == nil {
		factory = NewChipmunk
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		factory: factory,
		log:     log,
		bodies:  orderedmap.NewOrderedMap[uint64, *Body](),
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Ready() bool { return c.state == Ready }

// Config returns the applied configuration once loaded.
func (c *Controller) Config() (SavedConfig, bool) {
	return c.cfg, c.state == Ready
}

// Apply installs a loaded configuration and builds the world. Applying again
// rebuilds the world and keeps the spawned bodies.
func (c *Controller) Apply(cfg SavedConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Color, _ = NormalizeColor(cfg.Color)
	c.cfg = cfg
	if err := c.rebuild(cfg.Gravity); err != nil {
		return err
	}
	c.state = Ready
	c.log.Debug("sandbox ready",
		zap.Stringer("shape", cfg.Shape),
		zap.Float64("mass", cfg.Mass),
		zap.Bool("gravity", cfg.Gravity))
	return nil
}

func (c *Controller) Gravity() bool { return c.gravity }

// SetGravity rebuilds the world with gravity on or off and re-registers every
// live body at its current pose.
func (c *Controller) SetGravity(on bool) error {
	if c.state != Ready {
		return dynamo.ErrConfigNotReady
	}
	if on == c.gravity {
		return nil
	}
	return c.rebuild(on)
}

func (c *Controller) rebuild(gravity bool) error {
	poses := make(map[uint64]Pose, c.bodies.Len())
	if c.engine != nil {
		for _, id := range c.bodies.Keys() {
			b, _ := c.bodies.Get(id)
			if p, ok := c.engine.Pose(b.handle); ok {
				poses[id] = p
			}
		}
		c.engine.Close()
	}

	g := mgl64.Vec3{}
	if gravity {
		g = Gravity
	}
	c.engine = c.factory(g)
	c.gravity = gravity

	for _, id := range c.bodies.Keys() {
		b, _ := c.bodies.Get(id)
		p, ok := poses[id]
		if !ok {
			p = Pose{Position: SpawnPoint}
		}
		h, err := c.engine.Register(BodySpec{Shape: b.Shape, Mass: b.Mass, Position: p.Position, Velocity: p.Velocity, Angle: p.Angle})
		if err != nil {
			return fmt.Errorf("re-register body %d: %w", id, err)
		}
		b.handle = h
	}
	return nil
}

// Spawn adds a body at the spawn point.
func (c *Controller) Spawn(shape dynamo.Shape, mass float64, color string) (uint64, error) {
	if c.state != Ready {
		return 0, dynamo.ErrConfigNotReady
	}
	if shape != dynamo.ShapeBox && shape != dynamo.ShapeSphere {
		return 0, fmt.Errorf("%w: %v", dynamo.ErrInvalidShape, shape)
	}
	if err := ValidateMass(mass); err != nil {
		return 0, err
	}
	color, err := NormalizeColor(color)
	if err != nil {
		return 0, err
	}

	h, err := c.engine.Register(BodySpec{Shape: shape, Mass: mass, Position: SpawnPoint})
	if err != nil {
		return 0, fmt.Errorf("register body: %w", err)
	}
	c.nextID++
	c.bodies.Set(c.nextID, &Body{ID: c.nextID, Shape: shape, Mass: mass, Color: color, handle: h})
	c.log.Debug("body spawned", zap.Uint64("id", c.nextID), zap.Stringer("shape", shape), zap.Float64("mass", mass))
	return c.nextID, nil
}

// SpawnDefault spawns a body with the loaded configuration's shape, mass and
// color.
func (c *Controller) SpawnDefault() (uint64, error) {
	if c.state != Ready {
		return 0, dynamo.ErrConfigNotReady
	}
	return c.Spawn(c.cfg.Shape, c.cfg.Mass, c.cfg.Color)
}

// ResetScene removes every spawned body. The ground stays.
func (c *Controller) ResetScene() {
	for _, id := range c.bodies.Keys() {
		b, _ := c.bodies.Get(id)
		if c.engine != nil {
			c.engine.Deregister(b.handle)
		}
	}
	n := c.bodies.Len()
	c.bodies = orderedmap.NewOrderedMap[uint64, *Body]()
	c.log.Debug("sandbox reset", zap.Int("removed", n))
}

func (c *Controller) Len() int { return c.bodies.Len() }

// Bodies returns the current poses in spawn order.
func (c *Controller) Bodies() []dynamo.BodyPose {
	out := make([]dynamo.BodyPose, 0, c.bodies.Len())
	for _, id := range c.bodies.Keys() {
		b, _ := c.bodies.Get(id)
		pose := dynamo.BodyPose{ID: b.ID, Shape: b.Shape, Color: b.Color, Position: SpawnPoint}
		if c.engine != nil {
			if p, ok := c.engine.Pose(b.handle); ok {
				pose.Position, pose.Angle = p.Position, p.Angle
			}
		}
		out = append(out, pose)
	}
	return out
}

// Step advances the world by one frame. While loading it emits an empty
// sample. The sandbox never terminates on its own.
func (c *Controller) Step() dynamo.Sample {
	if c.state == Ready {
		c.engine.Step(Dt)
		c.t += Dt
		c.step++
	}
	bodies := c.Bodies()
	return dynamo.Sample{
		Step:    c.step,
		Time:    c.t,
		Readout: dynamo.BodyCountReadout{Count: len(bodies)},
		Bodies:  bodies,
	}
}

// Close releases the engine. The controller returns to Loading.
func (c *Controller) Close() {
	c.ResetScene()
	if c.engine != nil {
		c.engine.Close()
		c.engine = nil
	}
	c.state = Loading
}
