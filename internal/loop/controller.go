package loop

import (
	"context"
	"fmt"

	"github.com/san-kum/quanticle/internal/dynamo"
	"go.uber.org/zap"
)

type Phase int

const (
	Idle Phase = iota
	Running
	// Quiescent: the stepper reported a terminal sample. The last frame stays
	// rendered and no further ticks are scheduled.
	Quiescent
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Quiescent:
		return "quiescent"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Stepper produces the next sample. A sample with Terminal set ends
// scheduling.
type Stepper interface {
	Step() dynamo.Sample
}

// Scene receives each sample before it is published.
type Scene interface {
	Apply(s dynamo.Sample)
	Render() error
}

type Publisher interface {
	Publish(s dynamo.Sample)
}

type PublisherFunc func(dynamo.Sample)

func (f PublisherFunc) Publish(s dynamo.Sample) { f(s) }

type Controller struct {
	stepper Stepper
	scene   Scene
	pub     Publisher
	sched   Scheduler
	log     *zap.Logger

	ctx     context.Context
	phase   Phase
	pending FrameID
	ticks   int
	last    dynamo.Sample
}

func New(stepper Stepper, scene Scene, pub Publisher, sched Scheduler, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if pub == nil {
		pub = PublisherFunc(func(dynamo.Sample) {})
	}
	return &Controller{
		stepper: stepper,
		scene:   scene,
		pub:     pub,
		sched:   sched,
		log:     log,
		phase:   Idle,
	}
}

// Start moves Idle to Running and requests the first frame. ctx is the
// cancellation token consulted at every tick; nil means never cancelled.
func (c *Controller) Start(ctx context.Context) error {
	if c.phase != Idle {
		return fmt.Errorf("loop: start in phase %v", c.phase)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
	c.phase = Running
	c.pending = c.sched.RequestFrame(c.tick)
	return nil
}

// Stop ends the session. It is idempotent; a frame that was already handed to
// the host becomes a no-op.
func (c *Controller) Stop() {
	if c.phase == Stopped {
		return
	}
	prev := c.phase
	c.phase = Stopped
	if c.pending != 0 {
		c.sched.CancelFrame(c.pending)
		c.pending = 0
	}
	c.log.Debug("loop stopped", zap.Stringer("from", prev), zap.Int("ticks", c.ticks))
}

func (c *Controller) tick() {
	c.pending = 0
	if c.phase != Running {
		return
	}
	if c.ctx.Err() != nil {
		c.Stop()
		return
	}

	s := c.stepper.Step()
	c.scene.Apply(s)
	if err := c.scene.Render(); err != nil {
		c.log.Warn("render failed", zap.Error(err), zap.Int("step", s.Step))
	}
	c.pub.Publish(s)
	c.last = s
	c.ticks++

	if s.Terminal {
		c.phase = Quiescent
		c.log.Debug("loop quiescent", zap.Int("step", s.Step), zap.Float64("t", s.Time))
		return
	}
	c.pending = c.sched.RequestFrame(c.tick)
}

func (c *Controller) Phase() Phase { return c.phase }

func (c *Controller) Ticks() int { return c.ticks }

// Last returns the most recently published sample.
func (c *Controller) Last() (dynamo.Sample, bool) {
	return c.last, c.ticks > 0
}
