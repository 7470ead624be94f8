package window

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/loop"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/sandbox"
	"github.com/san-kum/quanticle/internal/scene"
	"github.com/san-kum/quanticle/internal/sim"
	"github.com/san-kum/quanticle/internal/viz"
	"go.uber.org/zap"
)

type Options struct {
	Variant    params.Variant
	Initial    map[params.Variant]params.Parameters
	Configs    sandbox.ConfigSource
	ConfigID   string
	Policy     params.Policy
	Integrator string
	Engine     sandbox.EngineFactory
	Factory    scene.SurfaceFactory
	Log        *zap.Logger
}

type pendingLoad struct {
	session uuid.UUID
	ch      <-chan sandbox.Loaded
}

// Driver holds the host state behind the window: mounts, controls and the
// frame queue. Every method runs on the window's thread.
type Driver struct {
	opts   Options
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	queue  *loop.FrameQueue
	host   *sim.Host

	variant  params.Variant
	current  map[params.Variant]params.Parameters
	resetKey int
	selected int
	tool     sandbox.Toolbox
	load     *pendingLoad

	last   dynamo.Sample
	have   bool
	paused bool
	status string
	err    error
	closed bool
}

func NewDriver(opts Options) *Driver {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.ConfigID == "" {
		opts.ConfigID = sandbox.DefaultConfigID
	}

	d := &Driver{
		opts:    opts,
		log:     opts.Log,
		queue:   loop.NewFrameQueue(),
		variant: opts.Variant,
		current: make(map[params.Variant]params.Parameters),
		tool:    sandbox.DefaultToolbox(),
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())
	for _, v := range params.Variants() {
		if p, ok := opts.Initial[v]; ok && p != nil {
			d.current[v] = p
			continue
		}
		d.current[v], _ = params.Defaults(v)
	}
	d.current[params.VariantSandbox] = params.Sandbox{ConfigID: opts.ConfigID}

	d.host = sim.NewHost(sim.Options{
		Scenes:     scene.NewManager(opts.Factory, d.log),
		Scheduler:  d.queue,
		Engine:     opts.Engine,
		Publisher:  loop.PublisherFunc(d.publish),
		Policy:     opts.Policy,
		Integrator: opts.Integrator,
		Log:        d.log,
	})
	return d
}

func (d *Driver) publish(s dynamo.Sample) {
	d.last, d.have = s, true
}

// Start mounts the initial variant.
func (d *Driver) Start() error {
	return d.remount()
}

func (d *Driver) remount() error {
	s, dec, err := d.host.Mount(d.ctx, params.Mount{Params: d.current[d.variant], ResetKey: d.resetKey})
	if err != nil {
		d.err = err
		d.log.Warn("mount rejected", zap.Error(err), zap.Stringer("variant", d.variant))
		return err
	}
	d.err = nil
	if dec == params.NoOp {
		return nil
	}
	d.current[d.variant] = s.Mount.Params
	d.have, d.status, d.load = false, "", nil

	if sp, ok := s.Mount.Params.(params.Sandbox); ok && d.opts.Configs != nil {
		d.load = &pendingLoad{session: s.ID, ch: sandbox.LoadAsync(d.ctx, d.opts.Configs, sp.ConfigID)}
	}
	return nil
}

// Frame polls a pending config load and then presents one frame. Paused or
// finished sessions redraw their last state so the window never goes blank.
func (d *Driver) Frame() {
	d.pollLoad()
	if !d.paused && d.queue.Pending() > 0 {
		d.queue.Present()
		return
	}
	if s := d.host.Active(); s != nil && !s.Scene().Disposed() {
		if err := s.Scene().Render(); err != nil {
			d.log.Debug("redraw failed", zap.Error(err))
		}
	}
}

func (d *Driver) pollLoad() {
	if d.load == nil {
		return
	}
	var loaded sandbox.Loaded
	select {
	case loaded = <-d.load.ch:
	default:
		return
	}
	pl := d.load
	d.load = nil

	s := d.host.Active()
	if s == nil || s.ID != pl.session || s.Sandbox() == nil {
		d.log.Debug("stale sandbox config dropped", zap.String("config", loaded.ID))
		return
	}
	if loaded.Err != nil {
		d.err = loaded.Err
		d.log.Warn("sandbox config load failed", zap.Error(loaded.Err), zap.String("config", loaded.ID))
		return
	}
	if err := s.Sandbox().Apply(loaded.Config); err != nil {
		d.err = err
		return
	}
	d.status = "config " + loaded.ID + " ready"
}

// Loading reports whether the sandbox is still waiting for its config.
func (d *Driver) Loading() bool {
	s := d.host.Active()
	return s != nil && s.Sandbox() != nil && !s.Sandbox().Ready()
}

func (d *Driver) Variant() params.Variant { return d.variant }

func (d *Driver) Active() *sim.Session { return d.host.Active() }

func (d *Driver) Tool() sandbox.Toolbox { return d.tool }

func (d *Driver) Err() error { return d.err }

func (d *Driver) SelectVariant(v params.Variant) error {
	if v == d.variant {
		return nil
	}
	d.variant, d.selected = v, 0
	return d.remount()
}

func (d *Driver) NextField() {
	if n := len(params.Fields(d.current[d.variant])); n > 0 {
		d.selected = (d.selected + 1) % n
	}
}

func (d *Driver) Nudge(delta int) error {
	p := d.current[d.variant]
	fields := params.Fields(p)
	if len(fields) == 0 {
		return nil
	}
	next, err := params.Nudge(p, fields[d.selected%len(fields)].Name, delta)
	if err != nil {
		d.err = err
		return err
	}
	d.current[d.variant] = next
	return d.remount()
}

func (d *Driver) Restart() error {
	d.resetKey++
	return d.remount()
}

func (d *Driver) TogglePause() { d.paused = !d.paused }

func (d *Driver) Orbit(angle float64) {
	d.withCamera(func(c *scene.Camera) { c.Orbit(angle) })
}

func (d *Driver) Dolly(factor float64) {
	d.withCamera(func(c *scene.Camera) { c.Dolly(factor) })
}

func (d *Driver) withCamera(fn func(*scene.Camera)) {
	if s := d.host.Active(); s != nil && !s.Scene().Disposed() {
		fn(&s.Scene().Scene().Camera)
	}
}

// SpawnDefault spawns from the saved config.
func (d *Driver) SpawnDefault() error {
	return d.withSandbox(func(sb *sandbox.Controller) error {
		_, err := sb.SpawnDefault()
		return err
	})
}

// SpawnShape switches the tool shape and spawns with the tool.
func (d *Driver) SpawnShape(shape dynamo.Shape) error {
	d.tool.Shape = shape
	return d.SpawnTool()
}

func (d *Driver) SpawnTool() error {
	return d.withSandbox(func(sb *sandbox.Controller) error {
		_, err := sb.SpawnTool(d.tool)
		return err
	})
}

func (d *Driver) ResetScene() error {
	return d.withSandbox(func(sb *sandbox.Controller) error {
		sb.ResetScene()
		return nil
	})
}

func (d *Driver) ToggleGravity() error {
	return d.withSandbox(func(sb *sandbox.Controller) error {
		return sb.SetGravity(!sb.Gravity())
	})
}

func (d *Driver) NudgeToolMass(delta int) {
	d.tool = d.tool.NudgeMass(delta)
	d.status = "tool " + toolLabel(d.tool)
}

func (d *Driver) NextToolColor() {
	d.tool = d.tool.NextColor()
	d.status = "tool " + toolLabel(d.tool)
}

func (d *Driver) withSandbox(fn func(*sandbox.Controller) error) error {
	s := d.host.Active()
	if s == nil || s.Sandbox() == nil {
		return nil
	}
	sb := s.Sandbox()
	err := fn(sb)
	switch {
	case errors.Is(err, dynamo.ErrConfigNotReady):
		d.status = "still loading"
	case err != nil:
		d.err = err
	default:
		d.status = fmt.Sprintf("%d bodies, gravity %v", sb.Len(), sb.Gravity())
	}
	return err
}

// HUD is the text overlay, one line per entry.
func (d *Driver) HUD() []string {
	lines := []string{strings.ToUpper(d.variant.String()) + "  " + d.phaseLabel()}
	if d.have {
		lines = append(lines, fmt.Sprintf("time %.2fs", d.last.Time))
		for _, kv := range viz.FormatReadout(d.last.Readout) {
			lines = append(lines, kv[0]+" "+kv[1])
		}
		if d.variant == params.VariantPendulum {
			lines = append(lines, fmt.Sprintf("energy %.2f J", d.last.Energy))
		}
	}
	for i, f := range params.Fields(d.current[d.variant]) {
		mark := "  "
		if i == d.selected {
			mark = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s %.2f %s", mark, f.Name, f.Value, f.Unit))
	}
	if d.variant == params.VariantSandbox {
		lines = append(lines, "tool "+toolLabel(d.tool))
	}
	if d.status != "" {
		lines = append(lines, d.status)
	}
	if d.err != nil {
		lines = append(lines, "error: "+d.err.Error())
	}
	return lines
}

func (d *Driver) phaseLabel() string {
	switch {
	case d.paused:
		return "PAUSED"
	case d.Loading():
		return "LOADING"
	}
	s := d.host.Active()
	if s == nil {
		return "IDLE"
	}
	if s.Phase() == loop.Quiescent && d.variant == params.VariantProjectile {
		return "LANDED"
	}
	return strings.ToUpper(s.Phase().String())
}

func toolLabel(t sandbox.Toolbox) string {
	return fmt.Sprintf("%s %.1fkg %s", t.Shape, t.Mass, t.Color)
}

// Close cancels pending loads and tears the session down. It is idempotent.
func (d *Driver) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.cancel()
	d.host.Unmount()
}
