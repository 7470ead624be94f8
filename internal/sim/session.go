package sim

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/san-kum/quanticle/internal/loop"
	"github.com/san-kum/quanticle/internal/motion"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/sandbox"
	"github.com/san-kum/quanticle/internal/scene"
	"go.uber.org/zap"
)

// Session is one mounted simulation: a scene, a loop controller driving it
// and the cancellation token handed to that controller.
type Session struct {
	ID    uuid.UUID
	Mount params.Mount

	handle  *scene.Handle
	ctrl    *loop.Controller
	cancel  context.CancelFunc
	model   motion.Model
	sandbox *sandbox.Controller
	closed  bool
}

func (s *Session) Variant() params.Variant { return s.Mount.Params.Variant() }

func (s *Session) Phase() loop.Phase { return s.ctrl.Phase() }

func (s *Session) Controller() *loop.Controller { return s.ctrl }

func (s *Session) Scene() *scene.Handle { return s.handle }

// Model is nil for sandbox sessions.
func (s *Session) Model() motion.Model { return s.model }

// Sandbox is nil unless the session mounts the sandbox variant.
func (s *Session) Sandbox() *sandbox.Controller { return s.sandbox }

func (s *Session) Closed() bool { return s.closed }

// close tears the session down: cancel the token, stop the loop, then
// release the scene.
func (s *Session) close() {
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	s.ctrl.Stop()
	if s.sandbox != nil {
		s.sandbox.Close()
	}
	s.handle.Dispose()
}

type Options struct {
	Scenes     *scene.Manager
	Scheduler  loop.Scheduler
	Engine     sandbox.EngineFactory
	Publisher  loop.Publisher
	Policy     params.Policy
	Integrator string
	Log        *zap.Logger
}

// Host owns at most one session at a time. It must be used from the
// goroutine that presents the scheduler's frames.
type Host struct {
	opts   Options
	log    *zap.Logger
	active *Session
}

func NewHost(opts Options) *Host {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Scenes == nil {
		opts.Scenes = scene.NewManager(nil, opts.Log)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = loop.NewFrameQueue()
	}
	return &Host{opts: opts, log: opts.Log}
}

func (h *Host) Active() *Session { return h.active }

func (h *Host) Scenes() *scene.Manager { return h.opts.Scenes }

// Mount reconciles m against the active session. Parameters are normalized
// first, so an out-of-range value either clamps to the same mount or fails
// without touching the running session.
func (h *Host) Mount(ctx context.Context, m params.Mount) (*Session, params.Decision, error) {
	if m.Params == nil {
		return h.active, params.NoOp, nil
	}
	p, err := params.Normalize(m.Params, h.opts.Policy)
	if err != nil {
		return h.active, params.NoOp, err
	}
	m.Params = p

	var old params.Mount
	if h.active != nil {
		old = h.active.Mount
	}
	if params.Reconcile(old, m) == params.NoOp {
		return h.active, params.NoOp, nil
	}

	h.Unmount()
	s, err := h.create(ctx, m)
	if err != nil {
		return nil, params.RecreateScene, err
	}
	h.active = s
	h.log.Info("session mounted",
		zap.String("session", s.ID.String()),
		zap.Stringer("variant", p.Variant()),
		zap.Int("reset_key", m.ResetKey))
	return s, params.RecreateScene, nil
}

func (h *Host) create(ctx context.Context, m params.Mount) (*Session, error) {
	handle, err := h.opts.Scenes.Create(m.Params)
	if err != nil {
		return nil, err
	}

	s := &Session{ID: uuid.New(), Mount: m, handle: handle}
	var stepper loop.Stepper
	if _, ok := m.Params.(params.Sandbox); ok {
		s.sandbox = sandbox.New(h.opts.Engine, h.log)
		stepper = s.sandbox
	} else {
		model, err := motion.New(m.Params, motion.Options{Integrator: h.opts.Integrator})
		if err != nil {
			handle.Dispose()
			return nil, fmt.Errorf("build model: %w", err)
		}
		s.model = model
		stepper = model
	}

	sctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.ctrl = loop.New(stepper, handle, h.opts.Publisher, h.opts.Scheduler, h.log.With(zap.String("session", s.ID.String())))
	if err := s.ctrl.Start(sctx); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

// Unmount tears down the active session, if any.
func (h *Host) Unmount() {
	if h.active == nil {
		return
	}
	s := h.active
	h.active = nil
	s.close()
	h.log.Info("session unmounted",
		zap.String("session", s.ID.String()),
		zap.Int("ticks", s.ctrl.Ticks()))
}
