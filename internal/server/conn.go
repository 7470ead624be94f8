package server

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/loop"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/sandbox"
	"github.com/san-kum/quanticle/internal/sim"
	"go.uber.org/zap"
)

type missingConfigs struct{}

func (missingConfigs) Load(context.Context, string) (sandbox.SavedConfig, error) {
	return sandbox.SavedConfig{}, dynamo.ErrNotFound
}

type pendingConfig struct {
	session uuid.UUID
	ch      <-chan sandbox.Loaded
}

// conn is one websocket session. Everything but the read loop runs on the
// goroutine that called run, so the host and the socket writer are never
// shared.
type conn struct {
	srv      *Server
	ws       *websocket.Conn
	log      *zap.Logger
	queue    *loop.FrameQueue
	host     *sim.Host
	out      []Frame
	resetKey int
	loading  *pendingConfig
}

func newConn(s *Server, ws *websocket.Conn) *conn {
	c := &conn{
		srv:   s,
		ws:    ws,
		log:   s.log.With(zap.String("remote", ws.RemoteAddr().String())),
		queue: loop.NewFrameQueue(),
	}
	c.host = sim.NewHost(sim.Options{
		Scheduler:  c.queue,
		Engine:     s.opts.Engine,
		Publisher:  loop.PublisherFunc(c.publish),
		Policy:     s.opts.Policy,
		Integrator: s.opts.Integrator,
		Log:        c.log,
	})
	return c
}

func (c *conn) sessionID() string {
	if s := c.host.Active(); s != nil {
		return s.ID.String()
	}
	return ""
}

func (c *conn) publish(s dynamo.Sample) {
	c.out = append(c.out, sampleFrame(c.sessionID(), s))
}

func (c *conn) run(ctx context.Context) {
	defer sentry.Recover()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer c.ws.Close()
	defer c.host.Unmount()

	c.log.Info("connection opened")
	cmds := make(chan Command)
	go c.readLoop(ctx, cmds)

	ticker := time.NewTicker(c.srv.opts.TickInterval)
	defer ticker.Stop()

	for {
		var loaded <-chan sandbox.Loaded
		if c.loading != nil {
			loaded = c.loading.ch
		}

		select {
		case <-ctx.Done():
			c.log.Info("connection closed", zap.Error(ctx.Err()))
			return
		case cmd, ok := <-cmds:
			if !ok {
				c.log.Info("connection closed by peer")
				return
			}
			c.handle(ctx, cmd)
		case l := <-loaded:
			c.applyConfig(*c.loading, l)
		case <-ticker.C:
			c.queue.Present()
		}

		if err := c.flush(); err != nil {
			c.log.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

func (c *conn) readLoop(ctx context.Context, cmds chan<- Command) {
	defer close(cmds)
	for {
		var cmd Command
		if err := c.ws.ReadJSON(&cmd); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				c.log.Debug("websocket read ended", zap.Error(err))
			}
			return
		}
		select {
		case cmds <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

func (c *conn) flush() error {
	for _, f := range c.out {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteJSON(f); err != nil {
			c.out = c.out[:0]
			return err
		}
	}
	c.out = c.out[:0]
	return nil
}

func (c *conn) status(status string, err error) {
	c.out = append(c.out, statusFrame(c.sessionID(), status, err))
}

func (c *conn) handle(ctx context.Context, cmd Command) {
	switch cmd.Type {
	case CmdMount:
		p, err := mountParams(cmd)
		if err != nil {
			c.status(StatusError, err)
			return
		}
		c.mount(ctx, p)
	case CmdReset:
		s := c.host.Active()
		if s == nil {
			c.status(StatusError, errors.New("reset: nothing mounted"))
			return
		}
		c.resetKey++
		c.mount(ctx, s.Mount.Params)
	case CmdSpawn, CmdClear, CmdGravity:
		c.sandboxCommand(cmd)
	default:
		c.status(StatusError, errors.New("unknown command "+cmd.Type))
	}
}

func (c *conn) mount(ctx context.Context, p params.Parameters) {
	s, d, err := c.host.Mount(ctx, params.Mount{Params: p, ResetKey: c.resetKey})
	if err != nil {
		c.status(StatusError, err)
		return
	}
	if d == params.NoOp {
		return
	}
	c.loading = nil
	sp, ok := s.Mount.Params.(params.Sandbox)
	if !ok {
		c.status(StatusReady, nil)
		return
	}
	c.loading = &pendingConfig{
		session: s.ID,
		ch:      sandbox.LoadAsync(ctx, c.srv.opts.Configs, sp.ConfigID),
	}
	c.status(StatusLoading, nil)
}

func (c *conn) applyConfig(pending pendingConfig, l sandbox.Loaded) {
	c.loading = nil
	s := c.host.Active()
	if s == nil || s.ID != pending.session || s.Sandbox() == nil {
		return
	}
	if l.Err != nil {
		c.log.Warn("sandbox config load failed", zap.String("config", l.ID), zap.Error(l.Err))
		c.status(StatusError, l.Err)
		return
	}
	if err := s.Sandbox().Apply(l.Config); err != nil {
		c.status(StatusError, err)
		return
	}
	c.status(StatusReady, nil)
}

func (c *conn) sandboxCommand(cmd Command) {
	s := c.host.Active()
	if s == nil || s.Sandbox() == nil {
		c.status(StatusError, errors.New(cmd.Type+": sandbox not mounted"))
		return
	}
	sb := s.Sandbox()

	var err error
	switch cmd.Type {
	case CmdSpawn:
		if cmd.Shape == "" {
			_, err = sb.SpawnDefault()
			break
		}
		var shape dynamo.Shape
		if shape, err = dynamo.ParseShape(cmd.Shape); err == nil {
			_, err = sb.Spawn(shape, cmd.Mass, cmd.Color)
		}
	case CmdClear:
		sb.ResetScene()
	case CmdGravity:
		err = sb.SetGravity(cmd.On)
	}
	if err != nil {
		c.status(StatusError, err)
	}
}
