package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/sandbox"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTickInterval = 20 * time.Millisecond
	shutdownTimeout     = 5 * time.Second
	writeWait           = 2 * time.Second
)

type Options struct {
	Addr         string
	TickInterval time.Duration
	Configs      sandbox.ConfigSource
	Engine       sandbox.EngineFactory
	Policy       params.Policy
	Integrator   string
	Log          *zap.Logger
}

type Server struct {
	opts     Options
	log      *zap.Logger
	upgrader websocket.Upgrader
	conns    atomic.Int64
}

func New(opts Options) *Server {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Configs == nil {
		opts.Configs = missingConfigs{}
	}
	return &Server{
		opts: opts,
		log:  opts.Log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler serves /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Connections is the number of open websocket sessions.
func (s *Server) Connections() int64 { return s.conns.Load() }

// ListenAndServe serves until ctx is cancelled, then shuts down. Open
// connections see ctx through their request context and unmount.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.opts.Addr,
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("server listening", zap.String("addr", s.opts.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("server shutting down")
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := newConn(s, ws)
	s.conns.Add(1)
	defer s.conns.Add(-1)
	c.run(r.Context())
}
