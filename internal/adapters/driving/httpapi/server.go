package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may finish after Run's
// context ends.
const shutdownTimeout = 5 * time.Second

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address. Defaults to domain.DefaultServerAddr.
	Addr string

	// CommentRate limits comment posts per client.
	CommentRate RateLimitConfig

	// Refresher, when set, runs alongside the listener and reloads the
	// collections in the background.
	Refresher Refresher

	// Registry receives the server metrics and backs /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry
}

// Refresher reloads collections until its context ends.
type Refresher interface {
	Run(ctx context.Context) error
}

// Server serves the collections over HTTP.
type Server struct {
	ports    *Ports
	renderer *render.Renderer
	addr     string
	limiter   *clientLimiter
	metrics   *metrics
	handler   http.Handler
	refresher Refresher
}

// NewServer creates a server with the given ports.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	if cfg.Addr == "" {
		cfg.Addr = domain.DefaultServerAddr
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		ports:    ports,
		renderer: ports.Renderer,
		addr:     cfg.Addr,
		limiter:  newClientLimiter(cfg.CommentRate),
		metrics:  newMetrics(cfg.Registry),

		refresher: cfg.Refresher,
	}
	if s.renderer == nil {
		s.renderer = render.New(nil, "notty")
	}

	mux := http.NewServeMux()
	s.routes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	s.handler = s.metrics.instrument(mux)

	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run listens on the configured address and serves until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve loads both collections in the background and serves on ln until ctx
// ends. Requests that arrive before a collection is ready get 503.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, c := range domain.AllCollections() {
		g.Go(func() error {
			if _, err := s.ports.Catalog.Load(gctx, c); err != nil {
				logger.Warn("serve: %s unavailable: %v", c.Label(), err)
			}
			return nil
		})
	}

	if s.refresher != nil {
		g.Go(func() error {
			return s.refresher.Run(gctx)
		})
	}

	g.Go(func() error {
		logger.Info("listening on http://%s", ln.Addr())
		if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
