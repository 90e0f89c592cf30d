package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/appreview/internal/adapters/driving/render"
	"github.com/custodia-labs/appreview/internal/core/domain"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for appreview.
type Server struct {
	ports    *Ports
	renderer *render.Renderer
	server   *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "appreview",
		Version: Version,
	}

	s := &Server{
		ports:    ports,
		renderer: ports.Renderer,
		server:   mcp.NewServer(impl, nil),
	}
	if s.renderer == nil {
		s.renderer = render.New(nil, "notty")
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// open resolves a collection name, checks its gate and loads it on first use.
// A password passed here is checked but does not unlock the gate for the
// other surfaces of the process.
func (s *Server) open(ctx context.Context, name, password string) (domain.Collection, error) {
	c, err := domain.ParseCollection(name)
	if err != nil {
		return "", err
	}

	if gate, gated := c.Gate(); gated {
		if err := s.check(gate, password); err != nil {
			return "", err
		}
	}

	if s.ports.Catalog.Status(c).State == domain.LoadReady {
		return c, nil
	}
	if _, err := s.ports.Catalog.Load(ctx, c); err != nil {
		return "", fmt.Errorf("loading %s: %w", c.Label(), err)
	}
	return c, nil
}

// check passes a gate that is already unlocked or whose password matches.
func (s *Server) check(gate domain.Gate, password string) error {
	if s.ports.Access == nil {
		return fmt.Errorf("%w: %s", domain.ErrAccessDenied, gate)
	}
	if s.ports.Access.IsUnlocked(gate) {
		return nil
	}
	return s.ports.Access.Check(gate, password)
}
