// Package mcpserver exposes the almanac engines as MCP tools served over
// SSE/HTTP.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/powerman/structlog"

	"github.com/papapumpkin/almanac/internal/astro"
	"github.com/papapumpkin/almanac/internal/chart"
	"github.com/papapumpkin/almanac/internal/ganzhi"
	"github.com/papapumpkin/almanac/internal/telemetry"
)

var log = structlog.New(structlog.KeyUnit, "mcpserver")

// Version is the server version reported to clients.
const Version = "0.1.0"

// Config holds optional server configuration. Zero fields use the
// defaults: JST, midnight day boundary, Lahiri ayanamsa.
type Config struct {
	OffsetMinutes *int
	Boundary      ganzhi.DayBoundary
	Ayanamsa      astro.Ayanamsa
	// Emitter receives one tool_call event per call. Nil disables it.
	Emitter *telemetry.Emitter
}

// Server is the almanac MCP server. Every tool is a pure computation over
// the shared engine.
type Server struct {
	engine   *chart.Engine
	mcp      *mcp.Server
	port     int
	srv      *http.Server
	ln       net.Listener
	offset   int
	boundary ganzhi.DayBoundary
	ayanamsa astro.Ayanamsa
	emitter  *telemetry.Emitter
	session  string
}

// NewServer creates a server over engine. Pass nil for cfg to use the
// defaults.
func NewServer(engine *chart.Engine, port int, cfg *Config) *Server {
	s := &Server{
		engine: engine,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "almanac",
			Version: Version,
		}, nil),
		port:    port,
		offset:  chart.DefaultOffsetMinutes,
		session: telemetry.NewRunID(),
	}
	if cfg != nil {
		if cfg.OffsetMinutes != nil {
			s.offset = *cfg.OffsetMinutes
		}
		s.boundary = cfg.Boundary
		s.ayanamsa = cfg.Ayanamsa
		s.emitter = cfg.Emitter
	}

	s.registerPillarTools()
	s.registerTermTools()
	s.registerNineStarTools()
	s.registerPositionTools()

	return s
}

// Start begins serving over SSE/HTTP. It returns once the listener is
// bound.
func (s *Server) Start(_ context.Context) error {
	handler := mcp.NewSSEHandler(func(_ *http.Request) *mcp.Server {
		return s.mcp
	}, nil)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("mcpserver: listen on port %d: %w", s.port, err)
	}
	s.ln = ln
	s.srv = &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.PrintErr("serve", "err", err)
		}
	}()
	log.Info("listening", "addr", ln.Addr().String())

	return nil
}

// Addr returns the listener address, useful for tests with port 0.
func (s *Server) Addr() net.Addr {
	if s.ln != nil {
		return s.ln.Addr()
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// record logs a finished tool call and emits its telemetry event.
func (s *Server) record(tool string, start time.Time, err error) {
	elapsed := time.Since(start)
	data := map[string]any{
		"tool":       tool,
		"ok":         err == nil,
		"elapsed_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		data["error"] = err.Error()
		log.Debug("tool failed", "tool", tool, "err", err)
	} else {
		log.Debug("tool done", "tool", tool, "elapsed", elapsed)
	}
	if emitErr := s.emitter.Emit(telemetry.Event{
		Kind:  telemetry.KindToolCall,
		RunID: s.session,
		Data:  data,
	}); emitErr != nil {
		log.PrintErr("emit telemetry", "err", emitErr)
	}
}
