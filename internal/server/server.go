package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Travis-Prall/court-listener-mcp/internal/config"
	"github.com/Travis-Prall/court-listener-mcp/internal/httpclient"
	"github.com/Travis-Prall/court-listener-mcp/internal/registry"
	"github.com/Travis-Prall/court-listener-mcp/internal/status"
	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Name is the MCP implementation name announced to clients.
const Name = "courtlistener-mcp"

// StatusToolName is the root-level tool served outside the registry.
const StatusToolName = "status"

// StatusToolDescription describes the status tool.
const StatusToolDescription = "Check the status of the CourtListener MCP server"

// ShutdownTimeout bounds how long Stop waits for in-flight HTTP requests.
const ShutdownTimeout = 5 * time.Second

const instructions = "This server provides access to the CourtListener legal database. " +
	"Use the search_* tools to find opinions, dockets, RECAP documents, oral argument audio and people, " +
	"the get_* tools to fetch a single record by ID, and the citation_* tools to parse and look up legal citations. " +
	"The status tool reports server health."

// Options are the collaborators of a Server.
type Options struct {
	Config   config.Config
	Version  string
	Registry *registry.Registry
	Reporter *status.Reporter
	// Scope is attached to every tool invocation so handlers can reach the
	// shared HTTP client.
	Scope httpclient.Scope

	// Stdin and Stdout are used by the stdio transport. Default to the
	// process streams.
	Stdin  io.Reader
	Stdout io.Writer
}

// Server exposes the registered tools over the configured MCP transport.
type Server struct {
	cfg       config.Config
	mcpServer *server.MCPServer
	stdin     io.Reader
	stdout    io.Writer

	mu         sync.Mutex
	started    bool
	cancelFunc context.CancelFunc
	httpServer *http.Server
	listener   net.Listener
	done       chan error
	wg         sync.WaitGroup
}

// New builds the MCP server with the status tool and every registered tool.
// The registry must be complete; tools registered later are not served.
func New(opts Options) *Server {
	scope := opts.Scope
	mcpServer := server.NewMCPServer(
		Name,
		opts.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
		server.WithToolHandlerMiddleware(func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
			return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				if scope != nil {
					ctx = httpclient.WithScope(ctx, scope)
				}
				return next(ctx, req)
			}
		}),
	)

	reporter := opts.Reporter
	mcpServer.AddTool(
		mcp.NewTool(StatusToolName,
			mcp.WithDescription(StatusToolDescription),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return registry.PayloadResult(reporter.Status().Map()), nil
		},
	)

	tools := opts.Registry.ServerTools()
	mcpServer.AddTools(tools...)
	logging.Info("Server", "Serving %d registered tools plus %s", len(tools), StatusToolName)

	stdin, stdout := opts.Stdin, opts.Stdout
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}

	return &Server{
		cfg:       opts.Config,
		mcpServer: mcpServer,
		stdin:     stdin,
		stdout:    stdout,
		done:      make(chan error, 1),
	}
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Done delivers the error that ended the transport, or nil when a stdio
// client closed its input. It fires at most once.
func (s *Server) Done() <-chan error {
	return s.done
}

// Addr returns the bound address of an HTTP transport, or "".
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start begins serving on the configured transport. HTTP transports bind
// their listener before Start returns.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("server already started")
	}

	ctx, cancel := context.WithCancel(ctx)

	switch s.cfg.Transport {
	case config.MCPTransportStdio:
		logging.Info("Server", "Starting MCP server with stdio transport")
		stdioServer := server.NewStdioServer(s.mcpServer)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			err := stdioServer.Listen(ctx, s.stdin, s.stdout)
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				err = nil
			}
			if err != nil {
				logging.Error("Server", err, "Stdio server error")
			}
			s.finish(err)
		}()

	case config.MCPTransportSSE:
		handler := server.NewSSEServer(s.mcpServer,
			server.WithBaseURL("http://"+s.cfg.Address()),
			server.WithSSEEndpoint(joinPath(s.cfg.Path, "sse")),
			server.WithMessageEndpoint(joinPath(s.cfg.Path, "message")),
			server.WithKeepAlive(true),
			server.WithKeepAliveInterval(30*time.Second),
		)
		if err := s.serveHTTP("SSE", handler); err != nil {
			cancel()
			return err
		}

	case config.MCPTransportStreamableHTTP:
		streamable := server.NewStreamableHTTPServer(s.mcpServer, server.WithEndpointPath(s.cfg.Path))
		mux := http.NewServeMux()
		mux.Handle(s.cfg.Path, streamable)
		if trimmed := strings.TrimSuffix(s.cfg.Path, "/"); trimmed != "" && trimmed != s.cfg.Path {
			mux.Handle(trimmed, streamable)
		}
		if err := s.serveHTTP("streamable-http", mux); err != nil {
			cancel()
			return err
		}

	default:
		cancel()
		return fmt.Errorf("unsupported transport %q", s.cfg.Transport)
	}

	s.started = true
	s.cancelFunc = cancel
	return nil
}

// serveHTTP binds the configured address and serves handler. Called with
// s.mu held.
func (s *Server) serveHTTP(transport string, handler http.Handler) error {
	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address(), err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logging.Info("Server", "Starting MCP server with %s transport on %s%s", transport, ln.Addr(), s.cfg.Path)

	httpServer := s.httpServer
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := httpServer.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			logging.Error("Server", err, "%s server error", transport)
		}
		s.finish(err)
	}()
	return nil
}

func (s *Server) finish(err error) {
	select {
	case s.done <- err:
	default:
	}
}

// Stop stops accepting invocations and waits, up to ShutdownTimeout, for
// in-flight requests and the transport to finish.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return fmt.Errorf("server not started")
	}
	s.started = false
	cancelFunc := s.cancelFunc
	httpServer := s.httpServer
	s.mu.Unlock()

	logging.Info("Server", "Stopping MCP server")

	var shutdownErr error
	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "Error shutting down HTTP server")
			shutdownErr = err
		}
	}

	// The stdio server stops on context cancellation.
	if cancelFunc != nil {
		cancelFunc()
	}

	s.waitTransport()
	logging.Info("Server", "MCP server stopped")
	return shutdownErr
}

// waitTransport waits, up to ShutdownTimeout, for the transport goroutine
// to return so that the shared client outlives every invocation it serves.
func (s *Server) waitTransport() {
	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	timer := time.NewTimer(ShutdownTimeout)
	defer timer.Stop()
	select {
	case <-finished:
	case <-timer.C:
		logging.Warn("Server", "Transport did not finish within %s", ShutdownTimeout)
	}
}

func joinPath(base, elem string) string {
	return strings.TrimSuffix(base, "/") + "/" + elem
}
