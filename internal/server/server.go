// Package server exposes a tool registry over the Model Context Protocol,
// on stdio for local agent hosts and over SSE for remote ones.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/config"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/logging"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/tools"
	"github.com/samuzaffar99/GoHighLevel-MCP/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Server bridges the registry to MCP transports.
type Server struct {
	registry *tools.Registry
	cfg      config.ServerConfig
	log      *logging.Logger
	mcp      *mcpserver.MCPServer
}

// New builds the MCP server and registers every tool in the registry.
func New(registry *tools.Registry, cfg config.ServerConfig, log *logging.Logger) (*Server, error) {
	s := &Server{
		registry: registry,
		cfg:      cfg,
		log:      log.Sub("server"),
		mcp:      mcpserver.NewMCPServer("ghl-mcp", version.Version),
	}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) registerTools() error {
	for _, tool := range s.registry.Tools() {
		rawSchema, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return fmt.Errorf("failed to marshal schema for %s: %w", tool.Name, err)
		}
		s.mcp.AddTool(
			mcp.NewToolWithRawSchema(tool.Name, tool.Description, rawSchema),
			s.handler(tool.Name),
		)
	}
	s.log.Debug().Int("tools", s.registry.Len()).Msg("tools registered")
	return nil
}

func (s *Server) handler(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := s.registry.Execute(ctx, name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		data, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// ServeStdio runs the server over stdin/stdout until the host disconnects.
// Log output must already be routed away from stdout.
func (s *Server) ServeStdio() error {
	s.log.Info().Int("tools", s.registry.Len()).Msg("serving MCP over stdio")
	return mcpserver.ServeStdio(s.mcp)
}

// ServeSSE runs the server over HTTP Server-Sent Events until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) ServeSSE(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	baseURL := fmt.Sprintf("http://localhost:%d", s.cfg.Port)

	sse := mcpserver.NewSSEServer(s.mcp, mcpserver.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", s.cors(sse.SSEHandler()))
	mux.Handle("/message", s.cors(sse.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Int("tools", s.registry.Len()).Msg("serving MCP over SSE")
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info().Msg("shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowOrigin(r.Header.Get("Origin")))
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowOrigin(origin string) string {
	if len(s.cfg.AllowedOrigins) == 0 {
		return "*"
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return allowed
		}
	}
	return s.cfg.AllowedOrigins[0]
}
