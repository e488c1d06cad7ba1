package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/search"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

const graphURI = "wayfinder://graph"

// Engine is the read side of the navigator.
type Engine interface {
	Current(state *domain.State) (domain.Node, error)
	Inspect() []domain.Node
}

// Sessions stores navigator sessions and applies transitions to them.
type Sessions interface {
	Create(ctx context.Context) (*domain.State, error)
	Load(ctx context.Context, sessionID string) (*domain.State, error)
	Select(ctx context.Context, sessionID string, i int) (*domain.State, error)
	Back(ctx context.Context, sessionID string) (*domain.State, error)
	Reset(ctx context.Context, sessionID string) (*domain.State, error)
}

// Server exposes the navigator and the documentation index as MCP tools.
type Server struct {
	engine    Engine
	sessions  Sessions
	index     ports.SearchIndex
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithIndex registers the search tool.
func WithIndex(index ports.SearchIndex) Option {
	return func(s *Server) {
		s.index = index
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, sessions Sessions, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("wayfinder-mcp", strings.TrimSpace(wayfinder.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, mostly for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sse.SSEHandler())
	mux.Handle("/message", sse.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("mcp server listening (sse)", "address", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a new crate-picker session at the first question."),
	), s.handleStart)

	s.mcpServer.AddTool(mcp.NewTool("current",
		mcp.WithDescription("Show the current question or recommendation of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_session")),
	), s.handleCurrent)

	s.mcpServer.AddTool(mcp.NewTool("select_option",
		mcp.WithDescription("Answer the current question by choosing an option index."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_session")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based option index")),
	), s.handleSelect)

	s.mcpServer.AddTool(mcp.NewTool("go_back",
		mcp.WithDescription("Undo the last answer."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_session")),
	), s.handleBack)

	s.mcpServer.AddTool(mcp.NewTool("reset",
		mcp.WithDescription("Return to the first question."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_session")),
	), s.handleReset)

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the full decision graph for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(s.engine.Inspect())
	})

	if s.index != nil {
		s.mcpServer.AddTool(mcp.NewTool("search_docs",
			mcp.WithDescription("Full-text search over the documentation."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search terms")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 8)")),
		), s.handleSearch)
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Decision Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.engine.Inspect())
		if err != nil {
			return nil, fmt.Errorf("failed to encode graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      graphURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.sessions.Create(ctx)
	return s.view(state, err)
}

func (s *Server) handleCurrent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state, err := s.sessions.Load(ctx, id)
	return s.view(state, err)
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index, err := request.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state, err := s.sessions.Select(ctx, id, index)
	return s.view(state, err)
}

func (s *Server) handleBack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state, err := s.sessions.Back(ctx, id)
	return s.view(state, err)
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state, err := s.sessions.Reset(ctx, id)
	return s.view(state, err)
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := request.GetInt("limit", search.DefaultLimit)

	hits, err := s.index.Search(ctx, query)
	if err != nil {
		s.logger.Warn("mcp search failed", "query", query, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	return jsonResult(search.Normalize(hits, limit))
}

// view renders a state as a tool result. Domain errors become tool errors
// so the model can react to them.
func (s *Server) view(state *domain.State, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	node, err := s.engine.Current(state)
	if err != nil {
		s.logger.Error("mcp render failed", "session_id", state.SessionID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(domain.NewView(state, node))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
