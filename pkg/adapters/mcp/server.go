// Package mcp exposes Sara over the Model Context Protocol, so agent hosts
// can place and drive calls as tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/coccinelle-ai/sara"
	"github.com/coccinelle-ai/sara/internal/presentation/graph"
	"github.com/coccinelle-ai/sara/pkg/ports"
	"github.com/coccinelle-ai/sara/pkg/session"
)

// TurnResponse is the structured result of every call-driving tool.
type TurnResponse struct {
	SessionID string   `json:"session_id" jsonschema_description:"The call session ID"`
	Texts     []string `json:"texts" jsonschema_description:"Everything Sara said this turn, in order"`
	Done      bool     `json:"done" jsonschema_description:"Whether the call is complete"`
	Current   string   `json:"current_node" jsonschema_description:"The node the call is waiting at"`
}

// Server wraps the Sara engine as an MCP server.
type Server struct {
	engine    *sara.Engine
	gateway   ports.ToolGateway
	sessions  *session.Manager
	policy    sara.TurnPolicy
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over the given engine, gateway and sessions.
func NewServer(engine *sara.Engine, gateway ports.ToolGateway, sessions *session.Manager) *Server {
	s := &Server{
		engine:    engine,
		gateway:   gateway,
		sessions:  sessions,
		policy:    sara.TurnPolicy{MaxToolRetries: 3},
		mcpServer: server.NewMCPServer("sara-mcp", strings.TrimSpace(sara.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("sara_start_call",
		mcp.WithDescription("Start a new appointment-booking call. Returns the greeting and the offered time slots."),
		mcp.WithString("session_id", mcp.Description("Session ID to assign (optional, generated when omitted)")),
		mcp.WithOutputSchema[TurnResponse](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStartCall))

	replyTool := mcp.NewTool("sara_reply",
		mcp.WithDescription("Answer Sara's last question in an ongoing call."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The call session ID")),
		mcp.WithString("utterance", mcp.Required(), mcp.Description("What the caller says")),
		mcp.WithOutputSchema[TurnResponse](),
	)
	s.mcpServer.AddTool(replyTool, mcp.NewStructuredToolHandler(s.handleReply))

	hangupTool := mcp.NewTool("sara_hangup",
		mcp.WithDescription("End an ongoing call and discard its state."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("The call session ID")),
	)
	s.mcpServer.AddTool(hangupTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("hangup failed: %v", err)), nil
		}
		return mcp.NewToolResultText("call ended"), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("sara_get_graph",
		mcp.WithDescription("Get the conversation graph as a Mermaid flowchart."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(graph.GenerateMermaid(s.engine.Graph(), nil)), nil
	})
}

func (s *Server) handleStartCall(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TurnResponse, error) {
	sessionID, _ := args["session_id"].(string)

	st, texts, done, err := s.engine.BeginTurn(ctx, sessionID, s.gateway, s.policy)
	if err != nil {
		return TurnResponse{}, fmt.Errorf("start failed: %w", err)
	}
	if err := s.sessions.Start(ctx, st); err != nil {
		return TurnResponse{}, fmt.Errorf("start failed: %w", err)
	}

	return TurnResponse{
		SessionID: st.SessionID,
		Texts:     texts,
		Done:      done,
		Current:   st.Current,
	}, nil
}

func (s *Server) handleReply(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TurnResponse, error) {
	sessionID, _ := args["session_id"].(string)
	utterance, _ := args["utterance"].(string)
	if sessionID == "" {
		return TurnResponse{}, fmt.Errorf("session_id is required")
	}

	var resp TurnResponse
	err := s.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		st, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if st.Done() {
			return fmt.Errorf("call is already over")
		}

		texts, done, err := s.engine.Turn(ctx, st, utterance, s.gateway, s.policy)
		if err != nil {
			return err
		}
		if err := s.sessions.Store().Save(ctx, sessionID, st); err != nil {
			return err
		}

		resp = TurnResponse{
			SessionID: sessionID,
			Texts:     texts,
			Done:      done,
			Current:   st.Current,
		}
		return nil
	})
	if err != nil {
		return TurnResponse{}, fmt.Errorf("reply failed: %w", err)
	}
	return resp, nil
}
