package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coccinelle-ai/sara"
	"github.com/coccinelle-ai/sara/internal/logging"
	"github.com/coccinelle-ai/sara/internal/presentation/graph"
	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/ports"
	"github.com/coccinelle-ai/sara/pkg/session"
)

// Server exposes calls over a small REST API. Each call is a durable
// session: any replica holding the same store can take the next turn.
type Server struct {
	engine   *sara.Engine
	gateway  ports.ToolGateway
	sessions *session.Manager
	policy   sara.TurnPolicy
	logger   *slog.Logger
	router   chi.Router
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithTurnPolicy sets the tool retry/timeout budget applied per turn.
func WithTurnPolicy(policy sara.TurnPolicy) ServerOption {
	return func(s *Server) { s.policy = policy }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer wires the engine, the tool gateway and the session manager into
// an http.Handler.
func NewServer(engine *sara.Engine, gateway ports.ToolGateway, sessions *session.Manager, opts ...ServerOption) *Server {
	s := &Server{
		engine:   engine,
		gateway:  gateway,
		sessions: sessions,
		policy:   sara.TurnPolicy{MaxToolRetries: 3},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/calls", func(r chi.Router) {
		r.Post("/", s.handleStartCall)
		r.Get("/", s.handleListCalls)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetCall)
			r.Delete("/", s.handleEndCall)
			r.Post("/utterance", s.handleUtterance)
		})
	})
	r.Get("/graph/mermaid", s.handleMermaid)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type startCallRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

type utteranceRequest struct {
	Utterance string `json:"utterance"`
}

type turnResponse struct {
	SessionID string   `json:"session_id"`
	Texts     []string `json:"texts"`
	Done      bool     `json:"done"`
	Status    string   `json:"status"`
	Current   string   `json:"current_node"`
}

type callResponse struct {
	SessionID string            `json:"session_id"`
	Status    string            `json:"status"`
	Current   string            `json:"current_node"`
	Slots     map[string]string `json:"slots"`
	Turns     int               `json:"turns"`
}

func (s *Server) handleStartCall(w http.ResponseWriter, r *http.Request) {
	var req startCallRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	st, texts, done, err := s.engine.BeginTurn(r.Context(), req.SessionID, s.gateway, s.policy)
	if err != nil {
		s.turnError(w, err)
		return
	}
	if err := s.sessions.Start(r.Context(), st); err != nil {
		s.logger.Error("failed to persist new call", "session_id", st.SessionID, "err", err)
		s.writeError(w, http.StatusConflict, err.Error())
		return
	}

	s.writeJSON(w, http.StatusCreated, turnResponse{
		SessionID: st.SessionID,
		Texts:     texts,
		Done:      done,
		Status:    string(st.Status),
		Current:   st.Current,
	})
}

func (s *Server) handleUtterance(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req utteranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var resp turnResponse
	err := s.sessions.WithLock(r.Context(), sessionID, func(ctx context.Context) error {
		st, err := s.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if st.Done() {
			return errCallOver
		}

		texts, done, err := s.engine.Turn(ctx, st, req.Utterance, s.gateway, s.policy)
		if err != nil {
			return err
		}
		if err := s.sessions.Store().Save(ctx, sessionID, st); err != nil {
			return err
		}

		resp = turnResponse{
			SessionID: sessionID,
			Texts:     texts,
			Done:      done,
			Status:    string(st.Status),
			Current:   st.Current,
		}
		return nil
	})
	if err != nil {
		s.turnError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCall(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	st, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		s.turnError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, callResponse{
		SessionID: st.SessionID,
		Status:    string(st.Status),
		Current:   st.Current,
		Slots:     st.Slots,
		Turns:     len(st.History),
	})
}

func (s *Server) handleEndCall(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.sessions.Delete(r.Context(), sessionID); err != nil {
		s.turnError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCalls(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": sessions})
}

func (s *Server) handleMermaid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(s.engine.Graph(), nil)))
}

var errCallOver = errors.New("call is already over")

func (s *Server) turnError(w http.ResponseWriter, err error) {
	var toolFailure *domain.ToolFailure
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, errCallOver):
		s.writeError(w, http.StatusConflict, errCallOver.Error())
	case errors.As(err, &toolFailure):
		s.writeError(w, http.StatusBadGateway, toolFailure.Error())
	default:
		s.logger.Error("turn failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
