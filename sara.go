package sara

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/coccinelle-ai/sara/internal/runtime"
	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/ports"
	"github.com/coccinelle-ai/sara/pkg/speech"
)

// Version is the released version of the Sara engine.
const Version = "1.13.0"

// Engine is the high-level entry point for the Sara library. It wraps the
// internal orchestrator and provides a simplified API for hosts (CLI, HTTP,
// MCP). One Engine serves any number of concurrent calls: per-call data lives
// entirely in the *domain.State values it hands out.
type Engine struct {
	orch   *runtime.Orchestrator
	graph  *domain.Graph
	logger *slog.Logger

	locale *speech.Locale
	hooks  domain.LifecycleHooks
	clock  func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// WithLocale swaps the locale pack (speech.French by default).
func WithLocale(l *speech.Locale) Option {
	return func(e *Engine) { e.locale = l }
}

// WithClock overrides the time source used for the implicit "today" slot.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// New initializes an Engine on an already-validated conversation graph.
func New(graph *domain.Graph, opts ...Option) (*Engine, error) {
	if graph == nil {
		return nil, fmt.Errorf("graph is required")
	}
	e := &Engine{
		graph:  graph,
		locale: speech.French,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("graph", graph.Name())
	e.orch = runtime.New(graph,
		runtime.WithLocale(e.locale),
		runtime.WithHooks(e.hooks),
		runtime.WithLogger(e.logger),
		runtime.WithClock(e.clock),
	)
	return e, nil
}

// Begin creates the state for a new call and advances to the first
// suspension point. An empty sessionID gets a generated UUID.
func (e *Engine) Begin(ctx context.Context, sessionID string) (*domain.State, domain.Outcome, error) {
	return e.orch.Begin(ctx, sessionID)
}

// Advance processes one caller utterance.
func (e *Engine) Advance(ctx context.Context, st *domain.State, utterance string) (domain.Outcome, error) {
	return e.orch.Advance(ctx, st, utterance)
}

// Resume feeds a tool result back into a suspended call.
func (e *Engine) Resume(ctx context.Context, st *domain.State, res domain.ToolResult) (domain.Outcome, error) {
	return e.orch.Resume(ctx, st, res)
}

// Graph returns the conversation graph, for introspection and visualization.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// TurnPolicy bounds the tool work performed inside one caller turn. The core
// imposes no retry limit of its own; hosts pick their budget here.
type TurnPolicy struct {
	// Timeout bounds each tool invocation. Zero means ports.DefaultToolTimeout.
	Timeout time.Duration
	// MaxToolRetries caps consecutive failures of one tool node within a
	// turn. Zero means retry without bound.
	MaxToolRetries int
}

func (p TurnPolicy) timeout() time.Duration {
	if p.Timeout <= 0 {
		return ports.DefaultToolTimeout
	}
	return p.Timeout
}

// Turn runs one full caller turn: it feeds the utterance to the orchestrator,
// performs any tool invocations through the gateway (narrating start, success
// and failure), and returns everything spoken plus whether the call is over.
// On an exhausted tool retry budget it returns the texts spoken so far and a
// *domain.ToolFailure; the state remains suspended at the tool node.
func (e *Engine) Turn(ctx context.Context, st *domain.State, utterance string, gw ports.ToolGateway, policy TurnPolicy) ([]string, bool, error) {
	out, err := e.Advance(ctx, st, utterance)
	if err != nil {
		return nil, false, err
	}
	return e.finishTurn(ctx, st, out, gw, policy)
}

// BeginTurn starts a call and runs it to the first question (or the end),
// performing any tool work on the way, e.g. the availability check that
// directly follows the greeting.
func (e *Engine) BeginTurn(ctx context.Context, sessionID string, gw ports.ToolGateway, policy TurnPolicy) (*domain.State, []string, bool, error) {
	st, out, err := e.Begin(ctx, sessionID)
	if err != nil {
		return nil, nil, false, err
	}
	texts, done, err := e.finishTurn(ctx, st, out, gw, policy)
	return st, texts, done, err
}

func (e *Engine) finishTurn(ctx context.Context, st *domain.State, out domain.Outcome, gw ports.ToolGateway, policy TurnPolicy) ([]string, bool, error) {
	var texts []string
	for {
		if out.Text != "" {
			texts = append(texts, out.Text)
		}
		if out.Kind != domain.OutcomeTool {
			return texts, out.Kind == domain.OutcomeDone, nil
		}
		if gw == nil {
			return texts, false, fmt.Errorf("outcome requires a tool gateway, none configured")
		}
		if policy.MaxToolRetries > 0 && st.ToolRetries >= policy.MaxToolRetries {
			return texts, false, &domain.ToolFailure{
				Tool:   out.Invocation.Name,
				Reason: fmt.Sprintf("giving up after %d attempts", st.ToolRetries),
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, policy.timeout())
		res := gw.Invoke(callCtx, *out.Invocation)
		cancel()

		var err error
		out, err = e.Resume(ctx, st, res)
		if err != nil {
			return texts, false, err
		}
	}
}
