// Package runtime implements the dialogue orchestrator: it walks the
// conversation graph one caller turn at a time, validates and stores slot
// values, and emits the tool invocation protocol with its narration.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/coccinelle-ai/sara/internal/logging"
	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/speech"
)

// Orchestrator drives one call from start to end. It is stateless across
// calls: all per-call data lives in the *domain.State it is handed, so a
// single Orchestrator safely serves any number of concurrent calls.
type Orchestrator struct {
	graph  *domain.Graph
	locale *speech.Locale
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLocale swaps the locale pack used for rendering and parsing.
func WithLocale(l *speech.Locale) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.locale = l
		}
	}
}

// WithHooks registers observability callbacks.
func WithHooks(h domain.LifecycleHooks) Option {
	return func(o *Orchestrator) { o.hooks = h }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source, used to pin "today" in tests.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// New creates an orchestrator for a validated graph.
func New(graph *domain.Graph, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		graph:  graph,
		locale: speech.French,
		logger: logging.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Begin creates the state for a new call and advances to the first
// suspension point: a question for the caller, a tool invocation, or the end
// for a degenerate graph. An empty sessionID gets a generated UUID.
func (o *Orchestrator) Begin(ctx context.Context, sessionID string) (*domain.State, domain.Outcome, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	st := domain.NewState(sessionID, o.graph.Start().ID)

	// Seed the implicit slots every flow may reference.
	now := o.clock()
	st.Slots["today"] = now.Format("2006-01-02")
	st.Slots["date_parlee"] = o.locale.SpeakDate(now)

	out, err := o.drive(ctx, st, nil)
	return st, out, err
}

// Advance processes one caller utterance and moves to the next suspension
// point. Calling it while a tool result is outstanding is a host bug.
func (o *Orchestrator) Advance(ctx context.Context, st *domain.State, utterance string) (domain.Outcome, error) {
	switch st.Status {
	case domain.StatusDone:
		return domain.Outcome{Kind: domain.OutcomeDone}, nil
	case domain.StatusWaitingForTool:
		return domain.Outcome{}, fmt.Errorf("session %s: tool result expected, not an utterance", st.SessionID)
	}

	node, ok := o.graph.Node(st.Current)
	if !ok {
		return domain.Outcome{}, &domain.GraphIntegrityError{Reason: fmt.Sprintf("state points at unknown node %q", st.Current)}
	}

	if node.Kind == domain.KindPrompt && node.Slot != "" && st.Asked {
		return o.collect(ctx, st, node, utterance)
	}
	return o.drive(ctx, st, nil)
}

// Resume feeds a tool result back into a suspended call. On success the flow
// narrates the on-success message and continues; on failure it narrates the
// on-failure message and re-enters the same tool node with an identical
// resolved input. An appointment cannot be confirmed without the create step
// succeeding, so the flow never skips forward past a failed tool.
func (o *Orchestrator) Resume(ctx context.Context, st *domain.State, res domain.ToolResult) (domain.Outcome, error) {
	if st.Status != domain.StatusWaitingForTool {
		return domain.Outcome{}, fmt.Errorf("session %s: no tool invocation outstanding", st.SessionID)
	}
	node, ok := o.graph.Node(st.Current)
	if !ok || node.Kind != domain.KindTool {
		return domain.Outcome{}, &domain.GraphIntegrityError{Reason: fmt.Sprintf("suspended state points at non-tool node %q", st.Current)}
	}

	o.emitToolReturn(ctx, st, node, res)

	if res.Status == domain.ToolFailed {
		st.ToolRetries++
		o.markHeard(st, "échec : "+res.Reason)
		o.logger.Warn("tool failed, re-entering node",
			"session_id", st.SessionID, "node_id", node.ID, "tool", node.Tool.Name,
			"attempt", st.ToolRetries, "reason", res.Reason)

		inv, err := o.resolveInvocation(node, st)
		if err != nil {
			return domain.Outcome{}, err
		}
		onFailure, err := o.locale.Render(node.Tool.Narration.OnFailure, st.Slots)
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("node %s: %w", node.ID, err)
		}
		onStart, err := o.locale.Render(node.Tool.Narration.OnStart, st.Slots)
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("node %s: %w", node.ID, err)
		}
		text := joinSpoken(onFailure, onStart)
		st.History = append(st.History, domain.Turn{NodeID: node.ID, Said: text})
		o.emitToolCall(ctx, st, node)
		return domain.Outcome{Kind: domain.OutcomeTool, Text: text, Invocation: inv}, nil
	}

	st.ToolRetries = 0
	heard := res.Detail
	if heard == "" {
		heard = "ok"
	}
	o.markHeard(st, heard)

	if len(res.Labels) > 0 {
		st.Offered = res.Labels
		st.Slots["creneaux"] = o.locale.SpeakHours(res.Labels)
	}

	var say []string
	if node.Tool.Narration.OnSuccess != "" {
		text, err := o.locale.Render(node.Tool.Narration.OnSuccess, st.Slots)
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("node %s: %w", node.ID, err)
		}
		say = append(say, text)
		st.History = append(st.History, domain.Turn{NodeID: node.ID, Said: text})
	}

	st.Status = domain.StatusActive
	next, ok := o.graph.Next(node.ID)
	if !ok {
		return domain.Outcome{}, &domain.GraphIntegrityError{Reason: fmt.Sprintf("tool node %q has no successor", node.ID)}
	}
	st.Current = next
	return o.drive(ctx, st, say)
}

// joinSpoken joins narration fragments into one utterance, skipping empties.
func joinSpoken(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

// markHeard records the caller's utterance (or tool outcome) on the turn that
// asked for it.
func (o *Orchestrator) markHeard(st *domain.State, heard string) {
	if n := len(st.History); n > 0 {
		st.History[n-1].Heard = heard
	}
}
