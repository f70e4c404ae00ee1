// Package runner drives a call against caller IO: it speaks the engine's
// lines to a writer and reads utterances from a reader, performing tool
// calls through the gateway between turns. The CLI uses it on
// stdin/stdout; tests feed it scripted conversations.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/coccinelle-ai/sara"
	"github.com/coccinelle-ai/sara/internal/logging"
	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/ports"
)

// ErrTooManyAttempts reports a caller that never produced a valid answer
// within the configured prompt budget.
var ErrTooManyAttempts = errors.New("too many invalid answers")

// ErrHangup reports a caller that ended the call early (EOF or an exit word).
var ErrHangup = errors.New("caller hung up")

// Runner hosts one interactive call.
type Runner struct {
	engine  *sara.Engine
	gateway ports.ToolGateway

	in  io.Reader
	out io.Writer

	store  ports.StateStore
	policy sara.TurnPolicy
	logger *slog.Logger

	// MaxPromptRetries caps consecutive invalid answers at one prompt node.
	// Zero means unbounded, matching the engine default.
	maxPromptRetries int

	render func(string) (string, error)
}

// Option configures the Runner.
type Option func(*Runner)

// WithIO replaces the caller's reader and writer (stdin/stdout by default).
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *Runner) {
		r.in = in
		r.out = out
	}
}

// WithStore persists the call state after every turn.
func WithStore(store ports.StateStore) Option {
	return func(r *Runner) { r.store = store }
}

// WithTurnPolicy sets the tool timeout and retry budget per turn.
func WithTurnPolicy(policy sara.TurnPolicy) Option {
	return func(r *Runner) { r.policy = policy }
}

// WithMaxPromptRetries caps invalid answers per prompt node. 0 = unbounded.
func WithMaxPromptRetries(n int) Option {
	return func(r *Runner) { r.maxPromptRetries = n }
}

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithRenderer pipes every spoken line through a presentation function,
// e.g. a glamour markdown renderer.
func WithRenderer(render func(string) (string, error)) Option {
	return func(r *Runner) { r.render = render }
}

// New creates a runner for the given engine and tool gateway.
func New(engine *sara.Engine, gateway ports.ToolGateway, opts ...Option) *Runner {
	r := &Runner{
		engine:  engine,
		gateway: gateway,
		in:      os.Stdin,
		out:     os.Stdout,
		policy:  sara.TurnPolicy{MaxToolRetries: 3},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run hosts a call from greeting to hangup. An empty sessionID gets a
// generated one. The returned state reflects wherever the call stopped,
// also on error.
func (r *Runner) Run(ctx context.Context, sessionID string) (*domain.State, error) {
	st, texts, done, err := r.engine.BeginTurn(ctx, sessionID, r.gateway, r.policy)
	if st != nil {
		defer r.persist(ctx, st)
	}
	if err != nil {
		return st, err
	}
	r.speak(texts)

	scanner := bufio.NewScanner(r.in)
	for !done {
		if err := r.persistNow(ctx, st); err != nil {
			return st, err
		}

		utterance, ok := r.listen(scanner)
		if !ok {
			return st, ErrHangup
		}

		texts, finished, err := r.engine.Turn(ctx, st, utterance, r.gateway, r.policy)
		r.speak(texts)
		if err != nil {
			return st, err
		}
		done = finished

		if r.maxPromptRetries > 0 && st.Retries >= r.maxPromptRetries {
			return st, fmt.Errorf("%w at %s", ErrTooManyAttempts, st.Current)
		}
	}

	return st, nil
}

// listen reads the next utterance. A closed reader or an exit word counts
// as the caller hanging up.
func (r *Runner) listen(scanner *bufio.Scanner) (string, bool) {
	fmt.Fprint(r.out, "> ")
	if !scanner.Scan() {
		return "", false
	}
	utterance := strings.TrimSpace(scanner.Text())
	switch strings.ToLower(utterance) {
	case "exit", "quit", "au revoir":
		return "", false
	}
	return utterance, true
}

func (r *Runner) speak(texts []string) {
	for _, text := range texts {
		line := text
		if r.render != nil {
			if rendered, err := r.render(text); err == nil {
				line = strings.TrimRight(rendered, "\n")
			}
		}
		fmt.Fprintln(r.out, line)
	}
}

func (r *Runner) persist(ctx context.Context, st *domain.State) {
	if err := r.persistNow(ctx, st); err != nil {
		r.logger.Error("failed to persist call state", "session_id", st.SessionID, "err", err)
	}
}

func (r *Runner) persistNow(ctx context.Context, st *domain.State) error {
	if r.store == nil {
		return nil
	}
	return r.store.Save(ctx, st.SessionID, st)
}
