package ports

import (
	"context"

	"github.com/coccinelle-ai/sara/pkg/domain"
)

// StateStore persists call state between turns, letting a server host resume
// a conversation across requests or replicas.
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error
}

// SessionLister is implemented by stores that can enumerate active sessions.
type SessionLister interface {
	List(ctx context.Context) ([]string, error)
}
