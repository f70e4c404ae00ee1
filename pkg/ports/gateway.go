package ports

import (
	"context"
	"time"

	"github.com/coccinelle-ai/sara/pkg/domain"
)

// DefaultToolTimeout bounds a single tool invocation when the host does not
// configure its own budget. The backend treats 30 seconds as reasonable.
const DefaultToolTimeout = 30 * time.Second

// ToolGateway invokes the external tools (availability lookup, appointment
// creation) on behalf of the conversation. It is synchronous from the
// orchestrator's point of view and never retries on its own: a timeout or
// transport error comes back as a failed result, and only the orchestrator
// decides whether to re-enter the tool node. That keeps failure handling
// observable at one layer.
type ToolGateway interface {
	// Invoke performs the resolved invocation. Cancellation and deadlines
	// arrive through ctx; on expiry the result is ToolFailed.
	Invoke(ctx context.Context, inv domain.ToolInvocation) domain.ToolResult
}
