package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/coccinelle-ai/sara/pkg/booking"
	"github.com/coccinelle-ai/sara/pkg/domain"
)

// Gateway implements ports.ToolGateway in process, answering the two booking
// tools from canned data. It backs the demo CLI when no backend is configured
// and the test suites; FailCheck/FailCreate make the first N invocations of a
// tool fail, to exercise the retry-at-same-node policy.
type Gateway struct {
	// Labels are the slot labels the availability lookup narrates.
	Labels []string
	// FailCheck and FailCreate fail that many leading invocations.
	FailCheck  int
	FailCreate int

	mu          sync.Mutex
	checkCalls  int
	createCalls int
	invocations []domain.ToolInvocation
}

// NewGateway returns a gateway offering the given slot labels.
func NewGateway(labels ...string) *Gateway {
	if len(labels) == 0 {
		labels = []string{"9 heures", "10 heures", "11 heures", "14 heures", "15 heures", "16 heures", "17 heures"}
	}
	return &Gateway{Labels: labels}
}

// Invoke answers the invocation from canned data.
func (g *Gateway) Invoke(ctx context.Context, inv domain.ToolInvocation) domain.ToolResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.invocations = append(g.invocations, inv)

	if err := ctx.Err(); err != nil {
		return domain.Failed(err.Error())
	}

	switch inv.Name {
	case booking.ToolCheckAvailability:
		g.checkCalls++
		if g.checkCalls <= g.FailCheck {
			return domain.Failed("calendar unreachable")
		}
		return domain.Succeeded("disponibilités trouvées", g.Labels...)
	case booking.ToolCreateAppointment:
		g.createCalls++
		if g.createCalls <= g.FailCreate {
			return domain.Failed("backend timeout")
		}
		return domain.Succeeded(fmt.Sprintf("apt_%04d", g.createCalls))
	default:
		return domain.Failed("unknown tool: " + inv.Name)
	}
}

// Invocations returns a copy of everything invoked so far, in order.
func (g *Gateway) Invocations() []domain.ToolInvocation {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.ToolInvocation, len(g.invocations))
	copy(out, g.invocations)
	return out
}
