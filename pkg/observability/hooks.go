package observability

import (
	"context"
	"log/slog"

	"github.com/coccinelle-ai/sara/pkg/domain"
)

// LogHooks returns lifecycle hooks emitting one structured log line per
// event. Caller utterances are never logged, only node, slot and tool names.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node entered",
				"session_id", e.SessionID, "node", e.NodeID, "kind", e.NodeKind)
		},
		OnPromptRetry: func(ctx context.Context, e *domain.PromptEvent) {
			logger.InfoContext(ctx, "answer rejected, re-prompting",
				"session_id", e.SessionID, "node", e.NodeID, "slot", e.Slot,
				"attempt", e.Attempt, "reason", e.Reason)
		},
		OnSlotFilled: func(ctx context.Context, e *domain.PromptEvent) {
			logger.InfoContext(ctx, "slot filled",
				"session_id", e.SessionID, "node", e.NodeID, "slot", e.Slot)
		},
		OnToolCall: func(ctx context.Context, e *domain.ToolEvent) {
			logger.InfoContext(ctx, "tool invoked",
				"session_id", e.SessionID, "node", e.NodeID, "tool", e.ToolName)
		},
		OnToolReturn: func(ctx context.Context, e *domain.ToolEvent) {
			if e.IsError {
				logger.WarnContext(ctx, "tool failed",
					"session_id", e.SessionID, "tool", e.ToolName, "reason", e.Reason)
				return
			}
			logger.InfoContext(ctx, "tool returned",
				"session_id", e.SessionID, "tool", e.ToolName)
		},
		OnCallEnd: func(ctx context.Context, e *domain.NodeEvent) {
			logger.InfoContext(ctx, "call ended",
				"session_id", e.SessionID, "node", e.NodeID)
		},
	}
}

// Combine merges hook sets. Every non-nil callback runs, in argument order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var combined domain.LifecycleHooks
	for _, s := range sets {
		s := s
		combined.OnNodeEnter = chainNode(combined.OnNodeEnter, s.OnNodeEnter)
		combined.OnPromptRetry = chainPrompt(combined.OnPromptRetry, s.OnPromptRetry)
		combined.OnSlotFilled = chainPrompt(combined.OnSlotFilled, s.OnSlotFilled)
		combined.OnToolCall = chainTool(combined.OnToolCall, s.OnToolCall)
		combined.OnToolReturn = chainTool(combined.OnToolReturn, s.OnToolReturn)
		combined.OnCallEnd = chainNode(combined.OnCallEnd, s.OnCallEnd)
	}
	return combined
}

func chainNode(a, b func(context.Context, *domain.NodeEvent)) func(context.Context, *domain.NodeEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.NodeEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainPrompt(a, b func(context.Context, *domain.PromptEvent)) func(context.Context, *domain.PromptEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.PromptEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainTool(a, b func(context.Context, *domain.ToolEvent)) func(context.Context, *domain.ToolEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.ToolEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
