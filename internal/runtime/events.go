package runtime

import (
	"context"

	"github.com/coccinelle-ai/sara/pkg/domain"
	"github.com/coccinelle-ai/sara/pkg/validate"
)

func (o *Orchestrator) base(st *domain.State, typ domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: o.clock(),
		Type:      typ,
		SessionID: st.SessionID,
	}
}

func (o *Orchestrator) emitNodeEnter(ctx context.Context, st *domain.State, node domain.Node) {
	if o.hooks.OnNodeEnter == nil {
		return
	}
	o.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: o.base(st, domain.EventNodeEnter),
		NodeID:    node.ID,
		NodeKind:  node.Kind,
	})
}

func (o *Orchestrator) emitPromptRetry(ctx context.Context, st *domain.State, node domain.Node, verr *validate.Error) {
	if o.hooks.OnPromptRetry == nil {
		return
	}
	o.hooks.OnPromptRetry(ctx, &domain.PromptEvent{
		EventBase: o.base(st, domain.EventPromptRetry),
		NodeID:    node.ID,
		Slot:      node.Slot,
		Attempt:   st.Retries,
		Reason:    verr.Error(),
	})
}

func (o *Orchestrator) emitSlotFilled(ctx context.Context, st *domain.State, node domain.Node) {
	if o.hooks.OnSlotFilled == nil {
		return
	}
	o.hooks.OnSlotFilled(ctx, &domain.PromptEvent{
		EventBase: o.base(st, domain.EventSlotFilled),
		NodeID:    node.ID,
		Slot:      node.Slot,
		Attempt:   st.Retries + 1,
	})
}

func (o *Orchestrator) emitToolCall(ctx context.Context, st *domain.State, node domain.Node) {
	if o.hooks.OnToolCall == nil {
		return
	}
	o.hooks.OnToolCall(ctx, &domain.ToolEvent{
		EventBase: o.base(st, domain.EventToolCall),
		NodeID:    node.ID,
		ToolName:  node.Tool.Name,
	})
}

func (o *Orchestrator) emitToolReturn(ctx context.Context, st *domain.State, node domain.Node, res domain.ToolResult) {
	if o.hooks.OnToolReturn == nil {
		return
	}
	o.hooks.OnToolReturn(ctx, &domain.ToolEvent{
		EventBase: o.base(st, domain.EventToolReturn),
		NodeID:    node.ID,
		ToolName:  node.Tool.Name,
		IsError:   res.Status == domain.ToolFailed,
		Reason:    res.Reason,
	})
}

func (o *Orchestrator) emitCallEnd(ctx context.Context, st *domain.State, node domain.Node) {
	if o.hooks.OnCallEnd == nil {
		return
	}
	o.hooks.OnCallEnd(ctx, &domain.NodeEvent{
		EventBase: o.base(st, domain.EventCallEnd),
		NodeID:    node.ID,
		NodeKind:  node.Kind,
	})
}
