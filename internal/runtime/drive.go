package runtime

import (
	"context"
	"fmt"

	"github.com/coccinelle-ai/sara/pkg/domain"
)

// drive walks the path from the current node until the call must suspend:
// a question awaiting the caller, a tool invocation awaiting the host, or the
// end node. Informational prompts encountered on the way are accumulated into
// the outcome text, so the caller hears them in one breath.
func (o *Orchestrator) drive(ctx context.Context, st *domain.State, say []string) (domain.Outcome, error) {
	for {
		node, ok := o.graph.Node(st.Current)
		if !ok {
			return domain.Outcome{}, &domain.GraphIntegrityError{Reason: fmt.Sprintf("state points at unknown node %q", st.Current)}
		}
		o.emitNodeEnter(ctx, st, node)

		switch node.Kind {
		case domain.KindStart:
			next, ok := o.graph.Next(node.ID)
			if !ok {
				return domain.Outcome{}, &domain.GraphIntegrityError{Reason: "start node has no successor"}
			}
			st.Current = next

		case domain.KindPrompt:
			text, err := o.locale.Render(node.Prompt, st.Slots)
			if err != nil {
				return domain.Outcome{}, fmt.Errorf("node %s: %w", node.ID, err)
			}
			if node.Slot == "" {
				// Informational: narrate and keep walking.
				say = append(say, text)
				st.History = append(st.History, domain.Turn{NodeID: node.ID, Said: text})
				next, ok := o.graph.Next(node.ID)
				if !ok {
					return domain.Outcome{}, &domain.GraphIntegrityError{Reason: fmt.Sprintf("prompt node %q has no successor", node.ID)}
				}
				st.Current = next
				continue
			}
			st.Asked = true
			full := joinSpoken(append(say, text)...)
			st.History = append(st.History, domain.Turn{NodeID: node.ID, Said: full})
			return domain.Outcome{Kind: domain.OutcomePrompt, Text: full}, nil

		case domain.KindTool:
			inv, err := o.resolveInvocation(node, st)
			if err != nil {
				return domain.Outcome{}, err
			}
			onStart, err := o.locale.Render(node.Tool.Narration.OnStart, st.Slots)
			if err != nil {
				return domain.Outcome{}, fmt.Errorf("node %s: %w", node.ID, err)
			}
			st.Status = domain.StatusWaitingForTool
			full := joinSpoken(append(say, onStart)...)
			st.History = append(st.History, domain.Turn{NodeID: node.ID, Said: full})
			o.emitToolCall(ctx, st, node)
			return domain.Outcome{Kind: domain.OutcomeTool, Text: full, Invocation: inv}, nil

		case domain.KindEnd:
			st.Status = domain.StatusDone
			o.emitCallEnd(ctx, st, node)
			text := joinSpoken(say...)
			if text != "" {
				st.History = append(st.History, domain.Turn{NodeID: node.ID, Said: text})
			}
			return domain.Outcome{Kind: domain.OutcomeDone, Text: text}, nil

		default:
			return domain.Outcome{}, &domain.GraphIntegrityError{Reason: fmt.Sprintf("node %q has unknown kind %q", node.ID, node.Kind)}
		}
	}
}

// resolveInvocation substitutes "{{slot}}" references in the tool's input
// template against the current slots. It fails fast with a template error if
// a referenced slot is missing, since calling the tool with a hole in its
// input would be a graph ordering bug.
func (o *Orchestrator) resolveInvocation(node domain.Node, st *domain.State) (*domain.ToolInvocation, error) {
	input := make(map[string]string, len(node.Tool.Input))
	for param, tmpl := range node.Tool.Input {
		val, err := o.locale.Render(tmpl, st.Slots)
		if err != nil {
			return nil, fmt.Errorf("node %s: tool input %q: %w", node.ID, param, err)
		}
		input[param] = val
	}
	return &domain.ToolInvocation{
		NodeID: node.ID,
		Name:   node.Tool.Name,
		Input:  input,
		Status: domain.ToolPending,
	}, nil
}
