package dsl

import "github.com/coccinelle-ai/sara/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node domain.Node
	to   string
}

// Start marks the node as the call's entry point.
func (n *NodeBuilder) Start() *NodeBuilder {
	n.node.Kind = domain.KindStart
	return n
}

// Say sets spoken content and marks the node as an informational prompt:
// the text is narrated and the flow continues immediately.
func (n *NodeBuilder) Say(template string) *NodeBuilder {
	n.node.Kind = domain.KindPrompt
	n.node.Prompt = template
	return n
}

// Ask sets the question collecting a slot. The field selects the validator
// (domain.FieldName, FieldPhone, FieldEmail, FieldSlotChoice).
func (n *NodeBuilder) Ask(template, slot, field string) *NodeBuilder {
	n.node.Kind = domain.KindPrompt
	n.node.Prompt = template
	n.node.Slot = slot
	n.node.Field = field
	return n
}

// Reprompt sets the reworded question spoken after an invalid answer.
func (n *NodeBuilder) Reprompt(template string) *NodeBuilder {
	n.node.Reprompt = template
	return n
}

// Confirm sets the echo spoken right after the slot is accepted.
func (n *NodeBuilder) Confirm(template string) *NodeBuilder {
	n.node.Confirm = template
	return n
}

// Call configures the external tool this node invokes, with its input
// template mapping parameter names to literals or "{{slot}}" references.
func (n *NodeBuilder) Call(tool string, input map[string]string) *NodeBuilder {
	n.node.Kind = domain.KindTool
	n.node.Tool = &domain.ToolSpec{Name: tool, Input: input}
	return n
}

// Narrate sets the three messages spoken around the tool invocation.
func (n *NodeBuilder) Narrate(onStart, onSuccess, onFailure string) *NodeBuilder {
	if n.node.Tool == nil {
		n.node.Tool = &domain.ToolSpec{}
	}
	n.node.Tool.Narration = domain.Narration{
		OnStart:   onStart,
		OnSuccess: onSuccess,
		OnFailure: onFailure,
	}
	return n
}

// Go adds the unconditional transition to the target node.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	n.to = target
	return n
}

// End marks the node as the call's terminal node.
func (n *NodeBuilder) End() *NodeBuilder {
	n.node.Kind = domain.KindEnd
	n.to = ""
	return n
}

// Build returns the underlying domain.Node, for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	return n.node
}
