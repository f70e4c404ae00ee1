package domain

// ToolStatus is the tri-state lifecycle of one tool invocation.
type ToolStatus string

const (
	ToolPending   ToolStatus = "pending"
	ToolSucceeded ToolStatus = "succeeded"
	ToolFailed    ToolStatus = "failed"
)

// ToolInvocation is the ephemeral value produced each time a tool node is
// entered: the tool name plus its input template fully resolved against the
// current slot state. Resolution fails fast if a referenced slot is missing.
type ToolInvocation struct {
	NodeID string            `json:"node_id"`
	Name   string            `json:"name"`
	Input  map[string]string `json:"input"`
	Status ToolStatus        `json:"status"`
}

// ToolResult is what the Tool Gateway hands back to the orchestrator.
type ToolResult struct {
	Status ToolStatus `json:"status"`

	// Labels carries the ordered time slot descriptions returned by an
	// availability lookup. Nil for other tools.
	Labels []string `json:"labels,omitempty"`

	// Detail is a human-readable success detail (e.g. a confirmation ID).
	Detail string `json:"detail,omitempty"`

	// Reason explains the failure when Status is ToolFailed.
	Reason string `json:"reason,omitempty"`
}

// Succeeded builds a successful result, optionally carrying slot labels.
func Succeeded(detail string, labels ...string) ToolResult {
	return ToolResult{Status: ToolSucceeded, Detail: detail, Labels: labels}
}

// Failed builds a failed result with the given reason.
func Failed(reason string) ToolResult {
	return ToolResult{Status: ToolFailed, Reason: reason}
}

// OutcomeKind discriminates what the orchestrator expects from the host next.
type OutcomeKind string

const (
	// OutcomePrompt: speak Text, then wait for the caller's next utterance.
	OutcomePrompt OutcomeKind = "prompt"
	// OutcomeTool: speak Text (the on-start narration), immediately perform
	// Invocation through the gateway, and resume with the result.
	OutcomeTool OutcomeKind = "tool"
	// OutcomeDone: speak Text if any; the call is complete.
	OutcomeDone OutcomeKind = "done"
)

// Outcome is the orchestrator's instruction to the host after one step.
type Outcome struct {
	Kind       OutcomeKind     `json:"kind"`
	Text       string          `json:"text,omitempty"`
	Invocation *ToolInvocation `json:"invocation,omitempty"`
}
