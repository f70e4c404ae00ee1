package domain

// NodeKind constants define the control flow behavior of a conversation step.
const (
	// KindStart marks the entry point of the call. It carries no content.
	KindStart = "start"
	// KindPrompt speaks content to the caller. If Slot is set, the node halts
	// and waits for the caller's answer (hard step); otherwise the text is
	// narrated and the flow continues immediately (soft step).
	KindPrompt = "prompt"
	// KindTool invokes an external operation through the Tool Gateway.
	KindTool = "tool"
	// KindEnd terminates the call. It has no outgoing edge.
	KindEnd = "end"
)

// Field constants select the validator applied to a caller's answer.
const (
	// FieldName accepts any non-empty answer (first name, last name).
	FieldName = "name"
	// FieldPhone expects a 10-digit phone number, possibly dictated
	// digit by digit ("zéro, six, un, deux...").
	FieldPhone = "phone"
	// FieldEmail expects an email address, possibly spelled letter by
	// letter with "arobase" and "point".
	FieldEmail = "email"
	// FieldSlotChoice expects one of the time slots most recently offered
	// by the availability tool, or a literal ISO-8601 datetime.
	FieldSlotChoice = "slot"
)

// Narration holds the three spoken messages surrounding a tool invocation.
type Narration struct {
	OnStart   string `json:"on_start" yaml:"on_start"`
	OnSuccess string `json:"on_success" yaml:"on_success"`
	OnFailure string `json:"on_failure" yaml:"on_failure"`
}

// ToolSpec describes the external tool a node invokes.
// Input maps tool parameter names to literal values or "{{slot}}" references,
// resolved against the call's slot state when the node is entered.
type ToolSpec struct {
	Name      string            `json:"name" yaml:"name"`
	Input     map[string]string `json:"input" yaml:"input"`
	Narration Narration         `json:"narration" yaml:"narration"`
}

// Node represents one step of the conversation.
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"kind" yaml:"kind"`

	// Prompt is the spoken template for prompt nodes. It may contain
	// "{{slot}}" placeholders resolved at render time.
	Prompt string `json:"prompt,omitempty" yaml:"prompt,omitempty"`

	// Slot names the value this node collects. Empty for purely
	// informational prompts.
	Slot string `json:"slot,omitempty" yaml:"slot,omitempty"`

	// Field selects the validator for Slot. Required when Slot is set.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// Reprompt is an optional reworded question spoken after an invalid
	// answer. When empty the original Prompt is repeated unchanged.
	Reprompt string `json:"reprompt,omitempty" yaml:"reprompt,omitempty"`

	// Confirm is an optional template spoken right after the slot is
	// accepted, typically echoing the value back ("je répète : ...").
	Confirm string `json:"confirm,omitempty" yaml:"confirm,omitempty"`

	// Tool is set on tool nodes only.
	Tool *ToolSpec `json:"tool,omitempty" yaml:"tool,omitempty"`
}

// Edge is a directed, unconditional transition between two nodes.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}
